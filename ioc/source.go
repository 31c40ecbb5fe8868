package ioc

import (
	"github.com/bernhardbrugger/deepstock-bot/internal/service/source"
	"github.com/bernhardbrugger/deepstock-bot/internal/service/source/edgar"
	"github.com/bernhardbrugger/deepstock-bot/internal/service/source/finnhub"
	"github.com/bernhardbrugger/deepstock-bot/internal/service/source/fmp"
	"github.com/spf13/viper"
)

// InitSources builds the enabled data source adapters. FMP and Finnhub
// need API keys and are skipped without one; EDGAR is keyless and always
// on.
func InitSources() []source.Service {
	type Config struct {
		FmpApiKey     string `mapstructure:"fmp_api_key"`
		FinnhubApiKey string `mapstructure:"finnhub_api_key"`
	}

	var cfg Config
	if err := viper.UnmarshalKey("sources", &cfg); err != nil {
		panic(err)
	}

	var services []source.Service
	if cfg.FmpApiKey != "" {
		services = append(services, fmp.NewService(cfg.FmpApiKey))
	}
	if cfg.FinnhubApiKey != "" {
		services = append(services, finnhub.NewService(cfg.FinnhubApiKey))
	}
	services = append(services, edgar.NewService())
	return services
}
