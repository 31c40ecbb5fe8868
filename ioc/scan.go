package ioc

import (
	"time"

	"github.com/bernhardbrugger/deepstock-bot/internal/service/scanner"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// InitScanConfig loads the scan thresholds and the watch interval.
func InitScanConfig() (scanner.Config, time.Duration) {
	type Config struct {
		IntervalMinutes int      `mapstructure:"interval_minutes"`
		MinTradeValue   int64    `mapstructure:"min_trade_value"`
		MinScore        float64  `mapstructure:"min_score"`
		Watchlist       []string `mapstructure:"watchlist"`
		LookbackDays    int      `mapstructure:"lookback_days"`
	}

	var cfg Config
	if err := viper.UnmarshalKey("scan", &cfg); err != nil {
		panic(err)
	}

	if cfg.IntervalMinutes <= 0 {
		cfg.IntervalMinutes = 30
	}
	if cfg.MinTradeValue <= 0 {
		cfg.MinTradeValue = 100_000
	}
	if cfg.MinScore <= 0 {
		cfg.MinScore = 2.0
	}
	if cfg.LookbackDays <= 0 {
		cfg.LookbackDays = 7
	}
	if len(cfg.Watchlist) == 0 {
		cfg.Watchlist = []string{"AAPL", "MSFT", "NVDA", "TSLA", "AMD", "GOOGL"}
	}

	return scanner.Config{
		MinTradeValue: decimal.NewFromInt(cfg.MinTradeValue),
		MinScore:      cfg.MinScore,
		Watchlist:     cfg.Watchlist,
		LookbackDays:  cfg.LookbackDays,
	}, time.Duration(cfg.IntervalMinutes) * time.Minute
}
