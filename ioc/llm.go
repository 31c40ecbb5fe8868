package ioc

import (
	"context"

	"github.com/bernhardbrugger/deepstock-bot/internal/service/llm"
	"github.com/bernhardbrugger/deepstock-bot/internal/service/llm/gemini"
	"github.com/bernhardbrugger/deepstock-bot/internal/service/llm/openai"
	"github.com/google/generative-ai-go/genai"
	"github.com/spf13/viper"
	"google.golang.org/api/option"
)

// InitLLM builds the configured completion provider. Returns nil when no
// provider has a key; the scan then runs without enrichment.
func InitLLM() llm.Service {
	type Config struct {
		Provider string `mapstructure:"provider"`
		Model    string `mapstructure:"model"`
		Gemini   struct {
			ApiKey []string `mapstructure:"api_key"`
		} `mapstructure:"gemini"`
		OpenAI struct {
			ApiKey string `mapstructure:"api_key"`
		} `mapstructure:"openai"`
	}

	var cfg Config
	if err := viper.UnmarshalKey("llm", &cfg); err != nil {
		panic(err)
	}

	switch cfg.Provider {
	case "gemini":
		if len(cfg.Gemini.ApiKey) == 0 {
			return nil
		}
		cli, err := genai.NewClient(context.Background(), option.WithAPIKey(cfg.Gemini.ApiKey[0]))
		if err != nil {
			panic(err)
		}
		return gemini.NewService(cli, gemini.WithModel(cfg.Model))
	case "openai":
		if cfg.OpenAI.ApiKey == "" {
			return nil
		}
		if cfg.Model == "" {
			cfg.Model = "gpt-4"
		}
		return openai.NewService(cfg.OpenAI.ApiKey, cfg.Model)
	default:
		return nil
	}
}
