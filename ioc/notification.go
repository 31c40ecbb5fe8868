package ioc

import (
	"github.com/bernhardbrugger/deepstock-bot/internal/service/notification"
	"github.com/bernhardbrugger/deepstock-bot/internal/service/notification/email"
	"github.com/bernhardbrugger/deepstock-bot/internal/service/notification/telegram"
	"github.com/spf13/viper"
)

// InitChannels builds the alert channels that have credentials. An empty
// slice is valid; the scan then runs in report-only mode.
func InitChannels() []notification.Channel {
	type Config struct {
		Telegram struct {
			BotToken string `mapstructure:"bot_token"`
			ChatId   string `mapstructure:"chat_id"`
		} `mapstructure:"telegram"`
		Email struct {
			SmtpHost string `mapstructure:"smtp_host"`
			SmtpPort int    `mapstructure:"smtp_port"`
			User     string `mapstructure:"user"`
			Password string `mapstructure:"password"`
			To       string `mapstructure:"to"`
		} `mapstructure:"email"`
	}

	var cfg Config
	if err := viper.UnmarshalKey("alerts", &cfg); err != nil {
		panic(err)
	}

	var channels []notification.Channel
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatId != "" {
		channels = append(channels, telegram.NewService(cfg.Telegram.BotToken, cfg.Telegram.ChatId))
	}
	if cfg.Email.User != "" && cfg.Email.Password != "" && cfg.Email.To != "" {
		if cfg.Email.SmtpHost == "" {
			cfg.Email.SmtpHost = "smtp.gmail.com"
		}
		if cfg.Email.SmtpPort == 0 {
			cfg.Email.SmtpPort = 587
		}
		channels = append(channels, email.NewService(
			cfg.Email.SmtpHost, cfg.Email.SmtpPort, cfg.Email.User, cfg.Email.Password, cfg.Email.To))
	}
	return channels
}
