package ioc

import (
	"time"

	"github.com/bernhardbrugger/deepstock-bot/internal/repo"
	"github.com/spf13/viper"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitSeenRepo opens the fingerprint store when dedup is enabled. Returns
// a nil repo otherwise, which keeps the original re-alerting behavior.
func InitSeenRepo() (repo.SeenRepo, time.Duration) {
	type Config struct {
		Enabled       bool   `mapstructure:"enabled"`
		Path          string `mapstructure:"path"`
		RetentionDays int    `mapstructure:"retention_days"`
	}

	var cfg Config
	if err := viper.UnmarshalKey("dedup", &cfg); err != nil {
		panic(err)
	}
	if !cfg.Enabled {
		return nil, 0
	}

	if cfg.Path == "" {
		cfg.Path = "deepstock.db"
	}
	if cfg.RetentionDays <= 0 {
		cfg.RetentionDays = 30
	}

	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic(err)
	}
	if err = repo.InitTables(db); err != nil {
		panic(err)
	}
	return repo.NewSeenRepo(db), time.Duration(cfg.RetentionDays) * 24 * time.Hour
}
