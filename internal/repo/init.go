package repo

import (
	"github.com/bernhardbrugger/deepstock-bot/internal/entity"
	"gorm.io/gorm"
)

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(&entity.SeenTrade{})
}
