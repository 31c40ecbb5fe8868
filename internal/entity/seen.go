package entity

import "time"

// SeenTrade 已告警披露的指纹, 用于有限窗口内去重
type SeenTrade struct {
	Id          int64     `gorm:"primaryKey;autoIncrement"`
	Fingerprint string    `gorm:"uniqueIndex;size:64"`
	Source      string    `gorm:"index"`
	Ticker      string    `gorm:"index"`
	CreatedAt   time.Time `gorm:"index"`
}
