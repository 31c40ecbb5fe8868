package repo

import (
	"context"
	"time"

	"github.com/bernhardbrugger/deepstock-bot/internal/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SeenRepo interface {
	Exists(ctx context.Context, fingerprint string) (bool, error)
	Create(ctx context.Context, seen entity.SeenTrade) (int64, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type seenRepo struct {
	db *gorm.DB
}

func NewSeenRepo(db *gorm.DB) SeenRepo {
	return &seenRepo{
		db: db,
	}
}

func (r *seenRepo) Exists(ctx context.Context, fingerprint string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.SeenTrade{}).
		Where("fingerprint = ?", fingerprint).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *seenRepo) Create(ctx context.Context, seen entity.SeenTrade) (int64, error) {
	// 重复指纹直接忽略
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&seen).Error
	if err != nil {
		return 0, err
	}
	return seen.Id, nil
}

func (r *seenRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&entity.SeenTrade{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
