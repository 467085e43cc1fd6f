package repository

import (
	"Pawtner/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DailyActionRepo interface {
	GetCount(ctx context.Context, userID uint64, action string, day string) (int64, error)
	IncrCount(ctx context.Context, userID uint64, action string, day string) error
}

type dailyActionRepoImpl struct {
	db *gorm.DB
}

func NewDailyActionRepo(db *gorm.DB) DailyActionRepo {
	return &dailyActionRepoImpl{db: db}
}

func (s *dailyActionRepoImpl) GetCount(ctx context.Context, userID uint64, action string, day string) (int64, error) {
	var record model.DailyActionRecord
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND action = ? AND day = ?", userID, action, day).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return record.Count, nil
}

// IncrCount 原子自增当日计数，依赖唯一索引走 upsert
func (s *dailyActionRepoImpl) IncrCount(ctx context.Context, userID uint64, action string, day string) error {
	record := model.DailyActionRecord{
		UserID: userID,
		Action: action,
		Day:    day,
		Count:  1,
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "action"}, {Name: "day"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"count": gorm.Expr("count + 1")}),
	}).Create(&record).Error
}
