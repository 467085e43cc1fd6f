package repository

import (
	"Pawtner/internal/model"
	"context"

	"gorm.io/gorm"
)

type BadWordRepo interface {
	ListActive(ctx context.Context) ([]*model.BadWord, error)
	CreateBadWord(ctx context.Context, word *model.BadWord) error
	UpdateBadWord(ctx context.Context, word *model.BadWord) error
	DisableBadWord(ctx context.Context, id uint64) error
}

type badWordRepoImpl struct {
	db *gorm.DB
}

func NewBadWordRepo(db *gorm.DB) BadWordRepo {
	return &badWordRepoImpl{db: db}
}

// ListActive 加载所有启用词条，供审核快照重建使用
func (s *badWordRepoImpl) ListActive(ctx context.Context) ([]*model.BadWord, error) {
	var words []*model.BadWord
	err := s.db.WithContext(ctx).Where("is_active = ?", true).Find(&words).Error
	return words, err
}

func (s *badWordRepoImpl) CreateBadWord(ctx context.Context, word *model.BadWord) error {
	return s.db.WithContext(ctx).Create(word).Error
}

func (s *badWordRepoImpl) UpdateBadWord(ctx context.Context, word *model.BadWord) error {
	res := s.db.WithContext(ctx).Model(&model.BadWord{}).
		Where("id = ?", word.ID).
		Updates(map[string]interface{}{
			"word":     word.Word,
			"is_regex": word.IsRegex,
			"level":    word.Level,
			"category": word.Category,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *badWordRepoImpl) DisableBadWord(ctx context.Context, id uint64) error {
	res := s.db.WithContext(ctx).Model(&model.BadWord{}).
		Where("id = ?", id).
		Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
