package repository

import (
	"Pawtner/internal/model"
	"context"

	"gorm.io/gorm"
)

type LikeRepo interface {
	CreateLike(ctx context.Context, like *model.Like) error
	ExistsLike(ctx context.Context, fromPetID, toPetID uint64) (bool, error)
	ListReceived(ctx context.Context, toUserID uint64, toPetID *uint64, limit, offset int) ([]*model.Like, error)
	CountSent(ctx context.Context, fromUserID uint64) (int64, error)
	CountReceived(ctx context.Context, toUserID uint64, toPetID *uint64) (int64, error)
}

type likeRepoImpl struct {
	db *gorm.DB
}

func NewLikeRepo(db *gorm.DB) LikeRepo {
	return &likeRepoImpl{db: db}
}

func (s *likeRepoImpl) CreateLike(ctx context.Context, like *model.Like) error {
	return s.db.WithContext(ctx).Create(like).Error
}

// ExistsLike 检查指定方向的喜欢是否已存在，互相喜欢检测复用该查询
func (s *likeRepoImpl) ExistsLike(ctx context.Context, fromPetID, toPetID uint64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Like{}).
		Where("from_pet_id = ? AND to_pet_id = ?", fromPetID, toPetID).
		Count(&count).Error
	return count > 0, err
}

// ListReceived 查询收到的喜欢，可按宠物过滤，按时间倒序
func (s *likeRepoImpl) ListReceived(ctx context.Context, toUserID uint64, toPetID *uint64, limit, offset int) ([]*model.Like, error) {
	query := s.db.WithContext(ctx).Model(&model.Like{}).
		Where("to_user_id = ?", toUserID)
	if toPetID != nil {
		query = query.Where("to_pet_id = ?", *toPetID)
	}

	var likes []*model.Like
	err := query.Order("created_at DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&likes).Error
	return likes, err
}

func (s *likeRepoImpl) CountSent(ctx context.Context, fromUserID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Like{}).
		Where("from_user_id = ?", fromUserID).
		Count(&count).Error
	return count, err
}

func (s *likeRepoImpl) CountReceived(ctx context.Context, toUserID uint64, toPetID *uint64) (int64, error) {
	query := s.db.WithContext(ctx).Model(&model.Like{}).
		Where("to_user_id = ?", toUserID)
	if toPetID != nil {
		query = query.Where("to_pet_id = ?", *toPetID)
	}

	var count int64
	err := query.Count(&count).Error
	return count, err
}
