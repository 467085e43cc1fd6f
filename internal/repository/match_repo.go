package repository

import (
	"Pawtner/internal/model"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type MatchRepo interface {
	EnsureMatch(ctx context.Context, match *model.Match) (*model.Match, bool, error)
	GetMatch(ctx context.Context, matchID uint64) (*model.Match, error)
	GetMatchByPairKey(ctx context.Context, pairKey string) (*model.Match, error)
	UpdateStatusFrom(ctx context.Context, matchID uint64, fromStatus, toStatus int8) (bool, error)
	ListByUserAndStatus(ctx context.Context, userID uint64, status int8, limit, offset int) ([]*model.Match, error)
	CountByUserAndStatus(ctx context.Context, userID uint64, status int8) (int64, error)
}

type matchRepoImpl struct {
	db *gorm.DB
}

func NewMatchRepo(db *gorm.DB) MatchRepo {
	return &matchRepoImpl{db: db}
}

// PairKey 生成宠物无序对的唯一键，较小的 ID 在前
func PairKey(petA, petB uint64) string {
	if petA < petB {
		return fmt.Sprintf("%d_%d", petA, petB)
	}
	return fmt.Sprintf("%d_%d", petB, petA)
}

// EnsureMatch 条件插入：依赖 pair_key 唯一索引消除并发重复
// 唯一键冲突视为"对方请求已创建"，吸收后返回已有行，不向上层报错
// 返回值第二项表示本次调用是否真正插入了新行
func (s *matchRepoImpl) EnsureMatch(ctx context.Context, match *model.Match) (*model.Match, bool, error) {
	err := s.db.WithContext(ctx).Create(match).Error
	if err == nil {
		return match, true, nil
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, false, err
	}

	existing, err := s.GetMatchByPairKey(ctx, match.PairKey)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (s *matchRepoImpl) GetMatch(ctx context.Context, matchID uint64) (*model.Match, error) {
	var match model.Match
	err := s.db.WithContext(ctx).First(&match, matchID).Error
	if err != nil {
		return nil, err
	}
	return &match, nil
}

func (s *matchRepoImpl) GetMatchByPairKey(ctx context.Context, pairKey string) (*model.Match, error) {
	var match model.Match
	err := s.db.WithContext(ctx).Where("pair_key = ?", pairKey).First(&match).Error
	if err != nil {
		return nil, err
	}
	return &match, nil
}

// UpdateStatusFrom 条件状态流转，仅当当前状态匹配时生效
// 返回是否发生了流转，幂等调用（已处于目标状态）返回 false 且无错误
func (s *matchRepoImpl) UpdateStatusFrom(ctx context.Context, matchID uint64, fromStatus, toStatus int8) (bool, error) {
	res := s.db.WithContext(ctx).Model(&model.Match{}).
		Where("id = ? AND status = ?", matchID, fromStatus).
		Update("status", toStatus)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *matchRepoImpl) ListByUserAndStatus(ctx context.Context, userID uint64, status int8, limit, offset int) ([]*model.Match, error) {
	var matches []*model.Match
	err := s.db.WithContext(ctx).Model(&model.Match{}).
		Where("(user1_id = ? OR user2_id = ?) AND status = ?", userID, userID, status).
		Order("updated_at DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&matches).Error
	return matches, err
}

func (s *matchRepoImpl) CountByUserAndStatus(ctx context.Context, userID uint64, status int8) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Match{}).
		Where("(user1_id = ? OR user2_id = ?) AND status = ?", userID, userID, status).
		Count(&count).Error
	return count, err
}
