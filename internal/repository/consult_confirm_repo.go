package repository

import (
	"Pawtner/internal/model"
	"context"

	"gorm.io/gorm"
)

type ConsultConfirmRepo interface {
	GetConfirm(ctx context.Context, confirmID uint64) (*model.ConsultConfirm, error)
	CreateConfirm(ctx context.Context, confirm *model.ConsultConfirm) error
	ListPendingByExpert(ctx context.Context, expertID uint64) ([]*model.ConsultConfirm, error)
	UpdateStatus(ctx context.Context, confirmID uint64, status int8) error
}

type consultConfirmRepoImpl struct {
	db *gorm.DB
}

func NewConsultConfirmRepo(db *gorm.DB) ConsultConfirmRepo {
	return &consultConfirmRepoImpl{db: db}
}

func (s *consultConfirmRepoImpl) GetConfirm(ctx context.Context, confirmID uint64) (*model.ConsultConfirm, error) {
	var confirm model.ConsultConfirm
	err := s.db.WithContext(ctx).First(&confirm, confirmID).Error
	if err != nil {
		return nil, err
	}
	return &confirm, nil
}

func (s *consultConfirmRepoImpl) CreateConfirm(ctx context.Context, confirm *model.ConsultConfirm) error {
	return s.db.WithContext(ctx).Create(confirm).Error
}

// ListPendingByExpert 专家视角的待处理咨询确认单
func (s *consultConfirmRepoImpl) ListPendingByExpert(ctx context.Context, expertID uint64) ([]*model.ConsultConfirm, error) {
	var confirms []*model.ConsultConfirm
	err := s.db.WithContext(ctx).
		Where("expert_id = ? AND status = ?", expertID, 1).
		Order("created_at DESC").
		Find(&confirms).Error
	return confirms, err
}

func (s *consultConfirmRepoImpl) UpdateStatus(ctx context.Context, confirmID uint64, status int8) error {
	return s.db.WithContext(ctx).Model(&model.ConsultConfirm{}).
		Where("id = ?", confirmID).
		Update("status", status).Error
}
