package repository

import (
	"Pawtner/internal/model"
	"context"

	"gorm.io/gorm"
)

type PetRepo interface {
	GetPet(ctx context.Context, petID uint64) (*model.Pet, error)
	GetUserPetIDs(ctx context.Context, userID uint64) ([]uint64, error)
	CreatePet(ctx context.Context, pet *model.Pet) error
}

type petRepoImpl struct {
	db *gorm.DB
}

func NewPetRepo(db *gorm.DB) PetRepo {
	return &petRepoImpl{db: db}
}

func (s *petRepoImpl) GetPet(ctx context.Context, petID uint64) (*model.Pet, error) {
	var pet model.Pet
	err := s.db.WithContext(ctx).
		Where("id = ? AND is_delete = ?", petID, false).
		First(&pet).Error
	if err != nil {
		return nil, err
	}
	return &pet, nil
}

func (s *petRepoImpl) GetUserPetIDs(ctx context.Context, userID uint64) ([]uint64, error) {
	var ids []uint64
	err := s.db.WithContext(ctx).Model(&model.Pet{}).
		Where("user_id = ? AND is_delete = ?", userID, false).
		Pluck("id", &ids).Error
	return ids, err
}

func (s *petRepoImpl) CreatePet(ctx context.Context, pet *model.Pet) error {
	return s.db.WithContext(ctx).Create(pet).Error
}
