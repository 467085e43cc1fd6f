package model

import (
	"time"
)

// Pet 宠物档案，归属唯一主人
type Pet struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint64 `gorm:"not null;index:idx_pet_user" json:"userId"`
	Name      string `gorm:"type:varchar(50);not null" json:"name"`
	Species   string `gorm:"type:varchar(30)" json:"species"` // 犬/猫/...
	Breed     string `gorm:"type:varchar(50)" json:"breed"`
	Gender    int8   `gorm:"not null;default:0" json:"gender"`
	Avatar    string `gorm:"type:varchar(255)" json:"avatar"`
	IsDelete  bool   `gorm:"type:tinyint(1);default:0" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Pet) TableName() string {
	return "pets"
}
