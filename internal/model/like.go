package model

import (
	"time"
)

// Like 单向喜欢，宠物对宠物，同时冗余双方主人 ID
// (from_pet_id, to_pet_id) 唯一，重复的待处理喜欢直接拒绝
type Like struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	FromUserID uint64    `gorm:"not null;index:idx_like_from_user" json:"fromUserId"`
	FromPetID  uint64    `gorm:"not null;uniqueIndex:idx_like_pair,priority:1" json:"fromPetId"`
	ToUserID   uint64    `gorm:"not null;index:idx_like_to_user" json:"toUserId"`
	ToPetID    uint64    `gorm:"not null;uniqueIndex:idx_like_pair,priority:2" json:"toPetId"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (Like) TableName() string {
	return "likes"
}
