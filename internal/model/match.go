package model

import (
	"time"
)

// Match 匹配主表，宠物无序对
// PairKey 形如 "minPetId_maxPetId"，唯一索引保证同一对宠物至多一行
// 匹配永不物理删除，拒绝只是状态流转
type Match struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	PairKey   string    `gorm:"uniqueIndex;type:varchar(64);not null" json:"-"`
	Pet1ID    uint64    `gorm:"not null" json:"pet1Id"` // 恒为较小的宠物 ID
	User1ID   uint64    `gorm:"not null;index:idx_match_user1" json:"user1Id"`
	Pet2ID    uint64    `gorm:"not null" json:"pet2Id"`
	User2ID   uint64    `gorm:"not null;index:idx_match_user2" json:"user2Id"`
	Status    int8      `gorm:"not null;default:1" json:"status"` // 1-待回应, 2-已匹配, 3-已拒绝
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Match) TableName() string {
	return "matches"
}
