package model

import "time"

// BadWord 违禁词条目，管理端维护，审核过滤器只读消费快照
type BadWord struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Word      string    `gorm:"type:varchar(255);not null" json:"word"`
	IsRegex   bool      `gorm:"type:tinyint(1);default:0" json:"isRegex"`
	Level     int8      `gorm:"not null;default:1" json:"level"` // 严重等级，达到阈值即拦截
	Category  string    `gorm:"type:varchar(50)" json:"category"`
	IsActive  bool      `gorm:"type:tinyint(1);default:1;index" json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (BadWord) TableName() string {
	return "bad_words"
}
