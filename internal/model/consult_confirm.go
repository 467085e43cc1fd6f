package model

import "time"

// ConsultConfirm 专家咨询确认单，支付明细由外部系统维护
// 专家消息可携带确认单引用，引用不存在则发送失败
type ConsultConfirm struct {
	ID             uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         uint64    `gorm:"not null;index" json:"userId"`
	ExpertID       uint64    `gorm:"not null;index" json:"expertId"`
	ConversationID uint64    `gorm:"index;default:0" json:"conversationId"`
	Status         int8      `gorm:"not null;default:1" json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (ConsultConfirm) TableName() string {
	return "consult_confirms"
}
