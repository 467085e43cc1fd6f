package model

import "time"

// Conversation 会话主表
// 用户间会话由匹配产生（MatchID），专家会话由专家与用户配对产生
type Conversation struct {
	ID             uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Type           int8      `gorm:"not null;default:1" json:"type"`              // 1-用户, 2-专家, 3-AI
	PeerKey        string    `gorm:"uniqueIndex;type:varchar(64)" json:"peerKey"` // m{matchId} / e{expertId}_u{userId} / a{userId}
	MatchID        uint64    `gorm:"index;default:0" json:"matchId"`              // 仅用户间会话有效
	ExpertID       uint64    `gorm:"default:0" json:"expertId"`                   // 仅专家会话有效
	Status         int8      `gorm:"not null;default:1" json:"status"`            // 1-开放, 2-关闭（匹配被拒绝后）
	MaxMsgSeq      uint64    `gorm:"not null;default:0" json:"maxMsgSeq"`         // 序列号
	LastMsgContent string    `gorm:"type:varchar(255)" json:"lastMsgContent"`
	LastMsgType    int8      `gorm:"not null;default:1" json:"lastMsgType"`
	LastSenderID   uint64    `gorm:"not null;default:0" json:"lastSenderId"`
	LastMessageAt  time.Time `gorm:"index" json:"lastMessageAt"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (Conversation) TableName() string { return "conversations" }

// ConversationMember 会话成员表
type ConversationMember struct {
	ID             uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	ConversationID uint64    `gorm:"uniqueIndex:idx_conv_user" json:"conversationId"`
	UserID         uint64    `gorm:"uniqueIndex:idx_conv_user;index" json:"userId"`
	ReadMsgSeq     uint64    `gorm:"not null;default:0" json:"readMsgSeq"` // 已读进度
	IsVisible      int8      `gorm:"not null;default:1;index" json:"isVisible"` // 单方软删除后置 0
	JoinedAt       time.Time `json:"joinedAt"`

	Conversation Conversation `gorm:"foreignKey:ConversationID;references:ID" json:"conversation"`

	// 虚拟字段：仅读不写，存储 SQL 计算结果
	UnreadCount uint64 `gorm:"->" json:"unreadCount"`
}

func (ConversationMember) TableName() string { return "conversation_members" }
