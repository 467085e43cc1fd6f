package dto

import "time"

// SendMessageReq 发送消息请求体
// Content 不做 binding 校验，空白内容的判定在服务层完成
type SendMessageReq struct {
	ConversationID uint64  `json:"conversation_id" binding:"required"`
	MsgType        int8    `json:"msg_type"` // 缺省为文本
	Content        string  `json:"content"`
	ConfirmID      *uint64 `json:"confirm_id"` // 专家会话可引用确认单
}

// MessageDTO 消息明细响应
type MessageDTO struct {
	ID             string    `json:"id,omitempty"`
	ConversationID uint64    `json:"conversation_id"`
	SenderID       uint64    `json:"sender_id"` // 0 表示 AI
	MsgType        int8      `json:"msg_type"`
	Content        string    `json:"content"`
	Seq            uint64    `json:"seq"`
	CreatedAt      time.Time `json:"createdAt"`
}

// GetChatMessagesReq 历史消息查询
type GetChatMessagesReq struct {
	LastSeq  uint64 `form:"last_seq"`
	PageSize int    `form:"pageSize,default=50" binding:"min=1,max=200"`
}

// ConversationDTO 会话列表项响应
type ConversationDTO struct {
	ConversationID uint64    `json:"conversation_id"`
	Type           int8      `json:"type"`
	PeerID         uint64    `json:"peer_id,omitempty"`
	LastMsgContent string    `json:"last_msg_content"`
	LastMsgType    int8      `json:"last_msg_type"`
	LastSenderID   uint64    `json:"last_sender_id"`
	LastMessageAt  time.Time `json:"lastMessageAt"`
	UnreadCount    uint64    `json:"unreadCount"`
}

// MarkAsReadReq 标记为已读请求
type MarkAsReadReq struct {
	ConversationID uint64 `json:"conversation_id" binding:"required"`
	Sequence       uint64 `json:"sequence" binding:"required"`
}

// ReadReceiptDTO 已读回执推送
type ReadReceiptDTO struct {
	ConversationID uint64 `json:"conversation_id"`
	UserID         uint64 `json:"user_id"`
	ReadSeq        uint64 `json:"read_seq"`
}

// ExpertConversationReq 获取或创建专家咨询会话
type ExpertConversationReq struct {
	ExpertID uint64 `json:"expert_id" binding:"required"`
}

// ConsultInviteDTO 专家视角的待处理咨询
type ConsultInviteDTO struct {
	ConfirmID      uint64    `json:"confirm_id"`
	UserID         uint64    `json:"user_id"`
	ConversationID uint64    `json:"conversation_id"`
	Status         int8      `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
}
