package dto

import "time"

// SendLikeReq 发送喜欢请求体
type SendLikeReq struct {
	FromPetID uint64 `json:"from_pet_id" binding:"required"`
	ToPetID   uint64 `json:"to_pet_id" binding:"required"`
}

// LikeResultDTO 发送喜欢的结果，Matched 为 true 时携带匹配信息
type LikeResultDTO struct {
	LikeID  uint64 `json:"like_id"`
	Matched bool   `json:"matched"`
	MatchID uint64 `json:"match_id,omitempty"`
}

// RespondLikeReq 响应收到的喜欢
type RespondLikeReq struct {
	MatchID uint64 `json:"match_id" binding:"required"`
	Action  string `json:"action" binding:"required,oneof=match pass"`
}

// RespondResultDTO 响应结果
type RespondResultDTO struct {
	MatchID        uint64 `json:"match_id"`
	Status         int8   `json:"status"`
	ConversationID uint64 `json:"conversation_id,omitempty"`
}

// GetLikesReceivedReq 收到的喜欢列表查询，PetID 为空表示不过滤
type GetLikesReceivedReq struct {
	PageReq
	PetID *uint64 `form:"pet_id"`
}

// LikeDTO 收到的喜欢明细
type LikeDTO struct {
	ID         uint64    `json:"id"`
	FromUserID uint64    `json:"from_user_id"`
	FromPetID  uint64    `json:"from_pet_id"`
	ToPetID    uint64    `json:"to_pet_id"`
	MatchID    uint64    `json:"match_id,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// BadgeCountsDTO 角标计数
type BadgeCountsDTO struct {
	LikesReceived uint64 `json:"likes_received"`
	PendingLikes  uint64 `json:"pending_likes"`
	Matches       uint64 `json:"matches"`
	UnreadTotal   uint64 `json:"unread_total"`
}

// StatsDTO 用户匹配统计
type StatsDTO struct {
	LikesSent     uint64 `json:"likes_sent"`
	LikesReceived uint64 `json:"likes_received"`
	Matches       uint64 `json:"matches"`
	Passes        uint64 `json:"passes"`
}
