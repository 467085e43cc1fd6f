package consts

// 角色常量（闭集，避免散落的字符串比较）
const (
	RoleUser   = "USER"
	RoleExpert = "EXPERT"
	RoleAdmin  = "ADMIN"
)

// 每日限额动作类型
const (
	ActionSendLike   = "like"
	ActionAIQuestion = "ai_question"
)

// 匹配响应动作（闭集）
const (
	MatchActionMatch = "match"
	MatchActionPass  = "pass"
)

// 匹配状态
const (
	MatchStatusPending  int8 = 1
	MatchStatusAccepted int8 = 2
	MatchStatusRejected int8 = 3
)

// 会话类型
const (
	ConvTypeUser   int8 = 1 // 用户-用户（由匹配产生）
	ConvTypeExpert int8 = 2 // 用户-专家
	ConvTypeAI     int8 = 3 // 用户-AI助手
)

// 会话状态
const (
	ConvStatusOpen   int8 = 1
	ConvStatusClosed int8 = 2
)

// 消息类型
const (
	MsgTypeText int8 = 1
	MsgTypeAI   int8 = 2
)

// 推送事件名
const (
	EventNewLike       = "NEW_LIKE"
	EventNewMatch      = "NEW_MATCH"
	EventMatchResponse = "MATCH_RESPONSE"
	EventNewMessage    = "NEW_MESSAGE"
	EventReadReceipt   = "READ_RECEIPT"
)
