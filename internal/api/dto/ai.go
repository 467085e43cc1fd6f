package dto

// AskAIReq AI 问答请求体
// Question 的空白判定在服务层完成
type AskAIReq struct {
	Question string `json:"question"`
}

// AskAIResultDTO AI 问答结果，问答双方均已落库
type AskAIResultDTO struct {
	ConversationID uint64      `json:"conversation_id"`
	Question       *MessageDTO `json:"question"`
	Answer         *MessageDTO `json:"answer"`
}
