package handler

import (
	"Pawtner/internal/api/dto"
	"Pawtner/internal/pkg/response"
	"Pawtner/internal/service"

	"github.com/gin-gonic/gin"
)

type AIHandler struct {
	chatService service.ChatAIService
}

func NewAIHandler(chatService service.ChatAIService) *AIHandler {
	return &AIHandler{chatService: chatService}
}

// Ask 养宠问答接口
func (s *AIHandler) Ask(c *gin.Context) {
	var req dto.AskAIReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	userID := c.GetUint64("user_id")

	res, err := s.chatService.AskAI(c, userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// GetChatHistory 获取本人 AI 会话历史
func (s *AIHandler) GetChatHistory(c *gin.Context) {
	var req dto.GetChatMessagesReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, err)
		return
	}

	userID := c.GetUint64("user_id")

	res, err := s.chatService.GetChatMessages(c, userID, req.LastSeq, req.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}
