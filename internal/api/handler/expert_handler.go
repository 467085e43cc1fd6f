package handler

import (
	"Pawtner/internal/api/dto"
	"Pawtner/internal/pkg/response"
	"Pawtner/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ExpertHandler struct {
	chatService service.ChatExpertService
}

func NewExpertHandler(chatService service.ChatExpertService) *ExpertHandler {
	return &ExpertHandler{chatService: chatService}
}

// OpenConversation 获取或创建与指定专家的咨询会话
func (s *ExpertHandler) OpenConversation(c *gin.Context) {
	var req dto.ExpertConversationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	userID := c.GetUint64("user_id")

	convID, err := s.chatService.GetOrCreateConversation(c, userID, req.ExpertID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"conversation_id": convID})
}

// SendMessage 在咨询会话中发送消息
func (s *ExpertHandler) SendMessage(c *gin.Context) {
	var req dto.SendMessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	senderID := c.GetUint64("user_id")

	res, err := s.chatService.SendMessage(c, senderID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// GetChatHistory 获取咨询会话历史
func (s *ExpertHandler) GetChatHistory(c *gin.Context) {
	convID, err := strconv.ParseUint(c.Param("conv_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrConversationNotFound)
		return
	}

	var req dto.GetChatMessagesReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, err)
		return
	}

	userID := c.GetUint64("user_id")

	res, err := s.chatService.GetChatMessages(c, userID, convID, req.LastSeq, req.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// GetInvites 专家视角的待处理咨询列表
func (s *ExpertHandler) GetInvites(c *gin.Context) {
	expertID := c.GetUint64("user_id")

	res, err := s.chatService.GetInvites(c, expertID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}
