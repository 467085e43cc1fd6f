package handler

import (
	"Pawtner/internal/api/dto"
	"Pawtner/internal/pkg/response"
	"Pawtner/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type IMHandler struct {
	chatService service.ChatUserService
}

func NewIMHandler(chatService service.ChatUserService) *IMHandler {
	return &IMHandler{chatService: chatService}
}

// SendMessage 发送消息接口
func (s *IMHandler) SendMessage(c *gin.Context) {
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

// GetChatHistory 获取历史消息，旧消息在前
func (s *IMHandler) GetChatHistory(c *gin.Context) {
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

// GetConversationList 获取会话列表
func (s *IMHandler) GetConversationList(c *gin.Context) {
	userID := c.GetUint64("user_id")

	res, err := s.chatService.GetChats(c, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// DeleteConversation 删除会话（单方隐藏）
func (s *IMHandler) DeleteConversation(c *gin.Context) {
	convID, err := strconv.ParseUint(c.Param("conv_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrConversationNotFound)
		return
	}

	userID := c.GetUint64("user_id")

	if err := s.chatService.DeleteConversation(c, userID, convID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// MarkAsRead 标记已读接口
func (s *IMHandler) MarkAsRead(c *gin.Context) {
	var req dto.MarkAsReadReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	userID := c.GetUint64("user_id")

	if err := s.chatService.MarkAsRead(c, userID, req.ConversationID, req.Sequence); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
