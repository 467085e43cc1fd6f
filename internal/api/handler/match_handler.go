package handler

import (
	"Pawtner/internal/api/dto"
	"Pawtner/internal/pkg/response"
	"Pawtner/internal/service"

	"github.com/gin-gonic/gin"
)

type MatchHandler struct {
	matchService service.MatchService
}

func NewMatchHandler(matchService service.MatchService) *MatchHandler {
	return &MatchHandler{matchService: matchService}
}

// SendLike 发送喜欢接口
func (s *MatchHandler) SendLike(c *gin.Context) {
	var req dto.SendLikeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	userID := c.GetUint64("user_id")

	res, err := s.matchService.SendLike(c, userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// RespondToLike 回应喜欢接口
func (s *MatchHandler) RespondToLike(c *gin.Context) {
	var req dto.RespondLikeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	userID := c.GetUint64("user_id")

	res, err := s.matchService.RespondToLike(c, userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// GetLikesReceived 获取收到且未回应的喜欢
func (s *MatchHandler) GetLikesReceived(c *gin.Context) {
	var req dto.GetLikesReceivedReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, err)
		return
	}

	userID := c.GetUint64("user_id")

	res, err := s.matchService.GetLikesReceived(c, userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// GetBadgeCounts 获取角标计数
func (s *MatchHandler) GetBadgeCounts(c *gin.Context) {
	userID := c.GetUint64("user_id")

	res, err := s.matchService.GetBadgeCounts(c, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// GetStats 获取匹配统计
func (s *MatchHandler) GetStats(c *gin.Context) {
	userID := c.GetUint64("user_id")

	res, err := s.matchService.GetStats(c, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}
