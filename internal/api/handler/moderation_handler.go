package handler

import (
	"Pawtner/internal/api/dto"
	"Pawtner/internal/pkg/response"
	"Pawtner/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ModerationHandler struct {
	moderationService service.ModerationService
}

func NewModerationHandler(moderationService service.ModerationService) *ModerationHandler {
	return &ModerationHandler{moderationService: moderationService}
}

// CreateBadWord 新增违禁词
func (s *ModerationHandler) CreateBadWord(c *gin.Context) {
	var req dto.BadWordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	if err := s.moderationService.CreateBadWord(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// UpdateBadWord 修改违禁词
func (s *ModerationHandler) UpdateBadWord(c *gin.Context) {
	var req dto.BadWordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	if err := s.moderationService.UpdateBadWord(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// DisableBadWord 停用违禁词
func (s *ModerationHandler) DisableBadWord(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("word_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err := s.moderationService.DisableBadWord(c, id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// Scan 文本扫描调试接口
func (s *ModerationHandler) Scan(c *gin.Context) {
	var req dto.ScanReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, s.moderationService.Scan(req.Text))
}

// Reload 手动触发词库快照刷新
func (s *ModerationHandler) Reload(c *gin.Context) {
	if err := s.moderationService.Reload(c); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
