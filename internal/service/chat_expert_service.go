package service

import (
	"Pawtner/internal/api/dto"
	"Pawtner/internal/model"
	"Pawtner/internal/pkg/consts"
	"Pawtner/internal/pkg/mongo"
	"Pawtner/internal/pkg/push"
	"Pawtner/internal/pkg/util"
	"Pawtner/internal/repository"
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"strings"
	"time"

	"gorm.io/gorm"
)

// ChatExpertService 用户与专家的咨询会话
// 消息契约与私聊一致，额外支持确认单引用
type ChatExpertService interface {
	GetOrCreateConversation(ctx context.Context, userID uint64, expertID uint64) (uint64, error)
	GetChatMessages(ctx context.Context, userID uint64, convID uint64, lastSeq uint64, pageSize int) ([]*dto.MessageDTO, error)
	SendMessage(ctx context.Context, senderID uint64, req *dto.SendMessageReq) (*dto.MessageDTO, error)
	GetInvites(ctx context.Context, expertID uint64) ([]*dto.ConsultInviteDTO, error)
}

type chatExpertServiceImpl struct {
	convRepo    repository.ConversationRepo
	messageRepo mongo.MessageRepo
	userRepo    repository.UserRepo
	confirmRepo repository.ConsultConfirmRepo
	moderation  ModerationService
	notifier    push.Notifier
}

func NewChatExpertService(
	convRepo repository.ConversationRepo,
	messageRepo mongo.MessageRepo,
	userRepo repository.UserRepo,
	confirmRepo repository.ConsultConfirmRepo,
	moderation ModerationService,
	notifier push.Notifier,
) ChatExpertService {
	return &chatExpertServiceImpl{
		convRepo:    convRepo,
		messageRepo: messageRepo,
		userRepo:    userRepo,
		confirmRepo: confirmRepo,
		moderation:  moderation,
		notifier:    notifier,
	}
}

// GetOrCreateConversation 获取或创建专家咨询会话
// 目标必须是专家角色，首次创建同时生成待处理确认单
func (s *chatExpertServiceImpl) GetOrCreateConversation(ctx context.Context, userID uint64, expertID uint64) (uint64, error) {
	expert, err := s.userRepo.GetUser(ctx, expertID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrUserNotFound
	}
	if err != nil {
		return 0, UnExpectedError
	}
	if expert.Role != consts.RoleExpert {
		return 0, ErrUserNotFound
	}

	peerKey := fmt.Sprintf("e%d_u%d", expertID, userID)
	if conv, err := s.convRepo.GetConversationByPeerKey(ctx, peerKey); err == nil {
		return conv.ID, nil
	}

	conv := &model.Conversation{
		Type:          consts.ConvTypeExpert,
		PeerKey:       peerKey,
		ExpertID:      expertID,
		Status:        consts.ConvStatusOpen,
		LastMessageAt: time.Now(),
	}
	members := []*model.ConversationMember{
		{UserID: userID, IsVisible: 1},
		{UserID: expertID, IsVisible: 1},
	}
	if err := s.convRepo.CreateConversation(ctx, conv, members); err != nil {
		log.ErrorContext(ctx, "专家会话创建失败", "expert", expertID, "user", userID, "err", err)
		return 0, UnExpectedError
	}

	confirm := &model.ConsultConfirm{
		UserID:         userID,
		ExpertID:       expertID,
		ConversationID: conv.ID,
		Status:         1,
	}
	if err := s.confirmRepo.CreateConfirm(ctx, confirm); err != nil {
		log.WarnContext(ctx, "确认单创建失败", "conv", conv.ID, "err", err)
	}

	s.notifier.Push(ctx, expertID, consts.EventNewMessage, &dto.ConsultInviteDTO{
		ConfirmID:      confirm.ID,
		UserID:         userID,
		ConversationID: conv.ID,
		Status:         confirm.Status,
		CreatedAt:      confirm.CreatedAt,
	})
	return conv.ID, nil
}

// GetChatMessages 拉取咨询会话历史，契约同私聊
func (s *chatExpertServiceImpl) GetChatMessages(ctx context.Context, userID uint64, convID uint64, lastSeq uint64, pageSize int) ([]*dto.MessageDTO, error) {
	conv, err := s.convRepo.GetConversation(ctx, convID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrConversationNotFound
	}
	if err != nil {
		return nil, UnExpectedError
	}
	if conv.Type != consts.ConvTypeExpert {
		return nil, ErrConversationNotFound
	}

	isMember, err := s.convRepo.IsMember(ctx, convID, userID)
	if err != nil {
		return nil, UnExpectedError
	}
	if !isMember {
		return nil, UnauthorizedError
	}

	messages, err := s.messageRepo.GetHistory(ctx, convID, lastSeq, pageSize)
	if err != nil {
		return nil, UnExpectedError
	}
	return toMessageDTOs(messages), nil
}

// SendMessage 在咨询会话中发送消息
// 引用的确认单必须存在且属于该会话，否则发送失败
func (s *chatExpertServiceImpl) SendMessage(ctx context.Context, senderID uint64, req *dto.SendMessageReq) (*dto.MessageDTO, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, ErrMessageEmpty
	}

	conv, err := s.convRepo.GetConversation(ctx, req.ConversationID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrConversationNotFound
	}
	if err != nil {
		return nil, UnExpectedError
	}
	if conv.Type != consts.ConvTypeExpert {
		return nil, ErrConversationNotFound
	}

	isMember, err := s.convRepo.IsMember(ctx, req.ConversationID, senderID)
	if err != nil {
		return nil, UnExpectedError
	}
	if !isMember {
		return nil, UnauthorizedError
	}
	if conv.Status == consts.ConvStatusClosed {
		return nil, ErrConversationNotFound
	}

	if req.ConfirmID != nil {
		if *req.ConfirmID == 0 {
			return nil, ErrParamInvalid
		}
		confirm, err := s.confirmRepo.GetConfirm(ctx, *req.ConfirmID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConfirmNotFound
		}
		if err != nil {
			return nil, UnExpectedError
		}
		if confirm.ConversationID != conv.ID {
			return nil, ErrConfirmNotFound
		}
		// 专家首次引用确认单视为接受咨询
		if confirm.Status == 1 && senderID == conv.ExpertID {
			if err := s.confirmRepo.UpdateStatus(ctx, confirm.ID, 2); err != nil {
				log.WarnContext(ctx, "确认单状态更新失败", "confirm", confirm.ID, "err", err)
			}
		}
	}

	if err := s.moderation.Review(ctx, req.Content); err != nil {
		return nil, err
	}

	msgType := req.MsgType
	if msgType == 0 {
		msgType = consts.MsgTypeText
	}

	newSeq, err := s.convRepo.IncrMaxSeq(ctx, conv.ID, util.TruncatePreview(req.Content, 100), msgType, senderID)
	if err != nil {
		log.ErrorContext(ctx, "消息定序失败", "conv", conv.ID, "err", err)
		return nil, UnExpectedError
	}

	msg := &mongo.Message{
		ConversationID: conv.ID,
		SenderID:       senderID,
		MsgType:        msgType,
		Content:        req.Content,
		Seq:            newSeq,
		CreatedAt:      time.Now(),
	}
	if err := s.messageRepo.SaveMessage(ctx, msg); err != nil {
		log.ErrorContext(ctx, "消息落库失败", "conv", conv.ID, "seq", newSeq, "err", err)
		return nil, UnExpectedError
	}

	msgDTO := toMessageDTO(msg)
	if peerID, err := s.convRepo.GetOtherMemberID(ctx, conv.ID, senderID); err == nil && peerID > 0 {
		s.notifier.Push(ctx, peerID, consts.EventNewMessage, msgDTO)
	}
	return msgDTO, nil
}

// GetInvites 专家视角的待处理咨询列表
func (s *chatExpertServiceImpl) GetInvites(ctx context.Context, expertID uint64) ([]*dto.ConsultInviteDTO, error) {
	confirms, err := s.confirmRepo.ListPendingByExpert(ctx, expertID)
	if err != nil {
		return nil, UnExpectedError
	}

	res := make([]*dto.ConsultInviteDTO, 0, len(confirms))
	for _, c := range confirms {
		res = append(res, &dto.ConsultInviteDTO{
			ConfirmID:      c.ID,
			UserID:         c.UserID,
			ConversationID: c.ConversationID,
			Status:         c.Status,
			CreatedAt:      c.CreatedAt,
		})
	}
	return res, nil
}
