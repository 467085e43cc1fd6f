package service

import (
	"Pawtner/internal/api/dto"
	"Pawtner/internal/model"
	"Pawtner/internal/pkg/consts"
	"Pawtner/internal/pkg/llm"
	"Pawtner/internal/pkg/mongo"
	"Pawtner/internal/pkg/util"
	"Pawtner/internal/repository"
	"context"
	"fmt"
	log "log/slog"
	"strings"
	"time"
)

// ChatAIService 用户与 AI 助手的养宠问答
// 问与答都作为消息写入用户专属的 AI 会话，历史可回溯
type ChatAIService interface {
	AskAI(ctx context.Context, userID uint64, req *dto.AskAIReq) (*dto.AskAIResultDTO, error)
	GetChatMessages(ctx context.Context, userID uint64, lastSeq uint64, pageSize int) ([]*dto.MessageDTO, error)
}

type chatAIServiceImpl struct {
	convRepo    repository.ConversationRepo
	messageRepo mongo.MessageRepo
	asker       llm.Asker
	moderation  ModerationService
	quota       QuotaService
}

func NewChatAIService(
	convRepo repository.ConversationRepo,
	messageRepo mongo.MessageRepo,
	asker llm.Asker,
	moderation ModerationService,
	quota QuotaService,
) ChatAIService {
	return &chatAIServiceImpl{
		convRepo:    convRepo,
		messageRepo: messageRepo,
		asker:       asker,
		moderation:  moderation,
		quota:       quota,
	}
}

// AskAI 提问
// 限额与审核都在模型调用之前，计数仅在回答成功后记录
func (s *chatAIServiceImpl) AskAI(ctx context.Context, userID uint64, req *dto.AskAIReq) (*dto.AskAIResultDTO, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return nil, ErrMessageEmpty
	}

	if err := s.quota.CanPerformAction(ctx, userID, consts.ActionAIQuestion); err != nil {
		return nil, err
	}
	if err := s.moderation.Review(ctx, question); err != nil {
		return nil, err
	}

	convID, err := s.getOrCreateAIConversation(ctx, userID)
	if err != nil {
		return nil, err
	}

	questionMsg, err := s.appendMessage(ctx, convID, userID, consts.MsgTypeText, question)
	if err != nil {
		return nil, err
	}

	answer, err := s.asker.Ask(ctx, question)
	if err != nil {
		log.ErrorContext(ctx, "AI 回答失败", "user", userID, "err", err)
		return nil, UnExpectedError
	}

	// SenderID 为 0 表示 AI 助手
	answerMsg, err := s.appendMessage(ctx, convID, 0, consts.MsgTypeAI, answer)
	if err != nil {
		return nil, err
	}

	if err := s.quota.RecordAction(ctx, userID, consts.ActionAIQuestion); err != nil {
		log.WarnContext(ctx, "AI 提问计数记录失败", "user", userID, "err", err)
	}

	return &dto.AskAIResultDTO{
		ConversationID: convID,
		Question:       toMessageDTO(questionMsg),
		Answer:         toMessageDTO(answerMsg),
	}, nil
}

// GetChatMessages 拉取本人 AI 会话的历史问答
func (s *chatAIServiceImpl) GetChatMessages(ctx context.Context, userID uint64, lastSeq uint64, pageSize int) ([]*dto.MessageDTO, error) {
	peerKey := fmt.Sprintf("a%d", userID)
	conv, err := s.convRepo.GetConversationByPeerKey(ctx, peerKey)
	if err != nil {
		// 从未提问过，返回空历史
		return []*dto.MessageDTO{}, nil
	}

	messages, err := s.messageRepo.GetHistory(ctx, conv.ID, lastSeq, pageSize)
	if err != nil {
		return nil, UnExpectedError
	}
	return toMessageDTOs(messages), nil
}

// getOrCreateAIConversation 用户专属 AI 会话，单成员
func (s *chatAIServiceImpl) getOrCreateAIConversation(ctx context.Context, userID uint64) (uint64, error) {
	peerKey := fmt.Sprintf("a%d", userID)
	if conv, err := s.convRepo.GetConversationByPeerKey(ctx, peerKey); err == nil {
		return conv.ID, nil
	}

	conv := &model.Conversation{
		Type:          consts.ConvTypeAI,
		PeerKey:       peerKey,
		Status:        consts.ConvStatusOpen,
		LastMessageAt: time.Now(),
	}
	members := []*model.ConversationMember{
		{UserID: userID, IsVisible: 1},
	}
	if err := s.convRepo.CreateConversation(ctx, conv, members); err != nil {
		log.ErrorContext(ctx, "AI 会话创建失败", "user", userID, "err", err)
		return 0, UnExpectedError
	}
	return conv.ID, nil
}

func (s *chatAIServiceImpl) appendMessage(ctx context.Context, convID uint64, senderID uint64, msgType int8, content string) (*mongo.Message, error) {
	newSeq, err := s.convRepo.IncrMaxSeq(ctx, convID, util.TruncatePreview(content, 100), msgType, senderID)
	if err != nil {
		log.ErrorContext(ctx, "消息定序失败", "conv", convID, "err", err)
		return nil, UnExpectedError
	}

	msg := &mongo.Message{
		ConversationID: convID,
		SenderID:       senderID,
		MsgType:        msgType,
		Content:        content,
		Seq:            newSeq,
		CreatedAt:      time.Now(),
	}
	if err := s.messageRepo.SaveMessage(ctx, msg); err != nil {
		log.ErrorContext(ctx, "消息落库失败", "conv", convID, "seq", newSeq, "err", err)
		return nil, UnExpectedError
	}
	return msg, nil
}
