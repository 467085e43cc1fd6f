package service

import (
	"Pawtner/internal/api/dto"
	"Pawtner/internal/pkg/consts"
	"Pawtner/internal/pkg/mongo"
	"Pawtner/internal/pkg/push"
	"Pawtner/internal/pkg/util"
	"Pawtner/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"strings"
	"time"

	"gorm.io/gorm"
)

// ChatUserService 匹配双方的私聊
type ChatUserService interface {
	GetChatMessages(ctx context.Context, userID uint64, convID uint64, lastSeq uint64, pageSize int) ([]*dto.MessageDTO, error)
	SendMessage(ctx context.Context, senderID uint64, req *dto.SendMessageReq) (*dto.MessageDTO, error)
	DeleteConversation(ctx context.Context, userID uint64, convID uint64) error
	GetChats(ctx context.Context, userID uint64) ([]*dto.ConversationDTO, error)
	MarkAsRead(ctx context.Context, userID uint64, convID uint64, seq uint64) error
}

type chatUserServiceImpl struct {
	convRepo    repository.ConversationRepo
	messageRepo mongo.MessageRepo
	moderation  ModerationService
	notifier    push.Notifier
}

func NewChatUserService(
	convRepo repository.ConversationRepo,
	messageRepo mongo.MessageRepo,
	moderation ModerationService,
	notifier push.Notifier,
) ChatUserService {
	return &chatUserServiceImpl{
		convRepo:    convRepo,
		messageRepo: messageRepo,
		moderation:  moderation,
		notifier:    notifier,
	}
}

// GetChatMessages 拉取历史消息，旧消息在前
// 空会话返回空列表而非错误
func (s *chatUserServiceImpl) GetChatMessages(ctx context.Context, userID uint64, convID uint64, lastSeq uint64, pageSize int) ([]*dto.MessageDTO, error) {
	conv, err := s.convRepo.GetConversation(ctx, convID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrConversationNotFound
	}
	if err != nil {
		return nil, UnExpectedError
	}
	if conv.Type != consts.ConvTypeUser {
		return nil, ErrConversationNotFound
	}

	isMember, err := s.convRepo.IsMember(ctx, convID, userID)
	if err != nil {
		return nil, UnExpectedError
	}
	if !isMember {
		return nil, UnauthorizedError
	}
	// 已单方删除的会话对该方视同不存在
	visible, err := s.convRepo.IsVisibleMember(ctx, convID, userID)
	if err != nil {
		return nil, UnExpectedError
	}
	if !visible {
		return nil, ErrConversationNotFound
	}

	messages, err := s.messageRepo.GetHistory(ctx, convID, lastSeq, pageSize)
	if err != nil {
		return nil, UnExpectedError
	}
	return toMessageDTOs(messages), nil
}

// SendMessage 发送消息
// 空白内容在任何查库之前判定，其后依次校验会话存在、成员资格与会话开放状态
func (s *chatUserServiceImpl) SendMessage(ctx context.Context, senderID uint64, req *dto.SendMessageReq) (*dto.MessageDTO, error) {
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
	if conv.Type != consts.ConvTypeUser {
		return nil, ErrConversationNotFound
	}

	isMember, err := s.convRepo.IsMember(ctx, req.ConversationID, senderID)
	if err != nil {
		return nil, UnExpectedError
	}
	if !isMember {
		return nil, UnauthorizedError
	}
	// 已单方删除的会话对删除方视同不存在，不允许继续发送
	visible, err := s.convRepo.IsVisibleMember(ctx, req.ConversationID, senderID)
	if err != nil {
		return nil, UnExpectedError
	}
	if !visible {
		return nil, ErrConversationNotFound
	}
	// 匹配被拒绝后会话关闭，对双方视同不存在
	if conv.Status == consts.ConvStatusClosed {
		return nil, ErrConversationNotFound
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

	// 推送尽力而为，失败不影响发送结果
	if peerID, err := s.convRepo.GetOtherMemberID(ctx, conv.ID, senderID); err == nil && peerID > 0 {
		s.notifier.Push(ctx, peerID, consts.EventNewMessage, msgDTO)
	}

	return msgDTO, nil
}

// DeleteConversation 单方删除会话，只影响本人可见性
func (s *chatUserServiceImpl) DeleteConversation(ctx context.Context, userID uint64, convID uint64) error {
	conv, err := s.convRepo.GetConversation(ctx, convID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrConversationNotFound
	}
	if err != nil {
		return UnExpectedError
	}
	if conv.Type != consts.ConvTypeUser {
		return ErrConversationNotFound
	}

	hidden, err := s.convRepo.HideForUser(ctx, convID, userID)
	if err != nil {
		return UnExpectedError
	}
	// 非成员或已删除过，视同不存在
	if !hidden {
		return ErrConversationNotFound
	}
	return nil
}

// GetChats 会话列表，仅包含本人可见的会话
func (s *chatUserServiceImpl) GetChats(ctx context.Context, userID uint64) ([]*dto.ConversationDTO, error) {
	members, err := s.convRepo.GetUserConversationMemList(ctx, userID)
	if err != nil {
		return nil, UnExpectedError
	}

	res := make([]*dto.ConversationDTO, 0, len(members))
	for _, m := range members {
		d := &dto.ConversationDTO{
			ConversationID: m.ConversationID,
			Type:           m.Conversation.Type,
			LastMsgContent: m.Conversation.LastMsgContent,
			LastMsgType:    m.Conversation.LastMsgType,
			LastSenderID:   m.Conversation.LastSenderID,
			LastMessageAt:  m.Conversation.LastMessageAt,
			UnreadCount:    m.UnreadCount,
		}
		if m.Conversation.Type != consts.ConvTypeAI {
			peerID, err := s.convRepo.GetOtherMemberID(ctx, m.ConversationID, userID)
			if err == nil {
				d.PeerID = peerID
			}
		}
		res = append(res, d)
	}
	return res, nil
}

// MarkAsRead 标记已读，进度不允许超过会话最大序列号
func (s *chatUserServiceImpl) MarkAsRead(ctx context.Context, userID uint64, convID uint64, seq uint64) error {
	conv, err := s.convRepo.GetConversation(ctx, convID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrConversationNotFound
	}
	if err != nil {
		return UnExpectedError
	}

	isMember, err := s.convRepo.IsMember(ctx, convID, userID)
	if err != nil {
		return UnExpectedError
	}
	if !isMember {
		return UnauthorizedError
	}

	targetSeq := seq
	if targetSeq > conv.MaxMsgSeq {
		targetSeq = conv.MaxMsgSeq
	}
	if err := s.convRepo.UpdateReadSeq(ctx, convID, userID, targetSeq); err != nil {
		return UnExpectedError
	}

	if peerID, err := s.convRepo.GetOtherMemberID(ctx, convID, userID); err == nil && peerID > 0 {
		s.notifier.Push(ctx, peerID, consts.EventReadReceipt, &dto.ReadReceiptDTO{
			ConversationID: convID,
			UserID:         userID,
			ReadSeq:        targetSeq,
		})
	}
	return nil
}

func toMessageDTO(m *mongo.Message) *dto.MessageDTO {
	return &dto.MessageDTO{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		MsgType:        m.MsgType,
		Content:        m.Content,
		Seq:            m.Seq,
		CreatedAt:      m.CreatedAt,
	}
}

func toMessageDTOs(messages []*mongo.Message) []*dto.MessageDTO {
	res := make([]*dto.MessageDTO, 0, len(messages))
	for _, m := range messages {
		res = append(res, toMessageDTO(m))
	}
	return res
}
