package service_test

import (
	"context"
	"testing"

	"Pawtner/internal/api/dto"
	"Pawtner/internal/model"
	"Pawtner/internal/pkg/consts"
	"Pawtner/internal/repository"
	"Pawtner/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type expertFixture struct {
	svc         service.ChatExpertService
	convRepo    repository.ConversationRepo
	confirmRepo repository.ConsultConfirmRepo
	notifier    *fakeNotifier
	db          *gorm.DB
}

func newExpertFixture(t *testing.T) *expertFixture {
	t.Helper()
	setupConfig(t)
	db := setupTestDB(t)
	convRepo := repository.NewConversationRepo(db)
	confirmRepo := repository.NewConsultConfirmRepo(db)
	notifier := &fakeNotifier{}
	moderation := service.NewModerationService(repository.NewBadWordRepo(db))
	return &expertFixture{
		svc: service.NewChatExpertService(
			convRepo, &fakeMessageRepo{}, repository.NewUserRepo(db),
			confirmRepo, moderation, notifier,
		),
		convRepo:    convRepo,
		confirmRepo: confirmRepo,
		notifier:    notifier,
		db:          db,
	}
}

func TestGetOrCreateExpertConversation(t *testing.T) {
	ctx := context.Background()
	f := newExpertFixture(t)
	seedUser(t, f.db, 10, consts.RoleUser, false)
	seedUser(t, f.db, 50, consts.RoleExpert, false)

	// 目标必须是专家
	_, err := f.svc.GetOrCreateConversation(ctx, 10, 10)
	assert.ErrorIs(t, err, service.ErrUserNotFound)
	_, err = f.svc.GetOrCreateConversation(ctx, 10, 999)
	assert.ErrorIs(t, err, service.ErrUserNotFound)

	convID, err := f.svc.GetOrCreateConversation(ctx, 10, 50)
	require.NoError(t, err)
	require.NotZero(t, convID)

	// 首次创建产生待处理确认单并推送给专家
	invites, err := f.svc.GetInvites(ctx, 50)
	require.NoError(t, err)
	require.Len(t, invites, 1)
	assert.Equal(t, uint64(10), invites[0].UserID)
	assert.Equal(t, convID, invites[0].ConversationID)
	assert.Equal(t, int8(1), invites[0].Status)
	assert.True(t, f.notifier.pushed(50, consts.EventNewMessage))

	// 重复请求复用同一会话，不再新建确认单
	again, err := f.svc.GetOrCreateConversation(ctx, 10, 50)
	require.NoError(t, err)
	assert.Equal(t, convID, again)
	invites, err = f.svc.GetInvites(ctx, 50)
	require.NoError(t, err)
	assert.Len(t, invites, 1)
}

func TestExpertSendMessageConfirmResolution(t *testing.T) {
	ctx := context.Background()
	f := newExpertFixture(t)
	seedUser(t, f.db, 10, consts.RoleUser, false)
	seedUser(t, f.db, 50, consts.RoleExpert, false)

	convID, err := f.svc.GetOrCreateConversation(ctx, 10, 50)
	require.NoError(t, err)

	invites, err := f.svc.GetInvites(ctx, 50)
	require.NoError(t, err)
	require.Len(t, invites, 1)
	confirmID := invites[0].ConfirmID

	// 确认单引用为零值
	zero := uint64(0)
	_, err = f.svc.SendMessage(ctx, 50, &dto.SendMessageReq{ConversationID: convID, Content: "hi", ConfirmID: &zero})
	assert.ErrorIs(t, err, service.ErrParamInvalid)

	// 确认单不存在
	missing := uint64(999)
	_, err = f.svc.SendMessage(ctx, 50, &dto.SendMessageReq{ConversationID: convID, Content: "hi", ConfirmID: &missing})
	assert.ErrorIs(t, err, service.ErrConfirmNotFound)

	// 确认单属于别的专家的会话
	other := &model.ConsultConfirm{UserID: 10, ExpertID: 60, ConversationID: 777, Status: 1}
	require.NoError(t, f.confirmRepo.CreateConfirm(ctx, other))
	_, err = f.svc.SendMessage(ctx, 50, &dto.SendMessageReq{ConversationID: convID, Content: "hi", ConfirmID: &other.ID})
	assert.ErrorIs(t, err, service.ErrConfirmNotFound)

	// 专家引用有效确认单即接受咨询
	msg, err := f.svc.SendMessage(ctx, 50, &dto.SendMessageReq{ConversationID: convID, Content: "你好，我来解答", ConfirmID: &confirmID})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), msg.Seq)
	assert.True(t, f.notifier.pushed(10, consts.EventNewMessage))

	confirm, err := f.confirmRepo.GetConfirm(ctx, confirmID)
	require.NoError(t, err)
	assert.Equal(t, int8(2), confirm.Status)

	// 已接受的确认单不再出现在待处理列表
	invites, err = f.svc.GetInvites(ctx, 50)
	require.NoError(t, err)
	assert.Empty(t, invites)
}

func TestExpertSendMessageMembership(t *testing.T) {
	ctx := context.Background()
	f := newExpertFixture(t)
	seedUser(t, f.db, 10, consts.RoleUser, false)
	seedUser(t, f.db, 50, consts.RoleExpert, false)

	convID, err := f.svc.GetOrCreateConversation(ctx, 10, 50)
	require.NoError(t, err)

	_, err = f.svc.SendMessage(ctx, 99, &dto.SendMessageReq{ConversationID: convID, Content: "hi"})
	assert.ErrorIs(t, err, service.UnauthorizedError)
	_, err = f.svc.SendMessage(ctx, 10, &dto.SendMessageReq{ConversationID: 999, Content: "hi"})
	assert.ErrorIs(t, err, service.ErrConversationNotFound)
	_, err = f.svc.SendMessage(ctx, 10, &dto.SendMessageReq{ConversationID: convID, Content: "  "})
	assert.ErrorIs(t, err, service.ErrMessageEmpty)

	// 用户侧不带确认单直接发送
	msg, err := f.svc.SendMessage(ctx, 10, &dto.SendMessageReq{ConversationID: convID, Content: "我的猫不吃饭"})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), msg.Seq)

	history, err := f.svc.GetChatMessages(ctx, 50, convID, 0, 50)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "我的猫不吃饭", history[0].Content)

	_, err = f.svc.GetChatMessages(ctx, 99, convID, 0, 50)
	assert.ErrorIs(t, err, service.UnauthorizedError)
}
