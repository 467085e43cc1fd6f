package service_test

import (
	"context"
	"errors"
	"testing"

	"Pawtner/internal/api/config"
	"Pawtner/internal/api/dto"
	"Pawtner/internal/pkg/consts"
	"Pawtner/internal/repository"
	"Pawtner/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type aiFixture struct {
	svc     service.ChatAIService
	msgRepo *fakeMessageRepo
	asker   *fakeAsker
	db      *gorm.DB
}

func newAIFixture(t *testing.T) *aiFixture {
	t.Helper()
	setupConfig(t)
	db := setupTestDB(t)
	msgRepo := &fakeMessageRepo{}
	asker := &fakeAsker{answer: "先观察食欲和精神状态"}
	moderation := service.NewModerationService(repository.NewBadWordRepo(db))
	quota := service.NewQuotaService(repository.NewDailyActionRepo(db), repository.NewUserRepo(db))
	return &aiFixture{
		svc:     service.NewChatAIService(repository.NewConversationRepo(db), msgRepo, asker, moderation, quota),
		msgRepo: msgRepo,
		asker:   asker,
		db:      db,
	}
}

func TestAskAIPersistsQuestionAndAnswer(t *testing.T) {
	ctx := context.Background()
	f := newAIFixture(t)
	seedUser(t, f.db, 10, consts.RoleUser, false)

	res, err := f.svc.AskAI(ctx, 10, &dto.AskAIReq{Question: "  猫咪呕吐怎么办  "})
	require.NoError(t, err)
	require.NotZero(t, res.ConversationID)

	// 提问在前，回答在后，回答的发送者为 AI
	assert.Equal(t, uint64(1), res.Question.Seq)
	assert.Equal(t, "猫咪呕吐怎么办", res.Question.Content)
	assert.Equal(t, uint64(10), res.Question.SenderID)
	assert.Equal(t, uint64(2), res.Answer.Seq)
	assert.Equal(t, "先观察食欲和精神状态", res.Answer.Content)
	assert.Zero(t, res.Answer.SenderID)
	assert.Equal(t, consts.MsgTypeAI, res.Answer.MsgType)

	// 传给模型的是去除首尾空白后的问题
	require.Len(t, f.asker.asked, 1)
	assert.Equal(t, "猫咪呕吐怎么办", f.asker.asked[0])

	// 历史按序返回，二次提问复用同一会话
	res2, err := f.svc.AskAI(ctx, 10, &dto.AskAIReq{Question: "多久能恢复"})
	require.NoError(t, err)
	assert.Equal(t, res.ConversationID, res2.ConversationID)

	history, err := f.svc.GetChatMessages(ctx, 10, 0, 50)
	require.NoError(t, err)
	require.Len(t, history, 4)
	assert.Equal(t, "猫咪呕吐怎么办", history[0].Content)
	assert.Equal(t, "多久能恢复", history[2].Content)
}

func TestAskAIEmptyQuestion(t *testing.T) {
	ctx := context.Background()
	f := newAIFixture(t)
	seedUser(t, f.db, 10, consts.RoleUser, false)

	_, err := f.svc.AskAI(ctx, 10, &dto.AskAIReq{Question: "   "})
	assert.ErrorIs(t, err, service.ErrMessageEmpty)
	assert.Empty(t, f.asker.asked)
}

func TestAskAIQuota(t *testing.T) {
	ctx := context.Background()
	f := newAIFixture(t)
	seedUser(t, f.db, 10, consts.RoleUser, false)
	config.Cfg.Quota.AIQuestionDaily = 1

	_, err := f.svc.AskAI(ctx, 10, &dto.AskAIReq{Question: "第一问"})
	require.NoError(t, err)
	_, err = f.svc.AskAI(ctx, 10, &dto.AskAIReq{Question: "第二问"})
	assert.ErrorIs(t, err, service.ErrAIQuotaExceeded)
	assert.Len(t, f.asker.asked, 1)
}

func TestAskAIBlockedQuestion(t *testing.T) {
	ctx := context.Background()
	f := newAIFixture(t)
	seedUser(t, f.db, 10, consts.RoleUser, false)

	seedBadWord(t, f.db, "badword", false, 5)
	moderation := service.NewModerationService(repository.NewBadWordRepo(f.db))
	require.NoError(t, moderation.Reload(ctx))
	quota := service.NewQuotaService(repository.NewDailyActionRepo(f.db), repository.NewUserRepo(f.db))
	f.svc = service.NewChatAIService(repository.NewConversationRepo(f.db), f.msgRepo, f.asker, moderation, quota)

	_, err := f.svc.AskAI(ctx, 10, &dto.AskAIReq{Question: "a badword question"})
	assert.ErrorIs(t, err, service.ErrMessageBlocked)
	assert.Empty(t, f.asker.asked)
}

func TestAskAIModelFailure(t *testing.T) {
	ctx := context.Background()
	f := newAIFixture(t)
	seedUser(t, f.db, 10, consts.RoleUser, false)
	f.asker.err = errors.New("model unavailable")

	_, err := f.svc.AskAI(ctx, 10, &dto.AskAIReq{Question: "狗狗掉毛"})
	assert.ErrorIs(t, err, service.UnExpectedError)

	// 失败的提问不计入当日额度
	quota := service.NewQuotaService(repository.NewDailyActionRepo(f.db), repository.NewUserRepo(f.db))
	config.Cfg.Quota.AIQuestionDaily = 1
	assert.NoError(t, quota.CanPerformAction(ctx, 10, consts.ActionAIQuestion))
}

func TestAskAISaveFailure(t *testing.T) {
	ctx := context.Background()
	f := newAIFixture(t)
	seedUser(t, f.db, 10, consts.RoleUser, false)
	f.msgRepo.failSave = true

	_, err := f.svc.AskAI(ctx, 10, &dto.AskAIReq{Question: "仓鼠冬眠吗"})
	assert.ErrorIs(t, err, service.UnExpectedError)
}

func TestAIHistoryWithoutConversation(t *testing.T) {
	ctx := context.Background()
	f := newAIFixture(t)

	history, err := f.svc.GetChatMessages(ctx, 77, 0, 50)
	require.NoError(t, err)
	assert.Empty(t, history)
}
