package service_test

import (
	"context"
	"testing"

	"Pawtner/internal/api/dto"
	"Pawtner/internal/model"
	"Pawtner/internal/repository"
	"Pawtner/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanLiteralAndRegex(t *testing.T) {
	ctx := context.Background()
	setupConfig(t)
	db := setupTestDB(t)
	svc := service.NewModerationService(repository.NewBadWordRepo(db))

	seedBadWord(t, db, "spam", false, 2)
	seedBadWord(t, db, `\bwin\s+money\b`, true, 4)
	require.NoError(t, svc.Reload(ctx))

	// 字面词不区分大小写，且报告命中位置
	matches := svc.Scan("pure SPAM here")
	require.Len(t, matches, 1)
	assert.Equal(t, "spam", matches[0].Word)
	assert.Equal(t, 5, matches[0].Start)
	assert.Equal(t, 9, matches[0].End)

	// 正则命中
	matches = svc.Scan("you can win   money now")
	require.Len(t, matches, 1)
	assert.Equal(t, int8(4), matches[0].Level)

	// 同一词多次出现逐一报告
	matches = svc.Scan("spam and more spam")
	assert.Len(t, matches, 2)

	// 干净文本无命中
	assert.Empty(t, svc.Scan("a perfectly fine message"))
}

func TestReviewBlockThreshold(t *testing.T) {
	ctx := context.Background()
	setupConfig(t) // BlockLevel = 3
	db := setupTestDB(t)
	svc := service.NewModerationService(repository.NewBadWordRepo(db))

	seedBadWord(t, db, "mild", false, 1)
	seedBadWord(t, db, "severe", false, 5)
	require.NoError(t, svc.Reload(ctx))

	// 低于阈值放行
	assert.NoError(t, svc.Review(ctx, "a mild remark"))
	// 达到阈值拦截
	assert.ErrorIs(t, svc.Review(ctx, "a severe insult"), service.ErrMessageBlocked)
}

func TestReloadSkipsInvalidRegex(t *testing.T) {
	ctx := context.Background()
	setupConfig(t)
	db := setupTestDB(t)
	svc := service.NewModerationService(repository.NewBadWordRepo(db))

	seedBadWord(t, db, "ok-word", false, 5)
	seedBadWord(t, db, "([invalid", true, 5)
	require.NoError(t, svc.Reload(ctx))

	// 非法正则被跳过，合法词条仍然生效
	assert.NotEmpty(t, svc.Scan("an ok-word here"))
	assert.Empty(t, svc.Scan("([invalid"))
}

func TestReloadSwapsSnapshot(t *testing.T) {
	ctx := context.Background()
	setupConfig(t)
	db := setupTestDB(t)
	repo := repository.NewBadWordRepo(db)
	svc := service.NewModerationService(repo)

	// 初始快照为空，一切放行
	assert.Empty(t, svc.Scan("anything"))

	seedBadWord(t, db, "newword", false, 5)
	require.NoError(t, svc.Reload(ctx))
	assert.NotEmpty(t, svc.Scan("newword"))

	// 停用后刷新，词条不再命中
	var word model.BadWord
	require.NoError(t, db.Where("word = ?", "newword").First(&word).Error)
	require.NoError(t, svc.DisableBadWord(ctx, word.ID))
	assert.Empty(t, svc.Scan("newword"))
}

func TestBadWordAdminOps(t *testing.T) {
	ctx := context.Background()
	setupConfig(t)
	db := setupTestDB(t)
	svc := service.NewModerationService(repository.NewBadWordRepo(db))

	// 新增立即生效
	require.NoError(t, svc.CreateBadWord(ctx, &dto.BadWordReq{Word: "scam", Level: 5}))
	assert.NotEmpty(t, svc.Scan("a scam offer"))

	// 非法正则在入库前被拒绝
	err := svc.CreateBadWord(ctx, &dto.BadWordReq{Word: "([bad", IsRegex: true, Level: 5})
	assert.ErrorIs(t, err, service.ErrBadWordRegexInvalid)

	// 空白词条属于参数错误
	err = svc.CreateBadWord(ctx, &dto.BadWordReq{Word: "   ", Level: 5})
	assert.ErrorIs(t, err, service.ErrParamInvalid)

	// 修改词条
	var word model.BadWord
	require.NoError(t, db.Where("word = ?", "scam").First(&word).Error)
	require.NoError(t, svc.UpdateBadWord(ctx, &dto.BadWordReq{ID: word.ID, Word: "fraud", Level: 5}))
	assert.Empty(t, svc.Scan("a scam offer"))
	assert.NotEmpty(t, svc.Scan("a fraud offer"))

	// 操作不存在的词条
	err = svc.UpdateBadWord(ctx, &dto.BadWordReq{ID: 999, Word: "ghost", Level: 5})
	assert.ErrorIs(t, err, service.ErrBadWordNotFound)
	assert.ErrorIs(t, svc.DisableBadWord(ctx, 999), service.ErrBadWordNotFound)
}
