package service_test

import (
	"context"
	"errors"
	"testing"

	"Pawtner/internal/api/config"
	"Pawtner/internal/api/dto"
	"Pawtner/internal/model"
	"Pawtner/internal/pkg/consts"
	"Pawtner/internal/pkg/util"
	"Pawtner/internal/repository"
	"Pawtner/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newMatchService(t *testing.T, db *gorm.DB, notifier *fakeNotifier) service.MatchService {
	t.Helper()
	quota := service.NewQuotaService(repository.NewDailyActionRepo(db), repository.NewUserRepo(db))
	return service.NewMatchService(
		repository.NewLikeRepo(db),
		repository.NewMatchRepo(db),
		repository.NewPetRepo(db),
		repository.NewConversationRepo(db),
		quota,
		notifier,
	)
}

// 双方互相喜欢后自动成为匹配并开启会话
func TestSendLikeMutualMatch(t *testing.T) {
	ctx := context.Background()
	setupConfig(t)
	setupRedis(t)
	db := setupTestDB(t)
	notifier := &fakeNotifier{}
	svc := newMatchService(t, db, notifier)

	seedUser(t, db, 10, consts.RoleUser, false)
	seedUser(t, db, 20, consts.RoleUser, false)
	seedPet(t, db, 1, 10)
	seedPet(t, db, 2, 20)

	// 第一次喜欢：只产生待回应的匹配
	res, err := svc.SendLike(ctx, 10, &dto.SendLikeReq{FromPetID: 1, ToPetID: 2})
	require.NoError(t, err)
	assert.False(t, res.Matched)
	assert.True(t, notifier.pushed(20, consts.EventNewLike))

	// 对方回赞：互相喜欢立即成为匹配
	res, err = svc.SendLike(ctx, 20, &dto.SendLikeReq{FromPetID: 2, ToPetID: 1})
	require.NoError(t, err)
	assert.True(t, res.Matched)
	assert.NotZero(t, res.MatchID)
	assert.True(t, notifier.pushed(10, consts.EventNewMatch))
	assert.True(t, notifier.pushed(20, consts.EventNewMatch))

	var match model.Match
	require.NoError(t, db.First(&match, res.MatchID).Error)
	assert.Equal(t, consts.MatchStatusAccepted, match.Status)

	// 会话已开启且双方均为成员
	var conv model.Conversation
	require.NoError(t, db.Where("match_id = ?", match.ID).First(&conv).Error)
	var memberCount int64
	db.Model(&model.ConversationMember{}).Where("conversation_id = ?", conv.ID).Count(&memberCount)
	assert.Equal(t, int64(2), memberCount)
}

func TestSendLikeOwnPetRejected(t *testing.T) {
	ctx := context.Background()
	setupConfig(t)
	setupRedis(t)
	db := setupTestDB(t)
	svc := newMatchService(t, db, &fakeNotifier{})

	seedUser(t, db, 10, consts.RoleUser, false)
	seedPet(t, db, 1, 10)
	seedPet(t, db, 2, 10)

	_, err := svc.SendLike(ctx, 10, &dto.SendLikeReq{FromPetID: 1, ToPetID: 2})
	assert.ErrorIs(t, err, service.ErrLikeSelf)

	// 自喜欢不产生任何副作用
	var likeCount int64
	db.Model(&model.Like{}).Count(&likeCount)
	assert.Equal(t, int64(0), likeCount)
}

func TestSendLikeValidations(t *testing.T) {
	ctx := context.Background()
	setupConfig(t)
	setupRedis(t)
	db := setupTestDB(t)
	svc := newMatchService(t, db, &fakeNotifier{})

	seedUser(t, db, 10, consts.RoleUser, false)
	seedUser(t, db, 20, consts.RoleUser, false)
	seedPet(t, db, 1, 10)
	seedPet(t, db, 2, 20)

	// 宠物不存在
	_, err := svc.SendLike(ctx, 10, &dto.SendLikeReq{FromPetID: 99, ToPetID: 2})
	assert.ErrorIs(t, err, service.ErrPetNotFound)
	_, err = svc.SendLike(ctx, 10, &dto.SendLikeReq{FromPetID: 1, ToPetID: 99})
	assert.ErrorIs(t, err, service.ErrPetNotFound)

	// 用他人的宠物发起
	_, err = svc.SendLike(ctx, 10, &dto.SendLikeReq{FromPetID: 2, ToPetID: 1})
	assert.ErrorIs(t, err, service.ErrPetNotOwned)

	// 重复喜欢
	_, err = svc.SendLike(ctx, 10, &dto.SendLikeReq{FromPetID: 1, ToPetID: 2})
	require.NoError(t, err)
	_, err = svc.SendLike(ctx, 10, &dto.SendLikeReq{FromPetID: 1, ToPetID: 2})
	assert.ErrorIs(t, err, service.ErrLikeDuplicate)
}

type failingMatchRepo struct {
	repository.MatchRepo
}

func (r *failingMatchRepo) GetMatchByPairKey(ctx context.Context, pairKey string) (*model.Match, error) {
	return nil, errors.New("storage unavailable")
}

// 匹配表查询失败时喜欢被拒绝，而不是当作不存在放行
func TestSendLikeMatchLookupFailure(t *testing.T) {
	ctx := context.Background()
	setupConfig(t)
	setupRedis(t)
	db := setupTestDB(t)
	quota := service.NewQuotaService(repository.NewDailyActionRepo(db), repository.NewUserRepo(db))
	svc := service.NewMatchService(
		repository.NewLikeRepo(db),
		&failingMatchRepo{MatchRepo: repository.NewMatchRepo(db)},
		repository.NewPetRepo(db),
		repository.NewConversationRepo(db),
		quota,
		&fakeNotifier{},
	)

	seedUser(t, db, 10, consts.RoleUser, false)
	seedUser(t, db, 20, consts.RoleUser, false)
	seedPet(t, db, 1, 10)
	seedPet(t, db, 2, 20)

	_, err := svc.SendLike(ctx, 10, &dto.SendLikeReq{FromPetID: 1, ToPetID: 2})
	assert.ErrorIs(t, err, service.UnExpectedError)

	// 失败的请求不落库
	var likeCount int64
	db.Model(&model.Like{}).Count(&likeCount)
	assert.Equal(t, int64(0), likeCount)
}

func TestSendLikeDailyQuota(t *testing.T) {
	ctx := context.Background()
	setupConfig(t)
	setupRedis(t)
	config.Cfg.Quota.LikeDaily = 1
	config.Cfg.Quota.LikeDailyVip = 2
	db := setupTestDB(t)
	svc := newMatchService(t, db, &fakeNotifier{})

	seedUser(t, db, 10, consts.RoleUser, false)
	seedUser(t, db, 20, consts.RoleUser, true)
	seedUser(t, db, 30, consts.RoleUser, false)
	seedPet(t, db, 1, 10)
	seedPet(t, db, 2, 20)
	seedPet(t, db, 3, 30)
	seedPet(t, db, 4, 30)

	_, err := svc.SendLike(ctx, 10, &dto.SendLikeReq{FromPetID: 1, ToPetID: 3})
	require.NoError(t, err)
	_, err = svc.SendLike(ctx, 10, &dto.SendLikeReq{FromPetID: 1, ToPetID: 4})
	assert.ErrorIs(t, err, service.ErrLikeQuotaExceeded)

	// VIP 享有更高限额
	_, err = svc.SendLike(ctx, 20, &dto.SendLikeReq{FromPetID: 2, ToPetID: 3})
	require.NoError(t, err)
	_, err = svc.SendLike(ctx, 20, &dto.SendLikeReq{FromPetID: 2, ToPetID: 4})
	require.NoError(t, err)
}

func TestRespondToLikeAcceptAndPass(t *testing.T) {
	ctx := context.Background()
	setupConfig(t)
	setupRedis(t)
	db := setupTestDB(t)
	notifier := &fakeNotifier{}
	svc := newMatchService(t, db, notifier)

	seedUser(t, db, 10, consts.RoleUser, false)
	seedUser(t, db, 20, consts.RoleUser, false)
	seedPet(t, db, 1, 10)
	seedPet(t, db, 2, 20)

	_, err := svc.SendLike(ctx, 10, &dto.SendLikeReq{FromPetID: 1, ToPetID: 2})
	require.NoError(t, err)

	var match model.Match
	require.NoError(t, db.Where("pair_key = ?", repository.PairKey(1, 2)).First(&match).Error)

	// 非当事人无法回应
	_, err = svc.RespondToLike(ctx, 99, &dto.RespondLikeReq{MatchID: match.ID, Action: consts.MatchActionMatch})
	assert.ErrorIs(t, err, service.ErrMatchNotFound)

	// 接受：开启会话并通知对方
	accepted, err := svc.RespondToLike(ctx, 20, &dto.RespondLikeReq{MatchID: match.ID, Action: consts.MatchActionMatch})
	require.NoError(t, err)
	assert.Equal(t, consts.MatchStatusAccepted, accepted.Status)
	assert.NotZero(t, accepted.ConversationID)
	assert.True(t, notifier.pushed(10, consts.EventMatchResponse))

	// 重复接受幂等
	again, err := svc.RespondToLike(ctx, 20, &dto.RespondLikeReq{MatchID: match.ID, Action: consts.MatchActionMatch})
	require.NoError(t, err)
	assert.Equal(t, accepted.ConversationID, again.ConversationID)

	// 拒绝：状态流转并关闭会话
	rejected, err := svc.RespondToLike(ctx, 20, &dto.RespondLikeReq{MatchID: match.ID, Action: consts.MatchActionPass})
	require.NoError(t, err)
	assert.Equal(t, consts.MatchStatusRejected, rejected.Status)

	var conv model.Conversation
	require.NoError(t, db.Where("match_id = ?", match.ID).First(&conv).Error)
	assert.Equal(t, consts.ConvStatusClosed, conv.Status)

	// 拒绝后无法再接受，也无法对该宠物对重新发起喜欢
	_, err = svc.RespondToLike(ctx, 20, &dto.RespondLikeReq{MatchID: match.ID, Action: consts.MatchActionMatch})
	assert.ErrorIs(t, err, service.ErrMatchAlreadyHandled)
	_, err = svc.SendLike(ctx, 20, &dto.SendLikeReq{FromPetID: 2, ToPetID: 1})
	assert.ErrorIs(t, err, service.ErrMatchAlreadyHandled)

	_, err = svc.RespondToLike(ctx, 20, &dto.RespondLikeReq{MatchID: 9999, Action: consts.MatchActionPass})
	assert.ErrorIs(t, err, service.ErrMatchNotFound)
}

func TestGetLikesReceived(t *testing.T) {
	ctx := context.Background()
	setupConfig(t)
	setupRedis(t)
	db := setupTestDB(t)
	svc := newMatchService(t, db, &fakeNotifier{})

	seedUser(t, db, 10, consts.RoleUser, false)
	seedUser(t, db, 20, consts.RoleUser, false)
	seedPet(t, db, 1, 10)
	seedPet(t, db, 2, 20)

	// 无任何喜欢时返回空列表
	likes, err := svc.GetLikesReceived(ctx, 20, &dto.GetLikesReceivedReq{PageReq: dto.PageReq{Page: 1, PageSize: 10}})
	require.NoError(t, err)
	assert.Empty(t, likes)

	_, err = svc.SendLike(ctx, 10, &dto.SendLikeReq{FromPetID: 1, ToPetID: 2})
	require.NoError(t, err)

	likes, err = svc.GetLikesReceived(ctx, 20, &dto.GetLikesReceivedReq{PageReq: dto.PageReq{Page: 1, PageSize: 10}})
	require.NoError(t, err)
	require.Len(t, likes, 1)
	assert.Equal(t, uint64(10), likes[0].FromUserID)
	assert.NotZero(t, likes[0].MatchID)

	// 显式的零值宠物 ID 属于参数错误，不等同于未过滤
	_, err = svc.GetLikesReceived(ctx, 20, &dto.GetLikesReceivedReq{PageReq: dto.PageReq{Page: 1, PageSize: 10}, PetID: util.PtrUint64(0)})
	assert.ErrorIs(t, err, service.ErrParamInvalid)

	// 他人的宠物不能作为过滤条件
	_, err = svc.GetLikesReceived(ctx, 20, &dto.GetLikesReceivedReq{PageReq: dto.PageReq{Page: 1, PageSize: 10}, PetID: util.PtrUint64(1)})
	assert.ErrorIs(t, err, service.ErrPetNotOwned)

	// 回应后不再出现在待处理列表
	_, err = svc.RespondToLike(ctx, 20, &dto.RespondLikeReq{MatchID: likes[0].MatchID, Action: consts.MatchActionPass})
	require.NoError(t, err)
	likes, err = svc.GetLikesReceived(ctx, 20, &dto.GetLikesReceivedReq{PageReq: dto.PageReq{Page: 1, PageSize: 10}})
	require.NoError(t, err)
	assert.Empty(t, likes)
}

func TestBadgeCountsAndStats(t *testing.T) {
	ctx := context.Background()
	setupConfig(t)
	setupRedis(t)
	db := setupTestDB(t)
	svc := newMatchService(t, db, &fakeNotifier{})

	seedUser(t, db, 10, consts.RoleUser, false)
	seedUser(t, db, 20, consts.RoleUser, false)
	seedPet(t, db, 1, 10)
	seedPet(t, db, 2, 20)

	// 无任何活动时各项为零
	counts, err := svc.GetBadgeCounts(ctx, 20)
	require.NoError(t, err)
	assert.Zero(t, counts.LikesReceived)
	assert.Zero(t, counts.Matches)

	stats, err := svc.GetStats(ctx, 20)
	require.NoError(t, err)
	assert.Zero(t, stats.LikesSent)

	_, err = svc.SendLike(ctx, 10, &dto.SendLikeReq{FromPetID: 1, ToPetID: 2})
	require.NoError(t, err)
	_, err = svc.SendLike(ctx, 20, &dto.SendLikeReq{FromPetID: 2, ToPetID: 1})
	require.NoError(t, err)

	counts, err = svc.GetBadgeCounts(ctx, 20)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), counts.LikesReceived)
	assert.Equal(t, uint64(1), counts.Matches)

	stats, err = svc.GetStats(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), stats.LikesSent)
	assert.Equal(t, uint64(1), stats.LikesReceived)
	assert.Equal(t, uint64(1), stats.Matches)
	assert.Zero(t, stats.Passes)
}
