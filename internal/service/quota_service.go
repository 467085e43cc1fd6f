package service

import (
	"Pawtner/internal/api/config"
	"Pawtner/internal/pkg/consts"
	"Pawtner/internal/pkg/util"
	"Pawtner/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"time"

	"gorm.io/gorm"
)

// QuotaService 每日动作限额
// 先检查后记录，两步之间的并发窗口接受少量超额
type QuotaService interface {
	CanPerformAction(ctx context.Context, userID uint64, action string) error
	RecordAction(ctx context.Context, userID uint64, action string) error
}

type quotaServiceImpl struct {
	dailyRepo repository.DailyActionRepo
	userRepo  repository.UserRepo
}

func NewQuotaService(dailyRepo repository.DailyActionRepo, userRepo repository.UserRepo) QuotaService {
	return &quotaServiceImpl{dailyRepo: dailyRepo, userRepo: userRepo}
}

// CanPerformAction 检查当日剩余额度，超限返回对应动作的限额错误
func (s *quotaServiceImpl) CanPerformAction(ctx context.Context, userID uint64, action string) error {
	ceiling, limitErr, err := s.resolveCeiling(ctx, userID, action)
	if err != nil {
		return err
	}
	// 零或负数表示不限额
	if ceiling <= 0 {
		return nil
	}

	count, err := s.dailyRepo.GetCount(ctx, userID, action, util.DayString(time.Now()))
	if err != nil {
		log.ErrorContext(ctx, "查询每日限额失败", "user", userID, "action", action, "err", err)
		return UnExpectedError
	}
	if count >= ceiling {
		return limitErr
	}
	return nil
}

// RecordAction 记录一次动作，仅在动作成功后调用
func (s *quotaServiceImpl) RecordAction(ctx context.Context, userID uint64, action string) error {
	if err := s.dailyRepo.IncrCount(ctx, userID, action, util.DayString(time.Now())); err != nil {
		log.ErrorContext(ctx, "记录每日动作失败", "user", userID, "action", action, "err", err)
		return UnExpectedError
	}
	return nil
}

// resolveCeiling 解析动作对应的限额与超限错误，喜欢动作区分 VIP
func (s *quotaServiceImpl) resolveCeiling(ctx context.Context, userID uint64, action string) (int64, error, error) {
	switch action {
	case consts.ActionSendLike:
		user, err := s.userRepo.GetUser(ctx, userID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil, ErrUserNotFound
		}
		if err != nil {
			return 0, nil, UnExpectedError
		}
		if user.IsVip {
			return config.Cfg.Quota.LikeDailyVip, ErrLikeQuotaExceeded, nil
		}
		return config.Cfg.Quota.LikeDaily, ErrLikeQuotaExceeded, nil
	case consts.ActionAIQuestion:
		return config.Cfg.Quota.AIQuestionDaily, ErrAIQuotaExceeded, nil
	default:
		return 0, nil, ErrActionInvalid
	}
}
