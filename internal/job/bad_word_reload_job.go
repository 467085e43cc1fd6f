package job

import (
	"Pawtner/internal/pkg/logger"
	"Pawtner/internal/pkg/redis"
	"Pawtner/internal/service"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const reloadLockKey = "lock:bad_word_reload"

// BadWordReloadJob 定时刷新违禁词快照
// 多实例部署时通过分布式锁保证同一周期只有一个实例执行
type BadWordReloadJob struct {
	moderationSvc service.ModerationService
}

func NewBadWordReloadJob(moderationSvc service.ModerationService) *BadWordReloadJob {
	return &BadWordReloadJob{moderationSvc: moderationSvc}
}

func (s *BadWordReloadJob) Run() {
	traceID := "job-badword-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	locked, err := redis.TryLock(ctx, reloadLockKey, traceID, 30*time.Second, 1)
	if err != nil {
		log.ErrorContext(ctx, "违禁词刷新抢锁失败", "err", err)
		return
	}
	if !locked {
		return
	}
	defer redis.UnLock(ctx, reloadLockKey, traceID)

	if err := s.reload(ctx); err != nil {
		log.ErrorContext(ctx, "违禁词快照刷新失败", "err", err)
		return
	}
	log.InfoContext(ctx, "违禁词快照刷新完成")
}

func (s *BadWordReloadJob) reload(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return errors.Wrap(s.moderationSvc.Reload(ctx), "reload bad words")
}
