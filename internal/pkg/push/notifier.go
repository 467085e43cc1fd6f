package push

import (
	"Pawtner/internal/pkg/consts"
	"Pawtner/internal/pkg/redis"
	"context"
	log "log/slog"
	"strconv"

	"github.com/goccy/go-json"
)

// Notifier 实时推送抽象：尽力而为，不保证送达，不重试，不落地
// 未连接的客户端通过拉取接口自行补齐
type Notifier interface {
	Push(ctx context.Context, targetUserID uint64, event string, payload interface{})
}

// Envelope 推送信封
type Envelope struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type redisNotifier struct{}

// NewRedisNotifier 基于 Redis 发布订阅的推送实现
// WS 网关订阅用户个人频道，在线即收，离线即丢
func NewRedisNotifier() Notifier {
	return &redisNotifier{}
}

// Push 发布事件到目标用户频道，任何失败只记日志，不影响调用方
func (s *redisNotifier) Push(ctx context.Context, targetUserID uint64, event string, payload interface{}) {
	data, err := json.Marshal(&Envelope{Type: event, Data: payload})
	if err != nil {
		log.ErrorContext(ctx, "推送序列化失败", "event", event, "err", err)
		return
	}

	channel := consts.IMUserKey + strconv.FormatUint(targetUserID, 10)
	if err := redis.Publish(ctx, channel, data); err != nil {
		log.WarnContext(ctx, "推送发布失败", "event", event, "target", targetUserID, "err", err)
	}
}
