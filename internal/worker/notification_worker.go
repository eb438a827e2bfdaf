package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/finderapp/finder-service/internal/persistence"
	"github.com/finderapp/finder-service/internal/service"
)

// NotificationWorker drains the Redis notification queue and hands each job
// to the notification service for delivery.
type NotificationWorker struct {
	redis         *persistence.Redis
	notifications *service.NotificationService
	logger        *zap.Logger
}

// NewNotificationWorker constructs the worker.
func NewNotificationWorker(r *persistence.Redis, notifications *service.NotificationService, logger *zap.Logger) *NotificationWorker {
	return &NotificationWorker{redis: r, notifications: notifications, logger: logger}
}

// Run blocks consuming jobs until the context is cancelled.
func (w *NotificationWorker) Run(ctx context.Context) {
	if w.redis == nil || w.redis.Client == nil {
		w.logger.Warn("redis unavailable; notification worker not started")
		return
	}

	queueKey := w.notifications.QueueKey()
	w.logger.Info("notification worker started", zap.String("queue", queueKey))

	for {
		if ctx.Err() != nil {
			return
		}

		res, err := w.redis.Client.BRPop(ctx, 5*time.Second, queueKey).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			if ctx.Err() != nil {
				return
			}
			w.logger.Warn("notification queue read failed", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}
		if len(res) != 2 {
			continue
		}

		var job service.NotificationJob
		if err := json.Unmarshal([]byte(res[1]), &job); err != nil {
			w.logger.Error("malformed notification job dropped", zap.Error(err))
			continue
		}

		if err := w.notifications.Deliver(ctx, job); err != nil {
			w.logger.Error("notification delivery failed",
				zap.String("job_id", job.ID), zap.Error(err))
		}
	}
}
