package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/finderapp/finder-service/internal/domain"
	"github.com/finderapp/finder-service/internal/events"
	"github.com/finderapp/finder-service/internal/persistence"
	"github.com/finderapp/finder-service/internal/repository"
	apperrors "github.com/finderapp/finder-service/pkg/util"
)

// NotificationJob is the queue payload produced when a subscribed person
// record changes status.
type NotificationJob struct {
	ID         string              `json:"id"`
	PersonID   int64               `json:"person_id"`
	PersonName string              `json:"person_name"`
	NewStatus  domain.PersonStatus `json:"new_status"`
}

// NotificationService fans status changes out to subscribers. Jobs go
// through a Redis queue so delivery does not block the request that caused
// the status change; when Redis is unreachable it falls back to synchronous
// delivery.
type NotificationService struct {
	dispatcher events.Dispatcher
	redis      *persistence.Redis
	subs       repository.SubscriptionRepository
	notes      repository.NotificationRepository
	logger     *zap.Logger
	queueKey   string
}

// NewNotificationService creates the service.
func NewNotificationService(
	dispatcher events.Dispatcher,
	redis *persistence.Redis,
	subs repository.SubscriptionRepository,
	notes repository.NotificationRepository,
	logger *zap.Logger,
	queueKey string,
) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		redis:      redis,
		subs:       subs,
		notes:      notes,
		logger:     logger,
		queueKey:   queueKey,
	}
}

// RegisterHandlers subscribes to domain events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventPersonStatusChanged, n.handleStatusChanged)
}

// QueueKey returns the Redis list the worker consumes.
func (n *NotificationService) QueueKey() string {
	return n.queueKey
}

func (n *NotificationService) handleStatusChanged(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.PersonStatusChangedPayload)
	if !ok {
		return nil
	}

	job := NotificationJob{
		ID:         uuid.NewString(),
		PersonID:   event.PersonID,
		PersonName: payload.Name,
		NewStatus:  payload.NewStatus,
	}

	data, err := json.Marshal(job)
	if err != nil {
		return err
	}

	if n.redis != nil && n.redis.Client != nil {
		err := n.redis.Client.LPush(ctx, n.queueKey, data).Err()
		if err == nil {
			return nil
		}
		n.logger.Warn("failed to enqueue notification job; delivering inline", zap.Error(err))
	}
	return n.Deliver(ctx, job)
}

// Deliver writes one notification row per active subscriber of the person.
func (n *NotificationService) Deliver(ctx context.Context, job NotificationJob) error {
	subs, err := n.subs.ListActiveByPerson(ctx, job.PersonID)
	if err != nil {
		return err
	}

	message := fmt.Sprintf("%s status changed to %s", job.PersonName, job.NewStatus)
	for _, sub := range subs {
		note := &domain.Notification{
			UserID:   sub.UserID,
			PersonID: job.PersonID,
			Message:  message,
		}
		if err := n.notes.Create(ctx, note); err != nil {
			n.logger.Error("failed to create notification",
				zap.Int64("user_id", sub.UserID),
				zap.Int64("person_id", job.PersonID),
				zap.Error(err))
		}
	}

	n.logger.Info("notifications delivered",
		zap.String("job_id", job.ID),
		zap.Int64("person_id", job.PersonID),
		zap.Int("subscribers", len(subs)))
	return nil
}

// ListForUser returns the caller's notifications, newest first.
func (n *NotificationService) ListForUser(ctx context.Context, userID int64) ([]domain.Notification, error) {
	return n.notes.ListByUser(ctx, userID)
}

// MarkRead marks an owned notification as read.
func (n *NotificationService) MarkRead(ctx context.Context, userID, noteID int64) error {
	note, err := n.notes.GetByID(ctx, noteID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("notification", nil)
		}
		return err
	}
	if note.UserID != userID {
		return apperrors.NewForbidden("you do not own this notification")
	}
	return n.notes.MarkRead(ctx, noteID)
}
