package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/finderapp/finder-service/internal/domain"
)

// NotificationRepository defines persistence access for notifications.
type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	GetByID(ctx context.Context, id int64) (*domain.Notification, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Notification, error)
	MarkRead(ctx context.Context, id int64) error
}

type notificationRepository struct {
	db DB
}

// NewNotificationRepository returns a Postgres-backed implementation.
func NewNotificationRepository(db DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, note *domain.Notification) error {
	const query = `
        INSERT INTO notifications (user_id, person_id, message)
        VALUES ($1, $2, $3)
        RETURNING id, created_at`

	return r.db.QueryRow(ctx, query,
		note.UserID,
		note.PersonID,
		note.Message,
	).Scan(&note.ID, &note.CreatedAt)
}

func (r *notificationRepository) GetByID(ctx context.Context, id int64) (*domain.Notification, error) {
	const query = `
        SELECT id, user_id, person_id, message, is_read, created_at
        FROM notifications WHERE id=$1`

	var note domain.Notification
	if err := r.db.QueryRow(ctx, query, id).Scan(
		&note.ID,
		&note.UserID,
		&note.PersonID,
		&note.Message,
		&note.Read,
		&note.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Notification, error) {
	const query = `
        SELECT id, user_id, person_id, message, is_read, created_at
        FROM notifications WHERE user_id=$1
        ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []domain.Notification
	for rows.Next() {
		var note domain.Notification
		if err := rows.Scan(&note.ID, &note.UserID, &note.PersonID, &note.Message, &note.Read, &note.CreatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	return notes, rows.Err()
}

func (r *notificationRepository) MarkRead(ctx context.Context, id int64) error {
	const query = `UPDATE notifications SET is_read=TRUE WHERE id=$1`

	cmd, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
