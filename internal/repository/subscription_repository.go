package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/finderapp/finder-service/internal/domain"
)

// SubscriptionView joins a subscription with the person record it watches,
// matching what the my-searches page renders.
type SubscriptionView struct {
	ID          int64
	PersonID    int64
	Active      bool
	PersonName  string
	Status      domain.PersonStatus
	LastUpdated time.Time
}

// SubscriptionRepository defines persistence access for subscriptions.
type SubscriptionRepository interface {
	Create(ctx context.Context, sub *domain.Subscription) error
	GetByID(ctx context.Context, id int64) (*domain.Subscription, error)
	GetByUserAndPerson(ctx context.Context, userID, personID int64) (*domain.Subscription, error)
	SetActive(ctx context.Context, id int64, active bool) error
	Delete(ctx context.Context, id int64) error
	ListByUser(ctx context.Context, userID int64) ([]SubscriptionView, error)
	ListActiveByPerson(ctx context.Context, personID int64) ([]domain.Subscription, error)
}

type subscriptionRepository struct {
	db DB
}

// NewSubscriptionRepository returns a Postgres-backed implementation.
func NewSubscriptionRepository(db DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) Create(ctx context.Context, sub *domain.Subscription) error {
	const query = `
        INSERT INTO subscriptions (user_id, person_id, is_active)
        VALUES ($1, $2, $3)
        RETURNING id, created_at`

	return r.db.QueryRow(ctx, query,
		sub.UserID,
		sub.PersonID,
		sub.Active,
	).Scan(&sub.ID, &sub.CreatedAt)
}

func (r *subscriptionRepository) GetByID(ctx context.Context, id int64) (*domain.Subscription, error) {
	const query = `
        SELECT id, user_id, person_id, is_active, created_at
        FROM subscriptions WHERE id=$1`

	var sub domain.Subscription
	if err := r.db.QueryRow(ctx, query, id).Scan(
		&sub.ID,
		&sub.UserID,
		&sub.PersonID,
		&sub.Active,
		&sub.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *subscriptionRepository) GetByUserAndPerson(ctx context.Context, userID, personID int64) (*domain.Subscription, error) {
	const query = `
        SELECT id, user_id, person_id, is_active, created_at
        FROM subscriptions WHERE user_id=$1 AND person_id=$2`

	var sub domain.Subscription
	if err := r.db.QueryRow(ctx, query, userID, personID).Scan(
		&sub.ID,
		&sub.UserID,
		&sub.PersonID,
		&sub.Active,
		&sub.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *subscriptionRepository) SetActive(ctx context.Context, id int64, active bool) error {
	const query = `UPDATE subscriptions SET is_active=$1 WHERE id=$2`

	cmd, err := r.db.Exec(ctx, query, active, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *subscriptionRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM subscriptions WHERE id=$1`

	cmd, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *subscriptionRepository) ListByUser(ctx context.Context, userID int64) ([]SubscriptionView, error) {
	const query = `
        SELECT s.id, s.person_id, s.is_active, p.name, p.status, p.updated_at
        FROM subscriptions s
        INNER JOIN persons p ON p.id = s.person_id
        WHERE s.user_id=$1
        ORDER BY p.updated_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var views []SubscriptionView
	for rows.Next() {
		var v SubscriptionView
		if err := rows.Scan(&v.ID, &v.PersonID, &v.Active, &v.PersonName, &v.Status, &v.LastUpdated); err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, rows.Err()
}

func (r *subscriptionRepository) ListActiveByPerson(ctx context.Context, personID int64) ([]domain.Subscription, error) {
	const query = `
        SELECT id, user_id, person_id, is_active, created_at
        FROM subscriptions WHERE person_id=$1 AND is_active=TRUE`

	rows, err := r.db.Query(ctx, query, personID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []domain.Subscription
	for rows.Next() {
		var sub domain.Subscription
		if err := rows.Scan(&sub.ID, &sub.UserID, &sub.PersonID, &sub.Active, &sub.CreatedAt); err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}
