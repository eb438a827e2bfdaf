package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finderapp/finder-service/internal/domain"
)

func newSubscriptionMock(t *testing.T) (pgxmock.PgxPoolIface, SubscriptionRepository) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return mock, NewSubscriptionRepository(mock)
}

func TestSubscriptionRepositoryCreate(t *testing.T) {
	mock, repo := newSubscriptionMock(t)

	created := time.Now()
	mock.ExpectQuery(`INSERT INTO subscriptions`).
		WithArgs(int64(1), int64(5), true).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(10), created))

	sub := &domain.Subscription{UserID: 1, PersonID: 5, Active: true}
	require.NoError(t, repo.Create(context.Background(), sub))

	assert.Equal(t, int64(10), sub.ID)
	assert.Equal(t, created, sub.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscriptionRepositoryGetByID(t *testing.T) {
	mock, repo := newSubscriptionMock(t)

	created := time.Now()
	mock.ExpectQuery(`SELECT id, user_id, person_id, is_active, created_at`).
		WithArgs(int64(10)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "person_id", "is_active", "created_at"}).
			AddRow(int64(10), int64(1), int64(5), true, created))

	sub, err := repo.GetByID(context.Background(), 10)
	require.NoError(t, err)

	assert.Equal(t, int64(1), sub.UserID)
	assert.Equal(t, int64(5), sub.PersonID)
	assert.True(t, sub.Active)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscriptionRepositoryGetByIDNoRows(t *testing.T) {
	mock, repo := newSubscriptionMock(t)

	mock.ExpectQuery(`SELECT id, user_id, person_id, is_active, created_at`).
		WithArgs(int64(99)).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 99)
	require.ErrorIs(t, err, pgx.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscriptionRepositorySetActive(t *testing.T) {
	mock, repo := newSubscriptionMock(t)

	mock.ExpectExec(`UPDATE subscriptions SET is_active`).
		WithArgs(false, int64(10)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, repo.SetActive(context.Background(), 10, false))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscriptionRepositorySetActiveMissingRow(t *testing.T) {
	mock, repo := newSubscriptionMock(t)

	mock.ExpectExec(`UPDATE subscriptions SET is_active`).
		WithArgs(true, int64(99)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.SetActive(context.Background(), 99, true)
	require.ErrorIs(t, err, pgx.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscriptionRepositoryDelete(t *testing.T) {
	mock, repo := newSubscriptionMock(t)

	mock.ExpectExec(`DELETE FROM subscriptions`).
		WithArgs(int64(10)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	require.NoError(t, repo.Delete(context.Background(), 10))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscriptionRepositoryListByUser(t *testing.T) {
	mock, repo := newSubscriptionMock(t)

	updated := time.Now()
	mock.ExpectQuery(`INNER JOIN persons`).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "person_id", "is_active", "name", "status", "updated_at"}).
			AddRow(int64(10), int64(5), true, "Jane Doe", domain.StatusUnderSearch, updated).
			AddRow(int64(11), int64(6), false, "John Roe", domain.StatusFound, updated))

	views, err := repo.ListByUser(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, views, 2)

	assert.Equal(t, "Jane Doe", views[0].PersonName)
	assert.Equal(t, domain.StatusUnderSearch, views[0].Status)
	assert.False(t, views[1].Active)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscriptionRepositoryListActiveByPerson(t *testing.T) {
	mock, repo := newSubscriptionMock(t)

	mock.ExpectQuery(`WHERE person_id=\$1 AND is_active=TRUE`).
		WithArgs(int64(5)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "person_id", "is_active", "created_at"}).
			AddRow(int64(10), int64(1), int64(5), true, time.Now()))

	subs, err := repo.ListActiveByPerson(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, int64(1), subs[0].UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscriptionRepositoryListByUserQueryError(t *testing.T) {
	mock, repo := newSubscriptionMock(t)

	mock.ExpectQuery(`INNER JOIN persons`).
		WithArgs(int64(1)).
		WillReturnError(errors.New("connection refused"))

	_, err := repo.ListByUser(context.Background(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.NoError(t, mock.ExpectationsWereMet())
}
