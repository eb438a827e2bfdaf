package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/finderapp/finder-service/internal/domain"
	"github.com/finderapp/finder-service/internal/repository"
	apperrors "github.com/finderapp/finder-service/pkg/util"
)

// SubscriptionService manages notification subscriptions. Every mutation
// runs through the ownership check so no user can toggle or delete another
// user's subscription, however the id was obtained.
type SubscriptionService struct {
	subs    repository.SubscriptionRepository
	persons repository.PersonRepository
}

// NewSubscriptionService builds the service.
func NewSubscriptionService(subs repository.SubscriptionRepository, persons repository.PersonRepository) *SubscriptionService {
	return &SubscriptionService{subs: subs, persons: persons}
}

// List returns the caller's subscriptions joined with person data.
func (s *SubscriptionService) List(ctx context.Context, userID int64) ([]repository.SubscriptionView, error) {
	return s.subs.ListByUser(ctx, userID)
}

// Create subscribes the caller to a person record.
func (s *SubscriptionService) Create(ctx context.Context, userID, personID int64) (*domain.Subscription, error) {
	if _, err := s.persons.GetByID(ctx, personID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("person", nil)
		}
		return nil, err
	}

	if _, err := s.subs.GetByUserAndPerson(ctx, userID, personID); err == nil {
		return nil, apperrors.NewConflict("already subscribed", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	sub := &domain.Subscription{UserID: userID, PersonID: personID, Active: true}
	if err := s.subs.Create(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// Toggle flips the active flag on an owned subscription and returns the new
// state.
func (s *SubscriptionService) Toggle(ctx context.Context, userID, subscriptionID int64) (bool, error) {
	sub, err := s.checkOwnership(ctx, userID, subscriptionID)
	if err != nil {
		return false, err
	}

	newState := !sub.Active
	if err := s.subs.SetActive(ctx, subscriptionID, newState); err != nil {
		return false, err
	}
	return newState, nil
}

// Delete removes an owned subscription.
func (s *SubscriptionService) Delete(ctx context.Context, userID, subscriptionID int64) error {
	if _, err := s.checkOwnership(ctx, userID, subscriptionID); err != nil {
		return err
	}
	return s.subs.Delete(ctx, subscriptionID)
}

// checkOwnership resolves the subscription and binds it to the caller.
// Not-found is evaluated before the ownership comparison.
func (s *SubscriptionService) checkOwnership(ctx context.Context, userID, subscriptionID int64) (*domain.Subscription, error) {
	sub, err := s.subs.GetByID(ctx, subscriptionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("subscription", nil)
		}
		return nil, err
	}
	if sub.UserID != userID {
		return nil, apperrors.NewForbidden("you do not own this subscription")
	}
	return sub, nil
}
