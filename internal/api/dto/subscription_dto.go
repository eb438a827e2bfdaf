package dto

import (
	"time"

	"github.com/finderapp/finder-service/internal/repository"
)

// SubscriptionCreateRequest payload for subscribing to a person record.
type SubscriptionCreateRequest struct {
	PersonID int64 `json:"prisonerId"`
}

// SubscriptionEntry is one row of the my-searches listing.
type SubscriptionEntry struct {
	ID           int64     `json:"id"`
	PersonID     int64     `json:"prisonerId"`
	IsSubscribed bool      `json:"isSubscribed"`
	PersonName   string    `json:"prisonerName"`
	Status       string    `json:"status"`
	LastUpdated  time.Time `json:"lastUpdated"`
}

// NewSubscriptionEntries maps repository views.
func NewSubscriptionEntries(views []repository.SubscriptionView) []SubscriptionEntry {
	out := make([]SubscriptionEntry, 0, len(views))
	for _, v := range views {
		out = append(out, SubscriptionEntry{
			ID:           v.ID,
			PersonID:     v.PersonID,
			IsSubscribed: v.Active,
			PersonName:   v.PersonName,
			Status:       string(v.Status),
			LastUpdated:  v.LastUpdated,
		})
	}
	return out
}
