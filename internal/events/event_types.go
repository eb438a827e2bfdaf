package events

import (
	"time"

	"github.com/finderapp/finder-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventPersonReported      EventType = "person_reported"
	EventPersonStatusChanged EventType = "person_status_changed"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	UserID int64           `json:"user_id"`
	Role   domain.UserRole `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	PersonID  int64       `json:"person_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// PersonReportedPayload payload.
type PersonReportedPayload struct {
	Name   string              `json:"name"`
	Status domain.PersonStatus `json:"status"`
}

// PersonStatusChangedPayload payload.
type PersonStatusChangedPayload struct {
	Name      string              `json:"name"`
	OldStatus domain.PersonStatus `json:"old_status"`
	NewStatus domain.PersonStatus `json:"new_status"`
}
