package domain

import "time"

// Notification is a per-user message generated when a subscribed person
// record changes status.
type Notification struct {
	ID        int64
	UserID    int64
	PersonID  int64
	Message   string
	Read      bool
	CreatedAt time.Time
}
