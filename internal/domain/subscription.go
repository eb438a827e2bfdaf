package domain

import "time"

// Subscription links a user to a person record for status notifications.
// It is owned exclusively by the user that created it; mutation goes
// through the ownership check in the subscription service.
type Subscription struct {
	ID        int64
	UserID    int64
	PersonID  int64
	Active    bool
	CreatedAt time.Time
}
