package domain

import "time"

// PersonStatus represents the search state of a registered missing person.
type PersonStatus string

const (
	StatusUnderSearch PersonStatus = "under_search"
	StatusFound       PersonStatus = "found"
)

// Person is a missing-person record reported by a family member and
// maintained by authorities.
type Person struct {
	ID                      int64
	Name                    string
	Age                     *int
	Gender                  *string
	ReasonForCapture        *string
	LocationOfDisappearance *string
	DateOfDisappearance     *time.Time
	AdditionalInfo          *string
	ContactPerson           *string
	ContactPhone            *string
	Status                  PersonStatus
	IsRegular               bool
	IsCivilian              bool
	ReleasedDate            *time.Time
	ReleasedLocation        *string
	ReleasedNotes           *string
	AddedByID               *int64
	CreatedAt               time.Time
	UpdatedAt               time.Time
}
