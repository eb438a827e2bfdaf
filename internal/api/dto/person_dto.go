package dto

import (
	"time"

	"github.com/finderapp/finder-service/internal/domain"
)

// PersonRequest payload for creating or updating a person record.
type PersonRequest struct {
	Name                    string     `json:"name"`
	Age                     *int       `json:"age,omitempty"`
	Gender                  *string    `json:"gender,omitempty"`
	ReasonForCapture        *string    `json:"reasonForCapture,omitempty"`
	LocationOfDisappearance *string    `json:"locationOfDisappearance,omitempty"`
	DateOfDisappearance     *time.Time `json:"dateOfDisappearance,omitempty"`
	AdditionalInfo          *string    `json:"additionalInfo,omitempty"`
	ContactPerson           *string    `json:"contactPerson,omitempty"`
	ContactPhone            *string    `json:"contactPhone,omitempty"`
	Status                  string     `json:"status,omitempty"`
	IsRegular               *bool      `json:"isRegular,omitempty"`
	IsCivilian              *bool      `json:"isCivilian,omitempty"`
	ReleasedDate            *time.Time `json:"releasedDate,omitempty"`
	ReleasedLocation        *string    `json:"releasedLocation,omitempty"`
	ReleasedNotes           *string    `json:"releasedNotes,omitempty"`
}

// PersonResponse is the person record shape returned to clients.
type PersonResponse struct {
	ID                      int64      `json:"id"`
	Name                    string     `json:"name"`
	Age                     *int       `json:"age,omitempty"`
	Gender                  *string    `json:"gender,omitempty"`
	ReasonForCapture        *string    `json:"reasonForCapture,omitempty"`
	LocationOfDisappearance *string    `json:"locationOfDisappearance,omitempty"`
	DateOfDisappearance     *time.Time `json:"dateOfDisappearance,omitempty"`
	AdditionalInfo          *string    `json:"additionalInfo,omitempty"`
	ContactPerson           *string    `json:"contactPerson,omitempty"`
	ContactPhone            *string    `json:"contactPhone,omitempty"`
	Status                  string     `json:"status"`
	IsRegular               bool       `json:"isRegular"`
	IsCivilian              bool       `json:"isCivilian"`
	ReleasedDate            *time.Time `json:"releasedDate,omitempty"`
	ReleasedLocation        *string    `json:"releasedLocation,omitempty"`
	ReleasedNotes           *string    `json:"releasedNotes,omitempty"`
	AddedByID               *int64     `json:"addedById,omitempty"`
	CreatedAt               time.Time  `json:"createdAt"`
	UpdatedAt               time.Time  `json:"updatedAt"`
}

// NewPersonResponse maps a domain person.
func NewPersonResponse(p *domain.Person) PersonResponse {
	return PersonResponse{
		ID:                      p.ID,
		Name:                    p.Name,
		Age:                     p.Age,
		Gender:                  p.Gender,
		ReasonForCapture:        p.ReasonForCapture,
		LocationOfDisappearance: p.LocationOfDisappearance,
		DateOfDisappearance:     p.DateOfDisappearance,
		AdditionalInfo:          p.AdditionalInfo,
		ContactPerson:           p.ContactPerson,
		ContactPhone:            p.ContactPhone,
		Status:                  string(p.Status),
		IsRegular:               p.IsRegular,
		IsCivilian:              p.IsCivilian,
		ReleasedDate:            p.ReleasedDate,
		ReleasedLocation:        p.ReleasedLocation,
		ReleasedNotes:           p.ReleasedNotes,
		AddedByID:               p.AddedByID,
		CreatedAt:               p.CreatedAt,
		UpdatedAt:               p.UpdatedAt,
	}
}

// NewPersonResponses maps a slice of domain persons.
func NewPersonResponses(persons []domain.Person) []PersonResponse {
	out := make([]PersonResponse, 0, len(persons))
	for i := range persons {
		out = append(out, NewPersonResponse(&persons[i]))
	}
	return out
}
