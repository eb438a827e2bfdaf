package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/finderapp/finder-service/internal/domain"
	"github.com/finderapp/finder-service/internal/events"
	"github.com/finderapp/finder-service/internal/repository"
	apperrors "github.com/finderapp/finder-service/pkg/util"
)

// PersonInput carries the mutable fields of a person record.
type PersonInput struct {
	Name                    string
	Age                     *int
	Gender                  *string
	ReasonForCapture        *string
	LocationOfDisappearance *string
	DateOfDisappearance     *time.Time
	AdditionalInfo          *string
	ContactPerson           *string
	ContactPhone            *string
	Status                  domain.PersonStatus
	IsRegular               *bool
	IsCivilian              *bool
	ReleasedDate            *time.Time
	ReleasedLocation        *string
	ReleasedNotes           *string
}

// PersonService manages missing-person records and publishes status-change
// events for the notification pipeline.
type PersonService struct {
	persons    repository.PersonRepository
	dispatcher events.Dispatcher
}

// NewPersonService builds the service.
func NewPersonService(persons repository.PersonRepository, dispatcher events.Dispatcher) *PersonService {
	return &PersonService{persons: persons, dispatcher: dispatcher}
}

// List returns records matching the filter, newest first.
func (s *PersonService) List(ctx context.Context, filter repository.PersonFilter) ([]domain.Person, error) {
	return s.persons.List(ctx, filter)
}

// Search finds records by partial name match. Names shorter than two
// characters are rejected.
func (s *PersonService) Search(ctx context.Context, name string) ([]domain.Person, error) {
	if len(name) < 2 {
		return nil, apperrors.NewValidationError("name must be at least 2 characters long", nil)
	}
	return s.persons.SearchByName(ctx, name)
}

// Get returns a single record.
func (s *PersonService) Get(ctx context.Context, id int64) (*domain.Person, error) {
	person, err := s.persons.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("person", nil)
		}
		return nil, err
	}
	return person, nil
}

// Create registers a new missing-person report attributed to the caller.
func (s *PersonService) Create(ctx context.Context, in PersonInput, actor *domain.User) (*domain.Person, error) {
	if in.Name == "" {
		return nil, apperrors.NewValidationError("name is required", nil)
	}

	status := in.Status
	if status != domain.StatusFound {
		status = domain.StatusUnderSearch
	}

	person := &domain.Person{
		Name:                    in.Name,
		Age:                     in.Age,
		Gender:                  in.Gender,
		ReasonForCapture:        in.ReasonForCapture,
		LocationOfDisappearance: in.LocationOfDisappearance,
		DateOfDisappearance:     in.DateOfDisappearance,
		AdditionalInfo:          in.AdditionalInfo,
		ContactPerson:           in.ContactPerson,
		ContactPhone:            in.ContactPhone,
		Status:                  status,
		IsRegular:               boolOrDefault(in.IsRegular, true),
		IsCivilian:              boolOrDefault(in.IsCivilian, true),
		ReleasedDate:            in.ReleasedDate,
		ReleasedLocation:        in.ReleasedLocation,
		ReleasedNotes:           in.ReleasedNotes,
		AddedByID:               &actor.ID,
	}
	if err := s.persons.Create(ctx, person); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventPersonReported,
		PersonID:  person.ID,
		Actor:     events.Actor{UserID: actor.ID, Role: actor.Role},
		Timestamp: time.Now(),
		Payload:   events.PersonReportedPayload{Name: person.Name, Status: person.Status},
	})
	return person, nil
}

// Update applies authority edits, typically recording a release. A status
// transition publishes a status-changed event so subscribers get notified.
func (s *PersonService) Update(ctx context.Context, id int64, in PersonInput, actor *domain.User) (*domain.Person, error) {
	person, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	oldStatus := person.Status

	if in.Name != "" {
		person.Name = in.Name
	}
	if in.Age != nil {
		person.Age = in.Age
	}
	if in.Gender != nil {
		person.Gender = in.Gender
	}
	if in.ReasonForCapture != nil {
		person.ReasonForCapture = in.ReasonForCapture
	}
	if in.LocationOfDisappearance != nil {
		person.LocationOfDisappearance = in.LocationOfDisappearance
	}
	if in.DateOfDisappearance != nil {
		person.DateOfDisappearance = in.DateOfDisappearance
	}
	if in.AdditionalInfo != nil {
		person.AdditionalInfo = in.AdditionalInfo
	}
	if in.ContactPerson != nil {
		person.ContactPerson = in.ContactPerson
	}
	if in.ContactPhone != nil {
		person.ContactPhone = in.ContactPhone
	}
	if in.Status == domain.StatusFound || in.Status == domain.StatusUnderSearch {
		person.Status = in.Status
	}
	if in.IsRegular != nil {
		person.IsRegular = *in.IsRegular
	}
	if in.IsCivilian != nil {
		person.IsCivilian = *in.IsCivilian
	}
	if in.ReleasedDate != nil {
		person.ReleasedDate = in.ReleasedDate
	}
	if in.ReleasedLocation != nil {
		person.ReleasedLocation = in.ReleasedLocation
	}
	if in.ReleasedNotes != nil {
		person.ReleasedNotes = in.ReleasedNotes
	}

	if err := s.persons.Update(ctx, person); err != nil {
		return nil, err
	}

	if person.Status != oldStatus {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventPersonStatusChanged,
			PersonID:  person.ID,
			Actor:     events.Actor{UserID: actor.ID, Role: actor.Role},
			Timestamp: time.Now(),
			Payload: events.PersonStatusChangedPayload{
				Name:      person.Name,
				OldStatus: oldStatus,
				NewStatus: person.Status,
			},
		})
	}
	return person, nil
}

// Delete removes a record.
func (s *PersonService) Delete(ctx context.Context, id int64) error {
	if err := s.persons.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("person", nil)
		}
		return err
	}
	return nil
}

func boolOrDefault(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
