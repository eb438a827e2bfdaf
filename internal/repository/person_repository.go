package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/finderapp/finder-service/internal/domain"
)

// PersonFilter narrows person listings.
type PersonFilter struct {
	Name     *string
	Status   *domain.PersonStatus
	Location *string
}

// PersonRepository defines persistence access for missing-person records.
type PersonRepository interface {
	Create(ctx context.Context, person *domain.Person) error
	GetByID(ctx context.Context, id int64) (*domain.Person, error)
	Update(ctx context.Context, person *domain.Person) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter PersonFilter) ([]domain.Person, error)
	SearchByName(ctx context.Context, name string) ([]domain.Person, error)
}

type personRepository struct {
	db DB
}

// NewPersonRepository returns a Postgres-backed implementation.
func NewPersonRepository(db DB) PersonRepository {
	return &personRepository{db: db}
}

const personColumns = `id, name, age, gender, reason_for_capture, location_of_disappearance,
        date_of_disappearance, additional_info, contact_person, contact_phone, status,
        is_regular, is_civilian, released_date, released_location, released_notes,
        added_by_id, created_at, updated_at`

func scanPerson(row pgx.Row) (*domain.Person, error) {
	var p domain.Person
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Age,
		&p.Gender,
		&p.ReasonForCapture,
		&p.LocationOfDisappearance,
		&p.DateOfDisappearance,
		&p.AdditionalInfo,
		&p.ContactPerson,
		&p.ContactPhone,
		&p.Status,
		&p.IsRegular,
		&p.IsCivilian,
		&p.ReleasedDate,
		&p.ReleasedLocation,
		&p.ReleasedNotes,
		&p.AddedByID,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *personRepository) Create(ctx context.Context, person *domain.Person) error {
	const query = `
        INSERT INTO persons (name, age, gender, reason_for_capture, location_of_disappearance,
            date_of_disappearance, additional_info, contact_person, contact_phone, status,
            is_regular, is_civilian, released_date, released_location, released_notes, added_by_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
        RETURNING id, created_at, updated_at`

	return r.db.QueryRow(ctx, query,
		person.Name,
		person.Age,
		person.Gender,
		person.ReasonForCapture,
		person.LocationOfDisappearance,
		person.DateOfDisappearance,
		person.AdditionalInfo,
		person.ContactPerson,
		person.ContactPhone,
		person.Status,
		person.IsRegular,
		person.IsCivilian,
		person.ReleasedDate,
		person.ReleasedLocation,
		person.ReleasedNotes,
		person.AddedByID,
	).Scan(&person.ID, &person.CreatedAt, &person.UpdatedAt)
}

func (r *personRepository) GetByID(ctx context.Context, id int64) (*domain.Person, error) {
	const query = `SELECT ` + personColumns + ` FROM persons WHERE id=$1`
	return scanPerson(r.db.QueryRow(ctx, query, id))
}

func (r *personRepository) Update(ctx context.Context, person *domain.Person) error {
	const query = `
        UPDATE persons SET name=$1, age=$2, gender=$3, reason_for_capture=$4,
            location_of_disappearance=$5, date_of_disappearance=$6, additional_info=$7,
            contact_person=$8, contact_phone=$9, status=$10, is_regular=$11, is_civilian=$12,
            released_date=$13, released_location=$14, released_notes=$15, updated_at=NOW()
        WHERE id=$16`

	cmd, err := r.db.Exec(ctx, query,
		person.Name,
		person.Age,
		person.Gender,
		person.ReasonForCapture,
		person.LocationOfDisappearance,
		person.DateOfDisappearance,
		person.AdditionalInfo,
		person.ContactPerson,
		person.ContactPhone,
		person.Status,
		person.IsRegular,
		person.IsCivilian,
		person.ReleasedDate,
		person.ReleasedLocation,
		person.ReleasedNotes,
		person.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *personRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM persons WHERE id=$1`

	cmd, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *personRepository) List(ctx context.Context, filter PersonFilter) ([]domain.Person, error) {
	base := `SELECT ` + personColumns + ` FROM persons`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Name != nil && strings.TrimSpace(*filter.Name) != "" {
		args = append(args, "%"+strings.ToLower(strings.TrimSpace(*filter.Name))+"%")
		clauses = append(clauses, fmt.Sprintf("LOWER(name) LIKE $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.Location != nil && strings.TrimSpace(*filter.Location) != "" {
		args = append(args, "%"+strings.ToLower(strings.TrimSpace(*filter.Location))+"%")
		clauses = append(clauses, fmt.Sprintf("LOWER(location_of_disappearance) LIKE $%d", len(args)))
	}

	query := base + " WHERE " + strings.Join(clauses, " AND ") + " ORDER BY created_at DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var persons []domain.Person
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, err
		}
		persons = append(persons, *p)
	}
	return persons, rows.Err()
}

func (r *personRepository) SearchByName(ctx context.Context, name string) ([]domain.Person, error) {
	const query = `SELECT ` + personColumns + ` FROM persons WHERE LOWER(name) LIKE $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, "%"+strings.ToLower(name)+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var persons []domain.Person
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, err
		}
		persons = append(persons, *p)
	}
	return persons, rows.Err()
}
