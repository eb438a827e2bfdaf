package service

import (
	"context"
	"sort"

	"github.com/jackc/pgx/v5"

	"github.com/finderapp/finder-service/internal/domain"
	"github.com/finderapp/finder-service/internal/repository"
)

// In-memory repository fakes. They mimic the pgx contract the services rely
// on, in particular returning pgx.ErrNoRows for absent rows.

type fakeUserRepo struct {
	nextID   int64
	users    map[int64]*domain.User
	tokenErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: map[int64]*domain.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	user.ID = r.nextID
	r.nextID++
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) SetVerified(_ context.Context, id int64, verified bool) error {
	user, ok := r.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.Verified = verified
	return nil
}

func (r *fakeUserRepo) SetToken(_ context.Context, id int64, token *string) error {
	if r.tokenErr != nil {
		return r.tokenErr
	}
	user, ok := r.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.Token = token
	return nil
}

func (r *fakeUserRepo) ListPendingAuthorities(_ context.Context) ([]domain.User, error) {
	var pending []domain.User
	for _, user := range r.users {
		if user.Role == domain.RoleAuthority && !user.Verified {
			pending = append(pending, *user)
		}
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].ID > pending[j].ID })
	return pending, nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.users, id)
	return nil
}

type fakePersonRepo struct {
	nextID  int64
	persons map[int64]*domain.Person
}

func newFakePersonRepo() *fakePersonRepo {
	return &fakePersonRepo{nextID: 1, persons: map[int64]*domain.Person{}}
}

func (r *fakePersonRepo) Create(_ context.Context, person *domain.Person) error {
	person.ID = r.nextID
	r.nextID++
	clone := *person
	r.persons[person.ID] = &clone
	return nil
}

func (r *fakePersonRepo) GetByID(_ context.Context, id int64) (*domain.Person, error) {
	person, ok := r.persons[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *person
	return &clone, nil
}

func (r *fakePersonRepo) Update(_ context.Context, person *domain.Person) error {
	if _, ok := r.persons[person.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *person
	r.persons[person.ID] = &clone
	return nil
}

func (r *fakePersonRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.persons[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.persons, id)
	return nil
}

func (r *fakePersonRepo) List(_ context.Context, _ repository.PersonFilter) ([]domain.Person, error) {
	var out []domain.Person
	for _, p := range r.persons {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakePersonRepo) SearchByName(_ context.Context, _ string) ([]domain.Person, error) {
	return r.List(context.Background(), repository.PersonFilter{})
}

type fakeSubscriptionRepo struct {
	nextID int64
	subs   map[int64]*domain.Subscription
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{nextID: 1, subs: map[int64]*domain.Subscription{}}
}

func (r *fakeSubscriptionRepo) Create(_ context.Context, sub *domain.Subscription) error {
	sub.ID = r.nextID
	r.nextID++
	clone := *sub
	r.subs[sub.ID] = &clone
	return nil
}

func (r *fakeSubscriptionRepo) GetByID(_ context.Context, id int64) (*domain.Subscription, error) {
	sub, ok := r.subs[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *sub
	return &clone, nil
}

func (r *fakeSubscriptionRepo) GetByUserAndPerson(_ context.Context, userID, personID int64) (*domain.Subscription, error) {
	for _, sub := range r.subs {
		if sub.UserID == userID && sub.PersonID == personID {
			clone := *sub
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeSubscriptionRepo) SetActive(_ context.Context, id int64, active bool) error {
	sub, ok := r.subs[id]
	if !ok {
		return pgx.ErrNoRows
	}
	sub.Active = active
	return nil
}

func (r *fakeSubscriptionRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.subs[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.subs, id)
	return nil
}

func (r *fakeSubscriptionRepo) ListByUser(_ context.Context, userID int64) ([]repository.SubscriptionView, error) {
	var views []repository.SubscriptionView
	for _, sub := range r.subs {
		if sub.UserID == userID {
			views = append(views, repository.SubscriptionView{
				ID:       sub.ID,
				PersonID: sub.PersonID,
				Active:   sub.Active,
			})
		}
	}
	return views, nil
}

func (r *fakeSubscriptionRepo) ListActiveByPerson(_ context.Context, personID int64) ([]domain.Subscription, error) {
	var subs []domain.Subscription
	for _, sub := range r.subs {
		if sub.PersonID == personID && sub.Active {
			subs = append(subs, *sub)
		}
	}
	sort.Slice(subs, func(i, j int) bool { return subs[i].ID < subs[j].ID })
	return subs, nil
}

type fakeNotificationRepo struct {
	nextID int64
	notes  map[int64]*domain.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{nextID: 1, notes: map[int64]*domain.Notification{}}
}

func (r *fakeNotificationRepo) Create(_ context.Context, note *domain.Notification) error {
	note.ID = r.nextID
	r.nextID++
	clone := *note
	r.notes[note.ID] = &clone
	return nil
}

func (r *fakeNotificationRepo) GetByID(_ context.Context, id int64) (*domain.Notification, error) {
	note, ok := r.notes[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *note
	return &clone, nil
}

func (r *fakeNotificationRepo) ListByUser(_ context.Context, userID int64) ([]domain.Notification, error) {
	var notes []domain.Notification
	for _, note := range r.notes {
		if note.UserID == userID {
			notes = append(notes, *note)
		}
	}
	sort.Slice(notes, func(i, j int) bool { return notes[i].ID < notes[j].ID })
	return notes, nil
}

func (r *fakeNotificationRepo) MarkRead(_ context.Context, id int64) error {
	note, ok := r.notes[id]
	if !ok {
		return pgx.ErrNoRows
	}
	note.Read = true
	return nil
}
