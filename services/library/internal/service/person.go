package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/example/media-library/services/library/internal/store"
)

type PersonDraft struct {
	FirstName   string
	MiddleName  *string
	LastName    string
	DateOfBirth time.Time
	DateOfDeath *time.Time
}

func (d PersonDraft) validate() error {
	v := violations{}
	v.required("first_name", d.FirstName)
	v.maxLen("first_name", d.FirstName, maxNameLen)
	v.optionalMaxLen("middle_name", d.MiddleName, maxNameLen)
	v.required("last_name", d.LastName)
	v.maxLen("last_name", d.LastName, maxNameLen)
	v.date("date_of_birth", d.DateOfBirth)
	if d.DateOfDeath != nil && !d.DateOfBirth.IsZero() && store.Date(*d.DateOfDeath).Before(store.Date(d.DateOfBirth)) {
		v.add("date_of_death", "must not be before date_of_birth")
	}
	return v.err()
}

func (d PersonDraft) person(id int64) store.Person {
	p := store.Person{
		ID:          id,
		FirstName:   d.FirstName,
		MiddleName:  d.MiddleName,
		LastName:    d.LastName,
		DateOfBirth: store.Date(d.DateOfBirth),
	}
	if d.DateOfDeath != nil {
		dod := store.Date(*d.DateOfDeath)
		p.DateOfDeath = &dod
	}
	return p
}

type PersonService struct {
	store store.PersonStore
	log   *zap.Logger
}

func NewPersonService(s store.PersonStore, log *zap.Logger) *PersonService {
	return &PersonService{store: s, log: orNop(log).With(zap.String("entity", store.EntityPerson))}
}

func (s *PersonService) Create(ctx context.Context, d PersonDraft) (store.Person, error) {
	s.log.Debug("create", zap.String("last_name", d.LastName))
	if err := d.validate(); err != nil {
		return store.Person{}, err
	}
	p, err := s.store.Insert(ctx, d.person(0))
	if err != nil {
		return store.Person{}, err
	}
	s.log.Info("created", zap.Int64("id", p.ID))
	return p, nil
}

func (s *PersonService) GetByID(ctx context.Context, id int64) (store.Person, bool, error) {
	p, ok, err := s.store.Get(ctx, id)
	if err == nil && !ok {
		s.log.Debug("not found", zap.Int64("id", id))
	}
	return p, ok, err
}

func (s *PersonService) GetAllByFirstName(ctx context.Context, pattern string) ([]store.Person, error) {
	return s.store.FindByName(ctx, store.NameQuery{First: &pattern})
}

func (s *PersonService) GetAllByMiddleName(ctx context.Context, pattern string) ([]store.Person, error) {
	return s.store.FindByName(ctx, store.NameQuery{Middle: &pattern})
}

func (s *PersonService) GetAllByLastName(ctx context.Context, pattern string) ([]store.Person, error) {
	return s.store.FindByName(ctx, store.NameQuery{Last: &pattern})
}

// GetAllByFullName matches first and last name, plus the middle name when one is given.
func (s *PersonService) GetAllByFullName(ctx context.Context, first string, middle *string, last string) ([]store.Person, error) {
	return s.store.FindByName(ctx, store.NameQuery{First: &first, Middle: middle, Last: &last})
}

// GetAllByName filters on any combination of the three name patterns. An
// empty query matches nothing.
func (s *PersonService) GetAllByName(ctx context.Context, q store.NameQuery) ([]store.Person, error) {
	if q.Empty() {
		return nil, nil
	}
	return s.store.FindByName(ctx, q)
}

func (s *PersonService) GetAllByDateOfBirth(ctx context.Context, d time.Time) ([]store.Person, error) {
	return s.store.FindByDateOfBirth(ctx, d)
}

func (s *PersonService) GetAllByDateOfDeath(ctx context.Context, d time.Time) ([]store.Person, error) {
	return s.store.FindByDateOfDeath(ctx, d)
}

func (s *PersonService) GetAllWithIDs(ctx context.Context, ids []int64) ([]store.Person, error) {
	return s.store.ListByIDs(ctx, ids)
}

func (s *PersonService) GetAll(ctx context.Context) ([]store.Person, error) {
	return s.store.List(ctx)
}

func (s *PersonService) Update(ctx context.Context, id int64, d PersonDraft) (store.Person, bool, error) {
	s.log.Debug("update", zap.Int64("id", id))
	if err := d.validate(); err != nil {
		return store.Person{}, false, err
	}
	p, ok, err := s.store.Update(ctx, d.person(id))
	if err != nil || !ok {
		return store.Person{}, ok, err
	}
	s.log.Info("updated", zap.Int64("id", id))
	return p, true, nil
}

func (s *PersonService) DeleteByID(ctx context.Context, id int64) (int64, bool, error) {
	deleted, err := s.store.Delete(ctx, []int64{id})
	if err != nil {
		return 0, false, err
	}
	if len(deleted) == 0 {
		s.log.Debug("delete: not found", zap.Int64("id", id))
		return 0, false, nil
	}
	s.log.Info("deleted", zap.Int64("id", id))
	return deleted[0], true, nil
}

func (s *PersonService) DeleteAllWithIDs(ctx context.Context, ids []int64) ([]int64, error) {
	deleted, err := deleteExisting(ctx, func(ctx context.Context) ([]store.Person, error) {
		return s.store.ListByIDs(ctx, ids)
	}, func(p store.Person) int64 { return p.ID }, s.store.Delete)
	if err != nil {
		return nil, err
	}
	s.log.Info("deleted batch", idsField(deleted))
	return deleted, nil
}

func (s *PersonService) DeleteAll(ctx context.Context) ([]int64, error) {
	deleted, err := deleteExisting(ctx, s.store.List, func(p store.Person) int64 { return p.ID }, s.store.Delete)
	if err != nil {
		return nil, err
	}
	s.log.Info("deleted all", idsField(deleted))
	return deleted, nil
}

func (s *PersonService) Exists(ctx context.Context, id int64) (bool, error) {
	_, ok, err := s.store.Get(ctx, id)
	return ok, err
}
