package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/example/media-library/services/library/internal/store"
)

// ClassificationDraft is the caller-supplied content of a rating, genre or language.
type ClassificationDraft struct {
	Name        string
	Description *string
}

func (d ClassificationDraft) validate() error {
	v := violations{}
	v.required("name", d.Name)
	v.maxLen("name", d.Name, maxNameLen)
	v.optionalMaxLen("description", d.Description, maxDescriptionLen)
	return v.err()
}

// ClassificationService implements the CRUD contract of one classification kind.
// Name uniqueness is enforced by the store; the service never pre-checks it.
type ClassificationService struct {
	store store.ClassificationStore
	log   *zap.Logger
}

func NewClassificationService(s store.ClassificationStore, log *zap.Logger) *ClassificationService {
	return &ClassificationService{
		store: s,
		log:   orNop(log).With(zap.String("kind", string(s.Kind()))),
	}
}

func (s *ClassificationService) Kind() store.Kind { return s.store.Kind() }

func (s *ClassificationService) Create(ctx context.Context, d ClassificationDraft) (store.Classification, error) {
	s.log.Debug("create", zap.String("name", d.Name))
	if err := d.validate(); err != nil {
		return store.Classification{}, err
	}
	c, err := s.store.Insert(ctx, store.Classification{Name: d.Name, Description: d.Description})
	if err != nil {
		return store.Classification{}, err
	}
	s.log.Info("created", zap.Int64("id", c.ID), zap.String("name", c.Name))
	return c, nil
}

func (s *ClassificationService) GetByID(ctx context.Context, id int64) (store.Classification, bool, error) {
	c, ok, err := s.store.Get(ctx, id)
	if err == nil && !ok {
		s.log.Debug("not found", zap.Int64("id", id))
	}
	return c, ok, err
}

func (s *ClassificationService) GetByName(ctx context.Context, name string) (store.Classification, bool, error) {
	c, ok, err := s.store.GetByName(ctx, name)
	if err == nil && !ok {
		s.log.Debug("not found", zap.String("name", name))
	}
	return c, ok, err
}

func (s *ClassificationService) GetAllWithIDs(ctx context.Context, ids []int64) ([]store.Classification, error) {
	return s.store.ListByIDs(ctx, ids)
}

func (s *ClassificationService) GetAll(ctx context.Context) ([]store.Classification, error) {
	return s.store.List(ctx)
}

// Update overwrites name and description of an existing row. A missing id
// reports ok == false and writes nothing.
func (s *ClassificationService) Update(ctx context.Context, id int64, d ClassificationDraft) (store.Classification, bool, error) {
	s.log.Debug("update", zap.Int64("id", id))
	if err := d.validate(); err != nil {
		return store.Classification{}, false, err
	}
	c, ok, err := s.store.Update(ctx, store.Classification{ID: id, Name: d.Name, Description: d.Description})
	if err != nil || !ok {
		return store.Classification{}, ok, err
	}
	s.log.Info("updated", zap.Int64("id", id))
	return c, true, nil
}

func (s *ClassificationService) DeleteByID(ctx context.Context, id int64) (int64, bool, error) {
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

// DeleteAllWithIDs deletes the existing subset of ids and returns it.
func (s *ClassificationService) DeleteAllWithIDs(ctx context.Context, ids []int64) ([]int64, error) {
	deleted, err := deleteExisting(ctx, func(ctx context.Context) ([]store.Classification, error) {
		return s.store.ListByIDs(ctx, ids)
	}, func(c store.Classification) int64 { return c.ID }, s.store.Delete)
	if err != nil {
		return nil, err
	}
	s.log.Info("deleted batch", idsField(deleted))
	return deleted, nil
}

func (s *ClassificationService) DeleteAll(ctx context.Context) ([]int64, error) {
	deleted, err := deleteExisting(ctx, s.store.List, func(c store.Classification) int64 { return c.ID }, s.store.Delete)
	if err != nil {
		return nil, err
	}
	s.log.Info("deleted all", idsField(deleted))
	return deleted, nil
}

func (s *ClassificationService) Exists(ctx context.Context, id int64) (bool, error) {
	_, ok, err := s.store.Get(ctx, id)
	return ok, err
}

func (s *ClassificationService) ExistsByName(ctx context.Context, name string) (bool, error) {
	_, ok, err := s.store.GetByName(ctx, name)
	return ok, err
}

// deleteExisting reads the target rows and deletes exactly that set. Rows
// inserted between the two steps are left alone.
func deleteExisting[T any](
	ctx context.Context,
	load func(context.Context) ([]T, error),
	id func(T) int64,
	del func(context.Context, []int64) ([]int64, error),
) ([]int64, error) {
	rows, err := load(ctx)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	ids := make([]int64, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, id(r))
	}
	return del(ctx, ids)
}
