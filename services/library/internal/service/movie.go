package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/example/media-library/services/library/internal/store"
)

// MovieDraft cites its classifications by name.
type MovieDraft struct {
	Title       string
	ReleaseDate time.Time
	Studio      string
	Rating      string
	Genre       string
	Language    string
	PlotSummary *string
	Notes       *string
}

func (d MovieDraft) validate() error {
	v := violations{}
	v.required("title", d.Title)
	v.maxLen("title", d.Title, maxMovieTitleLen)
	v.date("release_date", d.ReleaseDate)
	v.required("studio", d.Studio)
	v.maxLen("studio", d.Studio, maxStudioLen)
	v.required(FieldRating, d.Rating)
	v.required(FieldGenre, d.Genre)
	v.required(FieldLanguage, d.Language)
	v.optionalMaxLen("plot_summary", d.PlotSummary, maxMoviePlotLen)
	v.optionalMaxLen("notes", d.Notes, maxNotesLen)
	return v.err()
}

func (d MovieDraft) names() ReferenceNames {
	return ReferenceNames{Rating: d.Rating, Genre: d.Genre, Language: d.Language}
}

func (d MovieDraft) movie(id int64, refs References) store.Movie {
	return store.Movie{
		ID:          id,
		Title:       d.Title,
		ReleaseDate: store.Date(d.ReleaseDate),
		Studio:      d.Studio,
		Rating:      refs.Rating,
		Genre:       refs.Genre,
		Language:    refs.Language,
		PlotSummary: d.PlotSummary,
		Notes:       d.Notes,
	}
}

type MovieService struct {
	store    store.MovieStore
	resolver *Resolver
	log      *zap.Logger
}

func NewMovieService(s store.MovieStore, resolver *Resolver, log *zap.Logger) *MovieService {
	return &MovieService{store: s, resolver: resolver, log: orNop(log).With(zap.String("entity", store.EntityMovie))}
}

// resolve validates d and resolves its references. Nothing is written.
func (s *MovieService) resolve(ctx context.Context, d MovieDraft) (References, error) {
	if err := d.validate(); err != nil {
		return References{}, err
	}
	res, err := s.resolver.Resolve(ctx, d.names())
	if err != nil {
		return References{}, err
	}
	if !res.OK() {
		s.log.Warn("unresolved reference", zap.String("field", res.Field), zap.String("name", res.Name))
		return References{}, res.Err()
	}
	return res.References, nil
}

// Create persists a movie once all three references resolve.
func (s *MovieService) Create(ctx context.Context, d MovieDraft) (store.Movie, error) {
	s.log.Debug("create", zap.String("title", d.Title))
	refs, err := s.resolve(ctx, d)
	if err != nil {
		return store.Movie{}, err
	}
	m, err := s.store.Insert(ctx, d.movie(0, refs))
	if err != nil {
		return store.Movie{}, err
	}
	s.log.Info("created", zap.Int64("id", m.ID))
	return m, nil
}

func (s *MovieService) GetByID(ctx context.Context, id int64) (store.Movie, bool, error) {
	m, ok, err := s.store.Get(ctx, id)
	if err == nil && !ok {
		s.log.Debug("not found", zap.Int64("id", id))
	}
	return m, ok, err
}

// GetByTitle returns the lowest-id movie whose title matches pattern.
func (s *MovieService) GetByTitle(ctx context.Context, pattern string) (store.Movie, bool, error) {
	all, err := s.store.FindByTitle(ctx, pattern)
	if err != nil || len(all) == 0 {
		return store.Movie{}, false, err
	}
	return all[0], true, nil
}

func (s *MovieService) GetAllByReleaseDate(ctx context.Context, d time.Time) ([]store.Movie, error) {
	return s.store.FindByReleaseDate(ctx, d)
}

func (s *MovieService) GetAllByStudio(ctx context.Context, pattern string) ([]store.Movie, error) {
	return s.store.FindByStudio(ctx, pattern)
}

func (s *MovieService) GetAllWithIDs(ctx context.Context, ids []int64) ([]store.Movie, error) {
	return s.store.ListByIDs(ctx, ids)
}

func (s *MovieService) GetAll(ctx context.Context) ([]store.Movie, error) {
	return s.store.List(ctx)
}

// Update fully replaces an existing movie. References are resolved before
// the target is looked up, so an unresolved name is reported even for a
// missing id.
func (s *MovieService) Update(ctx context.Context, id int64, d MovieDraft) (store.Movie, bool, error) {
	s.log.Debug("update", zap.Int64("id", id))
	refs, err := s.resolve(ctx, d)
	if err != nil {
		return store.Movie{}, false, err
	}
	m, ok, err := s.store.Update(ctx, d.movie(id, refs))
	if err != nil || !ok {
		return store.Movie{}, ok, err
	}
	s.log.Info("updated", zap.Int64("id", id))
	return m, true, nil
}

func (s *MovieService) DeleteByID(ctx context.Context, id int64) (int64, bool, error) {
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

func (s *MovieService) DeleteAllWithIDs(ctx context.Context, ids []int64) ([]int64, error) {
	deleted, err := deleteExisting(ctx, func(ctx context.Context) ([]store.Movie, error) {
		return s.store.ListByIDs(ctx, ids)
	}, func(m store.Movie) int64 { return m.ID }, s.store.Delete)
	if err != nil {
		return nil, err
	}
	s.log.Info("deleted batch", idsField(deleted))
	return deleted, nil
}

func (s *MovieService) DeleteAll(ctx context.Context) ([]int64, error) {
	deleted, err := deleteExisting(ctx, s.store.List, func(m store.Movie) int64 { return m.ID }, s.store.Delete)
	if err != nil {
		return nil, err
	}
	s.log.Info("deleted all", idsField(deleted))
	return deleted, nil
}

func (s *MovieService) Exists(ctx context.Context, id int64) (bool, error) {
	_, ok, err := s.store.Get(ctx, id)
	return ok, err
}

func (s *MovieService) ExistsByTitle(ctx context.Context, pattern string) (bool, error) {
	_, ok, err := s.GetByTitle(ctx, pattern)
	return ok, err
}
