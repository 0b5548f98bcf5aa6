package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/example/media-library/services/library/internal/store"
)

// TvShowDraft cites its classifications by name. Unlike a movie, the plot
// summary is required.
type TvShowDraft struct {
	Title       string
	DateAired   time.Time
	Network     string
	Rating      string
	Genre       string
	Language    string
	PlotSummary string
	Series      bool
}

func (d TvShowDraft) validate() error {
	v := violations{}
	v.required("title", d.Title)
	v.maxLen("title", d.Title, maxTvTitleLen)
	v.date("date_aired", d.DateAired)
	v.required("network", d.Network)
	v.maxLen("network", d.Network, maxNetworkLen)
	v.required(FieldRating, d.Rating)
	v.required(FieldGenre, d.Genre)
	v.required(FieldLanguage, d.Language)
	v.required("plot_summary", d.PlotSummary)
	v.maxLen("plot_summary", d.PlotSummary, maxTvPlotLen)
	return v.err()
}

func (d TvShowDraft) names() ReferenceNames {
	return ReferenceNames{Rating: d.Rating, Genre: d.Genre, Language: d.Language}
}

func (d TvShowDraft) tvShow(id int64, refs References) store.TvShow {
	return store.TvShow{
		ID:          id,
		Title:       d.Title,
		DateAired:   store.Date(d.DateAired),
		Network:     d.Network,
		Rating:      refs.Rating,
		Genre:       refs.Genre,
		Language:    refs.Language,
		PlotSummary: d.PlotSummary,
		Series:      d.Series,
	}
}

type TvShowService struct {
	store    store.TvShowStore
	resolver *Resolver
	log      *zap.Logger
}

func NewTvShowService(s store.TvShowStore, resolver *Resolver, log *zap.Logger) *TvShowService {
	return &TvShowService{store: s, resolver: resolver, log: orNop(log).With(zap.String("entity", store.EntityTvShow))}
}

func (s *TvShowService) resolve(ctx context.Context, d TvShowDraft) (References, error) {
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

func (s *TvShowService) Create(ctx context.Context, d TvShowDraft) (store.TvShow, error) {
	s.log.Debug("create", zap.String("title", d.Title))
	refs, err := s.resolve(ctx, d)
	if err != nil {
		return store.TvShow{}, err
	}
	t, err := s.store.Insert(ctx, d.tvShow(0, refs))
	if err != nil {
		return store.TvShow{}, err
	}
	s.log.Info("created", zap.Int64("id", t.ID))
	return t, nil
}

func (s *TvShowService) GetByID(ctx context.Context, id int64) (store.TvShow, bool, error) {
	t, ok, err := s.store.Get(ctx, id)
	if err == nil && !ok {
		s.log.Debug("not found", zap.Int64("id", id))
	}
	return t, ok, err
}

func (s *TvShowService) GetByTitle(ctx context.Context, pattern string) (store.TvShow, bool, error) {
	all, err := s.store.FindByTitle(ctx, pattern)
	if err != nil || len(all) == 0 {
		return store.TvShow{}, false, err
	}
	return all[0], true, nil
}

func (s *TvShowService) GetAllByDateAired(ctx context.Context, d time.Time) ([]store.TvShow, error) {
	return s.store.FindByDateAired(ctx, d)
}

func (s *TvShowService) GetAllByNetwork(ctx context.Context, pattern string) ([]store.TvShow, error) {
	return s.store.FindByNetwork(ctx, pattern)
}

func (s *TvShowService) GetAllWithIDs(ctx context.Context, ids []int64) ([]store.TvShow, error) {
	return s.store.ListByIDs(ctx, ids)
}

func (s *TvShowService) GetAll(ctx context.Context) ([]store.TvShow, error) {
	return s.store.List(ctx)
}

func (s *TvShowService) Update(ctx context.Context, id int64, d TvShowDraft) (store.TvShow, bool, error) {
	s.log.Debug("update", zap.Int64("id", id))
	refs, err := s.resolve(ctx, d)
	if err != nil {
		return store.TvShow{}, false, err
	}
	t, ok, err := s.store.Update(ctx, d.tvShow(id, refs))
	if err != nil || !ok {
		return store.TvShow{}, ok, err
	}
	s.log.Info("updated", zap.Int64("id", id))
	return t, true, nil
}

func (s *TvShowService) DeleteByID(ctx context.Context, id int64) (int64, bool, error) {
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

func (s *TvShowService) DeleteAllWithIDs(ctx context.Context, ids []int64) ([]int64, error) {
	deleted, err := deleteExisting(ctx, func(ctx context.Context) ([]store.TvShow, error) {
		return s.store.ListByIDs(ctx, ids)
	}, func(t store.TvShow) int64 { return t.ID }, s.store.Delete)
	if err != nil {
		return nil, err
	}
	s.log.Info("deleted batch", idsField(deleted))
	return deleted, nil
}

func (s *TvShowService) DeleteAll(ctx context.Context) ([]int64, error) {
	deleted, err := deleteExisting(ctx, s.store.List, func(t store.TvShow) int64 { return t.ID }, s.store.Delete)
	if err != nil {
		return nil, err
	}
	s.log.Info("deleted all", idsField(deleted))
	return deleted, nil
}

func (s *TvShowService) Exists(ctx context.Context, id int64) (bool, error) {
	_, ok, err := s.store.Get(ctx, id)
	return ok, err
}

func (s *TvShowService) ExistsByTitle(ctx context.Context, pattern string) (bool, error) {
	_, ok, err := s.GetByTitle(ctx, pattern)
	return ok, err
}
