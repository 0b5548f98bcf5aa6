package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// Media rows are read with LEFT JOINs so a dangling reference still yields the row.
const refJoins = `
LEFT JOIN ratings r ON r.id = x.rating_id
LEFT JOIN genres g ON g.id = x.genre_id
LEFT JOIN languages l ON l.id = x.language_id`

const refSelect = `x.rating_id, r.name, r.description,
       x.genre_id, g.name, g.description,
       x.language_id, l.name, l.description`

func refTargets(rating, genre, language *refColumns) []any {
	return []any{
		&rating.id, &rating.name, &rating.description,
		&genre.id, &genre.name, &genre.description,
		&language.id, &language.name, &language.description,
	}
}

// ── Movies ─────────────────────────────────────────────────────────────────

const movieSelect = `SELECT x.id, x.title, x.release_date, x.studio, x.plot_summary, x.notes,
       ` + refSelect + `
FROM movies x` + refJoins

type pgMovies struct {
	db *Postgres
}

func scanMovie(row pgx.Row) (Movie, error) {
	var m Movie
	var rating, genre, language refColumns
	dest := append([]any{&m.ID, &m.Title, &m.ReleaseDate, &m.Studio, &m.PlotSummary, &m.Notes},
		refTargets(&rating, &genre, &language)...)
	if err := row.Scan(dest...); err != nil {
		return Movie{}, err
	}
	m.Rating = rating.classification()
	m.Genre = genre.classification()
	m.Language = language.classification()
	return m, nil
}

func (s *pgMovies) query(ctx context.Context, where string, args ...any) ([]Movie, error) {
	q := movieSelect
	if where != "" {
		q += ` WHERE ` + where
	}
	q += ` ORDER BY x.id`

	rows, err := s.db.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("db movies: %w", err)
	}
	defer rows.Close()

	var out []Movie
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("db movies scan: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *pgMovies) Insert(ctx context.Context, m Movie) (Movie, error) {
	if !hasRefs(m.Rating, m.Genre, m.Language) {
		return Movie{}, missingRefs(EntityMovie, m.ID)
	}
	err := s.db.inTx(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
INSERT INTO movies (title, release_date, studio, rating_id, genre_id, language_id, plot_summary, notes)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8) RETURNING id`,
			m.Title, Date(m.ReleaseDate), m.Studio, m.Rating.ID, m.Genre.ID, m.Language.ID, m.PlotSummary, m.Notes,
		).Scan(&m.ID)
		if err != nil {
			return fmt.Errorf("db movies: %w", err)
		}
		return insertOutboxEvent(ctx, tx, EntityMovie, actionCreated, []int64{m.ID})
	})
	if err != nil {
		return Movie{}, err
	}
	return m, nil
}

func (s *pgMovies) Get(ctx context.Context, id int64) (Movie, bool, error) {
	m, err := scanMovie(s.db.pool.QueryRow(ctx, movieSelect+` WHERE x.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Movie{}, false, nil
		}
		return Movie{}, false, fmt.Errorf("db movies: %w", err)
	}
	return m, true, nil
}

func (s *pgMovies) FindByTitle(ctx context.Context, pattern string) ([]Movie, error) {
	return s.query(ctx, "x.title LIKE $1", sqlPattern(pattern))
}

func (s *pgMovies) FindByReleaseDate(ctx context.Context, d time.Time) ([]Movie, error) {
	return s.query(ctx, "x.release_date = $1", Date(d))
}

func (s *pgMovies) FindByStudio(ctx context.Context, pattern string) ([]Movie, error) {
	return s.query(ctx, "x.studio LIKE $1", sqlPattern(pattern))
}

func (s *pgMovies) ListByIDs(ctx context.Context, ids []int64) ([]Movie, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return s.query(ctx, "x.id = ANY($1)", ids)
}

func (s *pgMovies) List(ctx context.Context) ([]Movie, error) {
	return s.query(ctx, "")
}

func (s *pgMovies) Update(ctx context.Context, m Movie) (Movie, bool, error) {
	if !hasRefs(m.Rating, m.Genre, m.Language) {
		return Movie{}, false, missingRefs(EntityMovie, m.ID)
	}
	found := false
	err := s.db.inTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
UPDATE movies
SET title=$2, release_date=$3, studio=$4, rating_id=$5, genre_id=$6, language_id=$7, plot_summary=$8, notes=$9
WHERE id=$1`,
			m.ID, m.Title, Date(m.ReleaseDate), m.Studio, m.Rating.ID, m.Genre.ID, m.Language.ID, m.PlotSummary, m.Notes,
		)
		if err != nil {
			return fmt.Errorf("db movies: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return nil
		}
		found = true
		return insertOutboxEvent(ctx, tx, EntityMovie, actionUpdated, []int64{m.ID})
	})
	if err != nil || !found {
		return Movie{}, false, err
	}
	return m, true, nil
}

func (s *pgMovies) Delete(ctx context.Context, ids []int64) ([]int64, error) {
	return s.db.deleteRows(ctx, "movies", EntityMovie, ids)
}

// ── TV shows ───────────────────────────────────────────────────────────────

const tvShowSelect = `SELECT x.id, x.title, x.date_aired, x.network, x.plot_summary, x.is_series,
       ` + refSelect + `
FROM tv_shows x` + refJoins

type pgTvShows struct {
	db *Postgres
}

func scanTvShow(row pgx.Row) (TvShow, error) {
	var t TvShow
	var rating, genre, language refColumns
	dest := append([]any{&t.ID, &t.Title, &t.DateAired, &t.Network, &t.PlotSummary, &t.Series},
		refTargets(&rating, &genre, &language)...)
	if err := row.Scan(dest...); err != nil {
		return TvShow{}, err
	}
	t.Rating = rating.classification()
	t.Genre = genre.classification()
	t.Language = language.classification()
	return t, nil
}

func (s *pgTvShows) query(ctx context.Context, where string, args ...any) ([]TvShow, error) {
	q := tvShowSelect
	if where != "" {
		q += ` WHERE ` + where
	}
	q += ` ORDER BY x.id`

	rows, err := s.db.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("db tv_shows: %w", err)
	}
	defer rows.Close()

	var out []TvShow
	for rows.Next() {
		t, err := scanTvShow(rows)
		if err != nil {
			return nil, fmt.Errorf("db tv_shows scan: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *pgTvShows) Insert(ctx context.Context, t TvShow) (TvShow, error) {
	if !hasRefs(t.Rating, t.Genre, t.Language) {
		return TvShow{}, missingRefs(EntityTvShow, t.ID)
	}
	err := s.db.inTx(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
INSERT INTO tv_shows (title, date_aired, network, rating_id, genre_id, language_id, plot_summary, is_series)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8) RETURNING id`,
			t.Title, Date(t.DateAired), t.Network, t.Rating.ID, t.Genre.ID, t.Language.ID, t.PlotSummary, t.Series,
		).Scan(&t.ID)
		if err != nil {
			return fmt.Errorf("db tv_shows: %w", err)
		}
		return insertOutboxEvent(ctx, tx, EntityTvShow, actionCreated, []int64{t.ID})
	})
	if err != nil {
		return TvShow{}, err
	}
	return t, nil
}

func (s *pgTvShows) Get(ctx context.Context, id int64) (TvShow, bool, error) {
	t, err := scanTvShow(s.db.pool.QueryRow(ctx, tvShowSelect+` WHERE x.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return TvShow{}, false, nil
		}
		return TvShow{}, false, fmt.Errorf("db tv_shows: %w", err)
	}
	return t, true, nil
}

func (s *pgTvShows) FindByTitle(ctx context.Context, pattern string) ([]TvShow, error) {
	return s.query(ctx, "x.title LIKE $1", sqlPattern(pattern))
}

func (s *pgTvShows) FindByDateAired(ctx context.Context, d time.Time) ([]TvShow, error) {
	return s.query(ctx, "x.date_aired = $1", Date(d))
}

func (s *pgTvShows) FindByNetwork(ctx context.Context, pattern string) ([]TvShow, error) {
	return s.query(ctx, "x.network LIKE $1", sqlPattern(pattern))
}

func (s *pgTvShows) ListByIDs(ctx context.Context, ids []int64) ([]TvShow, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return s.query(ctx, "x.id = ANY($1)", ids)
}

func (s *pgTvShows) List(ctx context.Context) ([]TvShow, error) {
	return s.query(ctx, "")
}

func (s *pgTvShows) Update(ctx context.Context, t TvShow) (TvShow, bool, error) {
	if !hasRefs(t.Rating, t.Genre, t.Language) {
		return TvShow{}, false, missingRefs(EntityTvShow, t.ID)
	}
	found := false
	err := s.db.inTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
UPDATE tv_shows
SET title=$2, date_aired=$3, network=$4, rating_id=$5, genre_id=$6, language_id=$7, plot_summary=$8, is_series=$9
WHERE id=$1`,
			t.ID, t.Title, Date(t.DateAired), t.Network, t.Rating.ID, t.Genre.ID, t.Language.ID, t.PlotSummary, t.Series,
		)
		if err != nil {
			return fmt.Errorf("db tv_shows: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return nil
		}
		found = true
		return insertOutboxEvent(ctx, tx, EntityTvShow, actionUpdated, []int64{t.ID})
	})
	if err != nil || !found {
		return TvShow{}, false, err
	}
	return t, true, nil
}

func (s *pgTvShows) Delete(ctx context.Context, ids []int64) ([]int64, error) {
	return s.db.deleteRows(ctx, "tv_shows", EntityTvShow, ids)
}
