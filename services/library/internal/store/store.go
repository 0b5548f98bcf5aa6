package store

import (
	"context"
	"time"
)

// Kind identifies one of the classification collections.
type Kind string

const (
	KindRating   Kind = "rating"
	KindGenre    Kind = "genre"
	KindLanguage Kind = "language"
)

// Kinds lists every classification kind in resolution order.
var Kinds = []Kind{KindRating, KindGenre, KindLanguage}

func (k Kind) table() string {
	switch k {
	case KindRating:
		return "ratings"
	case KindGenre:
		return "genres"
	case KindLanguage:
		return "languages"
	}
	return ""
}

// Classification is a rating, genre or language row.
type Classification struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// Person is a person row. It has no references to other entities.
type Person struct {
	ID          int64
	FirstName   string
	MiddleName  *string
	LastName    string
	DateOfBirth time.Time
	DateOfDeath *time.Time
}

// Movie holds non-owning references to its classifications. A reference whose
// target was deleted comes back with only its ID set.
type Movie struct {
	ID          int64
	Title       string
	ReleaseDate time.Time
	Studio      string
	Rating      Classification
	Genre       Classification
	Language    Classification
	PlotSummary *string
	Notes       *string
}

// TvShow mirrors Movie's reference shape; its plot summary is required.
type TvShow struct {
	ID          int64
	Title       string
	DateAired   time.Time
	Network     string
	Rating      Classification
	Genre       Classification
	Language    Classification
	PlotSummary string
	Series      bool
}

// NameQuery filters persons by name patterns. Nil fields are not filtered on.
// Patterns use SQL LIKE semantics.
type NameQuery struct {
	First  *string
	Middle *string
	Last   *string
}

// Empty reports whether the query has no filter at all.
func (q NameQuery) Empty() bool {
	return q.First == nil && q.Middle == nil && q.Last == nil
}

// ClassificationStore is the persistence contract for one classification kind.
// Lookups report absence through the bool result, never through an error.
type ClassificationStore interface {
	Kind() Kind
	Insert(ctx context.Context, c Classification) (Classification, error)
	Get(ctx context.Context, id int64) (Classification, bool, error)
	GetByName(ctx context.Context, name string) (Classification, bool, error)
	ListByIDs(ctx context.Context, ids []int64) ([]Classification, error)
	List(ctx context.Context) ([]Classification, error)
	Update(ctx context.Context, c Classification) (Classification, bool, error)
	Delete(ctx context.Context, ids []int64) ([]int64, error)
}

// PersonStore is the persistence contract for persons.
type PersonStore interface {
	Insert(ctx context.Context, p Person) (Person, error)
	Get(ctx context.Context, id int64) (Person, bool, error)
	FindByName(ctx context.Context, q NameQuery) ([]Person, error)
	FindByDateOfBirth(ctx context.Context, d time.Time) ([]Person, error)
	FindByDateOfDeath(ctx context.Context, d time.Time) ([]Person, error)
	ListByIDs(ctx context.Context, ids []int64) ([]Person, error)
	List(ctx context.Context) ([]Person, error)
	Update(ctx context.Context, p Person) (Person, bool, error)
	Delete(ctx context.Context, ids []int64) ([]int64, error)
}

// MovieStore is the persistence contract for movies. Title and studio
// lookups are pattern matches.
type MovieStore interface {
	Insert(ctx context.Context, m Movie) (Movie, error)
	Get(ctx context.Context, id int64) (Movie, bool, error)
	FindByTitle(ctx context.Context, pattern string) ([]Movie, error)
	FindByReleaseDate(ctx context.Context, d time.Time) ([]Movie, error)
	FindByStudio(ctx context.Context, pattern string) ([]Movie, error)
	ListByIDs(ctx context.Context, ids []int64) ([]Movie, error)
	List(ctx context.Context) ([]Movie, error)
	Update(ctx context.Context, m Movie) (Movie, bool, error)
	Delete(ctx context.Context, ids []int64) ([]int64, error)
}

// TvShowStore is the persistence contract for TV shows.
type TvShowStore interface {
	Insert(ctx context.Context, t TvShow) (TvShow, error)
	Get(ctx context.Context, id int64) (TvShow, bool, error)
	FindByTitle(ctx context.Context, pattern string) ([]TvShow, error)
	FindByDateAired(ctx context.Context, d time.Time) ([]TvShow, error)
	FindByNetwork(ctx context.Context, pattern string) ([]TvShow, error)
	ListByIDs(ctx context.Context, ids []int64) ([]TvShow, error)
	List(ctx context.Context) ([]TvShow, error)
	Update(ctx context.Context, t TvShow) (TvShow, bool, error)
	Delete(ctx context.Context, ids []int64) ([]int64, error)
}

// Stores groups one store per collection, all backed by the same engine.
type Stores struct {
	Ratings   ClassificationStore
	Genres    ClassificationStore
	Languages ClassificationStore
	Persons   PersonStore
	Movies    MovieStore
	TvShows   TvShowStore
}

// Classifications returns the store for kind k, or nil for an unknown kind.
func (s Stores) Classifications(k Kind) ClassificationStore {
	switch k {
	case KindRating:
		return s.Ratings
	case KindGenre:
		return s.Genres
	case KindLanguage:
		return s.Languages
	}
	return nil
}

// Date truncates t to a UTC calendar date, the granularity every date column uses.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func hasRefs(rating, genre, language Classification) bool {
	return rating.ID != 0 && genre.ID != 0 && language.ID != 0
}
