// Package service holds the library's consistency rules: classification
// references by name, existence checks before writes, and the
// drop-missing-silently contract of batch deletes.
package service

import (
	"go.uber.org/zap"

	"github.com/example/media-library/services/library/internal/store"
)

// Library bundles one service per entity type over a single set of stores.
type Library struct {
	Ratings   *ClassificationService
	Genres    *ClassificationService
	Languages *ClassificationService
	Persons   *PersonService
	Movies    *MovieService
	TvShows   *TvShowService
}

func New(st store.Stores, log *zap.Logger) *Library {
	resolver := NewResolver(st)
	return &Library{
		Ratings:   NewClassificationService(st.Ratings, log),
		Genres:    NewClassificationService(st.Genres, log),
		Languages: NewClassificationService(st.Languages, log),
		Persons:   NewPersonService(st.Persons, log),
		Movies:    NewMovieService(st.Movies, resolver, log),
		TvShows:   NewTvShowService(st.TvShows, resolver, log),
	}
}
