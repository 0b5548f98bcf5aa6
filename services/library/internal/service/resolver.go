package service

import (
	"context"

	"github.com/example/media-library/services/library/internal/store"
)

// Reference field names, as reported by UnresolvedReferenceError.
const (
	FieldRating   = "rating"
	FieldGenre    = "genre"
	FieldLanguage = "language"
)

// ReferenceNames are the classification names a caller cites in a media draft.
type ReferenceNames struct {
	Rating   string
	Genre    string
	Language string
}

// References are the stored classification rows a draft resolved to.
type References struct {
	Rating   store.Classification
	Genre    store.Classification
	Language store.Classification
}

// Resolution is the outcome of resolving a draft's references: either all
// three rows, or the first field whose name had no match.
type Resolution struct {
	References References
	Field      string
	Name       string
}

func (r Resolution) OK() bool { return r.Field == "" }

// Err returns nil for a complete resolution and an *UnresolvedReferenceError otherwise.
func (r Resolution) Err() error {
	if r.OK() {
		return nil
	}
	return &UnresolvedReferenceError{Field: r.Field, Name: r.Name}
}

// Resolver looks classification names up before any media write happens.
type Resolver struct {
	ratings   store.ClassificationStore
	genres    store.ClassificationStore
	languages store.ClassificationStore
}

func NewResolver(st store.Stores) *Resolver {
	return &Resolver{ratings: st.Ratings, genres: st.Genres, languages: st.Languages}
}

// Resolve checks rating, genre and language in that order and stops at the
// first miss. The returned error is reserved for store failures.
func (r *Resolver) Resolve(ctx context.Context, names ReferenceNames) (Resolution, error) {
	var res Resolution
	steps := []struct {
		field string
		name  string
		from  store.ClassificationStore
		into  *store.Classification
	}{
		{FieldRating, names.Rating, r.ratings, &res.References.Rating},
		{FieldGenre, names.Genre, r.genres, &res.References.Genre},
		{FieldLanguage, names.Language, r.languages, &res.References.Language},
	}

	for _, s := range steps {
		c, ok, err := s.from.GetByName(ctx, s.name)
		if err != nil {
			return Resolution{}, err
		}
		if !ok {
			return Resolution{Field: s.field, Name: s.name}, nil
		}
		*s.into = c
	}
	return res, nil
}
