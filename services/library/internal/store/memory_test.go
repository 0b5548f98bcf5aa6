package store

import (
	"context"
	"errors"
	"testing"
	"time"
)

// Compile-time interface checks.
var (
	_ ClassificationStore = (*memClassifications)(nil)
	_ ClassificationStore = (*pgClassifications)(nil)
	_ PersonStore         = (*memPersons)(nil)
	_ PersonStore         = (*pgPersons)(nil)
	_ MovieStore          = (*memMovies)(nil)
	_ MovieStore          = (*pgMovies)(nil)
	_ TvShowStore         = (*memTvShows)(nil)
	_ TvShowStore         = (*pgTvShows)(nil)
)

func strPtr(s string) *string { return &s }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestInMemoryClassifications_InsertAndGet(t *testing.T) {
	s := NewInMemory().Stores().Ratings
	ctx := context.Background()

	c, err := s.Insert(ctx, Classification{Name: "PG-13", Description: strPtr("parents strongly cautioned")})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if c.ID == 0 {
		t.Fatal("expected id to be assigned")
	}

	got, ok, err := s.Get(ctx, c.ID)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got.Name != "PG-13" || got.Description == nil || *got.Description != "parents strongly cautioned" {
		t.Fatalf("unexpected row: %+v", got)
	}

	byName, ok, _ := s.GetByName(ctx, "PG-13")
	if !ok || byName.ID != c.ID {
		t.Fatalf("expected lookup by name to find id %d, got %+v ok=%v", c.ID, byName, ok)
	}

	_, ok, _ = s.GetByName(ctx, "PG-%")
	if ok {
		t.Fatal("name lookup must be exact, not a pattern")
	}
}

func TestInMemoryClassifications_DuplicateName(t *testing.T) {
	s := NewInMemory().Stores().Genres
	ctx := context.Background()

	if _, err := s.Insert(ctx, Classification{Name: "Drama"}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	_, err := s.Insert(ctx, Classification{Name: "Drama"})
	if !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}
	var dup *DuplicateNameError
	if !errors.As(err, &dup) || dup.Kind != KindGenre || dup.Name != "Drama" {
		t.Fatalf("expected DuplicateNameError for genre Drama, got %v", err)
	}

	// Names are case-sensitive.
	if _, err := s.Insert(ctx, Classification{Name: "drama"}); err != nil {
		t.Fatalf("expected lowercase variant to be accepted: %v", err)
	}
}

func TestInMemoryClassifications_UpdateRenameCollision(t *testing.T) {
	s := NewInMemory().Stores().Languages
	ctx := context.Background()

	en, _ := s.Insert(ctx, Classification{Name: "English"})
	fr, _ := s.Insert(ctx, Classification{Name: "French"})

	_, _, err := s.Update(ctx, Classification{ID: fr.ID, Name: "English"})
	if !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}

	// Keeping its own name is not a collision.
	updated, ok, err := s.Update(ctx, Classification{ID: en.ID, Name: "English", Description: strPtr("en")})
	if err != nil || !ok {
		t.Fatalf("update: ok=%v err=%v", ok, err)
	}
	if updated.ID != en.ID || *updated.Description != "en" {
		t.Fatalf("unexpected update result: %+v", updated)
	}

	_, ok, err = s.Update(ctx, Classification{ID: 999, Name: "German"})
	if err != nil || ok {
		t.Fatalf("expected update of missing id to be a no-op, ok=%v err=%v", ok, err)
	}
}

func TestInMemoryClassifications_IDsNeverReused(t *testing.T) {
	s := NewInMemory().Stores().Ratings
	ctx := context.Background()

	a, _ := s.Insert(ctx, Classification{Name: "G"})
	b, _ := s.Insert(ctx, Classification{Name: "PG"})
	if _, err := s.Delete(ctx, []int64{b.ID}); err != nil {
		t.Fatalf("delete: %v", err)
	}
	c, _ := s.Insert(ctx, Classification{Name: "R"})
	if c.ID == a.ID || c.ID == b.ID {
		t.Fatalf("expected a fresh id, got %d (previous %d, %d)", c.ID, a.ID, b.ID)
	}
}

func TestInMemoryClassifications_ListByIDsDropsMissing(t *testing.T) {
	s := NewInMemory().Stores().Genres
	ctx := context.Background()

	a, _ := s.Insert(ctx, Classification{Name: "Drama"})
	b, _ := s.Insert(ctx, Classification{Name: "Comedy"})

	got, err := s.ListByIDs(ctx, []int64{b.ID, 42, a.ID, b.ID})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].ID != a.ID || got[1].ID != b.ID {
		t.Fatalf("expected [%d %d], got %+v", a.ID, b.ID, got)
	}
}

func TestInMemoryClassifications_DeleteReturnsRemoved(t *testing.T) {
	s := NewInMemory().Stores().Genres
	ctx := context.Background()

	a, _ := s.Insert(ctx, Classification{Name: "Drama"})
	b, _ := s.Insert(ctx, Classification{Name: "Comedy"})

	deleted, err := s.Delete(ctx, []int64{b.ID, 77, a.ID})
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(deleted) != 2 || deleted[0] != a.ID || deleted[1] != b.ID {
		t.Fatalf("expected sorted [%d %d], got %v", a.ID, b.ID, deleted)
	}

	deleted, _ = s.Delete(ctx, []int64{a.ID})
	if len(deleted) != 0 {
		t.Fatalf("expected second delete to remove nothing, got %v", deleted)
	}
}

func TestInMemoryPersons_FindByName(t *testing.T) {
	s := NewInMemory().Stores().Persons
	ctx := context.Background()

	_, _ = s.Insert(ctx, Person{FirstName: "Christopher", LastName: "Nolan", DateOfBirth: day(1970, 7, 30)})
	_, _ = s.Insert(ctx, Person{FirstName: "Jonathan", LastName: "Nolan", DateOfBirth: day(1976, 6, 6)})
	_, _ = s.Insert(ctx, Person{FirstName: "Michael", MiddleName: strPtr("Caine"), LastName: "Micklewhite", DateOfBirth: day(1933, 3, 14)})

	got, err := s.FindByName(ctx, NameQuery{Last: strPtr("Nolan")})
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 Nolans, got %d", len(got))
	}

	got, _ = s.FindByName(ctx, NameQuery{First: strPtr("Chris%"), Last: strPtr("Nolan")})
	if len(got) != 1 || got[0].FirstName != "Christopher" {
		t.Fatalf("expected Christopher Nolan, got %+v", got)
	}

	got, _ = s.FindByName(ctx, NameQuery{Middle: strPtr("Caine")})
	if len(got) != 1 || got[0].LastName != "Micklewhite" {
		t.Fatalf("expected middle name match, got %+v", got)
	}
}

func TestInMemoryPersons_FindByDates(t *testing.T) {
	s := NewInMemory().Stores().Persons
	ctx := context.Background()

	death := day(2008, 1, 22)
	_, _ = s.Insert(ctx, Person{FirstName: "Heath", LastName: "Ledger", DateOfBirth: day(1979, 4, 4), DateOfDeath: &death})
	_, _ = s.Insert(ctx, Person{FirstName: "Christian", LastName: "Bale", DateOfBirth: day(1974, 1, 30)})

	// Time of day must not matter.
	got, _ := s.FindByDateOfBirth(ctx, time.Date(1979, 4, 4, 18, 30, 0, 0, time.UTC))
	if len(got) != 1 || got[0].LastName != "Ledger" {
		t.Fatalf("expected Ledger, got %+v", got)
	}

	got, _ = s.FindByDateOfDeath(ctx, death)
	if len(got) != 1 {
		t.Fatalf("expected one person by date of death, got %d", len(got))
	}

	got, _ = s.FindByDateOfDeath(ctx, day(1974, 1, 30))
	if len(got) != 0 {
		t.Fatalf("expected no match, got %+v", got)
	}
}

func seedRefs(t *testing.T, st Stores) (rating, genre, language Classification) {
	t.Helper()
	ctx := context.Background()
	var err error
	if rating, err = st.Ratings.Insert(ctx, Classification{Name: "PG-13"}); err != nil {
		t.Fatalf("seed rating: %v", err)
	}
	if genre, err = st.Genres.Insert(ctx, Classification{Name: "Drama"}); err != nil {
		t.Fatalf("seed genre: %v", err)
	}
	if language, err = st.Languages.Insert(ctx, Classification{Name: "English"}); err != nil {
		t.Fatalf("seed language: %v", err)
	}
	return rating, genre, language
}

func TestInMemoryMovies_InsertRequiresReferences(t *testing.T) {
	st := NewInMemory().Stores()
	ctx := context.Background()

	_, err := st.Movies.Insert(ctx, Movie{Title: "Inception", ReleaseDate: day(2010, 7, 16), Studio: "Warner Bros"})
	if !errors.Is(err, ErrInvariantViolation) {
		t.Fatalf("expected ErrInvariantViolation, got %v", err)
	}
	all, _ := st.Movies.List(ctx)
	if len(all) != 0 {
		t.Fatalf("expected no rows, got %d", len(all))
	}
}

func TestInMemoryMovies_DanglingReference(t *testing.T) {
	st := NewInMemory().Stores()
	ctx := context.Background()
	r, g, l := seedRefs(t, st)

	m, err := st.Movies.Insert(ctx, Movie{
		Title: "Inception", ReleaseDate: day(2010, 7, 16), Studio: "Warner Bros",
		Rating: r, Genre: g, Language: l,
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	if _, err := st.Genres.Delete(ctx, []int64{g.ID}); err != nil {
		t.Fatalf("delete genre: %v", err)
	}

	got, ok, _ := st.Movies.Get(ctx, m.ID)
	if !ok {
		t.Fatal("movie must survive deletion of its genre")
	}
	if got.Genre.ID != g.ID || got.Genre.Name != "" {
		t.Fatalf("expected dangling genre reference with id only, got %+v", got.Genre)
	}
	if got.Rating.Name != "PG-13" {
		t.Fatalf("expected live rating reference, got %+v", got.Rating)
	}
}

func TestInMemoryMovies_ReferenceRenameVisible(t *testing.T) {
	st := NewInMemory().Stores()
	ctx := context.Background()
	r, g, l := seedRefs(t, st)

	m, _ := st.Movies.Insert(ctx, Movie{Title: "Heat", ReleaseDate: day(1995, 12, 15), Studio: "Warner Bros", Rating: r, Genre: g, Language: l})
	_, _, _ = st.Ratings.Update(ctx, Classification{ID: r.ID, Name: "R"})

	got, _, _ := st.Movies.Get(ctx, m.ID)
	if got.Rating.Name != "R" {
		t.Fatalf("expected renamed rating, got %q", got.Rating.Name)
	}
}

func TestInMemoryMovies_PatternLookups(t *testing.T) {
	st := NewInMemory().Stores()
	ctx := context.Background()
	r, g, l := seedRefs(t, st)

	for _, title := range []string{"The Dark Knight", "The Dark Knight Rises", "Memento"} {
		if _, err := st.Movies.Insert(ctx, Movie{Title: title, ReleaseDate: day(2008, 7, 18), Studio: "Warner Bros", Rating: r, Genre: g, Language: l}); err != nil {
			t.Fatalf("insert %s: %v", title, err)
		}
	}

	got, _ := st.Movies.FindByTitle(ctx, "The Dark Knight")
	if len(got) != 1 {
		t.Fatalf("expected exact title match only, got %d", len(got))
	}
	got, _ = st.Movies.FindByTitle(ctx, "The Dark%")
	if len(got) != 2 {
		t.Fatalf("expected 2 prefix matches, got %d", len(got))
	}
	got, _ = st.Movies.FindByStudio(ctx, "%Bros")
	if len(got) != 3 {
		t.Fatalf("expected 3 studio matches, got %d", len(got))
	}
}

func TestInMemoryTvShows_UpdateMissingIsNoop(t *testing.T) {
	st := NewInMemory().Stores()
	ctx := context.Background()
	r, g, l := seedRefs(t, st)

	_, ok, err := st.TvShows.Update(ctx, TvShow{ID: 5, Title: "Lost", Rating: r, Genre: g, Language: l})
	if err != nil || ok {
		t.Fatalf("expected no-op, ok=%v err=%v", ok, err)
	}
	all, _ := st.TvShows.List(ctx)
	if len(all) != 0 {
		t.Fatalf("update must not create rows, got %d", len(all))
	}
}

func TestInMemoryTvShows_FindByNetworkAndDate(t *testing.T) {
	st := NewInMemory().Stores()
	ctx := context.Background()
	r, g, l := seedRefs(t, st)

	_, _ = st.TvShows.Insert(ctx, TvShow{Title: "Lost", DateAired: day(2004, 9, 22), Network: "ABC", PlotSummary: "island", Series: true, Rating: r, Genre: g, Language: l})
	_, _ = st.TvShows.Insert(ctx, TvShow{Title: "The Wire", DateAired: day(2002, 6, 2), Network: "HBO", PlotSummary: "baltimore", Series: true, Rating: r, Genre: g, Language: l})

	got, _ := st.TvShows.FindByNetwork(ctx, "H_O")
	if len(got) != 1 || got[0].Title != "The Wire" {
		t.Fatalf("expected The Wire, got %+v", got)
	}
	got, _ = st.TvShows.FindByDateAired(ctx, day(2004, 9, 22))
	if len(got) != 1 || got[0].Title != "Lost" {
		t.Fatalf("expected Lost, got %+v", got)
	}
}
