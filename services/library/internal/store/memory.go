package store

import (
	"context"
	"sort"
	"sync"
	"time"
)

// table is a single in-memory collection with a monotonic id counter.
// Ids are never reused, even after the row is deleted.
type table[T any] struct {
	lastID int64
	rows   map[int64]T
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[int64]T)}
}

func (t *table[T]) nextID() int64 {
	t.lastID++
	return t.lastID
}

// sorted returns every row in ascending id order.
func (t *table[T]) sorted() []T {
	ids := make([]int64, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, t.rows[id])
	}
	return out
}

// pick returns the rows matching ids in ascending id order; missing ids are dropped.
func (t *table[T]) pick(ids []int64) []T {
	found := make([]int64, 0, len(ids))
	seen := make(map[int64]bool, len(ids))
	for _, id := range ids {
		if _, ok := t.rows[id]; ok && !seen[id] {
			seen[id] = true
			found = append(found, id)
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i] < found[j] })
	out := make([]T, 0, len(found))
	for _, id := range found {
		out = append(out, t.rows[id])
	}
	return out
}

func (t *table[T]) remove(ids []int64) []int64 {
	var deleted []int64
	for _, id := range ids {
		if _, ok := t.rows[id]; ok {
			delete(t.rows, id)
			deleted = append(deleted, id)
		}
	}
	sort.Slice(deleted, func(i, j int) bool { return deleted[i] < deleted[j] })
	return deleted
}

func filter[T any](rows []T, keep func(T) bool) []T {
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// InMemory keeps every collection in process memory behind one lock.
// Intended for development and tests.
type InMemory struct {
	mu              sync.RWMutex
	classifications map[Kind]*table[Classification]
	persons         *table[Person]
	movies          *table[Movie]
	tvShows         *table[TvShow]
}

func NewInMemory() *InMemory {
	m := &InMemory{
		classifications: make(map[Kind]*table[Classification], len(Kinds)),
		persons:         newTable[Person](),
		movies:          newTable[Movie](),
		tvShows:         newTable[TvShow](),
	}
	for _, k := range Kinds {
		m.classifications[k] = newTable[Classification]()
	}
	return m
}

// Stores exposes the in-memory collections through the store interfaces.
func (m *InMemory) Stores() Stores {
	return Stores{
		Ratings:   &memClassifications{db: m, kind: KindRating},
		Genres:    &memClassifications{db: m, kind: KindGenre},
		Languages: &memClassifications{db: m, kind: KindLanguage},
		Persons:   &memPersons{db: m},
		Movies:    &memMovies{db: m},
		TvShows:   &memTvShows{db: m},
	}
}

// ref re-reads a stored reference so renames are visible to media rows.
// Caller must hold the lock.
func (m *InMemory) ref(k Kind, c Classification) Classification {
	if row, ok := m.classifications[k].rows[c.ID]; ok {
		return row
	}
	return Classification{ID: c.ID}
}

// ── Classifications ────────────────────────────────────────────────────────

type memClassifications struct {
	db   *InMemory
	kind Kind
}

func (s *memClassifications) Kind() Kind { return s.kind }

func (s *memClassifications) t() *table[Classification] { return s.db.classifications[s.kind] }

func (s *memClassifications) nameTaken(name string, except int64) bool {
	for id, row := range s.t().rows {
		if row.Name == name && id != except {
			return true
		}
	}
	return false
}

func (s *memClassifications) Insert(_ context.Context, c Classification) (Classification, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if s.nameTaken(c.Name, 0) {
		return Classification{}, &DuplicateNameError{Kind: s.kind, Name: c.Name}
	}
	c.ID = s.t().nextID()
	s.t().rows[c.ID] = c
	return c, nil
}

func (s *memClassifications) Get(_ context.Context, id int64) (Classification, bool, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	c, ok := s.t().rows[id]
	return c, ok, nil
}

func (s *memClassifications) GetByName(_ context.Context, name string) (Classification, bool, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	for _, c := range s.t().sorted() {
		if c.Name == name {
			return c, true, nil
		}
	}
	return Classification{}, false, nil
}

func (s *memClassifications) ListByIDs(_ context.Context, ids []int64) ([]Classification, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	return s.t().pick(ids), nil
}

func (s *memClassifications) List(_ context.Context) ([]Classification, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	return s.t().sorted(), nil
}

func (s *memClassifications) Update(_ context.Context, c Classification) (Classification, bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.t().rows[c.ID]; !ok {
		return Classification{}, false, nil
	}
	if s.nameTaken(c.Name, c.ID) {
		return Classification{}, false, &DuplicateNameError{Kind: s.kind, Name: c.Name}
	}
	s.t().rows[c.ID] = c
	return c, true, nil
}

func (s *memClassifications) Delete(_ context.Context, ids []int64) ([]int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	return s.t().remove(ids), nil
}

// ── Persons ────────────────────────────────────────────────────────────────

type memPersons struct {
	db *InMemory
}

func (s *memPersons) Insert(_ context.Context, p Person) (Person, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	p.ID = s.db.persons.nextID()
	s.db.persons.rows[p.ID] = p
	return p, nil
}

func (s *memPersons) Get(_ context.Context, id int64) (Person, bool, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	p, ok := s.db.persons.rows[id]
	return p, ok, nil
}

func (s *memPersons) FindByName(_ context.Context, q NameQuery) ([]Person, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	return filter(s.db.persons.sorted(), func(p Person) bool {
		if q.First != nil && !Like(p.FirstName, *q.First) {
			return false
		}
		if q.Middle != nil && (p.MiddleName == nil || !Like(*p.MiddleName, *q.Middle)) {
			return false
		}
		if q.Last != nil && !Like(p.LastName, *q.Last) {
			return false
		}
		return true
	}), nil
}

func (s *memPersons) FindByDateOfBirth(_ context.Context, d time.Time) ([]Person, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	d = Date(d)
	return filter(s.db.persons.sorted(), func(p Person) bool {
		return Date(p.DateOfBirth).Equal(d)
	}), nil
}

func (s *memPersons) FindByDateOfDeath(_ context.Context, d time.Time) ([]Person, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	d = Date(d)
	return filter(s.db.persons.sorted(), func(p Person) bool {
		return p.DateOfDeath != nil && Date(*p.DateOfDeath).Equal(d)
	}), nil
}

func (s *memPersons) ListByIDs(_ context.Context, ids []int64) ([]Person, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	return s.db.persons.pick(ids), nil
}

func (s *memPersons) List(_ context.Context) ([]Person, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	return s.db.persons.sorted(), nil
}

func (s *memPersons) Update(_ context.Context, p Person) (Person, bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.persons.rows[p.ID]; !ok {
		return Person{}, false, nil
	}
	s.db.persons.rows[p.ID] = p
	return p, true, nil
}

func (s *memPersons) Delete(_ context.Context, ids []int64) ([]int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	return s.db.persons.remove(ids), nil
}

// ── Movies ─────────────────────────────────────────────────────────────────

type memMovies struct {
	db *InMemory
}

func (s *memMovies) hydrate(rows []Movie) []Movie {
	for i := range rows {
		rows[i].Rating = s.db.ref(KindRating, rows[i].Rating)
		rows[i].Genre = s.db.ref(KindGenre, rows[i].Genre)
		rows[i].Language = s.db.ref(KindLanguage, rows[i].Language)
	}
	return rows
}

func (s *memMovies) Insert(_ context.Context, m Movie) (Movie, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if !hasRefs(m.Rating, m.Genre, m.Language) {
		return Movie{}, missingRefs(EntityMovie, m.ID)
	}
	m.ID = s.db.movies.nextID()
	s.db.movies.rows[m.ID] = m
	return s.hydrate([]Movie{m})[0], nil
}

func (s *memMovies) Get(_ context.Context, id int64) (Movie, bool, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	m, ok := s.db.movies.rows[id]
	if !ok {
		return Movie{}, false, nil
	}
	return s.hydrate([]Movie{m})[0], true, nil
}

func (s *memMovies) FindByTitle(_ context.Context, pattern string) ([]Movie, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	re := likeRegexp(pattern)
	return s.hydrate(filter(s.db.movies.sorted(), func(m Movie) bool {
		return re.MatchString(m.Title)
	})), nil
}

func (s *memMovies) FindByReleaseDate(_ context.Context, d time.Time) ([]Movie, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	d = Date(d)
	return s.hydrate(filter(s.db.movies.sorted(), func(m Movie) bool {
		return Date(m.ReleaseDate).Equal(d)
	})), nil
}

func (s *memMovies) FindByStudio(_ context.Context, pattern string) ([]Movie, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	re := likeRegexp(pattern)
	return s.hydrate(filter(s.db.movies.sorted(), func(m Movie) bool {
		return re.MatchString(m.Studio)
	})), nil
}

func (s *memMovies) ListByIDs(_ context.Context, ids []int64) ([]Movie, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	return s.hydrate(s.db.movies.pick(ids)), nil
}

func (s *memMovies) List(_ context.Context) ([]Movie, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	return s.hydrate(s.db.movies.sorted()), nil
}

func (s *memMovies) Update(_ context.Context, m Movie) (Movie, bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.movies.rows[m.ID]; !ok {
		return Movie{}, false, nil
	}
	if !hasRefs(m.Rating, m.Genre, m.Language) {
		return Movie{}, false, missingRefs(EntityMovie, m.ID)
	}
	s.db.movies.rows[m.ID] = m
	return s.hydrate([]Movie{m})[0], true, nil
}

func (s *memMovies) Delete(_ context.Context, ids []int64) ([]int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	return s.db.movies.remove(ids), nil
}

// ── TV shows ───────────────────────────────────────────────────────────────

type memTvShows struct {
	db *InMemory
}

func (s *memTvShows) hydrate(rows []TvShow) []TvShow {
	for i := range rows {
		rows[i].Rating = s.db.ref(KindRating, rows[i].Rating)
		rows[i].Genre = s.db.ref(KindGenre, rows[i].Genre)
		rows[i].Language = s.db.ref(KindLanguage, rows[i].Language)
	}
	return rows
}

func (s *memTvShows) Insert(_ context.Context, t TvShow) (TvShow, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if !hasRefs(t.Rating, t.Genre, t.Language) {
		return TvShow{}, missingRefs(EntityTvShow, t.ID)
	}
	t.ID = s.db.tvShows.nextID()
	s.db.tvShows.rows[t.ID] = t
	return s.hydrate([]TvShow{t})[0], nil
}

func (s *memTvShows) Get(_ context.Context, id int64) (TvShow, bool, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	t, ok := s.db.tvShows.rows[id]
	if !ok {
		return TvShow{}, false, nil
	}
	return s.hydrate([]TvShow{t})[0], true, nil
}

func (s *memTvShows) FindByTitle(_ context.Context, pattern string) ([]TvShow, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	re := likeRegexp(pattern)
	return s.hydrate(filter(s.db.tvShows.sorted(), func(t TvShow) bool {
		return re.MatchString(t.Title)
	})), nil
}

func (s *memTvShows) FindByDateAired(_ context.Context, d time.Time) ([]TvShow, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	d = Date(d)
	return s.hydrate(filter(s.db.tvShows.sorted(), func(t TvShow) bool {
		return Date(t.DateAired).Equal(d)
	})), nil
}

func (s *memTvShows) FindByNetwork(_ context.Context, pattern string) ([]TvShow, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	re := likeRegexp(pattern)
	return s.hydrate(filter(s.db.tvShows.sorted(), func(t TvShow) bool {
		return re.MatchString(t.Network)
	})), nil
}

func (s *memTvShows) ListByIDs(_ context.Context, ids []int64) ([]TvShow, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	return s.hydrate(s.db.tvShows.pick(ids)), nil
}

func (s *memTvShows) List(_ context.Context) ([]TvShow, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	return s.hydrate(s.db.tvShows.sorted()), nil
}

func (s *memTvShows) Update(_ context.Context, t TvShow) (TvShow, bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.tvShows.rows[t.ID]; !ok {
		return TvShow{}, false, nil
	}
	if !hasRefs(t.Rating, t.Genre, t.Language) {
		return TvShow{}, false, missingRefs(EntityTvShow, t.ID)
	}
	s.db.tvShows.rows[t.ID] = t
	return s.hydrate([]TvShow{t})[0], true, nil
}

func (s *memTvShows) Delete(_ context.Context, ids []int64) ([]int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	return s.db.tvShows.remove(ids), nil
}
