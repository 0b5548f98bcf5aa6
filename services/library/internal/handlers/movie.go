package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/example/media-library/services/library/internal/service"
	"github.com/example/media-library/services/library/internal/store"
)

const movieWhat = "movie"

// CreateMovie handles POST /v1/movies. Classifications are cited by name.
func CreateMovie(svc *service.MovieService, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := requestID(r)
		var req movieRequest
		if !decodeJSON(w, r, rid, &req) {
			return
		}
		m, err := svc.Create(r.Context(), req.draft())
		if err != nil {
			writeServiceError(w, log, rid, err)
			return
		}
		writeCreated(w, r, m.ID, toMovie(m))
	}
}

// ListMovies handles GET /v1/movies with ?ids=, ?release-date= or ?studio=.
// ?title= answers with the first matching movie rather than a list.
func ListMovies(svc *service.MovieService, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := requestID(r)
		ids, hasIDs, ok := queryIDs(w, r, rid)
		if !ok {
			return
		}
		released, hasReleased, ok := queryDate(w, r, rid, "release-date")
		if !ok {
			return
		}
		title, hasTitle := queryString(r, "title")
		studio, hasStudio := queryString(r, "studio")

		if hasTitle && !hasIDs {
			m, found, err := svc.GetByTitle(r.Context(), title)
			if err != nil {
				writeServiceError(w, log, rid, err)
				return
			}
			writeOne(w, rid, movieWhat, toMovie(m), found)
			return
		}

		var (
			out []store.Movie
			err error
		)
		switch {
		case hasIDs:
			out, err = svc.GetAllWithIDs(r.Context(), ids)
		case hasReleased:
			out, err = svc.GetAllByReleaseDate(r.Context(), released)
		case hasStudio:
			out, err = svc.GetAllByStudio(r.Context(), studio)
		default:
			out, err = svc.GetAll(r.Context())
		}
		if err != nil {
			writeServiceError(w, log, rid, err)
			return
		}
		writeList(w, rid, movieWhat, mapAll(out, toMovie))
	}
}

// GetMovie handles GET /v1/movies/{id}
func GetMovie(svc *service.MovieService, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := requestID(r)
		id, ok := pathID(w, r, rid)
		if !ok {
			return
		}
		m, found, err := svc.GetByID(r.Context(), id)
		if err != nil {
			writeServiceError(w, log, rid, err)
			return
		}
		if !found {
			notFound(w, rid, movieWhat, id)
			return
		}
		writeJSONOK(w, toMovie(m))
	}
}

// UpdateMovie handles PUT /v1/movies/{id}
func UpdateMovie(svc *service.MovieService, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := requestID(r)
		id, ok := pathID(w, r, rid)
		if !ok {
			return
		}
		var req movieRequest
		if !decodeJSON(w, r, rid, &req) {
			return
		}
		_, found, err := svc.Update(r.Context(), id, req.draft())
		if err != nil {
			writeServiceError(w, log, rid, err)
			return
		}
		if !found {
			notFound(w, rid, movieWhat, id)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
