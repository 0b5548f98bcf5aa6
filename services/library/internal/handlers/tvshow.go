package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/example/media-library/services/library/internal/service"
	"github.com/example/media-library/services/library/internal/store"
)

const tvShowWhat = "tv show"

// CreateTvShow handles POST /v1/tv-shows. Classifications are cited by name.
func CreateTvShow(svc *service.TvShowService, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := requestID(r)
		var req tvShowRequest
		if !decodeJSON(w, r, rid, &req) {
			return
		}
		t, err := svc.Create(r.Context(), req.draft())
		if err != nil {
			writeServiceError(w, log, rid, err)
			return
		}
		writeCreated(w, r, t.ID, toTvShow(t))
	}
}

// ListTvShows handles GET /v1/tv-shows with ?ids=, ?date-aired= or ?network=.
// ?title= answers with the first matching show rather than a list.
func ListTvShows(svc *service.TvShowService, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := requestID(r)
		ids, hasIDs, ok := queryIDs(w, r, rid)
		if !ok {
			return
		}
		aired, hasAired, ok := queryDate(w, r, rid, "date-aired")
		if !ok {
			return
		}
		title, hasTitle := queryString(r, "title")
		network, hasNetwork := queryString(r, "network")

		if hasTitle && !hasIDs {
			t, found, err := svc.GetByTitle(r.Context(), title)
			if err != nil {
				writeServiceError(w, log, rid, err)
				return
			}
			writeOne(w, rid, tvShowWhat, toTvShow(t), found)
			return
		}

		var (
			out []store.TvShow
			err error
		)
		switch {
		case hasIDs:
			out, err = svc.GetAllWithIDs(r.Context(), ids)
		case hasAired:
			out, err = svc.GetAllByDateAired(r.Context(), aired)
		case hasNetwork:
			out, err = svc.GetAllByNetwork(r.Context(), network)
		default:
			out, err = svc.GetAll(r.Context())
		}
		if err != nil {
			writeServiceError(w, log, rid, err)
			return
		}
		writeList(w, rid, tvShowWhat, mapAll(out, toTvShow))
	}
}

// GetTvShow handles GET /v1/tv-shows/{id}
func GetTvShow(svc *service.TvShowService, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := requestID(r)
		id, ok := pathID(w, r, rid)
		if !ok {
			return
		}
		t, found, err := svc.GetByID(r.Context(), id)
		if err != nil {
			writeServiceError(w, log, rid, err)
			return
		}
		if !found {
			notFound(w, rid, tvShowWhat, id)
			return
		}
		writeJSONOK(w, toTvShow(t))
	}
}

// UpdateTvShow handles PUT /v1/tv-shows/{id}
func UpdateTvShow(svc *service.TvShowService, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := requestID(r)
		id, ok := pathID(w, r, rid)
		if !ok {
			return
		}
		var req tvShowRequest
		if !decodeJSON(w, r, rid, &req) {
			return
		}
		_, found, err := svc.Update(r.Context(), id, req.draft())
		if err != nil {
			writeServiceError(w, log, rid, err)
			return
		}
		if !found {
			notFound(w, rid, tvShowWhat, id)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
