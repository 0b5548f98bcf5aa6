package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/example/media-library/internal/platform/api"
)

func writeJSONOK(w http.ResponseWriter, v any) {
	api.WriteJSON(w, http.StatusOK, v)
}

// existsHandler answers HEAD requests with 200 or 404 and no body.
func existsHandler(exists func(context.Context, int64) (bool, error), log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := requestID(r)
		id, ok := pathID(w, r, rid)
		if !ok {
			return
		}
		found, err := exists(r.Context(), id)
		if err != nil {
			writeServiceError(w, log, rid, err)
			return
		}
		if !found {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}

func deleteOneHandler(del func(context.Context, int64) (int64, bool, error), what string, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := requestID(r)
		id, ok := pathID(w, r, rid)
		if !ok {
			return
		}
		_, found, err := del(r.Context(), id)
		if err != nil {
			writeServiceError(w, log, rid, err)
			return
		}
		if !found {
			notFound(w, rid, what, id)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func deleteManyHandler(
	delIDs func(context.Context, []int64) ([]int64, error),
	delAll func(context.Context) ([]int64, error),
	what string,
	log *zap.Logger,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := requestID(r)
		ids, hasIDs, ok := queryIDs(w, r, rid)
		if !ok {
			return
		}
		var (
			deleted []int64
			err     error
		)
		if hasIDs {
			deleted, err = delIDs(r.Context(), ids)
		} else {
			deleted, err = delAll(r.Context())
		}
		if err != nil {
			writeServiceError(w, log, rid, err)
			return
		}
		writeDeleted(w, rid, what, deleted)
	}
}
