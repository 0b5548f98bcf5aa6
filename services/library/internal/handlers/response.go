package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/example/media-library/internal/platform/api"
	"github.com/example/media-library/internal/platform/httpserver"
)

type deletedResponse struct {
	Deleted []int64 `json:"deleted"`
}

func requestID(r *http.Request) string {
	return httpserver.RequestIDFromContext(r.Context())
}

// writeList answers 404 for an empty result and 200 with the items otherwise.
func writeList[T any](w http.ResponseWriter, rid, what string, items []T) {
	if len(items) == 0 {
		api.NotFound(w, api.CodeNotFound, "no "+what+" found", rid)
		return
	}
	api.WriteJSON(w, http.StatusOK, items)
}

// writeOne answers 404 when the single-result lookup found nothing.
func writeOne[T any](w http.ResponseWriter, rid, what string, v T, found bool) {
	if !found {
		api.NotFound(w, api.CodeNotFound, "no "+what+" found", rid)
		return
	}
	api.WriteJSON(w, http.StatusOK, v)
}

// writeDeleted answers 404 when nothing was deleted.
func writeDeleted(w http.ResponseWriter, rid, what string, ids []int64) {
	if len(ids) == 0 {
		api.NotFound(w, api.CodeNotFound, "no "+what+" deleted", rid)
		return
	}
	api.WriteJSON(w, http.StatusOK, deletedResponse{Deleted: ids})
}

// writeCreated answers 201 with a Location pointing at the new row.
func writeCreated(w http.ResponseWriter, r *http.Request, id int64, body any) {
	w.Header().Set("Location", strings.TrimSuffix(r.URL.Path, "/")+"/"+strconv.FormatInt(id, 10))
	api.WriteJSON(w, http.StatusCreated, body)
}

func notFound(w http.ResponseWriter, rid, what string, id int64) {
	api.NotFound(w, api.CodeNotFound, what+" "+strconv.FormatInt(id, 10)+" not found", rid)
}
