package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/example/media-library/internal/platform/api"
)

const dateLayout = "2006-01-02"

var epoch = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)

// parseDate accepts an ISO-8601 calendar date or a day count since 1970-01-01.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return time.Time{}, errors.New("expected YYYY-MM-DD or an epoch day")
	}
	return epoch.AddDate(0, 0, int(n)), nil
}

// pathID reads the {id} URL parameter. On failure it writes a 400 and returns false.
func pathID(w http.ResponseWriter, r *http.Request, rid string) (int64, bool) {
	raw := strings.TrimSpace(chi.URLParam(r, "id"))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		api.BadRequest(w, api.CodeInvalidID, "id must be a positive integer", rid, map[string]any{"id": raw})
		return 0, false
	}
	return id, true
}

// queryIDs parses ?ids=1,2,3. present is false when the parameter is absent.
func queryIDs(w http.ResponseWriter, r *http.Request, rid string) (ids []int64, present, ok bool) {
	if !r.URL.Query().Has("ids") {
		return nil, false, true
	}
	for _, part := range strings.Split(r.URL.Query().Get("ids"), ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			api.BadRequest(w, api.CodeInvalidIDs, "ids must be a comma separated list of integers", rid, map[string]any{"ids": part})
			return nil, true, false
		}
		ids = append(ids, id)
	}
	return ids, true, true
}

// queryString returns the trimmed value of key and whether it was supplied.
func queryString(r *http.Request, key string) (string, bool) {
	if !r.URL.Query().Has(key) {
		return "", false
	}
	return strings.TrimSpace(r.URL.Query().Get(key)), true
}

// queryDate parses a date parameter. On failure it writes a 400 and returns ok == false.
func queryDate(w http.ResponseWriter, r *http.Request, rid, key string) (d time.Time, present, ok bool) {
	raw, present := queryString(r, key)
	if !present {
		return time.Time{}, false, true
	}
	d, err := parseDate(raw)
	if err != nil {
		api.BadRequest(w, api.CodeInvalidDate, err.Error(), rid, map[string]any{key: raw})
		return time.Time{}, true, false
	}
	return d, true, true
}
