package service

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
)

// Column bounds of the persisted schema.
const (
	maxNameLen        = 100
	maxDescriptionLen = 200
	maxMovieTitleLen  = 255
	maxTvTitleLen     = 100
	maxStudioLen      = 100
	maxNetworkLen     = 100
	maxMoviePlotLen   = 1024
	maxNotesLen       = 4096
	maxTvPlotLen      = 4096
)

// violations collects per-field problems of a draft.
type violations map[string]string

func (v violations) required(field, value string) {
	if strings.TrimSpace(value) == "" {
		v.add(field, "is required")
	}
}

func (v violations) maxLen(field, value string, n int) {
	if utf8.RuneCountInString(value) > n {
		v.add(field, "must be at most "+strconv.Itoa(n)+" characters")
	}
}

func (v violations) optionalMaxLen(field string, value *string, n int) {
	if value != nil {
		v.maxLen(field, *value, n)
	}
}

func (v violations) date(field string, value time.Time) {
	if value.IsZero() {
		v.add(field, "is required")
	}
}

// add keeps the first problem reported for a field.
func (v violations) add(field, msg string) {
	if _, ok := v[field]; !ok {
		v[field] = msg
	}
}

func (v violations) err() error {
	if len(v) == 0 {
		return nil
	}
	return &ValidationError{Fields: v}
}

const maxLoggedIDs = 25

// idsField logs the ids themselves for small batches and only their count otherwise.
func idsField(ids []int64) zap.Field {
	if len(ids) <= maxLoggedIDs {
		return zap.Int64s("ids", ids)
	}
	return zap.Int("count", len(ids))
}

func orNop(log *zap.Logger) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}
