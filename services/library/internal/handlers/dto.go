package handlers

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/example/media-library/services/library/internal/service"
	"github.com/example/media-library/services/library/internal/store"
)

// Date is a calendar date encoded as "YYYY-MM-DD".
type Date struct {
	time.Time
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(dateLayout))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		d.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("date must be YYYY-MM-DD: %w", err)
	}
	d.Time = t
	return nil
}

func datePtr(t *time.Time) *Date {
	if t == nil {
		return nil
	}
	return &Date{*t}
}

func timePtr(d *Date) *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}

// ── Classifications ────────────────────────────────────────────────────────

type classificationRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

func (req classificationRequest) draft() service.ClassificationDraft {
	return service.ClassificationDraft{Name: req.Name, Description: req.Description}
}

// Classifications are returned as stored.
type classificationResponse = store.Classification

// ── Persons ────────────────────────────────────────────────────────────────

type personRequest struct {
	FirstName   string  `json:"first_name"`
	MiddleName  *string `json:"middle_name,omitempty"`
	LastName    string  `json:"last_name"`
	DateOfBirth Date    `json:"date_of_birth"`
	DateOfDeath *Date   `json:"date_of_death,omitempty"`
}

func (req personRequest) draft() service.PersonDraft {
	return service.PersonDraft{
		FirstName:   req.FirstName,
		MiddleName:  req.MiddleName,
		LastName:    req.LastName,
		DateOfBirth: req.DateOfBirth.Time,
		DateOfDeath: timePtr(req.DateOfDeath),
	}
}

type personResponse struct {
	ID          int64   `json:"id"`
	FirstName   string  `json:"first_name"`
	MiddleName  *string `json:"middle_name,omitempty"`
	LastName    string  `json:"last_name"`
	DateOfBirth Date    `json:"date_of_birth"`
	DateOfDeath *Date   `json:"date_of_death,omitempty"`
}

func toPerson(p store.Person) personResponse {
	return personResponse{
		ID:          p.ID,
		FirstName:   p.FirstName,
		MiddleName:  p.MiddleName,
		LastName:    p.LastName,
		DateOfBirth: Date{p.DateOfBirth},
		DateOfDeath: datePtr(p.DateOfDeath),
	}
}

// ── Movies ─────────────────────────────────────────────────────────────────

type movieRequest struct {
	Title       string  `json:"title"`
	ReleaseDate Date    `json:"release_date"`
	Studio      string  `json:"studio"`
	Rating      string  `json:"rating"`
	Genre       string  `json:"genre"`
	Language    string  `json:"language"`
	PlotSummary *string `json:"plot_summary,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

func (req movieRequest) draft() service.MovieDraft {
	return service.MovieDraft{
		Title:       req.Title,
		ReleaseDate: req.ReleaseDate.Time,
		Studio:      req.Studio,
		Rating:      req.Rating,
		Genre:       req.Genre,
		Language:    req.Language,
		PlotSummary: req.PlotSummary,
		Notes:       req.Notes,
	}
}

type movieResponse struct {
	ID          int64                  `json:"id"`
	Title       string                 `json:"title"`
	ReleaseDate Date                   `json:"release_date"`
	Studio      string                 `json:"studio"`
	Rating      classificationResponse `json:"rating"`
	Genre       classificationResponse `json:"genre"`
	Language    classificationResponse `json:"language"`
	PlotSummary *string                `json:"plot_summary,omitempty"`
	Notes       *string                `json:"notes,omitempty"`
}

func toMovie(m store.Movie) movieResponse {
	return movieResponse{
		ID:          m.ID,
		Title:       m.Title,
		ReleaseDate: Date{m.ReleaseDate},
		Studio:      m.Studio,
		Rating:      m.Rating,
		Genre:       m.Genre,
		Language:    m.Language,
		PlotSummary: m.PlotSummary,
		Notes:       m.Notes,
	}
}

// ── TV shows ───────────────────────────────────────────────────────────────

type tvShowRequest struct {
	Title       string `json:"title"`
	DateAired   Date   `json:"date_aired"`
	Network     string `json:"network"`
	Rating      string `json:"rating"`
	Genre       string `json:"genre"`
	Language    string `json:"language"`
	PlotSummary string `json:"plot_summary"`
	Series      bool   `json:"series"`
}

func (req tvShowRequest) draft() service.TvShowDraft {
	return service.TvShowDraft{
		Title:       req.Title,
		DateAired:   req.DateAired.Time,
		Network:     req.Network,
		Rating:      req.Rating,
		Genre:       req.Genre,
		Language:    req.Language,
		PlotSummary: req.PlotSummary,
		Series:      req.Series,
	}
}

type tvShowResponse struct {
	ID          int64                  `json:"id"`
	Title       string                 `json:"title"`
	DateAired   Date                   `json:"date_aired"`
	Network     string                 `json:"network"`
	Rating      classificationResponse `json:"rating"`
	Genre       classificationResponse `json:"genre"`
	Language    classificationResponse `json:"language"`
	PlotSummary string                 `json:"plot_summary"`
	Series      bool                   `json:"series"`
}

func toTvShow(t store.TvShow) tvShowResponse {
	return tvShowResponse{
		ID:          t.ID,
		Title:       t.Title,
		DateAired:   Date{t.DateAired},
		Network:     t.Network,
		Rating:      t.Rating,
		Genre:       t.Genre,
		Language:    t.Language,
		PlotSummary: t.PlotSummary,
		Series:      t.Series,
	}
}

func mapAll[T, R any](in []T, f func(T) R) []R {
	out := make([]R, 0, len(in))
	for _, v := range in {
		out = append(out, f(v))
	}
	return out
}
