package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWriteError_Envelope(t *testing.T) {
	rr := httptest.NewRecorder()
	BadRequest(rr, "VALIDATION_FAILED", "invalid request", "rid-7", map[string]any{"title": "is required"})

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Fatalf("unexpected content type %q", ct)
	}

	var resp ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Error.Code != "VALIDATION_FAILED" || resp.Error.RequestID != "rid-7" {
		t.Fatalf("unexpected envelope %+v", resp.Error)
	}
	if resp.Error.Details["title"] != "is required" {
		t.Fatalf("expected title detail, got %v", resp.Error.Details)
	}
}

func TestInternal_HidesDetails(t *testing.T) {
	rr := httptest.NewRecorder()
	Internal(rr, "")

	var resp ErrorResponse
	_ = json.NewDecoder(rr.Body).Decode(&resp)
	if rr.Code != http.StatusInternalServerError || resp.Error.Code != "INTERNAL" || resp.Error.Details != nil {
		t.Fatalf("unexpected internal error response %d %+v", rr.Code, resp.Error)
	}
}
