// Package api writes the JSON envelopes shared by every HTTP handler.
package api

import (
	"net/http"
)

// Error codes carried in APIError.Code. Domain errors add their own reasons.
const (
	CodeInvalidJSON = "INVALID_JSON"
	CodeInvalidID   = "INVALID_ID"
	CodeInvalidIDs  = "INVALID_IDS"
	CodeInvalidDate = "INVALID_DATE"
	CodeNotFound    = "NOT_FOUND"
	CodeInternal    = "INTERNAL"
)

type ErrorResponse struct {
	Error APIError `json:"error"`
}

type APIError struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	RequestID string         `json:"request_id,omitempty"`
}

func WriteError(w http.ResponseWriter, status int, code, message, requestID string, details map[string]any) {
	WriteJSON(w, status, ErrorResponse{Error: APIError{Code: code, Message: message, Details: details, RequestID: requestID}})
}

func BadRequest(w http.ResponseWriter, code, message, requestID string, details map[string]any) {
	WriteError(w, http.StatusBadRequest, code, message, requestID, details)
}

// NotFound reports a missing entity or an empty result set.
func NotFound(w http.ResponseWriter, code, message, requestID string) {
	WriteError(w, http.StatusNotFound, code, message, requestID, nil)
}

func Conflict(w http.ResponseWriter, code, message, requestID string, details map[string]any) {
	WriteError(w, http.StatusConflict, code, message, requestID, details)
}

// Internal hides the cause; callers log it first.
func Internal(w http.ResponseWriter, requestID string) {
	WriteError(w, http.StatusInternalServerError, CodeInternal, "Internal server error", requestID, nil)
}
