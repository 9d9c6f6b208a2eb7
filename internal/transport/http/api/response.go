// Package api defines the JSON response shapes. Successful calls use the
// success envelope; failures use an RFC 7807 style problem payload.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"ocena/internal/apperr"
)

type Envelope struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	Data      any    `json:"data,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

type ProblemDetails struct {
	Type      string `json:"type"`
	Title     string `json:"title"`
	Status    int    `json:"status"`
	Detail    string `json:"detail"`
	RequestID string `json:"requestId,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Warn("write json failed", "err", err)
	}
}

func Success(w http.ResponseWriter, data any, requestID string) {
	WriteJSON(w, http.StatusOK, Envelope{Success: true, Data: data, RequestID: requestID})
}

func Created(w http.ResponseWriter, data any, requestID string) {
	WriteJSON(w, http.StatusCreated, Envelope{Success: true, Data: data, RequestID: requestID})
}

func Message(w http.ResponseWriter, message string, data any, requestID string) {
	WriteJSON(w, http.StatusOK, Envelope{Success: true, Message: message, Data: data, RequestID: requestID})
}

// Problem translates a service error into the problem payload. Unknown
// errors map to 500 with the generic message so store internals never
// leak to the client.
func Problem(w http.ResponseWriter, err error, requestID string) {
	kind := apperr.KindOf(err)
	status := statusOf(kind)
	WriteJSON(w, status, ProblemDetails{
		Type:      typeOf(kind),
		Title:     http.StatusText(status),
		Status:    status,
		Detail:    apperr.MessageOf(err),
		RequestID: requestID,
	})
}

func Fail(w http.ResponseWriter, kind apperr.Kind, detail, requestID string) {
	Problem(w, apperr.New(kind, detail), requestID)
}

func statusOf(kind apperr.Kind) int {
	switch kind {
	case apperr.BadRequest:
		return http.StatusBadRequest
	case apperr.Unauthorized:
		return http.StatusUnauthorized
	case apperr.Forbidden:
		return http.StatusForbidden
	case apperr.NotFound:
		return http.StatusNotFound
	case apperr.Conflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func typeOf(kind apperr.Kind) string {
	switch kind {
	case apperr.BadRequest:
		return "bad_request"
	case apperr.Unauthorized:
		return "unauthorized"
	case apperr.Forbidden:
		return "forbidden"
	case apperr.NotFound:
		return "not_found"
	case apperr.Conflict:
		return "conflict"
	default:
		return "internal"
	}
}
