// Package api maps HTTP requests onto the forum services and translates
// domain failures into status codes: conflict 400, unauthorized 401, not
// found 404, store unavailable 503.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/jacentio/agora/internal/forum"
	"github.com/jacentio/agora/internal/store"
)

// Handler holds the services the routes are served from.
type Handler struct {
	users   *forum.Users
	threads *forum.Threads
	posts   *forum.Posts
	log     *slog.Logger
}

// NewHandler constructs the HTTP handler set.
func NewHandler(users *forum.Users, threads *forum.Threads, posts *forum.Posts, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{users: users, threads: threads, posts: posts, log: log}
}

// Payload is the uniform JSON response envelope.
type Payload struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// writeJSON sends a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, payload Payload) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError translates a service failure into a status code.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := "internal error"

	switch {
	case errors.Is(err, forum.ErrConflict):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, forum.ErrUnauthorized):
		status = http.StatusUnauthorized
		message = err.Error()
	case errors.Is(err, forum.ErrNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, store.ErrUnavailable):
		status = http.StatusServiceUnavailable
		message = "store unavailable"
	}

	if status >= 500 {
		h.log.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, Payload{Success: false, Message: message})
}

// decode parses a JSON request body, rejecting unknown fields.
func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
