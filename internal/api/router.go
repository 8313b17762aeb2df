package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/rs/cors"
)

// NewRouter wires the routes, CORS and request logging into one handler.
func NewRouter(h *Handler, corsOptions cors.Options, log *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK")
	})

	mux.HandleFunc("POST /api/v1/signup", h.signup)
	mux.HandleFunc("POST /api/v1/signin", h.signin)
	mux.HandleFunc("GET /api/v1/users/{key}", h.getUser)

	mux.HandleFunc("GET /api/v1/threads", h.listThreads)
	mux.HandleFunc("GET /api/v1/threads/{key}", h.getThread)
	mux.HandleFunc("POST /api/v1/threads", h.requireUser(h.createThread))

	mux.HandleFunc("GET /api/v1/threads/{key}/posts", h.listPosts)
	mux.HandleFunc("POST /api/v1/threads/{key}/posts", h.requireUser(h.createPost))
	mux.HandleFunc("DELETE /api/v1/posts/{key}", h.requireUser(h.deletePost))

	handler := cors.New(corsOptions).Handler(mux)
	return requestLogger(log, handler)
}
