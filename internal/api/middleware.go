package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/jacentio/agora/internal/forum"
)

// UserHeader carries the authenticated caller's user key. Token
// verification happens upstream; this layer only resolves the key it is
// handed to a full user record.
const UserHeader = "X-Forum-User"

type ctxKeyUser struct{}

// userFrom returns the authenticated user placed in the context by
// requireUser.
func userFrom(ctx context.Context) (*forum.User, bool) {
	user, ok := ctx.Value(ctxKeyUser{}).(*forum.User)
	return user, ok
}

// requireUser resolves the caller from the user header and stores the full
// User in the request context. Requests without a resolvable user get 401.
func (h *Handler) requireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get(UserHeader)
		if key == "" {
			writeJSON(w, http.StatusUnauthorized, Payload{Success: false, Message: "missing user header"})
			return
		}
		user, err := h.users.GetByKey(r.Context(), key)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		ctx := context.WithValue(r.Context(), ctxKeyUser{}, user)
		next(w, r.WithContext(ctx))
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

// requestLogger logs one line per request.
func requestLogger(log *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
