package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/sayafh/curriculum-chat/internal/session"
)

type contextKey string

const (
	// SessionIDHeader carries the caller's session identity. Absent or
	// malformed IDs get a fresh one, echoed back on every response.
	SessionIDHeader = "X-Session-ID"

	sessionIDKey  contextKey = "sessionID"
	controllerKey contextKey = "controller"
)

// SessionContext resolves the caller's session controller and stores it in
// the request context.
func SessionContext(manager *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := r.Header.Get(SessionIDHeader)
			if _, err := uuid.Parse(sessionID); err != nil {
				sessionID = uuid.New().String()
			}

			w.Header().Set(SessionIDHeader, sessionID)

			ctrl := manager.Get(sessionID)
			ctx := context.WithValue(r.Context(), sessionIDKey, sessionID)
			ctx = context.WithValue(ctx, controllerKey, ctrl)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSessionID gets the session ID from context.
func GetSessionID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionIDKey).(string)
	return id, ok
}

// GetController gets the session controller from context.
func GetController(ctx context.Context) (*session.Controller, bool) {
	ctrl, ok := ctx.Value(controllerKey).(*session.Controller)
	return ctrl, ok
}
