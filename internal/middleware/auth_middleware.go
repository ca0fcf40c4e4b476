package middleware

import (
	"context"
	"net/http"

	"teammatch/internal/session"
)

// contextKey is a private type for context keys to avoid collisions.
type contextKey string

// UserIDKey is the context key holding the logged in user's id.
const UserIDKey contextKey = "userID"

// RequireLogin lets logged in sessions through with their user id in the
// request context. Anyone else is redirected to /login with msg flashed.
func RequireLogin(sm *session.Manager, msg string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := session.UserID(sm.Get(r))
			if !ok {
				sm.Flash(w, r, msg)
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

// WithUserID returns a copy of ctx carrying userID.
func WithUserID(ctx context.Context, userID uint) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

// GetUserIDFromContext returns the user id stored by RequireLogin.
func GetUserIDFromContext(ctx context.Context) (uint, bool) {
	userID, ok := ctx.Value(UserIDKey).(uint)
	return userID, ok
}
