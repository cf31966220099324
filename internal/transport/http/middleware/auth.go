package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/bidhub-api/internal/domain"
	"github.com/rs/zerolog/hlog"
)

// SessionCookie carries the bearer token for browser clients.
const SessionCookie = "access_token"

type contextKey string

const sessionKey contextKey = "session"

// SessionLookup resolves a bearer token to a live session. A nil session with
// a nil error means the token does not identify one.
type SessionLookup interface {
	Lookup(ctx context.Context, token string) (*domain.Session, error)
}

// TokenFromRequest returns the session token from the access_token cookie,
// falling back to an Authorization: Bearer header.
func TokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

// Auth returns middleware that requires a live session and injects it into context.
func Auth(lookup SessionLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := TokenFromRequest(r)
			if token == "" {
				writeJSONError(w, http.StatusUnauthorized, "missing or invalid authorization header")
				return
			}
			sess, err := lookup.Lookup(r.Context(), token)
			if err != nil {
				hlog.FromRequest(r).Error().Err(err).Msg("session lookup failed")
				writeJSONError(w, http.StatusInternalServerError, "internal server error")
				return
			}
			if sess == nil {
				writeJSONError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
		})
	}
}

// WithSession returns a copy of ctx carrying sess.
func WithSession(ctx context.Context, sess *domain.Session) context.Context {
	return context.WithValue(ctx, sessionKey, sess)
}

// SessionFromContext extracts the authenticated session from the request context.
func SessionFromContext(ctx context.Context) (*domain.Session, bool) {
	s, ok := ctx.Value(sessionKey).(*domain.Session)
	return s, ok && s != nil
}
