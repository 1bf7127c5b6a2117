package auth

import (
	"context"
	"net/http"
	"strings"

	apperrors "smartfinance/internal/errors"
	"smartfinance/internal/respond"
)

// SessionCookie carries the token for browser clients.
const SessionCookie = "session"

type sessionKey struct{}

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

func SessionFrom(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(*Session)
	return s, ok && s != nil
}

// TokenFromRequest prefers the Authorization bearer token and falls back to
// the session cookie.
func TokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if token, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	if c, err := r.Cookie(SessionCookie); err == nil {
		return c.Value
	}
	return ""
}

// Middleware rejects requests without a valid, unrevoked session.
func Middleware(m *Manager, out *respond.Writer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID := respond.TraceID(r.Context())

			token := TokenFromRequest(r)
			if token == "" {
				out.Error(w, traceID, apperrors.NewUnauthorizedError("login required"))
				return
			}

			session, err := m.Authenticate(r.Context(), token)
			if err != nil {
				out.Error(w, traceID, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
		})
	}
}
