// Package session tracks the visitor across requests: a signed cookie
// referencing a session row that holds the backend token pair, a profile
// snapshot, and (for guests) the cart identity.
package session

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/yutax9/storefront/internal/store"
)

const cookieName = "storefront_session"

type contextKey string

const sessionKey contextKey = "session"

// Manager issues, resolves, and destroys sessions.
type Manager struct {
	DB     *sql.DB
	Secret string
}

// FromContext retrieves the resolved session, or nil for a visitor
// without one.
func FromContext(ctx context.Context) *store.Session {
	s, _ := ctx.Value(sessionKey).(*store.Session)
	return s
}

// Issue creates a session row and sets the session cookie.
func (m *Manager) Issue(ctx context.Context, w http.ResponseWriter, s *store.Session) (*store.Session, error) {
	created, err := store.CreateSession(ctx, m.DB, s)
	if err != nil {
		return nil, err
	}

	token, err := GenerateToken(m.Secret, created.ID)
	if err != nil {
		return nil, err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(CookieExpiry.Seconds()),
	})
	return created, nil
}

// Ensure returns the request's session, creating a guest session (row and
// cookie) if there is none. Guest sessions anchor cart persistence for
// anonymous visitors.
func (m *Manager) Ensure(w http.ResponseWriter, r *http.Request) (*store.Session, error) {
	if s := FromContext(r.Context()); s != nil {
		return s, nil
	}
	return m.Issue(r.Context(), w, &store.Session{})
}

// Destroy deletes the session row and clears the cookie.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, id string) {
	if err := store.DeleteSession(ctx, m.DB, id); err != nil {
		slog.Error("failed to delete session", "error", err)
	}
	clearCookie(w)
}

// resolve loads the session referenced by the request cookie, or nil.
func (m *Manager) resolve(r *http.Request) *store.Session {
	cookie, err := r.Cookie(cookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	claims, err := ValidateToken(m.Secret, cookie.Value)
	if err != nil {
		return nil
	}

	s, err := store.GetSession(r.Context(), m.DB, claims.SessionID)
	if err != nil {
		slog.Error("failed to load session", "error", err)
		return nil
	}
	return s
}

// WithSession resolves the session (if any) into the request context and
// always proceeds. An invalid or dangling cookie is cleared.
func (m *Manager) WithSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := m.resolve(r)
		if s == nil {
			if _, err := r.Cookie(cookieName); err == nil {
				clearCookie(w)
			}
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), sessionKey, s)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireUser redirects visitors without an authenticated session to the
// login page. A session whose refresh token has expired is treated as
// logged out and destroyed. This is a presentation-layer check only; the
// backend independently rejects unauthorized requests.
func (m *Manager) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := FromContext(r.Context())
		if s == nil || !s.IsAuthenticated() {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		if TokenExpired(s.RefreshToken) {
			m.Destroy(r.Context(), w, s.ID)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireStaff redirects non-staff users to the storefront home page and
// unauthenticated visitors to login.
func (m *Manager) RequireStaff(next http.Handler) http.Handler {
	return m.RequireUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := FromContext(r.Context())
		if !s.IsStaff {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	}))
}

// clearCookie clears the session cookie with consistent attributes.
func clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
