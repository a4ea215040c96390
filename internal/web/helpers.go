package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/yutax9/storefront/internal/backend"
	"github.com/yutax9/storefront/internal/cart"
	"github.com/yutax9/storefront/internal/session"
	"github.com/yutax9/storefront/internal/store"
)

// api returns a backend client bound to the request's session tokens.
// Refreshed access tokens are persisted back to the session row. Guests
// get the unbound client.
func (s *Server) api(r *http.Request) *backend.Client {
	sess := session.FromContext(r.Context())
	if sess == nil || !sess.IsAuthenticated() {
		return s.Backend
	}

	sessionID := sess.ID
	return s.Backend.WithAuth(&backend.Auth{
		Access:  sess.AccessToken,
		Refresh: sess.RefreshToken,
		OnRefresh: func(ctx context.Context, access string) {
			sess.AccessToken = access
			if err := store.UpdateSessionAccessToken(ctx, s.DB, sessionID, access); err != nil {
				slog.Error("failed to persist refreshed access token", "error", err)
			}
		},
	})
}

// pageData builds the base template data for a request: the session's
// profile snapshot, the cart badge count, and an optional success message
// carried through a redirect.
func (s *Server) pageData(r *http.Request, title string) PageData {
	data := PageData{Title: title, Success: r.URL.Query().Get("success")}

	sess := session.FromContext(r.Context())
	if sess == nil {
		return data
	}
	data.User = sess.User()

	c, err := store.LoadCart(r.Context(), s.DB, store.CartKey(sess.UserID, sess.ID))
	if err != nil {
		slog.Error("failed to load cart for badge", "error", err)
		return data
	}
	data.CartCount = c.Count()
	return data
}

// currentCart loads the cart for the request's session, or an empty cart
// for a visitor without a session.
func (s *Server) currentCart(r *http.Request) *cart.Cart {
	sess := session.FromContext(r.Context())
	if sess == nil {
		return &cart.Cart{}
	}
	c, err := store.LoadCart(r.Context(), s.DB, store.CartKey(sess.UserID, sess.ID))
	if err != nil {
		slog.Error("failed to load cart", "error", err)
		return &cart.Cart{}
	}
	return c
}

// saveCart persists the full cart snapshot for a session.
func (s *Server) saveCart(r *http.Request, sess *store.Session, c *cart.Cart) {
	if err := store.SaveCart(r.Context(), s.DB, store.CartKey(sess.UserID, sess.ID), c); err != nil {
		slog.Error("failed to save cart", "error", err)
	}
}

// redirectSuccess redirects with a success message in the query string.
func redirectSuccess(w http.ResponseWriter, r *http.Request, path, message string) {
	http.Redirect(w, r, path+"?success="+url.QueryEscape(message), http.StatusSeeOther)
}

// backendErrorPage renders the full-page error state for an unrecoverable
// load failure. A 401 that survived the client's refresh retry means the
// stored tokens are dead: the session is destroyed and the visitor is
// sent to the login page.
func (s *Server) backendErrorPage(w http.ResponseWriter, r *http.Request, err error, message string) {
	if s.handleUnauthorized(w, r, err) {
		return
	}

	slog.Error("backend request failed", "path", r.URL.Path, "error", err)
	if backend.IsNotFound(err) {
		w.WriteHeader(http.StatusNotFound)
	}
	s.Templates.Render(w, "error.html", &struct {
		PageData
		Message string
	}{
		PageData: s.pageData(r, "Error"),
		Message:  message,
	})
}

// handleUnauthorized destroys the session and redirects to /login when
// err is a terminal 401. Returns true if it handled the response.
func (s *Server) handleUnauthorized(w http.ResponseWriter, r *http.Request, err error) bool {
	if !backend.IsUnauthorized(err) {
		return false
	}
	if sess := session.FromContext(r.Context()); sess != nil {
		s.Sessions.Destroy(r.Context(), w, sess.ID)
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
	return true
}

// errorMessage extracts a display message from a backend error, falling
// back to the given default.
func errorMessage(err error, fallback string) string {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
