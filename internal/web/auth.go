package web

import (
	"log/slog"
	"net/http"

	"github.com/yutax9/storefront/internal/backend"
	"github.com/yutax9/storefront/internal/session"
	"github.com/yutax9/storefront/internal/store"
)

// LoginPage handles GET /login.
func (s *Server) LoginPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "login.html", &struct {
		PageData
		Username string
	}{PageData: s.pageData(r, "Log In")})
}

// LoginSubmit handles POST /login. Credentials are forwarded to the
// backend; on success the token pair and profile snapshot are stored in a
// new session.
func (s *Server) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := r.FormValue("password")

	renderError := func(message string) {
		data := s.pageData(r, "Log In")
		data.Error = message
		s.Templates.Render(w, "login.html", &struct {
			PageData
			Username string
		}{data, username})
	}

	if username == "" || password == "" {
		renderError("Enter your username and password.")
		return
	}

	pair, err := s.Backend.Login(r.Context(), username, password)
	if err != nil {
		if backend.IsUnauthorized(err) {
			renderError("Invalid username or password.")
		} else {
			slog.Error("login failed", "error", err)
			renderError("Could not log in. Please try again.")
		}
		return
	}

	authed := s.Backend.WithAuth(&backend.Auth{Access: pair.Access, Refresh: pair.Refresh})
	user, err := authed.Profile(r.Context())
	if err != nil {
		slog.Error("profile fetch after login failed", "error", err)
		renderError("Could not log in. Please try again.")
		return
	}

	// Replace any guest session; the cart key switches to the user's own
	// snapshot, so guest items are not merged.
	if old := session.FromContext(r.Context()); old != nil {
		s.Sessions.Destroy(r.Context(), w, old.ID)
	}

	_, err = s.Sessions.Issue(r.Context(), w, &store.Session{
		UserID:       user.ID,
		Username:     user.Username,
		Email:        user.Email,
		IsStaff:      user.IsStaff,
		AccessToken:  pair.Access,
		RefreshToken: pair.Refresh,
	})
	if err != nil {
		slog.Error("failed to create session", "error", err)
		renderError("Could not log in. Please try again.")
		return
	}

	slog.Info("user logged in", "user", user.Username, "staff", user.IsStaff)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout handles POST /logout.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	if sess := session.FromContext(r.Context()); sess != nil {
		s.Sessions.Destroy(r.Context(), w, sess.ID)
		slog.Info("user logged out", "user", sess.Username)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// RegisterPage handles GET /register.
func (s *Server) RegisterPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "register.html", &struct {
		PageData
		Username string
		Email    string
	}{PageData: s.pageData(r, "Create Account")})
}

// RegisterSubmit handles POST /register.
func (s *Server) RegisterSubmit(w http.ResponseWriter, r *http.Request) {
	reg := &backend.Registration{
		Username:  r.FormValue("username"),
		Email:     r.FormValue("email"),
		Password:  r.FormValue("password"),
		Password2: r.FormValue("password2"),
	}

	renderError := func(message string) {
		data := s.pageData(r, "Create Account")
		data.Error = message
		s.Templates.Render(w, "register.html", &struct {
			PageData
			Username string
			Email    string
		}{data, reg.Username, reg.Email})
	}

	// Field checks before submission, mirrored by the backend.
	switch {
	case reg.Username == "" || reg.Email == "":
		renderError("Username and email are required.")
		return
	case len(reg.Password) < 8:
		renderError("Password must be at least 8 characters.")
		return
	case reg.Password != reg.Password2:
		renderError("Passwords don't match.")
		return
	}

	if err := s.Backend.Register(r.Context(), reg); err != nil {
		renderError(errorMessage(err, "Registration failed. Please try again."))
		return
	}

	slog.Info("account registered", "user", reg.Username)
	redirectSuccess(w, r, "/login", "Account created. You can log in now.")
}

// ForgotPasswordPage handles GET /forgot-password.
func (s *Server) ForgotPasswordPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "forgot_password.html", &struct{ PageData }{s.pageData(r, "Forgot Password")})
}

// ForgotPasswordSubmit handles POST /forgot-password.
func (s *Server) ForgotPasswordSubmit(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	if email == "" {
		data := s.pageData(r, "Forgot Password")
		data.Error = "Enter your email address."
		s.Templates.Render(w, "forgot_password.html", &struct{ PageData }{data})
		return
	}

	if err := s.Backend.RequestPasswordReset(r.Context(), email); err != nil {
		slog.Error("password reset request failed", "error", err)
		data := s.pageData(r, "Forgot Password")
		data.Error = errorMessage(err, "Could not request a password reset.")
		s.Templates.Render(w, "forgot_password.html", &struct{ PageData }{data})
		return
	}

	redirectSuccess(w, r, "/login", "If that email exists, a reset link has been sent.")
}

// ResetPasswordPage handles GET /reset-password/{uid}/{token}.
func (s *Server) ResetPasswordPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "reset_password.html", &struct {
		PageData
		UID   string
		Token string
	}{s.pageData(r, "Reset Password"), r.PathValue("uid"), r.PathValue("token")})
}

// ResetPasswordSubmit handles POST /reset-password/{uid}/{token}.
func (s *Server) ResetPasswordSubmit(w http.ResponseWriter, r *http.Request) {
	uid := r.PathValue("uid")
	token := r.PathValue("token")
	password := r.FormValue("password")
	password2 := r.FormValue("password2")

	renderError := func(message string) {
		data := s.pageData(r, "Reset Password")
		data.Error = message
		s.Templates.Render(w, "reset_password.html", &struct {
			PageData
			UID   string
			Token string
		}{data, uid, token})
	}

	switch {
	case len(password) < 8:
		renderError("Password must be at least 8 characters.")
		return
	case password != password2:
		renderError("Passwords don't match.")
		return
	}

	if err := s.Backend.ConfirmPasswordReset(r.Context(), uid, token, password); err != nil {
		renderError(errorMessage(err, "Could not reset the password. The link may have expired."))
		return
	}

	redirectSuccess(w, r, "/login", "Password reset. You can log in now.")
}
