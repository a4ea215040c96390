package web

import (
	"log/slog"
	"net/http"

	"github.com/yutax9/storefront/internal/backend"
	"github.com/yutax9/storefront/internal/model"
	"github.com/yutax9/storefront/internal/session"
	"github.com/yutax9/storefront/internal/store"
)

// ProfilePage handles GET /profile. The profile is fetched fresh so edits
// made elsewhere show up.
func (s *Server) ProfilePage(w http.ResponseWriter, r *http.Request) {
	user, err := s.api(r).Profile(r.Context())
	if err != nil {
		s.backendErrorPage(w, r, err, "Your profile could not be loaded.")
		return
	}

	s.Templates.Render(w, "profile.html", &struct {
		PageData
		Profile *model.User
	}{s.pageData(r, "Profile"), user})
}

// ProfileUpdateSubmit handles POST /profile. The session's profile
// snapshot is updated alongside so the nav reflects the change.
func (s *Server) ProfileUpdateSubmit(w http.ResponseWriter, r *http.Request) {
	update := &backend.ProfileUpdate{
		Username:  r.FormValue("username"),
		Email:     r.FormValue("email"),
		FirstName: r.FormValue("first_name"),
		LastName:  r.FormValue("last_name"),
	}

	renderError := func(message string, profile *model.User) {
		data := s.pageData(r, "Profile")
		data.Error = message
		s.Templates.Render(w, "profile.html", &struct {
			PageData
			Profile *model.User
		}{data, profile})
	}

	draft := &model.User{
		Username:  update.Username,
		Email:     update.Email,
		FirstName: update.FirstName,
		LastName:  update.LastName,
	}

	if update.Username == "" || update.Email == "" {
		renderError("Username and email are required.", draft)
		return
	}

	user, err := s.api(r).UpdateProfile(r.Context(), update)
	if err != nil {
		if s.handleUnauthorized(w, r, err) {
			return
		}
		renderError(errorMessage(err, "Your profile could not be saved."), draft)
		return
	}

	sess := session.FromContext(r.Context())
	sess.Username = user.Username
	sess.Email = user.Email
	if err := store.UpdateSessionProfile(r.Context(), s.DB, sess.ID, user); err != nil {
		slog.Error("failed to update session profile snapshot", "error", err)
	}

	redirectSuccess(w, r, "/profile", "Profile saved.")
}

// PasswordChangeSubmit handles POST /profile/password.
func (s *Server) PasswordChangeSubmit(w http.ResponseWriter, r *http.Request) {
	oldPassword := r.FormValue("old_password")
	newPassword := r.FormValue("new_password")
	newPassword2 := r.FormValue("new_password2")

	renderError := func(message string) {
		user, err := s.api(r).Profile(r.Context())
		if err != nil {
			s.backendErrorPage(w, r, err, "Your profile could not be loaded.")
			return
		}
		data := s.pageData(r, "Profile")
		data.Error = message
		s.Templates.Render(w, "profile.html", &struct {
			PageData
			Profile *model.User
		}{data, user})
	}

	switch {
	case oldPassword == "":
		renderError("Enter your current password.")
		return
	case len(newPassword) < 8:
		renderError("The new password must be at least 8 characters.")
		return
	case newPassword != newPassword2:
		renderError("The new passwords don't match.")
		return
	}

	if err := s.api(r).ChangePassword(r.Context(), oldPassword, newPassword); err != nil {
		if s.handleUnauthorized(w, r, err) {
			return
		}
		renderError(errorMessage(err, "The password could not be changed."))
		return
	}

	redirectSuccess(w, r, "/profile", "Password changed.")
}
