package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/yutax9/storefront/internal/model"
)

// TokenPair is the credential pair returned by a successful login.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Registration is the account creation request.
type Registration struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
}

// ProfileUpdate is the editable subset of the profile.
type ProfileUpdate struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, reg *Registration) error {
	return c.do(ctx, http.MethodPost, "/auth/register/", nil, reg, nil)
}

// Login exchanges credentials for a token pair.
func (c *Client) Login(ctx context.Context, username, password string) (*TokenPair, error) {
	body := map[string]string{"username": username, "password": password}
	var pair TokenPair
	if err := c.do(ctx, http.MethodPost, "/auth/login/", nil, body, &pair); err != nil {
		return nil, err
	}
	return &pair, nil
}

// RefreshAccess exchanges a refresh token for a new access token. It goes
// straight to roundTrip so a failed refresh can never recurse.
func (c *Client) RefreshAccess(ctx context.Context, refresh string) (string, error) {
	payload := fmt.Appendf(nil, `{"refresh":%q}`, refresh)
	var resp struct {
		Access string `json:"access"`
	}
	// Refresh is unauthenticated; don't send the expired bearer token.
	unbound := *c
	unbound.auth = nil
	if err := unbound.roundTrip(ctx, http.MethodPost, "/auth/access/refresh/", nil, payload, &resp); err != nil {
		return "", err
	}
	return resp.Access, nil
}

// Profile fetches the authenticated user's profile.
func (c *Client) Profile(ctx context.Context) (*model.User, error) {
	var user model.User
	if err := c.do(ctx, http.MethodGet, "/auth/profile/", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile saves profile changes and returns the updated profile.
func (c *Client) UpdateProfile(ctx context.Context, update *ProfileUpdate) (*model.User, error) {
	var user model.User
	if err := c.do(ctx, http.MethodPut, "/auth/profile/", nil, update, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ChangePassword changes the authenticated user's password.
func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	body := map[string]string{"old_password": oldPassword, "new_password": newPassword}
	return c.do(ctx, http.MethodPost, "/auth/change-password/", nil, body, nil)
}

// RequestPasswordReset asks the backend to email a reset link.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return c.do(ctx, http.MethodPost, "/auth/password-reset/", nil, body, nil)
}

// ConfirmPasswordReset sets a new password using an emailed reset token.
func (c *Client) ConfirmPasswordReset(ctx context.Context, uid, token, password string) error {
	body := map[string]string{"password": password}
	path := fmt.Sprintf("/auth/password-reset/%s/%s/", uid, token)
	return c.do(ctx, http.MethodPost, path, nil, body, nil)
}
