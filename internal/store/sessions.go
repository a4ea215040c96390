package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"

	"github.com/yutax9/storefront/internal/model"
)

// Session is one browser session: the backend token pair plus a snapshot
// of the profile fetched at login. Guest sessions have UserID 0 and empty
// tokens.
type Session struct {
	ID           string
	UserID       int64
	Username     string
	Email        string
	IsStaff      bool
	AccessToken  string
	RefreshToken string
}

// IsAuthenticated reports whether the session belongs to a logged-in user.
func (s *Session) IsAuthenticated() bool {
	return s.UserID != 0
}

// User returns the profile snapshot stored with the session.
func (s *Session) User() *model.User {
	if !s.IsAuthenticated() {
		return nil
	}
	return &model.User{
		ID:       s.UserID,
		Username: s.Username,
		Email:    s.Email,
		IsStaff:  s.IsStaff,
	}
}

// CreateSession inserts a new session row with a random ID.
func CreateSession(ctx context.Context, db *sql.DB, s *Session) (*Session, error) {
	id, err := generateSessionID()
	if err != nil {
		return nil, fmt.Errorf("generating session id: %w", err)
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO sessions (id, user_id, username, email, is_staff, access_token, refresh_token)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, s.UserID, s.Username, s.Email, s.IsStaff, s.AccessToken, s.RefreshToken,
	)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}

	created := *s
	created.ID = id
	return &created, nil
}

// GetSession returns a session by ID, or nil if it does not exist.
func GetSession(ctx context.Context, db *sql.DB, id string) (*Session, error) {
	s := &Session{}
	err := db.QueryRowContext(ctx,
		`SELECT id, user_id, username, email, is_staff, access_token, refresh_token
		 FROM sessions WHERE id = ?`, id,
	).Scan(&s.ID, &s.UserID, &s.Username, &s.Email, &s.IsStaff, &s.AccessToken, &s.RefreshToken)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting session: %w", err)
	}
	return s, nil
}

// UpdateSessionAccessToken stores a refreshed access token.
func UpdateSessionAccessToken(ctx context.Context, db *sql.DB, id, accessToken string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE sessions SET access_token = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		accessToken, id,
	)
	if err != nil {
		return fmt.Errorf("updating session access token: %w", err)
	}
	return nil
}

// UpdateSessionProfile refreshes the profile snapshot stored with a session.
func UpdateSessionProfile(ctx context.Context, db *sql.DB, id string, user *model.User) error {
	_, err := db.ExecContext(ctx,
		`UPDATE sessions SET user_id = ?, username = ?, email = ?, is_staff = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		user.ID, user.Username, user.Email, user.IsStaff, id,
	)
	if err != nil {
		return fmt.Errorf("updating session profile: %w", err)
	}
	return nil
}

// DeleteSession removes a session row.
func DeleteSession(ctx context.Context, db *sql.DB, id string) error {
	_, err := db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

// generateSessionID creates a random session identifier.
func generateSessionID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
