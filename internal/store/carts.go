package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/yutax9/storefront/internal/cart"
)

// CartKey returns the persistence key for a cart: per-user for logged-in
// visitors, per-session for guests so anonymous carts don't bleed into
// each other.
func CartKey(userID int64, sessionID string) string {
	if userID != 0 {
		return fmt.Sprintf("cart_%d", userID)
	}
	return "cart_guest_" + sessionID
}

// LoadCart returns the persisted cart snapshot for a key, or an empty
// cart if none exists.
func LoadCart(ctx context.Context, db *sql.DB, key string) (*cart.Cart, error) {
	var raw string
	err := db.QueryRowContext(ctx,
		`SELECT items FROM carts WHERE cart_key = ?`, key,
	).Scan(&raw)
	if err == sql.ErrNoRows {
		return &cart.Cart{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading cart: %w", err)
	}

	c := &cart.Cart{}
	if err := json.Unmarshal([]byte(raw), &c.Items); err != nil {
		return nil, fmt.Errorf("decoding cart snapshot: %w", err)
	}
	return c, nil
}

// SaveCart overwrites the persisted snapshot for a key with the full item
// list. Last write wins.
func SaveCart(ctx context.Context, db *sql.DB, key string, c *cart.Cart) error {
	items := c.Items
	if items == nil {
		items = []cart.Item{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding cart snapshot: %w", err)
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO carts (cart_key, items, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(cart_key) DO UPDATE SET items = excluded.items, updated_at = CURRENT_TIMESTAMP`,
		key, string(raw),
	)
	if err != nil {
		return fmt.Errorf("saving cart: %w", err)
	}
	return nil
}

// DeleteCart removes a persisted cart snapshot.
func DeleteCart(ctx context.Context, db *sql.DB, key string) error {
	_, err := db.ExecContext(ctx, `DELETE FROM carts WHERE cart_key = ?`, key)
	if err != nil {
		return fmt.Errorf("deleting cart: %w", err)
	}
	return nil
}
