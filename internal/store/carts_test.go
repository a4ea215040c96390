package store

import (
	"context"
	"testing"

	"github.com/yutax9/storefront/internal/cart"
	"github.com/yutax9/storefront/internal/db"
	"github.com/yutax9/storefront/internal/model"
)

func TestCartKey(t *testing.T) {
	if got := CartKey(42, "sess"); got != "cart_42" {
		t.Errorf("expected 'cart_42', got %q", got)
	}
	if got := CartKey(0, "sess"); got != "cart_guest_sess" {
		t.Errorf("expected 'cart_guest_sess', got %q", got)
	}
}

func TestSaveAndLoadCart(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	c := &cart.Cart{}
	c.Add(&model.Product{ID: 1, Name: "Mug", Price: 4.5, StockQuantity: 10}, 2)

	if err := SaveCart(ctx, database, "cart_1", c); err != nil {
		t.Fatalf("SaveCart: %v", err)
	}

	got, err := LoadCart(ctx, database, "cart_1")
	if err != nil {
		t.Fatalf("LoadCart: %v", err)
	}
	if len(got.Items) != 1 || got.Items[0].Name != "Mug" || got.Items[0].Quantity != 2 {
		t.Errorf("unexpected cart snapshot: %+v", got.Items)
	}
	if got.Total() != 9 {
		t.Errorf("expected total 9, got %v", got.Total())
	}
}

func TestLoadCartMissingIsEmpty(t *testing.T) {
	database := db.NewTestDB(t)

	got, err := LoadCart(context.Background(), database, "cart_999")
	if err != nil {
		t.Fatalf("LoadCart: %v", err)
	}
	if !got.IsEmpty() {
		t.Errorf("expected empty cart for unknown key, got %+v", got.Items)
	}
}

func TestSaveCartOverwrites(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	c := &cart.Cart{}
	c.Add(&model.Product{ID: 1, Price: 10, StockQuantity: 5}, 3)
	SaveCart(ctx, database, "cart_1", c)

	c.Clear()
	if err := SaveCart(ctx, database, "cart_1", c); err != nil {
		t.Fatalf("SaveCart: %v", err)
	}

	got, _ := LoadCart(ctx, database, "cart_1")
	if !got.IsEmpty() {
		t.Errorf("expected cleared snapshot, got %+v", got.Items)
	}
}

func TestCartsArePerKey(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	alice := &cart.Cart{}
	alice.Add(&model.Product{ID: 1, Price: 10, StockQuantity: 5}, 1)
	SaveCart(ctx, database, CartKey(1, ""), alice)

	// Switching to another user must not leak the prior user's items.
	bob, err := LoadCart(ctx, database, CartKey(2, ""))
	if err != nil {
		t.Fatalf("LoadCart: %v", err)
	}
	if !bob.IsEmpty() {
		t.Errorf("expected empty cart for other user, got %+v", bob.Items)
	}

	back, _ := LoadCart(ctx, database, CartKey(1, ""))
	if back.Count() != 1 {
		t.Errorf("expected user 1's cart to persist, got %+v", back.Items)
	}
}

func TestDeleteCart(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	c := &cart.Cart{}
	c.Add(&model.Product{ID: 1, Price: 10, StockQuantity: 5}, 1)
	SaveCart(ctx, database, "cart_1", c)

	if err := DeleteCart(ctx, database, "cart_1"); err != nil {
		t.Fatalf("DeleteCart: %v", err)
	}

	got, _ := LoadCart(ctx, database, "cart_1")
	if !got.IsEmpty() {
		t.Error("expected empty cart after delete")
	}
}
