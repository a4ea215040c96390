package cart

import (
	"testing"

	"github.com/yutax9/storefront/internal/model"
)

func product(id int64, price float64, stock int) *model.Product {
	return &model.Product{ID: id, Name: "Product", Price: price, StockQuantity: stock}
}

func TestAddNewItem(t *testing.T) {
	c := &Cart{}
	c.Add(product(1, 10, 5), 3)

	if len(c.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(c.Items))
	}
	if c.Items[0].Quantity != 3 {
		t.Errorf("expected quantity 3, got %d", c.Items[0].Quantity)
	}
	if got := c.Total(); got != 30 {
		t.Errorf("expected total 30, got %v", got)
	}
	if got := c.Count(); got != 3 {
		t.Errorf("expected count 3, got %d", got)
	}
}

func TestAddClampsToStock(t *testing.T) {
	c := &Cart{}
	c.Add(product(1, 10, 5), 8)

	if c.Items[0].Quantity != 5 {
		t.Errorf("expected quantity clamped to 5, got %d", c.Items[0].Quantity)
	}
}

func TestAddExistingAccumulatesAndClamps(t *testing.T) {
	c := &Cart{}
	p := product(1, 10, 5)
	c.Add(p, 3)
	c.Add(p, 4)

	if len(c.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(c.Items))
	}
	if c.Items[0].Quantity != 5 {
		t.Errorf("expected quantity clamped to 5, got %d", c.Items[0].Quantity)
	}
	if got := c.Total(); got != 50 {
		t.Errorf("expected total 50, got %v", got)
	}
}

func TestUpdateQuantity(t *testing.T) {
	c := &Cart{}
	c.Add(product(1, 10, 5), 2)

	c.UpdateQuantity(1, 4)
	if c.Items[0].Quantity != 4 {
		t.Errorf("expected quantity 4, got %d", c.Items[0].Quantity)
	}

	// Above stock clamps.
	c.UpdateQuantity(1, 9)
	if c.Items[0].Quantity != 5 {
		t.Errorf("expected quantity clamped to 5, got %d", c.Items[0].Quantity)
	}

	// Zero removes.
	c.UpdateQuantity(1, 0)
	if !c.IsEmpty() {
		t.Error("expected cart to be empty after updating quantity to 0")
	}
	if got := c.Total(); got != 0 {
		t.Errorf("expected total 0, got %v", got)
	}
}

func TestUpdateQuantityUnknownProduct(t *testing.T) {
	c := &Cart{}
	c.Add(product(1, 10, 5), 2)

	c.UpdateQuantity(99, 3)
	if len(c.Items) != 1 || c.Items[0].Quantity != 2 {
		t.Error("expected cart unchanged for unknown product")
	}
}

func TestRemove(t *testing.T) {
	c := &Cart{}
	c.Add(product(1, 10, 5), 1)
	c.Add(product(2, 20, 5), 2)

	c.Remove(1)
	if len(c.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(c.Items))
	}
	if c.Items[0].ProductID != 2 {
		t.Errorf("expected remaining item to be product 2, got %d", c.Items[0].ProductID)
	}
}

func TestClear(t *testing.T) {
	c := &Cart{}
	c.Add(product(1, 10, 5), 1)
	c.Add(product(2, 20, 5), 2)

	c.Clear()
	if !c.IsEmpty() {
		t.Error("expected empty cart after Clear")
	}
	if c.Count() != 0 || c.Total() != 0 {
		t.Error("expected zero count and total after Clear")
	}
}

func TestContainsAndQuantity(t *testing.T) {
	c := &Cart{}
	c.Add(product(7, 2.5, 10), 4)

	if !c.Contains(7) {
		t.Error("expected cart to contain product 7")
	}
	if c.Contains(8) {
		t.Error("did not expect cart to contain product 8")
	}
	if got := c.Quantity(7); got != 4 {
		t.Errorf("expected quantity 4, got %d", got)
	}
	if got := c.Quantity(8); got != 0 {
		t.Errorf("expected quantity 0 for absent product, got %d", got)
	}
}

func TestTotalOverMixedOperations(t *testing.T) {
	c := &Cart{}
	c.Add(product(1, 10, 5), 3)  // 30
	c.Add(product(2, 4.5, 10), 2) // 9
	c.UpdateQuantity(1, 1)        // 10 + 9
	c.Remove(2)                   // 10

	if got := c.Total(); got != 10 {
		t.Errorf("expected total 10, got %v", got)
	}
}
