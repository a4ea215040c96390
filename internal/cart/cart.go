// Package cart holds the client-local shopping cart: a keyed list of
// product snapshots with quantities, clamped to the last-known stock.
package cart

import "github.com/yutax9/storefront/internal/model"

// Item is a product snapshot plus the selected quantity. The snapshot is
// taken when the product is added and can diverge from true stock levels
// until the next catalog fetch.
type Item struct {
	ProductID     int64   `json:"product_id"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stock_quantity"`
	ImageURL      string  `json:"image_url,omitempty"`
	Quantity      int     `json:"quantity"`
}

// Subtotal returns price times quantity for this line.
func (i Item) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}

// Cart is an ordered list of items. Operations never fail: quantities that
// exceed the snapshot stock are silently clamped.
type Cart struct {
	Items []Item `json:"items"`
}

// Add puts a product in the cart. If the product is already present its
// quantity is increased; either way the quantity is clamped to the
// product's stock.
func (c *Cart) Add(p *model.Product, quantity int) {
	for idx := range c.Items {
		if c.Items[idx].ProductID == p.ID {
			c.Items[idx].Quantity = clamp(c.Items[idx].Quantity+quantity, p.StockQuantity)
			c.Items[idx].StockQuantity = p.StockQuantity
			return
		}
	}

	c.Items = append(c.Items, Item{
		ProductID:     p.ID,
		Name:          p.Name,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
		ImageURL:      p.ImageURL,
		Quantity:      clamp(quantity, p.StockQuantity),
	})
}

// UpdateQuantity sets the quantity for a product. A quantity below 1
// removes the item; anything above the snapshot stock is clamped.
func (c *Cart) UpdateQuantity(productID int64, quantity int) {
	if quantity < 1 {
		c.Remove(productID)
		return
	}
	for idx := range c.Items {
		if c.Items[idx].ProductID == productID {
			c.Items[idx].Quantity = clamp(quantity, c.Items[idx].StockQuantity)
			return
		}
	}
}

// Remove deletes a product from the cart.
func (c *Cart) Remove(productID int64) {
	for idx, item := range c.Items {
		if item.ProductID == productID {
			c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = nil
}

// Total returns the sum of price times quantity over all items.
func (c *Cart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Subtotal()
	}
	return total
}

// Count returns the sum of quantities over all items.
func (c *Cart) Count() int {
	var count int
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// Contains reports whether the product is in the cart.
func (c *Cart) Contains(productID int64) bool {
	return c.Quantity(productID) > 0
}

// Quantity returns the selected quantity for a product, or 0.
func (c *Cart) Quantity(productID int64) int {
	for _, item := range c.Items {
		if item.ProductID == productID {
			return item.Quantity
		}
	}
	return 0
}

// IsEmpty reports whether the cart has no items.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func clamp(quantity, stock int) int {
	if quantity > stock {
		return stock
	}
	return quantity
}
