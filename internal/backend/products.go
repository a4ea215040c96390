package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/yutax9/storefront/internal/model"
)

// ProductInput is the product create/update request body.
type ProductInput struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stock_quantity"`
	SKU           string  `json:"sku"`
	Category      int64   `json:"category"`
	ImageURL      string  `json:"image_url,omitempty"`
	IsActive      bool    `json:"is_active"`
}

// ListProducts fetches the catalog with optional filters.
func (c *Client) ListProducts(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	query := url.Values{}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}
	if filter.Category != "" {
		query.Set("category", filter.Category)
	}
	if filter.MinPrice != "" {
		query.Set("min_price", filter.MinPrice)
	}
	if filter.MaxPrice != "" {
		query.Set("max_price", filter.MaxPrice)
	}
	if filter.InStock {
		query.Set("in_stock", "true")
	}
	if filter.Ordering != "" {
		query.Set("ordering", filter.Ordering)
	}

	var products []model.Product
	if err := c.do(ctx, http.MethodGet, "/products/", query, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct fetches a single product.
func (c *Client) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	var product model.Product
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d/", id), nil, nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateProduct creates a product (staff only).
func (c *Client) CreateProduct(ctx context.Context, input *ProductInput) (*model.Product, error) {
	var product model.Product
	if err := c.do(ctx, http.MethodPost, "/products/", nil, input, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct replaces a product (staff only).
func (c *Client) UpdateProduct(ctx context.Context, id int64, input *ProductInput) (*model.Product, error) {
	var product model.Product
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/products/%d/", id), nil, input, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteProduct removes a product (staff only).
func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/products/%d/", id), nil, nil, nil)
}

// UpdateStock sets a product's stock quantity (staff only).
func (c *Client) UpdateStock(ctx context.Context, id int64, quantity int) (*model.Product, error) {
	body := map[string]int{"stock_quantity": quantity}
	var product model.Product
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/products/%d/update_stock/", id), nil, body, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// LowStockProducts lists products at or below the backend's low-stock
// threshold (staff only).
func (c *Client) LowStockProducts(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := c.do(ctx, http.MethodGet, "/products/low_stock/", nil, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}
