package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/yutax9/storefront/internal/model"
)

// CategoryInput is the category create/update request body.
type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ListCategories fetches all categories.
func (c *Client) ListCategories(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := c.do(ctx, http.MethodGet, "/categories/", nil, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// GetCategory fetches a single category.
func (c *Client) GetCategory(ctx context.Context, id int64) (*model.Category, error) {
	var category model.Category
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/categories/%d/", id), nil, nil, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// CategoryProducts lists the products in a category.
func (c *Client) CategoryProducts(ctx context.Context, id int64) ([]model.Product, error) {
	var products []model.Product
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/categories/%d/products/", id), nil, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// CreateCategory creates a category (staff only).
func (c *Client) CreateCategory(ctx context.Context, input *CategoryInput) (*model.Category, error) {
	var category model.Category
	if err := c.do(ctx, http.MethodPost, "/categories/", nil, input, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// UpdateCategory replaces a category (staff only).
func (c *Client) UpdateCategory(ctx context.Context, id int64, input *CategoryInput) (*model.Category, error) {
	var category model.Category
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/categories/%d/", id), nil, input, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// DeleteCategory removes a category (staff only).
func (c *Client) DeleteCategory(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/categories/%d/", id), nil, nil, nil)
}
