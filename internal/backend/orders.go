package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/yutax9/storefront/internal/model"
)

// CreateOrder submits a new order. The backend validates stock and prices;
// the cart is only cleared after this succeeds.
func (c *Client) CreateOrder(ctx context.Context, order *model.NewOrder) (*model.Order, error) {
	var created model.Order
	if err := c.do(ctx, http.MethodPost, "/orders/", nil, order, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// MyOrders lists the authenticated user's orders, optionally filtered by
// status.
func (c *Client) MyOrders(ctx context.Context, status string) ([]model.Order, error) {
	var orders []model.Order
	if err := c.do(ctx, http.MethodGet, "/orders/my_orders/", statusQuery(status), nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// ListOrders lists all orders (staff only), optionally filtered by status.
func (c *Client) ListOrders(ctx context.Context, status string) ([]model.Order, error) {
	var orders []model.Order
	if err := c.do(ctx, http.MethodGet, "/orders/", statusQuery(status), nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetOrder fetches a single order.
func (c *Client) GetOrder(ctx context.Context, id int64) (*model.Order, error) {
	var order model.Order
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/orders/%d/", id), nil, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// CancelOrder requests cancellation of an order. The backend decides
// whether the order is still cancellable.
func (c *Client) CancelOrder(ctx context.Context, id int64) (*model.Order, error) {
	var order model.Order
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/orders/%d/cancel/", id), nil, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrderStatus transitions an order's status (staff only).
func (c *Client) UpdateOrderStatus(ctx context.Context, id int64, status string) (*model.Order, error) {
	body := map[string]string{"status": status}
	var order model.Order
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/orders/%d/update_status/", id), nil, body, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func statusQuery(status string) url.Values {
	if status == "" {
		return nil
	}
	return url.Values{"status": {status}}
}
