package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/yutax9/storefront/internal/model"
)

// ShippingZoneInput is the shipping zone create/update request body.
type ShippingZoneInput struct {
	Name                  string   `json:"name"`
	Country               string   `json:"country"`
	BaseRate              float64  `json:"base_rate"`
	FreeShippingThreshold *float64 `json:"free_shipping_threshold"`
}

// ListShippingZones fetches the shipping zone reference data.
func (c *Client) ListShippingZones(ctx context.Context) ([]model.ShippingZone, error) {
	var zones []model.ShippingZone
	if err := c.do(ctx, http.MethodGet, "/shipping-zones/", nil, nil, &zones); err != nil {
		return nil, err
	}
	return zones, nil
}

// CreateShippingZone creates a zone (staff only).
func (c *Client) CreateShippingZone(ctx context.Context, input *ShippingZoneInput) (*model.ShippingZone, error) {
	var zone model.ShippingZone
	if err := c.do(ctx, http.MethodPost, "/shipping-zones/", nil, input, &zone); err != nil {
		return nil, err
	}
	return &zone, nil
}

// UpdateShippingZone replaces a zone (staff only).
func (c *Client) UpdateShippingZone(ctx context.Context, id int64, input *ShippingZoneInput) (*model.ShippingZone, error) {
	var zone model.ShippingZone
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/shipping-zones/%d/", id), nil, input, &zone); err != nil {
		return nil, err
	}
	return &zone, nil
}

// DeleteShippingZone removes a zone (staff only).
func (c *Client) DeleteShippingZone(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/shipping-zones/%d/", id), nil, nil, nil)
}

// CalculateShipping previews the shipping cost for a cart total.
func (c *Client) CalculateShipping(ctx context.Context, zoneID int64, cartTotal float64) (*model.ShippingQuote, error) {
	body := map[string]any{"shipping_zone_id": zoneID, "cart_total": cartTotal}
	var quote model.ShippingQuote
	if err := c.do(ctx, http.MethodPost, "/calculate-shipping/", nil, body, &quote); err != nil {
		return nil, err
	}
	return &quote, nil
}

// AdminStats fetches the aggregated dashboard counters (staff only).
func (c *Client) AdminStats(ctx context.Context) (*model.AdminStats, error) {
	var stats model.AdminStats
	if err := c.do(ctx, http.MethodGet, "/admin/stats/", nil, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
