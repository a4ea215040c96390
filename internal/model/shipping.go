package model

// ShippingZone maps a country to a base shipping rate and an optional
// free-shipping threshold.
type ShippingZone struct {
	ID                    int64    `json:"id"`
	Name                  string   `json:"name"`
	Country               string   `json:"country"`
	BaseRate              float64  `json:"base_rate"`
	FreeShippingThreshold *float64 `json:"free_shipping_threshold"`
}

// ShippingQuote is the backend's shipping cost preview for a cart total.
type ShippingQuote struct {
	ShippingCost float64 `json:"shipping_cost"`
	IsFree       bool    `json:"is_free"`
	Message      string  `json:"message,omitempty"`
}

// AdminStats holds the aggregated dashboard counters.
type AdminStats struct {
	TotalProducts   int            `json:"total_products"`
	TotalOrders     int            `json:"total_orders"`
	OrdersByStatus  map[string]int `json:"orders_by_status"`
	TotalRevenue    float64        `json:"total_revenue"`
	LowStockCount   int            `json:"low_stock_count"`
	OutOfStockCount int            `json:"out_of_stock_count"`
}
