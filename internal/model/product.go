package model

// Product is the catalog entry as served by the backend. Stock and the
// derived flags are authoritative only at fetch time.
type Product struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stock_quantity"`
	SKU           string  `json:"sku"`
	Category      int64   `json:"category"`
	CategoryName  string  `json:"category_name,omitempty"`
	ImageURL      string  `json:"image_url,omitempty"`
	IsActive      bool    `json:"is_active"`
	IsInStock     bool    `json:"is_in_stock"`
	IsLowStock    bool    `json:"is_low_stock"`
}

// Category groups products.
type Category struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	ProductCount int    `json:"product_count,omitempty"`
}

// ProductFilter holds the catalog query parameters.
type ProductFilter struct {
	Search   string
	Category string
	MinPrice string
	MaxPrice string
	InStock  bool
	Ordering string
}
