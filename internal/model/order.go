package model

// Order statuses.
const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
)

// OrderStatuses lists all statuses in lifecycle order.
var OrderStatuses = []string{
	OrderPending,
	OrderProcessing,
	OrderShipped,
	OrderDelivered,
	OrderCancelled,
}

// ValidOrderStatus reports whether status is one of the five order statuses.
func ValidOrderStatus(status string) bool {
	for _, s := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// OrderStatusName returns the display name for an order status.
func OrderStatusName(status string) string {
	switch status {
	case OrderPending:
		return "Pending"
	case OrderProcessing:
		return "Processing"
	case OrderShipped:
		return "Shipped"
	case OrderDelivered:
		return "Delivered"
	case OrderCancelled:
		return "Cancelled"
	default:
		return status
	}
}

// OrderItem is a single line of an order.
type OrderItem struct {
	ID          int64   `json:"id"`
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Subtotal    float64 `json:"subtotal"`
}

// Order is backend-owned; the client only reads it and requests transitions.
type Order struct {
	ID              int64       `json:"id"`
	OrderNumber     string      `json:"order_number"`
	Status          string      `json:"status"`
	StatusDisplay   string      `json:"status_display,omitempty"`
	ShippingAddress string      `json:"shipping_address"`
	Notes           string      `json:"notes,omitempty"`
	Items           []OrderItem `json:"order_items"`
	TotalAmount     float64     `json:"total_amount"`
	OrderDate       string      `json:"order_date"`
	CanCancel       bool        `json:"can_cancel"`
}

// NewOrderItem is one line of an order creation request.
type NewOrderItem struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// NewOrder is the order creation request body.
type NewOrder struct {
	ShippingAddress string         `json:"shipping_address"`
	Notes           string         `json:"notes,omitempty"`
	Items           []NewOrderItem `json:"order_items"`
}
