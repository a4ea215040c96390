package model

import "testing"

func TestValidOrderStatus(t *testing.T) {
	tests := []struct {
		status   string
		expected bool
	}{
		{OrderPending, true},
		{OrderProcessing, true},
		{OrderShipped, true},
		{OrderDelivered, true},
		{OrderCancelled, true},
		{"refunded", false},
		{"Pending", false},
		{"", false},
	}

	for _, tt := range tests {
		got := ValidOrderStatus(tt.status)
		if got != tt.expected {
			t.Errorf("ValidOrderStatus(%q) = %v, want %v", tt.status, got, tt.expected)
		}
	}
}

func TestOrderStatusName(t *testing.T) {
	if got := OrderStatusName(OrderShipped); got != "Shipped" {
		t.Errorf("expected 'Shipped', got %q", got)
	}
	// Unknown statuses pass through unchanged.
	if got := OrderStatusName("weird"); got != "weird" {
		t.Errorf("expected passthrough for unknown status, got %q", got)
	}
}

func TestUserFullName(t *testing.T) {
	tests := []struct {
		user     User
		expected string
	}{
		{User{Username: "jdoe", FirstName: "Jane", LastName: "Doe"}, "Jane Doe"},
		{User{Username: "jdoe", FirstName: "Jane"}, "Jane"},
		{User{Username: "jdoe"}, "jdoe"},
	}

	for _, tt := range tests {
		if got := tt.user.FullName(); got != tt.expected {
			t.Errorf("FullName() = %q, want %q", got, tt.expected)
		}
	}
}
