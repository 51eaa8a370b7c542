package models

import (
	"fmt"
	"strings"
	"time"
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

// Valid reports whether s is an enumerated order status
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusPreparing, StatusReady, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// PaymentStatus represents the payment state of an order
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// Valid reports whether p is an enumerated payment status
func (p PaymentStatus) Valid() bool {
	switch p {
	case PaymentPending, PaymentPaid, PaymentFailed:
		return true
	}
	return false
}

// OrderLine is one purchased-item entry within an order. Price is the unit
// price snapshotted at creation time; later catalog changes never touch it.
type OrderLine struct {
	MenuItemID string  `json:"menu_item_id" db:"menu_item_id"`
	Name       string  `json:"name,omitempty" db:"name"`
	Quantity   int     `json:"quantity" db:"quantity"`
	Price      float64 `json:"price" db:"price"`
}

// Order represents a placed purchase
type Order struct {
	ID                  string        `json:"id" db:"id"`
	UserID              string        `json:"user_id" db:"user_id"`
	User                *SafeUser     `json:"user,omitempty"`
	Items               []OrderLine   `json:"items"`
	TotalAmount         float64       `json:"total_amount" db:"total_amount"`
	DeliveryAddress     string        `json:"delivery_address" db:"delivery_address"`
	SpecialInstructions string        `json:"special_instructions,omitempty" db:"special_instructions"`
	Status              OrderStatus   `json:"status" db:"status"`
	PaymentStatus       PaymentStatus `json:"payment_status" db:"payment_status"`
	CreatedAt           time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time     `json:"updated_at" db:"updated_at"`
}

// CreateOrderItem is one requested line of a new order
type CreateOrderItem struct {
	MenuItemID string `json:"menu_item_id"`
	Quantity   int    `json:"quantity"`
}

// CreateOrderRequest represents the request to place a new order. Totals and
// line prices are never accepted from the client; the engine computes them.
type CreateOrderRequest struct {
	Items               []CreateOrderItem `json:"items"`
	DeliveryAddress     string            `json:"delivery_address"`
	SpecialInstructions string            `json:"special_instructions,omitempty"`
}

// UpdateOrderStatusRequest carries the admin status transition
type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status"`
}

// UpdatePaymentStatusRequest carries the admin payment transition
type UpdatePaymentStatusRequest struct {
	PaymentStatus PaymentStatus `json:"payment_status"`
}

// Validate validates the create order request
func (req *CreateOrderRequest) Validate() error {
	if len(req.Items) == 0 {
		return fmt.Errorf("items array cannot be empty")
	}
	if len(req.Items) > 20 {
		return fmt.Errorf("items array cannot contain more than 20 items")
	}
	for i, item := range req.Items {
		if strings.TrimSpace(item.MenuItemID) == "" {
			return fmt.Errorf("items[%d].menu_item_id is required", i)
		}
		if item.Quantity < 1 {
			return fmt.Errorf("items[%d].quantity must be at least 1", i)
		}
	}
	if strings.TrimSpace(req.DeliveryAddress) == "" {
		return fmt.Errorf("delivery_address is required")
	}
	return nil
}

// Validate validates the status update request
func (req *UpdateOrderStatusRequest) Validate() error {
	if !req.Status.Valid() {
		return fmt.Errorf("status must be one of: pending, preparing, ready, completed, cancelled")
	}
	return nil
}

// Validate validates the payment status update request
func (req *UpdatePaymentStatusRequest) Validate() error {
	if !req.PaymentStatus.Valid() {
		return fmt.Errorf("payment_status must be one of: pending, paid, failed")
	}
	return nil
}
