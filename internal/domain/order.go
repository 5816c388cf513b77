package domain

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus enumerates order lifecycle states.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusFailed    OrderStatus = "failed"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCanceled  OrderStatus = "canceled"
)

// OrderItem is a single cart line. Prices are in cents.
type OrderItem struct {
	Name      string `json:"name"`
	ProductID string `json:"product"`
	Price     int64  `json:"price"`
	Amount    int    `json:"amount"`
}

// Order belongs to the user identified by UserID.
type Order struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Items           []OrderItem
	Tax             int64
	ShippingFee     int64
	Subtotal        int64
	Total           int64
	Status          OrderStatus
	PaymentIntentID string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
