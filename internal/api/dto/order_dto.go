package dto

import (
	"time"

	"github.com/spec-kit/storefront-api/internal/domain"
)

// CreateOrderRequest carries the cart. Amounts are in cents.
type CreateOrderRequest struct {
	Items       []domain.OrderItem `json:"items"`
	Tax         *int64             `json:"tax"`
	ShippingFee *int64             `json:"shippingFee"`
}

// UpdateOrderRequest confirms payment for an order.
type UpdateOrderRequest struct {
	PaymentIntentID string `json:"paymentIntentId"`
}

// OrderResponse is the public view of an order.
type OrderResponse struct {
	ID              string             `json:"id"`
	UserID          string             `json:"user"`
	Items           []domain.OrderItem `json:"orderItems"`
	Tax             int64              `json:"tax"`
	ShippingFee     int64              `json:"shippingFee"`
	Subtotal        int64              `json:"subtotal"`
	Total           int64              `json:"total"`
	Status          domain.OrderStatus `json:"status"`
	PaymentIntentID string             `json:"paymentIntentId,omitempty"`
	CreatedAt       time.Time          `json:"createdAt"`
}

// NewOrderResponse maps a domain order.
func NewOrderResponse(o *domain.Order) OrderResponse {
	return OrderResponse{
		ID:              o.ID.String(),
		UserID:          o.UserID.String(),
		Items:           o.Items,
		Tax:             o.Tax,
		ShippingFee:     o.ShippingFee,
		Subtotal:        o.Subtotal,
		Total:           o.Total,
		Status:          o.Status,
		PaymentIntentID: o.PaymentIntentID,
		CreatedAt:       o.CreatedAt,
	}
}

// NewOrderListResponse maps a slice of orders.
func NewOrderListResponse(orders []domain.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, NewOrderResponse(&orders[i]))
	}
	return out
}
