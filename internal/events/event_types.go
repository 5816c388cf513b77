package events

import (
	"time"

	"github.com/spec-kit/storefront-api/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered  EventType = "user_registered"
	EventUserLoggedIn    EventType = "user_logged_in"
	EventUserLoggedOut   EventType = "user_logged_out"
	EventUserUpdated     EventType = "user_updated"
	EventPasswordChanged EventType = "password_changed"
	EventOrderCreated    EventType = "order_created"
	EventOrderPaid       EventType = "order_paid"
)

// AllEventTypes lists every event a subscriber can receive.
var AllEventTypes = []EventType{
	EventUserRegistered,
	EventUserLoggedIn,
	EventUserLoggedOut,
	EventUserUpdated,
	EventPasswordChanged,
	EventOrderCreated,
	EventOrderPaid,
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string       `json:"id"`
	Type      EventType    `json:"type"`
	Actor     domain.Claim `json:"actor"`
	Timestamp time.Time    `json:"timestamp"`
	Payload   interface{}  `json:"payload,omitempty"`
}

// OrderPayload accompanies order events.
type OrderPayload struct {
	OrderID string `json:"order_id"`
	Total   int64  `json:"total"`
}
