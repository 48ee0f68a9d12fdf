package order

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
)

type EventKind string

const (
	EventCreated        EventKind = "created"
	EventStatusChanged  EventKind = "status_changed"
	EventAgentAssigned  EventKind = "agent_assigned"
	EventPaymentUpdated EventKind = "payment_updated"
)

// Event is recorded by the aggregate on every observable change and drained
// by the unit of work after commit.
type Event struct {
	Kind            EventKind
	OrderID         kernel.UUID
	CustomerID      kernel.UUID
	RestaurantID    kernel.UUID
	DeliveryAgentID *kernel.UUID
	Status          Status
	PaymentStatus   PaymentStatus
	OccurredAt      time.Time
}
