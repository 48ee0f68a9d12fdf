// Package events fans committed order events out to RabbitMQ and to
// websocket subscribers.
package events

import (
	"time"

	"marketplace/internal/core/domain/model/order"
)

// OrderEventMessage is the wire form shared by the broker and the websocket hub.
type OrderEventMessage struct {
	Type            string    `json:"type"`
	OrderID         string    `json:"order_id"`
	CustomerID      string    `json:"customer_id"`
	RestaurantID    string    `json:"restaurant_id"`
	DeliveryAgentID *string   `json:"delivery_agent_id,omitempty"`
	Status          string    `json:"status"`
	PaymentStatus   string    `json:"payment_status"`
	OccurredAt      time.Time `json:"occurred_at"`
}

func newOrderEventMessage(e order.Event) OrderEventMessage {
	msg := OrderEventMessage{
		Type:          "order." + string(e.Kind),
		OrderID:       e.OrderID.String(),
		CustomerID:    e.CustomerID.String(),
		RestaurantID:  e.RestaurantID.String(),
		Status:        e.Status.String(),
		PaymentStatus: e.PaymentStatus.String(),
		OccurredAt:    e.OccurredAt.UTC(),
	}
	if e.DeliveryAgentID != nil {
		id := e.DeliveryAgentID.String()
		msg.DeliveryAgentID = &id
	}
	return msg
}

// RoutingKey is order.<status>, so consumers bind on order.delivered or order.*.
func RoutingKey(e order.Event) string {
	return "order." + e.Status.String()
}
