package ports

import (
	"context"

	"marketplace/internal/core/domain/model/order"
)

// EventPublisher fans order events out once the transaction that produced
// them has committed.
type EventPublisher interface {
	Publish(ctx context.Context, events []order.Event) error
}
