package events

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
)

// Fanout hands every batch to all publishers, even when one of them fails.
type Fanout struct {
	publishers []ports.EventPublisher
}

// NewFanout creates a publisher forwarding to every publisher in turn.
func NewFanout(publishers ...ports.EventPublisher) *Fanout {
	return &Fanout{publishers: publishers}
}

// Publish tries every publisher and joins their errors.
func (f *Fanout) Publish(ctx context.Context, events []order.Event) error {
	var errs []error
	for _, p := range f.publishers {
		if err := p.Publish(ctx, events); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
