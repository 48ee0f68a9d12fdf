// Package ports defines the contracts between the marketplace core and its
// adapters: persistence, catalog lookups, the payment gateway and event fan-out.
package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// OrderRepository persists order aggregates together with their items.
type OrderRepository interface {
	// Add persists a new order and its items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update writes status, assignment and payment fields guarded by the
	// aggregate's version. A stale version yields errs.ErrVersionIsInvalid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get loads an order without locking.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate loads an order and locks its row until the transaction ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
