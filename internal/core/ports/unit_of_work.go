package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is one database transaction spanning orders and the ledger.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit commits and then publishes the events of tracked aggregates.
	Commit(ctx context.Context) error

	Rollback(ctx context.Context) error

	// OrderRepository is bound to the transaction started by Begin.
	OrderRepository() OrderRepository

	// LedgerRepository is bound to the transaction started by Begin.
	LedgerRepository() LedgerRepository
}
