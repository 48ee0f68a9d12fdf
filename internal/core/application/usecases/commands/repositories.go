// Package commands contains the use cases that change orders and the ledger.
// Every handler follows the same shape: validate the command, open a unit of
// work, load with a row lock, let the aggregates decide, persist, commit.
package commands

import (
	"context"

	"marketplace/internal/core/ports"
)

type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	LedgerRepoFactory interface {
		LedgerRepository() ports.LedgerRepository
	}

	// OrderUoW is used by commands that only touch orders.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// UoW spans orders and the ledger, so a status change and its settlement
	// entries commit or roll back together.
	//
	//	uow := factory.Create()
	//	if err := uow.Begin(ctx); err != nil { ... }
	//	defer func() { _ = uow.Rollback(ctx) }()
	//	o, _ := uow.OrderRepository().GetForUpdate(ctx, id)
	//	... uow.LedgerRepository().Add(ctx, entries...)
	//	err := uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		LedgerRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)
