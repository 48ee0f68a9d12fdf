package commands

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/ledger"
)

// ExpirePendingPaymentsCommandHandler is run by the payment expiry job. One
// batch is one transaction. Entries a callback resolved in the meantime are
// skipped.
type ExpirePendingPaymentsCommandHandler struct {
	uowFactory UoWFactory
}

// NewExpirePendingPaymentsCommandHandler creates a handler failing stale payments.
// Requires a UoWFactory: each expiry touches the ledger and its order.
func NewExpirePendingPaymentsCommandHandler(uowFactory UoWFactory) ExpirePendingPaymentsCommandHandler {
	return ExpirePendingPaymentsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns how many payments were failed.
func (h ExpirePendingPaymentsCommandHandler) Handle(ctx context.Context, cmd ExpirePendingPaymentsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	entries, err := uow.LedgerRepository().FindExpiredPending(ctx, cmd.Cutoff(), cmd.Limit())
	if err != nil {
		return 0, err
	}
	if len(entries) == 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	expired := 0
	for _, entry := range entries {
		err = resolvePayment(ctx, uow, entry, false, now)
		if errors.Is(err, ledger.ErrEntryAlreadyResolved) {
			continue
		}
		if err != nil {
			return 0, err
		}
		expired++
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return expired, nil
}
