package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/ledger"
)

// HandlePaymentCallbackCommandHandler applies the gateway's verdict. An
// unknown reference yields errs.ErrObjectNotFound; a reference that was
// already resolved yields ledger.ErrEntryAlreadyResolved and changes nothing.
type HandlePaymentCallbackCommandHandler struct {
	uowFactory UoWFactory
}

// NewHandlePaymentCallbackCommandHandler creates a handler.
// Requires a UoWFactory: the entry and its order change together.
func NewHandlePaymentCallbackCommandHandler(uowFactory UoWFactory) HandlePaymentCallbackCommandHandler {
	return HandlePaymentCallbackCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle settles the pending payment named by the transaction reference.
// A callback for an entry already resolved fails with ErrEntryAlreadyResolved.
func (h HandlePaymentCallbackCommandHandler) Handle(ctx context.Context, cmd HandlePaymentCallbackCommand) (*ledger.Entry, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	entry, err := uow.LedgerRepository().GetByTransactionRef(ctx, cmd.TransactionRef())
	if err != nil {
		return nil, err
	}

	if err = resolvePayment(ctx, uow, entry, cmd.Succeeded(), time.Now().UTC()); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return entry, nil
}
