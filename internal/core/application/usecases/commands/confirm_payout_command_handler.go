package commands

import (
	"context"
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/ledger"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"
)

// ConfirmPayoutCommandHandler records that the restaurant received its cash
// share from the agent. The ledger update is conditional on the entry still
// being pending, so of two concurrent confirmations exactly one succeeds and
// the other gets services.ErrPayoutNotFound.
type ConfirmPayoutCommandHandler struct {
	uowFactory UoWFactory
	engine     services.SettlementEngine
}

// NewConfirmPayoutCommandHandler creates a handler settling the restaurant leg.
func NewConfirmPayoutCommandHandler(uowFactory UoWFactory, engine services.SettlementEngine) ConfirmPayoutCommandHandler {
	return ConfirmPayoutCommandHandler{
		uowFactory: uowFactory,
		engine:     engine,
	}
}

// Handle checks the payout code and marks the pending transfer as succeeded.
func (h ConfirmPayoutCommandHandler) Handle(ctx context.Context, cmd ConfirmCodeCommand) (*ledger.Entry, error) {
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

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	// Checked again by the engine; here it keeps admins away from Party().
	if err = o.VerifyPayoutCode(cmd.Actor(), cmd.Code()); err != nil {
		return nil, err
	}
	restaurant, err := cmd.Actor().Party()
	if err != nil {
		return nil, err
	}

	ledgerRepo := uow.LedgerRepository()
	pending, err := ledgerRepo.FindPendingPayout(ctx, o.ID(), restaurant)
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	if err = h.engine.ConfirmRestaurantPayout(o, cmd.Actor(), cmd.Code(), pending); err != nil {
		return nil, err
	}

	if err = ledgerRepo.Update(ctx, pending); err != nil {
		if errors.Is(err, ledger.ErrEntryAlreadyResolved) {
			return nil, fmt.Errorf("%w: order %s", services.ErrPayoutNotFound, o.ID())
		}
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return pending, nil
}
