package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
)

// settleIfDue posts the cash legs when o has just become a delivered cash
// order. It runs inside the caller's unit of work so a failed posting rolls
// the status change back with it.
func settleIfDue(ctx context.Context, uow UoW, engine services.SettlementEngine, o *order.Order, now time.Time) error {
	if !o.RequiresCashSettlement() {
		return nil
	}

	entries, err := engine.SettleCashDelivery(o, now)
	if err != nil {
		return err
	}

	return uow.LedgerRepository().Add(ctx, entries...)
}
