package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/ledger"
)

// resolvePayment flips a pending gateway entry and mirrors the outcome on its
// order. The order row is locked before the conditional ledger write so the
// callback and the expiry job serialize on the same lock.
func resolvePayment(ctx context.Context, uow UoW, entry *ledger.Entry, succeeded bool, now time.Time) error {
	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, entry.OrderID())
	if err != nil {
		return err
	}

	if succeeded {
		err = entry.Succeed()
	} else {
		err = entry.Fail()
	}
	if err != nil {
		return err
	}

	if err = uow.LedgerRepository().Update(ctx, entry); err != nil {
		return err
	}

	if succeeded {
		err = o.MarkPaid(now)
	} else {
		err = o.MarkPaymentFailed(now)
	}
	if err != nil {
		return err
	}

	return orderRepo.Update(ctx, o)
}
