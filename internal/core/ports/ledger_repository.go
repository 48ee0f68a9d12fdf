package ports

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/ledger"
)

// LedgerRepository is append-only apart from resolving pending entries.
type LedgerRepository interface {
	Add(ctx context.Context, entries ...*ledger.Entry) error

	// Update stores a resolved status only if the stored entry is still
	// pending. Otherwise it returns ledger.ErrEntryAlreadyResolved, which is
	// how two concurrent confirmations end with exactly one winner.
	Update(ctx context.Context, entry *ledger.Entry) error

	// FindPendingPayout returns the pending transfer owed to restaurant for orderID.
	FindPendingPayout(ctx context.Context, orderID kernel.UUID, restaurant kernel.Party) (*ledger.Entry, error)

	GetByTransactionRef(ctx context.Context, transactionRef string) (*ledger.Entry, error)

	// FindExpiredPending returns gateway entries still pending that were created before cutoff.
	FindExpiredPending(ctx context.Context, cutoff time.Time, limit int) ([]*ledger.Entry, error)
}
