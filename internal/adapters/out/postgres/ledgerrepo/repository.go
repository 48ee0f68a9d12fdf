package ledgerrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/ledger"
	"marketplace/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

var ErrDuplicateEntry = errs.NewPreconditionFailedError("ledger entry already recorded")

// GormLedgerRepository implements ports.LedgerRepository using GORM.
type GormLedgerRepository struct {
	db *gorm.DB
}

// NewGormLedgerRepository creates a repository on db.
func NewGormLedgerRepository(db *gorm.DB) *GormLedgerRepository {
	return &GormLedgerRepository{db: db}
}

// Add inserts entries in one statement. A reused id or transaction reference
// is reported as ErrDuplicateEntry.
func (r *GormLedgerRepository) Add(ctx context.Context, entries ...*ledger.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	dtos := make([]EntryDTO, 0, len(entries))
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, fromDomain(e))
	}

	if err := r.db.WithContext(ctx).Create(&dtos).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("%w: %s", ErrDuplicateEntry, pgErr.ConstraintName)
		}
		return err
	}
	return nil
}

// Update stores the entry's resolved status only where the row is still
// pending. The row lock taken by the UPDATE makes a concurrent resolver wait,
// then match zero rows.
func (r *GormLedgerRepository) Update(ctx context.Context, entry *ledger.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&EntryDTO{}).
		Where("id = ? AND status = ?", entry.ID().Bytes(), ledger.Pending.String()).
		Update("status", entry.Status().String())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: entry %s", ledger.ErrEntryAlreadyResolved, entry.ID())
	}
	return nil
}

// FindPendingPayout returns the pending transfer posted for orderID.
func (r *GormLedgerRepository) FindPendingPayout(
	ctx context.Context,
	orderID kernel.UUID,
	restaurant kernel.Party,
) (*ledger.Entry, error) {
	var dto EntryDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ? AND to_type = ? AND to_id = ? AND kind = ? AND status = ?",
			orderID.Bytes(), restaurant.Type().String(), restaurant.ID().Bytes(),
			ledger.Transfer.String(), ledger.Pending.String()).
		Order("created_at").
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("pending payout", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByTransactionRef returns ObjectNotFound when no entry carries the reference.
func (r *GormLedgerRepository) GetByTransactionRef(ctx context.Context, transactionRef string) (*ledger.Entry, error) {
	var dto EntryDTO
	if err := r.db.WithContext(ctx).First(&dto, "transaction_ref = ?", transactionRef).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("transaction_ref", transactionRef)
		}
		return nil, err
	}

	return toDomain(dto)
}

// FindExpiredPending takes no row locks; the conditional Update settles races
// with the gateway callback.
func (r *GormLedgerRepository) FindExpiredPending(ctx context.Context, cutoff time.Time, limit int) ([]*ledger.Entry, error) {
	var dtos []EntryDTO
	err := r.db.WithContext(ctx).
		Where("status = ? AND transaction_ref IS NOT NULL AND created_at < ?", ledger.Pending.String(), cutoff).
		Order("created_at").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	entries := make([]*ledger.Entry, 0, len(dtos))
	for _, dto := range dtos {
		e, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}
