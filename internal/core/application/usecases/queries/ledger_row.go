package queries

import (
	"database/sql"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/ledger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// partyEntriesSQL selects the ledger_entries rows that touch one party,
// scanned into ledgerRow.
const partyEntriesSQL = `
	SELECT id, order_id, from_type, from_id, to_type, to_id,
	       amount, kind, method, status, transaction_ref, created_at
	FROM ledger_entries
	WHERE (from_type = ? AND from_id = ?)
	   OR (to_type = ? AND to_id = ?)
`

type ledgerRow struct {
	ID             uuid.UUID
	OrderID        uuid.UUID
	FromType       string
	FromID         uuid.UUID
	ToType         string
	ToID           uuid.UUID
	Amount         decimal.Decimal
	Kind           string
	Method         string
	Status         string
	TransactionRef sql.NullString
	CreatedAt      time.Time
}

func (r ledgerRow) parties() (kernel.Party, kernel.Party, error) {
	from, errFrom := rowParty(r.FromType, r.FromID)
	to, errTo := rowParty(r.ToType, r.ToID)
	return from, to, errors.Join(errFrom, errTo)
}

func (r ledgerRow) movement() (ledger.Movement, error) {
	from, to, err := r.parties()
	if err != nil {
		return ledger.Movement{}, err
	}
	status, err := ledger.ParseStatus(r.Status)
	if err != nil {
		return ledger.Movement{}, err
	}
	return ledger.Movement{From: from, To: to, Amount: r.Amount, Status: status}, nil
}

func (r ledgerRow) view(viewer kernel.Party) (LedgerEntryView, error) {
	id, errID := kernel.UUIDFromBytes(r.ID[:])
	orderID, errOrder := kernel.UUIDFromBytes(r.OrderID[:])
	from, to, errParties := r.parties()
	if err := errors.Join(errID, errOrder, errParties); err != nil {
		return LedgerEntryView{}, err
	}

	direction := "out"
	if to.IsEqual(viewer) {
		direction = "in"
	}
	return LedgerEntryView{
		ID:             id,
		OrderID:        orderID,
		From:           from,
		To:             to,
		Direction:      direction,
		Amount:         r.Amount,
		Kind:           r.Kind,
		Method:         r.Method,
		Status:         r.Status,
		TransactionRef: r.TransactionRef.String,
		CreatedAt:      r.CreatedAt.UTC(),
	}, nil
}

func rowParty(partyType string, raw uuid.UUID) (kernel.Party, error) {
	t, err := kernel.ParsePartyType(partyType)
	if err != nil {
		return kernel.Party{}, err
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return kernel.Party{}, err
	}
	return kernel.NewParty(t, id)
}
