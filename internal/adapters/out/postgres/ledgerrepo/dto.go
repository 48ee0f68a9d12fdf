// Package ledgerrepo stores ledger entries. Entries are inserted once and only
// their status moves, from pending to success or failed.
package ledgerrepo

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/ledger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type EntryDTO struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	FromType       string          `gorm:"type:varchar(20);not null;index:idx_ledger_from"`
	FromID         uuid.UUID       `gorm:"type:uuid;not null;index:idx_ledger_from"`
	ToType         string          `gorm:"type:varchar(20);not null;index:idx_ledger_to"`
	ToID           uuid.UUID       `gorm:"type:uuid;not null;index:idx_ledger_to"`
	Amount         decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Kind           string          `gorm:"type:varchar(20);not null"`
	Method         string          `gorm:"type:varchar(20);not null"`
	Status         string          `gorm:"type:varchar(20);not null;index"`
	OrderID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	TransactionRef *string         `gorm:"type:varchar(64);uniqueIndex"`
	CreatedAt      time.Time       `gorm:"not null;autoCreateTime:false;index"`
}

func (EntryDTO) TableName() string {
	return "ledger_entries"
}

func fromDomain(e *ledger.Entry) EntryDTO {
	var ref *string
	if r := e.TransactionRef(); r != "" {
		ref = &r
	}

	return EntryDTO{
		ID:             e.ID().Bytes(),
		FromType:       e.From().Type().String(),
		FromID:         e.From().ID().Bytes(),
		ToType:         e.To().Type().String(),
		ToID:           e.To().ID().Bytes(),
		Amount:         e.Amount(),
		Kind:           e.Kind().String(),
		Method:         e.Method().String(),
		Status:         e.Status().String(),
		OrderID:        e.OrderID().Bytes(),
		TransactionRef: ref,
		CreatedAt:      e.CreatedAt(),
	}
}

// toDomain rejects rows whose enums or parties no longer parse.
func toDomain(dto EntryDTO) (*ledger.Entry, error) {
	id, errID := kernel.UUIDFromBytes(dto.ID[:])
	orderID, errOrder := kernel.UUIDFromBytes(dto.OrderID[:])
	from, errFrom := party(dto.FromType, dto.FromID)
	to, errTo := party(dto.ToType, dto.ToID)
	kind, errKind := ledger.ParseKind(dto.Kind)
	method, errMethod := kernel.ParsePaymentMethod(dto.Method)
	status, errStatus := ledger.ParseStatus(dto.Status)
	if err := errors.Join(errID, errOrder, errFrom, errTo, errKind, errMethod, errStatus); err != nil {
		return nil, err
	}

	var ref string
	if dto.TransactionRef != nil {
		ref = *dto.TransactionRef
	}

	return ledger.RestoreEntry(ledger.EntryParams{
		ID:             id,
		From:           from,
		To:             to,
		Amount:         dto.Amount,
		Kind:           kind,
		Method:         method,
		Status:         status,
		OrderID:        orderID,
		TransactionRef: ref,
		CreatedAt:      dto.CreatedAt.UTC(),
	})
}

func party(partyType string, raw uuid.UUID) (kernel.Party, error) {
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
