package queries

import (
	"context"

	"marketplace/internal/core/domain/model/ledger"

	"gorm.io/gorm"
)

// GetBalanceQueryHandler folds every ledger entry touching the party.
// Nothing is cached: the balance is recomputed from one snapshot read.
type GetBalanceQueryHandler struct {
	db *gorm.DB
}

// NewGetBalanceQueryHandler creates a handler reading ledger_entries through db.
func NewGetBalanceQueryHandler(db *gorm.DB) GetBalanceQueryHandler {
	return GetBalanceQueryHandler{db: db}
}

func (h GetBalanceQueryHandler) Handle(ctx context.Context, query GetBalanceQuery) (GetBalanceQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetBalanceQueryResponse{}, err
	}

	party := query.Party()
	partyType, partyID := party.Type().String(), party.ID().Bytes()

	var rows []ledgerRow
	err := h.db.WithContext(ctx).
		Raw(partyEntriesSQL, partyType, partyID, partyType, partyID).
		Scan(&rows).Error
	if err != nil {
		return GetBalanceQueryResponse{}, err
	}

	movements := make([]ledger.Movement, 0, len(rows))
	for _, row := range rows {
		m, err := row.movement()
		if err != nil {
			return GetBalanceQueryResponse{}, err
		}
		movements = append(movements, m)
	}

	balance := ledger.CalculateBalance(party, movements)
	return GetBalanceQueryResponse{
		Party:     party,
		Available: balance.Available,
		Pending:   balance.Pending,
	}, nil
}
