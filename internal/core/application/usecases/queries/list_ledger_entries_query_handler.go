package queries

import (
	"context"

	"gorm.io/gorm"
)

type ListLedgerEntriesQueryHandler struct {
	db *gorm.DB
}

// NewListLedgerEntriesQueryHandler creates a handler paging ledger_entries through db.
func NewListLedgerEntriesQueryHandler(db *gorm.DB) ListLedgerEntriesQueryHandler {
	return ListLedgerEntriesQueryHandler{db: db}
}

// Handle returns the party's entries, newest first.
func (h ListLedgerEntriesQueryHandler) Handle(
	ctx context.Context,
	query ListLedgerEntriesQuery,
) ([]LedgerEntryView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	party := query.Party()
	partyType, partyID := party.Type().String(), party.ID().Bytes()

	var rows []ledgerRow
	err := h.db.WithContext(ctx).Raw(partyEntriesSQL+`
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`, partyType, partyID, partyType, partyID, query.Limit(), query.Offset()).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	views := make([]LedgerEntryView, 0, len(rows))
	for _, row := range rows {
		view, err := row.view(party)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}

	return views, nil
}
