package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

const (
	DefaultLedgerPageSize = 50
	MaxLedgerPageSize     = 200
)

var (
	ErrListLedgerEntriesQueryIsNotConstructed = errors.New(
		"ListLedgerEntriesQuery must be created via NewListLedgerEntriesQuery constructor",
	)
)

// ListLedgerEntriesQuery pages through the entries of one party, newest first.
type ListLedgerEntriesQuery struct {
	party  kernel.Party
	limit  int
	offset int
	guard  guard.ConstructorGuard
}

// NewListLedgerEntriesQuery uses DefaultLedgerPageSize when limit is 0.
func NewListLedgerEntriesQuery(caller actor.Actor, party *kernel.Party, limit, offset int) (ListLedgerEntriesQuery, error) {
	resolved, err := resolveParty(caller, party)
	if err != nil {
		return ListLedgerEntriesQuery{}, err
	}
	if limit == 0 {
		limit = DefaultLedgerPageSize
	}
	if limit < 0 || limit > MaxLedgerPageSize {
		return ListLedgerEntriesQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxLedgerPageSize)
	}
	if offset < 0 {
		return ListLedgerEntriesQuery{}, errs.NewValueIsOutOfRangeError("offset", offset, 0, "unbounded")
	}

	return ListLedgerEntriesQuery{
		party:  resolved,
		limit:  limit,
		offset: offset,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (q ListLedgerEntriesQuery) Validate() error {
	return q.guard.Validate(ErrListLedgerEntriesQueryIsNotConstructed)
}

func (q ListLedgerEntriesQuery) Party() kernel.Party { return q.party }
func (q ListLedgerEntriesQuery) Limit() int          { return q.limit }
func (q ListLedgerEntriesQuery) Offset() int         { return q.offset }

// LedgerEntryView is one entry as seen from the listed party.
// Direction is "in" when the party received the amount.
type LedgerEntryView struct {
	ID             kernel.UUID
	OrderID        kernel.UUID
	From           kernel.Party
	To             kernel.Party
	Direction      string
	Amount         decimal.Decimal
	Kind           string
	Method         string
	Status         string
	TransactionRef string
	CreatedAt      time.Time
}
