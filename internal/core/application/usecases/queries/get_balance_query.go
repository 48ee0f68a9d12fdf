package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrGetBalanceQueryIsNotConstructed = errors.New(
		"GetBalanceQuery must be created via NewGetBalanceQuery constructor",
	)
)

// GetBalanceQuery asks for the balance of one ledger party.
//
// Example:
//
//	query, err := NewGetBalanceQuery(caller, nil)
//	if err != nil {
//	    return err
//	}
//	balance, err := handler.Handle(ctx, query)
type GetBalanceQuery struct {
	party kernel.Party
	guard guard.ConstructorGuard
}

// NewGetBalanceQuery resolves the party from the caller. party is only
// honoured for admins.
func NewGetBalanceQuery(caller actor.Actor, party *kernel.Party) (GetBalanceQuery, error) {
	resolved, err := resolveParty(caller, party)
	if err != nil {
		return GetBalanceQuery{}, err
	}
	return GetBalanceQuery{party: resolved, guard: guard.NewConstructorGuard()}, nil
}

func (q GetBalanceQuery) Validate() error {
	return q.guard.Validate(ErrGetBalanceQueryIsNotConstructed)
}

func (q GetBalanceQuery) Party() kernel.Party { return q.party }

type GetBalanceQueryResponse struct {
	Party     kernel.Party
	Available decimal.Decimal
	Pending   decimal.Decimal
}
