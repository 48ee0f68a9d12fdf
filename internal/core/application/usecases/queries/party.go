// Package queries holds the read side: handlers that answer from the
// database directly, without loading aggregates for writing.
package queries

import (
	"fmt"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

var (
	ErrPartyIsRequired = errs.NewValueIsRequiredError("admins must name the party to read")
	ErrForeignParty    = errs.NewAccessDeniedError("only admins read another party's ledger")
)

// resolveParty decides whose ledger a query reads. Admins name the party;
// everyone else reads their own and may only repeat it.
func resolveParty(a actor.Actor, requested *kernel.Party) (kernel.Party, error) {
	if err := a.Validate(); err != nil {
		return kernel.Party{}, err
	}

	if a.IsAdmin() {
		if requested == nil {
			return kernel.Party{}, ErrPartyIsRequired
		}
		if err := requested.Validate(); err != nil {
			return kernel.Party{}, err
		}
		return *requested, nil
	}

	own, err := a.Party()
	if err != nil {
		return kernel.Party{}, err
	}
	if requested != nil && !requested.IsEqual(own) {
		return kernel.Party{}, fmt.Errorf("%w: %s asked for %s", ErrForeignParty, a, *requested)
	}
	return own, nil
}
