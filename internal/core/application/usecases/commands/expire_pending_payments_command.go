package commands

import (
	"time"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrExpirePendingPaymentsCommandIsNotConstructed = errs.NewValueIsRequiredError(
	"ExpirePendingPaymentsCommand must be created via NewExpirePendingPaymentsCommand constructor",
)

// ExpirePendingPaymentsCommand fails gateway payments created before cutoff,
// at most limit per run.
type ExpirePendingPaymentsCommand struct { //nolint:recvcheck //using for validation
	cutoff time.Time
	limit  int

	guard guard.ConstructorGuard
}

// NewExpirePendingPaymentsCommand creates a command expiring at most limit
// payments created before cutoff.
func NewExpirePendingPaymentsCommand(cutoff time.Time, limit int) (ExpirePendingPaymentsCommand, error) {
	if cutoff.IsZero() {
		return ExpirePendingPaymentsCommand{}, errs.NewValueIsRequiredError("cutoff")
	}
	if limit <= 0 {
		return ExpirePendingPaymentsCommand{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, "unbounded")
	}

	return ExpirePendingPaymentsCommand{
		cutoff: cutoff,
		limit:  limit,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c ExpirePendingPaymentsCommand) Validate() error {
	return c.guard.Validate(ErrExpirePendingPaymentsCommandIsNotConstructed)
}

func (c ExpirePendingPaymentsCommand) Cutoff() time.Time { return c.cutoff }
func (c ExpirePendingPaymentsCommand) Limit() int        { return c.limit }
