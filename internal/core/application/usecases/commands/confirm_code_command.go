package commands

import (
	"errors"
	"strings"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	ErrConfirmCodeCommandIsNotConstructed = errs.NewValueIsRequiredError(
		"ConfirmCodeCommand must be created via NewConfirmCodeCommand constructor",
	)
	ErrCodeIsRequired = errs.NewValueIsRequiredError("code")
)

// ConfirmCodeCommand carries a code presented at a hand-off. It is shared by
// delivery and payout confirmation; the handler decides which code it is.
type ConfirmCodeCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   actor.Actor
	code    string

	guard guard.ConstructorGuard
}

// NewConfirmCodeCommand creates a command carrying a four digit code.
func NewConfirmCodeCommand(orderID kernel.UUID, a actor.Actor, code string) (ConfirmCodeCommand, error) {
	code = strings.TrimSpace(code)
	var errCode error
	if code == "" {
		errCode = ErrCodeIsRequired
	}
	if err := errors.Join(orderID.Validate(), a.Validate(), errCode); err != nil {
		return ConfirmCodeCommand{}, err
	}

	return ConfirmCodeCommand{
		orderID: orderID,
		actor:   a,
		code:    code,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ConfirmCodeCommand) Validate() error {
	return c.guard.Validate(ErrConfirmCodeCommandIsNotConstructed)
}

func (c ConfirmCodeCommand) OrderID() kernel.UUID { return c.orderID }
func (c ConfirmCodeCommand) Actor() actor.Actor   { return c.actor }
func (c ConfirmCodeCommand) Code() string         { return c.code }
