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
	ErrInitiatePaymentCommandIsNotConstructed = errs.NewValueIsRequiredError(
		"InitiatePaymentCommand must be created via NewInitiatePaymentCommand constructor",
	)
	ErrPhoneIsRequired = errs.NewValueIsRequiredError("phone number")
)

type InitiatePaymentCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   actor.Actor
	phone   string

	guard guard.ConstructorGuard
}

// NewInitiatePaymentCommand creates a validated command. phone is the wallet
// the gateway bills.
func NewInitiatePaymentCommand(orderID kernel.UUID, a actor.Actor, phone string) (InitiatePaymentCommand, error) {
	phone = strings.TrimSpace(phone)
	var errPhone error
	if phone == "" {
		errPhone = ErrPhoneIsRequired
	}
	if err := errors.Join(orderID.Validate(), a.Validate(), errPhone); err != nil {
		return InitiatePaymentCommand{}, err
	}

	return InitiatePaymentCommand{
		orderID: orderID,
		actor:   a,
		phone:   phone,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c InitiatePaymentCommand) Validate() error {
	return c.guard.Validate(ErrInitiatePaymentCommandIsNotConstructed)
}

func (c InitiatePaymentCommand) OrderID() kernel.UUID { return c.orderID }
func (c InitiatePaymentCommand) Actor() actor.Actor   { return c.actor }
func (c InitiatePaymentCommand) Phone() string        { return c.phone }
