package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrChangeOrderStatusCommandIsNotConstructed = errs.NewValueIsRequiredError(
	"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
)

type ChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   actor.Actor
	target  order.Status

	guard guard.ConstructorGuard
}

// NewChangeOrderStatusCommand creates a validated command. Whether a moves the
// order to target is decided by the aggregate, not here.
func NewChangeOrderStatusCommand(orderID kernel.UUID, a actor.Actor, target order.Status) (ChangeOrderStatusCommand, error) {
	if err := errors.Join(orderID.Validate(), a.Validate(), target.Validate()); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	return ChangeOrderStatusCommand{
		orderID: orderID,
		actor:   a,
		target:  target,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

func (c ChangeOrderStatusCommand) OrderID() kernel.UUID { return c.orderID }
func (c ChangeOrderStatusCommand) Actor() actor.Actor   { return c.actor }
func (c ChangeOrderStatusCommand) Target() order.Status { return c.target }
