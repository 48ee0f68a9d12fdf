package commands

import (
	"errors"
	"fmt"
	"strings"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errs.NewValueIsRequiredError(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrAddressIsRequired = errs.NewValueIsRequiredError("delivery address")
)

// OrderLine is a product and how many of it the customer wants.
type OrderLine struct {
	ProductID kernel.UUID
	Quantity  int
}

// CreateOrderCommand is a customer's basket for one restaurant.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	customer      actor.Actor
	restaurantID  kernel.UUID
	lines         []OrderLine
	address       string
	location      *kernel.Location
	paymentMethod kernel.PaymentMethod

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a validated command.
// Returns an error if any validation fails.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	customer actor.Actor,
	restaurantID kernel.UUID,
	lines []OrderLine,
	address string,
	location *kernel.Location,
	paymentMethod kernel.PaymentMethod,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		location: location,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		customer.Validate(),
		restaurantID.Validate(),
		paymentMethod.Validate(),
		cmd.setLines(lines),
		cmd.setAddress(address),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	cmd.orderID = orderID
	cmd.customer = customer
	cmd.restaurantID = restaurantID
	cmd.paymentMethod = paymentMethod
	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID                { return c.orderID }
func (c CreateOrderCommand) Customer() actor.Actor               { return c.customer }
func (c CreateOrderCommand) RestaurantID() kernel.UUID           { return c.restaurantID }
func (c CreateOrderCommand) Address() string                     { return c.address }
func (c CreateOrderCommand) Location() *kernel.Location          { return c.location }
func (c CreateOrderCommand) PaymentMethod() kernel.PaymentMethod { return c.paymentMethod }

func (c CreateOrderCommand) Lines() []OrderLine {
	out := make([]OrderLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// setLines accepts an empty basket; rejecting it is a business rule of the order.
func (c *CreateOrderCommand) setLines(lines []OrderLine) error {
	for i, l := range lines {
		if err := l.ProductID.Validate(); err != nil {
			return fmt.Errorf("line %d: %w", i, err)
		}
		if l.Quantity <= 0 {
			return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("line %d: %d is not greater than 0", i, l.Quantity))
		}
	}
	c.lines = make([]OrderLine, len(lines))
	copy(c.lines, lines)
	return nil
}

func (c *CreateOrderCommand) setAddress(address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return ErrAddressIsRequired
	}
	c.address = address
	return nil
}
