package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	ErrAssignDeliveryAgentCommandIsNotConstructed = errs.NewValueIsRequiredError(
		"AssignDeliveryAgentCommand must be created via NewAssignDeliveryAgentCommand constructor",
	)
	ErrAgentIDIsRequired = errs.NewValueIsRequiredError("delivery agent id")
)

type AssignDeliveryAgentCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   actor.Actor
	agentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignDeliveryAgentCommand resolves the agent to assign. A nil agentID
// means the calling agent takes the order; admins must name the agent.
func NewAssignDeliveryAgentCommand(orderID kernel.UUID, a actor.Actor, agentID *kernel.UUID) (AssignDeliveryAgentCommand, error) {
	if err := errors.Join(orderID.Validate(), a.Validate()); err != nil {
		return AssignDeliveryAgentCommand{}, err
	}

	var resolved kernel.UUID
	switch {
	case agentID != nil:
		resolved = *agentID
	case a.Is(actor.DeliveryAgent):
		resolved = a.ID()
	default:
		return AssignDeliveryAgentCommand{}, ErrAgentIDIsRequired
	}
	if err := resolved.Validate(); err != nil {
		return AssignDeliveryAgentCommand{}, err
	}

	return AssignDeliveryAgentCommand{
		orderID: orderID,
		actor:   a,
		agentID: resolved,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c AssignDeliveryAgentCommand) Validate() error {
	return c.guard.Validate(ErrAssignDeliveryAgentCommandIsNotConstructed)
}

func (c AssignDeliveryAgentCommand) OrderID() kernel.UUID { return c.orderID }
func (c AssignDeliveryAgentCommand) Actor() actor.Actor   { return c.actor }
func (c AssignDeliveryAgentCommand) AgentID() kernel.UUID { return c.agentID }
