package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/order"
)

// AssignDeliveryAgentCommandHandler attaches an agent to a ready order. The
// row lock makes two agents racing for the same order end with one winner
// and one ErrAgentAlreadyAssigned.
type AssignDeliveryAgentCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewAssignDeliveryAgentCommandHandler creates a handler.
// Requires an OrderUoWFactory for transactional persistence.
func NewAssignDeliveryAgentCommandHandler(uowFactory OrderUoWFactory) AssignDeliveryAgentCommandHandler {
	return AssignDeliveryAgentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle assigns the agent and saves the order in one transaction.
func (h AssignDeliveryAgentCommandHandler) Handle(ctx context.Context, cmd AssignDeliveryAgentCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = o.AssignDeliveryAgent(cmd.Actor(), cmd.AgentID(), time.Now().UTC()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
