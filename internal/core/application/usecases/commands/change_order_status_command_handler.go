package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
)

// ChangeOrderStatusCommandHandler applies one step of the order state machine.
// When the step delivers a cash order the settlement legs are posted in the
// same transaction.
//
// Example:
//
//	handler := NewChangeOrderStatusCommandHandler(uowFactory, engine)
//	cmd, _ := NewChangeOrderStatusCommand(orderID, restaurantActor, order.Confirmed)
//	o, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, order.ErrAccessDenied):
//	case errors.Is(err, order.ErrIllegalTransition):
//	case errors.Is(err, errs.ErrVersionIsInvalid):
//	    // someone else moved the order first
//	}
type ChangeOrderStatusCommandHandler struct {
	uowFactory UoWFactory
	engine     services.SettlementEngine
}

// NewChangeOrderStatusCommandHandler creates a handler.
// Requires a UoWFactory: delivery posts ledger entries with the order.
func NewChangeOrderStatusCommandHandler(uowFactory UoWFactory, engine services.SettlementEngine) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		engine:     engine,
	}
}

// Handle applies the transition and, for a delivered cash order, posts
// the settlement in the same transaction.
func (h ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) (*order.Order, error) {
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

	now := time.Now().UTC()
	if err = o.Transition(cmd.Actor(), cmd.Target(), now); err != nil {
		return nil, err
	}

	if err = settleIfDue(ctx, uow, h.engine, o, now); err != nil {
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
