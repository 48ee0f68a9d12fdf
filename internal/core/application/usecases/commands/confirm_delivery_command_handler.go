package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
)

// ConfirmDeliveryCommandHandler completes the door hand-off. For cash orders
// the customer-to-agent and agent-to-restaurant legs are posted together
// with the status change.
type ConfirmDeliveryCommandHandler struct {
	uowFactory UoWFactory
	engine     services.SettlementEngine
}

// NewConfirmDeliveryCommandHandler creates a handler.
// Requires a UoWFactory: delivery posts ledger entries with the order.
func NewConfirmDeliveryCommandHandler(uowFactory UoWFactory, engine services.SettlementEngine) ConfirmDeliveryCommandHandler {
	return ConfirmDeliveryCommandHandler{
		uowFactory: uowFactory,
		engine:     engine,
	}
}

// Handle checks the delivery code, delivers the order and settles it.
func (h ConfirmDeliveryCommandHandler) Handle(ctx context.Context, cmd ConfirmCodeCommand) (*order.Order, error) {
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
	if err = o.ConfirmDelivery(cmd.Actor(), cmd.Code(), now); err != nil {
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
