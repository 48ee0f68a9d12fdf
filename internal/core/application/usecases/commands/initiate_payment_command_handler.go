package commands

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/ledger"
	"marketplace/internal/core/ports"
)

// InitiatePaymentCommandHandler opens a mobile-money payment for an order.
// The gateway reference is stored on a pending customer-to-restaurant entry
// which the callback or the expiry job resolves later.
type InitiatePaymentCommandHandler struct {
	uowFactory UoWFactory
	gateway    ports.PaymentGateway
}

// NewInitiatePaymentCommandHandler creates a handler opening gateway sessions.
func NewInitiatePaymentCommandHandler(uowFactory UoWFactory, gateway ports.PaymentGateway) InitiatePaymentCommandHandler {
	return InitiatePaymentCommandHandler{
		uowFactory: uowFactory,
		gateway:    gateway,
	}
}

// Handle opens a session and records the pending payment entry.
func (h InitiatePaymentCommandHandler) Handle(ctx context.Context, cmd InitiatePaymentCommand) (ports.PaymentSession, error) {
	if err := cmd.Validate(); err != nil {
		return ports.PaymentSession{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ports.PaymentSession{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return ports.PaymentSession{}, err
	}

	now := time.Now().UTC()
	if err = o.StartElectronicPayment(cmd.Actor(), now); err != nil {
		return ports.PaymentSession{}, err
	}

	session, err := h.gateway.Initiate(ctx, ports.PaymentRequest{
		OrderID: o.ID(),
		Method:  o.PaymentMethod(),
		Amount:  o.TotalAmount(),
		Phone:   cmd.Phone(),
	})
	if err != nil {
		return ports.PaymentSession{}, err
	}

	customer, errC := kernel.Customer(o.CustomerID())
	restaurant, errR := kernel.Restaurant(o.RestaurantID())
	if err = errors.Join(errC, errR); err != nil {
		return ports.PaymentSession{}, err
	}

	entry, err := ledger.NewEntry(ledger.EntryParams{
		ID:             kernel.NewUUID(),
		From:           customer,
		To:             restaurant,
		Amount:         o.TotalAmount(),
		Kind:           ledger.Payment,
		Method:         o.PaymentMethod(),
		Status:         ledger.Pending,
		OrderID:        o.ID(),
		TransactionRef: session.TransactionRef,
		CreatedAt:      now,
	})
	if err != nil {
		return ports.PaymentSession{}, err
	}

	if err = uow.LedgerRepository().Add(ctx, entry); err != nil {
		return ports.PaymentSession{}, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return ports.PaymentSession{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ports.PaymentSession{}, err
	}

	return session, nil
}
