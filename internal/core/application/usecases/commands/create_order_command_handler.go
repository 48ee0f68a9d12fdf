package commands

import (
	"context"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
)

// CreateOrderCommandHandler prices a basket against the catalog and opens a
// pending order. Catalog reads happen before the transaction; only the order
// and its items are written.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, catalog)
//	cmd, _ := NewCreateOrderCommand(kernel.NewUUID(), customer, restaurantID,
//	    []OrderLine{{ProductID: pid, Quantity: 2}}, "Tevragh Zeina", nil, kernel.Cash)
//
//	o, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, order.ErrBelowMinimum) {
//	    // ask the customer to add something
//	}
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	catalog    ports.Catalog
}

// NewCreateOrderCommandHandler creates a handler pricing orders from catalog.
// Requires an OrderUoWFactory for transactional persistence.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, catalog ports.Catalog) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
	}
}

// Handle prices the order from the catalog and stores it pending.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if !cmd.Customer().Is(actor.Customer) {
		return nil, fmt.Errorf("%w: only customers place orders", order.ErrAccessDenied)
	}

	restaurant, err := h.catalog.GetRestaurant(ctx, cmd.RestaurantID())
	if err != nil {
		return nil, err
	}

	lines := make([]order.Line, 0, len(cmd.Lines()))
	for _, l := range cmd.Lines() {
		product, err := h.catalog.GetProduct(ctx, l.ProductID)
		if err != nil {
			return nil, err
		}
		lines = append(lines, order.Line{
			ProductID:           product.ID,
			ProductRestaurantID: product.RestaurantID,
			UnitPrice:           product.Price,
			Available:           product.IsAvailable,
			Quantity:            l.Quantity,
		})
	}

	o, err := order.NewOrder(order.NewOrderParams{
		ID:         cmd.OrderID(),
		CustomerID: cmd.Customer().ID(),
		Restaurant: order.RestaurantTerms{
			ID:            restaurant.ID,
			IsOpen:        restaurant.IsOpen,
			DeliveryFee:   restaurant.DeliveryFee,
			MinOrderValue: restaurant.MinOrderValue,
		},
		Lines:         lines,
		Address:       cmd.Address(),
		Location:      cmd.Location(),
		PaymentMethod: cmd.PaymentMethod(),
		Now:           time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
