package queries

import (
	"context"
	"fmt"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
)

// GetOrderQueryHandler reads through the order repository rather than raw
// SQL: visibility is decided by the aggregate.
type GetOrderQueryHandler struct {
	orders ports.OrderRepository
}

// NewGetOrderQueryHandler creates a handler loading orders through orders.
func NewGetOrderQueryHandler(orders ports.OrderRepository) GetOrderQueryHandler {
	return GetOrderQueryHandler{orders: orders}
}

// Handle returns the order if the caller may view it.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	o, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	caller := query.Caller()
	if !o.CanBeViewedBy(caller) {
		return GetOrderQueryResponse{}, fmt.Errorf("%w: %s may not view order %s", order.ErrAccessDenied, caller, o.ID())
	}

	return toOrderResponse(o, caller), nil
}

func toOrderResponse(o *order.Order, caller actor.Actor) GetOrderQueryResponse {
	items := make([]OrderItemView, 0, len(o.Items()))
	for _, it := range o.Items() {
		items = append(items, OrderItemView{
			ProductID: it.ProductID(),
			Quantity:  it.Quantity(),
			UnitPrice: it.UnitPrice(),
			Subtotal:  it.Subtotal(),
		})
	}

	resp := GetOrderQueryResponse{
		ID:              o.ID(),
		CustomerID:      o.CustomerID(),
		RestaurantID:    o.RestaurantID(),
		DeliveryAgentID: o.DeliveryAgentID(),
		Status:          o.Status().String(),
		PaymentMethod:   o.PaymentMethod().String(),
		PaymentStatus:   o.PaymentStatus().String(),
		Address:         o.Address(),
		Location:        o.Location(),
		Items:           items,
		Subtotal:        o.Subtotal(),
		DeliveryFee:     o.DeliveryFee(),
		TotalAmount:     o.TotalAmount(),
		CreatedAt:       o.CreatedAt(),
		UpdatedAt:       o.UpdatedAt(),
		DeliveredAt:     o.DeliveredAt(),
	}

	switch caller.Role() {
	case actor.Customer:
		resp.DeliveryCode = o.DeliveryCode().String()
	case actor.DeliveryAgent:
		resp.PayoutCode = o.PayoutCode().String()
	case actor.Admin:
		resp.DeliveryCode = o.DeliveryCode().String()
		resp.PayoutCode = o.PayoutCode().String()
	case actor.UnknownRole, actor.Restaurant:
	}

	return resp
}
