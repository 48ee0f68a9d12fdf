package queries

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

const MaxAvailableOrders = 100

var (
	ErrGetAvailableOrdersQueryIsNotConstructed = errors.New(
		"GetAvailableOrdersQuery must be created via NewGetAvailableOrdersQuery constructor",
	)
)

// GetAvailableOrdersQuery lists ready orders no agent has taken yet.
//
// Example:
//
//	query, err := NewGetAvailableOrdersQuery(agent, 20)
//	if err != nil {
//	    return err
//	}
//	orders, err := handler.Handle(ctx, query)
//	for _, o := range orders {
//	    fmt.Printf("%s from %s, earn about %s\n", o.ID, o.RestaurantName, o.EstimatedEarnings)
//	}
type GetAvailableOrdersQuery struct {
	limit int
	guard guard.ConstructorGuard
}

// NewGetAvailableOrdersQuery is for delivery agents and admins. A zero
// limit means MaxAvailableOrders.
func NewGetAvailableOrdersQuery(caller actor.Actor, limit int) (GetAvailableOrdersQuery, error) {
	if err := caller.Validate(); err != nil {
		return GetAvailableOrdersQuery{}, err
	}
	if !caller.Is(actor.DeliveryAgent) && !caller.IsAdmin() {
		return GetAvailableOrdersQuery{}, fmt.Errorf("%w: %s browses available orders", order.ErrAccessDenied, caller)
	}
	if limit == 0 {
		limit = MaxAvailableOrders
	}
	if limit < 0 || limit > MaxAvailableOrders {
		return GetAvailableOrdersQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxAvailableOrders)
	}
	return GetAvailableOrdersQuery{limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (q GetAvailableOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableOrdersQueryIsNotConstructed)
}

func (q GetAvailableOrdersQuery) Limit() int { return q.limit }

// GetAvailableOrdersQueryResponse is a ready order as an agent sees it
// before taking it. EstimatedEarnings is informational and never posted.
type GetAvailableOrdersQueryResponse struct {
	ID                kernel.UUID
	RestaurantID      kernel.UUID
	RestaurantName    string
	Address           string
	Location          *kernel.Location
	TotalAmount       decimal.Decimal
	DeliveryFee       decimal.Decimal
	PaymentMethod     string
	EstimatedEarnings decimal.Decimal
	CreatedAt         time.Time
}
