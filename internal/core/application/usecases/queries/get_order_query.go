package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
)

type GetOrderQuery struct {
	orderID kernel.UUID
	caller  actor.Actor
	guard   guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for orderID on behalf of caller.
func NewGetOrderQuery(orderID kernel.UUID, caller actor.Actor) (GetOrderQuery, error) {
	if err := errors.Join(orderID.Validate(), caller.Validate()); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderID: orderID, caller: caller, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.UUID { return q.orderID }
func (q GetOrderQuery) Caller() actor.Actor  { return q.caller }

// GetOrderQueryResponse carries a code only to the side that hands it over:
// the customer holds the delivery code, the agent holds the payout code.
// Admins see both, restaurants neither.
type GetOrderQueryResponse struct {
	ID              kernel.UUID
	CustomerID      kernel.UUID
	RestaurantID    kernel.UUID
	DeliveryAgentID *kernel.UUID
	Status          string
	PaymentMethod   string
	PaymentStatus   string
	Address         string
	Location        *kernel.Location
	Items           []OrderItemView
	Subtotal        decimal.Decimal
	DeliveryFee     decimal.Decimal
	TotalAmount     decimal.Decimal
	DeliveryCode    string
	PayoutCode      string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeliveredAt     *time.Time
}

type OrderItemView struct {
	ProductID kernel.UUID
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}
