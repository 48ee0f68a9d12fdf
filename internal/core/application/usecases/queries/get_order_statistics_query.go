package queries

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// DefaultStatisticsPeriod is used when the caller names none.
const DefaultStatisticsPeriod = "week"

var (
	ErrGetOrderStatisticsQueryIsNotConstructed = errors.New(
		"GetOrderStatisticsQuery must be created via NewGetOrderStatisticsQuery constructor",
	)
)

// GetOrderStatisticsQuery counts the orders a caller can see that were
// created since the start of a period. Customers, restaurants and agents
// see their own orders; admins see all of them.
type GetOrderStatisticsQuery struct {
	period      string
	since       time.Time
	scopeColumn string
	scopeID     kernel.UUID
	guard       guard.ConstructorGuard
}

// NewGetOrderStatisticsQuery resolves period against now. "day" starts at
// today's UTC midnight; "week", "month" and "year" reach back 7, 30 and
// 365 days. An empty period means DefaultStatisticsPeriod.
func NewGetOrderStatisticsQuery(caller actor.Actor, period string, now time.Time) (GetOrderStatisticsQuery, error) {
	if err := caller.Validate(); err != nil {
		return GetOrderStatisticsQuery{}, err
	}
	if period == "" {
		period = DefaultStatisticsPeriod
	}

	now = now.UTC()
	var since time.Time
	switch period {
	case "day":
		since = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	case "week":
		since = now.AddDate(0, 0, -7)
	case "month":
		since = now.AddDate(0, 0, -30)
	case "year":
		since = now.AddDate(0, 0, -365)
	default:
		return GetOrderStatisticsQuery{}, errs.NewValueIsInvalidErrorWithCause("period",
			fmt.Errorf("%q is not one of day, week, month, year", period))
	}

	q := GetOrderStatisticsQuery{period: period, since: since, guard: guard.NewConstructorGuard()}
	switch caller.Role() {
	case actor.Customer:
		q.scopeColumn, q.scopeID = "customer_id", caller.ID()
	case actor.Restaurant:
		rid, _ := caller.RestaurantID()
		q.scopeColumn, q.scopeID = "restaurant_id", rid
	case actor.DeliveryAgent:
		q.scopeColumn, q.scopeID = "delivery_agent_id", caller.ID()
	case actor.Admin, actor.UnknownRole:
	}
	return q, nil
}

func (q GetOrderStatisticsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderStatisticsQueryIsNotConstructed)
}

func (q GetOrderStatisticsQuery) Period() string  { return q.period }
func (q GetOrderStatisticsQuery) Since() time.Time { return q.since }

// Scope names the orders column the caller is matched on. ok is false for
// admins, whose statistics cover every order.
func (q GetOrderStatisticsQuery) Scope() (column string, id kernel.UUID, ok bool) {
	return q.scopeColumn, q.scopeID, q.scopeColumn != ""
}

// GetOrderStatisticsQueryResponse reports CompletionRate as a percentage of
// TotalOrders. StatusBreakdown has a key for every valid status.
type GetOrderStatisticsQueryResponse struct {
	Period            string
	Since             time.Time
	TotalOrders       int64
	CompletedOrders   int64
	CancelledOrders   int64
	CompletionRate    decimal.Decimal
	TotalRevenue      decimal.Decimal
	AverageOrderValue decimal.Decimal
	StatusBreakdown   map[string]int64
}
