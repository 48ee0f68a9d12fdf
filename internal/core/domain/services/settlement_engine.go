package services

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/ledger"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// DefaultCommissionRate is the platform cut deducted before the agent hands cash to the restaurant.
	DefaultCommissionRate = decimal.RequireFromString("0.10")

	// AgentEarningsDisplayRate is shown to agents browsing orders. It never reaches the ledger.
	AgentEarningsDisplayRate = decimal.RequireFromString("0.15")

	ErrSettlementNotDue = errs.NewPreconditionFailedError("cash settlement is not due")
	ErrPayoutNotFound   = errs.NewPreconditionFailedError("payout not found")
)

// SettlementEngine turns a cash hand-off chain into ledger entries.
type SettlementEngine struct {
	commissionRate decimal.Decimal
}

// NewSettlementEngine creates an engine deducting commissionRate, which must be in [0, 1).
func NewSettlementEngine(commissionRate decimal.Decimal) (SettlementEngine, error) {
	if commissionRate.IsNegative() || commissionRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return SettlementEngine{}, errs.NewValueIsOutOfRangeError("commission rate", commissionRate.String(), 0, 1)
	}
	return SettlementEngine{commissionRate: commissionRate}, nil
}

// CommissionRate returns the platform cut applied to cash orders.
func (s SettlementEngine) CommissionRate() decimal.Decimal {
	return s.commissionRate
}

// RestaurantShare is total * (1 - rate) - delivery fee, rounded to cents.
func (s SettlementEngine) RestaurantShare(total, deliveryFee decimal.Decimal) decimal.Decimal {
	return total.Mul(decimal.NewFromInt(1).Sub(s.commissionRate)).Sub(deliveryFee).Round(2)
}

// SettleCashDelivery posts the two legs of a delivered cash order:
// the customer paid the agent in full (settled), and the agent owes the
// restaurant its share (pending until the restaurant presents its payout code).
// When the delivery fee consumes the whole share only the first leg is posted;
// the order has no payout to confirm.
func (s SettlementEngine) SettleCashDelivery(o *order.Order, now time.Time) ([]*ledger.Entry, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if !o.RequiresCashSettlement() {
		return nil, fmt.Errorf("%w: order %s is %s paid by %s", ErrSettlementNotDue, o.ID(), o.Status(), o.PaymentMethod())
	}

	agentID := o.DeliveryAgentID()
	if agentID == nil {
		return nil, order.ErrAgentNotAssigned
	}

	customer, errC := kernel.Customer(o.CustomerID())
	agent, errA := kernel.DeliveryAgent(*agentID)
	restaurant, errR := kernel.Restaurant(o.RestaurantID())
	if err := errors.Join(errC, errA, errR); err != nil {
		return nil, err
	}

	paid, err := ledger.NewEntry(ledger.EntryParams{
		ID:        kernel.NewUUID(),
		From:      customer,
		To:        agent,
		Amount:    o.TotalAmount(),
		Kind:      ledger.Payment,
		Method:    kernel.Cash,
		Status:    ledger.Success,
		OrderID:   o.ID(),
		CreatedAt: now,
	})
	if err != nil {
		return nil, err
	}

	share := s.RestaurantShare(o.TotalAmount(), o.DeliveryFee())
	if !share.IsPositive() {
		return []*ledger.Entry{paid}, nil
	}

	owed, err := ledger.NewEntry(ledger.EntryParams{
		ID:        kernel.NewUUID(),
		From:      agent,
		To:        restaurant,
		Amount:    share,
		Kind:      ledger.Transfer,
		Method:    kernel.Cash,
		Status:    ledger.Pending,
		OrderID:   o.ID(),
		CreatedAt: now,
	})
	if err != nil {
		return nil, err
	}

	return []*ledger.Entry{paid, owed}, nil
}

// ConfirmRestaurantPayout checks the restaurant and its code, then flips the
// pending agent-to-restaurant entry. A nil or already resolved entry is
// reported as ErrPayoutNotFound so a second confirmation never credits twice.
func (s SettlementEngine) ConfirmRestaurantPayout(o *order.Order, a actor.Actor, code string, pending *ledger.Entry) error {
	if err := o.VerifyPayoutCode(a, code); err != nil {
		return err
	}
	if pending == nil {
		return fmt.Errorf("%w: order %s", ErrPayoutNotFound, o.ID())
	}
	if !pending.OrderID().IsEqual(o.ID()) || pending.To().Type() != kernel.RestaurantParty ||
		!pending.To().ID().IsEqual(o.RestaurantID()) {
		return fmt.Errorf("%w: entry %s does not pay this order's restaurant", ErrPayoutNotFound, pending.ID())
	}
	if err := pending.Succeed(); err != nil {
		if errors.Is(err, ledger.ErrEntryAlreadyResolved) {
			return fmt.Errorf("%w: order %s", ErrPayoutNotFound, o.ID())
		}
		return err
	}
	return nil
}

// EstimateAgentEarnings is the display-only figure shown on available orders.
func EstimateAgentEarnings(total, deliveryFee decimal.Decimal) decimal.Decimal {
	return total.Mul(AgentEarningsDisplayRate).Add(deliveryFee).Round(2)
}
