package order_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

const (
	deliveryCode = "1111"
	payoutCode   = "2222"
)

type parties struct {
	restaurantID kernel.UUID
	customer     actor.Actor
	restaurant   actor.Actor
	agent        actor.Actor
	otherAgent   actor.Actor
	admin        actor.Actor
}

func newParties(t *testing.T) parties {
	t.Helper()
	rid := kernel.NewUUID()
	mk := func(role actor.Role, restaurantID *kernel.UUID) actor.Actor {
		a, err := actor.NewActor(kernel.NewUUID(), role, restaurantID)
		require.NoError(t, err)
		return a
	}
	return parties{
		restaurantID: rid,
		customer:     mk(actor.Customer, nil),
		restaurant:   mk(actor.Restaurant, &rid),
		agent:        mk(actor.DeliveryAgent, nil),
		otherAgent:   mk(actor.DeliveryAgent, nil),
		admin:        mk(actor.Admin, nil),
	}
}

func terms(p parties) order.RestaurantTerms {
	return order.RestaurantTerms{
		ID:            p.restaurantID,
		IsOpen:        true,
		DeliveryFee:   decimal.NewFromInt(100),
		MinOrderValue: decimal.NewFromInt(500),
	}
}

func line(restaurantID kernel.UUID, price int64, qty int) order.Line {
	return order.Line{
		ProductID:           kernel.NewUUID(),
		ProductRestaurantID: restaurantID,
		UnitPrice:           decimal.NewFromInt(price),
		Available:           true,
		Quantity:            qty,
	}
}

func newParams(p parties, lines ...order.Line) order.NewOrderParams {
	return order.NewOrderParams{
		ID:            kernel.NewUUID(),
		CustomerID:    p.customer.ID(),
		Restaurant:    terms(p),
		Lines:         lines,
		Address:       "Tevragh Zeina, lot 12",
		PaymentMethod: kernel.Cash,
		Now:           now,
	}
}

// restoreAt builds an order already sitting in status with fixed codes.
func restoreAt(t *testing.T, p parties, status order.Status, agent *kernel.UUID, method kernel.PaymentMethod) *order.Order {
	t.Helper()
	dc, err := kernel.RestoreConfirmationCode(deliveryCode)
	require.NoError(t, err)
	pc, err := kernel.RestoreConfirmationCode(payoutCode)
	require.NoError(t, err)

	var deliveredAt *time.Time
	if status == order.Delivered {
		at := now.Add(-time.Minute)
		deliveredAt = &at
	}

	o, err := order.RestoreOrder(order.RestoreOrderParams{
		ID:              kernel.NewUUID(),
		CustomerID:      p.customer.ID(),
		RestaurantID:    p.restaurantID,
		DeliveryAgentID: agent,
		Status:          status,
		PaymentMethod:   method,
		PaymentStatus:   order.PaymentPending,
		Address:         "Ksar",
		DeliveryFee:     decimal.NewFromInt(100),
		TotalAmount:     decimal.NewFromInt(1000),
		DeliveryCode:    dc,
		PayoutCode:      pc,
		CreatedAt:       now.Add(-time.Hour),
		UpdatedAt:       now.Add(-time.Hour),
		DeliveredAt:     deliveredAt,
		Version:         3,
	})
	require.NoError(t, err)
	return o
}

func agentID(p parties) *kernel.UUID {
	id := p.agent.ID()
	return &id
}

func TestNewOrder(t *testing.T) {
	p := newParties(t)

	t.Run("should price the order and open it as pending", func(t *testing.T) {
		o, err := order.NewOrder(newParams(p, line(p.restaurantID, 200, 2), line(p.restaurantID, 100, 2)))

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, order.PaymentPending, o.PaymentStatus())
		assert.True(t, o.TotalAmount().Equal(decimal.NewFromInt(700)))
		assert.True(t, o.Subtotal().Equal(decimal.NewFromInt(600)))
		assert.True(t, o.DeliveryFee().Equal(decimal.NewFromInt(100)))
		assert.Len(t, o.Items(), 2)
		assert.Nil(t, o.DeliveryAgentID())
		assert.Nil(t, o.DeliveredAt())
		assert.Equal(t, now, o.CreatedAt())
	})

	t.Run("should draw two distinct four digit codes", func(t *testing.T) {
		for range 50 {
			o, err := order.NewOrder(newParams(p, line(p.restaurantID, 600, 1)))
			require.NoError(t, err)

			assert.Regexp(t, `^[0-9]{4}$`, o.DeliveryCode().String())
			assert.Regexp(t, `^[0-9]{4}$`, o.PayoutCode().String())
			assert.NotEqual(t, o.DeliveryCode().String(), o.PayoutCode().String())
		}
	})

	t.Run("should reject a subtotal below the minimum even when the fee lifts the total over it", func(t *testing.T) {
		_, err := order.NewOrder(newParams(p, line(p.restaurantID, 400, 1)))

		require.ErrorIs(t, err, order.ErrBelowMinimum)
		require.ErrorIs(t, err, errs.ErrBusinessRuleViolation)
	})

	t.Run("should reject a closed restaurant before anything else", func(t *testing.T) {
		params := newParams(p)
		params.Restaurant.IsOpen = false

		_, err := order.NewOrder(params)

		require.ErrorIs(t, err, order.ErrRestaurantClosed)
	})

	t.Run("should reject an empty basket", func(t *testing.T) {
		_, err := order.NewOrder(newParams(p))
		require.ErrorIs(t, err, order.ErrEmptyOrder)
	})

	t.Run("should reject an unavailable product", func(t *testing.T) {
		l := line(p.restaurantID, 600, 1)
		l.Available = false

		_, err := order.NewOrder(newParams(p, l))

		require.ErrorIs(t, err, order.ErrProductUnavailable)
	})

	t.Run("should reject a product of another restaurant", func(t *testing.T) {
		_, err := order.NewOrder(newParams(p, line(kernel.NewUUID(), 600, 1)))
		require.ErrorIs(t, err, order.ErrProductMismatch)
	})

	t.Run("should reject non-positive quantities", func(t *testing.T) {
		_, err := order.NewOrder(newParams(p, line(p.restaurantID, 600, 0)))
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should require an address and a known payment method", func(t *testing.T) {
		params := newParams(p, line(p.restaurantID, 600, 1))
		params.Address = "   "
		params.PaymentMethod = kernel.UnknownPaymentMethod

		_, err := order.NewOrder(params)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should record a created event", func(t *testing.T) {
		o, err := order.NewOrder(newParams(p, line(p.restaurantID, 600, 1)))
		require.NoError(t, err)

		events := o.DomainEvents()

		require.Len(t, events, 1)
		assert.Equal(t, order.EventCreated, events[0].Kind)
		assert.Equal(t, order.Pending, events[0].Status)
		o.ClearDomainEvents()
		assert.Empty(t, o.DomainEvents())
	})
}

func TestRestoreOrder(t *testing.T) {
	p := newParties(t)
	dc, _ := kernel.RestoreConfirmationCode(deliveryCode)
	pc, _ := kernel.RestoreConfirmationCode(payoutCode)
	base := func() order.RestoreOrderParams {
		return order.RestoreOrderParams{
			ID:            kernel.NewUUID(),
			CustomerID:    p.customer.ID(),
			RestaurantID:  p.restaurantID,
			Status:        order.Pending,
			PaymentMethod: kernel.Cash,
			PaymentStatus: order.PaymentPending,
			DeliveryFee:   decimal.NewFromInt(100),
			TotalAmount:   decimal.NewFromInt(700),
			DeliveryCode:  dc,
			PayoutCode:    pc,
		}
	}

	t.Run("should restore a consistent row", func(t *testing.T) {
		o, err := order.RestoreOrder(base())
		require.NoError(t, err)
		assert.Empty(t, o.DomainEvents())
	})

	t.Run("should reject delivered without delivered_at", func(t *testing.T) {
		params := base()
		params.Status = order.Delivered
		params.DeliveryAgentID = agentID(p)

		_, err := order.RestoreOrder(params)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject delivered_at on a non delivered order", func(t *testing.T) {
		params := base()
		params.DeliveredAt = &now

		_, err := order.RestoreOrder(params)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject picked_up without an agent", func(t *testing.T) {
		params := base()
		params.Status = order.PickedUp

		_, err := order.RestoreOrder(params)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject an agent on a preparing order", func(t *testing.T) {
		params := base()
		params.Status = order.Preparing
		params.DeliveryAgentID = agentID(p)

		_, err := order.RestoreOrder(params)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject missing codes", func(t *testing.T) {
		params := base()
		params.PayoutCode = kernel.ConfirmationCode{}

		_, err := order.RestoreOrder(params)

		require.ErrorIs(t, err, kernel.ErrConfirmationCodeIsNotConstructed)
	})
}

func TestOrder_Validate(t *testing.T) {
	var o *order.Order
	assert.Equal(t, order.ErrOrderIsNotConstructed, o.Validate())

	var zero order.Order
	assert.Equal(t, order.ErrOrderIsNotConstructed, zero.Validate())
}

func TestOrder_AssignDeliveryAgent(t *testing.T) {
	p := newParties(t)

	t.Run("should let an agent take a ready order", func(t *testing.T) {
		o := restoreAt(t, p, order.Ready, nil, kernel.Cash)

		err := o.AssignDeliveryAgent(p.agent, p.agent.ID(), now)

		require.NoError(t, err)
		require.NotNil(t, o.DeliveryAgentID())
		assert.True(t, o.DeliveryAgentID().IsEqual(p.agent.ID()))
		assert.Equal(t, now, o.UpdatedAt())
		assert.Equal(t, order.Ready, o.Status())
		require.Len(t, o.DomainEvents(), 1)
		assert.Equal(t, order.EventAgentAssigned, o.DomainEvents()[0].Kind)
	})

	t.Run("should let an admin assign any agent", func(t *testing.T) {
		o := restoreAt(t, p, order.Ready, nil, kernel.Cash)

		require.NoError(t, o.AssignDeliveryAgent(p.admin, p.otherAgent.ID(), now))
		assert.True(t, o.DeliveryAgentID().IsEqual(p.otherAgent.ID()))
	})

	t.Run("should never reassign", func(t *testing.T) {
		o := restoreAt(t, p, order.Ready, agentID(p), kernel.Cash)

		err := o.AssignDeliveryAgent(p.admin, p.otherAgent.ID(), now)

		require.ErrorIs(t, err, order.ErrAgentAlreadyAssigned)
		assert.True(t, o.DeliveryAgentID().IsEqual(p.agent.ID()))
	})

	t.Run("should only assign in ready", func(t *testing.T) {
		o := restoreAt(t, p, order.Preparing, nil, kernel.Cash)

		err := o.AssignDeliveryAgent(p.agent, p.agent.ID(), now)

		require.ErrorIs(t, err, order.ErrIllegalTransition)
		assert.Nil(t, o.DeliveryAgentID())
	})

	t.Run("should not let an agent assign someone else", func(t *testing.T) {
		o := restoreAt(t, p, order.Ready, nil, kernel.Cash)

		err := o.AssignDeliveryAgent(p.agent, p.otherAgent.ID(), now)

		require.ErrorIs(t, err, order.ErrAccessDenied)
	})

	t.Run("should deny customers and restaurants", func(t *testing.T) {
		o := restoreAt(t, p, order.Ready, nil, kernel.Cash)

		require.ErrorIs(t, o.AssignDeliveryAgent(p.customer, p.agent.ID(), now), errs.ErrAccessDenied)
		require.ErrorIs(t, o.AssignDeliveryAgent(p.restaurant, p.agent.ID(), now), errs.ErrAccessDenied)
	})
}

func TestOrder_ConfirmDelivery(t *testing.T) {
	p := newParties(t)

	t.Run("customer confirms a cash delivery", func(t *testing.T) {
		o := restoreAt(t, p, order.PickedUp, agentID(p), kernel.Cash)

		err := o.ConfirmDelivery(p.customer, deliveryCode, now)

		require.NoError(t, err)
		assert.Equal(t, order.Delivered, o.Status())
		require.NotNil(t, o.DeliveredAt())
		assert.Equal(t, now, *o.DeliveredAt())
		assert.Equal(t, order.PaymentPending, o.PaymentStatus(), "cash is recorded by the ledger, not the flag")
		assert.True(t, o.RequiresCashSettlement())
	})

	t.Run("assigned agent confirms an electronic delivery and the order becomes paid", func(t *testing.T) {
		o := restoreAt(t, p, order.PickedUp, agentID(p), kernel.Bankily)

		require.NoError(t, o.ConfirmDelivery(p.agent, deliveryCode, now))

		assert.Equal(t, order.Delivered, o.Status())
		assert.Equal(t, order.PaymentPaid, o.PaymentStatus())
		assert.False(t, o.RequiresCashSettlement())
	})

	t.Run("access is checked before the code", func(t *testing.T) {
		o := restoreAt(t, p, order.PickedUp, agentID(p), kernel.Cash)

		err := o.ConfirmDelivery(p.otherAgent, "0000", now)

		require.ErrorIs(t, err, order.ErrAccessDenied)
	})

	t.Run("restaurants and admins cannot confirm", func(t *testing.T) {
		o := restoreAt(t, p, order.PickedUp, agentID(p), kernel.Cash)

		require.ErrorIs(t, o.ConfirmDelivery(p.restaurant, deliveryCode, now), errs.ErrAccessDenied)
		require.ErrorIs(t, o.ConfirmDelivery(p.admin, deliveryCode, now), errs.ErrAccessDenied)
	})

	t.Run("the code is checked before the status", func(t *testing.T) {
		o := restoreAt(t, p, order.Ready, agentID(p), kernel.Cash)

		err := o.ConfirmDelivery(p.customer, "9999", now)

		require.ErrorIs(t, err, order.ErrInvalidDeliveryCode)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("the payout code is not a delivery code", func(t *testing.T) {
		o := restoreAt(t, p, order.PickedUp, agentID(p), kernel.Cash)

		err := o.ConfirmDelivery(p.customer, payoutCode, now)

		require.ErrorIs(t, err, order.ErrInvalidDeliveryCode)
	})

	t.Run("only picked_up orders can be confirmed", func(t *testing.T) {
		o := restoreAt(t, p, order.Ready, agentID(p), kernel.Cash)

		err := o.ConfirmDelivery(p.customer, deliveryCode, now)

		require.ErrorIs(t, err, order.ErrIllegalTransition)
		assert.Equal(t, order.Ready, o.Status())
		assert.Nil(t, o.DeliveredAt())
	})

	t.Run("a delivered order cannot be confirmed twice", func(t *testing.T) {
		o := restoreAt(t, p, order.PickedUp, agentID(p), kernel.Cash)
		require.NoError(t, o.ConfirmDelivery(p.customer, deliveryCode, now))
		first := *o.DeliveredAt()

		err := o.ConfirmDelivery(p.customer, deliveryCode, now.Add(time.Hour))

		require.ErrorIs(t, err, order.ErrIllegalTransition)
		assert.Equal(t, first, *o.DeliveredAt())
	})
}

func TestOrder_VerifyPayoutCode(t *testing.T) {
	p := newParties(t)
	o := restoreAt(t, p, order.Delivered, agentID(p), kernel.Cash)

	require.NoError(t, o.VerifyPayoutCode(p.restaurant, payoutCode))
	require.ErrorIs(t, o.VerifyPayoutCode(p.restaurant, deliveryCode), order.ErrInvalidPayoutCode)
	require.ErrorIs(t, o.VerifyPayoutCode(p.admin, payoutCode), order.ErrAccessDenied)

	otherRID := kernel.NewUUID()
	stranger, err := actor.NewActor(kernel.NewUUID(), actor.Restaurant, &otherRID)
	require.NoError(t, err)
	require.ErrorIs(t, o.VerifyPayoutCode(stranger, payoutCode), order.ErrAccessDenied)
}

func TestOrder_Payments(t *testing.T) {
	p := newParties(t)

	t.Run("customer starts an electronic payment", func(t *testing.T) {
		o := restoreAt(t, p, order.Pending, nil, kernel.Masrafi)
		require.NoError(t, o.StartElectronicPayment(p.customer, now))
	})

	t.Run("cash orders are not paid online", func(t *testing.T) {
		o := restoreAt(t, p, order.Pending, nil, kernel.Cash)
		require.ErrorIs(t, o.StartElectronicPayment(p.customer, now), order.ErrPaymentNotOnline)
	})

	t.Run("other customers cannot pay", func(t *testing.T) {
		o := restoreAt(t, p, order.Pending, nil, kernel.Sadad)
		other, _ := actor.NewActor(kernel.NewUUID(), actor.Customer, nil)
		require.ErrorIs(t, o.StartElectronicPayment(other, now), errs.ErrAccessDenied)
	})

	t.Run("cancelled orders cannot be paid", func(t *testing.T) {
		o := restoreAt(t, p, order.Cancelled, nil, kernel.Sadad)
		require.ErrorIs(t, o.StartElectronicPayment(p.customer, now), order.ErrOrderCancelled)
	})

	t.Run("paid orders cannot be paid again", func(t *testing.T) {
		o := restoreAt(t, p, order.Pending, nil, kernel.Sadad)
		require.NoError(t, o.MarkPaid(now))
		require.ErrorIs(t, o.StartElectronicPayment(p.customer, now), order.ErrAlreadyPaid)
	})

	t.Run("a failed payment can be retried", func(t *testing.T) {
		o := restoreAt(t, p, order.Pending, nil, kernel.Bankily)
		require.NoError(t, o.MarkPaymentFailed(now))
		require.Equal(t, order.PaymentFailed, o.PaymentStatus())

		require.NoError(t, o.StartElectronicPayment(p.customer, now))

		assert.Equal(t, order.PaymentPending, o.PaymentStatus())
	})

	t.Run("a paid order is never downgraded", func(t *testing.T) {
		o := restoreAt(t, p, order.Pending, nil, kernel.Bankily)
		require.NoError(t, o.MarkPaid(now))
		o.ClearDomainEvents()

		require.NoError(t, o.MarkPaymentFailed(now))

		assert.Equal(t, order.PaymentPaid, o.PaymentStatus())
		assert.Empty(t, o.DomainEvents())
	})
}

func TestOrder_CanBeViewedBy(t *testing.T) {
	p := newParties(t)
	o := restoreAt(t, p, order.PickedUp, agentID(p), kernel.Cash)
	stranger, _ := actor.NewActor(kernel.NewUUID(), actor.Customer, nil)

	assert.True(t, o.CanBeViewedBy(p.admin))
	assert.True(t, o.CanBeViewedBy(p.customer))
	assert.True(t, o.CanBeViewedBy(p.restaurant))
	assert.True(t, o.CanBeViewedBy(p.agent))
	assert.False(t, o.CanBeViewedBy(p.otherAgent))
	assert.False(t, o.CanBeViewedBy(stranger))
}

func TestOrder_AdvanceVersion(t *testing.T) {
	p := newParties(t)
	o := restoreAt(t, p, order.Pending, nil, kernel.Cash)

	o.AdvanceVersion()

	assert.Equal(t, int64(4), o.Version())
}
