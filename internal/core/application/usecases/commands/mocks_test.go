package commands_test

import (
	"context"
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/ledger"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockLedgerRepository struct{ mock.Mock }

func (m *MockLedgerRepository) Add(ctx context.Context, entries ...*ledger.Entry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockLedgerRepository) Update(ctx context.Context, e *ledger.Entry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockLedgerRepository) FindPendingPayout(
	ctx context.Context,
	orderID kernel.UUID,
	restaurant kernel.Party,
) (*ledger.Entry, error) {
	args := m.Called(ctx, orderID, restaurant)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Entry), args.Error(1)
}

func (m *MockLedgerRepository) GetByTransactionRef(ctx context.Context, ref string) (*ledger.Entry, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Entry), args.Error(1)
}

func (m *MockLedgerRepository) FindExpiredPending(ctx context.Context, cutoff time.Time, limit int) ([]*ledger.Entry, error) {
	args := m.Called(ctx, cutoff, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledger.Entry), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) LedgerRepository() ports.LedgerRepository {
	args := m.Called()
	return args.Get(0).(ports.LedgerRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

// MockOrderUoWFactory hands out a MockUoW, which also satisfies OrderUoW.
type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockCatalog struct{ mock.Mock }

func (m *MockCatalog) GetRestaurant(ctx context.Context, id kernel.UUID) (ports.RestaurantInfo, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(ports.RestaurantInfo), args.Error(1)
}

func (m *MockCatalog) GetRestaurantByOwner(ctx context.Context, ownerID kernel.UUID) (ports.RestaurantInfo, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(ports.RestaurantInfo), args.Error(1)
}

func (m *MockCatalog) GetProduct(ctx context.Context, id kernel.UUID) (ports.ProductInfo, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(ports.ProductInfo), args.Error(1)
}

type MockPaymentGateway struct{ mock.Mock }

func (m *MockPaymentGateway) Initiate(ctx context.Context, req ports.PaymentRequest) (ports.PaymentSession, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(ports.PaymentSession), args.Error(1)
}

const (
	deliveryCode = "1357"
	payoutCode   = "2468"
)

type cast struct {
	restaurantID kernel.UUID
	customer     actor.Actor
	restaurant   actor.Actor
	agent        actor.Actor
	admin        actor.Actor
}

func newCast(t *testing.T) cast {
	t.Helper()
	rid := kernel.NewUUID()
	customer, err := actor.NewActor(kernel.NewUUID(), actor.Customer, nil)
	require.NoError(t, err)
	restaurant, err := actor.NewActor(kernel.NewUUID(), actor.Restaurant, &rid)
	require.NoError(t, err)
	agent, err := actor.NewActor(kernel.NewUUID(), actor.DeliveryAgent, nil)
	require.NoError(t, err)
	admin, err := actor.NewActor(kernel.NewUUID(), actor.Admin, nil)
	require.NoError(t, err)
	return cast{restaurantID: rid, customer: customer, restaurant: restaurant, agent: agent, admin: admin}
}

type orderState struct {
	status        order.Status
	method        kernel.PaymentMethod
	paymentStatus order.PaymentStatus
	withAgent     bool
}

// storedOrder builds an order as the repository would return it: total 1000, fee 100.
func storedOrder(t *testing.T, c cast, s orderState) *order.Order {
	t.Helper()
	dc, err := kernel.RestoreConfirmationCode(deliveryCode)
	require.NoError(t, err)
	pc, err := kernel.RestoreConfirmationCode(payoutCode)
	require.NoError(t, err)

	var agentID *kernel.UUID
	if s.withAgent {
		id := c.agent.ID()
		agentID = &id
	}
	var deliveredAt *time.Time
	if s.status == order.Delivered {
		at := time.Now().UTC()
		deliveredAt = &at
	}
	if s.paymentStatus == order.UnknownPaymentStatus {
		s.paymentStatus = order.PaymentPending
	}

	o, err := order.RestoreOrder(order.RestoreOrderParams{
		ID:              kernel.NewUUID(),
		CustomerID:      c.customer.ID(),
		RestaurantID:    c.restaurantID,
		DeliveryAgentID: agentID,
		Status:          s.status,
		PaymentMethod:   s.method,
		PaymentStatus:   s.paymentStatus,
		Address:         "Ksar, Nouakchott",
		DeliveryFee:     decimal.NewFromInt(100),
		TotalAmount:     decimal.NewFromInt(1000),
		DeliveryCode:    dc,
		PayoutCode:      pc,
		CreatedAt:       time.Now().UTC().Add(-time.Hour),
		UpdatedAt:       time.Now().UTC(),
		DeliveredAt:     deliveredAt,
		Version:         3,
	})
	require.NoError(t, err)
	return o
}

func newEngine(t *testing.T) services.SettlementEngine {
	t.Helper()
	engine, err := services.NewSettlementEngine(services.DefaultCommissionRate)
	require.NoError(t, err)
	return engine
}
