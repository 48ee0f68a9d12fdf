package commands_test

import (
	"errors"
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type createOrderFixture struct {
	cast
	productID kernel.UUID
	catalog   *MockCatalog
	cmd       commands.CreateOrderCommand
}

func newCreateOrderFixture(t *testing.T, quantity int, minOrder int64) createOrderFixture {
	t.Helper()
	c := newCast(t)
	pid := kernel.NewUUID()

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), c.customer, c.restaurantID,
		[]commands.OrderLine{{ProductID: pid, Quantity: quantity}},
		"Tevragh Zeina", nil, kernel.Cash,
	)
	require.NoError(t, err)

	catalog := new(MockCatalog)
	catalog.On("GetRestaurant", mock.Anything, c.restaurantID).Return(ports.RestaurantInfo{
		ID:            c.restaurantID,
		OwnerID:       c.restaurant.ID(),
		Name:          "Chez Fatou",
		IsOpen:        true,
		DeliveryFee:   decimal.NewFromInt(100),
		MinOrderValue: decimal.NewFromInt(minOrder),
	}, nil)
	catalog.On("GetProduct", mock.Anything, pid).Return(ports.ProductInfo{
		ID:           pid,
		RestaurantID: c.restaurantID,
		Name:         "Thieboudienne",
		Price:        decimal.NewFromInt(200),
		IsAvailable:  true,
	}, nil)

	return createOrderFixture{cast: c, productID: pid, catalog: catalog, cmd: cmd}
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	f := newCreateOrderFixture(t, 3, 500)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, f.catalog)
	o, err := h.Handle(ctx, f.cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Pending, o.Status())
	assert.Equal(t, order.PaymentPending, o.PaymentStatus())
	assert.Equal(t, "700", o.TotalAmount().String())
	assert.False(t, o.DeliveryCode().IsEqual(o.PayoutCode()))
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
	f.catalog.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_BelowMinimum(t *testing.T) {
	ctx := t.Context()
	f := newCreateOrderFixture(t, 2, 500)
	factory := new(MockOrderUoWFactory)

	h := commands.NewCreateOrderCommandHandler(factory, f.catalog)
	_, err := h.Handle(ctx, f.cmd)

	require.ErrorIs(t, err, order.ErrBelowMinimum)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_OnlyCustomers(t *testing.T) {
	ctx := t.Context()
	f := newCreateOrderFixture(t, 3, 0)
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), f.agent, f.restaurantID, nil, "Ksar", nil, kernel.Cash)
	require.NoError(t, err)
	catalog := new(MockCatalog)
	factory := new(MockOrderUoWFactory)

	h := commands.NewCreateOrderCommandHandler(factory, catalog)
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrAccessDenied)
	catalog.AssertNotCalled(t, "GetRestaurant", mock.Anything, mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_UnknownProduct(t *testing.T) {
	ctx := t.Context()
	c := newCast(t)
	pid := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), c.customer, c.restaurantID,
		[]commands.OrderLine{{ProductID: pid, Quantity: 1}}, "Ksar", nil, kernel.Cash)
	require.NoError(t, err)

	catalog := new(MockCatalog)
	catalog.On("GetRestaurant", mock.Anything, c.restaurantID).
		Return(ports.RestaurantInfo{ID: c.restaurantID, IsOpen: true}, nil)
	catalog.On("GetProduct", mock.Anything, pid).
		Return(ports.ProductInfo{}, errs.NewObjectNotFoundError("product", pid))

	h := commands.NewCreateOrderCommandHandler(new(MockOrderUoWFactory), catalog)
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	h := commands.NewCreateOrderCommandHandler(new(MockOrderUoWFactory), new(MockCatalog))

	_, err := h.Handle(ctx, commands.CreateOrderCommand{})

	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
}

func TestCreateOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	f := newCreateOrderFixture(t, 3, 500)

	uow := new(MockUoW)
	factory := new(MockOrderUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	h := commands.NewCreateOrderCommandHandler(factory, f.catalog)
	_, err := h.Handle(ctx, f.cmd)

	require.Error(t, err)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	f := newCreateOrderFixture(t, 3, 500)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(errors.New("add error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, f.catalog)
	_, err := h.Handle(ctx, f.cmd)

	require.Error(t, err)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestCreateOrderCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	f := newCreateOrderFixture(t, 3, 500)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, f.catalog)
	_, err := h.Handle(ctx, f.cmd)

	require.Error(t, err)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}
