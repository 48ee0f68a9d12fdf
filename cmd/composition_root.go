package cmd

import (
	"context"
	"log/slog"

	httpin "marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/out/events"
	"marketplace/internal/adapters/out/gateway"
	"marketplace/internal/adapters/out/postgres"
	"marketplace/internal/adapters/out/postgres/catalogrepo"
	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/jobs"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

const (
	confirmationsPerMinute = 10
	confirmationBurst      = 5
)

type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	catalog    *catalogrepo.GormCatalog
	engine     services.SettlementEngine
	hub        *events.Hub
	logger     *slog.Logger
}

// NewCompositionRoot wires the adapters. Events reach publisher after every
// successful commit; hub serves the websocket subscribers.
func NewCompositionRoot(
	configs Config,
	gormDB *gorm.DB,
	publisher ports.EventPublisher,
	hub *events.Hub,
	logger *slog.Logger,
) (CompositionRoot, error) {
	engine, err := services.NewSettlementEngine(configs.CommissionRate)
	if err != nil {
		return CompositionRoot{}, err
	}
	return CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, publisher, logger),
		catalog:    catalogrepo.NewGormCatalog(gormDB),
		engine:     engine,
		hub:        hub,
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) uoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.catalog)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	return commands.NewChangeOrderStatusCommandHandler(c.uoWFactory(), c.engine)
}

func (c *CompositionRoot) CreateAssignDeliveryAgentCommandHandler() commands.AssignDeliveryAgentCommandHandler {
	return commands.NewAssignDeliveryAgentCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateConfirmDeliveryCommandHandler() commands.ConfirmDeliveryCommandHandler {
	return commands.NewConfirmDeliveryCommandHandler(c.uoWFactory(), c.engine)
}

func (c *CompositionRoot) CreateConfirmPayoutCommandHandler() commands.ConfirmPayoutCommandHandler {
	return commands.NewConfirmPayoutCommandHandler(c.uoWFactory(), c.engine)
}

func (c *CompositionRoot) CreateInitiatePaymentCommandHandler() commands.InitiatePaymentCommandHandler {
	return commands.NewInitiatePaymentCommandHandler(c.uoWFactory(), gateway.NewSimulatedGateway(c.configs.PaymentTTL))
}

func (c *CompositionRoot) CreateHandlePaymentCallbackCommandHandler() commands.HandlePaymentCallbackCommandHandler {
	return commands.NewHandlePaymentCallbackCommandHandler(c.uoWFactory())
}

func (c *CompositionRoot) CreateExpirePendingPaymentsCommandHandler() commands.ExpirePendingPaymentsCommandHandler {
	return commands.NewExpirePendingPaymentsCommandHandler(c.uoWFactory())
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(orderrepo.NewGormOrderRepository(c.gormDB, untracked{}))
}

func (c *CompositionRoot) CreateGetAvailableOrdersQueryHandler() queries.GetAvailableOrdersQueryHandler {
	return queries.NewGetAvailableOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetBalanceQueryHandler() queries.GetBalanceQueryHandler {
	return queries.NewGetBalanceQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListLedgerEntriesQueryHandler() queries.ListLedgerEntriesQueryHandler {
	return queries.NewListLedgerEntriesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderStatisticsQueryHandler() queries.GetOrderStatisticsQueryHandler {
	return queries.NewGetOrderStatisticsQueryHandler(c.gormDB)
}

// CreateAuthenticator shares the catalog with the command handlers.
func (c *CompositionRoot) CreateAuthenticator() *httpin.Authenticator {
	return httpin.NewAuthenticator(c.configs.JWTSecret, c.catalog)
}

// CreateRouter builds the HTTP surface. The returned limiter must be run
// alongside the server so idle entries get dropped.
func (c *CompositionRoot) CreateRouter(ctx context.Context) (*echo.Echo, *httpin.ActorLimiter, error) {
	doc, err := httpin.LoadContract(ctx)
	if err != nil {
		return nil, nil, err
	}
	if err = httpin.RegisterSwaggerDoc(doc); err != nil {
		return nil, nil, err
	}
	validate, err := httpin.RequestValidator(doc)
	if err != nil {
		return nil, nil, err
	}

	server := httpin.NewServer(httpin.Handlers{
		CreateOrder:           c.CreateCreateOrderCommandHandler(),
		ChangeOrderStatus:     c.CreateChangeOrderStatusCommandHandler(),
		AssignDeliveryAgent:   c.CreateAssignDeliveryAgentCommandHandler(),
		ConfirmDelivery:       c.CreateConfirmDeliveryCommandHandler(),
		ConfirmPayout:         c.CreateConfirmPayoutCommandHandler(),
		InitiatePayment:       c.CreateInitiatePaymentCommandHandler(),
		HandlePaymentCallback: c.CreateHandlePaymentCallbackCommandHandler(),
		GetOrder:              c.CreateGetOrderQueryHandler(),
		GetAvailableOrders:    c.CreateGetAvailableOrdersQueryHandler(),
		GetBalance:            c.CreateGetBalanceQueryHandler(),
		ListLedgerEntries:     c.CreateListLedgerEntriesQueryHandler(),
		GetOrderStatistics:    c.CreateGetOrderStatisticsQueryHandler(),
	}, gateway.NewSigner(c.configs.GatewaySecret), c.hub, c.logger)

	limiter := httpin.NewActorLimiter(confirmationsPerMinute, confirmationBurst)
	return httpin.NewRouter(server, c.CreateAuthenticator(), limiter, validate), limiter, nil
}

// CreateJobManager wires the background jobs.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	expire := c.CreateExpirePendingPaymentsCommandHandler()
	return jobs.NewJobManager(
		jobs.NewPaymentExpiryJob(expire, c.configs.PaymentTTL, c.logger),
	)
}

// untracked serves read-only repositories that never publish.
type untracked struct{}

func (untracked) TrackAggregate(kernel.UUID, any) {}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
