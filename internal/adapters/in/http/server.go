package http

import (
	"log/slog"
	"net/http"

	"marketplace/internal/adapters/out/events"
	"marketplace/internal/adapters/out/gateway"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Handlers are the use cases the HTTP adapter drives.
type Handlers struct {
	CreateOrder           commands.CreateOrderCommandHandler
	ChangeOrderStatus     commands.ChangeOrderStatusCommandHandler
	AssignDeliveryAgent   commands.AssignDeliveryAgentCommandHandler
	ConfirmDelivery       commands.ConfirmDeliveryCommandHandler
	ConfirmPayout         commands.ConfirmPayoutCommandHandler
	InitiatePayment       commands.InitiatePaymentCommandHandler
	HandlePaymentCallback commands.HandlePaymentCallbackCommandHandler

	GetOrder           queries.GetOrderQueryHandler
	GetAvailableOrders queries.GetAvailableOrdersQueryHandler
	GetBalance         queries.GetBalanceQueryHandler
	ListLedgerEntries  queries.ListLedgerEntriesQueryHandler
	GetOrderStatistics queries.GetOrderStatisticsQueryHandler
}

// Server translates HTTP requests into commands and queries and maps
// their results back to JSON.
type Server struct {
	handlers Handlers
	signer   gateway.Signer
	hub      *events.Hub
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewServer creates a server driving handlers. hub serves the websocket
// route and signer verifies payment callbacks.
func NewServer(handlers Handlers, signer gateway.Signer, hub *events.Hub, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		signer:   signer,
		hub:      hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: logger.With("component", "http"),
	}
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Events handles GET /api/v1/ws. The connection joins the rooms of the
// caller's party and receives every order event published there.
func (s *Server) Events(c echo.Context) error {
	rooms, err := events.RoomsForActor(actorFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	conn, err := s.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade has already written the failure.
		s.logger.Warn("websocket upgrade failed", "error", err)
		return nil
	}
	if !s.hub.Attach(conn, rooms) {
		s.logger.Warn("websocket rejected, hub stopped")
	}
	return nil
}

func orderIDParam(c echo.Context) (kernel.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "orderId", c.Param("orderId"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("orderId", err)
	}
	return kernel.UUIDFromBytes(id[:])
}

func intQueryParam(c echo.Context, name string) (int, error) {
	var v int
	if err := runtime.BindQueryParameter("form", true, false, name, c.QueryParams(), &v); err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return v, nil
}
