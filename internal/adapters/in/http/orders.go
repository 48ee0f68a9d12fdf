package http

import (
	"net/http"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	restaurantID, err := kernel.UUIDFromString(req.RestaurantID)
	if err != nil {
		return writeError(c, errs.NewValueIsInvalidErrorWithCause("restaurant_id", err))
	}
	lines := make([]commands.OrderLine, 0, len(req.Items))
	for _, item := range req.Items {
		productID, err := kernel.UUIDFromString(item.ProductID)
		if err != nil {
			return writeError(c, errs.NewValueIsInvalidErrorWithCause("product_id", err))
		}
		lines = append(lines, commands.OrderLine{ProductID: productID, Quantity: item.Quantity})
	}
	location, err := locationOf(req.Latitude, req.Longitude)
	if err != nil {
		return writeError(c, err)
	}
	method, err := kernel.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return writeError(c, err)
	}

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), actorFrom(c), restaurantID, lines, req.DeliveryAddress, location, method,
	)
	if err != nil {
		return writeError(c, err)
	}
	o, err := s.handlers.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, toOrderResponse(o))
}

func locationOf(lat, lng *float64) (*kernel.Location, error) {
	switch {
	case lat == nil && lng == nil:
		return nil, nil
	case lat == nil || lng == nil:
		return nil, errs.NewValueIsRequiredError("latitude and longitude go together")
	}
	loc, err := kernel.NewLocation(*lat, *lng)
	if err != nil {
		return nil, err
	}
	return &loc, nil
}

// GetOrder handles GET /api/v1/orders/:orderId.
func (s *Server) GetOrder(c echo.Context) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return writeError(c, err)
	}
	query, err := queries.NewGetOrderQuery(orderID, actorFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	view, err := s.handlers.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toOrderViewResponse(view))
}

// GetAvailableOrders handles GET /api/v1/orders/available.
func (s *Server) GetAvailableOrders(c echo.Context) error {
	limit, err := intQueryParam(c, "limit")
	if err != nil {
		return writeError(c, err)
	}
	query, err := queries.NewGetAvailableOrdersQuery(actorFrom(c), limit)
	if err != nil {
		return writeError(c, err)
	}
	views, err := s.handlers.GetAvailableOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}
	resp := make([]AvailableOrderResponse, len(views))
	for i, v := range views {
		resp[i] = toAvailableOrderResponse(v)
	}
	return c.JSON(http.StatusOK, resp)
}

// GetOrderStatistics handles GET /api/v1/orders/statistics.
func (s *Server) GetOrderStatistics(c echo.Context) error {
	query, err := queries.NewGetOrderStatisticsQuery(actorFrom(c), c.QueryParam("period"), time.Now())
	if err != nil {
		return writeError(c, err)
	}
	stats, err := s.handlers.GetOrderStatistics.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, OrderStatisticsResponse{
		Period:          stats.Period,
		Since:           stats.Since,
		TotalOrders:     stats.TotalOrders,
		CompletedOrders: stats.CompletedOrders,
		CancelledOrders: stats.CancelledOrders,
		CompletionRate:  stats.CompletionRate,
		TotalRevenue:    stats.TotalRevenue,
		AvgOrderValue:   stats.AverageOrderValue,
		StatusBreakdown: stats.StatusBreakdown,
	})
}

// ChangeOrderStatus handles PATCH /api/v1/orders/:orderId/status.
func (s *Server) ChangeOrderStatus(c echo.Context) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return writeError(c, err)
	}
	var req ChangeStatusRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	target, err := order.ParseStatus(req.Status)
	if err != nil {
		return writeError(c, err)
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, actorFrom(c), target)
	if err != nil {
		return writeError(c, err)
	}
	o, err := s.handlers.ChangeOrderStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toOrderResponse(o))
}

// AssignDeliveryAgent handles PUT /api/v1/orders/:orderId/delivery-agent.
// Agents omit agent_id to take the order themselves.
func (s *Server) AssignDeliveryAgent(c echo.Context) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return writeError(c, err)
	}
	var req AssignAgentRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	var agentID *kernel.UUID
	if req.AgentID != nil {
		id, err := kernel.UUIDFromString(*req.AgentID)
		if err != nil {
			return writeError(c, errs.NewValueIsInvalidErrorWithCause("agent_id", err))
		}
		agentID = &id
	}

	cmd, err := commands.NewAssignDeliveryAgentCommand(orderID, actorFrom(c), agentID)
	if err != nil {
		return writeError(c, err)
	}
	o, err := s.handlers.AssignDeliveryAgent.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toOrderResponse(o))
}

func (s *Server) codeCommand(c echo.Context) (commands.ConfirmCodeCommand, error) {
	orderID, err := orderIDParam(c)
	if err != nil {
		return commands.ConfirmCodeCommand{}, err
	}
	var req CodeRequest
	if err = c.Bind(&req); err != nil {
		return commands.ConfirmCodeCommand{}, errs.NewValueIsInvalidErrorWithCause("request body", err)
	}
	return commands.NewConfirmCodeCommand(orderID, actorFrom(c), req.Code)
}

// ConfirmDelivery handles POST /api/v1/orders/:orderId/delivery-confirmation.
func (s *Server) ConfirmDelivery(c echo.Context) error {
	cmd, err := s.codeCommand(c)
	if err != nil {
		return writeError(c, err)
	}
	o, err := s.handlers.ConfirmDelivery.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toOrderResponse(o))
}

// ConfirmPayout handles POST /api/v1/orders/:orderId/payout-confirmation.
func (s *Server) ConfirmPayout(c echo.Context) error {
	cmd, err := s.codeCommand(c)
	if err != nil {
		return writeError(c, err)
	}
	entry, err := s.handlers.ConfirmPayout.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toLedgerEntryResponse(entry))
}
