package http

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// NewRouter wires the server's handlers to their routes. validate may be
// nil to skip contract validation.
func NewRouter(
	s *Server,
	auth *Authenticator,
	limiter *ActorLimiter,
	validate echo.MiddlewareFunc,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(requestLogger(s.logger))

	e.GET("/health", s.Health)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	authed := []echo.MiddlewareFunc{auth.Middleware}
	if validate != nil {
		authed = append(authed, validate)
	}
	throttled := append(append([]echo.MiddlewareFunc{}, authed...), limiter.Middleware)

	api := e.Group("/api/v1")
	api.POST("/orders", s.CreateOrder, authed...)
	api.GET("/orders/available", s.GetAvailableOrders, authed...)
	api.GET("/orders/statistics", s.GetOrderStatistics, authed...)
	api.GET("/orders/:orderId", s.GetOrder, authed...)
	api.PATCH("/orders/:orderId/status", s.ChangeOrderStatus, authed...)
	api.PUT("/orders/:orderId/delivery-agent", s.AssignDeliveryAgent, authed...)
	api.POST("/orders/:orderId/delivery-confirmation", s.ConfirmDelivery, throttled...)
	api.POST("/orders/:orderId/payout-confirmation", s.ConfirmPayout, throttled...)
	api.POST("/orders/:orderId/payments", s.InitiatePayment, authed...)
	api.GET("/balance", s.GetBalance, authed...)
	api.GET("/ledger/entries", s.ListLedgerEntries, authed...)
	api.GET("/ws", s.Events, auth.Middleware)

	if validate != nil {
		api.POST("/payments/callback", s.PaymentCallback, validate)
	} else {
		api.POST("/payments/callback", s.PaymentCallback)
	}

	return e
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Error != nil || v.Status >= 500 {
				level = slog.LevelError
			}
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("remote_ip", v.RemoteIP),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}
			logger.LogAttrs(c.Request().Context(), level, "request", attrs...)
			return nil
		},
	})
}
