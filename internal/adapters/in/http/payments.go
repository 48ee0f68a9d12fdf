package http

import (
	"encoding/json"
	"io"
	"net/http"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	SignatureHeader = "X-Signature"

	callbackSuccess = "success"
	callbackFailed  = "failed"

	maxCallbackBody = 64 << 10
)

// InitiatePayment handles POST /api/v1/orders/:orderId/payments.
func (s *Server) InitiatePayment(c echo.Context) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return writeError(c, err)
	}
	var req InitiatePaymentRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	cmd, err := commands.NewInitiatePaymentCommand(orderID, actorFrom(c), req.Phone)
	if err != nil {
		return writeError(c, err)
	}
	session, err := s.handlers.InitiatePayment.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, toPaymentSessionResponse(session))
}

// PaymentCallback handles POST /api/v1/payments/callback. The gateway signs
// the raw body, so it is read before decoding.
func (s *Server) PaymentCallback(c echo.Context) error {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxCallbackBody))
	if err != nil {
		return badRequest(c, "unreadable request body")
	}
	if err = s.signer.Verify(body, c.Request().Header.Get(SignatureHeader)); err != nil {
		s.logger.Warn("payment callback rejected", "error", err, "remote_ip", c.RealIP())
		return writeError(c, err)
	}

	var req PaymentCallbackRequest
	if err = json.Unmarshal(body, &req); err != nil {
		return badRequest(c, "invalid request body")
	}
	var succeeded bool
	switch req.Status {
	case callbackSuccess:
		succeeded = true
	case callbackFailed:
	default:
		return writeError(c, errs.NewValueIsInvalidError("status must be success or failed"))
	}

	cmd, err := commands.NewHandlePaymentCallbackCommand(req.TransactionRef, succeeded)
	if err != nil {
		return writeError(c, err)
	}
	entry, err := s.handlers.HandlePaymentCallback.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}
	s.logger.Info("payment resolved",
		"transaction_ref", entry.TransactionRef(), "order_id", entry.OrderID().String(), "status", entry.Status().String())
	return c.JSON(http.StatusOK, toLedgerEntryResponse(entry))
}
