package http

import (
	"errors"
	"net/http"

	"marketplace/internal/adapters/out/gateway"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

type errorMapping struct {
	target error
	status int
	code   string
}

// Checked in order; the first match wins.
var errorMappings = []errorMapping{
	{errs.ErrValueIsRequired, http.StatusBadRequest, "validation_error"},
	{errs.ErrValueIsOutOfRange, http.StatusBadRequest, "validation_error"},
	{errs.ErrValueIsInvalid, http.StatusBadRequest, "validation_error"},
	{gateway.ErrInvalidSignature, http.StatusUnauthorized, "invalid_signature"},
	{errs.ErrAccessDenied, http.StatusForbidden, "access_denied"},
	{errs.ErrObjectNotFound, http.StatusNotFound, "not_found"},
	{errs.ErrPreconditionFailed, http.StatusBadRequest, "precondition_failed"},
	{errs.ErrBusinessRuleViolation, http.StatusBadRequest, "business_rule_violation"},
	{errs.ErrVersionIsInvalid, http.StatusConflict, "conflict"},
}

func statusOf(err error) (int, string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.status, m.code
		}
	}
	return http.StatusInternalServerError, "internal_error"
}

func writeError(c echo.Context, err error) error {
	status, code := statusOf(err)
	if status == http.StatusInternalServerError {
		c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Path(), err)
		return c.JSON(status, ErrorResponse{Code: code, Message: http.StatusText(status)})
	}
	return c.JSON(status, ErrorResponse{Code: code, Message: err.Error()})
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Code: "validation_error", Message: message})
}
