package commands

import (
	"strings"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	ErrHandlePaymentCallbackCommandIsNotConstructed = errs.NewValueIsRequiredError(
		"HandlePaymentCallbackCommand must be created via NewHandlePaymentCallbackCommand constructor",
	)
	ErrTransactionRefIsRequired = errs.NewValueIsRequiredError("transaction reference")
)

// HandlePaymentCallbackCommand is a gateway verdict whose signature the
// transport has already verified.
type HandlePaymentCallbackCommand struct { //nolint:recvcheck //using for validation
	transactionRef string
	succeeded      bool

	guard guard.ConstructorGuard
}

// NewHandlePaymentCallbackCommand creates a validated command.
func NewHandlePaymentCallbackCommand(transactionRef string, succeeded bool) (HandlePaymentCallbackCommand, error) {
	transactionRef = strings.TrimSpace(transactionRef)
	if transactionRef == "" {
		return HandlePaymentCallbackCommand{}, ErrTransactionRefIsRequired
	}

	return HandlePaymentCallbackCommand{
		transactionRef: transactionRef,
		succeeded:      succeeded,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c HandlePaymentCallbackCommand) Validate() error {
	return c.guard.Validate(ErrHandlePaymentCallbackCommandIsNotConstructed)
}

func (c HandlePaymentCallbackCommand) TransactionRef() string { return c.transactionRef }
func (c HandlePaymentCallbackCommand) Succeeded() bool        { return c.succeeded }
