package order

import "marketplace/internal/pkg/errs"

var (
	ErrOrderIsNotConstructed = errs.NewValueIsRequiredError("order must be created via NewOrder or RestoreOrder")

	ErrAccessDenied = errs.NewAccessDeniedError("actor may not act on this order")

	ErrIllegalTransition    = errs.NewPreconditionFailedError("illegal transition")
	ErrInvalidTargetStatus  = errs.NewPreconditionFailedError("invalid target status")
	ErrAgentAlreadyAssigned = errs.NewPreconditionFailedError("delivery agent already assigned")
	ErrAgentNotAssigned     = errs.NewPreconditionFailedError("delivery agent not assigned")
	ErrOrderCancelled       = errs.NewPreconditionFailedError("order is cancelled")
	ErrAlreadyPaid          = errs.NewPreconditionFailedError("order is already paid")

	ErrRestaurantClosed   = errs.NewBusinessRuleViolationError("restaurant closed")
	ErrEmptyOrder         = errs.NewBusinessRuleViolationError("empty order")
	ErrProductUnavailable = errs.NewBusinessRuleViolationError("product unavailable")
	ErrProductMismatch    = errs.NewBusinessRuleViolationError("product mismatch")
	ErrBelowMinimum       = errs.NewBusinessRuleViolationError("below minimum")
	ErrPaymentNotOnline   = errs.NewBusinessRuleViolationError("cash orders are not paid online")

	ErrInvalidDeliveryCode = errs.NewValueIsInvalidError("delivery code")
	ErrInvalidPayoutCode   = errs.NewValueIsInvalidError("payout code")
)
