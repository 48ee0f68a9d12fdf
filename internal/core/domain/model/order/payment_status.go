package order

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// PaymentStatus tracks whether the customer has paid. For cash orders it only
// flips when a delivery is confirmed; the ledger is the record of the money.
type PaymentStatus int

const (
	UnknownPaymentStatus PaymentStatus = iota
	PaymentPending
	PaymentPaid
	PaymentFailed
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		UnknownPaymentStatus: "unknown",
		PaymentPending:       "pending",
		PaymentPaid:          "paid",
		PaymentFailed:        "failed",
	}
}

func getValidPaymentStatusStrings() map[PaymentStatus]string {
	//nolint:exhaustive // UnknownPaymentStatus is intentionally excluded as it's invalid
	return map[PaymentStatus]string{
		PaymentPending: "pending",
		PaymentPaid:    "paid",
		PaymentFailed:  "failed",
	}
}

// ParsePaymentStatus accepts the wire and storage name of a payment status.
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	for st, name := range getValidPaymentStatusStrings() {
		if name == s {
			return st, nil
		}
	}
	return UnknownPaymentStatus, errs.NewValueIsInvalidErrorWithCause("payment status is invalid",
		fmt.Errorf("%q is not a valid payment status", s))
}

func (s PaymentStatus) Validate() error {
	if _, ok := getValidPaymentStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("payment status is invalid",
			fmt.Errorf("%d is not a valid payment status", s))
	}
	return nil
}

func (s PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}
