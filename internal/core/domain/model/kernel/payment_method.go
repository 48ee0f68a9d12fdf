package kernel

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// PaymentMethod is how the customer pays for an order. Cash is settled through
// the ledger at drop-off; the rest go through a mobile-money gateway.
type PaymentMethod int

const (
	UnknownPaymentMethod PaymentMethod = iota
	Cash
	Bankily
	Masrafi
	Sadad
)

func getPaymentMethodStrings() map[PaymentMethod]string {
	return map[PaymentMethod]string{
		UnknownPaymentMethod: "unknown",
		Cash:                 "cash",
		Bankily:              "bankily",
		Masrafi:              "masrafi",
		Sadad:                "sadad",
	}
}

func getValidPaymentMethodStrings() map[PaymentMethod]string {
	//nolint:exhaustive // UnknownPaymentMethod is intentionally excluded as it's invalid
	return map[PaymentMethod]string{
		Cash:    "cash",
		Bankily: "bankily",
		Masrafi: "masrafi",
		Sadad:   "sadad",
	}
}

// ParsePaymentMethod accepts the wire and storage name of a method.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	for m, name := range getValidPaymentMethodStrings() {
		if name == s {
			return m, nil
		}
	}
	return UnknownPaymentMethod, errs.NewValueIsInvalidErrorWithCause("payment method is invalid",
		fmt.Errorf("%q is not a valid payment method", s))
}

func (m PaymentMethod) Validate() error {
	if _, ok := getValidPaymentMethodStrings()[m]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("payment method is invalid", fmt.Errorf("%d is not a valid payment method", m))
	}
	return nil
}

// IsElectronic reports whether the method is paid through the gateway.
func (m PaymentMethod) IsElectronic() bool {
	return m == Bankily || m == Masrafi || m == Sadad
}

func (m PaymentMethod) String() string {
	if str, ok := getPaymentMethodStrings()[m]; ok {
		return str
	}
	return "unknown"
}
