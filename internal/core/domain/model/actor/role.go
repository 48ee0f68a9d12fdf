package actor

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Role is the closed set of identities a bearer token can resolve to.
type Role int

const (
	UnknownRole Role = iota
	Customer
	Restaurant
	DeliveryAgent
	Admin
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		UnknownRole:   "unknown",
		Customer:      "customer",
		Restaurant:    "restaurant",
		DeliveryAgent: "delivery_agent",
		Admin:         "admin",
	}
}

func getValidRoleStrings() map[Role]string {
	//nolint:exhaustive // UnknownRole is intentionally excluded as it's invalid
	return map[Role]string{
		Customer:      "customer",
		Restaurant:    "restaurant",
		DeliveryAgent: "delivery_agent",
		Admin:         "admin",
	}
}

// ParseRole accepts the role names carried in access tokens.
func ParseRole(s string) (Role, error) {
	for r, name := range getValidRoleStrings() {
		if name == s {
			return r, nil
		}
	}
	return UnknownRole, errs.NewValueIsInvalidErrorWithCause("role is invalid", fmt.Errorf("%q is not a valid role", s))
}

func (r Role) Validate() error {
	if _, ok := getValidRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role is invalid", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}
