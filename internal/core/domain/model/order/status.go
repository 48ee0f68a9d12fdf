package order

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
//	pending ─> confirmed ─> preparing ─> ready ─> picked_up ─> delivered
//	   │           │            │          │          │
//	   └───────────┴────────────┴──────────┴──────────┴──> cancelled
//
// Who may take each edge is decided by the transition table, not by Status.
type Status int

const (
	// Unknown (0) catches uninitialized values.
	Unknown Status = iota
	Pending
	Confirmed
	Preparing
	Ready
	PickedUp
	Delivered
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		Confirmed: "confirmed",
		Preparing: "preparing",
		Ready:     "ready",
		PickedUp:  "picked_up",
		Delivered: "delivered",
		Cancelled: "cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "pending",
		Confirmed: "confirmed",
		Preparing: "preparing",
		Ready:     "ready",
		PickedUp:  "picked_up",
		Delivered: "delivered",
		Cancelled: "cancelled",
	}
}

// ParseStatus accepts the wire and storage name of a status.
func ParseStatus(s string) (Status, error) {
	for st, name := range getValidStatusStrings() {
		if name == s {
			return st, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// RequiresAgent reports whether an order in s must have a delivery agent.
func (s Status) RequiresAgent() bool {
	return s == PickedUp || s == Delivered
}

// AllowsAgent reports whether an order in s may have a delivery agent.
func (s Status) AllowsAgent() bool {
	return s == Ready || s == PickedUp || s == Delivered || s == Cancelled
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}
