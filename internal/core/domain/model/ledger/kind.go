package ledger

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

type Kind int

const (
	UnknownKind Kind = iota
	Payment
	Transfer
	Withdrawal
	Commission
)

func getKindStrings() map[Kind]string {
	return map[Kind]string{
		UnknownKind: "unknown",
		Payment:     "payment",
		Transfer:    "transfer",
		Withdrawal:  "withdrawal",
		Commission:  "commission",
	}
}

// ParseKind accepts the storage name of a kind.
func ParseKind(s string) (Kind, error) {
	for k, name := range getKindStrings() {
		if k != UnknownKind && name == s {
			return k, nil
		}
	}
	return UnknownKind, errs.NewValueIsInvalidErrorWithCause("kind is invalid", fmt.Errorf("%q is not a valid kind", s))
}

func (k Kind) Validate() error {
	if k <= UnknownKind || k > Commission {
		return errs.NewValueIsInvalidErrorWithCause("kind is invalid", fmt.Errorf("%d is not a valid kind", k))
	}
	return nil
}

func (k Kind) String() string {
	if str, ok := getKindStrings()[k]; ok {
		return str
	}
	return "unknown"
}

type Status int

const (
	UnknownStatus Status = iota
	Pending
	Success
	Failed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		UnknownStatus: "unknown",
		Pending:       "pending",
		Success:       "success",
		Failed:        "failed",
	}
}

// ParseStatus accepts the storage name of an entry status.
func ParseStatus(s string) (Status, error) {
	for st, name := range getStatusStrings() {
		if st != UnknownStatus && name == s {
			return st, nil
		}
	}
	return UnknownStatus, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) Validate() error {
	if s <= UnknownStatus || s > Failed {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}
