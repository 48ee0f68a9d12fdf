package ledger

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrEntryIsNotConstructed = errs.NewValueIsRequiredError("entry must be created via NewEntry or RestoreEntry")
	ErrEntryAlreadyResolved  = errs.NewPreconditionFailedError("entry already resolved")
	ErrSameParty             = errs.NewValueIsInvalidError("an entry cannot move money from a party to itself")
)

type EntryParams struct {
	ID             kernel.UUID
	From           kernel.Party
	To             kernel.Party
	Amount         decimal.Decimal
	Kind           Kind
	Method         kernel.PaymentMethod
	Status         Status
	OrderID        kernel.UUID
	TransactionRef string
	CreatedAt      time.Time
}

// Entry is one movement of money from one party to another.
type Entry struct {
	id             kernel.UUID
	from           kernel.Party
	to             kernel.Party
	amount         decimal.Decimal
	kind           Kind
	method         kernel.PaymentMethod
	status         Status
	orderID        kernel.UUID
	transactionRef string
	createdAt      time.Time
	guard          guard.ConstructorGuard
}

// NewEntry creates an entry. The amount must be positive and the parties
// distinct.
func NewEntry(p EntryParams) (*Entry, error) {
	var errAmount, errParties error
	if !p.Amount.IsPositive() {
		errAmount = errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%s is not greater than 0", p.Amount))
	}
	if p.From.IsEqual(p.To) {
		errParties = ErrSameParty
	}

	if err := errors.Join(
		p.ID.Validate(),
		p.From.Validate(),
		p.To.Validate(),
		p.Kind.Validate(),
		p.Method.Validate(),
		p.Status.Validate(),
		p.OrderID.Validate(),
		errAmount,
		errParties,
	); err != nil {
		return nil, err
	}

	return &Entry{
		id:             p.ID,
		from:           p.From,
		to:             p.To,
		amount:         p.Amount,
		kind:           p.Kind,
		method:         p.Method,
		status:         p.Status,
		orderID:        p.OrderID,
		transactionRef: p.TransactionRef,
		createdAt:      p.CreatedAt,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// RestoreEntry rebuilds an entry from storage with the same checks as NewEntry.
func RestoreEntry(p EntryParams) (*Entry, error) {
	return NewEntry(p)
}

func (e *Entry) Validate() error {
	if e == nil {
		return ErrEntryIsNotConstructed
	}
	return e.guard.Validate(ErrEntryIsNotConstructed)
}

func (e *Entry) ID() kernel.UUID              { return e.id }
func (e *Entry) From() kernel.Party           { return e.from }
func (e *Entry) To() kernel.Party             { return e.to }
func (e *Entry) Amount() decimal.Decimal      { return e.amount }
func (e *Entry) Kind() Kind                   { return e.kind }
func (e *Entry) Method() kernel.PaymentMethod { return e.method }
func (e *Entry) Status() Status               { return e.status }
func (e *Entry) OrderID() kernel.UUID         { return e.orderID }
func (e *Entry) TransactionRef() string       { return e.transactionRef }
func (e *Entry) CreatedAt() time.Time         { return e.createdAt }

// IsPending reports whether the entry still awaits settlement.
func (e *Entry) IsPending() bool {
	return e.status == Pending
}

// Succeed resolves a pending entry as settled.
func (e *Entry) Succeed() error {
	return e.resolve(Success)
}

// Fail resolves a pending entry as failed.
func (e *Entry) Fail() error {
	return e.resolve(Failed)
}

func (e *Entry) resolve(to Status) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if e.status != Pending {
		return fmt.Errorf("%w: entry %s is %s", ErrEntryAlreadyResolved, e.id, e.status)
	}
	e.status = to
	return nil
}
