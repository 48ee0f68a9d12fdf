package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// RestaurantTerms is the slice of the catalog an order is priced against.
type RestaurantTerms struct {
	ID            kernel.UUID
	IsOpen        bool
	DeliveryFee   decimal.Decimal
	MinOrderValue decimal.Decimal
}

// Line is a requested product together with what the catalog says about it.
type Line struct {
	ProductID           kernel.UUID
	ProductRestaurantID kernel.UUID
	UnitPrice           decimal.Decimal
	Available           bool
	Quantity            int
}

type NewOrderParams struct {
	ID            kernel.UUID
	CustomerID    kernel.UUID
	Restaurant    RestaurantTerms
	Lines         []Line
	Address       string
	Location      *kernel.Location
	PaymentMethod kernel.PaymentMethod
	Now           time.Time
}

// Order is the aggregate root of the marketplace. Every status change goes
// through Transition, ConfirmDelivery or AssignDeliveryAgent so the role table
// and the delivered_at invariant hold.
type Order struct {
	id              kernel.UUID
	customerID      kernel.UUID
	restaurantID    kernel.UUID
	deliveryAgentID *kernel.UUID

	status        Status
	paymentMethod kernel.PaymentMethod
	paymentStatus PaymentStatus

	items       []Item
	address     string
	location    *kernel.Location
	deliveryFee decimal.Decimal
	totalAmount decimal.Decimal

	deliveryCode kernel.ConfirmationCode
	payoutCode   kernel.ConfirmationCode

	createdAt   time.Time
	updatedAt   time.Time
	deliveredAt *time.Time

	version int64
	events  []Event
	guard   guard.ConstructorGuard
}

// NewOrder prices the lines against the restaurant terms and opens a pending order.
// Rules are checked in order: closed restaurant, empty basket, per-line
// availability and ownership, then the minimum on the subtotal (fee excluded).
func NewOrder(p NewOrderParams) (*Order, error) {
	if err := errors.Join(
		p.ID.Validate(),
		p.CustomerID.Validate(),
		p.Restaurant.ID.Validate(),
		p.PaymentMethod.Validate(),
		validateAddress(p.Address),
		validateLocation(p.Location),
		validateFee(p.Restaurant.DeliveryFee),
	); err != nil {
		return nil, err
	}

	if !p.Restaurant.IsOpen {
		return nil, ErrRestaurantClosed
	}
	if len(p.Lines) == 0 {
		return nil, ErrEmptyOrder
	}

	items := make([]Item, 0, len(p.Lines))
	subtotal := decimal.Zero
	for _, line := range p.Lines {
		if !line.Available {
			return nil, fmt.Errorf("%w: %s", ErrProductUnavailable, line.ProductID)
		}
		if !line.ProductRestaurantID.IsEqual(p.Restaurant.ID) {
			return nil, fmt.Errorf("%w: %s belongs to another restaurant", ErrProductMismatch, line.ProductID)
		}
		item, err := NewItem(kernel.NewUUID(), line.ProductID, line.Quantity, line.UnitPrice)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		subtotal = subtotal.Add(item.Subtotal())
	}

	if subtotal.LessThan(p.Restaurant.MinOrderValue) {
		return nil, fmt.Errorf("%w: subtotal %s is less than %s",
			ErrBelowMinimum, subtotal.StringFixed(2), p.Restaurant.MinOrderValue.StringFixed(2))
	}

	deliveryCode, payoutCode, err := newCodePair()
	if err != nil {
		return nil, err
	}

	o := &Order{
		id:            p.ID,
		customerID:    p.CustomerID,
		restaurantID:  p.Restaurant.ID,
		status:        Pending,
		paymentMethod: p.PaymentMethod,
		paymentStatus: PaymentPending,
		items:         items,
		address:       strings.TrimSpace(p.Address),
		location:      p.Location,
		deliveryFee:   p.Restaurant.DeliveryFee,
		totalAmount:   subtotal.Add(p.Restaurant.DeliveryFee),
		deliveryCode:  deliveryCode,
		payoutCode:    payoutCode,
		createdAt:     p.Now,
		updatedAt:     p.Now,
		guard:         guard.NewConstructorGuard(),
	}
	o.record(EventCreated, p.Now)
	return o, nil
}

type RestoreOrderParams struct {
	ID              kernel.UUID
	CustomerID      kernel.UUID
	RestaurantID    kernel.UUID
	DeliveryAgentID *kernel.UUID
	Status          Status
	PaymentMethod   kernel.PaymentMethod
	PaymentStatus   PaymentStatus
	Items           []Item
	Address         string
	Location        *kernel.Location
	DeliveryFee     decimal.Decimal
	TotalAmount     decimal.Decimal
	DeliveryCode    kernel.ConfirmationCode
	PayoutCode      kernel.ConfirmationCode
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeliveredAt     *time.Time
	Version         int64
}

// RestoreOrder rebuilds an order from storage and rejects rows that break the
// aggregate's invariants.
func RestoreOrder(p RestoreOrderParams) (*Order, error) {
	var agentErr error
	if p.DeliveryAgentID != nil {
		agentErr = p.DeliveryAgentID.Validate()
	}

	if err := errors.Join(
		p.ID.Validate(),
		p.CustomerID.Validate(),
		p.RestaurantID.Validate(),
		agentErr,
		p.Status.Validate(),
		p.PaymentMethod.Validate(),
		p.PaymentStatus.Validate(),
		p.DeliveryCode.Validate(),
		p.PayoutCode.Validate(),
		validateLocation(p.Location),
		validateFee(p.DeliveryFee),
	); err != nil {
		return nil, err
	}

	if (p.DeliveredAt != nil) != (p.Status == Delivered) {
		return nil, errs.NewValueIsInvalidErrorWithCause("delivered_at",
			fmt.Errorf("must be set exactly when status is delivered, status is %s", p.Status))
	}
	if p.DeliveryAgentID == nil && p.Status.RequiresAgent() {
		return nil, errs.NewValueIsRequiredErrorWithCause("delivery agent",
			fmt.Errorf("status %s needs an agent", p.Status))
	}
	if p.DeliveryAgentID != nil && !p.Status.AllowsAgent() {
		return nil, errs.NewValueIsInvalidErrorWithCause("delivery agent",
			fmt.Errorf("status %s cannot have an agent", p.Status))
	}

	items := make([]Item, len(p.Items))
	copy(items, p.Items)

	return &Order{
		id:              p.ID,
		customerID:      p.CustomerID,
		restaurantID:    p.RestaurantID,
		deliveryAgentID: p.DeliveryAgentID,
		status:          p.Status,
		paymentMethod:   p.PaymentMethod,
		paymentStatus:   p.PaymentStatus,
		items:           items,
		address:         p.Address,
		location:        p.Location,
		deliveryFee:     p.DeliveryFee,
		totalAmount:     p.TotalAmount,
		deliveryCode:    p.DeliveryCode,
		payoutCode:      p.PayoutCode,
		createdAt:       p.CreatedAt,
		updatedAt:       p.UpdatedAt,
		deliveredAt:     p.DeliveredAt,
		version:         p.Version,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// CustomerID returns the customer who placed the order.
func (o *Order) CustomerID() kernel.UUID { return o.customerID }

// RestaurantID returns the restaurant that prepares the order.
func (o *Order) RestaurantID() kernel.UUID { return o.restaurantID }

// DeliveryAgentID is nil until an agent is assigned.
func (o *Order) DeliveryAgentID() *kernel.UUID { return o.deliveryAgentID }

// Status returns the lifecycle state.
func (o *Order) Status() Status { return o.status }

// PaymentMethod returns how the customer pays.
func (o *Order) PaymentMethod() kernel.PaymentMethod { return o.paymentMethod }

// PaymentStatus returns the state of an electronic payment. Cash orders
// stay pending.
func (o *Order) PaymentStatus() PaymentStatus { return o.paymentStatus }

// Address returns the delivery address as entered.
func (o *Order) Address() string { return o.address }

// Location is nil when the customer sent no coordinates.
func (o *Order) Location() *kernel.Location { return o.location }

// DeliveryFee returns the fee fixed at creation.
func (o *Order) DeliveryFee() decimal.Decimal { return o.deliveryFee }

// TotalAmount is the subtotal plus the delivery fee.
func (o *Order) TotalAmount() decimal.Decimal { return o.totalAmount }

// DeliveryCode returns the code the customer hands to the agent.
func (o *Order) DeliveryCode() kernel.ConfirmationCode { return o.deliveryCode }

// PayoutCode returns the code the agent hands to the restaurant.
func (o *Order) PayoutCode() kernel.ConfirmationCode { return o.payoutCode }

// CreatedAt returns the creation time.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// UpdatedAt returns the time of the last change.
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }

// DeliveredAt is nil until the order is delivered.
func (o *Order) DeliveredAt() *time.Time { return o.deliveredAt }

// Version is the optimistic lock value read from storage.
func (o *Order) Version() int64 { return o.version }

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	out := make([]Item, len(o.items))
	copy(out, o.items)
	return out
}

// Subtotal sums the line subtotals.
func (o *Order) Subtotal() decimal.Decimal {
	return o.totalAmount.Sub(o.deliveryFee)
}

// AdvanceVersion is called by the repository once a write guarded by Version succeeded.
func (o *Order) AdvanceVersion() {
	o.version++
}

// Transition moves the order to target on behalf of a.
//
// Checks run in a fixed order and stop at the first failure: ownership
// (ErrAccessDenied), the (role, status) row (ErrIllegalTransition), then the
// target within the row (ErrInvalidTargetStatus).
func (o *Order) Transition(a actor.Actor, target Status, now time.Time) error {
	if err := errors.Join(o.Validate(), a.Validate(), target.Validate()); err != nil {
		return err
	}
	if err := o.authorizeTransition(a); err != nil {
		return err
	}

	row, ok := transitions[transitionKey{role: a.Role(), from: o.status}]
	if !ok {
		return fmt.Errorf("%w: %s cannot modify an order in %s", ErrIllegalTransition, a.Role(), o.status)
	}
	if !row.contains(target) {
		return fmt.Errorf("%w: %s cannot move an order from %s to %s", ErrInvalidTargetStatus, a.Role(), o.status, target)
	}
	if target.RequiresAgent() && o.deliveryAgentID == nil {
		return fmt.Errorf("%w: %s requires an assigned agent", ErrAgentNotAssigned, target)
	}

	o.advance(target, now)
	return nil
}

func (o *Order) authorizeTransition(a actor.Actor) error {
	switch a.Role() {
	case actor.Admin:
		return nil
	case actor.Restaurant:
		if a.OwnsRestaurant(o.restaurantID) {
			return nil
		}
		return fmt.Errorf("%w: restaurant does not own order %s", ErrAccessDenied, o.id)
	case actor.DeliveryAgent:
		if o.isAssignedTo(a.ID()) {
			return nil
		}
		return fmt.Errorf("%w: agent is not assigned to order %s", ErrAccessDenied, o.id)
	default:
		return fmt.Errorf("%w: %s cannot change order status", ErrAccessDenied, a.Role())
	}
}

// AssignDeliveryAgent sets the agent once, while the order is ready. Agents
// may only assign themselves; admins may assign anyone.
func (o *Order) AssignDeliveryAgent(a actor.Actor, agentID kernel.UUID, now time.Time) error {
	if err := errors.Join(o.Validate(), a.Validate(), agentID.Validate()); err != nil {
		return err
	}

	switch {
	case a.IsAdmin():
	case a.Is(actor.DeliveryAgent) && a.ID().IsEqual(agentID):
	case a.Is(actor.DeliveryAgent):
		return fmt.Errorf("%w: agents can only assign themselves", ErrAccessDenied)
	default:
		return fmt.Errorf("%w: %s cannot assign delivery agents", ErrAccessDenied, a.Role())
	}

	if o.status != Ready {
		return fmt.Errorf("%w: agents are assigned in ready, order is %s", ErrIllegalTransition, o.status)
	}
	if o.deliveryAgentID != nil {
		return ErrAgentAlreadyAssigned
	}

	id := agentID
	o.deliveryAgentID = &id
	o.updatedAt = now
	o.record(EventAgentAssigned, now)
	return nil
}

// ConfirmDelivery is the hand-off at the door: the customer or the assigned
// agent presents the delivery code and the order becomes delivered.
// Non-cash orders are marked paid here; cash orders are settled by the caller.
func (o *Order) ConfirmDelivery(a actor.Actor, code string, now time.Time) error {
	if err := errors.Join(o.Validate(), a.Validate()); err != nil {
		return err
	}

	isCustomer := a.Is(actor.Customer) && a.ID().IsEqual(o.customerID)
	isAgent := a.Is(actor.DeliveryAgent) && o.isAssignedTo(a.ID())
	if !isCustomer && !isAgent {
		return fmt.Errorf("%w: only the customer or the assigned agent confirm delivery", ErrAccessDenied)
	}
	if !o.deliveryCode.Matches(code) {
		return ErrInvalidDeliveryCode
	}
	if o.status != PickedUp {
		return fmt.Errorf("%w: delivery is confirmed from picked_up, order is %s", ErrIllegalTransition, o.status)
	}

	o.advance(Delivered, now)
	if o.paymentMethod != kernel.Cash && o.paymentStatus != PaymentPaid {
		o.paymentStatus = PaymentPaid
		o.record(EventPaymentUpdated, now)
	}
	return nil
}

// VerifyPayoutCode checks that a is the owning restaurant and presents the payout code.
func (o *Order) VerifyPayoutCode(a actor.Actor, code string) error {
	if err := errors.Join(o.Validate(), a.Validate()); err != nil {
		return err
	}
	if !a.OwnsRestaurant(o.restaurantID) {
		return fmt.Errorf("%w: only the owning restaurant confirms its payout", ErrAccessDenied)
	}
	if !o.payoutCode.Matches(code) {
		return ErrInvalidPayoutCode
	}
	return nil
}

// StartElectronicPayment checks that a may pay this order through a gateway.
// A failed payment may be retried; it goes back to pending.
func (o *Order) StartElectronicPayment(a actor.Actor, now time.Time) error {
	if err := errors.Join(o.Validate(), a.Validate()); err != nil {
		return err
	}
	if !a.Is(actor.Customer) || !a.ID().IsEqual(o.customerID) {
		return fmt.Errorf("%w: only the ordering customer pays", ErrAccessDenied)
	}
	if !o.paymentMethod.IsElectronic() {
		return ErrPaymentNotOnline
	}
	if o.status == Cancelled {
		return ErrOrderCancelled
	}
	if o.paymentStatus == PaymentPaid {
		return ErrAlreadyPaid
	}

	if o.paymentStatus != PaymentPending {
		o.paymentStatus = PaymentPending
		o.updatedAt = now
		o.record(EventPaymentUpdated, now)
	}
	return nil
}

// MarkPaid records a successful gateway payment.
func (o *Order) MarkPaid(now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if o.paymentStatus == PaymentPaid {
		return nil
	}
	o.paymentStatus = PaymentPaid
	o.updatedAt = now
	o.record(EventPaymentUpdated, now)
	return nil
}

// MarkPaymentFailed records a failed or expired gateway payment. A paid order stays paid.
func (o *Order) MarkPaymentFailed(now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if o.paymentStatus != PaymentPending {
		return nil
	}
	o.paymentStatus = PaymentFailed
	o.updatedAt = now
	o.record(EventPaymentUpdated, now)
	return nil
}

// RequiresCashSettlement reports whether the ledger legs for a cash drop-off are due.
func (o *Order) RequiresCashSettlement() bool {
	return o.status == Delivered && o.paymentMethod == kernel.Cash
}

// CanBeViewedBy reports whether a is a party to the order or an admin.
func (o *Order) CanBeViewedBy(a actor.Actor) bool {
	switch a.Role() {
	case actor.Admin:
		return true
	case actor.Customer:
		return a.ID().IsEqual(o.customerID)
	case actor.Restaurant:
		return a.OwnsRestaurant(o.restaurantID)
	case actor.DeliveryAgent:
		return o.isAssignedTo(a.ID())
	default:
		return false
	}
}

// DomainEvents returns the events raised since the last clear.
func (o *Order) DomainEvents() []Event {
	out := make([]Event, len(o.events))
	copy(out, o.events)
	return out
}

// ClearDomainEvents drops the raised events once they are published.
func (o *Order) ClearDomainEvents() {
	o.events = nil
}

// advance is the only place status changes. delivered_at is written here and
// nowhere else, and only once.
func (o *Order) advance(target Status, now time.Time) {
	o.status = target
	o.updatedAt = now
	if target == Delivered && o.deliveredAt == nil {
		at := now
		o.deliveredAt = &at
	}
	o.record(EventStatusChanged, now)
}

func (o *Order) isAssignedTo(agentID kernel.UUID) bool {
	return o.deliveryAgentID != nil && o.deliveryAgentID.IsEqual(agentID)
}

func (o *Order) record(kind EventKind, now time.Time) {
	var agent *kernel.UUID
	if o.deliveryAgentID != nil {
		id := *o.deliveryAgentID
		agent = &id
	}
	o.events = append(o.events, Event{
		Kind:            kind,
		OrderID:         o.id,
		CustomerID:      o.customerID,
		RestaurantID:    o.restaurantID,
		DeliveryAgentID: agent,
		Status:          o.status,
		PaymentStatus:   o.paymentStatus,
		OccurredAt:      now,
	})
}

func newCodePair() (kernel.ConfirmationCode, kernel.ConfirmationCode, error) {
	delivery, err := kernel.NewConfirmationCode()
	if err != nil {
		return kernel.ConfirmationCode{}, kernel.ConfirmationCode{}, err
	}
	for {
		payout, err := kernel.NewConfirmationCode()
		if err != nil {
			return kernel.ConfirmationCode{}, kernel.ConfirmationCode{}, err
		}
		if !payout.IsEqual(delivery) {
			return delivery, payout, nil
		}
	}
}

func validateAddress(address string) error {
	if strings.TrimSpace(address) == "" {
		return errs.NewValueIsRequiredError("delivery address")
	}
	return nil
}

func validateLocation(loc *kernel.Location) error {
	if loc == nil {
		return nil
	}
	return loc.Validate()
}

func validateFee(fee decimal.Decimal) error {
	if fee.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("delivery fee", fmt.Errorf("%s is negative", fee))
	}
	return nil
}
