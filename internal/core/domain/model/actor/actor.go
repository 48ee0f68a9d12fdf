package actor

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	ErrActorIsNotConstructed    = errs.NewValueIsRequiredError("actor must be created via NewActor")
	ErrRestaurantIDIsRequired   = errs.NewValueIsRequiredError("restaurant actor needs the id of the restaurant it owns")
	ErrRestaurantIDNotAllowed   = errs.NewValueIsInvalidError("only restaurant actors own a restaurant")
	ErrAdminHasNoLedgerIdentity = errs.NewPreconditionFailedError("admin is not a ledger party")
)

// Actor is the authenticated caller of a use case: who they are and what role
// they act in. A restaurant actor carries the restaurant it owns.
type Actor struct {
	id           kernel.UUID
	role         Role
	restaurantID *kernel.UUID
	guard        guard.ConstructorGuard
}

// NewActor creates an actor. restaurantID is required for the restaurant
// role and refused for every other one.
func NewActor(id kernel.UUID, role Role, restaurantID *kernel.UUID) (Actor, error) {
	if err := errors.Join(id.Validate(), role.Validate()); err != nil {
		return Actor{}, err
	}

	switch {
	case role == Restaurant && restaurantID == nil:
		return Actor{}, ErrRestaurantIDIsRequired
	case role == Restaurant:
		if err := restaurantID.Validate(); err != nil {
			return Actor{}, err
		}
	case restaurantID != nil:
		return Actor{}, ErrRestaurantIDNotAllowed
	}

	a := Actor{
		id:    id,
		role:  role,
		guard: guard.NewConstructorGuard(),
	}
	if restaurantID != nil {
		rid := *restaurantID
		a.restaurantID = &rid
	}
	return a, nil
}

func (a Actor) ID() kernel.UUID {
	return a.id
}

func (a Actor) Role() Role {
	return a.role
}

// RestaurantID is set only for restaurant actors.
func (a Actor) RestaurantID() (kernel.UUID, bool) {
	if a.restaurantID == nil {
		return kernel.UUID{}, false
	}
	return *a.restaurantID, true
}

func (a Actor) IsAdmin() bool {
	return a.role == Admin
}

func (a Actor) Is(role Role) bool {
	return a.role == role
}

// OwnsRestaurant reports whether a is the owner of restaurantID.
func (a Actor) OwnsRestaurant(restaurantID kernel.UUID) bool {
	return a.role == Restaurant && a.restaurantID != nil && a.restaurantID.IsEqual(restaurantID)
}

// Party is the ledger identity of the actor. Restaurants act through the
// restaurant they own, not through the owner's user id.
func (a Actor) Party() (kernel.Party, error) {
	switch a.role {
	case Customer:
		return kernel.Customer(a.id)
	case Restaurant:
		return kernel.Restaurant(*a.restaurantID)
	case DeliveryAgent:
		return kernel.DeliveryAgent(a.id)
	default:
		return kernel.Party{}, ErrAdminHasNoLedgerIdentity
	}
}

func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

func (a Actor) String() string {
	return a.role.String() + ":" + a.id.String()
}
