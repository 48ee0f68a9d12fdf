package kernel

import (
	"errors"
	"fmt"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// PartyType is the kind of participant money can move between.
type PartyType int

const (
	UnknownParty PartyType = iota
	CustomerParty
	RestaurantParty
	DeliveryAgentParty
)

// ErrPartyIsNotConstructed is returned when using a zero-value Party.
var ErrPartyIsNotConstructed = errs.NewValueIsRequiredError("party must be created via NewParty")

func getPartyTypeStrings() map[PartyType]string {
	return map[PartyType]string{
		UnknownParty:       "unknown",
		CustomerParty:      "customer",
		RestaurantParty:    "restaurant",
		DeliveryAgentParty: "delivery_agent",
	}
}

func getValidPartyTypeStrings() map[PartyType]string {
	//nolint:exhaustive // UnknownParty is intentionally excluded as it's invalid
	return map[PartyType]string{
		CustomerParty:      "customer",
		RestaurantParty:    "restaurant",
		DeliveryAgentParty: "delivery_agent",
	}
}

// ParsePartyType accepts the persisted name of a party type.
func ParsePartyType(s string) (PartyType, error) {
	for t, name := range getValidPartyTypeStrings() {
		if name == s {
			return t, nil
		}
	}
	return UnknownParty, errs.NewValueIsInvalidErrorWithCause("party type is invalid", fmt.Errorf("%q is not a valid party type", s))
}

func (t PartyType) Validate() error {
	if _, ok := getValidPartyTypeStrings()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("party type is invalid", fmt.Errorf("%d is not a valid party type", t))
	}
	return nil
}

func (t PartyType) String() string {
	if str, ok := getPartyTypeStrings()[t]; ok {
		return str
	}
	return "unknown"
}

// Party is one side of a ledger movement.
type Party struct {
	partyType PartyType
	id        UUID
	guard     guard.ConstructorGuard
}

// NewParty creates a ledger party of the given type.
func NewParty(partyType PartyType, id UUID) (Party, error) {
	if err := errors.Join(partyType.Validate(), id.Validate()); err != nil {
		return Party{}, err
	}
	return Party{
		partyType: partyType,
		id:        id,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Customer, Restaurant and DeliveryAgent are shorthands for NewParty.
func Customer(id UUID) (Party, error)      { return NewParty(CustomerParty, id) }
func Restaurant(id UUID) (Party, error)    { return NewParty(RestaurantParty, id) }
func DeliveryAgent(id UUID) (Party, error) { return NewParty(DeliveryAgentParty, id) }

func (p Party) Type() PartyType {
	return p.partyType
}

func (p Party) ID() UUID {
	return p.id
}

// IsEqual compares type and id.
func (p Party) IsEqual(other Party) bool {
	return p.partyType == other.partyType && p.id.IsEqual(other.id)
}

func (p Party) Validate() error {
	return p.guard.Validate(ErrPartyIsNotConstructed)
}

func (p Party) String() string {
	return p.partyType.String() + ":" + p.id.String()
}
