package kernel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

func TestParsePartyType(t *testing.T) {
	cases := map[string]kernel.PartyType{
		"customer":       kernel.CustomerParty,
		"restaurant":     kernel.RestaurantParty,
		"delivery_agent": kernel.DeliveryAgentParty,
	}
	for name, want := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := kernel.ParsePartyType(name)
			require.NoError(t, err)
			assert.Equal(t, want, got)
			assert.Equal(t, name, got.String())
		})
	}

	t.Run("should reject unknown names", func(t *testing.T) {
		_, err := kernel.ParsePartyType("admin")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestNewParty(t *testing.T) {
	t.Run("should create a party", func(t *testing.T) {
		id := kernel.NewUUID()

		p, err := kernel.Restaurant(id)

		require.NoError(t, err)
		assert.Equal(t, kernel.RestaurantParty, p.Type())
		assert.True(t, p.ID().IsEqual(id))
		assert.NoError(t, p.Validate())
		assert.Equal(t, "restaurant:"+id.String(), p.String())
	})

	t.Run("should reject unknown type and empty id together", func(t *testing.T) {
		_, err := kernel.NewParty(kernel.UnknownParty, kernel.UUID{})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var p kernel.Party
		assert.Equal(t, kernel.ErrPartyIsNotConstructed, p.Validate())
	})
}

func TestParty_IsEqual(t *testing.T) {
	id := kernel.NewUUID()
	asCustomer, _ := kernel.Customer(id)
	asAgent, _ := kernel.DeliveryAgent(id)
	again, _ := kernel.Customer(id)

	assert.True(t, asCustomer.IsEqual(again))
	assert.False(t, asCustomer.IsEqual(asAgent), "same id under another type is a different party")
}

func TestParsePaymentMethod(t *testing.T) {
	for _, name := range []string{"cash", "bankily", "masrafi", "sadad"} {
		t.Run(name, func(t *testing.T) {
			m, err := kernel.ParsePaymentMethod(name)
			require.NoError(t, err)
			assert.Equal(t, name, m.String())
			assert.Equal(t, name != "cash", m.IsElectronic())
		})
	}

	t.Run("should reject card", func(t *testing.T) {
		_, err := kernel.ParsePaymentMethod("card")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
