package ledger_test

import (
	"testing"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/ledger"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestCalculateBalance(t *testing.T) {
	restaurant := mustParty(t, kernel.RestaurantParty)
	agent := mustParty(t, kernel.DeliveryAgentParty)
	customer := mustParty(t, kernel.CustomerParty)

	t.Run("empty ledger", func(t *testing.T) {
		b := ledger.CalculateBalance(restaurant, nil)
		assert.True(t, b.Available.IsZero())
		assert.True(t, b.Pending.IsZero())
	})

	t.Run("available is settled in minus settled out", func(t *testing.T) {
		movements := []ledger.Movement{
			{From: customer, To: agent, Amount: dec("10.50"), Status: ledger.Success},
			{From: customer, To: agent, Amount: dec("20"), Status: ledger.Success},
			{From: customer, To: agent, Amount: dec("5.25"), Status: ledger.Success},
			{From: agent, To: restaurant, Amount: dec("7"), Status: ledger.Success},
			{From: agent, To: restaurant, Amount: dec("3.10"), Status: ledger.Success},
		}

		b := ledger.CalculateBalance(agent, movements)

		assert.True(t, b.Available.Equal(dec("25.65")), b.Available.String())
		assert.True(t, b.Pending.IsZero())
	})

	t.Run("pending counts incoming only", func(t *testing.T) {
		movements := []ledger.Movement{
			{From: agent, To: restaurant, Amount: dec("800"), Status: ledger.Pending},
		}

		assert.True(t, ledger.CalculateBalance(restaurant, movements).Pending.Equal(dec("800")))
		assert.True(t, ledger.CalculateBalance(agent, movements).Pending.IsZero())
		assert.True(t, ledger.CalculateBalance(agent, movements).Available.IsZero())
	})

	t.Run("failed movements are ignored", func(t *testing.T) {
		movements := []ledger.Movement{
			{From: customer, To: restaurant, Amount: dec("300"), Status: ledger.Failed},
		}

		b := ledger.CalculateBalance(restaurant, movements)

		assert.True(t, b.Available.IsZero())
		assert.True(t, b.Pending.IsZero())
	})

	t.Run("cash delivery scenario", func(t *testing.T) {
		movements := []ledger.Movement{
			{From: customer, To: agent, Amount: dec("1000"), Status: ledger.Success},
			{From: agent, To: restaurant, Amount: dec("800"), Status: ledger.Pending},
		}
		before := ledger.CalculateBalance(restaurant, movements)
		assert.True(t, before.Pending.Equal(dec("800")))
		assert.True(t, before.Available.IsZero())

		movements[1].Status = ledger.Success
		after := ledger.CalculateBalance(restaurant, movements)
		assert.True(t, after.Available.Equal(dec("800")))
		assert.True(t, after.Pending.IsZero())

		agentBalance := ledger.CalculateBalance(agent, movements)
		assert.True(t, agentBalance.Available.Equal(dec("200")), "agent keeps commission plus fee in hand")
	})

	t.Run("is a pure read", func(t *testing.T) {
		movements := []ledger.Movement{
			{From: customer, To: restaurant, Amount: dec("12"), Status: ledger.Success},
			{From: restaurant, To: agent, Amount: dec("2"), Status: ledger.Success},
		}
		first := ledger.CalculateBalance(restaurant, movements)
		second := ledger.CalculateBalance(restaurant, movements)
		reversed := ledger.CalculateBalance(restaurant, []ledger.Movement{movements[1], movements[0]})

		assert.Equal(t, first.Available.String(), second.Available.String())
		assert.Equal(t, first.Available.String(), reversed.Available.String())
		assert.True(t, first.Available.Equal(dec("10")))
	})

	t.Run("same id under another party type does not count", func(t *testing.T) {
		sameIDAsRestaurant, _ := kernel.NewParty(kernel.CustomerParty, restaurant.ID())
		movements := []ledger.Movement{
			{From: agent, To: sameIDAsRestaurant, Amount: dec("50"), Status: ledger.Success},
		}

		assert.True(t, ledger.CalculateBalance(restaurant, movements).Available.IsZero())
	})
}
