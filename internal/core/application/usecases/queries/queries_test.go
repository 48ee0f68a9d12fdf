package queries_test

import (
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustActor(t *testing.T, role actor.Role) actor.Actor {
	t.Helper()
	var rid *kernel.UUID
	if role == actor.Restaurant {
		id := kernel.NewUUID()
		rid = &id
	}
	a, err := actor.NewActor(kernel.NewUUID(), role, rid)
	require.NoError(t, err)
	return a
}

func TestNewGetBalanceQuery(t *testing.T) {
	t.Run("a customer reads their own party", func(t *testing.T) {
		customer := mustActor(t, actor.Customer)

		q, err := queries.NewGetBalanceQuery(customer, nil)

		require.NoError(t, err)
		require.NoError(t, q.Validate())
		assert.Equal(t, kernel.CustomerParty, q.Party().Type())
		assert.True(t, q.Party().ID().IsEqual(customer.ID()))
	})

	t.Run("a restaurant reads the restaurant it owns", func(t *testing.T) {
		owner := mustActor(t, actor.Restaurant)
		rid, _ := owner.RestaurantID()

		q, err := queries.NewGetBalanceQuery(owner, nil)

		require.NoError(t, err)
		assert.Equal(t, kernel.RestaurantParty, q.Party().Type())
		assert.True(t, q.Party().ID().IsEqual(rid))
	})

	t.Run("repeating the own party is allowed", func(t *testing.T) {
		agent := mustActor(t, actor.DeliveryAgent)
		own, err := agent.Party()
		require.NoError(t, err)

		_, err = queries.NewGetBalanceQuery(agent, &own)

		require.NoError(t, err)
	})

	t.Run("another party is denied to non admins", func(t *testing.T) {
		agent := mustActor(t, actor.DeliveryAgent)
		other, err := kernel.DeliveryAgent(kernel.NewUUID())
		require.NoError(t, err)

		_, err = queries.NewGetBalanceQuery(agent, &other)

		require.ErrorIs(t, err, errs.ErrAccessDenied)
	})

	t.Run("admins must name a party", func(t *testing.T) {
		admin := mustActor(t, actor.Admin)

		_, err := queries.NewGetBalanceQuery(admin, nil)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("admins read any party", func(t *testing.T) {
		admin := mustActor(t, actor.Admin)
		party, err := kernel.Restaurant(kernel.NewUUID())
		require.NoError(t, err)

		q, err := queries.NewGetBalanceQuery(admin, &party)

		require.NoError(t, err)
		assert.True(t, q.Party().IsEqual(party))
	})

	t.Run("a zero actor is rejected", func(t *testing.T) {
		_, err := queries.NewGetBalanceQuery(actor.Actor{}, nil)

		require.ErrorIs(t, err, actor.ErrActorIsNotConstructed)
	})
}

func TestNewListLedgerEntriesQuery(t *testing.T) {
	customer := mustActor(t, actor.Customer)

	t.Run("zero limit takes the default page size", func(t *testing.T) {
		q, err := queries.NewListLedgerEntriesQuery(customer, nil, 0, 0)

		require.NoError(t, err)
		assert.Equal(t, queries.DefaultLedgerPageSize, q.Limit())
		assert.Zero(t, q.Offset())
	})

	t.Run("limits outside the page bounds are rejected", func(t *testing.T) {
		for _, limit := range []int{-1, queries.MaxLedgerPageSize + 1} {
			_, err := queries.NewListLedgerEntriesQuery(customer, nil, limit, 0)
			require.ErrorIs(t, err, errs.ErrValueIsOutOfRange, limit)
		}
	})

	t.Run("negative offsets are rejected", func(t *testing.T) {
		_, err := queries.NewListLedgerEntriesQuery(customer, nil, 10, -5)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestNewGetAvailableOrdersQuery(t *testing.T) {
	t.Run("agents and admins may browse", func(t *testing.T) {
		for _, role := range []actor.Role{actor.DeliveryAgent, actor.Admin} {
			q, err := queries.NewGetAvailableOrdersQuery(mustActor(t, role), 0)
			require.NoError(t, err, role)
			assert.Equal(t, queries.MaxAvailableOrders, q.Limit())
		}
	})

	t.Run("customers and restaurants are denied", func(t *testing.T) {
		for _, role := range []actor.Role{actor.Customer, actor.Restaurant} {
			_, err := queries.NewGetAvailableOrdersQuery(mustActor(t, role), 10)
			require.ErrorIs(t, err, errs.ErrAccessDenied, role)
		}
	})

	t.Run("limit is bounded", func(t *testing.T) {
		_, err := queries.NewGetAvailableOrdersQuery(mustActor(t, actor.DeliveryAgent), queries.MaxAvailableOrders+1)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestNewGetOrderQuery(t *testing.T) {
	_, err := queries.NewGetOrderQuery(kernel.UUID{}, mustActor(t, actor.Customer))
	require.Error(t, err)

	q, err := queries.NewGetOrderQuery(kernel.NewUUID(), mustActor(t, actor.Customer))
	require.NoError(t, err)
	require.NoError(t, q.Validate())
	require.Error(t, queries.GetOrderQuery{}.Validate())
}

func TestNewGetOrderStatisticsQuery(t *testing.T) {
	now := time.Date(2026, 6, 10, 15, 30, 0, 0, time.UTC)
	admin := mustActor(t, actor.Admin)

	t.Run("periods reach back from now", func(t *testing.T) {
		tests := []struct {
			period string
			since  time.Time
		}{
			{"day", time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)},
			{"week", now.AddDate(0, 0, -7)},
			{"", now.AddDate(0, 0, -7)},
			{"month", now.AddDate(0, 0, -30)},
			{"year", now.AddDate(0, 0, -365)},
		}
		for _, tt := range tests {
			q, err := queries.NewGetOrderStatisticsQuery(admin, tt.period, now)

			require.NoError(t, err, tt.period)
			require.NoError(t, q.Validate())
			assert.True(t, tt.since.Equal(q.Since()), tt.period)
		}
	})

	t.Run("an empty period is a week", func(t *testing.T) {
		q, err := queries.NewGetOrderStatisticsQuery(admin, "", now)

		require.NoError(t, err)
		assert.Equal(t, queries.DefaultStatisticsPeriod, q.Period())
	})

	t.Run("unknown periods are rejected", func(t *testing.T) {
		_, err := queries.NewGetOrderStatisticsQuery(admin, "fortnight", now)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("each role is scoped to its own orders", func(t *testing.T) {
		customer := mustActor(t, actor.Customer)
		owner := mustActor(t, actor.Restaurant)
		rid, _ := owner.RestaurantID()
		agent := mustActor(t, actor.DeliveryAgent)

		tests := []struct {
			caller actor.Actor
			column string
			id     kernel.UUID
		}{
			{customer, "customer_id", customer.ID()},
			{owner, "restaurant_id", rid},
			{agent, "delivery_agent_id", agent.ID()},
		}
		for _, tt := range tests {
			q, err := queries.NewGetOrderStatisticsQuery(tt.caller, "week", now)
			require.NoError(t, err)

			column, id, ok := q.Scope()
			assert.True(t, ok, tt.column)
			assert.Equal(t, tt.column, column)
			assert.True(t, id.IsEqual(tt.id), tt.column)
		}

		q, err := queries.NewGetOrderStatisticsQuery(admin, "week", now)
		require.NoError(t, err)
		_, _, ok := q.Scope()
		assert.False(t, ok, "admins read every order")
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		require.ErrorIs(t, queries.GetOrderStatisticsQuery{}.Validate(), queries.ErrGetOrderStatisticsQueryIsNotConstructed)
	})
}
