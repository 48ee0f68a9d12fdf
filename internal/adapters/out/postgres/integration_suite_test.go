package postgres_test

import (
	"context"
	"time"

	postgres_adapter "marketplace/internal/adapters/out/postgres"
	"marketplace/internal/adapters/out/postgres/catalogrepo"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// databaseSuite starts one PostgreSQL container per suite and truncates
// every table before each test.
type databaseSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
}

func (s *databaseSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	s.Require().NoError(err)
	s.db = db

	s.Require().NoError(postgres_adapter.Migrate(db))
}

func (s *databaseSuite) SetupTest() {
	s.Require().NoError(s.db.Exec(
		"TRUNCATE TABLE ledger_entries, order_items, orders, products, categories, restaurants CASCADE",
	).Error)
}

func (s *databaseSuite) TearDownSuite() {
	if s.container != nil {
		s.Require().NoError(s.container.Terminate(context.Background()))
	}
}

type menu struct {
	restaurantID kernel.UUID
	ownerID      kernel.UUID
	productID    kernel.UUID
}

// seedMenu inserts an open restaurant (fee 100, minimum 500) with one 450 dish.
func (s *databaseSuite) seedMenu() menu {
	m := menu{restaurantID: kernel.NewUUID(), ownerID: kernel.NewUUID(), productID: kernel.NewUUID()}
	categoryID := uuid.New()

	s.Require().NoError(s.db.Create(&catalogrepo.RestaurantDTO{
		ID:            m.restaurantID.Bytes(),
		OwnerID:       m.ownerID.Bytes(),
		Name:          "Chez Fatou",
		IsOpen:        true,
		DeliveryFee:   decimal.NewFromInt(100),
		MinOrderValue: decimal.NewFromInt(500),
	}).Error)
	s.Require().NoError(s.db.Exec(
		"INSERT INTO categories (id, restaurant_id, name) VALUES (?, ?, ?)",
		categoryID, m.restaurantID.Bytes(), "Plats",
	).Error)
	s.Require().NoError(s.db.Exec(
		"INSERT INTO products (id, category_id, name, price, is_available) VALUES (?, ?, ?, ?, ?)",
		m.productID.Bytes(), categoryID, "Thieboudienne", decimal.NewFromInt(450), true,
	).Error)

	return m
}

// newOrder builds a pending order for 2 x 450 plus a fee of 100.
func (s *databaseSuite) newOrder(m menu, method kernel.PaymentMethod) *order.Order {
	loc, err := kernel.NewLocation(18.0735, -15.9582)
	s.Require().NoError(err)

	o, err := order.NewOrder(order.NewOrderParams{
		ID:         kernel.NewUUID(),
		CustomerID: kernel.NewUUID(),
		Restaurant: order.RestaurantTerms{
			ID:            m.restaurantID,
			IsOpen:        true,
			DeliveryFee:   decimal.NewFromInt(100),
			MinOrderValue: decimal.NewFromInt(500),
		},
		Lines: []order.Line{{
			ProductID:           m.productID,
			ProductRestaurantID: m.restaurantID,
			UnitPrice:           decimal.NewFromInt(450),
			Available:           true,
			Quantity:            2,
		}},
		Address:       "Tevragh Zeina, Nouakchott",
		Location:      &loc,
		PaymentMethod: method,
		Now:           time.Now().UTC().Truncate(time.Microsecond),
	})
	s.Require().NoError(err)
	return o
}
