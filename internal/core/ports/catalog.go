package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

type RestaurantInfo struct {
	ID            kernel.UUID
	OwnerID       kernel.UUID
	Name          string
	IsOpen        bool
	DeliveryFee   decimal.Decimal
	MinOrderValue decimal.Decimal
}

type ProductInfo struct {
	ID           kernel.UUID
	RestaurantID kernel.UUID
	Name         string
	Price        decimal.Decimal
	IsAvailable  bool
}

// Catalog is the read side of restaurant and menu management, which lives
// outside the core. Unknown ids yield errs.ErrObjectNotFound.
type Catalog interface {
	GetRestaurant(ctx context.Context, id kernel.UUID) (RestaurantInfo, error)
	GetRestaurantByOwner(ctx context.Context, ownerID kernel.UUID) (RestaurantInfo, error)
	// GetProduct resolves the product's restaurant through its category.
	GetProduct(ctx context.Context, id kernel.UUID) (ProductInfo, error)
}
