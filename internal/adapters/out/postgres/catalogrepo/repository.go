package catalogrepo

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormCatalog implements ports.Catalog over the catalog tables.
type GormCatalog struct {
	db *gorm.DB
}

// NewGormCatalog creates a read-only catalog over the restaurant tables.
func NewGormCatalog(db *gorm.DB) *GormCatalog {
	return &GormCatalog{db: db}
}

// GetRestaurant returns ObjectNotFound for an unknown id.
func (c *GormCatalog) GetRestaurant(ctx context.Context, id kernel.UUID) (ports.RestaurantInfo, error) {
	return c.restaurant(ctx, "id = ?", id)
}

// GetRestaurantByOwner finds the restaurant owned by ownerID.
func (c *GormCatalog) GetRestaurantByOwner(ctx context.Context, ownerID kernel.UUID) (ports.RestaurantInfo, error) {
	return c.restaurant(ctx, "owner_id = ?", ownerID)
}

// GetProduct resolves the owning restaurant through the product's category.
func (c *GormCatalog) GetProduct(ctx context.Context, id kernel.UUID) (ports.ProductInfo, error) {
	if err := id.Validate(); err != nil {
		return ports.ProductInfo{}, err
	}

	var row struct {
		ID           uuid.UUID
		RestaurantID uuid.UUID
		Name         string
		Price        decimal.Decimal
		IsAvailable  bool
	}
	err := c.db.WithContext(ctx).
		Table("products p").
		Select("p.id, c.restaurant_id, p.name, p.price, p.is_available").
		Joins("JOIN categories c ON c.id = p.category_id").
		Where("p.id = ?", id.Bytes()).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.ProductInfo{}, errs.NewObjectNotFoundError("product", id.String())
		}
		return ports.ProductInfo{}, err
	}

	productID, errProduct := kernel.UUIDFromBytes(row.ID[:])
	restaurantID, errRestaurant := kernel.UUIDFromBytes(row.RestaurantID[:])
	if err = errors.Join(errProduct, errRestaurant); err != nil {
		return ports.ProductInfo{}, err
	}

	return ports.ProductInfo{
		ID:           productID,
		RestaurantID: restaurantID,
		Name:         row.Name,
		Price:        row.Price,
		IsAvailable:  row.IsAvailable,
	}, nil
}

func (c *GormCatalog) restaurant(ctx context.Context, where string, id kernel.UUID) (ports.RestaurantInfo, error) {
	if err := id.Validate(); err != nil {
		return ports.RestaurantInfo{}, err
	}

	var dto RestaurantDTO
	if err := c.db.WithContext(ctx).Where(where, id.Bytes()).Take(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.RestaurantInfo{}, errs.NewObjectNotFoundError("restaurant", id.String())
		}
		return ports.RestaurantInfo{}, err
	}

	restaurantID, errID := kernel.UUIDFromBytes(dto.ID[:])
	ownerID, errOwner := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err := errors.Join(errID, errOwner); err != nil {
		return ports.RestaurantInfo{}, err
	}

	return ports.RestaurantInfo{
		ID:            restaurantID,
		OwnerID:       ownerID,
		Name:          dto.Name,
		IsOpen:        dto.IsOpen,
		DeliveryFee:   dto.DeliveryFee,
		MinOrderValue: dto.MinOrderValue,
	}, nil
}
