package postgres

import (
	"fmt"

	"marketplace/internal/adapters/out/postgres/catalogrepo"
	"marketplace/internal/adapters/out/postgres/ledgerrepo"
	"marketplace/internal/adapters/out/postgres/orderrepo"

	"gorm.io/gorm"
)

// Migrate creates or alters every table the service reads or writes.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&catalogrepo.RestaurantDTO{},
		&catalogrepo.CategoryDTO{},
		&catalogrepo.ProductDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&ledgerrepo.EntryDTO{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
