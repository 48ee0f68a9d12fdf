// Package catalogrepo reads restaurants and products. The tables are owned by
// catalog management; the marketplace only reads them.
package catalogrepo

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RestaurantDTO struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OwnerID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	Name          string          `gorm:"type:varchar(120);not null"`
	IsOpen        bool            `gorm:"not null"`
	DeliveryFee   decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	MinOrderValue decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

func (RestaurantDTO) TableName() string {
	return "restaurants"
}

type CategoryDTO struct {
	ID           uuid.UUID     `gorm:"type:uuid;primaryKey"`
	RestaurantID uuid.UUID     `gorm:"type:uuid;not null;index"`
	Name         string        `gorm:"type:varchar(120);not null"`
	Restaurant   RestaurantDTO `gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE"`
}

func (CategoryDTO) TableName() string {
	return "categories"
}

type ProductDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CategoryID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name        string          `gorm:"type:varchar(120);not null"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	IsAvailable bool            `gorm:"not null"`
	Category    CategoryDTO     `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
}

func (ProductDTO) TableName() string {
	return "products"
}
