// Package orderrepo maps the order aggregate and its items onto the orders and
// order_items tables.
package orderrepo

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is a row of the orders table. Version backs the optimistic check
// in Update; timestamps are owned by the aggregate, not by GORM.
type OrderDTO struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CustomerID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	RestaurantID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	DeliveryAgentID *uuid.UUID      `gorm:"type:uuid;index"`
	Status          string          `gorm:"type:varchar(20);not null;index"`
	PaymentMethod   string          `gorm:"type:varchar(20);not null"`
	PaymentStatus   string          `gorm:"type:varchar(20);not null"`
	Address         string          `gorm:"type:text;not null"`
	Location        LocationDTO     `gorm:"embedded;embeddedPrefix:location_"`
	DeliveryFee     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	TotalAmount     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	DeliveryCode    string          `gorm:"type:char(4);not null"`
	PayoutCode      string          `gorm:"type:char(4);not null"`
	CreatedAt       time.Time       `gorm:"not null;autoCreateTime:false;index"`
	UpdatedAt       time.Time       `gorm:"not null;autoUpdateTime:false"`
	DeliveredAt     *time.Time
	Version         int64          `gorm:"not null;default:0"`
	Items           []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// LocationDTO is optional; both columns are null when the customer sent no pin.
type LocationDTO struct {
	Latitude  *float64 `gorm:"type:double precision"`
	Longitude *float64 `gorm:"type:double precision"`
}

type OrderItemDTO struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position  int             `gorm:"not null"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(o *order.Order) OrderDTO {
	var agentID *uuid.UUID
	if id := o.DeliveryAgentID(); id != nil {
		raw := id.Bytes()
		agentID = &raw
	}

	var loc LocationDTO
	if l := o.Location(); l != nil {
		lat, lng := l.Latitude(), l.Longitude()
		loc = LocationDTO{Latitude: &lat, Longitude: &lng}
	}

	items := o.Items()
	itemDTOs := make([]OrderItemDTO, 0, len(items))
	for i, it := range items {
		itemDTOs = append(itemDTOs, OrderItemDTO{
			ID:        it.ID().Bytes(),
			OrderID:   o.ID().Bytes(),
			Position:  i,
			ProductID: it.ProductID().Bytes(),
			Quantity:  it.Quantity(),
			UnitPrice: it.UnitPrice(),
		})
	}

	return OrderDTO{
		ID:              o.ID().Bytes(),
		CustomerID:      o.CustomerID().Bytes(),
		RestaurantID:    o.RestaurantID().Bytes(),
		DeliveryAgentID: agentID,
		Status:          o.Status().String(),
		PaymentMethod:   o.PaymentMethod().String(),
		PaymentStatus:   o.PaymentStatus().String(),
		Address:         o.Address(),
		Location:        loc,
		DeliveryFee:     o.DeliveryFee(),
		TotalAmount:     o.TotalAmount(),
		DeliveryCode:    o.DeliveryCode().String(),
		PayoutCode:      o.PayoutCode().String(),
		CreatedAt:       o.CreatedAt(),
		UpdatedAt:       o.UpdatedAt(),
		DeliveredAt:     o.DeliveredAt(),
		Version:         o.Version(),
		Items:           itemDTOs,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, errID := kernel.UUIDFromBytes(dto.ID[:])
	customerID, errCustomer := kernel.UUIDFromBytes(dto.CustomerID[:])
	restaurantID, errRestaurant := kernel.UUIDFromBytes(dto.RestaurantID[:])
	status, errStatus := order.ParseStatus(dto.Status)
	method, errMethod := kernel.ParsePaymentMethod(dto.PaymentMethod)
	paymentStatus, errPayment := order.ParsePaymentStatus(dto.PaymentStatus)
	deliveryCode, errDelivery := kernel.RestoreConfirmationCode(dto.DeliveryCode)
	payoutCode, errPayout := kernel.RestoreConfirmationCode(dto.PayoutCode)
	if err := errors.Join(errID, errCustomer, errRestaurant, errStatus, errMethod, errPayment, errDelivery, errPayout); err != nil {
		return nil, err
	}

	var agentID *kernel.UUID
	if dto.DeliveryAgentID != nil {
		aID, err := kernel.UUIDFromBytes((*dto.DeliveryAgentID)[:])
		if err != nil {
			return nil, err
		}
		agentID = &aID
	}

	var location *kernel.Location
	if dto.Location.Latitude != nil && dto.Location.Longitude != nil {
		loc, err := kernel.NewLocation(*dto.Location.Latitude, *dto.Location.Longitude)
		if err != nil {
			return nil, err
		}
		location = &loc
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, it := range dto.Items {
		itemID, errItem := kernel.UUIDFromBytes(it.ID[:])
		productID, errProduct := kernel.UUIDFromBytes(it.ProductID[:])
		if err := errors.Join(errItem, errProduct); err != nil {
			return nil, err
		}
		item, err := order.NewItem(itemID, productID, it.Quantity, it.UnitPrice)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return order.RestoreOrder(order.RestoreOrderParams{
		ID:              id,
		CustomerID:      customerID,
		RestaurantID:    restaurantID,
		DeliveryAgentID: agentID,
		Status:          status,
		PaymentMethod:   method,
		PaymentStatus:   paymentStatus,
		Items:           items,
		Address:         dto.Address,
		Location:        location,
		DeliveryFee:     dto.DeliveryFee,
		TotalAmount:     dto.TotalAmount,
		DeliveryCode:    deliveryCode,
		PayoutCode:      payoutCode,
		CreatedAt:       dto.CreatedAt.UTC(),
		UpdatedAt:       dto.UpdatedAt.UTC(),
		DeliveredAt:     utcPtr(dto.DeliveredAt),
		Version:         dto.Version,
	})
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
