package queries

import (
	"context"
	"database/sql"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetAvailableOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetAvailableOrdersQueryHandler creates a handler.
// Requires a GORM database connection for query execution.
func NewGetAvailableOrdersQueryHandler(db *gorm.DB) GetAvailableOrdersQueryHandler {
	return GetAvailableOrdersQueryHandler{db: db}
}

// Handle returns ready, unassigned orders, oldest first.
func (h GetAvailableOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableOrdersQuery,
) ([]GetAvailableOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetAvailableOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.restaurant_id,
			COALESCE(r.name, ''),
			o.address,
			o.location_latitude,
			o.location_longitude,
			o.total_amount,
			o.delivery_fee,
			o.payment_method,
			o.created_at
		FROM orders o
		LEFT JOIN restaurants r ON r.id = o.restaurant_id
		WHERE o.status = ? AND o.delivery_agent_id IS NULL
		ORDER BY o.created_at, o.id
		LIMIT ?
	`, order.Ready.String(), query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetAvailableOrdersQueryResponse
		var id, restaurantID uuid.UUID
		var latitude, longitude sql.NullFloat64
		var createdAt time.Time

		err = rows.Scan(
			&id,
			&restaurantID,
			&resp.RestaurantName,
			&resp.Address,
			&latitude,
			&longitude,
			&resp.TotalAmount,
			&resp.DeliveryFee,
			&resp.PaymentMethod,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.RestaurantID, err = kernel.UUIDFromBytes(restaurantID[:]); err != nil {
			return nil, err
		}
		if latitude.Valid && longitude.Valid {
			loc, locErr := kernel.NewLocation(latitude.Float64, longitude.Float64)
			if locErr != nil {
				return nil, locErr
			}
			resp.Location = &loc
		}
		resp.CreatedAt = createdAt.UTC()
		resp.EstimatedEarnings = services.EstimateAgentEarnings(resp.TotalAmount, resp.DeliveryFee)
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
