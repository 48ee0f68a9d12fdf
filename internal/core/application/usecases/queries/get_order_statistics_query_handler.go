package queries

import (
	"context"

	"marketplace/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GetOrderStatisticsQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderStatisticsQueryHandler creates a handler aggregating orders through db.
func NewGetOrderStatisticsQueryHandler(db *gorm.DB) GetOrderStatisticsQueryHandler {
	return GetOrderStatisticsQueryHandler{db: db}
}

type statusTotal struct {
	Status  string
	Orders  int64
	Revenue decimal.Decimal
}

// Handle groups the caller's orders by status in one read and derives the
// totals from the groups.
func (h GetOrderStatisticsQueryHandler) Handle(
	ctx context.Context,
	query GetOrderStatisticsQuery,
) (GetOrderStatisticsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderStatisticsQueryResponse{}, err
	}

	sql := `
		SELECT status, COUNT(*) AS orders, COALESCE(SUM(total_amount), 0) AS revenue
		FROM orders
		WHERE created_at >= ?`
	args := []any{query.Since()}
	if column, id, ok := query.Scope(); ok {
		sql += ` AND ` + column + ` = ?`
		args = append(args, id.Bytes())
	}
	sql += ` GROUP BY status`

	var rows []statusTotal
	if err := h.db.WithContext(ctx).Raw(sql, args...).Scan(&rows).Error; err != nil {
		return GetOrderStatisticsQueryResponse{}, err
	}

	resp := GetOrderStatisticsQueryResponse{
		Period:            query.Period(),
		Since:             query.Since(),
		CompletionRate:    decimal.Zero,
		TotalRevenue:      decimal.Zero,
		AverageOrderValue: decimal.Zero,
		StatusBreakdown:   make(map[string]int64, order.Cancelled-order.Pending+1),
	}
	for st := order.Pending; st <= order.Cancelled; st++ {
		resp.StatusBreakdown[st.String()] = 0
	}
	for _, row := range rows {
		resp.StatusBreakdown[row.Status] = row.Orders
		resp.TotalOrders += row.Orders
		resp.TotalRevenue = resp.TotalRevenue.Add(row.Revenue)
	}
	resp.CompletedOrders = resp.StatusBreakdown[order.Delivered.String()]
	resp.CancelledOrders = resp.StatusBreakdown[order.Cancelled.String()]

	if resp.TotalOrders > 0 {
		total := decimal.NewFromInt(resp.TotalOrders)
		resp.CompletionRate = decimal.NewFromInt(resp.CompletedOrders).
			Mul(decimal.NewFromInt(100)).
			DivRound(total, 2)
		resp.AverageOrderValue = resp.TotalRevenue.DivRound(total, 2)
	}

	return resp, nil
}
