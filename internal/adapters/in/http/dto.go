package http

import (
	"time"

	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/ledger"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"

	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type OrderItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type CreateOrderRequest struct {
	RestaurantID    string             `json:"restaurant_id"`
	Items           []OrderItemRequest `json:"items"`
	DeliveryAddress string             `json:"delivery_address"`
	Latitude        *float64           `json:"latitude,omitempty"`
	Longitude       *float64           `json:"longitude,omitempty"`
	PaymentMethod   string             `json:"payment_method"`
}

type ChangeStatusRequest struct {
	Status string `json:"status"`
}

type AssignAgentRequest struct {
	AgentID *string `json:"agent_id,omitempty"`
}

type CodeRequest struct {
	Code string `json:"code"`
}

type InitiatePaymentRequest struct {
	Phone string `json:"phone"`
}

type PaymentCallbackRequest struct {
	TransactionRef string `json:"transaction_ref"`
	Status         string `json:"status"`
}

type OrderItemResponse struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type OrderResponse struct {
	ID              string              `json:"id"`
	CustomerID      string              `json:"customer_id"`
	RestaurantID    string              `json:"restaurant_id"`
	DeliveryAgentID *string             `json:"delivery_agent_id"`
	Status          string              `json:"status"`
	PaymentMethod   string              `json:"payment_method"`
	PaymentStatus   string              `json:"payment_status"`
	DeliveryAddress string              `json:"delivery_address"`
	Latitude        *float64            `json:"latitude,omitempty"`
	Longitude       *float64            `json:"longitude,omitempty"`
	Items           []OrderItemResponse `json:"items,omitempty"`
	Subtotal        decimal.Decimal     `json:"subtotal"`
	DeliveryFee     decimal.Decimal     `json:"delivery_fee"`
	TotalAmount     decimal.Decimal     `json:"total_amount"`
	DeliveryCode    string              `json:"delivery_code,omitempty"`
	PayoutCode      string              `json:"payout_code,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
	DeliveredAt     *time.Time          `json:"delivered_at,omitempty"`
}

type AvailableOrderResponse struct {
	ID                string          `json:"id"`
	RestaurantID      string          `json:"restaurant_id"`
	RestaurantName    string          `json:"restaurant_name"`
	DeliveryAddress   string          `json:"delivery_address"`
	Latitude          *float64        `json:"latitude,omitempty"`
	Longitude         *float64        `json:"longitude,omitempty"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
	DeliveryFee       decimal.Decimal `json:"delivery_fee"`
	PaymentMethod     string          `json:"payment_method"`
	EstimatedEarnings decimal.Decimal `json:"estimated_earnings"`
	CreatedAt         time.Time       `json:"created_at"`
}

type LedgerEntryResponse struct {
	ID             string          `json:"id"`
	OrderID        string          `json:"order_id"`
	FromType       string          `json:"from_type"`
	FromID         string          `json:"from_id"`
	ToType         string          `json:"to_type"`
	ToID           string          `json:"to_id"`
	Direction      string          `json:"direction,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	Kind           string          `json:"kind"`
	Method         string          `json:"method"`
	Status         string          `json:"status"`
	TransactionRef string          `json:"transaction_ref,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

type BalanceResponse struct {
	PartyType string          `json:"party_type"`
	PartyID   string          `json:"party_id"`
	Available decimal.Decimal `json:"available"`
	Pending   decimal.Decimal `json:"pending"`
}

type OrderStatisticsResponse struct {
	Period          string           `json:"period"`
	Since           time.Time        `json:"since"`
	TotalOrders     int64            `json:"total_orders"`
	CompletedOrders int64            `json:"completed_orders"`
	CancelledOrders int64            `json:"cancelled_orders"`
	CompletionRate  decimal.Decimal  `json:"completion_rate"`
	TotalRevenue    decimal.Decimal  `json:"total_revenue"`
	AvgOrderValue   decimal.Decimal  `json:"avg_order_value"`
	StatusBreakdown map[string]int64 `json:"status_breakdown"`
}

type PaymentSessionResponse struct {
	TransactionRef string    `json:"transaction_ref"`
	PaymentURL     string    `json:"payment_url"`
	ExpiresAt      time.Time `json:"expires_at"`
}

func toOrderResponse(o *order.Order) OrderResponse {
	resp := OrderResponse{
		ID:              o.ID().String(),
		CustomerID:      o.CustomerID().String(),
		RestaurantID:    o.RestaurantID().String(),
		Status:          o.Status().String(),
		PaymentMethod:   o.PaymentMethod().String(),
		PaymentStatus:   o.PaymentStatus().String(),
		DeliveryAddress: o.Address(),
		Subtotal:        o.Subtotal(),
		DeliveryFee:     o.DeliveryFee(),
		TotalAmount:     o.TotalAmount(),
		CreatedAt:       o.CreatedAt(),
		UpdatedAt:       o.UpdatedAt(),
		DeliveredAt:     o.DeliveredAt(),
	}
	if id := o.DeliveryAgentID(); id != nil {
		s := id.String()
		resp.DeliveryAgentID = &s
	}
	if loc := o.Location(); loc != nil {
		lat, lng := loc.Latitude(), loc.Longitude()
		resp.Latitude, resp.Longitude = &lat, &lng
	}
	for _, it := range o.Items() {
		resp.Items = append(resp.Items, OrderItemResponse{
			ProductID: it.ProductID().String(),
			Quantity:  it.Quantity(),
			UnitPrice: it.UnitPrice(),
			Subtotal:  it.Subtotal(),
		})
	}
	return resp
}

func toOrderViewResponse(v queries.GetOrderQueryResponse) OrderResponse {
	resp := OrderResponse{
		ID:              v.ID.String(),
		CustomerID:      v.CustomerID.String(),
		RestaurantID:    v.RestaurantID.String(),
		Status:          v.Status,
		PaymentMethod:   v.PaymentMethod,
		PaymentStatus:   v.PaymentStatus,
		DeliveryAddress: v.Address,
		Subtotal:        v.Subtotal,
		DeliveryFee:     v.DeliveryFee,
		TotalAmount:     v.TotalAmount,
		DeliveryCode:    v.DeliveryCode,
		PayoutCode:      v.PayoutCode,
		CreatedAt:       v.CreatedAt,
		UpdatedAt:       v.UpdatedAt,
		DeliveredAt:     v.DeliveredAt,
	}
	if v.DeliveryAgentID != nil {
		s := v.DeliveryAgentID.String()
		resp.DeliveryAgentID = &s
	}
	if v.Location != nil {
		lat, lng := v.Location.Latitude(), v.Location.Longitude()
		resp.Latitude, resp.Longitude = &lat, &lng
	}
	for _, it := range v.Items {
		resp.Items = append(resp.Items, OrderItemResponse{
			ProductID: it.ProductID.String(),
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal,
		})
	}
	return resp
}

func toAvailableOrderResponse(v queries.GetAvailableOrdersQueryResponse) AvailableOrderResponse {
	resp := AvailableOrderResponse{
		ID:                v.ID.String(),
		RestaurantID:      v.RestaurantID.String(),
		RestaurantName:    v.RestaurantName,
		DeliveryAddress:   v.Address,
		TotalAmount:       v.TotalAmount,
		DeliveryFee:       v.DeliveryFee,
		PaymentMethod:     v.PaymentMethod,
		EstimatedEarnings: v.EstimatedEarnings,
		CreatedAt:         v.CreatedAt,
	}
	if v.Location != nil {
		lat, lng := v.Location.Latitude(), v.Location.Longitude()
		resp.Latitude, resp.Longitude = &lat, &lng
	}
	return resp
}

func toLedgerEntryResponse(e *ledger.Entry) LedgerEntryResponse {
	return LedgerEntryResponse{
		ID:             e.ID().String(),
		OrderID:        e.OrderID().String(),
		FromType:       e.From().Type().String(),
		FromID:         e.From().ID().String(),
		ToType:         e.To().Type().String(),
		ToID:           e.To().ID().String(),
		Amount:         e.Amount(),
		Kind:           e.Kind().String(),
		Method:         e.Method().String(),
		Status:         e.Status().String(),
		TransactionRef: e.TransactionRef(),
		CreatedAt:      e.CreatedAt(),
	}
}

func toLedgerViewResponse(v queries.LedgerEntryView) LedgerEntryResponse {
	return LedgerEntryResponse{
		ID:             v.ID.String(),
		OrderID:        v.OrderID.String(),
		FromType:       v.From.Type().String(),
		FromID:         v.From.ID().String(),
		ToType:         v.To.Type().String(),
		ToID:           v.To.ID().String(),
		Direction:      v.Direction,
		Amount:         v.Amount,
		Kind:           v.Kind,
		Method:         v.Method,
		Status:         v.Status,
		TransactionRef: v.TransactionRef,
		CreatedAt:      v.CreatedAt,
	}
}

func toPaymentSessionResponse(s ports.PaymentSession) PaymentSessionResponse {
	return PaymentSessionResponse{
		TransactionRef: s.TransactionRef,
		PaymentURL:     s.PaymentURL,
		ExpiresAt:      s.ExpiresAt,
	}
}
