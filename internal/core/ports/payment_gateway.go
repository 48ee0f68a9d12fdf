package ports

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

type PaymentRequest struct {
	OrderID kernel.UUID
	Method  kernel.PaymentMethod
	Amount  decimal.Decimal
	Phone   string
}

type PaymentSession struct {
	TransactionRef string
	PaymentURL     string
	ExpiresAt      time.Time
}

// PaymentGateway starts a mobile-money payment. The outcome arrives later
// through the gateway callback.
type PaymentGateway interface {
	Initiate(ctx context.Context, req PaymentRequest) (PaymentSession, error)
}
