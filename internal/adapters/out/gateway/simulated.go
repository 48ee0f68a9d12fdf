// Package gateway simulates the Mauritanian mobile-money providers. Payments
// are "initiated" locally and settled later by a signed callback.
package gateway

import (
	"context"
	"fmt"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
)

const DefaultPaymentTTL = 15 * time.Minute

var checkoutURLs = map[kernel.PaymentMethod]string{
	kernel.Bankily: "https://pay.bankily.mr/checkout/",
	kernel.Masrafi: "https://pay.masrafi.mr/checkout/",
	kernel.Sadad:   "https://pay.sadad.mr/checkout/",
}

// SimulatedGateway implements ports.PaymentGateway without calling out.
type SimulatedGateway struct {
	ttl time.Duration
	now func() time.Time
}

// NewSimulatedGateway creates a gateway whose sessions expire after ttl.
func NewSimulatedGateway(ttl time.Duration) *SimulatedGateway {
	if ttl <= 0 {
		ttl = DefaultPaymentTTL
	}
	return &SimulatedGateway{
		ttl: ttl,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Initiate returns a session with a fresh transaction reference. No money moves.
func (g *SimulatedGateway) Initiate(_ context.Context, req ports.PaymentRequest) (ports.PaymentSession, error) {
	base, ok := checkoutURLs[req.Method]
	if !ok {
		return ports.PaymentSession{}, errs.NewValueIsInvalidErrorWithCause("payment method",
			fmt.Errorf("%s has no gateway", req.Method))
	}
	if !req.Amount.IsPositive() {
		return ports.PaymentSession{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%s is not greater than 0", req.Amount))
	}
	if strings.TrimSpace(req.Phone) == "" {
		return ports.PaymentSession{}, errs.NewValueIsRequiredError("phone")
	}

	now := g.now()
	ref := NewTransactionRef(now)
	return ports.PaymentSession{
		TransactionRef: ref,
		PaymentURL:     base + ref,
		ExpiresAt:      now.Add(g.ttl),
	}, nil
}

// NewTransactionRef formats MR_YYYYMMDD_XXXXXXXX with eight random
// uppercase hex digits.
func NewTransactionRef(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return "MR_" + now.UTC().Format("20060102") + "_" + suffix
}
