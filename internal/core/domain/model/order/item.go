package order

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Item is an order line. Unit price is snapshotted from the catalog at creation.
type Item struct {
	id        kernel.UUID
	productID kernel.UUID
	quantity  int
	unitPrice decimal.Decimal
}

// NewItem creates an order line. quantity must be positive and unitPrice
// not negative.
func NewItem(id, productID kernel.UUID, quantity int, unitPrice decimal.Decimal) (Item, error) {
	var errQty, errPrice error
	if quantity <= 0 {
		errQty = errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	if unitPrice.IsNegative() {
		errPrice = errs.NewValueIsInvalidErrorWithCause("unit price", fmt.Errorf("%s is negative", unitPrice))
	}
	if err := errors.Join(id.Validate(), productID.Validate(), errQty, errPrice); err != nil {
		return Item{}, err
	}
	return Item{id: id, productID: productID, quantity: quantity, unitPrice: unitPrice}, nil
}

func (i Item) ID() kernel.UUID            { return i.id }
func (i Item) ProductID() kernel.UUID     { return i.productID }
func (i Item) Quantity() int              { return i.quantity }
func (i Item) UnitPrice() decimal.Decimal { return i.unitPrice }

// Subtotal is the unit price times the quantity.
func (i Item) Subtotal() decimal.Decimal {
	return i.unitPrice.Mul(decimal.NewFromInt(int64(i.quantity)))
}
