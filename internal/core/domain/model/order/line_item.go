package order

import (
	"errors"
	"fmt"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/pkg/errs"
)

// MaxQuantity bounds the copies of one book in a single order.
const MaxQuantity = 100

// LineItem is one book in an order with the price agreed at checkout.
type LineItem struct {
	bookID    kernel.UUID
	quantity  int
	unitPrice kernel.Money
}

func NewLineItem(bookID kernel.UUID, quantity int, unitPrice kernel.Money) (LineItem, error) {
	var quantityErr, priceErr error
	if quantity < 1 || quantity > MaxQuantity {
		quantityErr = errs.NewValueIsOutOfRangeError("quantity", quantity, 1, MaxQuantity)
	}
	if err := unitPrice.Validate(); err != nil {
		priceErr = err
	} else if unitPrice.IsNegative() {
		priceErr = errs.NewValueIsInvalidErrorWithCause("unitPrice", fmt.Errorf("%s is negative", unitPrice))
	}
	if err := errors.Join(bookID.Validate(), quantityErr, priceErr); err != nil {
		return LineItem{}, err
	}

	return LineItem{bookID: bookID, quantity: quantity, unitPrice: unitPrice}, nil
}

func (li LineItem) BookID() kernel.UUID { return li.bookID }
func (li LineItem) Quantity() int { return li.quantity }
func (li LineItem) UnitPrice() kernel.Money { return li.unitPrice }

// Subtotal is quantity × unit price.
func (li LineItem) Subtotal() kernel.Money {
	return li.unitPrice.Multiply(int64(li.quantity))
}
