package queries

import (
	"errors"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/core/domain/model/payment"
	"backoffice/internal/pkg/guard"
)

var ErrGetOrderSummaryQueryIsNotConstructed = errors.New(
	"GetOrderSummaryQuery must be created via NewGetOrderSummaryQuery constructor",
)

// GetOrderSummaryQuery reads the money side of one order: what was charged,
// what has been refunded so far and what the member is left paying.
type GetOrderSummaryQuery struct {
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewGetOrderSummaryQuery(orderID kernel.UUID) (GetOrderSummaryQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderSummaryQuery{}, err
	}
	return GetOrderSummaryQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderSummaryQuery) OrderID() kernel.UUID { return q.orderID }

func (q GetOrderSummaryQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderSummaryQueryIsNotConstructed)
}

// OrderSummary is the response of GetOrderSummaryQuery. PaymentStatus is
// payment.Unknown when the order has no payment row.
type OrderSummary struct {
	OrderID        kernel.UUID
	Status         order.Status
	TotalAmount    kernel.Money
	DiscountAmount kernel.Money
	FinalAmount    kernel.Money
	RefundedTotal  kernel.Money
	NetAmount      kernel.Money
	Cancellable    bool
	PaymentStatus  payment.Status
}
