package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/pkg/errs"
	"backoffice/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created via NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	ErrNoLineItems = errs.NewValueIsRequiredError("lineItems")
)

// Timestamps records when each transition happened. Only CreatedAt is always set.
type Timestamps struct {
	CreatedAt   time.Time
	ConfirmedAt *time.Time
	ShippedAt   *time.Time
	DeliveredAt *time.Time
	CancelledAt *time.Time
}

// Order is a purchase of one or more books by a member.
//
// Order follows these invariants:
//   - at least one line item, every amount in the same currency
//   - totalAmount is the sum of the line item subtotals
//   - 0 <= discountAmount <= totalAmount, so FinalAmount is never negative
//   - cancellation reason is set iff the order is CANCELLED
type Order struct {
	id                 kernel.UUID
	memberID           kernel.UUID
	items              []LineItem
	totalAmount        kernel.Money
	discountAmount     kernel.Money
	status             Status
	cancellationReason string
	timestamps         Timestamps

	guard guard.ConstructorGuard
}

// NewOrder creates a PENDING order at checkout. The total is computed from the
// line items; a discount larger than the total is rejected.
//
// Example:
//
//	price, _ := kernel.MoneyFromInt(15000, "KRW")
//	item, _ := order.NewLineItem(bookID, 2, price)
//	discount, _ := kernel.MoneyFromInt(3000, "KRW")
//	o, err := order.NewOrder(kernel.NewUUID(), memberID, []order.LineItem{item}, discount, now)
func NewOrder(id, memberID kernel.UUID, items []LineItem, discount kernel.Money, now time.Time) (*Order, error) {
	o := &Order{
		status:     Pending,
		timestamps: Timestamps{CreatedAt: now},
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(id.Validate(), memberID.Validate()); err != nil {
		return nil, err
	}
	o.id, o.memberID = id, memberID

	total, err := sumItems(items)
	if err != nil {
		return nil, err
	}
	o.items = append([]LineItem(nil), items...)

	if err = o.setAmounts(total, discount); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds an Order read from persistence. The stored total must match
// the line items.
func RestoreOrder(
	id, memberID kernel.UUID,
	items []LineItem,
	totalAmount, discountAmount kernel.Money,
	status Status,
	cancellationReason string,
	timestamps Timestamps,
) (*Order, error) {
	if err := errors.Join(id.Validate(), memberID.Validate(), status.Validate()); err != nil {
		return nil, err
	}

	sum, err := sumItems(items)
	if err != nil {
		return nil, err
	}
	if !sum.Equals(totalAmount) {
		return nil, errs.NewValueIsInvalidErrorWithCause("totalAmount",
			fmt.Errorf("%s does not match line items sum %s", totalAmount, sum))
	}
	if (status == Cancelled) != (cancellationReason != "") {
		return nil, errs.NewValueIsInvalidErrorWithCause("cancellationReason",
			fmt.Errorf("reason presence does not match status %s", status))
	}

	o := &Order{
		id:                 id,
		memberID:           memberID,
		items:              append([]LineItem(nil), items...),
		status:             status,
		cancellationReason: cancellationReason,
		timestamps:         timestamps,
		guard:              guard.NewConstructorGuard(),
	}
	if err = o.setAmounts(totalAmount, discountAmount); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order was built by a constructor.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

func (o *Order) ID() kernel.UUID { return o.id }
func (o *Order) MemberID() kernel.UUID { return o.memberID }
func (o *Order) TotalAmount() kernel.Money { return o.totalAmount }
func (o *Order) DiscountAmount() kernel.Money { return o.discountAmount }
func (o *Order) Status() Status { return o.status }
func (o *Order) CancellationReason() string { return o.cancellationReason }
func (o *Order) Timestamps() Timestamps { return o.timestamps }
func (o *Order) Currency() string { return o.totalAmount.Currency() }
func (o *Order) LineItems() []LineItem { return append([]LineItem(nil), o.items...) }

// FinalAmount is total minus discount, the amount the member pays.
func (o *Order) FinalAmount() kernel.Money {
	final, _ := o.totalAmount.Subtract(o.discountAmount)
	return final
}

// NetAmount is the final amount after the cumulative refunds supplied by the
// caller. Refunds beyond the final amount are rejected.
func (o *Order) NetAmount(totalRefunded kernel.Money) (kernel.Money, error) {
	net, err := o.FinalAmount().Subtract(totalRefunded)
	if err != nil {
		return kernel.Money{}, err
	}
	if net.IsNegative() {
		return kernel.Money{}, errs.NewValueIsOutOfRangeError("totalRefunded",
			totalRefunded.String(), o.FinalAmount().Zero().String(), o.FinalAmount().String())
	}
	return net, nil
}

// IsCancellable reports whether Cancel would be accepted right now.
func (o *Order) IsCancellable() bool {
	return o.status.IsCancellable()
}

// Confirm accepts a PENDING order.
func (o *Order) Confirm(now time.Time) error {
	if o.status != Pending {
		return o.stateError(KindInvalidState, "confirm")
	}
	o.status = Confirmed
	o.timestamps.ConfirmedAt = &now
	return nil
}

// Ship marks a CONFIRMED order as handed to the courier.
func (o *Order) Ship(now time.Time) error {
	if !o.status.CanTransitionTo(Shipped) {
		return o.stateError(KindInvalidState, "start shipping")
	}
	o.status = Shipped
	o.timestamps.ShippedAt = &now
	return nil
}

// Deliver marks a SHIPPED order as delivered.
func (o *Order) Deliver(now time.Time) error {
	if !o.status.CanTransitionTo(Delivered) {
		return o.stateError(KindInvalidState, "mark delivered")
	}
	o.status = Delivered
	o.timestamps.DeliveredAt = &now
	return nil
}

// Cancel cancels a PENDING or CONFIRMED order with a reason. Any other status fails
// with KindCancellationNotAllowed and leaves the order untouched.
func (o *Order) Cancel(reason string, now time.Time) error {
	if !o.IsCancellable() {
		return o.stateError(KindCancellationNotAllowed, "cancel")
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return errs.NewValueIsRequiredError("cancellationReason")
	}

	o.status = Cancelled
	o.cancellationReason = reason
	o.timestamps.CancelledAt = &now
	return nil
}

func (o *Order) stateError(kind ErrorKind, operation string) *Error {
	return &Error{Kind: kind, OrderID: o.id, Status: o.status, Operation: operation}
}

func (o *Order) setAmounts(total, discount kernel.Money) error {
	if err := discount.Validate(); err != nil {
		return err
	}
	if discount.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("discountAmount", fmt.Errorf("%s is negative", discount))
	}
	exceeds, err := discount.GreaterThan(total)
	if err != nil {
		return err
	}
	if exceeds {
		return errs.NewValueIsInvalidErrorWithCause("discountAmount",
			fmt.Errorf("%s exceeds total %s", discount, total))
	}
	o.totalAmount, o.discountAmount = total, discount
	return nil
}

func sumItems(items []LineItem) (kernel.Money, error) {
	if len(items) == 0 {
		return kernel.Money{}, ErrNoLineItems
	}
	total := items[0].Subtotal()
	for _, item := range items[1:] {
		var err error
		if total, err = total.Add(item.Subtotal()); err != nil {
			return kernel.Money{}, err
		}
	}
	return total, nil
}
