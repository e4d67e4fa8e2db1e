package payment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/pkg/errs"
	"backoffice/internal/pkg/guard"
)

// ErrPaymentIsNotConstructed is returned when a Payment was not created via NewPayment or RestorePayment.
var ErrPaymentIsNotConstructed = errors.New("Payment must be created via NewPayment or RestorePayment")

// Timestamps records when each transition happened.
type Timestamps struct {
	CreatedAt   time.Time
	PaidAt      *time.Time
	FailedAt    *time.Time
	CancelledAt *time.Time
	RefundedAt  *time.Time
}

// Payment settles one order.
//
// Payment follows these invariants:
//   - amount > 0 and 0 <= refundedAmount <= amount, same currency
//   - status is REFUNDED iff refundedAmount == amount > 0 after a refund
//   - status is PARTIAL_REFUNDED iff 0 < refundedAmount < amount
type Payment struct {
	id             kernel.UUID
	orderID        kernel.UUID
	method         Method
	amount         kernel.Money
	refundedAmount kernel.Money
	status         Status
	transactionID  string
	failureReason  string
	timestamps     Timestamps

	guard guard.ConstructorGuard
}

// NewPayment opens a PENDING payment over the order's final amount.
func NewPayment(id, orderID kernel.UUID, method Method, amount kernel.Money, now time.Time) (*Payment, error) {
	p := &Payment{
		status:     Pending,
		timestamps: Timestamps{CreatedAt: now},
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(id.Validate(), orderID.Validate(), method.Validate(), validateAmount(amount)); err != nil {
		return nil, err
	}
	p.id, p.orderID, p.method = id, orderID, method
	p.amount = amount
	p.refundedAmount = amount.Zero()

	return p, nil
}

// RestorePayment rebuilds a Payment read from persistence.
func RestorePayment(
	id, orderID kernel.UUID,
	method Method,
	amount, refundedAmount kernel.Money,
	status Status,
	transactionID, failureReason string,
	timestamps Timestamps,
) (*Payment, error) {
	if err := errors.Join(
		id.Validate(), orderID.Validate(), method.Validate(), validateAmount(amount), status.Validate(),
	); err != nil {
		return nil, err
	}
	if err := validateRefunded(amount, refundedAmount, status); err != nil {
		return nil, err
	}

	return &Payment{
		id:             id,
		orderID:        orderID,
		method:         method,
		amount:         amount,
		refundedAmount: refundedAmount,
		status:         status,
		transactionID:  transactionID,
		failureReason:  failureReason,
		timestamps:     timestamps,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (p *Payment) Validate() error {
	if p == nil {
		return ErrPaymentIsNotConstructed
	}
	return p.guard.Validate(ErrPaymentIsNotConstructed)
}

func (p *Payment) ID() kernel.UUID { return p.id }
func (p *Payment) OrderID() kernel.UUID { return p.orderID }
func (p *Payment) Method() Method { return p.method }
func (p *Payment) Amount() kernel.Money { return p.amount }
func (p *Payment) RefundedAmount() kernel.Money { return p.refundedAmount }
func (p *Payment) Status() Status { return p.status }
func (p *Payment) TransactionID() string { return p.transactionID }
func (p *Payment) FailureReason() string { return p.failureReason }
func (p *Payment) Timestamps() Timestamps { return p.timestamps }

// IsRefundable reports whether Refund would pass the status guard.
func (p *Payment) IsRefundable() bool {
	return p.status.IsRefundable()
}

// RemainingRefundable is amount - refundedAmount.
func (p *Payment) RemainingRefundable() kernel.Money {
	rest, _ := p.amount.Subtract(p.refundedAmount)
	return rest
}

// Complete records the gateway confirmation of a PENDING payment.
func (p *Payment) Complete(transactionID string, now time.Time) error {
	if !p.status.CanTransitionTo(Completed) {
		return p.stateError("complete")
	}
	transactionID = strings.TrimSpace(transactionID)
	if transactionID == "" {
		return errs.NewValueIsRequiredError("transactionID")
	}

	p.status = Completed
	p.transactionID = transactionID
	p.timestamps.PaidAt = &now
	return nil
}

// Fail records a declined PENDING payment.
func (p *Payment) Fail(reason string, now time.Time) error {
	if !p.status.CanTransitionTo(Failed) {
		return p.stateError("fail")
	}

	p.status = Failed
	p.failureReason = strings.TrimSpace(reason)
	p.timestamps.FailedAt = &now
	return nil
}

// Cancel voids a COMPLETED payment. Only completed payments can be cancelled.
func (p *Payment) Cancel(now time.Time) error {
	if !p.status.CanTransitionTo(Cancelled) {
		return p.stateError("cancel")
	}

	p.status = Cancelled
	p.timestamps.CancelledAt = &now
	return nil
}

// Refund books amount as given back. A refund past the remaining refundable
// amount, or a non positive one, fails with KindRefundAmountMismatch and changes
// nothing. A fully REFUNDED payment has nothing left, so any further refund is a
// mismatch as well.
func (p *Payment) Refund(amount kernel.Money, now time.Time) error {
	if !p.IsRefundable() && p.status != Refunded {
		return p.stateError("refund")
	}
	if err := amount.Validate(); err != nil {
		return err
	}

	remaining := p.RemainingRefundable()
	exceeds, err := amount.GreaterThan(remaining)
	if err != nil {
		return err
	}
	if !amount.IsPositive() || exceeds {
		return &Error{
			Kind:       KindRefundAmountMismatch,
			PaymentID:  p.id,
			Status:     p.status,
			Operation:  "refund",
			Requested:  amount,
			Refundable: remaining,
		}
	}

	refunded, err := p.refundedAmount.Add(amount)
	if err != nil {
		return err
	}
	p.refundedAmount = refunded
	if refunded.Equals(p.amount) {
		p.status = Refunded
	} else {
		p.status = PartialRefunded
	}
	p.timestamps.RefundedAt = &now
	return nil
}

func (p *Payment) stateError(operation string) *Error {
	return &Error{Kind: KindInvalidState, PaymentID: p.id, Status: p.status, Operation: operation}
}

func validateAmount(amount kernel.Money) error {
	if err := amount.Validate(); err != nil {
		return err
	}
	if !amount.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%s is not positive", amount))
	}
	return nil
}

func validateRefunded(amount, refunded kernel.Money, status Status) error {
	if err := refunded.Validate(); err != nil {
		return err
	}
	cmp, err := refunded.Compare(amount)
	if err != nil {
		return err
	}
	if refunded.IsNegative() || cmp > 0 {
		return errs.NewValueIsOutOfRangeError("refundedAmount", refunded.String(), amount.Zero().String(), amount.String())
	}

	var consistent bool
	switch status {
	case Refunded:
		consistent = cmp == 0
	case PartialRefunded:
		consistent = refunded.IsPositive() && cmp < 0
	default:
		consistent = refunded.IsZero()
	}
	if !consistent {
		return errs.NewValueIsInvalidErrorWithCause("refundedAmount",
			fmt.Errorf("%s does not match status %s", refunded, status))
	}
	return nil
}
