package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/payment"
	"backoffice/internal/core/domain/model/refund"
	"backoffice/internal/pkg/errs"
)

// ErrRefundExceedsPaidAmount is returned when accepting a refund would push the
// completed refunds of an order past what was paid.
var ErrRefundExceedsPaidAmount = errors.New("refund exceeds paid amount")

// ErrPaymentOrderMismatch is returned when the refund and the payment belong to
// different orders.
var ErrPaymentOrderMismatch = errors.New("refund and payment belong to different orders")

// RefundExceedsPaidAmountError carries the numbers behind ErrRefundExceedsPaidAmount.
type RefundExceedsPaidAmountError struct {
	RefundID       kernel.UUID
	Requested      kernel.Money
	CompletedTotal kernel.Money
	Paid           kernel.Money
}

func (e *RefundExceedsPaidAmountError) Error() string {
	return fmt.Sprintf("%s: refund %s of %s with %s already refunded, paid %s",
		ErrRefundExceedsPaidAmount, e.RefundID, e.Requested, e.CompletedTotal, e.Paid)
}

func (e *RefundExceedsPaidAmountError) Unwrap() error {
	return ErrRefundExceedsPaidAmount
}

// RefundReconciler guards the order-level refund invariant: the sum of COMPLETED
// refunds of an order never exceeds the paid amount. Refund entities cannot see
// their siblings, so the caller supplies completedTotal, read in the same
// transaction that will persist the result.
//
// Example usage:
//
//	reconciler := services.NewRefundReconciler()
//	completed, _ := refunds.TotalCompletedForOrder(ctx, r.OrderID())
//	if err := reconciler.Complete(r, p, "TXN-1", completed, now); err != nil {
//	    return err
//	}
//	// persist both r and p
type RefundReconciler struct{}

func NewRefundReconciler() RefundReconciler {
	return RefundReconciler{}
}

// Approve checks the refund fits next to the completed ones and approves it.
func (RefundReconciler) Approve(r *refund.Refund, approver string, paid, completedTotal kernel.Money, now time.Time) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if err := checkFits(r, paid, completedTotal); err != nil {
		return err
	}
	return r.Approve(approver, now)
}

// Complete checks the refund fits, books it on the payment and completes it.
// Either both entities change or neither does.
func (RefundReconciler) Complete(
	r *refund.Refund,
	p *payment.Payment,
	transactionID string,
	completedTotal kernel.Money,
	now time.Time,
) error {
	if err := errors.Join(r.Validate(), p.Validate()); err != nil {
		return err
	}
	if !r.OrderID().IsEqual(p.OrderID()) {
		return fmt.Errorf("%w: refund %s, payment %s", ErrPaymentOrderMismatch, r.ID(), p.ID())
	}
	if !r.Status().CanTransitionTo(refund.Completed) {
		return &refund.Error{Kind: refund.KindInvalidState, RefundID: r.ID(), Status: r.Status(), Operation: "complete"}
	}
	if err := checkFits(r, p.Amount(), completedTotal); err != nil {
		return err
	}

	if strings.TrimSpace(transactionID) == "" {
		return errs.NewValueIsRequiredError("transactionID")
	}
	if err := p.Refund(r.Amount(), now); err != nil {
		return err
	}
	return r.Complete(transactionID, now)
}

func checkFits(r *refund.Refund, paid, completedTotal kernel.Money) error {
	after, err := completedTotal.Add(r.Amount())
	if err != nil {
		return err
	}
	exceeds, err := after.GreaterThan(paid)
	if err != nil {
		return err
	}
	if exceeds {
		return &RefundExceedsPaidAmountError{
			RefundID:       r.ID(),
			Requested:      r.Amount(),
			CompletedTotal: completedTotal,
			Paid:           paid,
		}
	}
	return nil
}
