package payment

import (
	"errors"
	"fmt"

	"backoffice/internal/core/domain/model/kernel"
)

type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	// KindInvalidState: the payment status forbids the operation.
	KindInvalidState
	// KindRefundAmountMismatch: the refund would exceed the paid amount or is not positive.
	KindRefundAmountMismatch
)

var (
	ErrInvalidPaymentState  = errors.New("invalid payment state")
	ErrRefundAmountMismatch = errors.New("refund amount mismatch")
)

// Error describes a refused payment operation. Requested and Refundable are set
// for KindRefundAmountMismatch only.
type Error struct {
	Kind       ErrorKind
	PaymentID  kernel.UUID
	Status     Status
	Operation  string
	Requested  kernel.Money
	Refundable kernel.Money
}

func (e *Error) Error() string {
	if e.Kind == KindRefundAmountMismatch {
		return fmt.Sprintf("%s: payment %s cannot refund %s, refundable %s",
			e.Unwrap(), e.PaymentID, e.Requested, e.Refundable)
	}
	return fmt.Sprintf("%s: cannot %s payment %s in status %s", e.Unwrap(), e.Operation, e.PaymentID, e.Status)
}

func (e *Error) Unwrap() error {
	if e.Kind == KindRefundAmountMismatch {
		return ErrRefundAmountMismatch
	}
	return ErrInvalidPaymentState
}
