package refund

import (
	"errors"
	"fmt"

	"backoffice/internal/core/domain/model/kernel"
)

type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindInvalidState
)

var ErrInvalidRefundState = errors.New("invalid refund state")

// Error describes a refused refund transition.
type Error struct {
	Kind      ErrorKind
	RefundID  kernel.UUID
	Status    Status
	Operation string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: cannot %s refund %s in status %s", e.Unwrap(), e.Operation, e.RefundID, e.Status)
}

func (e *Error) Unwrap() error {
	return ErrInvalidRefundState
}
