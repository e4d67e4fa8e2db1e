package order

import (
	"errors"
	"fmt"

	"backoffice/internal/core/domain/model/kernel"
)

type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindInvalidState
	KindCancellationNotAllowed
)

var (
	ErrInvalidOrderState      = errors.New("invalid order state")
	ErrCancellationNotAllowed = errors.New("order cancellation not allowed")
)

// Error describes a refused order transition.
type Error struct {
	Kind      ErrorKind
	OrderID   kernel.UUID
	Status    Status
	Operation string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: cannot %s order %s in status %s", e.Unwrap(), e.Operation, e.OrderID, e.Status)
}

func (e *Error) Unwrap() error {
	if e.Kind == KindCancellationNotAllowed {
		return ErrCancellationNotAllowed
	}
	return ErrInvalidOrderState
}
