package delivery

import (
	"errors"
	"fmt"

	"backoffice/internal/core/domain/model/kernel"
)

type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindInvalidState
	KindAddressChangeNotAllowed
)

var (
	ErrInvalidDeliveryState    = errors.New("invalid delivery state")
	ErrAddressChangeNotAllowed = errors.New("delivery address change not allowed")
)

// Error describes a refused delivery operation.
type Error struct {
	Kind       ErrorKind
	DeliveryID kernel.UUID
	Status     Status
	Operation  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: cannot %s delivery %s in status %s", e.Unwrap(), e.Operation, e.DeliveryID, e.Status)
}

func (e *Error) Unwrap() error {
	if e.Kind == KindAddressChangeNotAllowed {
		return ErrAddressChangeNotAllowed
	}
	return ErrInvalidDeliveryState
}
