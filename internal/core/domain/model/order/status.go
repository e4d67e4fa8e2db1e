package order

import (
	"fmt"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
//	PENDING ──> CONFIRMED ──> SHIPPED ──> DELIVERED
//	   │            │
//	   └────────────┴──> CANCELLED
type Status int

const (
	Unknown Status = iota
	Pending
	Confirmed
	Shipped
	Delivered
	Cancelled
)

var transitions = kernel.Transitions[Status]{
	Pending:   {Confirmed, Cancelled},
	Confirmed: {Shipped, Cancelled},
	Shipped:   {Delivered},
	Delivered: nil,
	Cancelled: nil,
}

var statusNames = map[Status]string{
	Pending:   "PENDING",
	Confirmed: "CONFIRMED",
	Shipped:   "SHIPPED",
	Delivered: "DELIVERED",
	Cancelled: "CANCELLED",
}

func ParseStatus(s string) (Status, error) {
	for status, name := range statusNames {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("order status", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) Validate() error {
	if !transitions.Knows(s) {
		return errs.NewValueIsInvalidErrorWithCause("order status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) CanTransitionTo(target Status) bool {
	return transitions.Allows(s, target)
}

// IsCancellable mirrors the cancellation guard.
func (s Status) IsCancellable() bool {
	return kernel.StatusIn(s, Pending, Confirmed)
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}
