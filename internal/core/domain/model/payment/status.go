package payment

import (
	"fmt"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/pkg/errs"
)

// Status is the lifecycle state of a payment.
//
//	PENDING ──┬──> COMPLETED ──┬──> CANCELLED
//	          │                ├──> PARTIAL_REFUNDED ──> REFUNDED
//	          │                └──> REFUNDED
//	          └──> FAILED
type Status int

const (
	Unknown Status = iota
	Pending
	Completed
	Failed
	Cancelled
	Refunded
	PartialRefunded
)

var transitions = kernel.Transitions[Status]{
	Pending:         {Completed, Failed},
	Completed:       {Cancelled, PartialRefunded, Refunded},
	PartialRefunded: {PartialRefunded, Refunded},
	Failed:          nil,
	Cancelled:       nil,
	Refunded:        nil,
}

var statusNames = map[Status]string{
	Pending:         "PENDING",
	Completed:       "COMPLETED",
	Failed:          "FAILED",
	Cancelled:       "CANCELLED",
	Refunded:        "REFUNDED",
	PartialRefunded: "PARTIAL_REFUNDED",
}

func ParseStatus(s string) (Status, error) {
	for status, name := range statusNames {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("payment status", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) Validate() error {
	if !transitions.Knows(s) {
		return errs.NewValueIsInvalidErrorWithCause("payment status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) CanTransitionTo(target Status) bool {
	return transitions.Allows(s, target)
}

func (s Status) IsTerminal() bool {
	return transitions.IsTerminal(s)
}

// IsRefundable is true for COMPLETED and PARTIAL_REFUNDED.
func (s Status) IsRefundable() bool {
	return kernel.StatusIn(s, Completed, PartialRefunded)
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}
