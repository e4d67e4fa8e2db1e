package delivery

import (
	"fmt"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/pkg/errs"
)

// Status is the lifecycle state of a delivery.
//
//	PREPARING ──> IN_TRANSIT ──> OUT_FOR_DELIVERY ──> DELIVERED
//	                  │                 │
//	                  └─────────────────┴──> FAILED / RETURNED
//
// Guarded transitions are StartShipping and Complete. UpdateStatus is an
// administrative override that may set any known status.
type Status int

const (
	Unknown Status = iota
	Preparing
	InTransit
	OutForDelivery
	Delivered
	Failed
	Returned
)

var transitions = kernel.Transitions[Status]{
	Preparing:      {InTransit},
	InTransit:      {OutForDelivery, Delivered, Failed, Returned},
	OutForDelivery: {Delivered, Failed, Returned},
	Delivered:      nil,
	Failed:         nil,
	Returned:       nil,
}

var statusNames = map[Status]string{
	Preparing:      "PREPARING",
	InTransit:      "IN_TRANSIT",
	OutForDelivery: "OUT_FOR_DELIVERY",
	Delivered:      "DELIVERED",
	Failed:         "FAILED",
	Returned:       "RETURNED",
}

func ParseStatus(s string) (Status, error) {
	for status, name := range statusNames {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("delivery status", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) Validate() error {
	if !transitions.Knows(s) {
		return errs.NewValueIsInvalidErrorWithCause("delivery status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) CanTransitionTo(target Status) bool {
	return transitions.Allows(s, target)
}

func (s Status) IsTerminal() bool {
	return transitions.IsTerminal(s)
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}
