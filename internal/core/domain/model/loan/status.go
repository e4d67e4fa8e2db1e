package loan

import (
	"fmt"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/pkg/errs"
)

// Status is the lifecycle state of a loan.
//
//	ACTIVE ──┬──> RETURNED
//	         ├──> OVERDUE ──┬──> RETURNED
//	         │              └──> CANCELLED
//	         └──> CANCELLED
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota
	Active
	Overdue
	Returned
	Cancelled
)

var transitions = kernel.Transitions[Status]{
	Active:    {Returned, Overdue, Cancelled},
	Overdue:   {Returned, Cancelled},
	Returned:  nil,
	Cancelled: nil,
}

var statusNames = map[Status]string{
	Active:    "ACTIVE",
	Overdue:   "OVERDUE",
	Returned:  "RETURNED",
	Cancelled: "CANCELLED",
}

// ParseStatus converts the persisted/transport name back to a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range statusNames {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("loan status", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects Unknown and out of range values.
func (s Status) Validate() error {
	if !transitions.Knows(s) {
		return errs.NewValueIsInvalidErrorWithCause("loan status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// CanTransitionTo reports whether the lifecycle declares s -> target.
func (s Status) CanTransitionTo(target Status) bool {
	return transitions.Allows(s, target)
}

// IsTerminal is true for RETURNED and CANCELLED.
func (s Status) IsTerminal() bool {
	return transitions.IsTerminal(s)
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}
