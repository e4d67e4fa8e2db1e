package refund

import (
	"fmt"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/pkg/errs"
)

// Status is the lifecycle state of a refund.
//
//	REQUESTED ──┬──> APPROVED ──> PROCESSING ──┬──> COMPLETED
//	            └──> REJECTED                  └──> FAILED
type Status int

const (
	Unknown Status = iota
	Requested
	Approved
	Rejected
	Processing
	Completed
	Failed
)

var transitions = kernel.Transitions[Status]{
	Requested:  {Approved, Rejected},
	Approved:   {Processing},
	Processing: {Completed, Failed},
	Rejected:   nil,
	Completed:  nil,
	Failed:     nil,
}

var statusNames = map[Status]string{
	Requested:  "REQUESTED",
	Approved:   "APPROVED",
	Rejected:   "REJECTED",
	Processing: "PROCESSING",
	Completed:  "COMPLETED",
	Failed:     "FAILED",
}

func ParseStatus(s string) (Status, error) {
	for status, name := range statusNames {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("refund status", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) Validate() error {
	if !transitions.Knows(s) {
		return errs.NewValueIsInvalidErrorWithCause("refund status", fmt.Errorf("%d is not a valid status", s))
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
