package loan

import (
	"errors"
	"fmt"
	"time"

	"backoffice/internal/core/domain/model/kernel"
)

// ErrorKind discriminates the refused loan transitions.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	// KindAlreadyReturned: the book was already handed back.
	KindAlreadyReturned
	// KindOverdueExtension: the due date has passed, extension is refused.
	KindOverdueExtension
	// KindInvalidState: the loan is in a terminal status that forbids the operation.
	KindInvalidState
)

var (
	ErrAlreadyReturned  = errors.New("loan already returned")
	ErrOverdueExtension = errors.New("overdue loan cannot be extended")
	ErrInvalidLoanState = errors.New("invalid loan state")
)

// Error is returned by every refused loan transition. It carries enough context
// for the caller to build a user facing message; errors.Is matches the sentinel
// of its Kind.
type Error struct {
	Kind      ErrorKind
	LoanID    kernel.UUID
	Status    Status
	Operation string
	DueDate   time.Time
}

func newError(kind ErrorKind, l *Loan, operation string) *Error {
	return &Error{
		Kind:      kind,
		LoanID:    l.id,
		Status:    l.status,
		Operation: operation,
		DueDate:   l.dueDate,
	}
}

func (e *Error) Error() string {
	if e.Kind == KindOverdueExtension {
		return fmt.Sprintf("%s: loan %s was due %s", e.Unwrap(), e.LoanID, e.DueDate.Format(time.RFC3339))
	}
	return fmt.Sprintf("%s: cannot %s loan %s in status %s", e.Unwrap(), e.Operation, e.LoanID, e.Status)
}

func (e *Error) Unwrap() error {
	switch e.Kind {
	case KindAlreadyReturned:
		return ErrAlreadyReturned
	case KindOverdueExtension:
		return ErrOverdueExtension
	default:
		return ErrInvalidLoanState
	}
}
