// Package ports defines the persistence contracts of the back office.
// Repositories load and save whole aggregates; the application layer calls them
// inside a UnitOfWork so that load -> transition -> save is serialized per id.
package ports

import (
	"context"
	"errors"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/loan"
)

// ErrBookAlreadyOnLoan is returned when the book has an ACTIVE or OVERDUE loan.
var ErrBookAlreadyOnLoan = errors.New("book is already on loan")

// LoanRepository defines the persistence contract for loans.
type LoanRepository interface {
	// Add persists a new loan. An ACTIVE loan for a book that is already lent
	// out fails with ErrBookAlreadyOnLoan, also when two transactions race.
	Add(ctx context.Context, aggregate *loan.Loan) error

	// Update persists the current state of an existing loan.
	Update(ctx context.Context, aggregate *loan.Loan) error

	// Get loads a loan and locks its row until the transaction ends.
	// Returns errs.ObjectNotFoundError when the id does not resolve.
	Get(ctx context.Context, id kernel.UUID) (*loan.Loan, error)

	// GetAllOpen returns the loans whose book is still out: ACTIVE or OVERDUE.
	GetAllOpen(ctx context.Context) ([]*loan.Loan, error)

	// HasOpenLoanForBook reports whether the book is currently lent out.
	HasOpenLoanForBook(ctx context.Context, bookID kernel.UUID) (bool, error)
}
