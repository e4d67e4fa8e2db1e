package queries

import (
	"errors"

	"backoffice/internal/pkg/guard"
)

var ErrGetOverdueLoansQueryIsNotConstructed = errors.New(
	"GetOverdueLoansQuery must be created via NewGetOverdueLoansQuery constructor",
)

// GetOverdueLoansQuery lists loans still out past their due date, oldest due
// date first. Loans not yet flagged by a refresh are included.
type GetOverdueLoansQuery struct {
	guard guard.ConstructorGuard
}

func NewGetOverdueLoansQuery() GetOverdueLoansQuery {
	return GetOverdueLoansQuery{guard: guard.NewConstructorGuard()}
}

func (q GetOverdueLoansQuery) Validate() error {
	return q.guard.Validate(ErrGetOverdueLoansQueryIsNotConstructed)
}
