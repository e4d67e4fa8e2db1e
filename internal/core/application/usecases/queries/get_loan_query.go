package queries

import (
	"errors"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/pkg/guard"
)

var ErrGetLoanQueryIsNotConstructed = errors.New("GetLoanQuery must be created via NewGetLoanQuery constructor")

// GetLoanQuery reads one loan with its status and fee as of now.
type GetLoanQuery struct {
	loanID kernel.UUID
	guard  guard.ConstructorGuard
}

func NewGetLoanQuery(loanID kernel.UUID) (GetLoanQuery, error) {
	if err := loanID.Validate(); err != nil {
		return GetLoanQuery{}, err
	}
	return GetLoanQuery{loanID: loanID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetLoanQuery) LoanID() kernel.UUID { return q.loanID }

func (q GetLoanQuery) Validate() error {
	return q.guard.Validate(ErrGetLoanQueryIsNotConstructed)
}
