package commands

import (
	"context"
	"fmt"

	"backoffice/internal/core/domain/model/loan"
	"backoffice/internal/core/ports"
)

// ErrBookAlreadyOnLoan is returned when the book has an ACTIVE or OVERDUE loan.
var ErrBookAlreadyOnLoan = ports.ErrBookAlreadyOnLoan

// BorrowBookCommandHandler opens a loan at the clock's now, charged with the
// configured fee policy.
type BorrowBookCommandHandler struct {
	uowFactory LoanUoWFactory
	clock      ports.Clock
	policy     loan.FeePolicy
}

func NewBorrowBookCommandHandler(
	uowFactory LoanUoWFactory,
	clock ports.Clock,
	policy loan.FeePolicy,
) BorrowBookCommandHandler {
	return BorrowBookCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		policy:     policy,
	}
}

func (h BorrowBookCommandHandler) Handle(ctx context.Context, cmd BorrowBookCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	return inTx(ctx, uow, func() error {
		repo := uow.LoanRepository()

		onLoan, err := repo.HasOpenLoanForBook(ctx, cmd.BookID())
		if err != nil {
			return err
		}
		if onLoan {
			return fmt.Errorf("%w: %s", ErrBookAlreadyOnLoan, cmd.BookID())
		}

		l, err := loan.NewLoan(cmd.LoanID(), cmd.MemberID(), cmd.BookID(), cmd.LoanDays(), h.clock.Now(), h.policy)
		if err != nil {
			return err
		}

		return repo.Add(ctx, l)
	})
}
