package commands

import (
	"errors"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/loan"
	"backoffice/internal/pkg/errs"
	"backoffice/internal/pkg/guard"
)

var ErrBorrowBookCommandIsNotConstructed = errors.New(
	"BorrowBookCommand must be created via NewBorrowBookCommand constructor",
)

// BorrowBookCommand lends a book to a member.
//
// Example:
//
//	loanID := kernel.NewUUID()
//	cmd, err := NewBorrowBookCommand(loanID, memberID, bookID, 0) // 0 -> loan.DefaultLoanDays
//	if err != nil {
//	    return fmt.Errorf("invalid borrow request: %w", err)
//	}
//	err = handler.Handle(ctx, cmd)
type BorrowBookCommand struct { //nolint:recvcheck //using for validation
	loanID   kernel.UUID
	memberID kernel.UUID
	bookID   kernel.UUID
	loanDays int

	guard guard.ConstructorGuard
}

// NewBorrowBookCommand validates the request. A loanDays of zero selects
// loan.DefaultLoanDays.
func NewBorrowBookCommand(loanID, memberID, bookID kernel.UUID, loanDays int) (BorrowBookCommand, error) {
	cmd := BorrowBookCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		loanID.Validate(),
		memberID.Validate(),
		bookID.Validate(),
		cmd.setLoanDays(loanDays),
	); err != nil {
		return BorrowBookCommand{}, err
	}
	cmd.loanID, cmd.memberID, cmd.bookID = loanID, memberID, bookID

	return cmd, nil
}

func (c BorrowBookCommand) Validate() error {
	return c.guard.Validate(ErrBorrowBookCommandIsNotConstructed)
}

func (c BorrowBookCommand) LoanID() kernel.UUID { return c.loanID }
func (c BorrowBookCommand) MemberID() kernel.UUID { return c.memberID }
func (c BorrowBookCommand) BookID() kernel.UUID { return c.bookID }
func (c BorrowBookCommand) LoanDays() int { return c.loanDays }

func (c *BorrowBookCommand) setLoanDays(days int) error {
	if days == 0 {
		days = loan.DefaultLoanDays
	}
	if days < 1 || days > loan.MaxLoanDays {
		return errs.NewValueIsOutOfRangeError("loanDays", days, 1, loan.MaxLoanDays)
	}
	c.loanDays = days
	return nil
}
