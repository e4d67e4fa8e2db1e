package commands

import (
	"context"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/loan"
	"backoffice/internal/core/ports"
)

// loanTransition loads one loan under lock, applies fn and saves the result.
func loanTransition(
	ctx context.Context,
	factory LoanUoWFactory,
	loanID kernel.UUID,
	fn func(l *loan.Loan) error,
) error {
	uow := factory.Create()
	return inTx(ctx, uow, func() error {
		repo := uow.LoanRepository()

		l, err := repo.Get(ctx, loanID)
		if err != nil {
			return err
		}
		if err = fn(l); err != nil {
			return err
		}

		return repo.Update(ctx, l)
	})
}

// ReturnBookCommandHandler records the return and fixes the overdue fee.
//
// Example:
//
//	cmd, _ := NewReturnBookCommand(loanID)
//	err := handler.Handle(ctx, cmd)
//	if errors.Is(err, loan.ErrAlreadyReturned) {
//	    // second return of the same loan
//	}
type ReturnBookCommandHandler struct {
	uowFactory LoanUoWFactory
	clock      ports.Clock
}

func NewReturnBookCommandHandler(uowFactory LoanUoWFactory, clock ports.Clock) ReturnBookCommandHandler {
	return ReturnBookCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h ReturnBookCommandHandler) Handle(ctx context.Context, cmd ReturnBookCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return loanTransition(ctx, h.uowFactory, cmd.LoanID(), func(l *loan.Loan) error {
		return l.ReturnBook(h.clock.Now())
	})
}

// ExtendLoanCommandHandler extends a loan that is not yet past its due date.
type ExtendLoanCommandHandler struct {
	uowFactory LoanUoWFactory
	clock      ports.Clock
}

func NewExtendLoanCommandHandler(uowFactory LoanUoWFactory, clock ports.Clock) ExtendLoanCommandHandler {
	return ExtendLoanCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h ExtendLoanCommandHandler) Handle(ctx context.Context, cmd ExtendLoanCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return loanTransition(ctx, h.uowFactory, cmd.LoanID(), func(l *loan.Loan) error {
		return l.ExtendLoan(cmd.AdditionalDays(), h.clock.Now())
	})
}

type CancelLoanCommandHandler struct {
	uowFactory LoanUoWFactory
}

func NewCancelLoanCommandHandler(uowFactory LoanUoWFactory) CancelLoanCommandHandler {
	return CancelLoanCommandHandler{uowFactory: uowFactory}
}

func (h CancelLoanCommandHandler) Handle(ctx context.Context, cmd CancelLoanCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return loanTransition(ctx, h.uowFactory, cmd.LoanID(), func(l *loan.Loan) error {
		return l.CancelLoan()
	})
}
