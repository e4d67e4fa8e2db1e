package commands

import (
	"errors"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/loan"
	"backoffice/internal/pkg/errs"
	"backoffice/internal/pkg/guard"
)

var (
	ErrReturnBookCommandIsNotConstructed = errors.New(
		"ReturnBookCommand must be created via NewReturnBookCommand constructor",
	)
	ErrExtendLoanCommandIsNotConstructed = errors.New(
		"ExtendLoanCommand must be created via NewExtendLoanCommand constructor",
	)
	ErrCancelLoanCommandIsNotConstructed = errors.New(
		"CancelLoanCommand must be created via NewCancelLoanCommand constructor",
	)
)

// ReturnBookCommand hands a lent book back.
type ReturnBookCommand struct {
	loanID kernel.UUID
	guard  guard.ConstructorGuard
}

func NewReturnBookCommand(loanID kernel.UUID) (ReturnBookCommand, error) {
	if err := loanID.Validate(); err != nil {
		return ReturnBookCommand{}, err
	}
	return ReturnBookCommand{loanID: loanID, guard: guard.NewConstructorGuard()}, nil
}

func (c ReturnBookCommand) Validate() error {
	return c.guard.Validate(ErrReturnBookCommandIsNotConstructed)
}

func (c ReturnBookCommand) LoanID() kernel.UUID {
	return c.loanID
}

// ExtendLoanCommand moves a loan's due date forward.
type ExtendLoanCommand struct {
	loanID         kernel.UUID
	additionalDays int
	guard          guard.ConstructorGuard
}

func NewExtendLoanCommand(loanID kernel.UUID, additionalDays int) (ExtendLoanCommand, error) {
	var daysErr error
	if additionalDays < 1 || additionalDays > loan.MaxLoanDays {
		daysErr = errs.NewValueIsOutOfRangeError("additionalDays", additionalDays, 1, loan.MaxLoanDays)
	}
	if err := errors.Join(loanID.Validate(), daysErr); err != nil {
		return ExtendLoanCommand{}, err
	}
	return ExtendLoanCommand{
		loanID:         loanID,
		additionalDays: additionalDays,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c ExtendLoanCommand) Validate() error {
	return c.guard.Validate(ErrExtendLoanCommandIsNotConstructed)
}

func (c ExtendLoanCommand) LoanID() kernel.UUID { return c.loanID }
func (c ExtendLoanCommand) AdditionalDays() int { return c.additionalDays }

// CancelLoanCommand cancels a loan whose book is still out. The overdue fee is waived.
type CancelLoanCommand struct {
	loanID kernel.UUID
	guard  guard.ConstructorGuard
}

func NewCancelLoanCommand(loanID kernel.UUID) (CancelLoanCommand, error) {
	if err := loanID.Validate(); err != nil {
		return CancelLoanCommand{}, err
	}
	return CancelLoanCommand{loanID: loanID, guard: guard.NewConstructorGuard()}, nil
}

func (c CancelLoanCommand) Validate() error {
	return c.guard.Validate(ErrCancelLoanCommandIsNotConstructed)
}

func (c CancelLoanCommand) LoanID() kernel.UUID {
	return c.loanID
}
