package commands_test

import (
	"context"
	"testing"
	"time"

	"backoffice/internal/core/application/usecases/commands"
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/loan"
	"backoffice/internal/pkg/clock"
	"backoffice/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newLoan(t *testing.T, days int) *loan.Loan {
	t.Helper()
	l, err := loan.NewLoan(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), days, start, loan.DefaultFeePolicy())
	require.NoError(t, err)
	return l
}

// loanUoW wires a mock unit of work around repo for one committed transaction.
func loanUoW(t *testing.T, repo *MockLoanRepository, commit bool) (*MockLoanUoW, *MockLoanUoWFactory) {
	t.Helper()
	ctx := context.Background()
	uow := new(MockLoanUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("LoanRepository").Return(repo).Once()
	if commit {
		uow.On("Commit", ctx).Return(nil).Once()
	}
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockLoanUoWFactory)
	factory.On("Create").Return(uow).Once()
	return uow, factory
}

func TestReturnBookCommandHandler_Handle(t *testing.T) {
	t.Run("late return fixes the fee", func(t *testing.T) {
		ctx := context.Background()
		l := newLoan(t, 14)
		cmd, _ := commands.NewReturnBookCommand(l.ID())

		repo := new(MockLoanRepository)
		repo.On("Get", ctx, l.ID()).Return(l, nil).Once()
		repo.On("Update", ctx, l).Return(nil).Once()
		uow, factory := loanUoW(t, repo, true)

		h := commands.NewReturnBookCommandHandler(factory, clock.NewFixed(start.AddDate(0, 0, 17)))
		require.NoError(t, h.Handle(ctx, cmd))

		assert.Equal(t, loan.Returned, l.Status())
		assert.Equal(t, "3000.00", l.OverdueFee().StringFixed())
		repo.AssertExpectations(t)
		uow.AssertExpectations(t)
	})

	t.Run("second return is refused and nothing is saved", func(t *testing.T) {
		ctx := context.Background()
		l := newLoan(t, 14)
		require.NoError(t, l.ReturnBook(start))
		cmd, _ := commands.NewReturnBookCommand(l.ID())

		repo := new(MockLoanRepository)
		repo.On("Get", ctx, l.ID()).Return(l, nil).Once()
		uow, factory := loanUoW(t, repo, false)

		h := commands.NewReturnBookCommandHandler(factory, clock.NewFixed(start))
		err := h.Handle(ctx, cmd)

		require.ErrorIs(t, err, loan.ErrAlreadyReturned)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("missing loan", func(t *testing.T) {
		ctx := context.Background()
		id := kernel.NewUUID()
		cmd, _ := commands.NewReturnBookCommand(id)

		repo := new(MockLoanRepository)
		repo.On("Get", ctx, id).Return(nil, errs.NewObjectNotFoundError("loan", id)).Once()
		_, factory := loanUoW(t, repo, false)

		h := commands.NewReturnBookCommandHandler(factory, clock.NewFixed(start))

		require.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrObjectNotFound)
	})
}

func TestExtendLoanCommandHandler_Handle(t *testing.T) {
	t.Run("extends before the due date", func(t *testing.T) {
		ctx := context.Background()
		l := newLoan(t, 14)
		cmd, err := commands.NewExtendLoanCommand(l.ID(), 7)
		require.NoError(t, err)

		repo := new(MockLoanRepository)
		repo.On("Get", ctx, l.ID()).Return(l, nil).Once()
		repo.On("Update", ctx, l).Return(nil).Once()
		_, factory := loanUoW(t, repo, true)

		h := commands.NewExtendLoanCommandHandler(factory, clock.NewFixed(start.AddDate(0, 0, 10)))
		require.NoError(t, h.Handle(ctx, cmd))

		assert.Equal(t, start.AddDate(0, 0, 21), l.DueDate())
	})

	t.Run("overdue loans cannot be extended", func(t *testing.T) {
		ctx := context.Background()
		l := newLoan(t, 14)
		cmd, _ := commands.NewExtendLoanCommand(l.ID(), 7)

		repo := new(MockLoanRepository)
		repo.On("Get", ctx, l.ID()).Return(l, nil).Once()
		_, factory := loanUoW(t, repo, false)

		h := commands.NewExtendLoanCommandHandler(factory, clock.NewFixed(start.AddDate(0, 0, 15)))

		require.ErrorIs(t, h.Handle(ctx, cmd), loan.ErrOverdueExtension)
		assert.Equal(t, start.AddDate(0, 0, 14), l.DueDate())
	})

	t.Run("days are bounded", func(t *testing.T) {
		_, err := commands.NewExtendLoanCommand(kernel.NewUUID(), 0)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

		_, err = commands.NewExtendLoanCommand(kernel.NewUUID(), loan.MaxLoanDays+1)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestCancelLoanCommandHandler_Handle(t *testing.T) {
	ctx := context.Background()
	l := newLoan(t, 14)
	cmd, _ := commands.NewCancelLoanCommand(l.ID())

	repo := new(MockLoanRepository)
	repo.On("Get", ctx, l.ID()).Return(l, nil).Once()
	repo.On("Update", ctx, l).Return(nil).Once()
	_, factory := loanUoW(t, repo, true)

	require.NoError(t, commands.NewCancelLoanCommandHandler(factory).Handle(ctx, cmd))
	assert.Equal(t, loan.Cancelled, l.Status())
}

func TestRefreshOverdueLoansCommandHandler_Handle(t *testing.T) {
	ctx := context.Background()
	now := start.Add(20 * 24 * time.Hour)

	late := newLoan(t, 14)
	onTime := newLoan(t, 30)
	alreadyLate := newLoan(t, 14)
	alreadyLate.UpdateStatus(now)

	repo := new(MockLoanRepository)
	repo.On("GetAllOpen", ctx).Return([]*loan.Loan{late, onTime, alreadyLate}, nil).Once()
	repo.On("Update", ctx, late).Return(nil).Once()
	uow, factory := loanUoW(t, repo, true)

	h := commands.NewRefreshOverdueLoansCommandHandler(factory, clock.NewFixed(now))
	result, err := h.Handle(ctx, commands.NewRefreshOverdueLoansCommand())

	require.NoError(t, err)
	assert.Equal(t, commands.RefreshOverdueLoansResult{Scanned: 3, Updated: 1, Overdue: 2}, result)
	assert.Equal(t, loan.Overdue, late.Status())
	assert.Equal(t, "6000.00", late.OverdueFee().StringFixed())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}
