package commands_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"backoffice/internal/core/application/usecases/commands"
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/loan"
	"backoffice/internal/core/ports"
	"backoffice/internal/pkg/clock"
	"backoffice/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var start = time.Date(2025, time.March, 3, 9, 0, 0, 0, time.UTC)

func TestNewBorrowBookCommand(t *testing.T) {
	t.Run("zero days means the default period", func(t *testing.T) {
		cmd, err := commands.NewBorrowBookCommand(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), 0)

		require.NoError(t, err)
		assert.Equal(t, loan.DefaultLoanDays, cmd.LoanDays())
	})

	t.Run("days past the maximum are out of range", func(t *testing.T) {
		_, err := commands.NewBorrowBookCommand(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), loan.MaxLoanDays+1)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("ids are required", func(t *testing.T) {
		_, err := commands.NewBorrowBookCommand(kernel.UUID{}, kernel.NewUUID(), kernel.NewUUID(), 7)

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}

func TestBorrowBookCommandHandler_Handle_Success(t *testing.T) {
	ctx := context.Background()
	cmd, _ := commands.NewBorrowBookCommand(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), 7)

	repo := new(MockLoanRepository)
	uow := new(MockLoanUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("LoanRepository").Return(repo).Once(),
		repo.On("HasOpenLoanForBook", ctx, cmd.BookID()).Return(false, nil).Once(),
		repo.On("Add", ctx, mock.MatchedBy(func(l *loan.Loan) bool {
			return l.ID().IsEqual(cmd.LoanID()) && l.DueDate().Equal(start.AddDate(0, 0, 7))
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockLoanUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewBorrowBookCommandHandler(factory, clock.NewFixed(start), loan.DefaultFeePolicy())
	err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestBorrowBookCommandHandler_Handle_BookOnLoan(t *testing.T) {
	ctx := context.Background()
	cmd, _ := commands.NewBorrowBookCommand(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), 7)

	repo := new(MockLoanRepository)
	uow := new(MockLoanUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("LoanRepository").Return(repo).Once(),
		repo.On("HasOpenLoanForBook", ctx, cmd.BookID()).Return(true, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockLoanUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewBorrowBookCommandHandler(factory, clock.NewFixed(start), loan.DefaultFeePolicy())
	err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrBookAlreadyOnLoan)
	repo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestBorrowBookCommandHandler_Handle_LostRace(t *testing.T) {
	ctx := context.Background()
	cmd, _ := commands.NewBorrowBookCommand(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), 7)

	repo := new(MockLoanRepository)
	uow := new(MockLoanUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("LoanRepository").Return(repo).Once(),
		repo.On("HasOpenLoanForBook", ctx, cmd.BookID()).Return(false, nil).Once(),
		repo.On("Add", ctx, mock.Anything).Return(fmt.Errorf("%w: %s", ports.ErrBookAlreadyOnLoan, cmd.BookID())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockLoanUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewBorrowBookCommandHandler(factory, clock.NewFixed(start), loan.DefaultFeePolicy())
	err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrBookAlreadyOnLoan)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestBorrowBookCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockLoanUoWFactory)
	h := commands.NewBorrowBookCommandHandler(factory, clock.NewFixed(start), loan.DefaultFeePolicy())

	err := h.Handle(context.Background(), commands.BorrowBookCommand{})

	require.ErrorIs(t, err, commands.ErrBorrowBookCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestBorrowBookCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := context.Background()
	cmd, _ := commands.NewBorrowBookCommand(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), 7)

	uow := new(MockLoanUoW)
	uow.On("Begin", ctx).Return(errors.New("begin error")).Once()
	factory := new(MockLoanUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewBorrowBookCommandHandler(factory, clock.NewFixed(start), loan.DefaultFeePolicy())

	require.EqualError(t, h.Handle(ctx, cmd), "begin error")
	uow.AssertNotCalled(t, "Rollback", mock.Anything)
}
