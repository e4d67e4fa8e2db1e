package commands_test

import (
	"context"

	"backoffice/internal/core/application/usecases/commands"
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/loan"
	"backoffice/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockLoanRepository struct{ mock.Mock }

func (m *MockLoanRepository) Add(ctx context.Context, l *loan.Loan) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockLoanRepository) Update(ctx context.Context, l *loan.Loan) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockLoanRepository) Get(ctx context.Context, id kernel.UUID) (*loan.Loan, error) {
	args := m.Called(ctx, id)
	l, _ := args.Get(0).(*loan.Loan)
	return l, args.Error(1)
}

func (m *MockLoanRepository) GetAllOpen(ctx context.Context) ([]*loan.Loan, error) {
	args := m.Called(ctx)
	loans, _ := args.Get(0).([]*loan.Loan)
	return loans, args.Error(1)
}

func (m *MockLoanRepository) HasOpenLoanForBook(ctx context.Context, bookID kernel.UUID) (bool, error) {
	args := m.Called(ctx, bookID)
	return args.Bool(0), args.Error(1)
}

type MockLoanUoW struct{ mock.Mock }

func (m *MockLoanUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockLoanUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockLoanUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockLoanUoW) LoanRepository() ports.LoanRepository {
	args := m.Called()
	return args.Get(0).(ports.LoanRepository)
}

type MockLoanUoWFactory struct{ mock.Mock }

func (m *MockLoanUoWFactory) Create() commands.LoanUoW {
	args := m.Called()
	return args.Get(0).(commands.LoanUoW)
}
