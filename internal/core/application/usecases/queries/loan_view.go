package queries

import (
	"time"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/loan"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LoanView is a loan as seen at the time of the read.
type LoanView struct {
	ID          kernel.UUID
	MemberID    kernel.UUID
	BookID      kernel.UUID
	LoanDate    time.Time
	DueDate     time.Time
	ReturnDate  *time.Time
	Status      loan.Status
	OverdueDays int
	OverdueFee  kernel.Money
}

const loanColumns = `id, member_id, book_id, loan_date, due_date, return_date, status, overdue_fee, daily_rate, currency`

// loanRow mirrors the loans table for raw reads.
type loanRow struct {
	ID         uuid.UUID
	MemberID   uuid.UUID
	BookID     uuid.UUID
	LoanDate   time.Time
	DueDate    time.Time
	ReturnDate *time.Time
	Status     string
	OverdueFee decimal.Decimal
	DailyRate  decimal.Decimal
	Currency   string
}

// view rebuilds the loan, recomputes it at now and drops the aggregate.
func (r loanRow) view(now time.Time) (LoanView, error) {
	l, err := r.restore()
	if err != nil {
		return LoanView{}, err
	}
	l.UpdateStatus(now)

	return LoanView{
		ID:          l.ID(),
		MemberID:    l.MemberID(),
		BookID:      l.BookID(),
		LoanDate:    l.LoanDate(),
		DueDate:     l.DueDate(),
		ReturnDate:  l.ReturnDate(),
		Status:      l.Status(),
		OverdueDays: l.OverdueDays(now),
		OverdueFee:  l.OverdueFee(),
	}, nil
}

func (r loanRow) restore() (*loan.Loan, error) {
	id, err := kernel.UUIDFromGoogle(r.ID)
	if err != nil {
		return nil, err
	}
	memberID, err := kernel.UUIDFromGoogle(r.MemberID)
	if err != nil {
		return nil, err
	}
	bookID, err := kernel.UUIDFromGoogle(r.BookID)
	if err != nil {
		return nil, err
	}
	status, err := loan.ParseStatus(r.Status)
	if err != nil {
		return nil, err
	}
	fee, err := kernel.NewMoney(r.OverdueFee, r.Currency)
	if err != nil {
		return nil, err
	}
	rate, err := kernel.NewMoney(r.DailyRate, r.Currency)
	if err != nil {
		return nil, err
	}
	policy, err := loan.NewFeePolicy(rate)
	if err != nil {
		return nil, err
	}

	return loan.RestoreLoan(id, memberID, bookID, r.LoanDate, r.DueDate, r.ReturnDate, status, fee, policy)
}
