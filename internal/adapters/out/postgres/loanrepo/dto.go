// Package loanrepo persists the loan aggregate with GORM.
package loanrepo

import (
	"time"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/loan"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LoanDTO is one row of the loans table. The daily rate is stored with the loan
// so a later change of the configured rate does not reprice running loans.
// idx_loans_open_book allows at most one ACTIVE or OVERDUE loan per book.
type LoanDTO struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	MemberID   uuid.UUID       `gorm:"type:uuid;index"`
	BookID     uuid.UUID       `gorm:"type:uuid;index:idx_loans_open_book,unique,where:status = 'ACTIVE' OR status = 'OVERDUE'"`
	LoanDate   time.Time       `gorm:"not null"`
	DueDate    time.Time       `gorm:"not null;index"`
	ReturnDate *time.Time      `gorm:"default:null"`
	Status     string          `gorm:"type:varchar(16);not null;index"`
	OverdueFee decimal.Decimal `gorm:"type:numeric(19,2);not null"`
	DailyRate  decimal.Decimal `gorm:"type:numeric(19,2);not null"`
	Currency   string          `gorm:"type:char(3);not null"`
}

func (LoanDTO) TableName() string {
	return "loans"
}

func fromDomain(l *loan.Loan) LoanDTO {
	return LoanDTO{
		ID:         l.ID().Bytes(),
		MemberID:   l.MemberID().Bytes(),
		BookID:     l.BookID().Bytes(),
		LoanDate:   l.LoanDate(),
		DueDate:    l.DueDate(),
		ReturnDate: l.ReturnDate(),
		Status:     l.Status().String(),
		OverdueFee: l.OverdueFee().Amount(),
		DailyRate:  l.Policy().DailyRate().Amount(),
		Currency:   l.OverdueFee().Currency(),
	}
}

func toDomain(dto LoanDTO) (*loan.Loan, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	memberID, err := kernel.UUIDFromGoogle(dto.MemberID)
	if err != nil {
		return nil, err
	}
	bookID, err := kernel.UUIDFromGoogle(dto.BookID)
	if err != nil {
		return nil, err
	}
	status, err := loan.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	fee, err := kernel.NewMoney(dto.OverdueFee, dto.Currency)
	if err != nil {
		return nil, err
	}
	rate, err := kernel.NewMoney(dto.DailyRate, dto.Currency)
	if err != nil {
		return nil, err
	}
	policy, err := loan.NewFeePolicy(rate)
	if err != nil {
		return nil, err
	}

	return loan.RestoreLoan(id, memberID, bookID, dto.LoanDate, dto.DueDate, dto.ReturnDate, status, fee, policy)
}
