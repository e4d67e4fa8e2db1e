// Package refundrepo persists the refund aggregate with GORM.
package refundrepo

import (
	"time"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/refund"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RefundDTO struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID             uuid.UUID       `gorm:"type:uuid;index:idx_refunds_order_status"`
	Amount              decimal.Decimal `gorm:"type:numeric(19,2);not null"`
	Currency            string          `gorm:"type:char(3);not null"`
	Reason              string          `gorm:"type:text;not null"`
	Status              string          `gorm:"type:varchar(20);not null;index:idx_refunds_order_status"`
	RequestedBy         string          `gorm:"type:varchar(100);not null"`
	ApprovedBy          string          `gorm:"type:varchar(100)"`
	RejectedBy          string          `gorm:"type:varchar(100)"`
	RejectionReason     string          `gorm:"type:text"`
	RefundTransactionID string          `gorm:"type:varchar(100)"`
	AdminMemo           string          `gorm:"type:text"`
	Bank                BankAccountDTO  `gorm:"embedded;embeddedPrefix:bank_"`
	RequestedAt         time.Time       `gorm:"not null"`
	ApprovedAt          *time.Time      `gorm:"default:null"`
	RejectedAt          *time.Time      `gorm:"default:null"`
	ProcessingAt        *time.Time      `gorm:"default:null"`
	CompletedAt         *time.Time      `gorm:"default:null"`
	FailedAt            *time.Time      `gorm:"default:null"`
}

func (RefundDTO) TableName() string {
	return "refunds"
}

// BankAccountDTO holds the payout account for refunds of bank transfers.
type BankAccountDTO struct {
	Name          string `gorm:"type:varchar(50)"`
	AccountNumber string `gorm:"type:varchar(50)"`
	AccountHolder string `gorm:"type:varchar(100)"`
}

func fromDomain(r *refund.Refund) RefundDTO {
	ts, actors, bank := r.Timestamps(), r.Actors(), r.BankAccount()
	return RefundDTO{
		ID:                  r.ID().Bytes(),
		OrderID:             r.OrderID().Bytes(),
		Amount:              r.Amount().Amount(),
		Currency:            r.Amount().Currency(),
		Reason:              r.Reason(),
		Status:              r.Status().String(),
		RequestedBy:         actors.RequestedBy,
		ApprovedBy:          actors.ApprovedBy,
		RejectedBy:          actors.RejectedBy,
		RejectionReason:     r.RejectionReason(),
		RefundTransactionID: r.RefundTransactionID(),
		AdminMemo:           r.AdminMemo(),
		Bank: BankAccountDTO{
			Name:          bank.BankName(),
			AccountNumber: bank.AccountNumber(),
			AccountHolder: bank.AccountHolder(),
		},
		RequestedAt:  ts.RequestedAt,
		ApprovedAt:   ts.ApprovedAt,
		RejectedAt:   ts.RejectedAt,
		ProcessingAt: ts.ProcessingAt,
		CompletedAt:  ts.CompletedAt,
		FailedAt:     ts.FailedAt,
	}
}

func toDomain(dto RefundDTO) (*refund.Refund, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromGoogle(dto.OrderID)
	if err != nil {
		return nil, err
	}
	status, err := refund.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	amount, err := kernel.NewMoney(dto.Amount, dto.Currency)
	if err != nil {
		return nil, err
	}
	bank, err := refund.NewBankAccount(dto.Bank.Name, dto.Bank.AccountNumber, dto.Bank.AccountHolder)
	if err != nil {
		return nil, err
	}

	return refund.RestoreRefund(id, orderID, amount, dto.Reason, status,
		refund.Actors{RequestedBy: dto.RequestedBy, ApprovedBy: dto.ApprovedBy, RejectedBy: dto.RejectedBy},
		dto.RejectionReason, dto.RefundTransactionID, dto.AdminMemo, bank,
		refund.Timestamps{
			RequestedAt:  dto.RequestedAt,
			ApprovedAt:   dto.ApprovedAt,
			RejectedAt:   dto.RejectedAt,
			ProcessingAt: dto.ProcessingAt,
			CompletedAt:  dto.CompletedAt,
			FailedAt:     dto.FailedAt,
		})
}
