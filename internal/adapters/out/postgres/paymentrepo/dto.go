// Package paymentrepo persists the payment aggregate with GORM.
package paymentrepo

import (
	"time"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/payment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentDTO struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID       `gorm:"type:uuid;uniqueIndex"`
	Method         string          `gorm:"type:varchar(20);not null"`
	Amount         decimal.Decimal `gorm:"type:numeric(19,2);not null"`
	RefundedAmount decimal.Decimal `gorm:"type:numeric(19,2);not null"`
	Currency       string          `gorm:"type:char(3);not null"`
	Status         string          `gorm:"type:varchar(20);not null;index"`
	TransactionID  string          `gorm:"type:varchar(100)"`
	FailureReason  string          `gorm:"type:text"`
	CreatedAt      time.Time       `gorm:"not null"`
	PaidAt         *time.Time      `gorm:"default:null"`
	FailedAt       *time.Time      `gorm:"default:null"`
	CancelledAt    *time.Time      `gorm:"default:null"`
	RefundedAt     *time.Time      `gorm:"default:null"`
}

func (PaymentDTO) TableName() string {
	return "payments"
}

func fromDomain(p *payment.Payment) PaymentDTO {
	ts := p.Timestamps()
	return PaymentDTO{
		ID:             p.ID().Bytes(),
		OrderID:        p.OrderID().Bytes(),
		Method:         string(p.Method()),
		Amount:         p.Amount().Amount(),
		RefundedAmount: p.RefundedAmount().Amount(),
		Currency:       p.Amount().Currency(),
		Status:         p.Status().String(),
		TransactionID:  p.TransactionID(),
		FailureReason:  p.FailureReason(),
		CreatedAt:      ts.CreatedAt,
		PaidAt:         ts.PaidAt,
		FailedAt:       ts.FailedAt,
		CancelledAt:    ts.CancelledAt,
		RefundedAt:     ts.RefundedAt,
	}
}

func toDomain(dto PaymentDTO) (*payment.Payment, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromGoogle(dto.OrderID)
	if err != nil {
		return nil, err
	}
	method, err := payment.ParseMethod(dto.Method)
	if err != nil {
		return nil, err
	}
	status, err := payment.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	amount, err := kernel.NewMoney(dto.Amount, dto.Currency)
	if err != nil {
		return nil, err
	}
	refunded, err := kernel.NewMoney(dto.RefundedAmount, dto.Currency)
	if err != nil {
		return nil, err
	}

	return payment.RestorePayment(id, orderID, method, amount, refunded, status, dto.TransactionID, dto.FailureReason,
		payment.Timestamps{
			CreatedAt:   dto.CreatedAt,
			PaidAt:      dto.PaidAt,
			FailedAt:    dto.FailedAt,
			CancelledAt: dto.CancelledAt,
			RefundedAt:  dto.RefundedAt,
		})
}
