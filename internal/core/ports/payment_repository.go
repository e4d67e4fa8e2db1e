package ports

import (
	"context"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/payment"
)

// PaymentRepository defines the persistence contract for payments. An order has
// exactly one payment.
type PaymentRepository interface {
	Add(ctx context.Context, aggregate *payment.Payment) error
	Update(ctx context.Context, aggregate *payment.Payment) error
	Get(ctx context.Context, id kernel.UUID) (*payment.Payment, error)

	// GetByOrder loads and locks the payment of the order.
	GetByOrder(ctx context.Context, orderID kernel.UUID) (*payment.Payment, error)
}
