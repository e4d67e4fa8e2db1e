package ports

import (
	"context"

	"backoffice/internal/core/domain/model/delivery"
	"backoffice/internal/core/domain/model/kernel"
)

// DeliveryRepository defines the persistence contract for deliveries. An order has
// at most one delivery, created on confirmation.
type DeliveryRepository interface {
	Add(ctx context.Context, aggregate *delivery.Delivery) error
	Update(ctx context.Context, aggregate *delivery.Delivery) error
	Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)

	// GetByOrder loads and locks the delivery of the order.
	GetByOrder(ctx context.Context, orderID kernel.UUID) (*delivery.Delivery, error)
}
