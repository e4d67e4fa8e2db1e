package ports

import (
	"context"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for orders and their line items.
type OrderRepository interface {
	Add(ctx context.Context, aggregate *order.Order) error
	Update(ctx context.Context, aggregate *order.Order) error

	// Get loads an order with its line items and locks the order row.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
