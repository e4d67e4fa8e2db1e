package ports

import (
	"context"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/refund"
)

// RefundRepository defines the persistence contract for refunds.
type RefundRepository interface {
	Add(ctx context.Context, aggregate *refund.Refund) error
	Update(ctx context.Context, aggregate *refund.Refund) error
	Get(ctx context.Context, id kernel.UUID) (*refund.Refund, error)

	// TotalCompletedForOrder sums the COMPLETED refunds of an order. The result is
	// expressed in currency and is zero when nothing was refunded.
	//
	// Example:
	//   done, err := repo.TotalCompletedForOrder(ctx, orderID, p.Amount().Currency())
	//   if err != nil {
	//       return err
	//   }
	//   err = services.NewRefundReconciler().Approve(r, "admin", p.Amount(), done, now)
	TotalCompletedForOrder(ctx context.Context, orderID kernel.UUID, currency string) (kernel.Money, error)

	// CountOpenForOrder counts the refunds of an order that are REQUESTED,
	// APPROVED or PROCESSING.
	CountOpenForOrder(ctx context.Context, orderID kernel.UUID) (int64, error)
}
