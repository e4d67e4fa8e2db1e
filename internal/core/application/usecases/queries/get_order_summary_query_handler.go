package queries

import (
	"context"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/core/domain/model/payment"
	"backoffice/internal/core/domain/model/refund"
	"backoffice/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrderSummaryQueryHandler answers GetOrderSummaryQuery with a single
// statement. Only COMPLETED refunds in the order currency count as refunded.
type GetOrderSummaryQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderSummaryQueryHandler(db *gorm.DB) GetOrderSummaryQueryHandler {
	return GetOrderSummaryQueryHandler{db: db}
}

type orderSummaryRow struct {
	Status         string
	TotalAmount    decimal.Decimal
	DiscountAmount decimal.Decimal
	Currency       string
	PaymentStatus  *string
	RefundedTotal  decimal.Decimal
}

func (h GetOrderSummaryQueryHandler) Handle(ctx context.Context, query GetOrderSummaryQuery) (OrderSummary, error) {
	if err := query.Validate(); err != nil {
		return OrderSummary{}, err
	}

	var row orderSummaryRow
	result := h.db.WithContext(ctx).Raw(`
		SELECT
			o.status,
			o.total_amount,
			o.discount_amount,
			o.currency,
			p.status AS payment_status,
			COALESCE((
				SELECT SUM(r.amount)
				FROM refunds r
				WHERE r.order_id = o.id AND r.status = ? AND r.currency = o.currency
			), 0) AS refunded_total
		FROM orders o
		LEFT JOIN payments p ON p.order_id = o.id
		WHERE o.id = ?
	`, refund.Completed.String(), query.OrderID().String()).Scan(&row)
	if result.Error != nil {
		return OrderSummary{}, result.Error
	}
	if result.RowsAffected == 0 {
		return OrderSummary{}, errs.NewObjectNotFoundError("order", query.OrderID())
	}

	return row.summary(query.OrderID())
}

func (r orderSummaryRow) summary(orderID kernel.UUID) (OrderSummary, error) {
	status, err := order.ParseStatus(r.Status)
	if err != nil {
		return OrderSummary{}, err
	}
	total, err := kernel.NewMoney(r.TotalAmount, r.Currency)
	if err != nil {
		return OrderSummary{}, err
	}
	discount, err := kernel.NewMoney(r.DiscountAmount, r.Currency)
	if err != nil {
		return OrderSummary{}, err
	}
	refunded, err := kernel.NewMoney(r.RefundedTotal, r.Currency)
	if err != nil {
		return OrderSummary{}, err
	}
	final, err := total.Subtract(discount)
	if err != nil {
		return OrderSummary{}, err
	}
	net, err := final.Subtract(refunded)
	if err != nil {
		return OrderSummary{}, err
	}

	paymentStatus := payment.Unknown
	if r.PaymentStatus != nil {
		if paymentStatus, err = payment.ParseStatus(*r.PaymentStatus); err != nil {
			return OrderSummary{}, err
		}
	}

	return OrderSummary{
		OrderID:        orderID,
		Status:         status,
		TotalAmount:    total,
		DiscountAmount: discount,
		FinalAmount:    final,
		RefundedTotal:  refunded,
		NetAmount:      net,
		Cancellable:    status.IsCancellable(),
		PaymentStatus:  paymentStatus,
	}, nil
}
