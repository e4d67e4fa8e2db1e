package refundrepo

import (
	"context"
	"errors"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/refund"
	"backoffice/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRefundRepository implements ports.RefundRepository using GORM.
type GormRefundRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormRefundRepository(db *gorm.DB, tracker aggregateTracker) *GormRefundRepository {
	return &GormRefundRepository{db: db, tracker: tracker}
}

func (r *GormRefundRepository) Add(ctx context.Context, aggregate *refund.Refund) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormRefundRepository) Update(ctx context.Context, aggregate *refund.Refund) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&RefundDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Omit("RequestedAt").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("refund", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get loads the refund with SELECT ... FOR UPDATE.
func (r *GormRefundRepository) Get(ctx context.Context, id kernel.UUID) (*refund.Refund, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RefundDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("refund", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// CountOpenForOrder counts refunds that have not reached a terminal status.
func (r *GormRefundRepository) CountOpenForOrder(ctx context.Context, orderID kernel.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&RefundDTO{}).
		Where("order_id = ? AND status IN ?", orderID.Bytes(), []string{
			refund.Requested.String(), refund.Approved.String(), refund.Processing.String(),
		}).
		Count(&count).Error
	return count, err
}

type completedTotal struct {
	Currency string
	Total    decimal.Decimal
}

// TotalCompletedForOrder sums COMPLETED refunds per currency. Rows in any other
// currency than the requested one are reported as a mismatch.
func (r *GormRefundRepository) TotalCompletedForOrder(
	ctx context.Context,
	orderID kernel.UUID,
	currency string,
) (kernel.Money, error) {
	total, err := kernel.ZeroMoney(currency)
	if err != nil {
		return kernel.Money{}, err
	}

	var rows []completedTotal
	err = r.db.WithContext(ctx).Raw(`
		SELECT currency, SUM(amount) AS total
		FROM refunds
		WHERE order_id = ? AND status = ?
		GROUP BY currency`,
		orderID.Bytes(), refund.Completed.String(),
	).Scan(&rows).Error
	if err != nil {
		return kernel.Money{}, err
	}

	for _, row := range rows {
		sum, err := kernel.NewMoney(row.Total, row.Currency)
		if err != nil {
			return kernel.Money{}, err
		}
		if total, err = total.Add(sum); err != nil {
			return kernel.Money{}, err
		}
	}

	return total, nil
}
