package loanrepo

import (
	"context"
	"errors"
	"fmt"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/loan"
	"backoffice/internal/core/ports"
	"backoffice/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	uniqueViolation = "23505"
	openBookIndex   = "idx_loans_open_book"
)

// GormLoanRepository implements ports.LoanRepository using GORM.
type GormLoanRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormLoanRepository(db *gorm.DB, tracker aggregateTracker) *GormLoanRepository {
	return &GormLoanRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormLoanRepository) Add(ctx context.Context, aggregate *loan.Loan) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if isOpenBookViolation(err) {
			return fmt.Errorf("%w: %s", ports.ErrBookAlreadyOnLoan, aggregate.BookID())
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes every column, including a return date that stays NULL.
func (r *GormLoanRepository) Update(ctx context.Context, aggregate *loan.Loan) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&LoanDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("loan", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get loads the loan with SELECT ... FOR UPDATE.
func (r *GormLoanRepository) Get(ctx context.Context, id kernel.UUID) (*loan.Loan, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto LoanDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("loan", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormLoanRepository) GetAllOpen(ctx context.Context) ([]*loan.Loan, error) {
	var dtos []LoanDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Order("due_date").
		Find(&dtos, "status IN ?", []string{loan.Active.String(), loan.Overdue.String()}).Error
	if err != nil {
		return nil, err
	}

	loans := make([]*loan.Loan, 0, len(dtos))
	for _, dto := range dtos {
		l, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		loans = append(loans, l)
	}

	return loans, nil
}

func (r *GormLoanRepository) HasOpenLoanForBook(ctx context.Context, bookID kernel.UUID) (bool, error) {
	if err := bookID.Validate(); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&LoanDTO{}).
		Where("book_id = ? AND status IN ?", bookID.Bytes(), []string{loan.Active.String(), loan.Overdue.String()}).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func isOpenBookViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == openBookIndex
}
