package queries

import (
	"context"

	"backoffice/internal/core/domain/model/loan"
	"backoffice/internal/core/ports"

	"gorm.io/gorm"
)

type GetOverdueLoansQueryHandler struct {
	db    *gorm.DB
	clock ports.Clock
}

func NewGetOverdueLoansQueryHandler(db *gorm.DB, clock ports.Clock) GetOverdueLoansQueryHandler {
	return GetOverdueLoansQueryHandler{db: db, clock: clock}
}

// Handle returns the overdue loans recomputed at the handler's clock.
func (h GetOverdueLoansQueryHandler) Handle(ctx context.Context, query GetOverdueLoansQuery) ([]LoanView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	now := h.clock.Now()
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+loanColumns+`
		FROM loans
		WHERE status IN (?, ?) AND due_date < ?
		ORDER BY due_date, id
	`, loan.Active.String(), loan.Overdue.String(), now).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]LoanView, 0)
	for rows.Next() {
		var row loanRow
		if err := h.db.ScanRows(rows, &row); err != nil {
			return nil, err
		}
		view, err := row.view(now)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return views, nil
}
