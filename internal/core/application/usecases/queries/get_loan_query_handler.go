package queries

import (
	"context"

	"backoffice/internal/core/ports"
	"backoffice/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetLoanQueryHandler answers GetLoanQuery. A loan whose due date passed since
// the last refresh is reported OVERDUE with its current fee, while the stored
// row stays as it is.
//
// Example:
//
//	handler := NewGetLoanQueryHandler(db, clock.System{})
//	query, _ := NewGetLoanQuery(loanID)
//
//	view, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("%s owes %s\n", view.Status, view.OverdueFee)
type GetLoanQueryHandler struct {
	db    *gorm.DB
	clock ports.Clock
}

func NewGetLoanQueryHandler(db *gorm.DB, clock ports.Clock) GetLoanQueryHandler {
	return GetLoanQueryHandler{db: db, clock: clock}
}

func (h GetLoanQueryHandler) Handle(ctx context.Context, query GetLoanQuery) (LoanView, error) {
	if err := query.Validate(); err != nil {
		return LoanView{}, err
	}

	var row loanRow
	result := h.db.WithContext(ctx).
		Raw(`SELECT `+loanColumns+` FROM loans WHERE id = ?`, query.LoanID().String()).
		Scan(&row)
	if result.Error != nil {
		return LoanView{}, result.Error
	}
	if result.RowsAffected == 0 {
		return LoanView{}, errs.NewObjectNotFoundError("loan", query.LoanID())
	}

	return row.view(h.clock.Now())
}
