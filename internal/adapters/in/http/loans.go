package http

import (
	"net/http"

	"backoffice/internal/core/application/usecases/commands"
	"backoffice/internal/core/application/usecases/queries"
	"backoffice/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// BorrowBook handles POST /api/v1/loans.
func (s *Server) BorrowBook(c echo.Context) error {
	const op = "borrow_book"

	var req BorrowBookRequest
	if err := c.Bind(&req); err != nil {
		return s.badRequest(c, op, err)
	}
	if req.LoanDays == 0 {
		req.LoanDays = s.defaultLoanDays
	}

	memberID, err := kernel.UUIDFromGoogle(req.MemberID)
	if err != nil {
		return s.fail(c, op, err)
	}
	bookID, err := kernel.UUIDFromGoogle(req.BookID)
	if err != nil {
		return s.fail(c, op, err)
	}

	loanID := kernel.NewUUID()
	cmd, err := commands.NewBorrowBookCommand(loanID, memberID, bookID, req.LoanDays)
	if err != nil {
		return s.fail(c, op, err)
	}
	if err = s.handlers.BorrowBook.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, op, err)
	}

	return c.JSON(http.StatusCreated, Created{ID: loanID.Bytes()})
}

// GetLoan handles GET /api/v1/loans/:id.
func (s *Server) GetLoan(c echo.Context) error {
	const op = "get_loan"

	id, err := pathID(c)
	if err != nil {
		return s.fail(c, op, err)
	}
	query, err := queries.NewGetLoanQuery(id)
	if err != nil {
		return s.fail(c, op, err)
	}

	view, err := s.handlers.GetLoan.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, op, err)
	}
	return c.JSON(http.StatusOK, toLoan(view))
}

// GetOverdueLoans handles GET /api/v1/loans/overdue.
func (s *Server) GetOverdueLoans(c echo.Context) error {
	views, err := s.handlers.GetOverdueLoans.Handle(c.Request().Context(), queries.NewGetOverdueLoansQuery())
	if err != nil {
		return s.fail(c, "get_overdue_loans", err)
	}

	response := make([]Loan, len(views))
	for i, view := range views {
		response[i] = toLoan(view)
	}
	return c.JSON(http.StatusOK, response)
}

// RefreshOverdueLoans handles POST /api/v1/loans/refresh. The scheduled job
// runs the same command.
func (s *Server) RefreshOverdueLoans(c echo.Context) error {
	result, err := s.handlers.RefreshOverdueLoans.Handle(c.Request().Context(), commands.NewRefreshOverdueLoansCommand())
	s.metrics.RecordRefresh(result.Overdue, err)
	if err != nil {
		return s.fail(c, "refresh_overdue_loans", err)
	}

	return c.JSON(http.StatusOK, RefreshResult{
		Scanned: result.Scanned,
		Updated: result.Updated,
		Overdue: result.Overdue,
	})
}

func (s *Server) ReturnBook(c echo.Context) error {
	const op = "return_book"

	id, err := pathID(c)
	if err != nil {
		return s.fail(c, op, err)
	}
	cmd, err := commands.NewReturnBookCommand(id)
	if err != nil {
		return s.fail(c, op, err)
	}
	if err = s.handlers.ReturnBook.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, op, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) ExtendLoan(c echo.Context) error {
	const op = "extend_loan"

	id, err := pathID(c)
	if err != nil {
		return s.fail(c, op, err)
	}
	var req ExtendLoanRequest
	if err = c.Bind(&req); err != nil {
		return s.badRequest(c, op, err)
	}

	cmd, err := commands.NewExtendLoanCommand(id, req.AdditionalDays)
	if err != nil {
		return s.fail(c, op, err)
	}
	if err = s.handlers.ExtendLoan.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, op, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) CancelLoan(c echo.Context) error {
	const op = "cancel_loan"

	id, err := pathID(c)
	if err != nil {
		return s.fail(c, op, err)
	}
	cmd, err := commands.NewCancelLoanCommand(id)
	if err != nil {
		return s.fail(c, op, err)
	}
	if err = s.handlers.CancelLoan.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, op, err)
	}
	return c.NoContent(http.StatusNoContent)
}
