package http

import (
	"net/http"

	"backoffice/internal/core/application/usecases/commands"
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/refund"

	"github.com/labstack/echo/v4"
)

// RequestRefund handles POST /api/v1/orders/:id/refunds.
func (s *Server) RequestRefund(c echo.Context) error {
	const op = "request_refund"

	orderID, err := pathID(c)
	if err != nil {
		return s.fail(c, op, err)
	}
	var req RefundRequest
	if err = c.Bind(&req); err != nil {
		return s.badRequest(c, op, err)
	}

	amount, err := money(req.Amount, req.Currency, false)
	if err != nil {
		return s.fail(c, op, err)
	}
	bank, err := refund.NewBankAccount(req.BankAccount.BankName, req.BankAccount.AccountNumber, req.BankAccount.AccountHolder)
	if err != nil {
		return s.fail(c, op, err)
	}

	refundID := kernel.NewUUID()
	cmd, err := commands.NewRequestRefundCommand(refundID, orderID, amount, req.Reason, req.RequestedBy, bank)
	if err != nil {
		return s.fail(c, op, err)
	}
	if err = s.handlers.RequestRefund.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, op, err)
	}

	return c.JSON(http.StatusCreated, Created{ID: refundID.Bytes()})
}

func (s *Server) ApproveRefund(c echo.Context) error {
	const op = "approve_refund"

	id, err := pathID(c)
	if err != nil {
		return s.fail(c, op, err)
	}
	var req ActorRequest
	if err = c.Bind(&req); err != nil {
		return s.badRequest(c, op, err)
	}

	cmd, err := commands.NewApproveRefundCommand(id, req.Actor)
	if err != nil {
		return s.fail(c, op, err)
	}
	if err = s.handlers.ApproveRefund.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, op, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) RejectRefund(c echo.Context) error {
	const op = "reject_refund"

	id, err := pathID(c)
	if err != nil {
		return s.fail(c, op, err)
	}
	var req RejectRefundRequest
	if err = c.Bind(&req); err != nil {
		return s.badRequest(c, op, err)
	}

	cmd, err := commands.NewRejectRefundCommand(id, req.Actor, req.Reason)
	if err != nil {
		return s.fail(c, op, err)
	}
	if err = s.handlers.RejectRefund.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, op, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) StartRefundProcessing(c echo.Context) error {
	const op = "start_refund_processing"

	id, err := pathID(c)
	if err != nil {
		return s.fail(c, op, err)
	}
	cmd, err := commands.NewStartRefundProcessingCommand(id)
	if err != nil {
		return s.fail(c, op, err)
	}
	if err = s.handlers.StartRefundProcessing.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, op, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// CompleteRefund handles POST /api/v1/refunds/:id/complete. The payment is
// credited in the same transaction.
func (s *Server) CompleteRefund(c echo.Context) error {
	const op = "complete_refund"

	id, err := pathID(c)
	if err != nil {
		return s.fail(c, op, err)
	}
	var req TransactionRequest
	if err = c.Bind(&req); err != nil {
		return s.badRequest(c, op, err)
	}

	cmd, err := commands.NewCompleteRefundCommand(id, req.TransactionID)
	if err != nil {
		return s.fail(c, op, err)
	}
	if err = s.handlers.CompleteRefund.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, op, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) FailRefund(c echo.Context) error {
	const op = "fail_refund"

	id, err := pathID(c)
	if err != nil {
		return s.fail(c, op, err)
	}
	var req MemoRequest
	if err = c.Bind(&req); err != nil {
		return s.badRequest(c, op, err)
	}

	cmd, err := commands.NewFailRefundCommand(id, req.Memo)
	if err != nil {
		return s.fail(c, op, err)
	}
	if err = s.handlers.FailRefund.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, op, err)
	}
	return c.NoContent(http.StatusNoContent)
}
