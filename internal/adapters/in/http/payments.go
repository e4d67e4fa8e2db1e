package http

import (
	"net/http"

	"backoffice/internal/core/application/usecases/commands"

	"github.com/labstack/echo/v4"
)

// CompletePayment handles POST /api/v1/payments/:id/complete, the gateway
// confirmation callback.
func (s *Server) CompletePayment(c echo.Context) error {
	const op = "complete_payment"

	id, err := pathID(c)
	if err != nil {
		return s.fail(c, op, err)
	}
	var req TransactionRequest
	if err = c.Bind(&req); err != nil {
		return s.badRequest(c, op, err)
	}

	cmd, err := commands.NewCompletePaymentCommand(id, req.TransactionID)
	if err != nil {
		return s.fail(c, op, err)
	}
	if err = s.handlers.CompletePayment.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, op, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) FailPayment(c echo.Context) error {
	const op = "fail_payment"

	id, err := pathID(c)
	if err != nil {
		return s.fail(c, op, err)
	}
	var req ReasonRequest
	if err = c.Bind(&req); err != nil {
		return s.badRequest(c, op, err)
	}

	cmd, err := commands.NewFailPaymentCommand(id, req.Reason)
	if err != nil {
		return s.fail(c, op, err)
	}
	if err = s.handlers.FailPayment.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, op, err)
	}
	return c.NoContent(http.StatusNoContent)
}
