package http

import (
	"errors"
	"net/http"

	"backoffice/internal/core/application/usecases/commands"
	"backoffice/internal/core/domain/model/delivery"
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/loan"
	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/core/domain/model/payment"
	"backoffice/internal/core/domain/model/refund"
	"backoffice/internal/core/domain/services"
	"backoffice/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// conflicts are refused transitions: the request was well formed but the
// aggregate is in the wrong state for it.
var conflicts = []error{
	loan.ErrAlreadyReturned,
	loan.ErrOverdueExtension,
	loan.ErrInvalidLoanState,
	order.ErrInvalidOrderState,
	order.ErrCancellationNotAllowed,
	payment.ErrInvalidPaymentState,
	payment.ErrRefundAmountMismatch,
	delivery.ErrInvalidDeliveryState,
	delivery.ErrAddressChangeNotAllowed,
	refund.ErrInvalidRefundState,
	services.ErrRefundExceedsPaidAmount,
	services.ErrPaymentOrderMismatch,
	commands.ErrBookAlreadyOnLoan,
	commands.ErrOrderNotPaid,
	commands.ErrOpenRefunds,
}

var invalids = []error{
	errs.ErrValueIsRequired,
	errs.ErrValueIsInvalid,
	errs.ErrValueIsOutOfRange,
	kernel.ErrCurrencyMismatch,
}

// classify maps an error to its status code and the kind label used in metrics.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, "not_found"
	case isAny(err, conflicts):
		return http.StatusConflict, "conflict"
	case isAny(err, invalids):
		return http.StatusBadRequest, "invalid"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func isAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// fail writes the error response for operation. Internal errors are logged and
// their message is not sent to the client.
func (s *Server) fail(c echo.Context, operation string, err error) error {
	code, kind := classify(err)
	s.metrics.RecordError(operation, kind, err)

	message := err.Error()
	if code == http.StatusInternalServerError {
		s.logger.ErrorContext(c.Request().Context(), "request failed",
			"operation", operation, "error", err)
		message = http.StatusText(code)
	}

	return c.JSON(code, Error{Code: code, Message: message})
}

// badRequest reports a body that could not be decoded.
func (s *Server) badRequest(c echo.Context, operation string, err error) error {
	s.metrics.RecordError(operation, "invalid", err)
	return c.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: "Invalid request body",
	})
}
