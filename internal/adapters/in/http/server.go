// Package http exposes the back office lifecycle operations over a JSON API
// served by echo.
package http

import (
	"context"
	"log/slog"

	"backoffice/internal/core/application/usecases/commands"
	"backoffice/internal/core/application/usecases/queries"
	"backoffice/internal/core/domain/model/loan"
	"backoffice/internal/pkg/telemetry"

	"github.com/labstack/echo/v4"
)

// CommandHandler is satisfied by every command handler that only reports an error.
type CommandHandler[C any] interface {
	Handle(ctx context.Context, cmd C) error
}

// ResultHandler is satisfied by query handlers and by commands that return a result.
type ResultHandler[Q, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}

// Handlers lists the use cases the API dispatches to.
type Handlers struct {
	BorrowBook          CommandHandler[commands.BorrowBookCommand]
	ReturnBook          CommandHandler[commands.ReturnBookCommand]
	ExtendLoan          CommandHandler[commands.ExtendLoanCommand]
	CancelLoan          CommandHandler[commands.CancelLoanCommand]
	RefreshOverdueLoans ResultHandler[commands.RefreshOverdueLoansCommand, commands.RefreshOverdueLoansResult]

	PlaceOrder       CommandHandler[commands.PlaceOrderCommand]
	ConfirmOrder     CommandHandler[commands.ConfirmOrderCommand]
	ShipOrder        CommandHandler[commands.ShipOrderCommand]
	CompleteDelivery CommandHandler[commands.CompleteDeliveryCommand]
	CancelOrder      CommandHandler[commands.CancelOrderCommand]

	CompletePayment CommandHandler[commands.CompletePaymentCommand]
	FailPayment     CommandHandler[commands.FailPaymentCommand]

	ChangeDeliveryAddress CommandHandler[commands.ChangeDeliveryAddressCommand]
	UpdateDeliveryStatus  CommandHandler[commands.UpdateDeliveryStatusCommand]

	RequestRefund         CommandHandler[commands.RequestRefundCommand]
	ApproveRefund         CommandHandler[commands.ApproveRefundCommand]
	RejectRefund          CommandHandler[commands.RejectRefundCommand]
	StartRefundProcessing CommandHandler[commands.StartRefundProcessingCommand]
	CompleteRefund        CommandHandler[commands.CompleteRefundCommand]
	FailRefund            CommandHandler[commands.FailRefundCommand]

	GetLoan         ResultHandler[queries.GetLoanQuery, queries.LoanView]
	GetOverdueLoans ResultHandler[queries.GetOverdueLoansQuery, []queries.LoanView]
	GetOrderSummary ResultHandler[queries.GetOrderSummaryQuery, queries.OrderSummary]
}

// Server translates HTTP requests into commands and queries and maps their
// errors onto status codes.
type Server struct {
	handlers        Handlers
	logger          *slog.Logger
	metrics         *telemetry.Metrics
	defaultLoanDays int
}

func NewServer(handlers Handlers, logger *slog.Logger, metrics *telemetry.Metrics) *Server {
	return &Server{
		handlers:        handlers,
		logger:          logger.With("component", "http"),
		metrics:         metrics,
		defaultLoanDays: loan.DefaultLoanDays,
	}
}

// WithDefaultLoanDays sets the borrowing period for requests that omit loanDays.
func (s *Server) WithDefaultLoanDays(days int) *Server {
	s.defaultLoanDays = days
	return s
}

// Register mounts the API routes under /api/v1.
func (s *Server) Register(e *echo.Echo) {
	v1 := e.Group("/api/v1")

	v1.POST("/loans", s.BorrowBook)
	v1.GET("/loans/overdue", s.GetOverdueLoans)
	v1.POST("/loans/refresh", s.RefreshOverdueLoans)
	v1.GET("/loans/:id", s.GetLoan)
	v1.POST("/loans/:id/return", s.ReturnBook)
	v1.POST("/loans/:id/extend", s.ExtendLoan)
	v1.POST("/loans/:id/cancel", s.CancelLoan)

	v1.POST("/orders", s.PlaceOrder)
	v1.GET("/orders/:id/summary", s.GetOrderSummary)
	v1.POST("/orders/:id/confirm", s.ConfirmOrder)
	v1.POST("/orders/:id/ship", s.ShipOrder)
	v1.POST("/orders/:id/deliver", s.CompleteDelivery)
	v1.POST("/orders/:id/cancel", s.CancelOrder)
	v1.POST("/orders/:id/refunds", s.RequestRefund)

	v1.POST("/payments/:id/complete", s.CompletePayment)
	v1.POST("/payments/:id/fail", s.FailPayment)

	v1.PUT("/deliveries/:id/address", s.ChangeDeliveryAddress)
	v1.PUT("/deliveries/:id/status", s.UpdateDeliveryStatus)

	v1.POST("/refunds/:id/approve", s.ApproveRefund)
	v1.POST("/refunds/:id/reject", s.RejectRefund)
	v1.POST("/refunds/:id/process", s.StartRefundProcessing)
	v1.POST("/refunds/:id/complete", s.CompleteRefund)
	v1.POST("/refunds/:id/fail", s.FailRefund)
}
