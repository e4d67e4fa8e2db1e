package cmd

import (
	"context"
	"log/slog"

	httpadapter "backoffice/internal/adapters/in/http"
	"backoffice/internal/adapters/out/postgres"
	"backoffice/internal/core/application/usecases/commands"
	"backoffice/internal/core/application/usecases/queries"
	"backoffice/internal/core/domain/model/loan"
	"backoffice/internal/core/domain/services"
	"backoffice/internal/core/ports"
	"backoffice/internal/jobs"
	"backoffice/internal/pkg/clock"
	"backoffice/internal/pkg/telemetry"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	clock      ports.Clock
	policy     loan.FeePolicy
	reconciler services.RefundReconciler
	registry   *prometheus.Registry
	metrics    *telemetry.Metrics
	logger     *slog.Logger
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	policy, err := cfg.FeePolicy()
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		clock:      clock.System{},
		policy:     policy,
		reconciler: services.NewRefundReconciler(),
		registry:   registry,
		metrics:    telemetry.NewMetrics(registry),
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) loanUoWFactory() commands.LoanUoWFactory {
	return FuncLoanUoWFactory(func() commands.LoanUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) commerceUoWFactory() commands.CommerceUoWFactory {
	return FuncCommerceUoWFactory(func() commands.CommerceUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateBorrowBookCommandHandler() commands.BorrowBookCommandHandler {
	return commands.NewBorrowBookCommandHandler(c.loanUoWFactory(), c.clock, c.policy)
}

func (c *CompositionRoot) CreateReturnBookCommandHandler() commands.ReturnBookCommandHandler {
	return commands.NewReturnBookCommandHandler(c.loanUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateExtendLoanCommandHandler() commands.ExtendLoanCommandHandler {
	return commands.NewExtendLoanCommandHandler(c.loanUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateCancelLoanCommandHandler() commands.CancelLoanCommandHandler {
	return commands.NewCancelLoanCommandHandler(c.loanUoWFactory())
}

func (c *CompositionRoot) CreateRefreshOverdueLoansCommandHandler() commands.RefreshOverdueLoansCommandHandler {
	return commands.NewRefreshOverdueLoansCommandHandler(c.loanUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	return commands.NewPlaceOrderCommandHandler(c.commerceUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateConfirmOrderCommandHandler() commands.ConfirmOrderCommandHandler {
	return commands.NewConfirmOrderCommandHandler(c.commerceUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateShipOrderCommandHandler() commands.ShipOrderCommandHandler {
	return commands.NewShipOrderCommandHandler(c.commerceUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateCompleteDeliveryCommandHandler() commands.CompleteDeliveryCommandHandler {
	return commands.NewCompleteDeliveryCommandHandler(c.commerceUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.commerceUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateCompletePaymentCommandHandler() commands.CompletePaymentCommandHandler {
	return commands.NewCompletePaymentCommandHandler(c.commerceUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateFailPaymentCommandHandler() commands.FailPaymentCommandHandler {
	return commands.NewFailPaymentCommandHandler(c.commerceUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateChangeDeliveryAddressCommandHandler() commands.ChangeDeliveryAddressCommandHandler {
	return commands.NewChangeDeliveryAddressCommandHandler(c.commerceUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateUpdateDeliveryStatusCommandHandler() commands.UpdateDeliveryStatusCommandHandler {
	return commands.NewUpdateDeliveryStatusCommandHandler(c.commerceUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateRequestRefundCommandHandler() commands.RequestRefundCommandHandler {
	return commands.NewRequestRefundCommandHandler(c.commerceUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateApproveRefundCommandHandler() commands.ApproveRefundCommandHandler {
	return commands.NewApproveRefundCommandHandler(c.commerceUoWFactory(), c.clock, c.reconciler)
}

func (c *CompositionRoot) CreateRejectRefundCommandHandler() commands.RejectRefundCommandHandler {
	return commands.NewRejectRefundCommandHandler(c.commerceUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateStartRefundProcessingCommandHandler() commands.StartRefundProcessingCommandHandler {
	return commands.NewStartRefundProcessingCommandHandler(c.commerceUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateCompleteRefundCommandHandler() commands.CompleteRefundCommandHandler {
	return commands.NewCompleteRefundCommandHandler(c.commerceUoWFactory(), c.clock, c.reconciler)
}

func (c *CompositionRoot) CreateFailRefundCommandHandler() commands.FailRefundCommandHandler {
	return commands.NewFailRefundCommandHandler(c.commerceUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateGetLoanQueryHandler() queries.GetLoanQueryHandler {
	return queries.NewGetLoanQueryHandler(c.gormDB, c.clock)
}

func (c *CompositionRoot) CreateGetOverdueLoansQueryHandler() queries.GetOverdueLoansQueryHandler {
	return queries.NewGetOverdueLoansQueryHandler(c.gormDB, c.clock)
}

func (c *CompositionRoot) CreateGetOrderSummaryQueryHandler() queries.GetOrderSummaryQueryHandler {
	return queries.NewGetOrderSummaryQueryHandler(c.gormDB)
}

// CreateHTTPHandlers collects every use case the API dispatches to.
func (c *CompositionRoot) CreateHTTPHandlers() httpadapter.Handlers {
	return httpadapter.Handlers{
		BorrowBook:          c.CreateBorrowBookCommandHandler(),
		ReturnBook:          c.CreateReturnBookCommandHandler(),
		ExtendLoan:          c.CreateExtendLoanCommandHandler(),
		CancelLoan:          c.CreateCancelLoanCommandHandler(),
		RefreshOverdueLoans: c.CreateRefreshOverdueLoansCommandHandler(),

		PlaceOrder:       c.CreatePlaceOrderCommandHandler(),
		ConfirmOrder:     c.CreateConfirmOrderCommandHandler(),
		ShipOrder:        c.CreateShipOrderCommandHandler(),
		CompleteDelivery: c.CreateCompleteDeliveryCommandHandler(),
		CancelOrder:      c.CreateCancelOrderCommandHandler(),

		CompletePayment: c.CreateCompletePaymentCommandHandler(),
		FailPayment:     c.CreateFailPaymentCommandHandler(),

		ChangeDeliveryAddress: c.CreateChangeDeliveryAddressCommandHandler(),
		UpdateDeliveryStatus:  c.CreateUpdateDeliveryStatusCommandHandler(),

		RequestRefund:         c.CreateRequestRefundCommandHandler(),
		ApproveRefund:         c.CreateApproveRefundCommandHandler(),
		RejectRefund:          c.CreateRejectRefundCommandHandler(),
		StartRefundProcessing: c.CreateStartRefundProcessingCommandHandler(),
		CompleteRefund:        c.CreateCompleteRefundCommandHandler(),
		FailRefund:            c.CreateFailRefundCommandHandler(),

		GetLoan:         c.CreateGetLoanQueryHandler(),
		GetOverdueLoans: c.CreateGetOverdueLoansQueryHandler(),
		GetOrderSummary: c.CreateGetOrderSummaryQueryHandler(),
	}
}

func (c *CompositionRoot) CreateRouter(ctx context.Context) (*echo.Echo, error) {
	server := httpadapter.NewServer(c.CreateHTTPHandlers(), c.logger, c.metrics).
		WithDefaultLoanDays(c.cfg.LoanDays())
	return httpadapter.NewRouter(ctx, server, c.registry)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateRefreshOverdueLoansCommandHandler(), c.cfg.OverdueSchedule, c.metrics, c.logger)
}

type FuncLoanUoWFactory func() commands.LoanUoW

func (f FuncLoanUoWFactory) Create() commands.LoanUoW {
	return f()
}

type FuncCommerceUoWFactory func() commands.CommerceUoW

func (f FuncCommerceUoWFactory) Create() commands.CommerceUoW {
	return f()
}
