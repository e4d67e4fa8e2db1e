package queries_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "backoffice/internal/adapters/out/postgres"
	"backoffice/internal/core/application/usecases/queries"
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/loan"
	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/core/domain/model/payment"
	"backoffice/internal/core/domain/model/refund"
	"backoffice/internal/core/ports"
	"backoffice/internal/pkg/clock"
	"backoffice/internal/pkg/errs"
	"backoffice/internal/pkg/testdb"

	"github.com/stretchr/testify/suite"
)

var borrowedAt = time.Date(2025, time.April, 1, 10, 0, 0, 0, time.UTC)

type QueryHandlersIntegrationTestSuite struct {
	suite.Suite
	database *testdb.Database
	factory  ports.UnitOfWorkFactory
	clock    *clock.Fixed
}

func TestQueryHandlersIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	suite.Run(t, new(QueryHandlersIntegrationTestSuite))
}

func (suite *QueryHandlersIntegrationTestSuite) SetupSuite() {
	database, err := testdb.Start(context.Background(), postgres_adapter.Migrate)
	suite.Require().NoError(err)
	suite.database = database
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(database.DB)
}

func (suite *QueryHandlersIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate("refunds", "deliveries", "payments", "order_items", "orders", "loans"))
	suite.clock = clock.NewFixed(borrowedAt)
}

func (suite *QueryHandlersIntegrationTestSuite) TearDownSuite() {
	if suite.database != nil {
		suite.Require().NoError(suite.database.Stop(context.Background()))
	}
}

func (suite *QueryHandlersIntegrationTestSuite) money(amount int64) kernel.Money {
	m, err := kernel.MoneyFromInt(amount, "KRW")
	suite.Require().NoError(err)
	return m
}

// borrow stores an ACTIVE loan of the given length, borrowed at borrowedAt.
func (suite *QueryHandlersIntegrationTestSuite) borrow(days int) *loan.Loan {
	l, err := loan.NewLoan(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), days, borrowedAt, loan.DefaultFeePolicy())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.factory.Create().LoanRepository().Add(context.Background(), l))
	return l
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetLoan_RecomputesWithoutPersisting() {
	ctx := context.Background()
	l := suite.borrow(7)
	suite.clock.Set(borrowedAt.AddDate(0, 0, 10))

	query, err := queries.NewGetLoanQuery(l.ID())
	suite.Require().NoError(err)
	view, err := queries.NewGetLoanQueryHandler(suite.database.DB, suite.clock).Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Equal(loan.Overdue, view.Status)
	suite.Equal(3, view.OverdueDays)
	suite.Equal("3000.00", view.OverdueFee.StringFixed())
	suite.Nil(view.ReturnDate)

	stored, err := suite.factory.Create().LoanRepository().Get(ctx, l.ID())
	suite.Require().NoError(err)
	suite.Equal(loan.Active, stored.Status())
	suite.True(stored.OverdueFee().IsZero())
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetLoan_NotFound() {
	query, err := queries.NewGetLoanQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = queries.NewGetLoanQueryHandler(suite.database.DB, suite.clock).Handle(context.Background(), query)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetOverdueLoans_OldestDueFirst() {
	ctx := context.Background()
	late := suite.borrow(3)
	later := suite.borrow(5)
	suite.borrow(30)

	returned := suite.borrow(2)
	suite.Require().NoError(returned.ReturnBook(borrowedAt.AddDate(0, 0, 4)))
	suite.Require().NoError(suite.factory.Create().LoanRepository().Update(ctx, returned))

	suite.clock.Set(borrowedAt.AddDate(0, 0, 8))
	views, err := queries.NewGetOverdueLoansQueryHandler(suite.database.DB, suite.clock).
		Handle(ctx, queries.NewGetOverdueLoansQuery())
	suite.Require().NoError(err)

	suite.Require().Len(views, 2)
	suite.True(late.ID().IsEqual(views[0].ID))
	suite.Equal(5, views[0].OverdueDays)
	suite.Equal("5000.00", views[0].OverdueFee.StringFixed())
	suite.True(later.ID().IsEqual(views[1].ID))
	suite.Equal(loan.Overdue, views[1].Status)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetOrderSummary_CountsCompletedRefundsOnly() {
	ctx := context.Background()
	item, err := order.NewLineItem(kernel.NewUUID(), 2, suite.money(12000))
	suite.Require().NoError(err)
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), []order.LineItem{item}, suite.money(4000), borrowedAt)
	suite.Require().NoError(err)
	p, err := payment.NewPayment(kernel.NewUUID(), o.ID(), payment.Card, o.FinalAmount(), borrowedAt)
	suite.Require().NoError(err)
	suite.Require().NoError(p.Complete("PG-42", borrowedAt))
	suite.Require().NoError(p.Refund(suite.money(5000), borrowedAt))

	bank, err := refund.NewBankAccount("KB", "123-45-6789", "Lee Jun")
	suite.Require().NoError(err)
	done, err := refund.NewRefund(kernel.NewUUID(), o.ID(), suite.money(5000), "late", "member", bank, borrowedAt)
	suite.Require().NoError(err)
	suite.Require().NoError(done.Approve("admin", borrowedAt))
	suite.Require().NoError(done.StartProcessing(borrowedAt))
	suite.Require().NoError(done.Complete("TXN-1", borrowedAt))
	open, err := refund.NewRefund(kernel.NewUUID(), o.ID(), suite.money(2000), "torn", "member", bank, borrowedAt)
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.PaymentRepository().Add(ctx, p))
	suite.Require().NoError(uow.RefundRepository().Add(ctx, done))
	suite.Require().NoError(uow.RefundRepository().Add(ctx, open))
	suite.Require().NoError(uow.Commit(ctx))

	query, err := queries.NewGetOrderSummaryQuery(o.ID())
	suite.Require().NoError(err)
	summary, err := queries.NewGetOrderSummaryQueryHandler(suite.database.DB).Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Equal(order.Pending, summary.Status)
	suite.Equal("24000.00", summary.TotalAmount.StringFixed())
	suite.Equal("20000.00", summary.FinalAmount.StringFixed())
	suite.Equal("5000.00", summary.RefundedTotal.StringFixed())
	suite.Equal("15000.00", summary.NetAmount.StringFixed())
	suite.True(summary.Cancellable)
	suite.Equal(payment.PartialRefunded, summary.PaymentStatus)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetOrderSummary_WithoutPayment() {
	ctx := context.Background()
	item, _ := order.NewLineItem(kernel.NewUUID(), 1, suite.money(9900))
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), []order.LineItem{item}, suite.money(0), borrowedAt)
	suite.Require().NoError(err)
	suite.Require().NoError(o.Cancel("changed mind", borrowedAt))
	suite.Require().NoError(suite.factory.Create().OrderRepository().Add(ctx, o))

	query, _ := queries.NewGetOrderSummaryQuery(o.ID())
	summary, err := queries.NewGetOrderSummaryQueryHandler(suite.database.DB).Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Equal(order.Cancelled, summary.Status)
	suite.False(summary.Cancellable)
	suite.Equal(payment.Unknown, summary.PaymentStatus)
	suite.True(summary.RefundedTotal.IsZero())
	suite.Equal("9900.00", summary.NetAmount.StringFixed())
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetOrderSummary_NotFound() {
	query, _ := queries.NewGetOrderSummaryQuery(kernel.NewUUID())

	_, err := queries.NewGetOrderSummaryQueryHandler(suite.database.DB).Handle(context.Background(), query)

	var notFound *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFound)
}
