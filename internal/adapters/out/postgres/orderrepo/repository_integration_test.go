package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"backoffice/internal/adapters/out/postgres/orderrepo"
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/pkg/errs"
	"backoffice/internal/pkg/testdb"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite checks order and line item persistence
// against a real PostgreSQL.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *testdb.Database
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func TestOrderRepositoryIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := testdb.Start(context.Background(), func(db *gorm.DB) error {
		return db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{})
	})
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate("order_items", "orders"))

	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.database.DB, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.database != nil {
		suite.Require().NoError(suite.database.Stop(context.Background()))
	}
}

var placedAt = time.Date(2025, time.May, 5, 14, 0, 0, 0, time.UTC)

func (suite *OrderRepositoryIntegrationTestSuite) money(amount int64) kernel.Money {
	m, err := kernel.MoneyFromInt(amount, "KRW")
	suite.Require().NoError(err)
	return m
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder() *order.Order {
	first, err := order.NewLineItem(kernel.NewUUID(), 2, suite.money(15000))
	suite.Require().NoError(err)
	second, err := order.NewLineItem(kernel.NewUUID(), 1, suite.money(8500))
	suite.Require().NoError(err)

	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), []order.LineItem{first, second}, suite.money(3000), placedAt)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ValidOrder_Success() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	var orders, items int64
	suite.Require().NoError(suite.database.DB.Model(&orderrepo.OrderDTO{}).Count(&orders).Error)
	suite.Require().NoError(suite.database.DB.Model(&orderrepo.OrderItemDTO{}).Count(&items).Error)
	suite.Equal(int64(1), orders)
	suite.Equal(int64(2), items)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_NotConstructed_Fails() {
	err := suite.repository.Add(context.Background(), &order.Order{})

	suite.Require().ErrorIs(err, order.ErrOrderIsNotConstructed)
	suite.tracker.AssertNotCalled(suite.T(), "TrackAggregate", mock.Anything, mock.Anything)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_ExistingOrder_ReturnsOrderWithItems() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	got, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.True(testOrder.ID().IsEqual(got.ID()))
	suite.Equal(order.Pending, got.Status())
	suite.Equal("38500.00", got.TotalAmount().StringFixed())
	suite.Equal("35500.00", got.FinalAmount().StringFixed())
	items := got.LineItems()
	suite.Require().Len(items, 2)
	suite.Equal(2, items[0].Quantity())
	suite.Equal("8500.00", items[1].UnitPrice().StringFixed())
	suite.True(placedAt.Equal(got.Timestamps().CreatedAt))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	got, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Nil(got)
	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StatusTransitions() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	testCases := []struct {
		name   string
		mutate func(*order.Order) error
		verify func(*order.Order)
	}{
		{
			name:   "confirmed",
			mutate: func(o *order.Order) error { return o.Confirm(placedAt.Add(time.Hour)) },
			verify: func(o *order.Order) {
				suite.Equal(order.Confirmed, o.Status())
				suite.Require().NotNil(o.Timestamps().ConfirmedAt)
			},
		},
		{
			name:   "cancelled keeps the reason",
			mutate: func(o *order.Order) error { return o.Cancel("out of stock", placedAt.Add(time.Hour)) },
			verify: func(o *order.Order) {
				suite.Equal(order.Cancelled, o.Status())
				suite.Equal("out of stock", o.CancellationReason())
				suite.Len(o.LineItems(), 2)
			},
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			o := suite.createTestOrder()
			suite.Require().NoError(suite.repository.Add(ctx, o))
			suite.Require().NoError(tc.mutate(o))

			suite.Require().NoError(suite.repository.Update(ctx, o))

			got, err := suite.repository.Get(ctx, o.ID())
			suite.Require().NoError(err)
			tc.verify(got)
		})
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_ReturnsError() {
	err := suite.repository.Update(context.Background(), suite.createTestOrder())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.tracker.AssertExpectations(suite.T())
}
