package commands_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"backoffice/internal/core/application/usecases/commands"
	"backoffice/internal/core/domain/model/delivery"
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/core/domain/model/payment"
	"backoffice/internal/core/domain/model/refund"
	"backoffice/internal/core/ports"
	"backoffice/internal/pkg/errs"

	"github.com/stretchr/testify/require"
)

// memoryStore is a transactional in-memory stand-in for the commerce tables.
// Aggregates are copied in and out through their Restore constructors, so a
// rolled back transaction leaves the stored state untouched.
type memoryStore struct {
	t  *testing.T
	mu sync.Mutex

	orders     map[string]*order.Order
	payments   map[string]*payment.Payment
	deliveries map[string]*delivery.Delivery
	refunds    map[string]*refund.Refund
	commits    int
}

func newMemoryStore(t *testing.T) *memoryStore {
	return &memoryStore{
		t:          t,
		orders:     map[string]*order.Order{},
		payments:   map[string]*payment.Payment{},
		deliveries: map[string]*delivery.Delivery{},
		refunds:    map[string]*refund.Refund{},
	}
}

func (s *memoryStore) Create() commands.CommerceUoW {
	return &memoryUoW{store: s}
}

func (s *memoryStore) order(id kernel.UUID) *order.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneOrder(s.t, s.orders[id.String()])
}

func (s *memoryStore) payment(id kernel.UUID) *payment.Payment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clonePayment(s.t, s.payments[id.String()])
}

func (s *memoryStore) deliveryOf(orderID kernel.UUID) *delivery.Delivery {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.deliveries {
		if d.OrderID().IsEqual(orderID) {
			return cloneDelivery(s.t, d)
		}
	}
	return nil
}

func (s *memoryStore) refund(id kernel.UUID) *refund.Refund {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneRefund(s.t, s.refunds[id.String()])
}

type memoryUoW struct {
	store   *memoryStore
	pending []func()
	active  bool
}

func (u *memoryUoW) Begin(context.Context) error {
	if u.active {
		return errors.New("transaction already started")
	}
	u.active = true
	return nil
}

func (u *memoryUoW) Commit(context.Context) error {
	if !u.active {
		return errors.New("no active transaction")
	}
	u.store.mu.Lock()
	for _, apply := range u.pending {
		apply()
	}
	u.store.commits++
	u.store.mu.Unlock()
	u.pending, u.active = nil, false
	return nil
}

func (u *memoryUoW) Rollback(context.Context) error {
	u.pending, u.active = nil, false
	return nil
}

func (u *memoryUoW) stage(apply func()) {
	u.pending = append(u.pending, apply)
}

func (u *memoryUoW) OrderRepository() ports.OrderRepository { return memoryOrders{u} }
func (u *memoryUoW) PaymentRepository() ports.PaymentRepository { return memoryPayments{u} }
func (u *memoryUoW) DeliveryRepository() ports.DeliveryRepository { return memoryDeliveries{u} }
func (u *memoryUoW) RefundRepository() ports.RefundRepository { return memoryRefunds{u} }

type memoryOrders struct{ u *memoryUoW }

func (r memoryOrders) Add(_ context.Context, o *order.Order) error {
	c := cloneOrder(r.u.store.t, o)
	r.u.stage(func() { r.u.store.orders[c.ID().String()] = c })
	return nil
}

func (r memoryOrders) Update(ctx context.Context, o *order.Order) error {
	return r.Add(ctx, o)
}

func (r memoryOrders) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	if o := r.u.store.order(id); o != nil {
		return o, nil
	}
	return nil, errs.NewObjectNotFoundError("order", id)
}

type memoryPayments struct{ u *memoryUoW }

func (r memoryPayments) Add(_ context.Context, p *payment.Payment) error {
	c := clonePayment(r.u.store.t, p)
	r.u.stage(func() { r.u.store.payments[c.ID().String()] = c })
	return nil
}

func (r memoryPayments) Update(ctx context.Context, p *payment.Payment) error {
	return r.Add(ctx, p)
}

func (r memoryPayments) Get(_ context.Context, id kernel.UUID) (*payment.Payment, error) {
	if p := r.u.store.payment(id); p != nil {
		return p, nil
	}
	return nil, errs.NewObjectNotFoundError("payment", id)
}

func (r memoryPayments) GetByOrder(_ context.Context, orderID kernel.UUID) (*payment.Payment, error) {
	s := r.u.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.payments {
		if p.OrderID().IsEqual(orderID) {
			return clonePayment(s.t, p), nil
		}
	}
	return nil, errs.NewObjectNotFoundError("payment", orderID)
}

type memoryDeliveries struct{ u *memoryUoW }

func (r memoryDeliveries) Add(_ context.Context, d *delivery.Delivery) error {
	c := cloneDelivery(r.u.store.t, d)
	r.u.stage(func() { r.u.store.deliveries[c.ID().String()] = c })
	return nil
}

func (r memoryDeliveries) Update(ctx context.Context, d *delivery.Delivery) error {
	return r.Add(ctx, d)
}

func (r memoryDeliveries) Get(_ context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	s := r.u.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if d, ok := s.deliveries[id.String()]; ok {
		return cloneDelivery(s.t, d), nil
	}
	return nil, errs.NewObjectNotFoundError("delivery", id)
}

func (r memoryDeliveries) GetByOrder(_ context.Context, orderID kernel.UUID) (*delivery.Delivery, error) {
	if d := r.u.store.deliveryOf(orderID); d != nil {
		return d, nil
	}
	return nil, errs.NewObjectNotFoundError("delivery", orderID)
}

type memoryRefunds struct{ u *memoryUoW }

func (r memoryRefunds) Add(_ context.Context, rf *refund.Refund) error {
	c := cloneRefund(r.u.store.t, rf)
	r.u.stage(func() { r.u.store.refunds[c.ID().String()] = c })
	return nil
}

func (r memoryRefunds) Update(ctx context.Context, rf *refund.Refund) error {
	return r.Add(ctx, rf)
}

func (r memoryRefunds) Get(_ context.Context, id kernel.UUID) (*refund.Refund, error) {
	if rf := r.u.store.refund(id); rf != nil {
		return rf, nil
	}
	return nil, errs.NewObjectNotFoundError("refund", id)
}

func (r memoryRefunds) TotalCompletedForOrder(_ context.Context, orderID kernel.UUID, currency string) (kernel.Money, error) {
	s := r.u.store
	s.mu.Lock()
	defer s.mu.Unlock()

	total, err := kernel.ZeroMoney(currency)
	if err != nil {
		return kernel.Money{}, err
	}
	for _, rf := range s.refunds {
		if !rf.OrderID().IsEqual(orderID) || rf.Status() != refund.Completed {
			continue
		}
		if total, err = total.Add(rf.Amount()); err != nil {
			return kernel.Money{}, err
		}
	}
	return total, nil
}

func (r memoryRefunds) CountOpenForOrder(_ context.Context, orderID kernel.UUID) (int64, error) {
	s := r.u.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var open int64
	for _, rf := range s.refunds {
		if rf.OrderID().IsEqual(orderID) && !rf.Status().IsTerminal() {
			open++
		}
	}
	return open, nil
}

func cloneOrder(t *testing.T, o *order.Order) *order.Order {
	if o == nil {
		return nil
	}
	c, err := order.RestoreOrder(o.ID(), o.MemberID(), o.LineItems(), o.TotalAmount(), o.DiscountAmount(),
		o.Status(), o.CancellationReason(), o.Timestamps())
	require.NoError(t, err)
	return c
}

func clonePayment(t *testing.T, p *payment.Payment) *payment.Payment {
	if p == nil {
		return nil
	}
	c, err := payment.RestorePayment(p.ID(), p.OrderID(), p.Method(), p.Amount(), p.RefundedAmount(),
		p.Status(), p.TransactionID(), p.FailureReason(), p.Timestamps())
	require.NoError(t, err)
	return c
}

func cloneDelivery(t *testing.T, d *delivery.Delivery) *delivery.Delivery {
	if d == nil {
		return nil
	}
	c, err := delivery.RestoreDelivery(d.ID(), d.OrderID(), d.RecipientName(), d.Address(), d.Status(),
		d.TrackingNumber(), d.CourierCompany(), d.Timestamps())
	require.NoError(t, err)
	return c
}

func cloneRefund(t *testing.T, r *refund.Refund) *refund.Refund {
	if r == nil {
		return nil
	}
	c, err := refund.RestoreRefund(r.ID(), r.OrderID(), r.Amount(), r.Reason(), r.Status(), r.Actors(),
		r.RejectionReason(), r.RefundTransactionID(), r.AdminMemo(), r.BankAccount(), r.Timestamps())
	require.NoError(t, err)
	return c
}
