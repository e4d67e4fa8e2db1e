package order_test

import (
	"testing"
	"time"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

var now = time.Date(2025, time.April, 1, 9, 0, 0, 0, time.UTC)

func krw(t require.TestingT, amount int64) kernel.Money {
	m, err := kernel.MoneyFromInt(amount, "KRW")
	require.NoError(t, err)
	return m
}

func newOrder(t *testing.T) *order.Order {
	t.Helper()
	item, err := order.NewLineItem(kernel.NewUUID(), 2, krw(t, 15000))
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), []order.LineItem{item}, krw(t, 3000), now)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("computes total and final amount", func(t *testing.T) {
		a, _ := order.NewLineItem(kernel.NewUUID(), 2, krw(t, 15000))
		b, _ := order.NewLineItem(kernel.NewUUID(), 1, krw(t, 12500))

		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), []order.LineItem{a, b}, krw(t, 2500), now)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, "42500.00", o.TotalAmount().StringFixed())
		assert.Equal(t, "40000.00", o.FinalAmount().StringFixed())
		assert.Equal(t, now, o.Timestamps().CreatedAt)
		assert.Len(t, o.LineItems(), 2)
	})

	t.Run("rejects an empty basket", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), nil, krw(t, 0), now)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects a discount above the total", func(t *testing.T) {
		item, _ := order.NewLineItem(kernel.NewUUID(), 1, krw(t, 1000))

		_, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), []order.LineItem{item}, krw(t, 1001), now)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects a negative discount", func(t *testing.T) {
		item, _ := order.NewLineItem(kernel.NewUUID(), 1, krw(t, 1000))

		_, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), []order.LineItem{item}, krw(t, -1), now)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects mixed currencies", func(t *testing.T) {
		usd, _ := kernel.MoneyFromInt(10, "USD")
		a, _ := order.NewLineItem(kernel.NewUUID(), 1, krw(t, 1000))
		b, _ := order.NewLineItem(kernel.NewUUID(), 1, usd)

		_, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), []order.LineItem{a, b}, krw(t, 0), now)

		require.ErrorIs(t, err, kernel.ErrCurrencyMismatch)
	})

	t.Run("line item rejects zero quantity", func(t *testing.T) {
		_, err := order.NewLineItem(kernel.NewUUID(), 0, krw(t, 1000))

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		assert.Equal(t, order.ErrOrderIsNotConstructed, (&order.Order{}).Validate())
	})
}

func TestOrder_Lifecycle(t *testing.T) {
	t.Run("happy path records every timestamp", func(t *testing.T) {
		o := newOrder(t)

		require.NoError(t, o.Confirm(now.Add(time.Hour)))
		require.NoError(t, o.Ship(now.Add(2*time.Hour)))
		require.NoError(t, o.Deliver(now.Add(3*time.Hour)))

		ts := o.Timestamps()
		assert.Equal(t, order.Delivered, o.Status())
		require.NotNil(t, ts.ConfirmedAt)
		require.NotNil(t, ts.ShippedAt)
		require.NotNil(t, ts.DeliveredAt)
		assert.Equal(t, now.Add(3*time.Hour), *ts.DeliveredAt)
		assert.Nil(t, ts.CancelledAt)
	})

	t.Run("confirm twice fails", func(t *testing.T) {
		o := newOrder(t)
		require.NoError(t, o.Confirm(now))

		err := o.Confirm(now)

		require.ErrorIs(t, err, order.ErrInvalidOrderState)
		var orderErr *order.Error
		require.ErrorAs(t, err, &orderErr)
		assert.Equal(t, order.KindInvalidState, orderErr.Kind)
		assert.Equal(t, order.Confirmed, orderErr.Status)
	})

	t.Run("cannot ship a pending order", func(t *testing.T) {
		o := newOrder(t)

		require.ErrorIs(t, o.Ship(now), order.ErrInvalidOrderState)
		assert.Equal(t, order.Pending, o.Status())
	})

	t.Run("cannot deliver a confirmed order", func(t *testing.T) {
		o := newOrder(t)
		require.NoError(t, o.Confirm(now))

		require.ErrorIs(t, o.Deliver(now), order.ErrInvalidOrderState)
	})
}

func TestOrder_Cancel(t *testing.T) {
	t.Run("pending order is cancelled with a reason", func(t *testing.T) {
		o := newOrder(t)

		require.NoError(t, o.Cancel("  changed my mind ", now))

		assert.Equal(t, order.Cancelled, o.Status())
		assert.Equal(t, "changed my mind", o.CancellationReason())
		require.NotNil(t, o.Timestamps().CancelledAt)
		assert.False(t, o.IsCancellable())
	})

	t.Run("shipped order cannot be cancelled", func(t *testing.T) {
		o := newOrder(t)
		require.NoError(t, o.Confirm(now))
		require.NoError(t, o.Ship(now))

		err := o.Cancel("too late", now)

		require.ErrorIs(t, err, order.ErrCancellationNotAllowed)
		assert.Equal(t, order.Shipped, o.Status())
		assert.Empty(t, o.CancellationReason())
	})

	t.Run("blank reason is refused", func(t *testing.T) {
		o := newOrder(t)

		require.ErrorIs(t, o.Cancel("  ", now), errs.ErrValueIsRequired)
		assert.Equal(t, order.Pending, o.Status())
	})
}

func TestOrder_NetAmount(t *testing.T) {
	o := newOrder(t)

	net, err := o.NetAmount(krw(t, 7000))
	require.NoError(t, err)
	assert.Equal(t, "20000.00", net.StringFixed())

	_, err = o.NetAmount(krw(t, 27001))
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestRestoreOrder(t *testing.T) {
	item, _ := order.NewLineItem(kernel.NewUUID(), 3, krw(t, 1000))
	items := []order.LineItem{item}
	cancelledAt := now

	t.Run("restores a cancelled order", func(t *testing.T) {
		o, err := order.RestoreOrder(kernel.NewUUID(), kernel.NewUUID(), items, krw(t, 3000), krw(t, 0),
			order.Cancelled, "out of stock", order.Timestamps{CreatedAt: now, CancelledAt: &cancelledAt})

		require.NoError(t, err)
		assert.Equal(t, "out of stock", o.CancellationReason())
	})

	t.Run("rejects a total that does not match the items", func(t *testing.T) {
		_, err := order.RestoreOrder(kernel.NewUUID(), kernel.NewUUID(), items, krw(t, 2000), krw(t, 0),
			order.Pending, "", order.Timestamps{CreatedAt: now})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects a reason on a live order", func(t *testing.T) {
		_, err := order.RestoreOrder(kernel.NewUUID(), kernel.NewUUID(), items, krw(t, 3000), krw(t, 0),
			order.Confirmed, "oops", order.Timestamps{CreatedAt: now})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestOrder_CancelSucceedsExactlyWhenCancellable(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		item, err := order.NewLineItem(kernel.NewUUID(), rapid.IntRange(1, order.MaxQuantity).Draw(t, "qty"), krw(t, 500))
		if err != nil {
			t.Fatalf("line item: %v", err)
		}
		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), []order.LineItem{item}, krw(t, 0), now)
		if err != nil {
			t.Fatalf("new order: %v", err)
		}

		steps := rapid.IntRange(0, 3).Draw(t, "steps")
		moves := []func(time.Time) error{o.Confirm, o.Ship, o.Deliver}
		for _, move := range moves[:steps] {
			if err := move(now); err != nil {
				t.Fatalf("move: %v", err)
			}
		}

		before := o.Status()
		cancellable := o.IsCancellable()
		err = o.Cancel("reason", now)
		if (err == nil) != cancellable {
			t.Fatalf("cancel from %s: err=%v cancellable=%v", before, err, cancellable)
		}
		if err != nil && o.Status() != before {
			t.Fatalf("failed cancel changed status %s -> %s", before, o.Status())
		}
	})
}
