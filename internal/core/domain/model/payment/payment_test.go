package payment_test

import (
	"testing"
	"time"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/payment"
	"backoffice/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

var now = time.Date(2025, time.May, 5, 12, 0, 0, 0, time.UTC)

func krw(t require.TestingT, amount int64) kernel.Money {
	m, err := kernel.MoneyFromInt(amount, "KRW")
	require.NoError(t, err)
	return m
}

func completedPayment(t require.TestingT, amount int64) *payment.Payment {
	p, err := payment.NewPayment(kernel.NewUUID(), kernel.NewUUID(), payment.Card, krw(t, amount), now)
	require.NoError(t, err)
	require.NoError(t, p.Complete("PG-1", now))
	return p
}

func TestNewPayment(t *testing.T) {
	t.Run("starts pending with nothing refunded", func(t *testing.T) {
		p, err := payment.NewPayment(kernel.NewUUID(), kernel.NewUUID(), payment.VirtualAccount, krw(t, 10000), now)

		require.NoError(t, err)
		require.NoError(t, p.Validate())
		assert.Equal(t, payment.Pending, p.Status())
		assert.True(t, p.RefundedAmount().IsZero())
		assert.False(t, p.IsRefundable())
	})

	t.Run("rejects zero amount and unknown method", func(t *testing.T) {
		_, err := payment.NewPayment(kernel.NewUUID(), kernel.NewUUID(), payment.Method("CASH"), krw(t, 0), now)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestPayment_Transitions(t *testing.T) {
	t.Run("complete sets transaction and paid time", func(t *testing.T) {
		p := completedPayment(t, 10000)

		assert.Equal(t, payment.Completed, p.Status())
		assert.Equal(t, "PG-1", p.TransactionID())
		require.NotNil(t, p.Timestamps().PaidAt)
		assert.True(t, p.IsRefundable())
	})

	t.Run("fail only from pending", func(t *testing.T) {
		p, _ := payment.NewPayment(kernel.NewUUID(), kernel.NewUUID(), payment.Mobile, krw(t, 500), now)
		require.NoError(t, p.Fail("card declined", now))
		assert.Equal(t, "card declined", p.FailureReason())

		err := p.Complete("PG-2", now)

		require.ErrorIs(t, err, payment.ErrInvalidPaymentState)
		var payErr *payment.Error
		require.ErrorAs(t, err, &payErr)
		assert.Equal(t, payment.Failed, payErr.Status)
		assert.Equal(t, "complete", payErr.Operation)
	})

	t.Run("cancel requires completed", func(t *testing.T) {
		p, _ := payment.NewPayment(kernel.NewUUID(), kernel.NewUUID(), payment.Point, krw(t, 500), now)

		require.ErrorIs(t, p.Cancel(now), payment.ErrInvalidPaymentState)

		require.NoError(t, p.Complete("PG-3", now))
		require.NoError(t, p.Cancel(now))
		assert.Equal(t, payment.Cancelled, p.Status())
		assert.False(t, p.IsRefundable())
	})

	t.Run("blank transaction id is refused", func(t *testing.T) {
		p, _ := payment.NewPayment(kernel.NewUUID(), kernel.NewUUID(), payment.Card, krw(t, 500), now)

		require.ErrorIs(t, p.Complete(" ", now), errs.ErrValueIsRequired)
		assert.Equal(t, payment.Pending, p.Status())
	})
}

func TestPayment_Refund(t *testing.T) {
	t.Run("full refund then one more fails", func(t *testing.T) {
		p := completedPayment(t, 10000)

		require.NoError(t, p.Refund(krw(t, 10000), now))
		assert.Equal(t, payment.Refunded, p.Status())
		assert.Equal(t, "10000.00", p.RefundedAmount().StringFixed())

		err := p.Refund(krw(t, 1), now)
		require.ErrorIs(t, err, payment.ErrRefundAmountMismatch)
		assert.Equal(t, "10000.00", p.RefundedAmount().StringFixed())
	})

	t.Run("partial refunds accumulate", func(t *testing.T) {
		p := completedPayment(t, 10000)

		require.NoError(t, p.Refund(krw(t, 3000), now))
		assert.Equal(t, payment.PartialRefunded, p.Status())
		require.NoError(t, p.Refund(krw(t, 3000), now))
		assert.Equal(t, "4000.00", p.RemainingRefundable().StringFixed())

		err := p.Refund(krw(t, 4001), now)

		require.ErrorIs(t, err, payment.ErrRefundAmountMismatch)
		var payErr *payment.Error
		require.ErrorAs(t, err, &payErr)
		assert.Equal(t, "4000.00 KRW", payErr.Refundable.String())
		assert.Equal(t, payment.PartialRefunded, p.Status())
	})

	t.Run("non positive amount is a mismatch", func(t *testing.T) {
		p := completedPayment(t, 10000)

		require.ErrorIs(t, p.Refund(krw(t, 0), now), payment.ErrRefundAmountMismatch)
		require.ErrorIs(t, p.Refund(krw(t, -5), now), payment.ErrRefundAmountMismatch)
	})

	t.Run("pending payment is not refundable", func(t *testing.T) {
		p, _ := payment.NewPayment(kernel.NewUUID(), kernel.NewUUID(), payment.Card, krw(t, 500), now)

		require.ErrorIs(t, p.Refund(krw(t, 100), now), payment.ErrInvalidPaymentState)
	})

	t.Run("other currency is refused", func(t *testing.T) {
		p := completedPayment(t, 500)
		usd, _ := kernel.MoneyFromInt(1, "USD")

		require.ErrorIs(t, p.Refund(usd, now), kernel.ErrCurrencyMismatch)
	})
}

func TestRestorePayment(t *testing.T) {
	t.Run("restores a partial refund", func(t *testing.T) {
		p, err := payment.RestorePayment(kernel.NewUUID(), kernel.NewUUID(), payment.Card, krw(t, 1000), krw(t, 400),
			payment.PartialRefunded, "PG-9", "", payment.Timestamps{CreatedAt: now})

		require.NoError(t, err)
		assert.Equal(t, "600.00", p.RemainingRefundable().StringFixed())
	})

	t.Run("rejects refunded amount that contradicts the status", func(t *testing.T) {
		_, err := payment.RestorePayment(kernel.NewUUID(), kernel.NewUUID(), payment.Card, krw(t, 1000), krw(t, 400),
			payment.Refunded, "PG-9", "", payment.Timestamps{CreatedAt: now})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects over refunded rows", func(t *testing.T) {
		_, err := payment.RestorePayment(kernel.NewUUID(), kernel.NewUUID(), payment.Card, krw(t, 1000), krw(t, 1001),
			payment.Refunded, "PG-9", "", payment.Timestamps{CreatedAt: now})

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestPayment_RefundedNeverExceedsAmount(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		total := rapid.Int64Range(1, 100000).Draw(t, "amount")
		p := completedPayment(t, total)

		refundedFlips := 0
		for _, part := range rapid.SliceOfN(rapid.Int64Range(-10, total), 1, 20).Draw(t, "refunds") {
			before := p.Status()
			_ = p.Refund(krw(t, part), now)

			over, err := p.RefundedAmount().GreaterThan(p.Amount())
			if err != nil || over {
				t.Fatalf("refunded %s exceeds amount %s", p.RefundedAmount(), p.Amount())
			}
			if before != payment.Refunded && p.Status() == payment.Refunded {
				refundedFlips++
			}
			if (p.Status() == payment.Refunded) != p.RefundedAmount().Equals(p.Amount()) {
				t.Fatalf("status %s with refunded %s of %s", p.Status(), p.RefundedAmount(), p.Amount())
			}
		}
		if refundedFlips > 1 {
			t.Fatalf("REFUNDED reached %d times", refundedFlips)
		}
	})
}
