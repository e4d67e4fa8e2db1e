package guard_test

import (
	"errors"
	"testing"

	"backoffice/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("constructed_guard_returns_nil", func(t *testing.T) {
		// Given
		g := guard.NewConstructorGuard()

		// When
		err := g.Validate(errors.New("not constructed"))

		// Then
		require.NoError(t, err)
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard
		expected := errors.New("Loan must be created via NewLoan")

		// When
		err := g.Validate(expected)

		// Then
		assert.Equal(t, expected, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})
}

// TestConstructorGuardEmbedded shows the guard protecting a domain type built
// through a constructor closure.
func TestConstructorGuardEmbedded(t *testing.T) {
	type ticket struct {
		code  string
		guard guard.ConstructorGuard
	}

	errTicketNotConstructed := errors.New("ticket must be created via newTicket")

	newTicket := func(code string) (ticket, error) {
		if code == "" {
			return ticket{}, errors.New("code is required")
		}
		return ticket{code: code, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructed", func(t *testing.T) {
		tk, err := newTicket("LN-1")

		require.NoError(t, err)
		require.NoError(t, tk.guard.Validate(errTicketNotConstructed))
	})

	t.Run("zero_value", func(t *testing.T) {
		var tk ticket

		assert.Equal(t, errTicketNotConstructed, tk.guard.Validate(errTicketNotConstructed))
	})

	t.Run("copies_keep_state", func(t *testing.T) {
		tk, _ := newTicket("LN-2")
		copied := tk

		require.NoError(t, copied.guard.Validate(errTicketNotConstructed))
	})
}

func BenchmarkConstructorGuard(b *testing.B) {
	g := guard.NewConstructorGuard()
	err := errors.New("not constructed")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = g.Validate(err)
	}
}
