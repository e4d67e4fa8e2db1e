package kernel

import (
	"errors"
	"fmt"
	"strings"

	"backoffice/internal/pkg/errs"
	"backoffice/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

const (
	// MoneyScale is the number of fraction digits every Money amount carries.
	MoneyScale int32 = 2

	// DefaultCurrency is used for fees and prices when configuration does not say otherwise.
	DefaultCurrency = "KRW"
)

var (
	// ErrMoneyIsNotConstructed is returned when a zero-value Money takes part in an operation.
	ErrMoneyIsNotConstructed = errors.New("Money must be created via NewMoney, MoneyFromString, MoneyFromInt or ZeroMoney")

	// ErrCurrencyMismatch is the sentinel behind every CurrencyMismatchError.
	ErrCurrencyMismatch = errors.New("currency mismatch")
)

// CurrencyMismatchError is returned when a binary operation mixes two currencies.
type CurrencyMismatchError struct {
	Operation string
	Left      string
	Right     string
}

func (e *CurrencyMismatchError) Error() string {
	return fmt.Sprintf("%s: cannot %s %s and %s", ErrCurrencyMismatch, e.Operation, e.Left, e.Right)
}

func (e *CurrencyMismatchError) Unwrap() error {
	return ErrCurrencyMismatch
}

// Money is an immutable amount of a single currency, always scaled to MoneyScale
// fraction digits with half-up rounding. Every operation returns a new value.
//
// Example:
//
//	price, _ := kernel.MoneyFromString("12500", "KRW")
//	total := price.Multiply(3)
//	discount, _ := kernel.MoneyFromInt(2500, "KRW")
//	final, err := total.Subtract(discount) // 35000.00 KRW
type Money struct {
	amount   decimal.Decimal
	currency string
	guard    guard.ConstructorGuard
}

// NewMoney creates Money from a decimal amount and a three letter currency code.
func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	code, err := normalizeCurrency(currency)
	if err != nil {
		return Money{}, err
	}
	return newMoney(amount, code), nil
}

// MoneyFromString parses a decimal string such as "1000" or "12.345".
func MoneyFromString(amount string, currency string) (Money, error) {
	if strings.TrimSpace(amount) == "" {
		return Money{}, errs.NewValueIsRequiredError("amount")
	}
	value, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return NewMoney(value, currency)
}

// MoneyFromInt creates Money from a whole number of currency units.
func MoneyFromInt(amount int64, currency string) (Money, error) {
	return NewMoney(decimal.NewFromInt(amount), currency)
}

// ZeroMoney returns 0.00 of the given currency.
func ZeroMoney(currency string) (Money, error) {
	return NewMoney(decimal.Zero, currency)
}

func newMoney(amount decimal.Decimal, currency string) Money {
	return Money{
		amount:   amount.Round(MoneyScale),
		currency: currency,
		guard:    guard.NewConstructorGuard(),
	}
}

func normalizeCurrency(currency string) (string, error) {
	code := strings.ToUpper(strings.TrimSpace(currency))
	if code == "" {
		return "", errs.NewValueIsRequiredError("currency")
	}
	if len(code) != 3 {
		return "", errs.NewValueIsInvalidErrorWithCause("currency", fmt.Errorf("%q is not a three letter code", currency))
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return "", errs.NewValueIsInvalidErrorWithCause("currency", fmt.Errorf("%q is not a three letter code", currency))
		}
	}
	return code, nil
}

// Validate returns ErrMoneyIsNotConstructed for the zero value.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

// Amount returns the scaled decimal amount.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the upper case ISO 4217 style code.
func (m Money) Currency() string {
	return m.currency
}

// Zero returns 0.00 in the same currency. An unconstructed receiver yields an
// unconstructed result.
func (m Money) Zero() Money {
	if m.Validate() != nil {
		return Money{}
	}
	return newMoney(decimal.Zero, m.currency)
}

// Add returns m + other.
func (m Money) Add(other Money) (Money, error) {
	if err := m.sameCurrency("add", other); err != nil {
		return Money{}, err
	}
	return newMoney(m.amount.Add(other.amount), m.currency), nil
}

// Subtract returns m - other. The result may be negative; callers that need a
// non-negative amount check IsNegative on the result.
func (m Money) Subtract(other Money) (Money, error) {
	if err := m.sameCurrency("subtract", other); err != nil {
		return Money{}, err
	}
	return newMoney(m.amount.Sub(other.amount), m.currency), nil
}

// Multiply returns m * factor. An unconstructed receiver yields an
// unconstructed result.
func (m Money) Multiply(factor int64) Money {
	if m.Validate() != nil {
		return Money{}
	}
	return newMoney(m.amount.Mul(decimal.NewFromInt(factor)), m.currency)
}

// Compare returns -1, 0 or +1 like decimal.Cmp.
func (m Money) Compare(other Money) (int, error) {
	if err := m.sameCurrency("compare", other); err != nil {
		return 0, err
	}
	return m.amount.Cmp(other.amount), nil
}

// GreaterThan reports m > other.
func (m Money) GreaterThan(other Money) (bool, error) {
	cmp, err := m.Compare(other)
	return cmp > 0, err
}

// LessThan reports m < other.
func (m Money) LessThan(other Money) (bool, error) {
	cmp, err := m.Compare(other)
	return cmp < 0, err
}

// Equals reports whether both values have the same currency and amount.
func (m Money) Equals(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// StringFixed returns the amount with exactly two fraction digits, e.g. "1000.00".
func (m Money) StringFixed() string {
	return m.amount.StringFixed(MoneyScale)
}

// String returns "1000.00 KRW".
func (m Money) String() string {
	return m.StringFixed() + " " + m.currency
}

func (m Money) sameCurrency(operation string, other Money) error {
	if err := errors.Join(m.Validate(), other.Validate()); err != nil {
		return err
	}
	if m.currency != other.currency {
		return &CurrencyMismatchError{Operation: operation, Left: m.currency, Right: other.currency}
	}
	return nil
}
