package loan

import (
	"errors"
	"fmt"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/pkg/errs"
	"backoffice/internal/pkg/guard"
)

// DefaultDailyLateFee is charged per whole overdue day unless configured otherwise.
const DefaultDailyLateFee int64 = 1000

var ErrFeePolicyIsNotConstructed = errors.New("FeePolicy must be created via NewFeePolicy or DefaultFeePolicy")

// FeePolicy derives the overdue fee: whole overdue days × daily rate.
type FeePolicy struct {
	dailyRate kernel.Money
	guard     guard.ConstructorGuard
}

// NewFeePolicy validates the configured rate; it must not be negative.
func NewFeePolicy(dailyRate kernel.Money) (FeePolicy, error) {
	if err := dailyRate.Validate(); err != nil {
		return FeePolicy{}, err
	}
	if dailyRate.IsNegative() {
		return FeePolicy{}, errs.NewValueIsInvalidErrorWithCause("dailyLateFee",
			fmt.Errorf("%s is negative", dailyRate))
	}
	return FeePolicy{dailyRate: dailyRate, guard: guard.NewConstructorGuard()}, nil
}

// DefaultFeePolicy charges DefaultDailyLateFee KRW per day.
func DefaultFeePolicy() FeePolicy {
	rate, _ := kernel.MoneyFromInt(DefaultDailyLateFee, kernel.DefaultCurrency)
	return FeePolicy{dailyRate: rate, guard: guard.NewConstructorGuard()}
}

func (p FeePolicy) Validate() error {
	return p.guard.Validate(ErrFeePolicyIsNotConstructed)
}

func (p FeePolicy) DailyRate() kernel.Money {
	return p.dailyRate
}

// FeeFor returns the fee owed for the given number of overdue days.
func (p FeePolicy) FeeFor(overdueDays int) kernel.Money {
	if overdueDays <= 0 {
		return p.dailyRate.Zero()
	}
	return p.dailyRate.Multiply(int64(overdueDays))
}
