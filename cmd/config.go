package cmd

import (
	"fmt"
	"net/url"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/loan"
)

// Config is read from the environment (and .env) by main.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// DailyLateFee is the decimal amount charged per whole overdue day.
	DailyLateFee    string
	FeeCurrency     string
	DefaultLoanDays int

	// OverdueSchedule is a six field cron spec (seconds first).
	OverdueSchedule string

	// OTLPEndpoint is host:port of an OTLP/HTTP collector; empty disables export.
	OTLPEndpoint     string
	OTLPInsecure     bool
	TraceSampleRatio float64
}

// DSN is the gorm connection string of the application database.
func (c Config) DSN() string {
	return c.dsn(c.DBName)
}

// AdminDSN points at the maintenance database, used to create DBName.
func (c Config) AdminDSN() string {
	return c.dsn("postgres")
}

func (c Config) dsn(database string) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     "/" + database,
		RawQuery: url.Values{"sslmode": {c.sslMode()}}.Encode(),
	}
	return u.String()
}

func (c Config) sslMode() string {
	if c.DBSslMode == "" {
		return "disable"
	}
	return c.DBSslMode
}

// FeePolicy builds the policy new loans are charged with. Without a configured
// rate it charges loan.DefaultDailyLateFee in FeeCurrency, KRW when unset.
func (c Config) FeePolicy() (loan.FeePolicy, error) {
	currency := c.FeeCurrency
	if currency == "" {
		currency = kernel.DefaultCurrency
	}

	if c.DailyLateFee == "" {
		rate, err := kernel.MoneyFromInt(loan.DefaultDailyLateFee, currency)
		if err != nil {
			return loan.FeePolicy{}, fmt.Errorf("FEE_CURRENCY: %w", err)
		}
		return loan.NewFeePolicy(rate)
	}

	rate, err := kernel.MoneyFromString(c.DailyLateFee, currency)
	if err != nil {
		return loan.FeePolicy{}, fmt.Errorf("DAILY_LATE_FEE: %w", err)
	}
	return loan.NewFeePolicy(rate)
}

// LoanDays is the borrowing period used when a request does not name one.
func (c Config) LoanDays() int {
	if c.DefaultLoanDays < 1 || c.DefaultLoanDays > loan.MaxLoanDays {
		return loan.DefaultLoanDays
	}
	return c.DefaultLoanDays
}
