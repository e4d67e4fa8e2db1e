package refund

import (
	"errors"
	"strings"

	"backoffice/internal/pkg/errs"
)

// BankAccount is where a refund is wired when the original payment method cannot
// take money back, e.g. a virtual account. Either all fields are set or none.
type BankAccount struct {
	bankName      string
	accountNumber string
	accountHolder string
}

// NoBankAccount is the empty account used when the refund goes back to the
// original payment method.
var NoBankAccount = BankAccount{}

func NewBankAccount(bankName, accountNumber, accountHolder string) (BankAccount, error) {
	b := BankAccount{
		bankName:      strings.TrimSpace(bankName),
		accountNumber: strings.TrimSpace(accountNumber),
		accountHolder: strings.TrimSpace(accountHolder),
	}
	if b.IsEmpty() {
		return NoBankAccount, nil
	}

	var errList []error
	if b.bankName == "" {
		errList = append(errList, errs.NewValueIsRequiredError("bankName"))
	}
	if b.accountNumber == "" {
		errList = append(errList, errs.NewValueIsRequiredError("accountNumber"))
	}
	if b.accountHolder == "" {
		errList = append(errList, errs.NewValueIsRequiredError("accountHolder"))
	}
	if err := errors.Join(errList...); err != nil {
		return NoBankAccount, err
	}
	return b, nil
}

func (b BankAccount) BankName() string { return b.bankName }
func (b BankAccount) AccountNumber() string { return b.accountNumber }
func (b BankAccount) AccountHolder() string { return b.accountHolder }

func (b BankAccount) IsEmpty() bool {
	return b.bankName == "" && b.accountNumber == "" && b.accountHolder == ""
}
