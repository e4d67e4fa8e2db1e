package payment

import (
	"fmt"

	"backoffice/internal/pkg/errs"
)

// Method is how the member settles an order.
type Method string

const (
	Card           Method = "CARD"
	BankTransfer   Method = "BANK_TRANSFER"
	VirtualAccount Method = "VIRTUAL_ACCOUNT"
	Mobile         Method = "MOBILE"
	Point          Method = "POINT"
)

var methods = []Method{Card, BankTransfer, VirtualAccount, Mobile, Point}

func ParseMethod(s string) (Method, error) {
	m := Method(s)
	if err := m.Validate(); err != nil {
		return "", err
	}
	return m, nil
}

func (m Method) Validate() error {
	for _, known := range methods {
		if m == known {
			return nil
		}
	}
	if m == "" {
		return errs.NewValueIsRequiredError("payment method")
	}
	return errs.NewValueIsInvalidErrorWithCause("payment method", fmt.Errorf("%q is not supported", string(m)))
}

func (m Method) String() string {
	return string(m)
}
