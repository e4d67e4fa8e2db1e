package kernel

import (
	"errors"
	"strings"

	"backoffice/internal/pkg/errs"
	"backoffice/internal/pkg/guard"
)

// ErrAddressIsNotConstructed is returned when validating a zero-value Address.
var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError("address must be created via NewAddress")

// Address is a shipping destination. Zip code and street are required, detail
// (apartment, floor, ...) is optional.
type Address struct {
	zipCode string
	street  string
	detail  string
	guard   guard.ConstructorGuard
}

// NewAddress trims its inputs and validates the required parts.
func NewAddress(zipCode, street, detail string) (Address, error) {
	addr := Address{
		zipCode: strings.TrimSpace(zipCode),
		street:  strings.TrimSpace(street),
		detail:  strings.TrimSpace(detail),
		guard:   guard.NewConstructorGuard(),
	}

	var zipErr, streetErr error
	if addr.zipCode == "" {
		zipErr = errs.NewValueIsRequiredError("zipCode")
	}
	if addr.street == "" {
		streetErr = errs.NewValueIsRequiredError("street")
	}
	if err := errors.Join(zipErr, streetErr); err != nil {
		return Address{}, err
	}

	return addr, nil
}

func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

func (a Address) ZipCode() string { return a.zipCode }
func (a Address) Street() string { return a.street }
func (a Address) Detail() string { return a.detail }

// IsEqual compares all three parts.
func (a Address) IsEqual(other Address) bool {
	return a.zipCode == other.zipCode && a.street == other.street && a.detail == other.detail
}

// String renders "(zip) street detail".
func (a Address) String() string {
	s := "(" + a.zipCode + ") " + a.street
	if a.detail != "" {
		s += " " + a.detail
	}
	return s
}
