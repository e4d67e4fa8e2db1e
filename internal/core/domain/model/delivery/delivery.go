package delivery

import (
	"errors"
	"strings"
	"time"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/pkg/errs"
	"backoffice/internal/pkg/guard"
)

var ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery or RestoreDelivery")

// Timestamps records when each transition happened.
type Timestamps struct {
	CreatedAt        time.Time
	ShippedAt        *time.Time
	DeliveredAt      *time.Time
	StatusUpdatedAt  *time.Time
	AddressChangedAt *time.Time
}

// Delivery is the shipment of one order.
type Delivery struct {
	id             kernel.UUID
	orderID        kernel.UUID
	recipientName  string
	address        kernel.Address
	status         Status
	trackingNumber string
	courierCompany string
	timestamps     Timestamps

	guard guard.ConstructorGuard
}

// NewDelivery creates a PREPARING delivery when the order is confirmed.
func NewDelivery(id, orderID kernel.UUID, recipientName string, address kernel.Address, now time.Time) (*Delivery, error) {
	recipientName = strings.TrimSpace(recipientName)
	var nameErr error
	if recipientName == "" {
		nameErr = errs.NewValueIsRequiredError("recipientName")
	}
	if err := errors.Join(id.Validate(), orderID.Validate(), nameErr, address.Validate()); err != nil {
		return nil, err
	}

	return &Delivery{
		id:            id,
		orderID:       orderID,
		recipientName: recipientName,
		address:       address,
		status:        Preparing,
		timestamps:    Timestamps{CreatedAt: now},
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// RestoreDelivery rebuilds a Delivery read from persistence.
func RestoreDelivery(
	id, orderID kernel.UUID,
	recipientName string,
	address kernel.Address,
	status Status,
	trackingNumber, courierCompany string,
	timestamps Timestamps,
) (*Delivery, error) {
	d, err := NewDelivery(id, orderID, recipientName, address, timestamps.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err = status.Validate(); err != nil {
		return nil, err
	}
	d.status = status
	d.trackingNumber = trackingNumber
	d.courierCompany = courierCompany
	d.timestamps = timestamps
	return d, nil
}

func (d *Delivery) Validate() error {
	if d == nil {
		return ErrDeliveryIsNotConstructed
	}
	return d.guard.Validate(ErrDeliveryIsNotConstructed)
}

func (d *Delivery) ID() kernel.UUID { return d.id }
func (d *Delivery) OrderID() kernel.UUID { return d.orderID }
func (d *Delivery) RecipientName() string { return d.recipientName }
func (d *Delivery) Address() kernel.Address { return d.address }
func (d *Delivery) Status() Status { return d.status }
func (d *Delivery) TrackingNumber() string { return d.trackingNumber }
func (d *Delivery) CourierCompany() string { return d.courierCompany }
func (d *Delivery) Timestamps() Timestamps { return d.timestamps }

// StartShipping hands a PREPARING parcel to the courier.
func (d *Delivery) StartShipping(trackingNumber, courierCompany string, now time.Time) error {
	if d.status != Preparing {
		return d.newError(KindInvalidState, "start shipping")
	}
	trackingNumber = strings.TrimSpace(trackingNumber)
	courierCompany = strings.TrimSpace(courierCompany)
	var trackingErr, courierErr error
	if trackingNumber == "" {
		trackingErr = errs.NewValueIsRequiredError("trackingNumber")
	}
	if courierCompany == "" {
		courierErr = errs.NewValueIsRequiredError("courierCompany")
	}
	if err := errors.Join(trackingErr, courierErr); err != nil {
		return err
	}

	d.status = InTransit
	d.trackingNumber = trackingNumber
	d.courierCompany = courierCompany
	d.timestamps.ShippedAt = &now
	return nil
}

// Complete marks the parcel delivered. It must be IN_TRANSIT or OUT_FOR_DELIVERY.
func (d *Delivery) Complete(now time.Time) error {
	if !kernel.StatusIn(d.status, InTransit, OutForDelivery) {
		return d.newError(KindInvalidState, "complete")
	}
	d.status = Delivered
	d.timestamps.DeliveredAt = &now
	return nil
}

// UpdateStatus is the administrative override used for courier bookkeeping. It
// skips the transition table; only the value itself is checked.
func (d *Delivery) UpdateStatus(newStatus Status, now time.Time) error {
	if err := newStatus.Validate(); err != nil {
		return err
	}
	d.status = newStatus
	d.timestamps.StatusUpdatedAt = &now
	if newStatus == Delivered && d.timestamps.DeliveredAt == nil {
		d.timestamps.DeliveredAt = &now
	}
	return nil
}

// CanChangeAddress is true while the parcel is PREPARING.
func (d *Delivery) CanChangeAddress() bool {
	return d.status == Preparing
}

// ChangeAddress replaces the destination of a PREPARING delivery.
func (d *Delivery) ChangeAddress(address kernel.Address, now time.Time) error {
	if !d.CanChangeAddress() {
		return d.newError(KindAddressChangeNotAllowed, "change address of")
	}
	if err := address.Validate(); err != nil {
		return err
	}
	d.address = address
	d.timestamps.AddressChangedAt = &now
	return nil
}

// ChangeAddressParts is ChangeAddress for callers holding raw fields.
func (d *Delivery) ChangeAddressParts(zipCode, street, detail string, now time.Time) error {
	if !d.CanChangeAddress() {
		return d.newError(KindAddressChangeNotAllowed, "change address of")
	}
	address, err := kernel.NewAddress(zipCode, street, detail)
	if err != nil {
		return err
	}
	return d.ChangeAddress(address, now)
}

func (d *Delivery) newError(kind ErrorKind, operation string) *Error {
	return &Error{Kind: kind, DeliveryID: d.id, Status: d.status, Operation: operation}
}
