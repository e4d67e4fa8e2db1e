package commands

import (
	"errors"
	"strings"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/core/domain/model/payment"
	"backoffice/internal/pkg/errs"
	"backoffice/internal/pkg/guard"
)

var (
	ErrPlaceOrderCommandIsNotConstructed = errors.New(
		"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
	)
	ErrConfirmOrderCommandIsNotConstructed = errors.New(
		"ConfirmOrderCommand must be created via NewConfirmOrderCommand constructor",
	)
	ErrShipOrderCommandIsNotConstructed = errors.New(
		"ShipOrderCommand must be created via NewShipOrderCommand constructor",
	)
	ErrCompleteDeliveryCommandIsNotConstructed = errors.New(
		"CompleteDeliveryCommand must be created via NewCompleteDeliveryCommand constructor",
	)
	ErrCancelOrderCommandIsNotConstructed = errors.New(
		"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
	)
)

// OrderLine is one requested book at checkout.
type OrderLine struct {
	BookID    kernel.UUID
	Quantity  int
	UnitPrice kernel.Money
}

// PlaceOrderCommand checks out a basket: it creates a PENDING order and the
// PENDING payment over its final amount.
//
// Example:
//
//	price, _ := kernel.MoneyFromInt(15000, "KRW")
//	discount, _ := kernel.MoneyFromInt(0, "KRW")
//	cmd, err := NewPlaceOrderCommand(kernel.NewUUID(), kernel.NewUUID(), memberID,
//	    []OrderLine{{BookID: bookID, Quantity: 2, UnitPrice: price}}, discount, payment.Card)
type PlaceOrderCommand struct {
	orderID   kernel.UUID
	paymentID kernel.UUID
	memberID  kernel.UUID
	items     []order.LineItem
	discount  kernel.Money
	method    payment.Method

	guard guard.ConstructorGuard
}

func NewPlaceOrderCommand(
	orderID, paymentID, memberID kernel.UUID,
	lines []OrderLine,
	discount kernel.Money,
	method payment.Method,
) (PlaceOrderCommand, error) {
	var linesErr error
	items := make([]order.LineItem, 0, len(lines))
	if len(lines) == 0 {
		linesErr = errs.NewValueIsRequiredError("items")
	}
	for _, line := range lines {
		item, err := order.NewLineItem(line.BookID, line.Quantity, line.UnitPrice)
		if err != nil {
			linesErr = errors.Join(linesErr, err)
			continue
		}
		items = append(items, item)
	}

	if err := errors.Join(
		orderID.Validate(),
		paymentID.Validate(),
		memberID.Validate(),
		linesErr,
		discount.Validate(),
		method.Validate(),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	return PlaceOrderCommand{
		orderID:   orderID,
		paymentID: paymentID,
		memberID:  memberID,
		items:     items,
		discount:  discount,
		method:    method,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

func (c PlaceOrderCommand) OrderID() kernel.UUID { return c.orderID }
func (c PlaceOrderCommand) PaymentID() kernel.UUID { return c.paymentID }
func (c PlaceOrderCommand) MemberID() kernel.UUID { return c.memberID }
func (c PlaceOrderCommand) Items() []order.LineItem { return append([]order.LineItem(nil), c.items...) }
func (c PlaceOrderCommand) Discount() kernel.Money { return c.discount }
func (c PlaceOrderCommand) Method() payment.Method { return c.method }

// ConfirmOrderCommand accepts a paid order and opens its delivery.
type ConfirmOrderCommand struct {
	orderID       kernel.UUID
	deliveryID    kernel.UUID
	recipientName string
	address       kernel.Address

	guard guard.ConstructorGuard
}

func NewConfirmOrderCommand(
	orderID, deliveryID kernel.UUID,
	recipientName string,
	address kernel.Address,
) (ConfirmOrderCommand, error) {
	recipientName = strings.TrimSpace(recipientName)
	var nameErr error
	if recipientName == "" {
		nameErr = errs.NewValueIsRequiredError("recipientName")
	}
	if err := errors.Join(orderID.Validate(), deliveryID.Validate(), nameErr, address.Validate()); err != nil {
		return ConfirmOrderCommand{}, err
	}

	return ConfirmOrderCommand{
		orderID:       orderID,
		deliveryID:    deliveryID,
		recipientName: recipientName,
		address:       address,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c ConfirmOrderCommand) Validate() error {
	return c.guard.Validate(ErrConfirmOrderCommandIsNotConstructed)
}

func (c ConfirmOrderCommand) OrderID() kernel.UUID { return c.orderID }
func (c ConfirmOrderCommand) DeliveryID() kernel.UUID { return c.deliveryID }
func (c ConfirmOrderCommand) RecipientName() string { return c.recipientName }
func (c ConfirmOrderCommand) Address() kernel.Address { return c.address }

// ShipOrderCommand hands a confirmed order to the courier.
type ShipOrderCommand struct {
	orderID        kernel.UUID
	trackingNumber string
	courierCompany string

	guard guard.ConstructorGuard
}

func NewShipOrderCommand(orderID kernel.UUID, trackingNumber, courierCompany string) (ShipOrderCommand, error) {
	trackingNumber, courierCompany = strings.TrimSpace(trackingNumber), strings.TrimSpace(courierCompany)
	var trackingErr, courierErr error
	if trackingNumber == "" {
		trackingErr = errs.NewValueIsRequiredError("trackingNumber")
	}
	if courierCompany == "" {
		courierErr = errs.NewValueIsRequiredError("courierCompany")
	}
	if err := errors.Join(orderID.Validate(), trackingErr, courierErr); err != nil {
		return ShipOrderCommand{}, err
	}

	return ShipOrderCommand{
		orderID:        orderID,
		trackingNumber: trackingNumber,
		courierCompany: courierCompany,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c ShipOrderCommand) Validate() error {
	return c.guard.Validate(ErrShipOrderCommandIsNotConstructed)
}

func (c ShipOrderCommand) OrderID() kernel.UUID { return c.orderID }
func (c ShipOrderCommand) TrackingNumber() string { return c.trackingNumber }
func (c ShipOrderCommand) CourierCompany() string { return c.courierCompany }

// CompleteDeliveryCommand marks the parcel and its order delivered.
type CompleteDeliveryCommand struct {
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewCompleteDeliveryCommand(orderID kernel.UUID) (CompleteDeliveryCommand, error) {
	if err := orderID.Validate(); err != nil {
		return CompleteDeliveryCommand{}, err
	}
	return CompleteDeliveryCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c CompleteDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCompleteDeliveryCommandIsNotConstructed)
}

func (c CompleteDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CancelOrderCommand cancels an order that has not shipped.
type CancelOrderCommand struct {
	orderID kernel.UUID
	reason  string
	guard   guard.ConstructorGuard
}

func NewCancelOrderCommand(orderID kernel.UUID, reason string) (CancelOrderCommand, error) {
	reason = strings.TrimSpace(reason)
	var reasonErr error
	if reason == "" {
		reasonErr = errs.NewValueIsRequiredError("reason")
	}
	if err := errors.Join(orderID.Validate(), reasonErr); err != nil {
		return CancelOrderCommand{}, err
	}
	return CancelOrderCommand{orderID: orderID, reason: reason, guard: guard.NewConstructorGuard()}, nil
}

func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

func (c CancelOrderCommand) OrderID() kernel.UUID { return c.orderID }
func (c CancelOrderCommand) Reason() string { return c.reason }
