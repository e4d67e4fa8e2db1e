package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"backoffice/internal/core/domain/model/delivery"
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/core/domain/model/payment"
	"backoffice/internal/core/ports"
	"backoffice/internal/pkg/errs"
)

var (
	// ErrOrderNotPaid is returned when confirming an order whose payment is not COMPLETED.
	ErrOrderNotPaid = errors.New("order is not paid")

	// ErrOpenRefunds is returned when cancelling an order while one of its refunds
	// is still REQUESTED, APPROVED or PROCESSING.
	ErrOpenRefunds = errors.New("order has open refunds")
)

// PlaceOrderCommandHandler saves a PENDING order together with its PENDING payment.
type PlaceOrderCommandHandler struct {
	uowFactory CommerceUoWFactory
	clock      ports.Clock
}

func NewPlaceOrderCommandHandler(uowFactory CommerceUoWFactory, clock ports.Clock) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := h.clock.Now()
	o, err := order.NewOrder(cmd.OrderID(), cmd.MemberID(), cmd.Items(), cmd.Discount(), now)
	if err != nil {
		return err
	}
	p, err := payment.NewPayment(cmd.PaymentID(), o.ID(), cmd.Method(), o.FinalAmount(), now)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	return inTx(ctx, uow, func() error {
		if err := uow.OrderRepository().Add(ctx, o); err != nil {
			return err
		}
		return uow.PaymentRepository().Add(ctx, p)
	})
}

// ConfirmOrderCommandHandler confirms a paid order and opens a PREPARING delivery.
type ConfirmOrderCommandHandler struct {
	uowFactory CommerceUoWFactory
	clock      ports.Clock
}

func NewConfirmOrderCommandHandler(uowFactory CommerceUoWFactory, clock ports.Clock) ConfirmOrderCommandHandler {
	return ConfirmOrderCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h ConfirmOrderCommandHandler) Handle(ctx context.Context, cmd ConfirmOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	return inTx(ctx, uow, func() error {
		o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
		if err != nil {
			return err
		}
		p, err := uow.PaymentRepository().GetByOrder(ctx, o.ID())
		if err != nil {
			return err
		}
		if p.Status() != payment.Completed {
			return fmt.Errorf("%w: order %s, payment %s", ErrOrderNotPaid, o.ID(), p.Status())
		}

		now := h.clock.Now()
		if err = o.Confirm(now); err != nil {
			return err
		}
		d, err := delivery.NewDelivery(cmd.DeliveryID(), o.ID(), cmd.RecipientName(), cmd.Address(), now)
		if err != nil {
			return err
		}

		if err = uow.OrderRepository().Update(ctx, o); err != nil {
			return err
		}
		return uow.DeliveryRepository().Add(ctx, d)
	})
}

// ShipOrderCommandHandler moves the order to SHIPPED and its delivery to
// IN_TRANSIT in one transaction.
type ShipOrderCommandHandler struct {
	uowFactory CommerceUoWFactory
	clock      ports.Clock
}

func NewShipOrderCommandHandler(uowFactory CommerceUoWFactory, clock ports.Clock) ShipOrderCommandHandler {
	return ShipOrderCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h ShipOrderCommandHandler) Handle(ctx context.Context, cmd ShipOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	return inTx(ctx, uow, func() error {
		o, d, err := loadOrderWithDelivery(ctx, uow, cmd)
		if err != nil {
			return err
		}

		now := h.clock.Now()
		if err = o.Ship(now); err != nil {
			return err
		}
		if err = d.StartShipping(cmd.TrackingNumber(), cmd.CourierCompany(), now); err != nil {
			return err
		}

		return saveOrderWithDelivery(ctx, uow, o, d)
	})
}

// CompleteDeliveryCommandHandler marks the delivery and the order delivered.
type CompleteDeliveryCommandHandler struct {
	uowFactory CommerceUoWFactory
	clock      ports.Clock
}

func NewCompleteDeliveryCommandHandler(uowFactory CommerceUoWFactory, clock ports.Clock) CompleteDeliveryCommandHandler {
	return CompleteDeliveryCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h CompleteDeliveryCommandHandler) Handle(ctx context.Context, cmd CompleteDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	return inTx(ctx, uow, func() error {
		o, d, err := loadOrderWithDelivery(ctx, uow, cmd)
		if err != nil {
			return err
		}

		now := h.clock.Now()
		if err = d.Complete(now); err != nil {
			return err
		}
		if err = o.Deliver(now); err != nil {
			return err
		}

		return saveOrderWithDelivery(ctx, uow, o, d)
	})
}

// CancelOrderCommandHandler cancels the order and settles its payment: a
// PENDING payment is failed, a COMPLETED one is cancelled and the remainder of a
// PARTIAL_REFUNDED one is refunded. A PREPARING delivery is marked RETURNED.
// Orders with open refunds are refused with ErrOpenRefunds.
type CancelOrderCommandHandler struct {
	uowFactory CommerceUoWFactory
	clock      ports.Clock
}

func NewCancelOrderCommandHandler(uowFactory CommerceUoWFactory, clock ports.Clock) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	return inTx(ctx, uow, func() error {
		o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
		if err != nil {
			return err
		}

		now := h.clock.Now()
		if err = o.Cancel(cmd.Reason(), now); err != nil {
			return err
		}

		open, err := uow.RefundRepository().CountOpenForOrder(ctx, o.ID())
		if err != nil {
			return err
		}
		if open > 0 {
			return fmt.Errorf("%w: order %s has %d", ErrOpenRefunds, o.ID(), open)
		}

		if err = uow.OrderRepository().Update(ctx, o); err != nil {
			return err
		}

		if err = cancelPayment(ctx, uow, o, now); err != nil {
			return err
		}
		return returnDelivery(ctx, uow, o, now)
	})
}

type orderScoped interface {
	OrderID() kernel.UUID
}

func loadOrderWithDelivery(ctx context.Context, uow CommerceUoW, cmd orderScoped) (*order.Order, *delivery.Delivery, error) {
	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, nil, err
	}
	d, err := uow.DeliveryRepository().GetByOrder(ctx, o.ID())
	if err != nil {
		return nil, nil, err
	}
	return o, d, nil
}

func saveOrderWithDelivery(ctx context.Context, uow CommerceUoW, o *order.Order, d *delivery.Delivery) error {
	if err := uow.DeliveryRepository().Update(ctx, d); err != nil {
		return err
	}
	return uow.OrderRepository().Update(ctx, o)
}

func cancelPayment(ctx context.Context, uow CommerceUoW, o *order.Order, now time.Time) error {
	p, err := uow.PaymentRepository().GetByOrder(ctx, o.ID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	switch p.Status() {
	case payment.Pending:
		err = p.Fail("order cancelled: "+o.CancellationReason(), now)
	case payment.Completed:
		err = p.Cancel(now)
	case payment.PartialRefunded:
		err = p.Refund(p.RemainingRefundable(), now)
	default:
		return nil
	}
	if err != nil {
		return err
	}
	return uow.PaymentRepository().Update(ctx, p)
}

func returnDelivery(ctx context.Context, uow CommerceUoW, o *order.Order, now time.Time) error {
	d, err := uow.DeliveryRepository().GetByOrder(ctx, o.ID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if d.Status() != delivery.Preparing {
		return nil
	}
	if err = d.UpdateStatus(delivery.Returned, now); err != nil {
		return err
	}
	return uow.DeliveryRepository().Update(ctx, d)
}
