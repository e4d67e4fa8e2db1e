package commands

import (
	"context"
	"errors"

	"backoffice/internal/core/domain/model/delivery"
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/ports"
	"backoffice/internal/pkg/guard"
)

var (
	ErrChangeDeliveryAddressCommandIsNotConstructed = errors.New(
		"ChangeDeliveryAddressCommand must be created via NewChangeDeliveryAddressCommand constructor",
	)
	ErrUpdateDeliveryStatusCommandIsNotConstructed = errors.New(
		"UpdateDeliveryStatusCommand must be created via NewUpdateDeliveryStatusCommand constructor",
	)
)

// ChangeDeliveryAddressCommand redirects a parcel that has not left the warehouse.
type ChangeDeliveryAddressCommand struct {
	deliveryID kernel.UUID
	address    kernel.Address
	guard      guard.ConstructorGuard
}

func NewChangeDeliveryAddressCommand(deliveryID kernel.UUID, zipCode, street, detail string) (ChangeDeliveryAddressCommand, error) {
	address, addrErr := kernel.NewAddress(zipCode, street, detail)
	if err := errors.Join(deliveryID.Validate(), addrErr); err != nil {
		return ChangeDeliveryAddressCommand{}, err
	}
	return ChangeDeliveryAddressCommand{
		deliveryID: deliveryID,
		address:    address,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c ChangeDeliveryAddressCommand) Validate() error {
	return c.guard.Validate(ErrChangeDeliveryAddressCommandIsNotConstructed)
}

func (c ChangeDeliveryAddressCommand) DeliveryID() kernel.UUID { return c.deliveryID }
func (c ChangeDeliveryAddressCommand) Address() kernel.Address { return c.address }

// UpdateDeliveryStatusCommand is the courier/admin override: it sets any known
// status without consulting the transition table.
type UpdateDeliveryStatusCommand struct {
	deliveryID kernel.UUID
	status     delivery.Status
	guard      guard.ConstructorGuard
}

func NewUpdateDeliveryStatusCommand(deliveryID kernel.UUID, status delivery.Status) (UpdateDeliveryStatusCommand, error) {
	if err := errors.Join(deliveryID.Validate(), status.Validate()); err != nil {
		return UpdateDeliveryStatusCommand{}, err
	}
	return UpdateDeliveryStatusCommand{deliveryID: deliveryID, status: status, guard: guard.NewConstructorGuard()}, nil
}

func (c UpdateDeliveryStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDeliveryStatusCommandIsNotConstructed)
}

func (c UpdateDeliveryStatusCommand) DeliveryID() kernel.UUID { return c.deliveryID }
func (c UpdateDeliveryStatusCommand) Status() delivery.Status { return c.status }

func deliveryTransition(
	ctx context.Context,
	factory CommerceUoWFactory,
	deliveryID kernel.UUID,
	fn func(d *delivery.Delivery) error,
) error {
	uow := factory.Create()
	return inTx(ctx, uow, func() error {
		repo := uow.DeliveryRepository()

		d, err := repo.Get(ctx, deliveryID)
		if err != nil {
			return err
		}
		if err = fn(d); err != nil {
			return err
		}

		return repo.Update(ctx, d)
	})
}

type ChangeDeliveryAddressCommandHandler struct {
	uowFactory CommerceUoWFactory
	clock      ports.Clock
}

func NewChangeDeliveryAddressCommandHandler(
	uowFactory CommerceUoWFactory,
	clock ports.Clock,
) ChangeDeliveryAddressCommandHandler {
	return ChangeDeliveryAddressCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h ChangeDeliveryAddressCommandHandler) Handle(ctx context.Context, cmd ChangeDeliveryAddressCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return deliveryTransition(ctx, h.uowFactory, cmd.DeliveryID(), func(d *delivery.Delivery) error {
		return d.ChangeAddress(cmd.Address(), h.clock.Now())
	})
}

type UpdateDeliveryStatusCommandHandler struct {
	uowFactory CommerceUoWFactory
	clock      ports.Clock
}

func NewUpdateDeliveryStatusCommandHandler(
	uowFactory CommerceUoWFactory,
	clock ports.Clock,
) UpdateDeliveryStatusCommandHandler {
	return UpdateDeliveryStatusCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h UpdateDeliveryStatusCommandHandler) Handle(ctx context.Context, cmd UpdateDeliveryStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return deliveryTransition(ctx, h.uowFactory, cmd.DeliveryID(), func(d *delivery.Delivery) error {
		return d.UpdateStatus(cmd.Status(), h.clock.Now())
	})
}
