package commands

import (
	"context"
	"errors"
	"strings"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/payment"
	"backoffice/internal/core/ports"
	"backoffice/internal/pkg/errs"
	"backoffice/internal/pkg/guard"
)

var (
	ErrCompletePaymentCommandIsNotConstructed = errors.New(
		"CompletePaymentCommand must be created via NewCompletePaymentCommand constructor",
	)
	ErrFailPaymentCommandIsNotConstructed = errors.New(
		"FailPaymentCommand must be created via NewFailPaymentCommand constructor",
	)
)

// CompletePaymentCommand records the gateway approval of a pending payment.
type CompletePaymentCommand struct {
	paymentID     kernel.UUID
	transactionID string
	guard         guard.ConstructorGuard
}

func NewCompletePaymentCommand(paymentID kernel.UUID, transactionID string) (CompletePaymentCommand, error) {
	transactionID = strings.TrimSpace(transactionID)
	var txErr error
	if transactionID == "" {
		txErr = errs.NewValueIsRequiredError("transactionID")
	}
	if err := errors.Join(paymentID.Validate(), txErr); err != nil {
		return CompletePaymentCommand{}, err
	}
	return CompletePaymentCommand{
		paymentID:     paymentID,
		transactionID: transactionID,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c CompletePaymentCommand) Validate() error {
	return c.guard.Validate(ErrCompletePaymentCommandIsNotConstructed)
}

func (c CompletePaymentCommand) PaymentID() kernel.UUID { return c.paymentID }
func (c CompletePaymentCommand) TransactionID() string { return c.transactionID }

// FailPaymentCommand records a declined payment. The reason is optional.
type FailPaymentCommand struct {
	paymentID kernel.UUID
	reason    string
	guard     guard.ConstructorGuard
}

func NewFailPaymentCommand(paymentID kernel.UUID, reason string) (FailPaymentCommand, error) {
	if err := paymentID.Validate(); err != nil {
		return FailPaymentCommand{}, err
	}
	return FailPaymentCommand{
		paymentID: paymentID,
		reason:    strings.TrimSpace(reason),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c FailPaymentCommand) Validate() error {
	return c.guard.Validate(ErrFailPaymentCommandIsNotConstructed)
}

func (c FailPaymentCommand) PaymentID() kernel.UUID { return c.paymentID }
func (c FailPaymentCommand) Reason() string { return c.reason }

func paymentTransition(
	ctx context.Context,
	factory CommerceUoWFactory,
	paymentID kernel.UUID,
	fn func(p *payment.Payment) error,
) error {
	uow := factory.Create()
	return inTx(ctx, uow, func() error {
		repo := uow.PaymentRepository()

		p, err := repo.Get(ctx, paymentID)
		if err != nil {
			return err
		}
		if err = fn(p); err != nil {
			return err
		}

		return repo.Update(ctx, p)
	})
}

type CompletePaymentCommandHandler struct {
	uowFactory CommerceUoWFactory
	clock      ports.Clock
}

func NewCompletePaymentCommandHandler(uowFactory CommerceUoWFactory, clock ports.Clock) CompletePaymentCommandHandler {
	return CompletePaymentCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h CompletePaymentCommandHandler) Handle(ctx context.Context, cmd CompletePaymentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return paymentTransition(ctx, h.uowFactory, cmd.PaymentID(), func(p *payment.Payment) error {
		return p.Complete(cmd.TransactionID(), h.clock.Now())
	})
}

type FailPaymentCommandHandler struct {
	uowFactory CommerceUoWFactory
	clock      ports.Clock
}

func NewFailPaymentCommandHandler(uowFactory CommerceUoWFactory, clock ports.Clock) FailPaymentCommandHandler {
	return FailPaymentCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h FailPaymentCommandHandler) Handle(ctx context.Context, cmd FailPaymentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return paymentTransition(ctx, h.uowFactory, cmd.PaymentID(), func(p *payment.Payment) error {
		return p.Fail(cmd.Reason(), h.clock.Now())
	})
}
