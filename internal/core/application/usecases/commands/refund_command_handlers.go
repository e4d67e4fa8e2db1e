package commands

import (
	"context"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/payment"
	"backoffice/internal/core/domain/model/refund"
	"backoffice/internal/core/domain/services"
	"backoffice/internal/core/ports"
)

// RequestRefundCommandHandler files a REQUESTED refund. The order's payment must
// be refundable and the amount must fit what is left of it.
type RequestRefundCommandHandler struct {
	uowFactory CommerceUoWFactory
	clock      ports.Clock
}

func NewRequestRefundCommandHandler(uowFactory CommerceUoWFactory, clock ports.Clock) RequestRefundCommandHandler {
	return RequestRefundCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h RequestRefundCommandHandler) Handle(ctx context.Context, cmd RequestRefundCommand) error {
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
		if err = checkRefundable(p, cmd.Amount()); err != nil {
			return err
		}

		r, err := refund.NewRefund(cmd.RefundID(), o.ID(), cmd.Amount(), cmd.Reason(), cmd.RequestedBy(),
			cmd.BankAccount(), h.clock.Now())
		if err != nil {
			return err
		}
		return uow.RefundRepository().Add(ctx, r)
	})
}

func checkRefundable(p *payment.Payment, amount kernel.Money) error {
	if !p.IsRefundable() {
		return &payment.Error{Kind: payment.KindInvalidState, PaymentID: p.ID(), Status: p.Status(), Operation: "refund"}
	}

	remaining := p.RemainingRefundable()
	exceeds, err := amount.GreaterThan(remaining)
	if err != nil {
		return err
	}
	if exceeds || !amount.IsPositive() {
		return &payment.Error{
			Kind:       payment.KindRefundAmountMismatch,
			PaymentID:  p.ID(),
			Status:     p.Status(),
			Operation:  "refund",
			Requested:  amount,
			Refundable: remaining,
		}
	}
	return nil
}

// ApproveRefundCommandHandler approves a refund when it still fits next to the
// order's completed refunds.
type ApproveRefundCommandHandler struct {
	uowFactory CommerceUoWFactory
	clock      ports.Clock
	reconciler services.RefundReconciler
}

func NewApproveRefundCommandHandler(
	uowFactory CommerceUoWFactory,
	clock ports.Clock,
	reconciler services.RefundReconciler,
) ApproveRefundCommandHandler {
	return ApproveRefundCommandHandler{uowFactory: uowFactory, clock: clock, reconciler: reconciler}
}

func (h ApproveRefundCommandHandler) Handle(ctx context.Context, cmd ApproveRefundCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	return inTx(ctx, uow, func() error {
		r, p, completed, err := loadRefundContext(ctx, uow, cmd.RefundID())
		if err != nil {
			return err
		}
		if err = h.reconciler.Approve(r, cmd.Approver(), p.Amount(), completed, h.clock.Now()); err != nil {
			return err
		}
		return uow.RefundRepository().Update(ctx, r)
	})
}

// CompleteRefundCommandHandler completes the refund and books it on the payment
// in the same transaction.
type CompleteRefundCommandHandler struct {
	uowFactory CommerceUoWFactory
	clock      ports.Clock
	reconciler services.RefundReconciler
}

func NewCompleteRefundCommandHandler(
	uowFactory CommerceUoWFactory,
	clock ports.Clock,
	reconciler services.RefundReconciler,
) CompleteRefundCommandHandler {
	return CompleteRefundCommandHandler{uowFactory: uowFactory, clock: clock, reconciler: reconciler}
}

func (h CompleteRefundCommandHandler) Handle(ctx context.Context, cmd CompleteRefundCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	return inTx(ctx, uow, func() error {
		r, p, completed, err := loadRefundContext(ctx, uow, cmd.RefundID())
		if err != nil {
			return err
		}
		if err = h.reconciler.Complete(r, p, cmd.TransactionID(), completed, h.clock.Now()); err != nil {
			return err
		}
		if err = uow.PaymentRepository().Update(ctx, p); err != nil {
			return err
		}
		return uow.RefundRepository().Update(ctx, r)
	})
}

func loadRefundContext(
	ctx context.Context,
	uow CommerceUoW,
	refundID kernel.UUID,
) (*refund.Refund, *payment.Payment, kernel.Money, error) {
	r, err := uow.RefundRepository().Get(ctx, refundID)
	if err != nil {
		return nil, nil, kernel.Money{}, err
	}
	p, err := uow.PaymentRepository().GetByOrder(ctx, r.OrderID())
	if err != nil {
		return nil, nil, kernel.Money{}, err
	}
	completed, err := uow.RefundRepository().TotalCompletedForOrder(ctx, r.OrderID(), p.Amount().Currency())
	if err != nil {
		return nil, nil, kernel.Money{}, err
	}
	return r, p, completed, nil
}

func refundTransition(
	ctx context.Context,
	factory CommerceUoWFactory,
	refundID kernel.UUID,
	fn func(r *refund.Refund) error,
) error {
	uow := factory.Create()
	return inTx(ctx, uow, func() error {
		repo := uow.RefundRepository()

		r, err := repo.Get(ctx, refundID)
		if err != nil {
			return err
		}
		if err = fn(r); err != nil {
			return err
		}

		return repo.Update(ctx, r)
	})
}

type RejectRefundCommandHandler struct {
	uowFactory CommerceUoWFactory
	clock      ports.Clock
}

func NewRejectRefundCommandHandler(uowFactory CommerceUoWFactory, clock ports.Clock) RejectRefundCommandHandler {
	return RejectRefundCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h RejectRefundCommandHandler) Handle(ctx context.Context, cmd RejectRefundCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return refundTransition(ctx, h.uowFactory, cmd.RefundID(), func(r *refund.Refund) error {
		return r.Reject(cmd.Rejecter(), cmd.Reason(), h.clock.Now())
	})
}

type StartRefundProcessingCommandHandler struct {
	uowFactory CommerceUoWFactory
	clock      ports.Clock
}

func NewStartRefundProcessingCommandHandler(
	uowFactory CommerceUoWFactory,
	clock ports.Clock,
) StartRefundProcessingCommandHandler {
	return StartRefundProcessingCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h StartRefundProcessingCommandHandler) Handle(ctx context.Context, cmd StartRefundProcessingCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return refundTransition(ctx, h.uowFactory, cmd.RefundID(), func(r *refund.Refund) error {
		return r.StartProcessing(h.clock.Now())
	})
}

// FailRefundCommandHandler fails a refund from any status except COMPLETED:
// a completed refund has already moved money and is booked on the payment.
type FailRefundCommandHandler struct {
	uowFactory CommerceUoWFactory
	clock      ports.Clock
}

func NewFailRefundCommandHandler(uowFactory CommerceUoWFactory, clock ports.Clock) FailRefundCommandHandler {
	return FailRefundCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h FailRefundCommandHandler) Handle(ctx context.Context, cmd FailRefundCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return refundTransition(ctx, h.uowFactory, cmd.RefundID(), func(r *refund.Refund) error {
		if r.Status() == refund.Completed {
			return &refund.Error{Kind: refund.KindInvalidState, RefundID: r.ID(), Status: r.Status(), Operation: "fail"}
		}
		r.Fail(cmd.Memo(), h.clock.Now())
		return nil
	})
}
