package commands

import (
	"errors"
	"strings"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/refund"
	"backoffice/internal/pkg/errs"
	"backoffice/internal/pkg/guard"
)

var (
	ErrRequestRefundCommandIsNotConstructed = errors.New(
		"RequestRefundCommand must be created via NewRequestRefundCommand constructor",
	)
	ErrApproveRefundCommandIsNotConstructed = errors.New(
		"ApproveRefundCommand must be created via NewApproveRefundCommand constructor",
	)
	ErrRejectRefundCommandIsNotConstructed = errors.New(
		"RejectRefundCommand must be created via NewRejectRefundCommand constructor",
	)
	ErrStartRefundProcessingCommandIsNotConstructed = errors.New(
		"StartRefundProcessingCommand must be created via NewStartRefundProcessingCommand constructor",
	)
	ErrCompleteRefundCommandIsNotConstructed = errors.New(
		"CompleteRefundCommand must be created via NewCompleteRefundCommand constructor",
	)
	ErrFailRefundCommandIsNotConstructed = errors.New(
		"FailRefundCommand must be created via NewFailRefundCommand constructor",
	)
)

// RequestRefundCommand files a refund against an order's payment.
type RequestRefundCommand struct {
	refundID    kernel.UUID
	orderID     kernel.UUID
	amount      kernel.Money
	reason      string
	requestedBy string
	bank        refund.BankAccount

	guard guard.ConstructorGuard
}

func NewRequestRefundCommand(
	refundID, orderID kernel.UUID,
	amount kernel.Money,
	reason, requestedBy string,
	bank refund.BankAccount,
) (RequestRefundCommand, error) {
	reason, requestedBy = strings.TrimSpace(reason), strings.TrimSpace(requestedBy)

	var reasonErr, requesterErr error
	if reason == "" {
		reasonErr = errs.NewValueIsRequiredError("reason")
	}
	if requestedBy == "" {
		requesterErr = errs.NewValueIsRequiredError("requestedBy")
	}
	if err := errors.Join(refundID.Validate(), orderID.Validate(), amount.Validate(), reasonErr, requesterErr); err != nil {
		return RequestRefundCommand{}, err
	}

	return RequestRefundCommand{
		refundID:    refundID,
		orderID:     orderID,
		amount:      amount,
		reason:      reason,
		requestedBy: requestedBy,
		bank:        bank,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c RequestRefundCommand) Validate() error {
	return c.guard.Validate(ErrRequestRefundCommandIsNotConstructed)
}

func (c RequestRefundCommand) RefundID() kernel.UUID { return c.refundID }
func (c RequestRefundCommand) OrderID() kernel.UUID { return c.orderID }
func (c RequestRefundCommand) Amount() kernel.Money { return c.amount }
func (c RequestRefundCommand) Reason() string { return c.reason }
func (c RequestRefundCommand) RequestedBy() string { return c.requestedBy }
func (c RequestRefundCommand) BankAccount() refund.BankAccount { return c.bank }

// ApproveRefundCommand accepts a requested refund on behalf of approver.
type ApproveRefundCommand struct {
	refundID kernel.UUID
	approver string
	guard    guard.ConstructorGuard
}

func NewApproveRefundCommand(refundID kernel.UUID, approver string) (ApproveRefundCommand, error) {
	approver, err := requiredActor(refundID, approver, "approver")
	if err != nil {
		return ApproveRefundCommand{}, err
	}
	return ApproveRefundCommand{refundID: refundID, approver: approver, guard: guard.NewConstructorGuard()}, nil
}

func (c ApproveRefundCommand) Validate() error {
	return c.guard.Validate(ErrApproveRefundCommandIsNotConstructed)
}

func (c ApproveRefundCommand) RefundID() kernel.UUID { return c.refundID }
func (c ApproveRefundCommand) Approver() string { return c.approver }

// RejectRefundCommand declines a requested refund. The reason is kept for the member.
type RejectRefundCommand struct {
	refundID kernel.UUID
	rejecter string
	reason   string
	guard    guard.ConstructorGuard
}

func NewRejectRefundCommand(refundID kernel.UUID, rejecter, reason string) (RejectRefundCommand, error) {
	rejecter, err := requiredActor(refundID, rejecter, "rejecter")
	if err != nil {
		return RejectRefundCommand{}, err
	}
	return RejectRefundCommand{
		refundID: refundID,
		rejecter: rejecter,
		reason:   strings.TrimSpace(reason),
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c RejectRefundCommand) Validate() error {
	return c.guard.Validate(ErrRejectRefundCommandIsNotConstructed)
}

func (c RejectRefundCommand) RefundID() kernel.UUID { return c.refundID }
func (c RejectRefundCommand) Rejecter() string { return c.rejecter }
func (c RejectRefundCommand) Reason() string { return c.reason }

type StartRefundProcessingCommand struct {
	refundID kernel.UUID
	guard    guard.ConstructorGuard
}

func NewStartRefundProcessingCommand(refundID kernel.UUID) (StartRefundProcessingCommand, error) {
	if err := refundID.Validate(); err != nil {
		return StartRefundProcessingCommand{}, err
	}
	return StartRefundProcessingCommand{refundID: refundID, guard: guard.NewConstructorGuard()}, nil
}

func (c StartRefundProcessingCommand) Validate() error {
	return c.guard.Validate(ErrStartRefundProcessingCommandIsNotConstructed)
}

func (c StartRefundProcessingCommand) RefundID() kernel.UUID {
	return c.refundID
}

// CompleteRefundCommand records the gateway confirmation of a processing refund.
type CompleteRefundCommand struct {
	refundID      kernel.UUID
	transactionID string
	guard         guard.ConstructorGuard
}

func NewCompleteRefundCommand(refundID kernel.UUID, transactionID string) (CompleteRefundCommand, error) {
	transactionID, err := requiredActor(refundID, transactionID, "transactionID")
	if err != nil {
		return CompleteRefundCommand{}, err
	}
	return CompleteRefundCommand{
		refundID:      refundID,
		transactionID: transactionID,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c CompleteRefundCommand) Validate() error {
	return c.guard.Validate(ErrCompleteRefundCommandIsNotConstructed)
}

func (c CompleteRefundCommand) RefundID() kernel.UUID { return c.refundID }
func (c CompleteRefundCommand) TransactionID() string { return c.transactionID }

// FailRefundCommand marks a refund FAILED with an operator memo.
type FailRefundCommand struct {
	refundID kernel.UUID
	memo     string
	guard    guard.ConstructorGuard
}

func NewFailRefundCommand(refundID kernel.UUID, memo string) (FailRefundCommand, error) {
	if err := refundID.Validate(); err != nil {
		return FailRefundCommand{}, err
	}
	return FailRefundCommand{refundID: refundID, memo: strings.TrimSpace(memo), guard: guard.NewConstructorGuard()}, nil
}

func (c FailRefundCommand) Validate() error {
	return c.guard.Validate(ErrFailRefundCommandIsNotConstructed)
}

func (c FailRefundCommand) RefundID() kernel.UUID { return c.refundID }
func (c FailRefundCommand) Memo() string { return c.memo }

// requiredActor validates the refund id and a mandatory free-text field.
func requiredActor(refundID kernel.UUID, value, name string) (string, error) {
	value = strings.TrimSpace(value)
	var valueErr error
	if value == "" {
		valueErr = errs.NewValueIsRequiredError(name)
	}
	if err := errors.Join(refundID.Validate(), valueErr); err != nil {
		return "", err
	}
	return value, nil
}
