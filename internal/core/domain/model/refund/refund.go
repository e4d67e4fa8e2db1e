package refund

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/pkg/errs"
	"backoffice/internal/pkg/guard"
)

var ErrRefundIsNotConstructed = errors.New("Refund must be created via NewRefund or RestoreRefund")

// Timestamps records when each transition happened.
type Timestamps struct {
	RequestedAt  time.Time
	ApprovedAt   *time.Time
	RejectedAt   *time.Time
	ProcessingAt *time.Time
	CompletedAt  *time.Time
	FailedAt     *time.Time
}

// Actors names the staff members involved in the decision.
type Actors struct {
	RequestedBy string
	ApprovedBy  string
	RejectedBy  string
}

// Refund is a request to give back part or all of an order's payment.
type Refund struct {
	id                  kernel.UUID
	orderID             kernel.UUID
	amount              kernel.Money
	reason              string
	status              Status
	actors              Actors
	rejectionReason     string
	refundTransactionID string
	adminMemo           string
	bank                BankAccount
	timestamps          Timestamps

	guard guard.ConstructorGuard
}

// NewRefund files a REQUESTED refund. The amount must be positive; whether it
// fits the payment is checked by the caller.
func NewRefund(
	id, orderID kernel.UUID,
	amount kernel.Money,
	reason, requestedBy string,
	bank BankAccount,
	now time.Time,
) (*Refund, error) {
	reason, requestedBy = strings.TrimSpace(reason), strings.TrimSpace(requestedBy)

	var amountErr, reasonErr, requesterErr error
	if err := amount.Validate(); err != nil {
		amountErr = err
	} else if !amount.IsPositive() {
		amountErr = errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%s is not positive", amount))
	}
	if reason == "" {
		reasonErr = errs.NewValueIsRequiredError("reason")
	}
	if requestedBy == "" {
		requesterErr = errs.NewValueIsRequiredError("requestedBy")
	}
	if err := errors.Join(id.Validate(), orderID.Validate(), amountErr, reasonErr, requesterErr); err != nil {
		return nil, err
	}

	return &Refund{
		id:         id,
		orderID:    orderID,
		amount:     amount,
		reason:     reason,
		status:     Requested,
		actors:     Actors{RequestedBy: requestedBy},
		bank:       bank,
		timestamps: Timestamps{RequestedAt: now},
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// RestoreRefund rebuilds a Refund read from persistence.
func RestoreRefund(
	id, orderID kernel.UUID,
	amount kernel.Money,
	reason string,
	status Status,
	actors Actors,
	rejectionReason, refundTransactionID, adminMemo string,
	bank BankAccount,
	timestamps Timestamps,
) (*Refund, error) {
	r, err := NewRefund(id, orderID, amount, reason, actors.RequestedBy, bank, timestamps.RequestedAt)
	if err != nil {
		return nil, err
	}
	if err = status.Validate(); err != nil {
		return nil, err
	}
	if err = validateTrail(status, actors, refundTransactionID, timestamps); err != nil {
		return nil, err
	}

	r.status = status
	r.actors = actors
	r.rejectionReason = rejectionReason
	r.refundTransactionID = refundTransactionID
	r.adminMemo = adminMemo
	r.timestamps = timestamps
	return r, nil
}

// validateTrail checks that the actors and timestamps a status implies are
// present. FAILED is reachable from any status, so it only needs FailedAt.
func validateTrail(status Status, actors Actors, transactionID string, ts Timestamps) error {
	var problems []error
	require := func(missing bool, field string) {
		if missing {
			problems = append(problems, errs.NewValueIsRequiredError(field))
		}
	}

	switch status {
	case Approved, Processing, Completed:
		require(strings.TrimSpace(actors.ApprovedBy) == "", "approvedBy")
		require(ts.ApprovedAt == nil, "approvedAt")
	case Rejected:
		require(strings.TrimSpace(actors.RejectedBy) == "", "rejectedBy")
		require(ts.RejectedAt == nil, "rejectedAt")
	case Failed:
		require(ts.FailedAt == nil, "failedAt")
	}
	if status == Processing || status == Completed {
		require(ts.ProcessingAt == nil, "processingAt")
	}
	if status == Completed {
		require(strings.TrimSpace(transactionID) == "", "refundTransactionID")
		require(ts.CompletedAt == nil, "completedAt")
	}

	return errors.Join(problems...)
}

func (r *Refund) Validate() error {
	if r == nil {
		return ErrRefundIsNotConstructed
	}
	return r.guard.Validate(ErrRefundIsNotConstructed)
}

func (r *Refund) ID() kernel.UUID { return r.id }
func (r *Refund) OrderID() kernel.UUID { return r.orderID }
func (r *Refund) Amount() kernel.Money { return r.amount }
func (r *Refund) Reason() string { return r.reason }
func (r *Refund) Status() Status { return r.status }
func (r *Refund) Actors() Actors { return r.actors }
func (r *Refund) RejectionReason() string { return r.rejectionReason }
func (r *Refund) RefundTransactionID() string { return r.refundTransactionID }
func (r *Refund) AdminMemo() string { return r.adminMemo }
func (r *Refund) BankAccount() BankAccount { return r.bank }
func (r *Refund) Timestamps() Timestamps { return r.timestamps }

// CanCancel is true while no money has moved: REQUESTED or APPROVED.
func (r *Refund) CanCancel() bool {
	return kernel.StatusIn(r.status, Requested, Approved)
}

// Approve accepts a REQUESTED refund.
func (r *Refund) Approve(approver string, now time.Time) error {
	if !r.status.CanTransitionTo(Approved) {
		return r.newError("approve")
	}
	approver = strings.TrimSpace(approver)
	if approver == "" {
		return errs.NewValueIsRequiredError("approver")
	}

	r.status = Approved
	r.actors.ApprovedBy = approver
	r.timestamps.ApprovedAt = &now
	return nil
}

// Reject declines a REQUESTED refund.
func (r *Refund) Reject(rejecter, reason string, now time.Time) error {
	if !r.status.CanTransitionTo(Rejected) {
		return r.newError("reject")
	}
	rejecter = strings.TrimSpace(rejecter)
	if rejecter == "" {
		return errs.NewValueIsRequiredError("rejecter")
	}

	r.status = Rejected
	r.actors.RejectedBy = rejecter
	r.rejectionReason = strings.TrimSpace(reason)
	r.timestamps.RejectedAt = &now
	return nil
}

// StartProcessing sends an APPROVED refund to the payment gateway.
func (r *Refund) StartProcessing(now time.Time) error {
	if !r.status.CanTransitionTo(Processing) {
		return r.newError("start processing")
	}
	r.status = Processing
	r.timestamps.ProcessingAt = &now
	return nil
}

// Complete records the gateway confirmation of a PROCESSING refund.
func (r *Refund) Complete(transactionID string, now time.Time) error {
	if !r.status.CanTransitionTo(Completed) {
		return r.newError("complete")
	}
	transactionID = strings.TrimSpace(transactionID)
	if transactionID == "" {
		return errs.NewValueIsRequiredError("transactionID")
	}

	r.status = Completed
	r.refundTransactionID = transactionID
	r.timestamps.CompletedAt = &now
	return nil
}

// Fail is an administrative transition to FAILED with a memo for the operator.
// It applies from any status.
func (r *Refund) Fail(memo string, now time.Time) {
	r.status = Failed
	r.adminMemo = strings.TrimSpace(memo)
	r.timestamps.FailedAt = &now
}

func (r *Refund) newError(operation string) *Error {
	return &Error{Kind: KindInvalidState, RefundID: r.id, Status: r.status, Operation: operation}
}
