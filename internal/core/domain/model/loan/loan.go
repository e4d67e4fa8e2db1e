package loan

import (
	"errors"
	"fmt"
	"time"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/pkg/errs"
	"backoffice/internal/pkg/guard"
)

const (
	// DefaultLoanDays is the borrowing period when the request does not name one.
	DefaultLoanDays = 14
	// MaxLoanDays bounds both the initial period and a single extension.
	MaxLoanDays = 90

	day = 24 * time.Hour
)

// ErrLoanIsNotConstructed is returned when a Loan was not created via NewLoan or RestoreLoan.
var ErrLoanIsNotConstructed = errors.New("Loan must be created via NewLoan or RestoreLoan")

// Loan is a book lent to a member. It is the aggregate root of the borrowing
// workflow and the only place where the overdue fee is derived.
//
// Loan follows these invariants:
//   - dueDate is never before loanDate
//   - returnDate, once set, never changes
//   - overdueFee is zero unless status is OVERDUE or the book was returned late
//   - RETURNED and CANCELLED are final
//
// A Loan holds no lock. Callers serialize load -> transition -> save per loan id.
type Loan struct {
	// id is the unique identifier of the loan
	id kernel.UUID

	// memberID is the borrowing member
	memberID kernel.UUID

	// bookID is the lent book
	bookID kernel.UUID

	// loanDate is when the borrowing request was accepted
	loanDate time.Time

	// dueDate is when the book must be back; moved forward by extensions
	dueDate time.Time

	// returnDate is set exactly once by ReturnBook
	returnDate *time.Time

	// status is the current lifecycle state
	status Status

	// overdueFee is derived from policy and the overdue days
	overdueFee kernel.Money

	// policy supplies the daily late fee rate
	policy FeePolicy

	guard guard.ConstructorGuard
}

// NewLoan accepts a borrowing request: the loan starts ACTIVE at now and is due
// loanDays later.
//
// Parameters:
//   - id, memberID, bookID: valid identifiers
//   - loanDays: borrowing period, 1..MaxLoanDays
//   - now: acceptance time, becomes loanDate
//   - policy: the fee policy the loan is charged with
//
// Example:
//
//	l, err := loan.NewLoan(kernel.NewUUID(), memberID, bookID, loan.DefaultLoanDays, clock.Now(), policy)
//	if err != nil {
//	    return err
//	}
func NewLoan(id, memberID, bookID kernel.UUID, loanDays int, now time.Time, policy FeePolicy) (*Loan, error) {
	l := &Loan{
		status: Active,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		l.setIDs(id, memberID, bookID),
		l.setPolicy(policy),
		validateDays("loanDays", loanDays),
	); err != nil {
		return nil, err
	}

	l.loanDate = now
	l.dueDate = now.AddDate(0, 0, loanDays)
	l.overdueFee = policy.DailyRate().Zero()

	return l, nil
}

// RestoreLoan rebuilds a Loan read from persistence and re-checks its invariants.
func RestoreLoan(
	id, memberID, bookID kernel.UUID,
	loanDate, dueDate time.Time,
	returnDate *time.Time,
	status Status,
	overdueFee kernel.Money,
	policy FeePolicy,
) (*Loan, error) {
	l := &Loan{
		loanDate: loanDate,
		dueDate:  dueDate,
		status:   status,
		guard:    guard.NewConstructorGuard(),
	}
	if returnDate != nil {
		rd := *returnDate
		l.returnDate = &rd
	}

	if err := errors.Join(
		l.setIDs(id, memberID, bookID),
		l.setPolicy(policy),
		status.Validate(),
		l.setOverdueFee(overdueFee),
	); err != nil {
		return nil, err
	}

	if dueDate.Before(loanDate) {
		return nil, errs.NewValueIsInvalidErrorWithCause("dueDate",
			fmt.Errorf("%s is before loan date %s", dueDate.Format(time.RFC3339), loanDate.Format(time.RFC3339)))
	}
	if (status == Returned) != (returnDate != nil) {
		return nil, errs.NewValueIsInvalidErrorWithCause("returnDate",
			fmt.Errorf("return date presence does not match status %s", status))
	}

	return l, nil
}

// Validate ensures the Loan was built by a constructor.
func (l *Loan) Validate() error {
	if l == nil {
		return ErrLoanIsNotConstructed
	}
	return l.guard.Validate(ErrLoanIsNotConstructed)
}

func (l *Loan) ID() kernel.UUID { return l.id }
func (l *Loan) MemberID() kernel.UUID { return l.memberID }
func (l *Loan) BookID() kernel.UUID { return l.bookID }
func (l *Loan) LoanDate() time.Time { return l.loanDate }
func (l *Loan) DueDate() time.Time { return l.dueDate }
func (l *Loan) Status() Status { return l.status }
func (l *Loan) OverdueFee() kernel.Money { return l.overdueFee }
func (l *Loan) Policy() FeePolicy { return l.policy }

// ReturnDate returns a copy of the return time, nil while the book is out.
func (l *Loan) ReturnDate() *time.Time {
	if l.returnDate == nil {
		return nil
	}
	rd := *l.returnDate
	return &rd
}

// IsReturned reports whether the book was handed back.
func (l *Loan) IsReturned() bool {
	return l.returnDate != nil
}

// OverdueDays is the number of whole days between dueDate and now, zero when the
// loan is not late or the book is already back.
func (l *Loan) OverdueDays(now time.Time) int {
	if l.returnDate != nil || !now.After(l.dueDate) {
		return 0
	}
	return int(now.Sub(l.dueDate) / day)
}

// CalculateOverdueFee is the fee the loan would carry at now without changing it.
// A returned loan keeps the fee fixed at return time.
func (l *Loan) CalculateOverdueFee(now time.Time) kernel.Money {
	if l.returnDate != nil {
		return l.overdueFee
	}
	if l.status == Cancelled {
		return l.policy.DailyRate().Zero()
	}
	return l.policy.FeeFor(l.OverdueDays(now))
}

// ReturnBook records the return at now and fixes the overdue fee as of now
// (zero when not late). A second call fails with KindAlreadyReturned.
func (l *Loan) ReturnBook(now time.Time) error {
	if l.returnDate != nil {
		return newError(KindAlreadyReturned, l, "return")
	}
	if !l.status.CanTransitionTo(Returned) {
		return newError(KindInvalidState, l, "return")
	}

	fee := l.policy.FeeFor(l.OverdueDays(now))
	returnedAt := now
	l.returnDate = &returnedAt
	l.status = Returned
	l.overdueFee = fee
	return nil
}

// UpdateStatus recomputes status and fee from the dates. It is idempotent and safe
// to call on every read; it reports whether anything changed so callers can skip
// persisting unchanged loans.
//
//   - returned: RETURNED, fee as fixed at return
//   - cancelled: left untouched
//   - now past dueDate: OVERDUE, fee = overdue days × daily rate
//   - otherwise: ACTIVE, fee zero
func (l *Loan) UpdateStatus(now time.Time) bool {
	prevStatus, prevFee := l.status, l.overdueFee

	switch {
	case l.returnDate != nil:
		l.status = Returned
	case l.status == Cancelled:
		return false
	case now.After(l.dueDate):
		l.status = Overdue
		l.overdueFee = l.policy.FeeFor(l.OverdueDays(now))
	default:
		l.status = Active
		l.overdueFee = l.policy.DailyRate().Zero()
	}

	return prevStatus != l.status || !prevFee.Equals(l.overdueFee)
}

// ExtendLoan moves the due date forward by additionalDays. Returned loans fail with
// KindAlreadyReturned, loans already past their due date with KindOverdueExtension.
func (l *Loan) ExtendLoan(additionalDays int, now time.Time) error {
	if l.returnDate != nil {
		return newError(KindAlreadyReturned, l, "extend")
	}
	if l.status == Cancelled {
		return newError(KindInvalidState, l, "extend")
	}
	if now.After(l.dueDate) {
		return newError(KindOverdueExtension, l, "extend")
	}
	if err := validateDays("additionalDays", additionalDays); err != nil {
		return err
	}

	l.dueDate = l.dueDate.AddDate(0, 0, additionalDays)
	return nil
}

// CancelLoan cancels a loan that is still out, including an overdue one. The
// overdue fee is waived.
func (l *Loan) CancelLoan() error {
	if l.returnDate != nil {
		return newError(KindAlreadyReturned, l, "cancel")
	}
	if !l.status.CanTransitionTo(Cancelled) {
		return newError(KindInvalidState, l, "cancel")
	}

	l.status = Cancelled
	l.overdueFee = l.policy.DailyRate().Zero()
	return nil
}

func (l *Loan) setIDs(id, memberID, bookID kernel.UUID) error {
	if err := errors.Join(id.Validate(), memberID.Validate(), bookID.Validate()); err != nil {
		return err
	}
	l.id, l.memberID, l.bookID = id, memberID, bookID
	return nil
}

func (l *Loan) setPolicy(policy FeePolicy) error {
	if err := policy.Validate(); err != nil {
		return err
	}
	l.policy = policy
	return nil
}

// setOverdueFee is used by RestoreLoan only; it expects status to be set.
func (l *Loan) setOverdueFee(fee kernel.Money) error {
	if err := fee.Validate(); err != nil {
		return err
	}
	if fee.Currency() != l.policy.DailyRate().Currency() {
		return &kernel.CurrencyMismatchError{
			Operation: "restore",
			Left:      l.policy.DailyRate().Currency(),
			Right:     fee.Currency(),
		}
	}
	if fee.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("overdueFee", fmt.Errorf("%s is negative", fee))
	}
	if !fee.IsZero() && l.status != Overdue && l.status != Returned {
		return errs.NewValueIsInvalidErrorWithCause("overdueFee",
			fmt.Errorf("%s charged on a %s loan", fee, l.status))
	}
	l.overdueFee = fee
	return nil
}

func validateDays(param string, days int) error {
	if days < 1 || days > MaxLoanDays {
		return errs.NewValueIsOutOfRangeError(param, days, 1, MaxLoanDays)
	}
	return nil
}
