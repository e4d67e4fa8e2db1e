package commands

import (
	"context"
	"errors"

	"backoffice/internal/core/domain/model/loan"
	"backoffice/internal/core/ports"
	"backoffice/internal/pkg/guard"
)

var ErrRefreshOverdueLoansCommandIsNotConstructed = errors.New(
	"RefreshOverdueLoansCommand must be created via NewRefreshOverdueLoansCommand constructor",
)

// RefreshOverdueLoansCommand recomputes status and fee of every open loan. It is
// what the scheduled overdue job runs.
type RefreshOverdueLoansCommand struct {
	guard guard.ConstructorGuard
}

func NewRefreshOverdueLoansCommand() RefreshOverdueLoansCommand {
	return RefreshOverdueLoansCommand{guard: guard.NewConstructorGuard()}
}

func (c RefreshOverdueLoansCommand) Validate() error {
	return c.guard.Validate(ErrRefreshOverdueLoansCommandIsNotConstructed)
}

// RefreshOverdueLoansResult counts what the run saw.
type RefreshOverdueLoansResult struct {
	Scanned int
	Updated int
	Overdue int
}

// RefreshOverdueLoansCommandHandler persists only the loans whose status or fee
// changed, all in one transaction.
type RefreshOverdueLoansCommandHandler struct {
	uowFactory LoanUoWFactory
	clock      ports.Clock
}

func NewRefreshOverdueLoansCommandHandler(uowFactory LoanUoWFactory, clock ports.Clock) RefreshOverdueLoansCommandHandler {
	return RefreshOverdueLoansCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h RefreshOverdueLoansCommandHandler) Handle(
	ctx context.Context,
	cmd RefreshOverdueLoansCommand,
) (RefreshOverdueLoansResult, error) {
	var result RefreshOverdueLoansResult
	if err := cmd.Validate(); err != nil {
		return result, err
	}

	now := h.clock.Now()
	uow := h.uowFactory.Create()
	err := inTx(ctx, uow, func() error {
		repo := uow.LoanRepository()

		loans, err := repo.GetAllOpen(ctx)
		if err != nil {
			return err
		}

		for _, l := range loans {
			result.Scanned++
			if l.UpdateStatus(now) {
				if err = repo.Update(ctx, l); err != nil {
					return err
				}
				result.Updated++
			}
			if l.Status() == loan.Overdue {
				result.Overdue++
			}
		}
		return nil
	})
	if err != nil {
		return RefreshOverdueLoansResult{}, err
	}

	return result, nil
}
