// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management,
// load -> transition -> save, commit.
package commands

import (
	"context"

	"backoffice/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	LoanRepoFactory interface {
		LoanRepository() ports.LoanRepository
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	PaymentRepoFactory interface {
		PaymentRepository() ports.PaymentRepository
	}

	DeliveryRepoFactory interface {
		DeliveryRepository() ports.DeliveryRepository
	}

	RefundRepoFactory interface {
		RefundRepository() ports.RefundRepository
	}

	// LoanUoW manages transactions for the borrowing workflow.
	LoanUoW interface {
		TxManager
		LoanRepoFactory
	}

	// LoanUoWFactory creates new loan unit of work instances.
	LoanUoWFactory interface {
		Create() LoanUoW
	}

	// CommerceUoW manages transactions across orders, payments, deliveries and
	// refunds. Commands that keep two of them in step (ship = delivery + order,
	// complete refund = refund + payment) save both inside one transaction.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   o, err := uow.OrderRepository().Get(ctx, orderID)
	//   d, err := uow.DeliveryRepository().GetByOrder(ctx, orderID)
	//   // ... transition both, update both
	//
	//   err = uow.Commit(ctx)
	CommerceUoW interface {
		TxManager
		OrderRepoFactory
		PaymentRepoFactory
		DeliveryRepoFactory
		RefundRepoFactory
	}

	// CommerceUoWFactory creates new commerce unit of work instances.
	CommerceUoWFactory interface {
		Create() CommerceUoW
	}
)

// inTx runs fn between Begin and Commit. Any error, including a failed commit,
// leaves the transaction rolled back.
func inTx(ctx context.Context, uow TxManager, fn func() error) error {
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := fn(); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
