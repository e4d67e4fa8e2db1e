// Package services provides domain services for rules that span more than one
// aggregate. Services never load or save anything; the application layer passes
// in the entities and the aggregates it read inside the same transaction.
//
// The package includes:
//   - RefundReconciler: keeps completed refunds of an order within the paid amount
//     and books a completed refund on the payment
package services
