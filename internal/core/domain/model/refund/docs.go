// Package refund models a member's request to get money back for an order. A
// refund is approved or rejected by staff, then processed against the payment
// gateway. Whether the amount fits the paid amount is checked by the caller,
// see services.RefundReconciler.
package refund
