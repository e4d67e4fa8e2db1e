// Package payment holds the settlement side of an order: a Payment moves from
// PENDING to COMPLETED or FAILED and afterwards books refunds until the whole
// amount has been given back.
package payment
