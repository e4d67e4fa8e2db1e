// Package order implements the purchase workflow: a member checks out books, the
// order is confirmed, shipped and delivered, or cancelled before it leaves the
// warehouse.
//
// Key business rules:
//   - total amount is the sum of the line items, all in one currency
//   - final amount = total - discount and is never negative
//   - cancellation is allowed only while PENDING or CONFIRMED
//   - the happy path is strictly PENDING -> CONFIRMED -> SHIPPED -> DELIVERED
package order
