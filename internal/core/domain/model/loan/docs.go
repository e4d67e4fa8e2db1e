// Package loan implements the borrowing workflow of the library: a member takes a
// book home, may extend the due date while the loan is still on time, returns it,
// or has the loan cancelled.
//
// The package includes:
//   - Loan: the aggregate holding dates, status and the overdue fee
//   - Status: ACTIVE, OVERDUE, RETURNED, CANCELLED and the transition table between them
//   - FeePolicy: the daily late fee rate used to derive the overdue fee
//   - Error: the tagged error returned by every refused transition
//
// Key business rules:
//   - dueDate is never before loanDate, returnDate is written once
//   - the overdue fee is zero unless the loan is OVERDUE or was RETURNED late
//   - the fee is whole overdue days multiplied by the daily rate
//   - overdue loans cannot be extended; returned and cancelled loans are final
//
// Time never comes from the system clock: every operation receives "now".
package loan
