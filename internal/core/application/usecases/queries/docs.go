// Package queries contains the read paths of the back office. Handlers read
// straight from the database with raw SQL and never write: a loan view is
// recomputed against the clock on every read, but the recomputed status is
// only persisted by RefreshOverdueLoans.
package queries
