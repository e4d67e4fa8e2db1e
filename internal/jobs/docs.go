// Package jobs provides scheduled background tasks for the back office.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. OverdueLoanJob - runs RefreshOverdueLoans: every ACTIVE loan past its due
// date becomes OVERDUE and every overdue fee is recomputed from the whole days
// late.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(refreshHandler, cfg.OverdueSchedule, metrics, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules use six fields with a leading seconds field. The default,
// "0 0 * * * *", runs at the top of every hour. Reads never wait for the job:
// GetLoan and GetOverdueLoans recompute against the clock themselves.
//
// # Error Handling
//
// A failed run is logged, counted in backoffice_overdue_refresh_runs_total and
// retried on the next tick. Nothing is persisted for a failed run.
package jobs
