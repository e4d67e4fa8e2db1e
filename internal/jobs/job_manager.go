package jobs

import (
	"fmt"
	"log/slog"

	"backoffice/internal/pkg/telemetry"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	overdueLoanJob *OverdueLoanJob
}

// NewJobManager creates a job manager running the overdue refresh on schedule.
func NewJobManager(
	refreshHandler RefreshHandler,
	overdueSchedule string,
	metrics *telemetry.Metrics,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		overdueLoanJob: NewOverdueLoanJob(refreshHandler, overdueSchedule, metrics, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.overdueLoanJob.Start(); err != nil {
		return fmt.Errorf("failed to start overdue loan job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.overdueLoanJob.Stop()
}
