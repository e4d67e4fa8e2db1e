package jobs

import (
	"context"
	"log/slog"

	"backoffice/internal/core/application/usecases/commands"
	"backoffice/internal/pkg/telemetry"

	"github.com/robfig/cron/v3"
)

// DefaultOverdueSchedule runs the refresh at the top of every hour. Schedules
// take a leading seconds field.
const DefaultOverdueSchedule = "0 0 * * * *"

// RefreshHandler is satisfied by commands.RefreshOverdueLoansCommandHandler.
type RefreshHandler interface {
	Handle(ctx context.Context, cmd commands.RefreshOverdueLoansCommand) (commands.RefreshOverdueLoansResult, error)
}

// OverdueLoanJob flags loans that passed their due date and recomputes their
// fee, so overdue loans are persisted even when nobody reads them.
type OverdueLoanJob struct {
	handler  RefreshHandler
	schedule string
	cron     *cron.Cron
	metrics  *telemetry.Metrics
	logger   *slog.Logger
}

func NewOverdueLoanJob(
	handler RefreshHandler,
	schedule string,
	metrics *telemetry.Metrics,
	logger *slog.Logger,
) *OverdueLoanJob {
	if schedule == "" {
		schedule = DefaultOverdueSchedule
	}
	return &OverdueLoanJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		metrics:  metrics,
		logger:   logger.With("component", "overdue_loan_job"),
	}
}

// Start registers the refresh on the schedule and starts the scheduler.
func (j *OverdueLoanJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.RunOnce(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Overdue loan job started", "schedule", j.schedule)
	return nil
}

// RunOnce performs one refresh. Failures are logged and counted, never returned:
// the next tick retries.
func (j *OverdueLoanJob) RunOnce(ctx context.Context) {
	result, err := j.handler.Handle(ctx, commands.NewRefreshOverdueLoansCommand())
	j.metrics.RecordRefresh(result.Overdue, err)
	if err != nil {
		j.logger.ErrorContext(ctx, "Overdue loan refresh failed", "error", err)
		return
	}

	j.logger.InfoContext(ctx, "Overdue loans refreshed",
		"scanned", result.Scanned,
		"updated", result.Updated,
		"overdue", result.Overdue,
	)
}

// Stop stops the scheduler and waits for a running refresh to finish.
func (j *OverdueLoanJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Overdue loan job stopped")
}
