package jobs_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"backoffice/internal/core/application/usecases/commands"
	"backoffice/internal/jobs"
	"backoffice/internal/pkg/telemetry"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRefreshHandler struct {
	mock.Mock
}

func (m *MockRefreshHandler) Handle(
	ctx context.Context,
	cmd commands.RefreshOverdueLoansCommand,
) (commands.RefreshOverdueLoansResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.RefreshOverdueLoansResult), args.Error(1)
}

// countingHandler counts the runs triggered by the scheduler.
type countingHandler struct {
	runs atomic.Int32
}

func (h *countingHandler) Handle(
	context.Context,
	commands.RefreshOverdueLoansCommand,
) (commands.RefreshOverdueLoansResult, error) {
	h.runs.Add(1)
	return commands.RefreshOverdueLoansResult{}, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOverdueLoanJob_RunOnce_RecordsOverdueCount(t *testing.T) {
	handler := new(MockRefreshHandler)
	handler.On("Handle", mock.Anything, mock.Anything).
		Return(commands.RefreshOverdueLoansResult{Scanned: 10, Updated: 4, Overdue: 6}, nil).Once()
	metrics := telemetry.NewMetrics(prometheus.NewRegistry())

	jobs.NewOverdueLoanJob(handler, "", metrics, discardLogger()).RunOnce(context.Background())

	assert.InDelta(t, 6, testutil.ToFloat64(metrics.OverdueLoans), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.OverdueRefreshes.WithLabelValues("ok")), 0)
	handler.AssertExpectations(t)
}

func TestOverdueLoanJob_RunOnce_FailureKeepsLastGauge(t *testing.T) {
	handler := new(MockRefreshHandler)
	handler.On("Handle", mock.Anything, mock.Anything).
		Return(commands.RefreshOverdueLoansResult{Overdue: 2}, nil).Once()
	handler.On("Handle", mock.Anything, mock.Anything).
		Return(commands.RefreshOverdueLoansResult{}, errors.New("connection refused")).Once()
	metrics := telemetry.NewMetrics(prometheus.NewRegistry())
	job := jobs.NewOverdueLoanJob(handler, "", metrics, discardLogger())

	job.RunOnce(context.Background())
	job.RunOnce(context.Background())

	assert.InDelta(t, 2, testutil.ToFloat64(metrics.OverdueLoans), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.OverdueRefreshes.WithLabelValues("error")), 0)
}

func TestOverdueLoanJob_Start_InvalidSchedule(t *testing.T) {
	job := jobs.NewOverdueLoanJob(&countingHandler{}, "every hour",
		telemetry.NewMetrics(prometheus.NewRegistry()), discardLogger())

	require.Error(t, job.Start())
}

func TestJobManager_RunsOnSchedule(t *testing.T) {
	handler := &countingHandler{}
	manager := jobs.NewJobManager(handler, "* * * * * *",
		telemetry.NewMetrics(prometheus.NewRegistry()), discardLogger())

	require.NoError(t, manager.StartAll())
	assert.Eventually(t, func() bool { return handler.runs.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
	manager.StopAll()
}
