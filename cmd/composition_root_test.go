package cmd_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"backoffice/cmd"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewCompositionRoot_RejectsBadFee(t *testing.T) {
	_, err := cmd.NewCompositionRoot(cmd.Config{DailyLateFee: "abc"}, nil, discardLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DAILY_LATE_FEE")
}

func TestCompositionRoot_WiresEveryHandler(t *testing.T) {
	root, err := cmd.NewCompositionRoot(cmd.Config{}, nil, discardLogger())
	require.NoError(t, err)

	handlers := reflect.ValueOf(root.CreateHTTPHandlers())
	for i := 0; i < handlers.NumField(); i++ {
		assert.False(t, handlers.Field(i).IsNil(), "handler %s is not wired", handlers.Type().Field(i).Name)
	}
	assert.NotNil(t, root.CreateJobManager())
}

func TestCompositionRoot_Router(t *testing.T) {
	root, err := cmd.NewCompositionRoot(cmd.Config{}, nil, discardLogger())
	require.NoError(t, err)

	e, err := root.CreateRouter(context.Background())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
