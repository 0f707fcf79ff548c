package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	jobmetrics "github.com/nyumbani/nyumbani/internal/jobs"
	"github.com/nyumbani/nyumbani/internal/tenancy"
)

func newSweepJobForTest(t *testing.T) (*TenancySweepJob, *prometheus.Registry) {
	t.Helper()
	registry := prometheus.NewRegistry()
	job := NewTenancySweepJob(
		&tenancy.Service{},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		jobmetrics.NewMetrics(registry),
	)
	return job, registry
}

func TestSweepHandleReturnsSweepError(t *testing.T) {
	job, registry := newSweepJobForTest(t)
	task, err := NewTenancyActivateSweepTask(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	boom := errors.New("sweep exploded")
	err = job.handle(context.Background(), task, TaskTenancyActivateSweep,
		func(context.Context, time.Time) (int, error) { return 0, boom })
	require.ErrorIs(t, err, boom)

	// The run must land in the failure counter, which only happens when the
	// deferred tracker sees the error the handler returned.
	require.Equal(t, 1.0, counterValue(t, registry, "nyumbani_jobs_failures_total"))
}

func counterValue(t *testing.T, registry *prometheus.Registry, name string) float64 {
	t.Helper()
	families, err := registry.Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		var total float64
		for _, m := range family.GetMetric() {
			total += m.GetCounter().GetValue()
		}
		return total
	}
	return 0
}

func TestSweepHandleSuccess(t *testing.T) {
	job, _ := newSweepJobForTest(t)
	task, err := NewTenancyActivateSweepTask(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	require.NoError(t, job.handle(context.Background(), task, TaskTenancyActivateSweep,
		func(context.Context, time.Time) (int, error) { return 3, nil }))
}

func TestSweepHandleSkipsMalformedPayload(t *testing.T) {
	job, _ := newSweepJobForTest(t)
	task := asynq.NewTask(TaskTenancyActivateSweep, []byte("{not json"))

	err := job.handle(context.Background(), task, TaskTenancyActivateSweep,
		func(context.Context, time.Time) (int, error) { return 0, nil })
	require.ErrorIs(t, err, asynq.SkipRetry)
}
