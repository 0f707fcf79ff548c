package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/nyumbani/nyumbani/internal/jobs"
	"github.com/nyumbani/nyumbani/internal/tenancy"
)

var defaultJobMetrics = jobmetrics.NewMetrics(nil)

// TenancySweepJob rolls tenancies through their lifecycle on a schedule:
// upcoming ones activate when their start date arrives and active ones
// expire once their end date has passed.
type TenancySweepJob struct {
	Tenancies *tenancy.Service
	Logger    *slog.Logger
	Metrics   *jobmetrics.Metrics
	clock     func() time.Time
}

// NewTenancySweepJob wires dependencies for the sweep handlers.
func NewTenancySweepJob(tenancies *tenancy.Service, logger *slog.Logger, metrics *jobmetrics.Metrics) *TenancySweepJob {
	return &TenancySweepJob{
		Tenancies: tenancies,
		Logger:    logger,
		Metrics:   metrics,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// HandleExpire processes expire sweep tasks.
func (j *TenancySweepJob) HandleExpire(ctx context.Context, t *asynq.Task) error {
	return j.handle(ctx, t, TaskTenancyExpireSweep, func(ctx context.Context, asOf time.Time) (int, error) {
		return j.Tenancies.ExpireDue(ctx, asOf)
	})
}

// HandleActivate processes activate sweep tasks.
func (j *TenancySweepJob) HandleActivate(ctx context.Context, t *asynq.Task) error {
	return j.handle(ctx, t, TaskTenancyActivateSweep, func(ctx context.Context, asOf time.Time) (int, error) {
		return j.Tenancies.ActivateDue(ctx, asOf)
	})
}

// handle returns its error through a named result so the deferred
// tracker can fold retry decisions back into it.
func (j *TenancySweepJob) handle(ctx context.Context, t *asynq.Task, name string, sweep func(context.Context, time.Time) (int, error)) (resultErr error) {
	if j == nil || j.Tenancies == nil {
		return errors.New("tenancy sweep: handler not configured")
	}
	var payload SweepPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	asOf := payload.AsOf
	if asOf.IsZero() {
		asOf = j.now()
	}

	tracker := j.metrics().Track(name)
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	logger := j.logger(name).With(slog.Time("as_of", asOf))
	n, err := sweep(ctx, asOf)
	if err != nil {
		resultErr = err
		logger.Error("tenancy sweep failed", slog.Any("error", err))
		return resultErr
	}
	logger.Info("tenancy sweep completed", slog.Int("transitioned", n))
	return resultErr
}

func (j *TenancySweepJob) logger(name string) *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", name))
	}
	return slog.Default().With(slog.String("job", name))
}

func (j *TenancySweepJob) metrics() *jobmetrics.Metrics {
	if j.Metrics != nil {
		return j.Metrics
	}
	return defaultJobMetrics
}

func (j *TenancySweepJob) now() time.Time {
	if j.clock != nil {
		return j.clock()
	}
	return time.Now().UTC()
}
