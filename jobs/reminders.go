package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"

	jobmetrics "github.com/nyumbani/nyumbani/internal/jobs"
	"github.com/nyumbani/nyumbani/internal/notify"
)

const (
	rentDueLeadDays = 5
	expiryLeadDays  = 30
)

// ReminderJob messages tenants ahead of rent due dates and tenancy expiry.
type ReminderJob struct {
	Notify  *notify.Service
	Pool    *pgxpool.Pool
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
	clock   func() time.Time
}

// NewReminderJob wires dependencies for the reminder handlers.
func NewReminderJob(notifySvc *notify.Service, pool *pgxpool.Pool, logger *slog.Logger, metrics *jobmetrics.Metrics) *ReminderJob {
	return &ReminderJob{
		Notify:  notifySvc,
		Pool:    pool,
		Logger:  logger,
		Metrics: metrics,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

type reminderRow struct {
	tenancyID  string
	firstName  string
	phone      string
	unitNumber string
	rentAmount float64
	endDate    time.Time
}

// HandleRentDue processes rent reminder tasks. Rent schedules are kept
// simple: every open tenancy covering the reminder date gets one message.
func (j *ReminderJob) HandleRentDue(ctx context.Context, t *asynq.Task) (resultErr error) {
	if j == nil || j.Notify == nil {
		return errors.New("reminders: handler not configured")
	}
	var payload SweepPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	asOf := payload.AsOf
	if asOf.IsZero() {
		asOf = j.now()
	}
	dueDate := asOf.AddDate(0, 0, rentDueLeadDays)

	tracker := j.metrics().Track(TaskRentDueReminders)
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	logger := j.logger(TaskRentDueReminders).With(slog.Time("due_date", dueDate))
	rows, err := j.fetchOpenCovering(ctx, dueDate)
	if err != nil {
		resultErr = err
		logger.Error("load reminder rows", slog.Any("error", err))
		return resultErr
	}

	sent := 0
	for _, row := range rows {
		if err := j.Notify.RentDue(ctx, row.phone, row.firstName, row.unitNumber, row.rentAmount, dueDate); err != nil {
			logger.Warn("send rent reminder",
				slog.String("tenancy_id", row.tenancyID),
				slog.Any("error", err))
			continue
		}
		sent++
	}
	j.metrics().AddReminders(string(notify.CategoryRentDue), sent)
	logger.Info("rent reminders sent", slog.Int("count", sent), slog.Int("candidates", len(rows)))
	return resultErr
}

// HandleExpiry processes tenancy expiry reminder tasks. Tenants whose
// active tenancy ends exactly expiryLeadDays from now get one warning.
func (j *ReminderJob) HandleExpiry(ctx context.Context, t *asynq.Task) (resultErr error) {
	if j == nil || j.Notify == nil {
		return errors.New("reminders: handler not configured")
	}
	var payload SweepPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	asOf := payload.AsOf
	if asOf.IsZero() {
		asOf = j.now()
	}
	expiryDate := asOf.AddDate(0, 0, expiryLeadDays)

	tracker := j.metrics().Track(TaskTenancyExpiryReminders)
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	logger := j.logger(TaskTenancyExpiryReminders).With(slog.Time("expiry_date", expiryDate))
	rows, err := j.fetchActiveEndingOn(ctx, expiryDate)
	if err != nil {
		resultErr = err
		logger.Error("load expiry rows", slog.Any("error", err))
		return resultErr
	}

	sent := 0
	for _, row := range rows {
		if err := j.Notify.TenancyExpiry(ctx, row.phone, row.firstName, row.unitNumber, row.endDate); err != nil {
			logger.Warn("send expiry reminder",
				slog.String("tenancy_id", row.tenancyID),
				slog.Any("error", err))
			continue
		}
		sent++
	}
	j.metrics().AddReminders(string(notify.CategoryTenancyExpiry), sent)
	logger.Info("expiry reminders sent", slog.Int("count", sent), slog.Int("candidates", len(rows)))
	return resultErr
}

func (j *ReminderJob) fetchOpenCovering(ctx context.Context, date time.Time) ([]reminderRow, error) {
	const query = `
		SELECT t.id, tn.first_name, tn.phone, u.number, t.rent_amount, t.end_date
		FROM tenancies t
		JOIN tenants tn ON tn.id = t.tenant_id
		JOIN units u ON u.id = t.unit_id
		WHERE t.status IN ('UPCOMING','ACTIVE')
		  AND t.start_date <= $1 AND t.end_date >= $1`
	return j.fetch(ctx, query, date)
}

func (j *ReminderJob) fetchActiveEndingOn(ctx context.Context, date time.Time) ([]reminderRow, error) {
	const query = `
		SELECT t.id, tn.first_name, tn.phone, u.number, t.rent_amount, t.end_date
		FROM tenancies t
		JOIN tenants tn ON tn.id = t.tenant_id
		JOIN units u ON u.id = t.unit_id
		WHERE t.status = 'ACTIVE' AND t.end_date = $1`
	return j.fetch(ctx, query, date)
}

func (j *ReminderJob) fetch(ctx context.Context, query string, date time.Time) ([]reminderRow, error) {
	if j.Pool == nil {
		return nil, errors.New("reminders: pool not configured")
	}
	rows, err := j.Pool.Query(ctx, query, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []reminderRow
	for rows.Next() {
		var row reminderRow
		if err := rows.Scan(&row.tenancyID, &row.firstName, &row.phone, &row.unitNumber, &row.rentAmount, &row.endDate); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (j *ReminderJob) logger(name string) *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", name))
	}
	return slog.Default().With(slog.String("job", name))
}

func (j *ReminderJob) metrics() *jobmetrics.Metrics {
	if j.Metrics != nil {
		return j.Metrics
	}
	return defaultJobMetrics
}

func (j *ReminderJob) now() time.Time {
	if j.clock != nil {
		return j.clock()
	}
	return time.Now().UTC()
}
