package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/nyumbani/nyumbani/internal/app"
	"github.com/nyumbani/nyumbani/internal/authz"
	"github.com/nyumbani/nyumbani/internal/notify"
	"github.com/nyumbani/nyumbani/internal/platform/db"
	"github.com/nyumbani/nyumbani/internal/tenancy"
	"github.com/nyumbani/nyumbani/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect database", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	resolver := authz.NewResolver(pool)
	tenancyRepo := tenancy.NewPgRepository(pool)
	tenancyService := tenancy.NewService(tenancyRepo, resolver, resolver, logger)
	notifyService := notify.NewService(notify.NewLogSender(logger))

	sweepJob := jobs.NewTenancySweepJob(tenancyService, logger, nil)
	reminderJob := jobs.NewReminderJob(notifyService, pool, logger, nil)

	// Zero AsOf means "evaluate at processing time"; the sweep and reminder
	// handlers substitute the current clock for cron-enqueued runs.
	expireTask, err := jobs.NewTenancyExpireSweepTask(time.Time{})
	if err != nil {
		logger.Error("build expire sweep task", slog.Any("error", err))
		os.Exit(1)
	}
	activateTask, err := jobs.NewTenancyActivateSweepTask(time.Time{})
	if err != nil {
		logger.Error("build activate sweep task", slog.Any("error", err))
		os.Exit(1)
	}
	rentDueTask, err := jobs.NewRentDueRemindersTask(time.Time{})
	if err != nil {
		logger.Error("build rent due task", slog.Any("error", err))
		os.Exit(1)
	}
	expiryTask, err := jobs.NewTenancyExpiryRemindersTask(time.Time{})
	if err != nil {
		logger.Error("build expiry reminder task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskTenancyExpireSweep, Handler: sweepJob.HandleExpire},
			{Type: jobs.TaskTenancyActivateSweep, Handler: sweepJob.HandleActivate},
			{Type: jobs.TaskRentDueReminders, Handler: reminderJob.HandleRentDue},
			{Type: jobs.TaskTenancyExpiryReminders, Handler: reminderJob.HandleExpiry},
		},
		Cron: []jobs.CronRegistration{
			{Spec: "5 0 * * *", Task: activateTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
			{Spec: "15 0 * * *", Task: expireTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
			{Spec: "0 8 * * *", Task: rentDueTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
			{Spec: "30 8 * * *", Task: expiryTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
