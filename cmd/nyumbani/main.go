package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/hibiken/asynq"

	"github.com/nyumbani/nyumbani/internal/app"
	"github.com/nyumbani/nyumbani/internal/auth"
	"github.com/nyumbani/nyumbani/internal/authz"
	"github.com/nyumbani/nyumbani/internal/contract"
	"github.com/nyumbani/nyumbani/internal/landlord"
	"github.com/nyumbani/nyumbani/internal/notify"
	"github.com/nyumbani/nyumbani/internal/observability"
	"github.com/nyumbani/nyumbani/internal/payment"
	"github.com/nyumbani/nyumbani/internal/platform/cache"
	"github.com/nyumbani/nyumbani/internal/platform/db"
	"github.com/nyumbani/nyumbani/internal/property"
	"github.com/nyumbani/nyumbani/internal/reporting"
	"github.com/nyumbani/nyumbani/internal/shared"
	"github.com/nyumbani/nyumbani/internal/tenancy"
	"github.com/nyumbani/nyumbani/internal/tenant"
	"github.com/nyumbani/nyumbani/internal/unit"
	"github.com/nyumbani/nyumbani/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping server startup")
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

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessions := shared.NewSessionManager(redisClient, cfg.SessionCookie, cfg.SessionTTL, cfg.IsProduction())
	validate := validator.New()
	resolver := authz.NewResolver(pool)

	landlordRepo := landlord.NewPgRepository(pool)
	propertyRepo := property.NewPgRepository(pool)
	unitRepo := unit.NewPgRepository(pool)
	tenantRepo := tenant.NewPgRepository(pool)
	tenancyRepo := tenancy.NewPgRepository(pool)
	paymentRepo := payment.NewPgRepository(pool)
	templateRepo := contract.NewPgRepository(pool)

	landlordService := landlord.NewService(landlordRepo, logger)
	propertyService := property.NewService(propertyRepo, logger)
	unitService := unit.NewService(unitRepo, resolver, resolver, logger)
	tenantService := tenant.NewService(tenantRepo, logger)
	tenancyService := tenancy.NewService(tenancyRepo, resolver, resolver, logger)
	paymentService := payment.NewService(paymentRepo, resolver, logger)
	authService := auth.NewService(landlordRepo, logger)

	notifyService := notify.NewService(notify.NewLogSender(logger))
	contractService := contract.NewService(
		templateRepo,
		tenancyService,
		contract.NewPgDataSource(pool),
		contract.NewFileRenderer(cfg.ContractsDir),
		notifyService,
		logger,
	)

	reportCache := reporting.NewCache(redisClient, cfg.ReportCacheTTL)
	reportingService := reporting.NewService(reporting.NewPgSource(pool), reportCache, logger)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("asynq inspector close", slog.Any("error", err))
		}
	}()

	metrics := observability.NewMetrics()

	router := app.NewRouter(app.RouterParams{
		Logger:         logger,
		Config:         cfg,
		SessionManager: sessions,

		AuthHandler:      auth.NewHandler(logger, authService, sessions, validate),
		LandlordHandler:  landlord.NewHandler(logger, landlordService, validate),
		PropertyHandler:  property.NewHandler(logger, propertyService, validate),
		UnitHandler:      unit.NewHandler(logger, unitService, validate),
		TenantHandler:    tenant.NewHandler(logger, tenantService, validate),
		TenancyHandler:   tenancy.NewHandler(logger, tenancyService, validate),
		PaymentHandler:   payment.NewHandler(logger, paymentService, validate),
		ContractHandler:  contract.NewHandler(logger, contractService, validate),
		ReportingHandler: reporting.NewHandler(logger, reportingService),
		JobHandler:       jobs.NewHandler(inspector, logger),

		Metrics: metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("server listening", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server run", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", slog.Any("error", err))
	}
}
