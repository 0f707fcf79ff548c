package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/nyumbani/nyumbani/internal/auth"
	"github.com/nyumbani/nyumbani/internal/contract"
	"github.com/nyumbani/nyumbani/internal/landlord"
	"github.com/nyumbani/nyumbani/internal/observability"
	"github.com/nyumbani/nyumbani/internal/payment"
	"github.com/nyumbani/nyumbani/internal/property"
	"github.com/nyumbani/nyumbani/internal/reporting"
	"github.com/nyumbani/nyumbani/internal/shared"
	"github.com/nyumbani/nyumbani/internal/tenancy"
	"github.com/nyumbani/nyumbani/internal/tenant"
	"github.com/nyumbani/nyumbani/internal/unit"
	"github.com/nyumbani/nyumbani/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	SessionManager *shared.SessionManager

	AuthHandler      *auth.Handler
	LandlordHandler  *landlord.Handler
	PropertyHandler  *property.Handler
	UnitHandler      *unit.Handler
	TenantHandler    *tenant.Handler
	TenancyHandler   *tenancy.Handler
	PaymentHandler   *payment.Handler
	ContractHandler  *contract.Handler
	ReportingHandler *reporting.Handler
	JobHandler       *jobs.Handler

	Metrics *observability.Metrics
}

// NewRouter constructs the chi.Router with application defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
		Metrics:        params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		params.AuthHandler.MountRoutes(r)
		params.LandlordHandler.MountRoutes(r)
		params.PropertyHandler.MountRoutes(r)
		params.UnitHandler.MountRoutes(r)
		params.TenantHandler.MountRoutes(r)
		params.TenancyHandler.MountRoutes(r)
		params.PaymentHandler.MountRoutes(r)
		params.ContractHandler.MountRoutes(r)
		params.ReportingHandler.MountRoutes(r)
	})

	if params.JobHandler != nil {
		r.Route("/jobs", params.JobHandler.MountRoutes)
	}
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
