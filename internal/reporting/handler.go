package reporting

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/nyumbani/nyumbani/internal/platform/httpx"
	"github.com/nyumbani/nyumbani/internal/shared"
)

// Handler serves the landlord reporting endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers reporting routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/reports/income", h.monthlyIncome)
	r.Get("/reports/vacancy", h.vacancy)
	r.Get("/dashboard", h.dashboard)
}

func (h *Handler) actor(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	landlordID, ok := shared.LandlordFromContext(r.Context())
	if !ok {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "landlord session required")
		return uuid.Nil, false
	}
	return landlordID, true
}

func (h *Handler) monthlyIncome(w http.ResponseWriter, r *http.Request) {
	landlordID, ok := h.actor(w, r)
	if !ok {
		return
	}
	now := time.Now().UTC()
	year := now.Year()
	month := now.Month()
	if raw := r.URL.Query().Get("year"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 2000 || v > 2200 {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid year")
			return
		}
		year = v
	}
	if raw := r.URL.Query().Get("month"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > 12 {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid month")
			return
		}
		month = time.Month(v)
	}
	report, err := h.service.MonthlyIncome(r.Context(), landlordID, year, month)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}

func (h *Handler) vacancy(w http.ResponseWriter, r *http.Request) {
	landlordID, ok := h.actor(w, r)
	if !ok {
		return
	}
	report, err := h.service.Vacancy(r.Context(), landlordID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	landlordID, ok := h.actor(w, r)
	if !ok {
		return
	}
	dash, err := h.service.Dashboard(r.Context(), landlordID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, dash)
}
