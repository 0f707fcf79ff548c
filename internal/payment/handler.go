package payment

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/nyumbani/nyumbani/internal/platform/httpx"
	"github.com/nyumbani/nyumbani/internal/shared"
)

// Handler manages payment ledger endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service, validate *validator.Validate) *Handler {
	return &Handler{logger: logger, service: service, validate: validate}
}

// MountRoutes registers payment routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/payments", h.record)
	r.Get("/payments", h.listInRange)
	r.Get("/payments/{id}", h.show)
	r.Put("/payments/{id}", h.update)
	r.Delete("/payments/{id}", h.remove)
	r.Get("/tenancies/{tenancyID}/payments", h.listByTenancy)
}

func (h *Handler) actor(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	landlordID, ok := shared.LandlordFromContext(r.Context())
	if !ok {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "landlord session required")
		return uuid.Nil, false
	}
	return landlordID, true
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) record(w http.ResponseWriter, r *http.Request) {
	landlordID, ok := h.actor(w, r)
	if !ok {
		return
	}
	var req RecordRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	p, err := h.service.Record(r.Context(), landlordID, req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, p)
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	landlordID, ok := h.actor(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	p, err := h.service.Get(r.Context(), landlordID, id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	landlordID, ok := h.actor(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	var req UpdateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	p, err := h.service.Update(r.Context(), landlordID, id, req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	landlordID, ok := h.actor(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), landlordID, id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.NoContent(w)
}

// listInRange serves the landlord-wide ledger between two dates, both
// required as YYYY-MM-DD query parameters.
func (h *Handler) listInRange(w http.ResponseWriter, r *http.Request) {
	landlordID, ok := h.actor(w, r)
	if !ok {
		return
	}
	from, err := time.Parse("2006-01-02", r.URL.Query().Get("from"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid or missing from date")
		return
	}
	to, err := time.Parse("2006-01-02", r.URL.Query().Get("to"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid or missing to date")
		return
	}
	payments, err := h.service.ListInRange(r.Context(), landlordID, from, to)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"payments": payments,
		"total":    len(payments),
	})
}

func (h *Handler) listByTenancy(w http.ResponseWriter, r *http.Request) {
	landlordID, ok := h.actor(w, r)
	if !ok {
		return
	}
	tenancyID, ok := h.pathID(w, r, "tenancyID")
	if !ok {
		return
	}
	payments, err := h.service.ListByTenancy(r.Context(), landlordID, tenancyID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"payments": payments,
		"total":    len(payments),
	})
}
