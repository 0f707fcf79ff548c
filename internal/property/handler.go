package property

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/nyumbani/nyumbani/internal/platform/httpx"
	"github.com/nyumbani/nyumbani/internal/shared"
)

// Handler manages property endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service, validate *validator.Validate) *Handler {
	return &Handler{logger: logger, service: service, validate: validate}
}

// MountRoutes registers property routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/properties", h.create)
	r.Get("/properties", h.list)
	r.Get("/properties/{id}", h.show)
	r.Put("/properties/{id}/info", h.updateInfo)
	r.Put("/properties/{id}/address", h.updateAddress)
	r.Put("/properties/{id}/amenities", h.updateAmenities)
	r.Put("/properties/{id}/charges", h.updateCharges)
	r.Post("/properties/{id}/maintenance", h.markMaintenance)
	r.Post("/properties/{id}/activate", h.markActive)
	r.Post("/properties/{id}/vacate", h.markVacant)
}

func (h *Handler) actor(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	landlordID, ok := shared.LandlordFromContext(r.Context())
	if !ok {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "landlord session required")
		return uuid.Nil, false
	}
	return landlordID, true
}

func (h *Handler) resourceID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid property id")
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	landlordID, ok := h.actor(w, r)
	if !ok {
		return
	}
	var req CreateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	p, err := h.service.Create(r.Context(), landlordID, req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, p)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	landlordID, ok := h.actor(w, r)
	if !ok {
		return
	}
	var req ListRequest
	if v := r.URL.Query().Get("status"); v != "" {
		status := Status(v)
		req.Status = &status
	}
	properties, total, err := h.service.List(r.Context(), landlordID, req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"properties": properties,
		"total":      total,
	})
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	landlordID, ok := h.actor(w, r)
	if !ok {
		return
	}
	id, ok := h.resourceID(w, r)
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

func (h *Handler) updateInfo(w http.ResponseWriter, r *http.Request) {
	landlordID, ok := h.actor(w, r)
	if !ok {
		return
	}
	id, ok := h.resourceID(w, r)
	if !ok {
		return
	}
	var req UpdateInfoRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	p, err := h.service.UpdateInfo(r.Context(), landlordID, id, req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

func (h *Handler) updateAddress(w http.ResponseWriter, r *http.Request) {
	landlordID, ok := h.actor(w, r)
	if !ok {
		return
	}
	id, ok := h.resourceID(w, r)
	if !ok {
		return
	}
	var req AddressRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	p, err := h.service.UpdateAddress(r.Context(), landlordID, id, req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

func (h *Handler) updateAmenities(w http.ResponseWriter, r *http.Request) {
	landlordID, ok := h.actor(w, r)
	if !ok {
		return
	}
	id, ok := h.resourceID(w, r)
	if !ok {
		return
	}
	var req UpdateAmenitiesRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	p, err := h.service.UpdateAmenities(r.Context(), landlordID, id, req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

func (h *Handler) updateCharges(w http.ResponseWriter, r *http.Request) {
	landlordID, ok := h.actor(w, r)
	if !ok {
		return
	}
	id, ok := h.resourceID(w, r)
	if !ok {
		return
	}
	var req UpdateChargesRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	p, err := h.service.UpdateCommonCharges(r.Context(), landlordID, id, req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

func (h *Handler) markMaintenance(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.MarkMaintenance)
}

func (h *Handler) markActive(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.MarkActive)
}

func (h *Handler) markVacant(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.MarkVacant)
}

func (h *Handler) transition(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, landlordID, id uuid.UUID) (*Property, error)) {
	landlordID, ok := h.actor(w, r)
	if !ok {
		return
	}
	id, ok := h.resourceID(w, r)
	if !ok {
		return
	}
	p, err := op(r.Context(), landlordID, id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}
