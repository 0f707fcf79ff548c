package landlord

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/nyumbani/nyumbani/internal/platform/httpx"
	"github.com/nyumbani/nyumbani/internal/shared"
)

// Handler manages the landlord profile endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service, validate *validator.Validate) *Handler {
	return &Handler{logger: logger, service: service, validate: validate}
}

// MountRoutes registers profile routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/me", h.profile)
	r.Put("/me/personal", h.updatePersonal)
	r.Put("/me/contact", h.updateContact)
	r.Put("/me/identity", h.updateIdentity)
	r.Post("/me/deactivate", h.deactivate)
}

func (h *Handler) actor(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	landlordID, ok := shared.LandlordFromContext(r.Context())
	if !ok {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "landlord session required")
		return uuid.Nil, false
	}
	return landlordID, true
}

func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	landlordID, ok := h.actor(w, r)
	if !ok {
		return
	}
	l, err := h.service.Profile(r.Context(), landlordID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, l)
}

func (h *Handler) updatePersonal(w http.ResponseWriter, r *http.Request) {
	landlordID, ok := h.actor(w, r)
	if !ok {
		return
	}
	var req UpdatePersonalRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	l, err := h.service.UpdatePersonalInfo(r.Context(), landlordID, req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, l)
}

func (h *Handler) updateContact(w http.ResponseWriter, r *http.Request) {
	landlordID, ok := h.actor(w, r)
	if !ok {
		return
	}
	var req UpdateContactRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	l, err := h.service.UpdateContactInfo(r.Context(), landlordID, req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, l)
}

func (h *Handler) updateIdentity(w http.ResponseWriter, r *http.Request) {
	landlordID, ok := h.actor(w, r)
	if !ok {
		return
	}
	var req UpdateIdentityRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	l, err := h.service.UpdateIdentity(r.Context(), landlordID, req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, l)
}

func (h *Handler) deactivate(w http.ResponseWriter, r *http.Request) {
	landlordID, ok := h.actor(w, r)
	if !ok {
		return
	}
	l, err := h.service.Deactivate(r.Context(), landlordID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, l)
}
