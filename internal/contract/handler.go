package contract

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

// Handler manages contract template endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service, validate *validator.Validate) *Handler {
	return &Handler{logger: logger, service: service, validate: validate}
}

// MountRoutes registers contract routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/contract-templates", h.create)
	r.Get("/contract-templates", h.list)
	r.Get("/contract-templates/{id}", h.show)
	r.Put("/contract-templates/{id}", h.update)
	r.Delete("/contract-templates/{id}", h.remove)
	r.Post("/contract-templates/{id}/activate", h.activate)
	r.Post("/contract-templates/{id}/deactivate", h.deactivate)
	r.Post("/contracts/generate", h.generate)
	r.Post("/tenancies/{tenancyID}/contract/share", h.share)
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
	t, err := h.service.CreateTemplate(r.Context(), landlordID, req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, t)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	landlordID, ok := h.actor(w, r)
	if !ok {
		return
	}
	templates, err := h.service.ListTemplates(r.Context(), landlordID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"templates": templates,
		"total":     len(templates),
	})
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
	t, err := h.service.GetTemplate(r.Context(), landlordID, id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, t)
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
	t, err := h.service.UpdateTemplate(r.Context(), landlordID, id, req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, t)
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
	if err := h.service.DeleteTemplate(r.Context(), landlordID, id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.NoContent(w)
}

func (h *Handler) activate(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.service.ActivateTemplate)
}

func (h *Handler) deactivate(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.service.DeactivateTemplate)
}

func (h *Handler) toggle(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, landlordID, id uuid.UUID) (*Template, error)) {
	landlordID, ok := h.actor(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	t, err := op(r.Context(), landlordID, id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, t)
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request) {
	landlordID, ok := h.actor(w, r)
	if !ok {
		return
	}
	var req GenerateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	t, err := h.service.Generate(r.Context(), landlordID, req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, t)
}

func (h *Handler) share(w http.ResponseWriter, r *http.Request) {
	landlordID, ok := h.actor(w, r)
	if !ok {
		return
	}
	tenancyID, ok := h.pathID(w, r, "tenancyID")
	if !ok {
		return
	}
	t, err := h.service.Share(r.Context(), landlordID, tenancyID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, t)
}
