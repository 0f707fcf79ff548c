package contract

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/nyumbani/nyumbani/internal/shared"
	"github.com/nyumbani/nyumbani/internal/tenancy"
)

// TenancyDirectory is the slice of the tenancy service the contract
// workflow needs: authorized reads and contract attachment.
type TenancyDirectory interface {
	Get(ctx context.Context, landlordID, id uuid.UUID) (*tenancy.Tenancy, error)
	AttachContract(ctx context.Context, landlordID, id uuid.UUID, req tenancy.AttachContractRequest) (*tenancy.Tenancy, error)
}

// Sharer delivers a generated contract link to the tenant.
type Sharer interface {
	ShareContract(ctx context.Context, phone, firstName, url string) error
}

// Service manages contract templates and document generation. Templates
// are private to the landlord who created them.
type Service struct {
	repo      Repository
	tenancies TenancyDirectory
	source    DataSource
	renderer  Renderer
	sharer    Sharer
	logger    *slog.Logger
}

// NewService constructs a contract service.
func NewService(repo Repository, tenancies TenancyDirectory, source DataSource, renderer Renderer, sharer Sharer, logger *slog.Logger) *Service {
	return &Service{repo: repo, tenancies: tenancies, source: source, renderer: renderer, sharer: sharer, logger: logger}
}

// CreateTemplate adds a template. Template names are unique per landlord.
func (s *Service) CreateTemplate(ctx context.Context, landlordID uuid.UUID, req CreateRequest) (*Template, error) {
	if _, err := s.repo.GetByName(ctx, landlordID, req.Name); err == nil {
		return nil, fmt.Errorf("contract template %s: %w", req.Name, shared.ErrAlreadyExists)
	}
	t, err := NewTemplate(landlordID, req.Name, req.Content, req.Description)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	s.logger.Info("contract template created",
		slog.String("template_id", t.ID.String()),
		slog.String("name", t.Name))
	return t, nil
}

// GetTemplate fetches a template the acting landlord owns.
func (s *Service) GetTemplate(ctx context.Context, landlordID, id uuid.UUID) (*Template, error) {
	return s.owned(ctx, landlordID, id)
}

// ListTemplates returns the landlord's templates.
func (s *Service) ListTemplates(ctx context.Context, landlordID uuid.UUID) ([]Template, error) {
	return s.repo.ListByLandlord(ctx, landlordID)
}

// UpdateTemplate replaces a template's details.
func (s *Service) UpdateTemplate(ctx context.Context, landlordID, id uuid.UUID, req UpdateRequest) (*Template, error) {
	t, err := s.owned(ctx, landlordID, id)
	if err != nil {
		return nil, err
	}
	if t.Name != req.Name {
		if _, err := s.repo.GetByName(ctx, landlordID, req.Name); err == nil {
			return nil, fmt.Errorf("contract template %s: %w", req.Name, shared.ErrAlreadyExists)
		}
	}
	if err := t.UpdateDetails(req.Name, req.Content, req.Description); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// DeleteTemplate removes a template.
func (s *Service) DeleteTemplate(ctx context.Context, landlordID, id uuid.UUID) error {
	t, err := s.owned(ctx, landlordID, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, t.ID)
}

// ActivateTemplate marks a template usable again.
func (s *Service) ActivateTemplate(ctx context.Context, landlordID, id uuid.UUID) (*Template, error) {
	return s.mutate(ctx, landlordID, id, (*Template).Activate)
}

// DeactivateTemplate retires a template without deleting it.
func (s *Service) DeactivateTemplate(ctx context.Context, landlordID, id uuid.UUID) (*Template, error) {
	return s.mutate(ctx, landlordID, id, (*Template).Deactivate)
}

// Generate renders a contract document for a tenancy from one of the
// landlord's active templates and attaches the document to the tenancy.
func (s *Service) Generate(ctx context.Context, landlordID uuid.UUID, req GenerateRequest) (*tenancy.Tenancy, error) {
	if _, err := s.tenancies.Get(ctx, landlordID, req.TenancyID); err != nil {
		return nil, err
	}
	t, err := s.owned(ctx, landlordID, req.TemplateID)
	if err != nil {
		return nil, err
	}
	if !t.Active {
		return nil, fmt.Errorf("%w: contract template %s is inactive", shared.ErrIllegalTransition, t.ID)
	}
	data, err := s.source.Data(ctx, req.TenancyID)
	if err != nil {
		return nil, err
	}
	body := Render(t.Content, *data, time.Now().UTC())
	fileName := fmt.Sprintf("contract-%s.txt", req.TenancyID)
	url, err := s.renderer.Render(ctx, fileName, body)
	if err != nil {
		return nil, err
	}
	updated, err := s.tenancies.AttachContract(ctx, landlordID, req.TenancyID, tenancy.AttachContractRequest{URL: url})
	if err != nil {
		return nil, err
	}
	s.logger.Info("contract generated",
		slog.String("tenancy_id", req.TenancyID.String()),
		slog.String("template_id", t.ID.String()),
		slog.String("url", url))
	return updated, nil
}

// Share sends the tenancy's contract link to the tenant's phone. The
// contract must have been generated first.
func (s *Service) Share(ctx context.Context, landlordID, tenancyID uuid.UUID) (*tenancy.Tenancy, error) {
	t, err := s.tenancies.Get(ctx, landlordID, tenancyID)
	if err != nil {
		return nil, err
	}
	if t.ContractURL == "" {
		return nil, fmt.Errorf("%w: tenancy %s has no contract document; generate it first", shared.ErrStateConflict, tenancyID)
	}
	data, err := s.source.Data(ctx, tenancyID)
	if err != nil {
		return nil, err
	}
	if err := s.sharer.ShareContract(ctx, data.TenantPhone, data.TenantFirstName, t.ContractURL); err != nil {
		return nil, err
	}
	s.logger.Info("contract shared",
		slog.String("tenancy_id", tenancyID.String()),
		slog.String("recipient", data.TenantPhone))
	return t, nil
}

func (s *Service) owned(ctx context.Context, landlordID, id uuid.UUID) (*Template, error) {
	t, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.LandlordID != landlordID {
		return nil, fmt.Errorf("contract template %s: %w", id, shared.ErrUnauthorized)
	}
	return t, nil
}

func (s *Service) mutate(ctx context.Context, landlordID, id uuid.UUID, op func(*Template) error) (*Template, error) {
	t, err := s.owned(ctx, landlordID, id)
	if err != nil {
		return nil, err
	}
	if err := op(t); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}
