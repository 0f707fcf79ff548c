package contract

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/nyumbani/nyumbani/internal/shared"
	"github.com/nyumbani/nyumbani/internal/tenancy"
)

type memoryTemplateRepo struct {
	templates map[uuid.UUID]*Template
}

func newMemoryTemplateRepo() *memoryTemplateRepo {
	return &memoryTemplateRepo{templates: make(map[uuid.UUID]*Template)}
}

func (r *memoryTemplateRepo) Create(ctx context.Context, t *Template) error {
	cp := *t
	r.templates[t.ID] = &cp
	return nil
}

func (r *memoryTemplateRepo) Get(ctx context.Context, id uuid.UUID) (*Template, error) {
	t, ok := r.templates[id]
	if !ok {
		return nil, fmt.Errorf("contract template: %w", shared.ErrNotFound)
	}
	cp := *t
	return &cp, nil
}

func (r *memoryTemplateRepo) GetByName(ctx context.Context, landlordID uuid.UUID, name string) (*Template, error) {
	for _, t := range r.templates {
		if t.LandlordID == landlordID && t.Name == name {
			cp := *t
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("contract template: %w", shared.ErrNotFound)
}

func (r *memoryTemplateRepo) Update(ctx context.Context, t *Template) error {
	if _, ok := r.templates[t.ID]; !ok {
		return fmt.Errorf("contract template %s: %w", t.ID, shared.ErrNotFound)
	}
	cp := *t
	r.templates[t.ID] = &cp
	return nil
}

func (r *memoryTemplateRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.templates[id]; !ok {
		return fmt.Errorf("contract template %s: %w", id, shared.ErrNotFound)
	}
	delete(r.templates, id)
	return nil
}

func (r *memoryTemplateRepo) ListByLandlord(ctx context.Context, landlordID uuid.UUID) ([]Template, error) {
	var out []Template
	for _, t := range r.templates {
		if t.LandlordID == landlordID {
			out = append(out, *t)
		}
	}
	return out, nil
}

type stubTenancyDirectory struct {
	tenancies map[uuid.UUID]*tenancy.Tenancy
	owners    map[uuid.UUID]uuid.UUID
}

func (s *stubTenancyDirectory) Get(ctx context.Context, landlordID, id uuid.UUID) (*tenancy.Tenancy, error) {
	t, ok := s.tenancies[id]
	if !ok {
		return nil, fmt.Errorf("tenancy: %w", shared.ErrNotFound)
	}
	if s.owners[id] != landlordID {
		return nil, fmt.Errorf("tenancy %s: %w", id, shared.ErrUnauthorized)
	}
	cp := *t
	return &cp, nil
}

func (s *stubTenancyDirectory) AttachContract(ctx context.Context, landlordID, id uuid.UUID, req tenancy.AttachContractRequest) (*tenancy.Tenancy, error) {
	t, err := s.Get(ctx, landlordID, id)
	if err != nil {
		return nil, err
	}
	t.ContractURL = req.URL
	s.tenancies[id] = t
	return t, nil
}

type stubDataSource struct {
	data map[uuid.UUID]*RenderData
}

func (s *stubDataSource) Data(ctx context.Context, tenancyID uuid.UUID) (*RenderData, error) {
	d, ok := s.data[tenancyID]
	if !ok {
		return nil, fmt.Errorf("tenancy %s: %w", tenancyID, shared.ErrNotFound)
	}
	cp := *d
	return &cp, nil
}

type captureRenderer struct {
	lastName    string
	lastContent string
}

func (r *captureRenderer) Render(ctx context.Context, fileName, content string) (string, error) {
	r.lastName = fileName
	r.lastContent = content
	return "contracts/" + fileName, nil
}

type captureSharer struct {
	phone string
	url   string
}

func (s *captureSharer) ShareContract(ctx context.Context, phone, firstName, url string) error {
	s.phone = phone
	s.url = url
	return nil
}

type contractFixture struct {
	svc       *Service
	repo      *memoryTemplateRepo
	tenancies *stubTenancyDirectory
	source    *stubDataSource
	renderer  *captureRenderer
	sharer    *captureSharer
	landlord  uuid.UUID
	tenancyID uuid.UUID
}

func newContractFixture() *contractFixture {
	f := &contractFixture{
		repo: newMemoryTemplateRepo(),
		tenancies: &stubTenancyDirectory{
			tenancies: make(map[uuid.UUID]*tenancy.Tenancy),
			owners:    make(map[uuid.UUID]uuid.UUID),
		},
		source:    &stubDataSource{data: make(map[uuid.UUID]*RenderData)},
		renderer:  &captureRenderer{},
		sharer:    &captureSharer{},
		landlord:  uuid.New(),
		tenancyID: uuid.New(),
	}
	f.tenancies.tenancies[f.tenancyID] = &tenancy.Tenancy{ID: f.tenancyID}
	f.tenancies.owners[f.tenancyID] = f.landlord
	d := sampleData()
	d.TenancyID = f.tenancyID
	f.source.data[f.tenancyID] = &d
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f.svc = NewService(f.repo, f.tenancies, f.source, f.renderer, f.sharer, logger)
	return f
}

func TestCreateTemplateRejectsDuplicateName(t *testing.T) {
	ctx := context.Background()
	f := newContractFixture()
	req := CreateRequest{Name: "Standard Lease", Content: "Body {{tenantName}}"}

	_, err := f.svc.CreateTemplate(ctx, f.landlord, req)
	require.NoError(t, err)

	_, err = f.svc.CreateTemplate(ctx, f.landlord, req)
	require.True(t, errors.Is(err, shared.ErrAlreadyExists))

	// Same name under another landlord is fine.
	_, err = f.svc.CreateTemplate(ctx, uuid.New(), req)
	require.NoError(t, err)
}

func TestTemplateAccessIsLandlordScoped(t *testing.T) {
	ctx := context.Background()
	f := newContractFixture()
	created, err := f.svc.CreateTemplate(ctx, f.landlord, CreateRequest{Name: "Standard Lease", Content: "Body"})
	require.NoError(t, err)

	_, err = f.svc.GetTemplate(ctx, uuid.New(), created.ID)
	require.True(t, errors.Is(err, shared.ErrUnauthorized))

	_, err = f.svc.GetTemplate(ctx, f.landlord, created.ID)
	require.NoError(t, err)
}

func TestGenerateAttachesContract(t *testing.T) {
	ctx := context.Background()
	f := newContractFixture()
	created, err := f.svc.CreateTemplate(ctx, f.landlord, CreateRequest{
		Name:    "Standard Lease",
		Content: "Agreement between {{landlordName}} and {{tenantName}} for {{rentAmount}}.",
	})
	require.NoError(t, err)

	updated, err := f.svc.Generate(ctx, f.landlord, GenerateRequest{TenancyID: f.tenancyID, TemplateID: created.ID})
	require.NoError(t, err)
	require.Equal(t, "contracts/contract-"+f.tenancyID.String()+".txt", updated.ContractURL)
	require.Contains(t, f.renderer.lastContent, "Juma Kileo and Asha Mushi")
	require.Contains(t, f.renderer.lastContent, "500,000.00 TZS")
	require.NotContains(t, f.renderer.lastContent, "{{")
}

func TestGenerateRejectsInactiveTemplate(t *testing.T) {
	ctx := context.Background()
	f := newContractFixture()
	created, err := f.svc.CreateTemplate(ctx, f.landlord, CreateRequest{Name: "Standard Lease", Content: "Body"})
	require.NoError(t, err)
	_, err = f.svc.DeactivateTemplate(ctx, f.landlord, created.ID)
	require.NoError(t, err)

	_, err = f.svc.Generate(ctx, f.landlord, GenerateRequest{TenancyID: f.tenancyID, TemplateID: created.ID})
	require.True(t, errors.Is(err, shared.ErrIllegalTransition))
}

func TestGenerateRejectsForeignTenancy(t *testing.T) {
	ctx := context.Background()
	f := newContractFixture()
	created, err := f.svc.CreateTemplate(ctx, f.landlord, CreateRequest{Name: "Standard Lease", Content: "Body"})
	require.NoError(t, err)

	intruder := uuid.New()
	foreign, err := f.svc.CreateTemplate(ctx, intruder, CreateRequest{Name: "Standard Lease", Content: "Body"})
	require.NoError(t, err)

	_, err = f.svc.Generate(ctx, intruder, GenerateRequest{TenancyID: f.tenancyID, TemplateID: foreign.ID})
	require.True(t, errors.Is(err, shared.ErrUnauthorized))

	_, err = f.svc.Generate(ctx, f.landlord, GenerateRequest{TenancyID: uuid.New(), TemplateID: created.ID})
	require.True(t, errors.Is(err, shared.ErrNotFound))
}

func TestShareRequiresGeneratedContract(t *testing.T) {
	ctx := context.Background()
	f := newContractFixture()

	_, err := f.svc.Share(ctx, f.landlord, f.tenancyID)
	require.True(t, errors.Is(err, shared.ErrStateConflict))

	created, err := f.svc.CreateTemplate(ctx, f.landlord, CreateRequest{Name: "Standard Lease", Content: "Body"})
	require.NoError(t, err)
	_, err = f.svc.Generate(ctx, f.landlord, GenerateRequest{TenancyID: f.tenancyID, TemplateID: created.ID})
	require.NoError(t, err)

	out, err := f.svc.Share(ctx, f.landlord, f.tenancyID)
	require.NoError(t, err)
	require.Equal(t, "+255712345678", f.sharer.phone)
	require.Equal(t, out.ContractURL, f.sharer.url)
}

func TestActivateTemplateRejectsNoOp(t *testing.T) {
	ctx := context.Background()
	f := newContractFixture()
	created, err := f.svc.CreateTemplate(ctx, f.landlord, CreateRequest{Name: "Standard Lease", Content: "Body"})
	require.NoError(t, err)

	_, err = f.svc.ActivateTemplate(ctx, f.landlord, created.ID)
	require.Error(t, err)
}
