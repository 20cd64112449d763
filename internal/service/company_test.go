package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tkarls/biztime/internal/domain"
	"github.com/tkarls/biztime/internal/repo"
	"github.com/tkarls/biztime/internal/service"
)

// mockCompanyRepo is a hand-written test double for repo.CompanyRepo.
// Each method is a function field — set only the ones your test needs.
// This is idiomatic Go: no mock generation library required for simple cases.
type mockCompanyRepo struct {
	create    func(ctx context.Context, company domain.Company) (domain.Company, error)
	getByCode func(ctx context.Context, code string) (domain.Company, error)
	list      func(ctx context.Context) ([]domain.CompanySummary, error)
	update    func(ctx context.Context, company domain.Company) (domain.Company, error)
	delete    func(ctx context.Context, code string) error
}

func (m *mockCompanyRepo) Create(ctx context.Context, c domain.Company) (domain.Company, error) {
	return m.create(ctx, c)
}
func (m *mockCompanyRepo) GetByCode(ctx context.Context, code string) (domain.Company, error) {
	return m.getByCode(ctx, code)
}
func (m *mockCompanyRepo) List(ctx context.Context) ([]domain.CompanySummary, error) {
	return m.list(ctx)
}
func (m *mockCompanyRepo) Update(ctx context.Context, c domain.Company) (domain.Company, error) {
	return m.update(ctx, c)
}
func (m *mockCompanyRepo) Delete(ctx context.Context, code string) error {
	return m.delete(ctx, code)
}

// compile-time check: mockCompanyRepo must satisfy repo.CompanyRepo.
var _ repo.CompanyRepo = (*mockCompanyRepo)(nil)

// ---- helpers ---------------------------------------------------------------

func validCompany() domain.Company {
	return domain.Company{
		Code:        "apple",
		Name:        "Apple Computer",
		Description: "Maker of OSX.",
	}
}

// echoCompanyRepo echoes whatever it receives back — useful for Create/Update
// tests that only care about validation logic, not what the DB returns.
func echoCompanyRepo() *mockCompanyRepo {
	return &mockCompanyRepo{
		create: func(_ context.Context, c domain.Company) (domain.Company, error) { return c, nil },
		update: func(_ context.Context, c domain.Company) (domain.Company, error) { return c, nil },
	}
}

// emptyInvoiceRepo returns no invoice ids for any company.
func emptyInvoiceRepo() *mockInvoiceRepo {
	return &mockInvoiceRepo{
		listIDsByCompany: func(_ context.Context, _ string) ([]int64, error) { return nil, nil },
	}
}

func strPtr(s string) *string { return &s }

// ---- Create tests ----------------------------------------------------------

func TestCompanyService_Create_Valid(t *testing.T) {
	svc := service.NewCompanyService(echoCompanyRepo(), emptyInvoiceRepo())

	got, err := svc.Create(context.Background(), validCompany())

	require.NoError(t, err)
	assert.Equal(t, "apple", got.Code)
	assert.Equal(t, "Apple Computer", got.Name)
	assert.Equal(t, "Maker of OSX.", got.Description)
}

func TestCompanyService_Create_MissingFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.Company)
	}{
		{"missing code", func(c *domain.Company) { c.Code = "" }},
		{"whitespace code", func(c *domain.Company) { c.Code = "   " }},
		{"missing name", func(c *domain.Company) { c.Name = "" }},
		{"missing description", func(c *domain.Company) { c.Description = "" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := service.NewCompanyService(echoCompanyRepo(), emptyInvoiceRepo())

			company := validCompany()
			tc.mutate(&company)

			_, err := svc.Create(context.Background(), company)

			assert.ErrorIs(t, err, domain.ErrInvalid)
		})
	}
}

func TestCompanyService_Create_DuplicateCode(t *testing.T) {
	r := &mockCompanyRepo{
		create: func(_ context.Context, _ domain.Company) (domain.Company, error) {
			return domain.Company{}, fmt.Errorf("repo.CompanyRepo.Create: %w", domain.ErrDuplicate)
		},
	}
	svc := service.NewCompanyService(r, emptyInvoiceRepo())

	_, err := svc.Create(context.Background(), validCompany())

	require.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Contains(t, err.Error(), `company "apple" already exists`)
}

func TestCompanyService_Create_RepoError(t *testing.T) {
	repoErr := errors.New("db exploded")
	r := &mockCompanyRepo{
		create: func(_ context.Context, _ domain.Company) (domain.Company, error) {
			return domain.Company{}, repoErr
		},
	}
	svc := service.NewCompanyService(r, emptyInvoiceRepo())

	_, err := svc.Create(context.Background(), validCompany())

	// The service should propagate repo errors unchanged.
	assert.ErrorIs(t, err, repoErr)
}

// ---- Get tests -------------------------------------------------------------

func TestCompanyService_Get_WithInvoices(t *testing.T) {
	company := validCompany()
	r := &mockCompanyRepo{
		getByCode: func(_ context.Context, code string) (domain.Company, error) {
			assert.Equal(t, "apple", code)
			return company, nil
		},
	}
	invoices := &mockInvoiceRepo{
		listIDsByCompany: func(_ context.Context, code string) ([]int64, error) {
			assert.Equal(t, "apple", code)
			return []int64{1, 2, 3}, nil
		},
	}
	svc := service.NewCompanyService(r, invoices)

	got, err := svc.Get(context.Background(), "apple")

	require.NoError(t, err)
	assert.Equal(t, company, got.Company)
	assert.Equal(t, []int64{1, 2, 3}, got.InvoiceIDs)
}

func TestCompanyService_Get_NoInvoices(t *testing.T) {
	r := &mockCompanyRepo{
		getByCode: func(_ context.Context, _ string) (domain.Company, error) {
			return validCompany(), nil
		},
	}
	svc := service.NewCompanyService(r, emptyInvoiceRepo())

	got, err := svc.Get(context.Background(), "apple")

	require.NoError(t, err)
	require.NotNil(t, got.InvoiceIDs, "InvoiceIDs should never be nil")
	assert.Empty(t, got.InvoiceIDs)
}

func TestCompanyService_Get_NotFound(t *testing.T) {
	r := &mockCompanyRepo{
		getByCode: func(_ context.Context, _ string) (domain.Company, error) {
			return domain.Company{}, fmt.Errorf("repo.CompanyRepo.GetByCode: %w", domain.ErrNotFound)
		},
	}
	svc := service.NewCompanyService(r, emptyInvoiceRepo())

	_, err := svc.Get(context.Background(), "not-real")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- List tests ------------------------------------------------------------

func TestCompanyService_List(t *testing.T) {
	want := []domain.CompanySummary{{Code: "apple", Name: "Apple Computer"}}
	r := &mockCompanyRepo{
		list: func(_ context.Context) ([]domain.CompanySummary, error) { return want, nil },
	}
	svc := service.NewCompanyService(r, emptyInvoiceRepo())

	got, err := svc.List(context.Background())

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestCompanyService_List_Empty(t *testing.T) {
	r := &mockCompanyRepo{
		list: func(_ context.Context) ([]domain.CompanySummary, error) { return nil, nil },
	}
	svc := service.NewCompanyService(r, emptyInvoiceRepo())

	got, err := svc.List(context.Background())

	require.NoError(t, err)
	require.NotNil(t, got, "List should never return a nil slice")
	assert.Empty(t, got)
}

// ---- Update tests ----------------------------------------------------------

func TestCompanyService_Update_NameOnly(t *testing.T) {
	stored := validCompany()
	r := echoCompanyRepo()
	r.getByCode = func(_ context.Context, _ string) (domain.Company, error) { return stored, nil }
	svc := service.NewCompanyService(r, emptyInvoiceRepo())

	got, err := svc.Update(context.Background(), "apple", domain.CompanyPatch{Name: strPtr("updated name")})

	require.NoError(t, err)
	assert.Equal(t, "updated name", got.Name)
	// Unsupplied fields keep their stored value.
	assert.Equal(t, "Maker of OSX.", got.Description)
	assert.Equal(t, "apple", got.Code)
}

func TestCompanyService_Update_DescriptionOnly(t *testing.T) {
	stored := validCompany()
	r := echoCompanyRepo()
	r.getByCode = func(_ context.Context, _ string) (domain.Company, error) { return stored, nil }
	svc := service.NewCompanyService(r, emptyInvoiceRepo())

	got, err := svc.Update(context.Background(), "apple", domain.CompanyPatch{Description: strPtr("updated description")})

	require.NoError(t, err)
	assert.Equal(t, "Apple Computer", got.Name)
	assert.Equal(t, "updated description", got.Description)
}

func TestCompanyService_Update_NoFields(t *testing.T) {
	svc := service.NewCompanyService(echoCompanyRepo(), emptyInvoiceRepo())

	_, err := svc.Update(context.Background(), "apple", domain.CompanyPatch{})

	assert.ErrorIs(t, err, domain.ErrInvalid)
}

func TestCompanyService_Update_BlankName(t *testing.T) {
	stored := validCompany()
	r := echoCompanyRepo()
	r.getByCode = func(_ context.Context, _ string) (domain.Company, error) { return stored, nil }
	svc := service.NewCompanyService(r, emptyInvoiceRepo())

	_, err := svc.Update(context.Background(), "apple", domain.CompanyPatch{Name: strPtr("  ")})

	assert.ErrorIs(t, err, domain.ErrInvalid)
}

func TestCompanyService_Update_NotFound(t *testing.T) {
	r := &mockCompanyRepo{
		getByCode: func(_ context.Context, _ string) (domain.Company, error) {
			return domain.Company{}, fmt.Errorf("repo.CompanyRepo.GetByCode: %w", domain.ErrNotFound)
		},
	}
	svc := service.NewCompanyService(r, emptyInvoiceRepo())

	_, err := svc.Update(context.Background(), "not-real", domain.CompanyPatch{Name: strPtr("x")})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- Delete tests ----------------------------------------------------------

func TestCompanyService_Delete(t *testing.T) {
	var deleted string
	r := &mockCompanyRepo{
		delete: func(_ context.Context, code string) error {
			deleted = code
			return nil
		},
	}
	svc := service.NewCompanyService(r, emptyInvoiceRepo())

	err := svc.Delete(context.Background(), "apple")

	require.NoError(t, err)
	assert.Equal(t, "apple", deleted)
}

func TestCompanyService_Delete_NotFound(t *testing.T) {
	r := &mockCompanyRepo{
		delete: func(_ context.Context, _ string) error {
			return fmt.Errorf("repo.CompanyRepo.Delete: %w", domain.ErrNotFound)
		},
	}
	svc := service.NewCompanyService(r, emptyInvoiceRepo())

	err := svc.Delete(context.Background(), "not-real")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
