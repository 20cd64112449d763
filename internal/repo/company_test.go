package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tkarls/biztime/internal/domain"
	"github.com/tkarls/biztime/internal/repo"
)

// companyFixture returns a domain.Company with a unique code so tests never
// collide with rows left behind in a shared test database.
func companyFixture() domain.Company {
	return domain.Company{
		Code:        "acme-" + uuid.NewString()[:8],
		Name:        "Acme Corporation",
		Description: "Maker of anvils.",
	}
}

func TestCompanyRepo_Create(t *testing.T) {
	r := repo.NewCompanyRepo(newTestTx(t))
	ctx := context.Background()

	input := companyFixture()
	got, err := r.Create(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, input.Code, got.Code)
	assert.Equal(t, input.Name, got.Name)
	assert.Equal(t, input.Description, got.Description)
}

func TestCompanyRepo_Create_DuplicateCode(t *testing.T) {
	r := repo.NewCompanyRepo(newTestTx(t))
	ctx := context.Background()

	input := companyFixture()
	_, err := r.Create(ctx, input)
	require.NoError(t, err)

	_, err = r.Create(ctx, input)

	// The uniqueness violation is surfaced structurally, not as raw SQL error text.
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCompanyRepo_GetByCode(t *testing.T) {
	r := repo.NewCompanyRepo(newTestTx(t))
	ctx := context.Background()

	created, err := r.Create(ctx, companyFixture())
	require.NoError(t, err)

	got, err := r.GetByCode(ctx, created.Code)

	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestCompanyRepo_GetByCode_NotFound(t *testing.T) {
	r := repo.NewCompanyRepo(newTestTx(t))

	_, err := r.GetByCode(context.Background(), "never-created")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCompanyRepo_List(t *testing.T) {
	r := repo.NewCompanyRepo(newTestTx(t))
	ctx := context.Background()

	c1, err := r.Create(ctx, companyFixture())
	require.NoError(t, err)
	c2, err := r.Create(ctx, companyFixture())
	require.NoError(t, err)

	got, err := r.List(ctx)

	require.NoError(t, err)
	assert.Contains(t, got, domain.CompanySummary{Code: c1.Code, Name: c1.Name})
	assert.Contains(t, got, domain.CompanySummary{Code: c2.Code, Name: c2.Name})
}

func TestCompanyRepo_Update(t *testing.T) {
	r := repo.NewCompanyRepo(newTestTx(t))
	ctx := context.Background()

	created, err := r.Create(ctx, companyFixture())
	require.NoError(t, err)

	created.Name = "updated name"
	created.Description = "updated description"
	got, err := r.Update(ctx, created)

	require.NoError(t, err)
	assert.Equal(t, "updated name", got.Name)
	assert.Equal(t, "updated description", got.Description)
	assert.Equal(t, created.Code, got.Code)
}

func TestCompanyRepo_Update_NotFound(t *testing.T) {
	r := repo.NewCompanyRepo(newTestTx(t))

	c := companyFixture()
	_, err := r.Update(context.Background(), c)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCompanyRepo_Delete(t *testing.T) {
	r := repo.NewCompanyRepo(newTestTx(t))
	ctx := context.Background()

	created, err := r.Create(ctx, companyFixture())
	require.NoError(t, err)

	require.NoError(t, r.Delete(ctx, created.Code))

	// Read-after-delete comes up empty.
	_, err = r.GetByCode(ctx, created.Code)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCompanyRepo_Delete_NotFound(t *testing.T) {
	r := repo.NewCompanyRepo(newTestTx(t))

	err := r.Delete(context.Background(), "never-created")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCompanyRepo_Delete_CascadesInvoices(t *testing.T) {
	tx := newTestTx(t)
	companies := repo.NewCompanyRepo(tx)
	invoices := repo.NewInvoiceRepo(tx)
	ctx := context.Background()

	company, err := companies.Create(ctx, companyFixture())
	require.NoError(t, err)
	invoice, err := invoices.Create(ctx, company.Code, 100)
	require.NoError(t, err)

	require.NoError(t, companies.Delete(ctx, company.Code))

	// The schema's ON DELETE CASCADE removed the invoice with its company.
	_, err = invoices.GetByID(ctx, invoice.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
