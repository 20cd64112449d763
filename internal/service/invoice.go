package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tkarls/biztime/internal/domain"
	"github.com/tkarls/biztime/internal/repo"
)

// InvoiceService implements business logic for Invoice operations.
// It holds both repos because creating an invoice requires verifying the
// owning company exists, and reading one enriches it with company detail.
type InvoiceService struct {
	invoices  repo.InvoiceRepo
	companies repo.CompanyRepo
}

// NewInvoiceService constructs an InvoiceService backed by the provided repos.
func NewInvoiceService(invoices repo.InvoiceRepo, companies repo.CompanyRepo) *InvoiceService {
	return &InvoiceService{invoices: invoices, companies: companies}
}

// List returns id and company code for every invoice, ordered by id ascending.
// Always returns a non-nil slice so callers can safely range over it.
func (s *InvoiceService) List(ctx context.Context) ([]domain.InvoiceSummary, error) {
	invoices, err := s.invoices.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.InvoiceService.List: %w", err)
	}
	if invoices == nil {
		return []domain.InvoiceSummary{}, nil
	}
	return invoices, nil
}

// Get returns a single invoice enriched with its owning company.
// Returns domain.ErrNotFound if no invoice with that id exists. A missing
// company row leaves Company nil rather than failing the read — the invoice
// itself was found and that is what the caller asked for.
func (s *InvoiceService) Get(ctx context.Context, id int64) (domain.InvoiceDetail, error) {
	invoice, err := s.invoices.GetByID(ctx, id)
	if err != nil {
		return domain.InvoiceDetail{}, fmt.Errorf("service.InvoiceService.Get: %w", err)
	}

	detail := domain.InvoiceDetail{Invoice: invoice}
	company, err := s.companies.GetByCode(ctx, invoice.CompCode)
	switch {
	case err == nil:
		detail.Company = &company
	case errors.Is(err, domain.ErrNotFound):
		// Orphaned invoice: leave Company nil.
	default:
		return domain.InvoiceDetail{}, fmt.Errorf("service.InvoiceService.Get: %w", err)
	}

	return detail, nil
}

// Create validates and persists a new invoice for the given company.
// Returns domain.ErrInvalid when comp_code is blank, the amount is not
// positive, or the company does not exist. The existence check gives the
// client a precise message; the insert's foreign key re-enforces it
// atomically, so a company deleted between the two calls still yields
// domain.ErrInvalid rather than an internal error.
func (s *InvoiceService) Create(ctx context.Context, compCode string, amt float64) (domain.Invoice, error) {
	if strings.TrimSpace(compCode) == "" {
		return domain.Invoice{}, fmt.Errorf("%w: comp_code is required", domain.ErrInvalid)
	}
	if err := validateAmount(amt); err != nil {
		return domain.Invoice{}, err
	}

	if _, err := s.companies.GetByCode(ctx, compCode); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Invoice{}, fmt.Errorf("%w: company %q does not exist", domain.ErrInvalid, compCode)
		}
		return domain.Invoice{}, fmt.Errorf("service.InvoiceService.Create: %w", err)
	}

	result, err := s.invoices.Create(ctx, compCode, amt)
	if err != nil {
		if errors.Is(err, domain.ErrInvalid) {
			return domain.Invoice{}, fmt.Errorf("%w: company %q does not exist", domain.ErrInvalid, compCode)
		}
		return domain.Invoice{}, fmt.Errorf("service.InvoiceService.Create: %w", err)
	}
	return result, nil
}

// UpdateAmount overwrites amt of an existing invoice. This is deliberately a
// narrow operation, not a general patch: comp_code and paid are immutable
// through this API. Returns domain.ErrInvalid for a non-positive amount and
// domain.ErrNotFound if the invoice does not exist.
func (s *InvoiceService) UpdateAmount(ctx context.Context, id int64, amt float64) (domain.Invoice, error) {
	if err := validateAmount(amt); err != nil {
		return domain.Invoice{}, err
	}

	result, err := s.invoices.UpdateAmount(ctx, id, amt)
	if err != nil {
		return domain.Invoice{}, fmt.Errorf("service.InvoiceService.UpdateAmount: %w", err)
	}
	return result, nil
}

// Delete removes an invoice by id. Returns domain.ErrNotFound if it does not exist.
func (s *InvoiceService) Delete(ctx context.Context, id int64) error {
	if err := s.invoices.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.InvoiceService.Delete: %w", err)
	}
	return nil
}

// validateAmount enforces the amount rule shared by Create and UpdateAmount.
func validateAmount(amt float64) error {
	if amt <= 0 {
		return fmt.Errorf("%w: amt must be greater than zero", domain.ErrInvalid)
	}
	return nil
}
