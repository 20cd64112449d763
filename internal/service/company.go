// Package service contains the business logic for the BizTime ledger API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here — services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tkarls/biztime/internal/domain"
	"github.com/tkarls/biztime/internal/repo"
)

// CompanyService implements business logic for Company operations.
// It holds both repos because fetching a company includes assembling the ids
// of the invoices billed to it.
type CompanyService struct {
	companies repo.CompanyRepo
	invoices  repo.InvoiceRepo
}

// NewCompanyService constructs a CompanyService backed by the provided repos.
func NewCompanyService(companies repo.CompanyRepo, invoices repo.InvoiceRepo) *CompanyService {
	return &CompanyService{companies: companies, invoices: invoices}
}

// List returns code and name for every company.
// Always returns a non-nil slice so callers can safely range over it.
func (s *CompanyService) List(ctx context.Context) ([]domain.CompanySummary, error) {
	companies, err := s.companies.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.CompanyService.List: %w", err)
	}
	if companies == nil {
		return []domain.CompanySummary{}, nil
	}
	return companies, nil
}

// Get returns a single company with the ids of its invoices.
// Returns domain.ErrNotFound if no company with that code exists.
func (s *CompanyService) Get(ctx context.Context, code string) (domain.CompanyDetail, error) {
	company, err := s.companies.GetByCode(ctx, code)
	if err != nil {
		return domain.CompanyDetail{}, fmt.Errorf("service.CompanyService.Get: %w", err)
	}

	ids, err := s.invoices.ListIDsByCompany(ctx, code)
	if err != nil {
		return domain.CompanyDetail{}, fmt.Errorf("service.CompanyService.Get: %w", err)
	}
	if ids == nil {
		ids = []int64{}
	}

	return domain.CompanyDetail{Company: company, InvoiceIDs: ids}, nil
}

// Create validates and persists a new company.
// Returns domain.ErrInvalid when a required field is blank and
// domain.ErrDuplicate when the code is already taken.
func (s *CompanyService) Create(ctx context.Context, company domain.Company) (domain.Company, error) {
	if err := validateCompany(company, true); err != nil {
		return domain.Company{}, err
	}

	result, err := s.companies.Create(ctx, company)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return domain.Company{}, fmt.Errorf("%w: company %q already exists", domain.ErrDuplicate, company.Code)
		}
		return domain.Company{}, fmt.Errorf("service.CompanyService.Create: %w", err)
	}
	return result, nil
}

// Update applies a partial update: only the supplied fields overwrite the
// stored values, and the code is never changed.
// Returns domain.ErrInvalid when no field is supplied or a supplied field is
// blank, and domain.ErrNotFound if the company does not exist.
func (s *CompanyService) Update(ctx context.Context, code string, patch domain.CompanyPatch) (domain.Company, error) {
	if patch.Name == nil && patch.Description == nil {
		return domain.Company{}, fmt.Errorf("%w: at least one of name or description is required", domain.ErrInvalid)
	}

	current, err := s.companies.GetByCode(ctx, code)
	if err != nil {
		return domain.Company{}, fmt.Errorf("service.CompanyService.Update: %w", err)
	}

	if patch.Name != nil {
		current.Name = *patch.Name
	}
	if patch.Description != nil {
		current.Description = *patch.Description
	}
	if err := validateCompany(current, false); err != nil {
		return domain.Company{}, err
	}

	result, err := s.companies.Update(ctx, current)
	if err != nil {
		return domain.Company{}, fmt.Errorf("service.CompanyService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a company by code. Invoices billed to it go with it through
// the schema's cascade. Returns domain.ErrNotFound if it does not exist.
func (s *CompanyService) Delete(ctx context.Context, code string) error {
	if err := s.companies.Delete(ctx, code); err != nil {
		return fmt.Errorf("service.CompanyService.Delete: %w", err)
	}
	return nil
}

// validateCompany enforces the required-field rules.
// The code is only checked on create — updates never carry one.
func validateCompany(c domain.Company, requireCode bool) error {
	if requireCode && strings.TrimSpace(c.Code) == "" {
		return fmt.Errorf("%w: code is required", domain.ErrInvalid)
	}
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalid)
	}
	if strings.TrimSpace(c.Description) == "" {
		return fmt.Errorf("%w: description is required", domain.ErrInvalid)
	}
	return nil
}
