// Package repo contains all database access logic for the BizTime ledger API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here — only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tkarls/biztime/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan helpers
// to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// CompanyRepo defines the persistence operations for Companies.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type CompanyRepo interface {
	// Create inserts a new company and returns the persisted record.
	// Returns domain.ErrDuplicate if a company with the same code exists.
	Create(ctx context.Context, company domain.Company) (domain.Company, error)

	// GetByCode retrieves a single company by its code primary key.
	// Returns domain.ErrNotFound if no company with that code exists.
	GetByCode(ctx context.Context, code string) (domain.Company, error)

	// List returns code and name for every company. Order is unspecified.
	List(ctx context.Context) ([]domain.CompanySummary, error)

	// Update overwrites name and description of an existing company and
	// returns the updated record. The code is never changed.
	// Returns domain.ErrNotFound if no company with that code exists.
	Update(ctx context.Context, company domain.Company) (domain.Company, error)

	// Delete removes a company by code. Invoices referencing it are removed
	// by the schema's ON DELETE CASCADE, not by this call.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, code string) error
}

// pgCompanyRepo is the Postgres implementation of CompanyRepo.
type pgCompanyRepo struct {
	db db
}

// NewCompanyRepo constructs a CompanyRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewCompanyRepo(db db) CompanyRepo {
	return &pgCompanyRepo{db: db}
}

// Create inserts a new company row and returns the persisted record.
func (r *pgCompanyRepo) Create(ctx context.Context, company domain.Company) (domain.Company, error) {
	const q = `
		INSERT INTO companies (code, name, description)
		VALUES (@code, @name, @description)
		RETURNING code, name, description`

	args := pgx.NamedArgs{
		"code":        company.Code,
		"name":        company.Name,
		"description": company.Description,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanCompany(row)
	if err != nil {
		return domain.Company{}, fmt.Errorf("repo.CompanyRepo.Create: %w", translateConstraint(err))
	}
	return result, nil
}

// GetByCode retrieves a company by primary key.
func (r *pgCompanyRepo) GetByCode(ctx context.Context, code string) (domain.Company, error) {
	const q = `
		SELECT code, name, description
		FROM companies
		WHERE code = @code`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"code": code})
	result, err := scanCompany(row)
	if err != nil {
		return domain.Company{}, fmt.Errorf("repo.CompanyRepo.GetByCode: %w", err)
	}
	return result, nil
}

// List returns code and name for all companies.
func (r *pgCompanyRepo) List(ctx context.Context) ([]domain.CompanySummary, error) {
	const q = `
		SELECT code, name
		FROM companies`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.CompanyRepo.List: %w", err)
	}
	defer rows.Close()

	var companies []domain.CompanySummary
	for rows.Next() {
		var c domain.CompanySummary
		if err := rows.Scan(&c.Code, &c.Name); err != nil {
			return nil, fmt.Errorf("repo.CompanyRepo.List: scan: %w", err)
		}
		companies = append(companies, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.CompanyRepo.List: rows: %w", err)
	}

	return companies, nil
}

// Update overwrites the mutable fields of a company and returns the updated record.
func (r *pgCompanyRepo) Update(ctx context.Context, company domain.Company) (domain.Company, error) {
	const q = `
		UPDATE companies
		SET name        = @name,
		    description = @description
		WHERE code = @code
		RETURNING code, name, description`

	args := pgx.NamedArgs{
		"code":        company.Code,
		"name":        company.Name,
		"description": company.Description,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanCompany(row)
	if err != nil {
		return domain.Company{}, fmt.Errorf("repo.CompanyRepo.Update: %w", err)
	}
	return result, nil
}

// Delete removes a company by primary key.
func (r *pgCompanyRepo) Delete(ctx context.Context, code string) error {
	const q = `DELETE FROM companies WHERE code = @code`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"code": code})
	if err != nil {
		return fmt.Errorf("repo.CompanyRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.CompanyRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanCompany maps a single database row into a domain.Company.
func scanCompany(s scanner) (domain.Company, error) {
	var c domain.Company
	err := s.Scan(&c.Code, &c.Name, &c.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Company{}, domain.ErrNotFound
		}
		return domain.Company{}, err
	}
	return c, nil
}

// translateConstraint converts Postgres constraint violations into domain
// sentinels so no caller ever has to match on an error's free text.
// SQLSTATE 23505 is unique_violation, 23503 is foreign_key_violation.
func translateConstraint(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return domain.ErrDuplicate
		case "23503":
			return domain.ErrInvalid
		}
	}
	return err
}
