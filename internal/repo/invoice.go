package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/tkarls/biztime/internal/domain"
)

// InvoiceRepo defines the persistence operations for Invoices.
type InvoiceRepo interface {
	// Create inserts a new invoice for the given company code and amount.
	// Storage assigns id, paid=false, add_date=today, paid_date=NULL, and the
	// full persisted record is returned. Returns domain.ErrInvalid when the
	// company code violates the foreign key, which makes the insert itself the
	// authoritative referential check.
	Create(ctx context.Context, compCode string, amt float64) (domain.Invoice, error)

	// GetByID retrieves a single invoice by its integer primary key.
	// Returns domain.ErrNotFound if no invoice with that id exists.
	GetByID(ctx context.Context, id int64) (domain.Invoice, error)

	// List returns id and company code for every invoice, ordered by id ascending.
	List(ctx context.Context) ([]domain.InvoiceSummary, error)

	// ListIDsByCompany returns the ids of all invoices billed to the given
	// company code. An unknown code yields an empty slice, not an error.
	ListIDsByCompany(ctx context.Context, code string) ([]int64, error)

	// UpdateAmount overwrites amt of an existing invoice and returns the
	// updated record. No other column is touched.
	// Returns domain.ErrNotFound if no invoice with that id exists.
	UpdateAmount(ctx context.Context, id int64, amt float64) (domain.Invoice, error)

	// Delete removes an invoice by id. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id int64) error
}

// pgInvoiceRepo is the Postgres implementation of InvoiceRepo.
type pgInvoiceRepo struct {
	db db
}

// NewInvoiceRepo constructs an InvoiceRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewInvoiceRepo(db db) InvoiceRepo {
	return &pgInvoiceRepo{db: db}
}

// Create inserts a new invoice row, letting column defaults fill in paid,
// add_date, and paid_date.
func (r *pgInvoiceRepo) Create(ctx context.Context, compCode string, amt float64) (domain.Invoice, error) {
	const q = `
		INSERT INTO invoices (comp_code, amt)
		VALUES (@comp_code, @amt)
		RETURNING id, comp_code, amt, paid, add_date, paid_date`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"comp_code": compCode, "amt": amt})
	result, err := scanInvoice(row)
	if err != nil {
		return domain.Invoice{}, fmt.Errorf("repo.InvoiceRepo.Create: %w", translateConstraint(err))
	}
	return result, nil
}

// GetByID retrieves an invoice by primary key.
func (r *pgInvoiceRepo) GetByID(ctx context.Context, id int64) (domain.Invoice, error) {
	const q = `
		SELECT id, comp_code, amt, paid, add_date, paid_date
		FROM invoices
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanInvoice(row)
	if err != nil {
		return domain.Invoice{}, fmt.Errorf("repo.InvoiceRepo.GetByID: %w", err)
	}
	return result, nil
}

// List returns id and company code for all invoices, oldest id first.
func (r *pgInvoiceRepo) List(ctx context.Context) ([]domain.InvoiceSummary, error) {
	const q = `
		SELECT id, comp_code
		FROM invoices
		ORDER BY id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.InvoiceRepo.List: %w", err)
	}
	defer rows.Close()

	var invoices []domain.InvoiceSummary
	for rows.Next() {
		var inv domain.InvoiceSummary
		if err := rows.Scan(&inv.ID, &inv.CompCode); err != nil {
			return nil, fmt.Errorf("repo.InvoiceRepo.List: scan: %w", err)
		}
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.InvoiceRepo.List: rows: %w", err)
	}

	return invoices, nil
}

// ListIDsByCompany returns all invoice ids owned by one company, ascending.
func (r *pgInvoiceRepo) ListIDsByCompany(ctx context.Context, code string) ([]int64, error) {
	const q = `
		SELECT id
		FROM invoices
		WHERE comp_code = @comp_code
		ORDER BY id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"comp_code": code})
	if err != nil {
		return nil, fmt.Errorf("repo.InvoiceRepo.ListIDsByCompany: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("repo.InvoiceRepo.ListIDsByCompany: scan: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.InvoiceRepo.ListIDsByCompany: rows: %w", err)
	}

	return ids, nil
}

// UpdateAmount overwrites amt and returns the updated record.
func (r *pgInvoiceRepo) UpdateAmount(ctx context.Context, id int64, amt float64) (domain.Invoice, error) {
	const q = `
		UPDATE invoices
		SET amt = @amt
		WHERE id = @id
		RETURNING id, comp_code, amt, paid, add_date, paid_date`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "amt": amt})
	result, err := scanInvoice(row)
	if err != nil {
		return domain.Invoice{}, fmt.Errorf("repo.InvoiceRepo.UpdateAmount: %w", err)
	}
	return result, nil
}

// Delete removes an invoice by primary key.
func (r *pgInvoiceRepo) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM invoices WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.InvoiceRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.InvoiceRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanInvoice maps a single database row into a domain.Invoice.
// It handles the date and nullable paid_date conversions.
func scanInvoice(s scanner) (domain.Invoice, error) {
	var (
		inv      domain.Invoice
		addDate  pgtype.Date
		paidDate pgtype.Date
	)

	err := s.Scan(&inv.ID, &inv.CompCode, &inv.Amt, &inv.Paid, &addDate, &paidDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Invoice{}, domain.ErrNotFound
		}
		return domain.Invoice{}, err
	}

	inv.AddDate = addDate.Time
	if paidDate.Valid {
		pd := paidDate.Time
		inv.PaidDate = &pd
	}

	return inv, nil
}
