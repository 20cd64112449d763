// Package handler implements the HTTP handlers for the BizTime ledger API.
// All handlers are methods on Server. Methods are split into resource-specific
// files (company.go, invoice.go, health.go) but all share the same Server
// struct so they can access its dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tkarls/biztime/internal/domain"
)

// CompanyServicer defines the business operations the company handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type CompanyServicer interface {
	List(ctx context.Context) ([]domain.CompanySummary, error)
	Get(ctx context.Context, code string) (domain.CompanyDetail, error)
	Create(ctx context.Context, company domain.Company) (domain.Company, error)
	Update(ctx context.Context, code string, patch domain.CompanyPatch) (domain.Company, error)
	Delete(ctx context.Context, code string) error
}

// InvoiceServicer defines the business operations the invoice handlers depend on.
type InvoiceServicer interface {
	List(ctx context.Context) ([]domain.InvoiceSummary, error)
	Get(ctx context.Context, id int64) (domain.InvoiceDetail, error)
	Create(ctx context.Context, compCode string, amt float64) (domain.Invoice, error)
	UpdateAmount(ctx context.Context, id int64, amt float64) (domain.Invoice, error)
	Delete(ctx context.Context, id int64) error
}

// Server holds the dependencies for all API endpoints.
// Methods live in resource-specific files but all operate on this struct.
type Server struct {
	companies CompanyServicer
	invoices  InvoiceServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(companies CompanyServicer, invoices InvoiceServicer) *Server {
	return &Server{companies: companies, invoices: invoices}
}

// Routes builds the chi router for the full API surface.
// Unknown paths and wrong methods get the same JSON error envelope as every
// other failure — clients never see a bare framework error page.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Get("/health", s.GetHealth)

	r.Route("/companies", func(r chi.Router) {
		r.Get("/", s.ListCompanies)
		r.Post("/", s.CreateCompany)
		r.Route("/{code}", func(r chi.Router) {
			r.Get("/", s.GetCompany)
			r.Patch("/", s.UpdateCompany)
			r.Delete("/", s.DeleteCompany)
		})
	})

	r.Route("/invoices", func(r chi.Router) {
		r.Get("/", s.ListInvoices)
		r.Post("/", s.CreateInvoice)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetInvoice)
			r.Patch("/", s.UpdateInvoice)
			r.Delete("/", s.DeleteInvoice)
		})
	})

	return r
}
