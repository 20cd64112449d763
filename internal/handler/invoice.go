package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tkarls/biztime/internal/domain"
)

// ListInvoices handles GET /invoices.
func (s *Server) ListInvoices(w http.ResponseWriter, r *http.Request) {
	invoices, err := s.invoices.List(r.Context())
	if err != nil {
		s.respondError(w, r, err, "invoice not found")
		return
	}

	data := make([]invoiceSummaryResponse, len(invoices))
	for i, inv := range invoices {
		data[i] = invoiceSummaryResponse{ID: inv.ID, CompCode: inv.CompCode}
	}
	writeJSON(w, http.StatusOK, invoicesEnvelope{Invoices: data})
}

// GetInvoice handles GET /invoices/{id}.
func (s *Server) GetInvoice(w http.ResponseWriter, r *http.Request) {
	id, ok := invoiceID(w, r)
	if !ok {
		return
	}

	detail, err := s.invoices.Get(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err, "invoice not found")
		return
	}

	writeJSON(w, http.StatusOK, invoiceEnvelope[invoiceDetailResponse]{
		Invoice: invoiceDetailToResponse(detail),
	})
}

// CreateInvoice handles POST /invoices.
func (s *Server) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CompCode string   `json:"comp_code"`
		Amt      *float64 `json:"amt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if body.Amt == nil {
		writeError(w, http.StatusBadRequest, "amt is required")
		return
	}

	created, err := s.invoices.Create(r.Context(), body.CompCode, *body.Amt)
	if err != nil {
		s.respondError(w, r, err, "invoice not found")
		return
	}

	writeJSON(w, http.StatusCreated, invoiceEnvelope[invoiceResponse]{
		Invoice: invoiceToResponse(created),
	})
}

// UpdateInvoice handles PATCH /invoices/{id}.
// Deliberately narrow: only amt can change. comp_code and paid are immutable
// through this API.
func (s *Server) UpdateInvoice(w http.ResponseWriter, r *http.Request) {
	id, ok := invoiceID(w, r)
	if !ok {
		return
	}

	var body struct {
		Amt *float64 `json:"amt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if body.Amt == nil {
		writeError(w, http.StatusBadRequest, "amt is required")
		return
	}

	updated, err := s.invoices.UpdateAmount(r.Context(), id, *body.Amt)
	if err != nil {
		s.respondError(w, r, err, "invoice not found")
		return
	}

	writeJSON(w, http.StatusOK, invoiceEnvelope[invoiceResponse]{
		Invoice: invoiceToResponse(updated),
	})
}

// DeleteInvoice handles DELETE /invoices/{id}.
func (s *Server) DeleteInvoice(w http.ResponseWriter, r *http.Request) {
	id, ok := invoiceID(w, r)
	if !ok {
		return
	}

	if err := s.invoices.Delete(r.Context(), id); err != nil {
		s.respondError(w, r, err, "invoice not found")
		return
	}

	writeJSON(w, http.StatusOK, statusEnvelope{Status: "deleted"})
}

// invoiceID parses the {id} path segment. A non-numeric id names a resource
// that cannot exist, so it is a 404, not a 400.
func invoiceID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, "invoice not found")
		return 0, false
	}
	return id, true
}

// --- response shapes --------------------------------------------------------

// invoicesEnvelope wraps the list response: {"invoices":[{id,comp_code},...]}.
type invoicesEnvelope struct {
	Invoices []invoiceSummaryResponse `json:"invoices"`
}

// invoiceEnvelope wraps a single invoice: {"invoice":{...}}. The type
// parameter selects between the plain record (create/update) and the detail
// record carrying the embedded company (get).
type invoiceEnvelope[T any] struct {
	Invoice T `json:"invoice"`
}

type invoiceSummaryResponse struct {
	ID       int64  `json:"id"`
	CompCode string `json:"comp_code"`
}

type invoiceResponse struct {
	ID       int64   `json:"id"`
	CompCode string  `json:"comp_code"`
	Amt      float64 `json:"amt"`
	Paid     bool    `json:"paid"`
	AddDate  string  `json:"add_date"`
	PaidDate *string `json:"paid_date"`
}

type invoiceDetailResponse struct {
	ID       int64            `json:"id"`
	Amt      float64          `json:"amt"`
	Paid     bool             `json:"paid"`
	AddDate  string           `json:"add_date"`
	PaidDate *string          `json:"paid_date"`
	Company  *companyResponse `json:"company,omitempty"`
}

func invoiceToResponse(inv domain.Invoice) invoiceResponse {
	return invoiceResponse{
		ID:       inv.ID,
		CompCode: inv.CompCode,
		Amt:      inv.Amt,
		Paid:     inv.Paid,
		AddDate:  dateString(inv.AddDate),
		PaidDate: dateStringPtr(inv.PaidDate),
	}
}

func invoiceDetailToResponse(d domain.InvoiceDetail) invoiceDetailResponse {
	resp := invoiceDetailResponse{
		ID:       d.ID,
		Amt:      d.Amt,
		Paid:     d.Paid,
		AddDate:  dateString(d.AddDate),
		PaidDate: dateStringPtr(d.PaidDate),
	}
	if d.Company != nil {
		c := companyToResponse(*d.Company)
		resp.Company = &c
	}
	return resp
}

// dateString formats a date column as YYYY-MM-DD.
func dateString(t time.Time) string {
	return t.Format("2006-01-02")
}

// dateStringPtr formats an optional date, keeping nil as JSON null.
func dateStringPtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := dateString(*t)
	return &s
}
