package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tkarls/biztime/internal/domain"
)

// ListCompanies handles GET /companies.
func (s *Server) ListCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := s.companies.List(r.Context())
	if err != nil {
		s.respondError(w, r, err, "company not found")
		return
	}

	data := make([]companySummaryResponse, len(companies))
	for i, c := range companies {
		data[i] = companySummaryResponse{Code: c.Code, Name: c.Name}
	}
	writeJSON(w, http.StatusOK, companiesEnvelope{Companies: data})
}

// GetCompany handles GET /companies/{code}.
func (s *Server) GetCompany(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	detail, err := s.companies.Get(r.Context(), code)
	if err != nil {
		s.respondError(w, r, err, "company not found")
		return
	}

	writeJSON(w, http.StatusOK, companyEnvelope[companyDetailResponse]{
		Company: companyDetailToResponse(detail),
	})
}

// CreateCompany handles POST /companies.
func (s *Server) CreateCompany(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Code        string `json:"code"`
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	created, err := s.companies.Create(r.Context(), domain.Company{
		Code:        body.Code,
		Name:        body.Name,
		Description: body.Description,
	})
	if err != nil {
		s.respondError(w, r, err, "company not found")
		return
	}

	writeJSON(w, http.StatusCreated, companyEnvelope[companyResponse]{
		Company: companyToResponse(created),
	})
}

// UpdateCompany handles PATCH /companies/{code}.
// Only the supplied fields change; the code in the path is immutable.
func (s *Server) UpdateCompany(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	var body struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	updated, err := s.companies.Update(r.Context(), code, domain.CompanyPatch{
		Name:        body.Name,
		Description: body.Description,
	})
	if err != nil {
		s.respondError(w, r, err, "company not found")
		return
	}

	writeJSON(w, http.StatusOK, companyEnvelope[companyResponse]{
		Company: companyToResponse(updated),
	})
}

// DeleteCompany handles DELETE /companies/{code}.
func (s *Server) DeleteCompany(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	if err := s.companies.Delete(r.Context(), code); err != nil {
		s.respondError(w, r, err, "company not found")
		return
	}

	writeJSON(w, http.StatusOK, statusEnvelope{Status: "deleted"})
}

// --- response shapes --------------------------------------------------------

// companiesEnvelope wraps the list response: {"companies":[{code,name},...]}.
type companiesEnvelope struct {
	Companies []companySummaryResponse `json:"companies"`
}

// companyEnvelope wraps a single company: {"company":{...}}. The type
// parameter selects between the plain record (create/update) and the detail
// record carrying invoice ids (get).
type companyEnvelope[T any] struct {
	Company T `json:"company"`
}

// statusEnvelope is the delete acknowledgement: {"status":"deleted"}.
type statusEnvelope struct {
	Status string `json:"status"`
}

type companySummaryResponse struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type companyResponse struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type companyDetailResponse struct {
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Invoices    []int64 `json:"invoices"`
}

func companyToResponse(c domain.Company) companyResponse {
	return companyResponse{Code: c.Code, Name: c.Name, Description: c.Description}
}

func companyDetailToResponse(d domain.CompanyDetail) companyDetailResponse {
	resp := companyDetailResponse{
		Code:        d.Code,
		Name:        d.Name,
		Description: d.Description,
		Invoices:    d.InvoiceIDs,
	}
	if resp.Invoices == nil {
		resp.Invoices = []int64{}
	}
	return resp
}
