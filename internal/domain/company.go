// Package domain contains the core data types for the BizTime ledger service.
// This package has zero external dependencies and is imported by every other
// internal package (repo, service, handler).
package domain

// Company is a billing entity identified by an immutable code.
// The code doubles as the primary key and the URL path segment, so it is
// never changed after creation.
type Company struct {
	Code        string
	Name        string
	Description string
}

// CompanySummary is the identifying subset of a company returned by list
// endpoints: code and name only.
type CompanySummary struct {
	Code string
	Name string
}

// CompanyDetail is a full company record plus the ids of the invoices billed
// to it. InvoiceIDs is always non-nil; a company without invoices carries an
// empty slice.
type CompanyDetail struct {
	Company
	InvoiceIDs []int64
}

// CompanyPatch carries the optional fields of a partial company update.
// A nil field means "leave the stored value unchanged".
type CompanyPatch struct {
	Name        *string
	Description *string
}
