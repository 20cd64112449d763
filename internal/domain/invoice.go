package domain

import "time"

// Invoice is a billable line item owned by exactly one company.
// The id, paid flag, add date, and paid date are all owned by storage:
// the id is generated on insert, paid defaults to false, add_date is set to
// the insertion day, and paid_date stays nil until storage policy sets it.
type Invoice struct {
	ID       int64
	CompCode string
	Amt      float64
	Paid     bool
	AddDate  time.Time
	PaidDate *time.Time // nil until the invoice is paid
}

// InvoiceSummary is the identifying subset of an invoice returned by list
// endpoints: id and owning company code.
type InvoiceSummary struct {
	ID       int64
	CompCode string
}

// InvoiceDetail is a full invoice record enriched with its owning company.
// Company is nil when the referenced company row is missing — the read does
// not fail just because the enrichment lookup came up empty.
type InvoiceDetail struct {
	Invoice
	Company *Company
}
