package store

import (
	"github.com/shopspring/decimal"
)

// TransactionRow is a transaction joined with its category and vendor names,
// as returned to API callers. Temporal fields are pre-formatted strings:
// transaction_date as YYYY-MM-DD, timestamps as RFC 3339.
type TransactionRow struct {
	TransactionID   string          `json:"transaction_id"`
	Title           string          `json:"title"`
	Amount          decimal.Decimal `json:"amount"`
	TransactionDate string          `json:"transaction_date"`
	AttachmentURL   string          `json:"attachment_url"`
	AttachmentType  string          `json:"attachment_type"`
	CreatedAt       string          `json:"created_at"`
	UpdatedAt       string          `json:"updated_at"`
	CategoryID      string          `json:"category_id"`
	CategoryName    string          `json:"category_name"`
	VendorID        string          `json:"vendor_id"`
	VendorName      string          `json:"vendor_name"`
}

// TransactionInput carries the mutable fields for create and update calls.
// Amount is nullable so a body that omits the key is distinguishable from
// an explicit zero; validation rejects the former. The attachment url and
// type travel as a pair: a url without a type gets one inferred before the
// write, and an empty url forces the type empty.
type TransactionInput struct {
	OwnerID         string              `json:"user_id"`
	Title           string              `json:"title"`
	Amount          decimal.NullDecimal `json:"amount"`
	TransactionDate string              `json:"transaction_date"`
	CategoryID      string              `json:"category_id"`
	VendorID        string              `json:"vendor_id"`
	AttachmentURL   string              `json:"attachment_url"`
	AttachmentType  string              `json:"attachment_type"`
}
