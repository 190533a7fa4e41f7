package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Raw status codes as reported by the upstream ledger, plus the derived
// overdue sentinel written by classification.
const (
	StatusOpen     = "1"
	StatusPartial  = "2"
	StatusPaid     = "3"
	StatusCanceled = "4"

	StatusOverdue = "OVERDUE"
)

// Title is one canonical accounts-receivable line. Status starts as the raw
// upstream code and may be rewritten to StatusOverdue by classification.
type Title struct {
	BranchGroup       string `json:"branch_group,omitempty"`
	Branch            string `json:"branch,omitempty"`
	LedgerEntryNumber string `json:"ledger_entry_number,omitempty"`
	BaseYear          int    `json:"base_year,omitempty"`

	InvoiceNumber  string `json:"invoice_number"`
	DocumentNumber string `json:"document_number,omitempty"`
	ClientCode     string `json:"client_code"`
	ClientName     string `json:"client_name"`

	IssueDate   time.Time  `json:"issue_date"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	PaymentDate *time.Time `json:"payment_date,omitempty"`

	FaceValue decimal.Decimal `json:"face_value"`
	Discount  decimal.Decimal `json:"discount"`
	Balance   decimal.Decimal `json:"balance"`

	Status string `json:"status"`
}

// Canceled reports whether the title is excluded from monetary aggregates.
func (t Title) Canceled() bool {
	return t.Status == StatusCanceled
}
