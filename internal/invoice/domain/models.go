package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ConsolidatedInvoice is one billing record with the financial effect of
// every matching title folded in. Status shares the titles' raw-code
// vocabulary so the filter pipeline treats both families uniformly.
type ConsolidatedInvoice struct {
	InvoiceNumber string `json:"invoice_number"`
	ClientCode    string `json:"client_code"`
	ClientName    string `json:"client_name"`

	IssueDate time.Time  `json:"issue_date"`
	DueDate   *time.Time `json:"due_date,omitempty"`

	FaceValue  decimal.Decimal `json:"face_value"`
	AmountPaid decimal.Decimal `json:"amount_paid"`
	Balance    decimal.Decimal `json:"balance"`

	Status string `json:"status"`
}
