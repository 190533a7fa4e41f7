package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateWindow bounds a refresh cycle by issue date, inclusive on both ends.
type DateWindow struct {
	From time.Time
	To   time.Time
}

// RawTitle is one accounts-receivable line exactly as the upstream ledger
// reports it. The four ledger-key fields are only trustworthy when all of
// them are populated; older branches emit rows without them.
type RawTitle struct {
	BranchGroup       string
	Branch            string
	LedgerEntryNumber string
	BaseYear          int

	InvoiceNumber  string
	DocumentNumber string
	ClientCode     string

	IssueDate   time.Time
	DueDate     *time.Time
	PaymentDate *time.Time

	FaceValue decimal.Decimal
	Discount  decimal.Decimal
	Balance   decimal.Decimal

	StatusCode string
}

// RawInvoice is a billing document as reported upstream. The monetary value
// lives in one of several legacy columns depending on the emitting system.
type RawInvoice struct {
	InvoiceNumber string
	ClientCode    string
	IssueDate     time.Time

	GrandTotal   decimal.Decimal
	Total        decimal.Decimal
	Value        decimal.Decimal
	InvoiceValue decimal.Decimal
}

// ClientName carries the two upstream name fields for one client code.
type ClientName struct {
	Nickname  string
	LegalName string
}
