package domain

import (
	invoicedomain "github.com/smallbiznis/ledgerdesk/internal/invoice/domain"
	titledomain "github.com/smallbiznis/ledgerdesk/internal/title/domain"
)

// Service aggregates classified titles and consolidated invoices. Every
// method is a pure pass over an immutable snapshot; canceled titles never
// contribute to any monetary bucket.
type Service interface {
	Totals(titles []titledomain.Title, invoices []invoicedomain.ConsolidatedInvoice) SummaryTotals
	ClientSummaries(titles []titledomain.Title, invoices []invoicedomain.ConsolidatedInvoice) []ClientDebtSummary
	DebtSummaries(titles []titledomain.Title) []ClientDebtEntry
}
