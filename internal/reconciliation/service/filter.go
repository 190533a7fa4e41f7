package service

import (
	"strings"

	"github.com/samber/lo"
	invoicedomain "github.com/smallbiznis/ledgerdesk/internal/invoice/domain"
	"github.com/smallbiznis/ledgerdesk/internal/reconciliation/domain"
	titledomain "github.com/smallbiznis/ledgerdesk/internal/title/domain"
)

// FilterTitles applies the AND-composed predicates over a title snapshot.
// Pure: safe to re-run on every input change.
func FilterTitles(titles []titledomain.Title, f domain.Filter) []titledomain.Title {
	f = normalizeFilter(f)
	return lo.Filter(titles, func(t titledomain.Title, _ int) bool {
		return matchStatus(t.Status, f.Status) &&
			matchClient(t.ClientName, t.ClientCode, f.Client) &&
			matchSubstring(t.InvoiceNumber, f.InvoiceNumber)
	})
}

// FilterInvoices applies the same predicates over consolidated invoices.
func FilterInvoices(invoices []invoicedomain.ConsolidatedInvoice, f domain.Filter) []invoicedomain.ConsolidatedInvoice {
	f = normalizeFilter(f)
	return lo.Filter(invoices, func(inv invoicedomain.ConsolidatedInvoice, _ int) bool {
		return matchStatus(inv.Status, f.Status) &&
			matchClient(inv.ClientName, inv.ClientCode, f.Client) &&
			matchSubstring(inv.InvoiceNumber, f.InvoiceNumber)
	})
}

func normalizeFilter(f domain.Filter) domain.Filter {
	f.Status = strings.TrimSpace(f.Status)
	f.Client = strings.TrimSpace(f.Client)
	f.InvoiceNumber = strings.TrimSpace(f.InvoiceNumber)
	return f
}

func matchStatus(status, want string) bool {
	return want == "" || status == want
}

// matchClient accepts a case-insensitive substring of the display name or a
// substring of the client code.
func matchClient(name, code, want string) bool {
	if want == "" {
		return true
	}
	if strings.Contains(strings.ToLower(name), strings.ToLower(want)) {
		return true
	}
	return strings.Contains(code, want)
}

func matchSubstring(value, want string) bool {
	return want == "" || strings.Contains(value, want)
}
