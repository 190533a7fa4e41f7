package service

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/ledgerdesk/internal/invoice/domain"
	ledgerdomain "github.com/smallbiznis/ledgerdesk/internal/ledgerstore/domain"
	titledomain "github.com/smallbiznis/ledgerdesk/internal/title/domain"
	titleservice "github.com/smallbiznis/ledgerdesk/internal/title/service"
)

// Consolidate builds one consolidated view per billing record and folds in
// every title that matches it by invoice number. The fold only accumulates a
// sum, so the final paid/balance/status is independent of title order; the
// due date is the one exception and copies from the first matching title.
// A billing record with no matching titles stays fully open, which is the
// expected steady state for unpaid invoices.
func Consolidate(raws []ledgerdomain.RawInvoice, titles []titledomain.Title, names map[string]ledgerdomain.ClientName) []domain.ConsolidatedInvoice {
	byInvoice := groupTitles(titles)

	invoices := make([]domain.ConsolidatedInvoice, 0, len(raws))
	for _, raw := range raws {
		inv := seed(raw, names)
		for _, t := range byInvoice[inv.InvoiceNumber] {
			fold(&inv, t)
		}
		invoices = append(invoices, inv)
	}
	return invoices
}

func groupTitles(titles []titledomain.Title) map[string][]titledomain.Title {
	groups := make(map[string][]titledomain.Title)
	for _, t := range titles {
		if t.InvoiceNumber == "" {
			continue
		}
		groups[t.InvoiceNumber] = append(groups[t.InvoiceNumber], t)
	}
	return groups
}

func seed(raw ledgerdomain.RawInvoice, names map[string]ledgerdomain.ClientName) domain.ConsolidatedInvoice {
	face := faceValue(raw)
	code := strings.TrimSpace(raw.ClientCode)
	return domain.ConsolidatedInvoice{
		InvoiceNumber: strings.TrimSpace(raw.InvoiceNumber),
		ClientCode:    code,
		ClientName:    titleservice.ResolveClientName(code, names),
		IssueDate:     raw.IssueDate,
		FaceValue:     face,
		AmountPaid:    decimal.Zero,
		Balance:       face,
		Status:        titledomain.StatusOpen,
	}
}

// faceValue picks the first populated legacy value column, in the fixed
// priority order the upstream systems agreed on.
func faceValue(raw ledgerdomain.RawInvoice) decimal.Decimal {
	for _, candidate := range []decimal.Decimal{raw.GrandTotal, raw.Total, raw.Value, raw.InvoiceValue} {
		if !candidate.IsZero() {
			return candidate
		}
	}
	return decimal.Zero
}

func fold(inv *domain.ConsolidatedInvoice, t titledomain.Title) {
	inv.AmountPaid = inv.AmountPaid.Add(t.FaceValue.Sub(t.Balance))
	inv.Balance = inv.FaceValue.Sub(inv.AmountPaid)
	inv.Status = statusFor(inv.AmountPaid, inv.FaceValue)
	if inv.DueDate == nil && t.DueDate != nil {
		due := *t.DueDate
		inv.DueDate = &due
	}
}

func statusFor(paid, face decimal.Decimal) string {
	switch {
	case paid.GreaterThanOrEqual(face) && face.IsPositive():
		return titledomain.StatusPaid
	case paid.IsPositive():
		return titledomain.StatusPartial
	default:
		return titledomain.StatusOpen
	}
}
