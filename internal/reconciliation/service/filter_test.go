package service

import (
	"testing"

	invoicedomain "github.com/smallbiznis/ledgerdesk/internal/invoice/domain"
	"github.com/smallbiznis/ledgerdesk/internal/reconciliation/domain"
	titledomain "github.com/smallbiznis/ledgerdesk/internal/title/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filterTitles() []titledomain.Title {
	return []titledomain.Title{
		{InvoiceNumber: "INV-100", ClientCode: "C1", ClientName: "Acme Industries", Status: titledomain.StatusOpen},
		{InvoiceNumber: "INV-200", ClientCode: "C2", ClientName: "Borealis Trading", Status: titledomain.StatusOverdue},
		{InvoiceNumber: "INV-201", ClientCode: "C2", ClientName: "Borealis Trading", Status: titledomain.StatusPaid},
	}
}

func TestFilterTitles_EmptyFilterMatchesAll(t *testing.T) {
	got := FilterTitles(filterTitles(), domain.Filter{})
	assert.Len(t, got, 3)
}

func TestFilterTitles_ByStatus(t *testing.T) {
	got := FilterTitles(filterTitles(), domain.Filter{Status: titledomain.StatusOverdue})
	require.Len(t, got, 1)
	assert.Equal(t, "INV-200", got[0].InvoiceNumber)
}

func TestFilterTitles_ClientMatchesNameOrCode(t *testing.T) {
	byName := FilterTitles(filterTitles(), domain.Filter{Client: "borealis"})
	assert.Len(t, byName, 2)

	byCode := FilterTitles(filterTitles(), domain.Filter{Client: "C1"})
	require.Len(t, byCode, 1)
	assert.Equal(t, "C1", byCode[0].ClientCode)
}

func TestFilterTitles_PredicatesCompose(t *testing.T) {
	got := FilterTitles(filterTitles(), domain.Filter{
		Client:        "Borealis",
		InvoiceNumber: "INV-20",
		Status:        titledomain.StatusPaid,
	})
	require.Len(t, got, 1)
	assert.Equal(t, "INV-201", got[0].InvoiceNumber)
}

func TestFilterTitles_TrimsFilterValues(t *testing.T) {
	got := FilterTitles(filterTitles(), domain.Filter{Status: "  " + titledomain.StatusOpen + " "})
	require.Len(t, got, 1)
	assert.Equal(t, "INV-100", got[0].InvoiceNumber)
}

func TestFilterInvoices(t *testing.T) {
	invoices := []invoicedomain.ConsolidatedInvoice{
		{InvoiceNumber: "INV-100", ClientCode: "C1", ClientName: "Acme Industries", Status: titledomain.StatusPartial},
		{InvoiceNumber: "INV-200", ClientCode: "C2", ClientName: "Borealis Trading", Status: titledomain.StatusOpen},
	}

	got := FilterInvoices(invoices, domain.Filter{InvoiceNumber: "100"})
	require.Len(t, got, 1)
	assert.Equal(t, "INV-100", got[0].InvoiceNumber)

	got = FilterInvoices(invoices, domain.Filter{Status: titledomain.StatusOpen, Client: "acme"})
	assert.Empty(t, got)
}
