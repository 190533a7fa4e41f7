package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	ledgerdomain "github.com/smallbiznis/ledgerdesk/internal/ledgerstore/domain"
	titledomain "github.com/smallbiznis/ledgerdesk/internal/title/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawInvoice(number string, grandTotal int64) ledgerdomain.RawInvoice {
	return ledgerdomain.RawInvoice{
		InvoiceNumber: number,
		ClientCode:    "C001",
		IssueDate:     time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		GrandTotal:    decimal.NewFromInt(grandTotal),
	}
}

func paidTitle(invoice string, face, balance int64, due *time.Time) titledomain.Title {
	return titledomain.Title{
		InvoiceNumber: invoice,
		ClientCode:    "C001",
		FaceValue:     decimal.NewFromInt(face),
		Balance:       decimal.NewFromInt(balance),
		DueDate:       due,
		Status:        titledomain.StatusOpen,
	}
}

func TestConsolidate_FoldsMatchingTitles(t *testing.T) {
	due := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	titles := []titledomain.Title{
		paidTitle("INV-1", 1000, 400, &due), // 600 paid
		paidTitle("INV-1", 500, 500, nil),   // nothing paid
	}

	got := Consolidate([]ledgerdomain.RawInvoice{rawInvoice("INV-1", 1500)}, titles, nil)
	require.Len(t, got, 1)

	inv := got[0]
	assert.True(t, inv.AmountPaid.Equal(decimal.NewFromInt(600)), "paid %s", inv.AmountPaid)
	assert.True(t, inv.Balance.Equal(decimal.NewFromInt(900)), "balance %s", inv.Balance)
	assert.Equal(t, titledomain.StatusPartial, inv.Status)
	require.NotNil(t, inv.DueDate)
	assert.True(t, inv.DueDate.Equal(due))
}

func TestConsolidate_PaidWhenTitlesCoverFace(t *testing.T) {
	titles := []titledomain.Title{
		paidTitle("INV-1", 700, 0, nil),
		paidTitle("INV-1", 300, 0, nil),
	}

	got := Consolidate([]ledgerdomain.RawInvoice{rawInvoice("INV-1", 1000)}, titles, nil)
	require.Len(t, got, 1)
	assert.Equal(t, titledomain.StatusPaid, got[0].Status)
	assert.True(t, got[0].Balance.IsZero())
}

func TestConsolidate_UnmatchedInvoiceStaysOpen(t *testing.T) {
	got := Consolidate([]ledgerdomain.RawInvoice{rawInvoice("INV-9", 250)}, nil, nil)
	require.Len(t, got, 1)

	inv := got[0]
	assert.Equal(t, titledomain.StatusOpen, inv.Status)
	assert.True(t, inv.AmountPaid.IsZero())
	assert.True(t, inv.Balance.Equal(decimal.NewFromInt(250)))
	assert.Nil(t, inv.DueDate)
}

func TestConsolidate_FoldIsOrderIndependent(t *testing.T) {
	due := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	a := paidTitle("INV-1", 1000, 400, &due)
	b := paidTitle("INV-1", 500, 100, &due)

	forward := Consolidate([]ledgerdomain.RawInvoice{rawInvoice("INV-1", 1500)}, []titledomain.Title{a, b}, nil)
	reverse := Consolidate([]ledgerdomain.RawInvoice{rawInvoice("INV-1", 1500)}, []titledomain.Title{b, a}, nil)

	assert.True(t, forward[0].AmountPaid.Equal(reverse[0].AmountPaid))
	assert.True(t, forward[0].Balance.Equal(reverse[0].Balance))
	assert.Equal(t, forward[0].Status, reverse[0].Status)
}

func TestFaceValue_PriorityOrder(t *testing.T) {
	raw := ledgerdomain.RawInvoice{
		GrandTotal:   decimal.NewFromInt(10),
		Total:        decimal.NewFromInt(20),
		Value:        decimal.NewFromInt(30),
		InvoiceValue: decimal.NewFromInt(40),
	}
	assert.True(t, faceValue(raw).Equal(decimal.NewFromInt(10)))

	raw.GrandTotal = decimal.Zero
	assert.True(t, faceValue(raw).Equal(decimal.NewFromInt(20)))

	raw.Total = decimal.Zero
	assert.True(t, faceValue(raw).Equal(decimal.NewFromInt(30)))

	raw.Value = decimal.Zero
	assert.True(t, faceValue(raw).Equal(decimal.NewFromInt(40)))

	raw.InvoiceValue = decimal.Zero
	assert.True(t, faceValue(raw).IsZero())
}

func TestConsolidate_TitlesWithoutInvoiceNumberIgnored(t *testing.T) {
	titles := []titledomain.Title{
		paidTitle("", 1000, 0, nil),
	}
	got := Consolidate([]ledgerdomain.RawInvoice{rawInvoice("INV-1", 500)}, titles, nil)
	require.Len(t, got, 1)
	assert.True(t, got[0].AmountPaid.IsZero())
}
