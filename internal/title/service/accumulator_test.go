package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/ledgerdesk/internal/title/domain"
	"github.com/stretchr/testify/assert"
)

func ledgerTitle(entry string, balance int64) domain.Title {
	return domain.Title{
		BranchGroup:       "01",
		Branch:            "001",
		LedgerEntryNumber: entry,
		BaseYear:          2026,
		ClientCode:        "C001",
		IssueDate:         time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		FaceValue:         decimal.NewFromInt(balance),
		Balance:           decimal.NewFromInt(balance),
		Status:            domain.StatusOpen,
	}
}

func TestAccumulator_FirstSeenWins(t *testing.T) {
	acc := NewAccumulator()

	first := ledgerTitle("LT-1", 100)
	added := acc.Merge([]domain.Title{first})
	assert.Equal(t, 1, added)

	// Same identity, different balance: the later copy is discarded.
	second := ledgerTitle("LT-1", 999)
	added = acc.Merge([]domain.Title{second})
	assert.Equal(t, 0, added)

	titles := acc.Titles()
	assert.Len(t, titles, 1)
	assert.True(t, titles[0].Balance.Equal(decimal.NewFromInt(100)))
}

func TestAccumulator_MergeIsIdempotent(t *testing.T) {
	acc := NewAccumulator()
	page := []domain.Title{ledgerTitle("LT-1", 100), ledgerTitle("LT-2", 200)}

	assert.Equal(t, 2, acc.Merge(page))
	assert.Equal(t, 0, acc.Merge(page))
	assert.Equal(t, 2, acc.Len())
}

func TestAccumulator_PreservesFirstSeenOrder(t *testing.T) {
	acc := NewAccumulator()
	acc.Merge([]domain.Title{ledgerTitle("LT-3", 1), ledgerTitle("LT-1", 2)})
	acc.Merge([]domain.Title{ledgerTitle("LT-2", 3), ledgerTitle("LT-1", 4)})

	titles := acc.Titles()
	assert.Len(t, titles, 3)
	assert.Equal(t, "LT-3", titles[0].LedgerEntryNumber)
	assert.Equal(t, "LT-1", titles[1].LedgerEntryNumber)
	assert.Equal(t, "LT-2", titles[2].LedgerEntryNumber)
}

func TestAccumulator_FallbackIdentityDistinguishesDocuments(t *testing.T) {
	acc := NewAccumulator()

	// No ledger key: identity falls back to invoice, client and issue date.
	a := domain.Title{
		InvoiceNumber: "INV-1",
		ClientCode:    "C001",
		IssueDate:     time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
	}
	b := a
	b.IssueDate = time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC)
	dup := a
	dup.IssueDate = time.Date(2026, 5, 1, 23, 59, 0, 0, time.UTC)

	assert.Equal(t, 2, acc.Merge([]domain.Title{a, b}))
	// Same calendar day collapses onto the first occurrence.
	assert.Equal(t, 0, acc.Merge([]domain.Title{dup}))
}

func TestAccumulator_TitlesReturnsCopy(t *testing.T) {
	acc := NewAccumulator()
	acc.Merge([]domain.Title{ledgerTitle("LT-1", 100)})

	titles := acc.Titles()
	titles[0].LedgerEntryNumber = "mutated"

	assert.Equal(t, "LT-1", acc.Titles()[0].LedgerEntryNumber)
}
