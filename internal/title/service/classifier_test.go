package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/ledgerdesk/internal/title/domain"
	"github.com/stretchr/testify/assert"
)

func TestClassify_OpenPastDueBecomesOverdue(t *testing.T) {
	now := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)
	due := time.Date(2026, 6, 9, 0, 0, 0, 0, time.UTC)

	title := domain.Title{
		Status:  domain.StatusOpen,
		DueDate: &due,
		Balance: decimal.NewFromInt(100),
	}

	got := Classify(title, now)
	assert.Equal(t, domain.StatusOverdue, got.Status)
}

func TestClassify_NotOverdueOnDueDate(t *testing.T) {
	// Due this morning, checked tonight: same calendar day, still open.
	now := time.Date(2026, 6, 10, 23, 59, 0, 0, time.UTC)
	due := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)

	title := domain.Title{
		Status:  domain.StatusOpen,
		DueDate: &due,
		Balance: decimal.NewFromInt(100),
	}

	got := Classify(title, now)
	assert.Equal(t, domain.StatusOpen, got.Status)
}

func TestClassify_LeavesNonOpenStatusesAlone(t *testing.T) {
	now := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)
	due := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for _, status := range []string{domain.StatusPartial, domain.StatusPaid, domain.StatusCanceled} {
		title := domain.Title{
			Status:  status,
			DueDate: &due,
			Balance: decimal.NewFromInt(100),
		}
		got := Classify(title, now)
		assert.Equal(t, status, got.Status)
	}
}

func TestClassify_RequiresOutstandingBalance(t *testing.T) {
	now := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)
	due := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	settled := domain.Title{
		Status:  domain.StatusOpen,
		DueDate: &due,
		Balance: decimal.Zero,
	}
	assert.Equal(t, domain.StatusOpen, Classify(settled, now).Status)

	credit := settled
	credit.Balance = decimal.NewFromInt(-50)
	assert.Equal(t, domain.StatusOpen, Classify(credit, now).Status)
}

func TestClassify_NilDueDateStaysOpen(t *testing.T) {
	now := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)

	title := domain.Title{
		Status:  domain.StatusOpen,
		Balance: decimal.NewFromInt(100),
	}
	assert.Equal(t, domain.StatusOpen, Classify(title, now).Status)
}

func TestDaysOverdue(t *testing.T) {
	now := time.Date(2026, 6, 10, 8, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, DaysOverdue(time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC), now))
	assert.Equal(t, 1, DaysOverdue(time.Date(2026, 6, 9, 23, 0, 0, 0, time.UTC), now))
	assert.Equal(t, 40, DaysOverdue(time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), now))
	// Future due dates never report negative days.
	assert.Equal(t, 0, DaysOverdue(time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC), now))
}
