package service

import (
	"time"

	"github.com/smallbiznis/ledgerdesk/internal/title/domain"
)

// Classify recomputes the effective lifecycle status of a title for the given
// instant. An open title with outstanding balance whose due date fell on an
// earlier calendar day becomes overdue; everything else keeps its raw status.
// Comparison is at calendar-day granularity so a title is never overdue on
// its own due date.
func Classify(t domain.Title, now time.Time) domain.Title {
	if t.Status != domain.StatusOpen {
		return t
	}
	if t.DueDate == nil || !t.Balance.IsPositive() {
		return t
	}
	if DateOnly(*t.DueDate).Before(DateOnly(now)) {
		t.Status = domain.StatusOverdue
	}
	return t
}

// ClassifyAll classifies every title against the same instant.
func ClassifyAll(titles []domain.Title, now time.Time) []domain.Title {
	out := make([]domain.Title, 0, len(titles))
	for _, t := range titles {
		out = append(out, Classify(t, now))
	}
	return out
}

// DateOnly truncates an instant to its UTC calendar day.
func DateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysOverdue is the whole-day distance from due date to now, never negative.
func DaysOverdue(due, now time.Time) int {
	days := int(DateOnly(now).Sub(DateOnly(due)).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}
