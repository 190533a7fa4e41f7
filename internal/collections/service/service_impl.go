package service

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/ledgerdesk/internal/clock"
	"github.com/smallbiznis/ledgerdesk/internal/collections/domain"
	"github.com/smallbiznis/ledgerdesk/internal/config"
	invoicedomain "github.com/smallbiznis/ledgerdesk/internal/invoice/domain"
	titledomain "github.com/smallbiznis/ledgerdesk/internal/title/domain"
	titleservice "github.com/smallbiznis/ledgerdesk/internal/title/service"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log            *zap.Logger
	Clock          clock.Clock
	CollectionsCfg *config.CollectionsConfigHolder
}

type Service struct {
	log            *zap.Logger
	clock          clock.Clock
	collectionsCfg *config.CollectionsConfigHolder
}

func NewService(p Params) domain.Service {
	return &Service{
		log:            p.Log.Named("collections.service"),
		clock:          p.Clock,
		collectionsCfg: p.CollectionsCfg,
	}
}

// Totals buckets every non-canceled title: positive balances count as
// overdue when the due date is missing or already past, open otherwise;
// settled value counts as paid when a payment date exists. Invoice balances
// roll into open and invoice payments into paid, since invoices carry no
// per-installment due-date granularity at this layer.
func (s *Service) Totals(titles []titledomain.Title, invoices []invoicedomain.ConsolidatedInvoice) domain.SummaryTotals {
	now := s.clock.Now()
	totals := zeroTotals()
	for _, t := range titles {
		if t.Canceled() {
			continue
		}
		addTitle(&totals, t, now)
	}
	for _, inv := range invoices {
		totals.TotalOpen = totals.TotalOpen.Add(inv.Balance)
		totals.TotalPaid = totals.TotalPaid.Add(inv.AmountPaid)
	}
	return totals
}

// ClientSummaries applies the identical bucketing rule keyed by client code.
// A summary is created lazily on first encounter of a code and updated in
// place thereafter.
func (s *Service) ClientSummaries(titles []titledomain.Title, invoices []invoicedomain.ConsolidatedInvoice) []domain.ClientDebtSummary {
	now := s.clock.Now()

	type clientAccum struct {
		summary     domain.ClientDebtSummary
		overdueDays []int
	}

	byClient := make(map[string]*clientAccum)
	order := make([]string, 0)
	ensure := func(code, name string) *clientAccum {
		acc, ok := byClient[code]
		if !ok {
			acc = &clientAccum{summary: domain.ClientDebtSummary{
				ClientCode:   code,
				ClientName:   name,
				TotalOverdue: decimal.Zero,
				TotalOpen:    decimal.Zero,
				TotalPaid:    decimal.Zero,
			}}
			byClient[code] = acc
			order = append(order, code)
		}
		return acc
	}

	for _, t := range titles {
		if t.Canceled() {
			continue
		}
		acc := ensure(t.ClientCode, t.ClientName)
		totals := domain.SummaryTotals{
			TotalOverdue: acc.summary.TotalOverdue,
			TotalOpen:    acc.summary.TotalOpen,
			TotalPaid:    acc.summary.TotalPaid,
		}
		addTitle(&totals, t, now)
		acc.summary.TotalOverdue = totals.TotalOverdue
		acc.summary.TotalOpen = totals.TotalOpen
		acc.summary.TotalPaid = totals.TotalPaid
		acc.summary.TitleCount++

		if t.Balance.IsPositive() && t.DueDate != nil && dueBefore(*t.DueDate, now) {
			acc.overdueDays = append(acc.overdueDays, titleservice.DaysOverdue(*t.DueDate, now))
		}
	}

	for _, inv := range invoices {
		acc := ensure(inv.ClientCode, inv.ClientName)
		acc.summary.TotalOpen = acc.summary.TotalOpen.Add(inv.Balance)
		acc.summary.TotalPaid = acc.summary.TotalPaid.Add(inv.AmountPaid)
	}

	summaries := make([]domain.ClientDebtSummary, 0, len(order))
	for _, code := range order {
		acc := byClient[code]
		acc.summary.MaxDaysOverdue = maxDays(acc.overdueDays)
		acc.summary.AvgDaysOverdue = avgDays(acc.overdueDays)
		summaries = append(summaries, acc.summary)
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].ClientCode < summaries[j].ClientCode
	})
	return summaries
}

// DebtSummaries builds the collections view: per client, the overdue-unpaid
// titles only, labeled with the configured aging bucket and risk level and
// sorted by total debt, largest first.
func (s *Service) DebtSummaries(titles []titledomain.Title) []domain.ClientDebtEntry {
	now := s.clock.Now()
	cfg := s.collectionsCfg.Get()

	type debtAccum struct {
		entry   domain.ClientDebtEntry
		daysSum int
	}

	byClient := make(map[string]*debtAccum)
	order := make([]string, 0)
	for _, t := range titles {
		if !collectible(t, now) {
			continue
		}
		acc, ok := byClient[t.ClientCode]
		if !ok {
			acc = &debtAccum{entry: domain.ClientDebtEntry{
				ClientCode: t.ClientCode,
				ClientName: t.ClientName,
				TotalDebt:  decimal.Zero,
			}}
			byClient[t.ClientCode] = acc
			order = append(order, t.ClientCode)
		}
		days := titleservice.DaysOverdue(*t.DueDate, now)
		acc.entry.TitleCount++
		acc.entry.TotalDebt = acc.entry.TotalDebt.Add(t.Balance)
		acc.daysSum += days
		if days > acc.entry.MaxDaysOverdue {
			acc.entry.MaxDaysOverdue = days
		}
	}

	entries := make([]domain.ClientDebtEntry, 0, len(order))
	for _, code := range order {
		acc := byClient[code]
		acc.entry.AvgDaysOverdue = roundDiv(acc.daysSum, acc.entry.TitleCount)
		acc.entry.AgingBucket = agingBucket(cfg.AgingBuckets, acc.entry.MaxDaysOverdue)
		acc.entry.RiskLevel = riskLevel(cfg.RiskLevels, acc.entry.TotalDebt, acc.entry.MaxDaysOverdue)
		entries = append(entries, acc.entry)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TotalDebt.GreaterThan(entries[j].TotalDebt)
	})
	return entries
}

// collectible: overdue, unpaid, not canceled.
func collectible(t titledomain.Title, now time.Time) bool {
	if t.Status == titledomain.StatusPaid || t.Status == titledomain.StatusCanceled {
		return false
	}
	if !t.Balance.IsPositive() || t.DueDate == nil {
		return false
	}
	return dueBefore(*t.DueDate, now)
}

func addTitle(totals *domain.SummaryTotals, t titledomain.Title, now time.Time) {
	if t.Balance.IsPositive() {
		if t.DueDate == nil || dueBefore(*t.DueDate, now) {
			totals.TotalOverdue = totals.TotalOverdue.Add(t.Balance)
		} else {
			totals.TotalOpen = totals.TotalOpen.Add(t.Balance)
		}
	}
	if t.PaymentDate != nil {
		totals.TotalPaid = totals.TotalPaid.Add(t.FaceValue.Sub(t.Balance))
	}
}

func dueBefore(due, now time.Time) bool {
	return titleservice.DateOnly(due).Before(titleservice.DateOnly(now))
}

func zeroTotals() domain.SummaryTotals {
	return domain.SummaryTotals{
		TotalOverdue: decimal.Zero,
		TotalOpen:    decimal.Zero,
		TotalPaid:    decimal.Zero,
	}
}

func maxDays(days []int) int {
	best := 0
	for _, d := range days {
		if d > best {
			best = d
		}
	}
	return best
}

func avgDays(days []int) int {
	if len(days) == 0 {
		return 0
	}
	sum := 0
	for _, d := range days {
		sum += d
	}
	return roundDiv(sum, len(days))
}

// roundDiv divides summed days by count, rounded to the nearest whole day.
func roundDiv(sum, count int) int {
	if count == 0 {
		return 0
	}
	return int(decimal.NewFromInt(int64(sum)).
		Div(decimal.NewFromInt(int64(count))).
		Round(0).
		IntPart())
}

func agingBucket(buckets []config.AgingBucket, days int) string {
	for _, b := range buckets {
		if days < b.MinDays {
			continue
		}
		if b.MaxDays == nil || days <= *b.MaxDays {
			return b.Label
		}
	}
	if len(buckets) > 0 {
		return buckets[len(buckets)-1].Label
	}
	return ""
}

func riskLevel(levels []config.RiskLevel, outstanding decimal.Decimal, days int) string {
	for _, l := range levels {
		if outstanding.GreaterThanOrEqual(decimal.NewFromFloat(l.MinOutstanding)) && days >= l.MinDays {
			return l.Level
		}
	}
	if len(levels) > 0 {
		return levels[len(levels)-1].Level
	}
	return ""
}
