package service

import (
	"context"
	"sort"
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/samber/lo"
	"github.com/smallbiznis/ledgerdesk/internal/clock"
	collectionsdomain "github.com/smallbiznis/ledgerdesk/internal/collections/domain"
	"github.com/smallbiznis/ledgerdesk/internal/config"
	invoicedomain "github.com/smallbiznis/ledgerdesk/internal/invoice/domain"
	invoiceservice "github.com/smallbiznis/ledgerdesk/internal/invoice/service"
	ledgerdomain "github.com/smallbiznis/ledgerdesk/internal/ledgerstore/domain"
	"github.com/smallbiznis/ledgerdesk/internal/observability/metrics"
	"github.com/smallbiznis/ledgerdesk/internal/reconciliation/domain"
	titledomain "github.com/smallbiznis/ledgerdesk/internal/title/domain"
	titleservice "github.com/smallbiznis/ledgerdesk/internal/title/service"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Store      ledgerdomain.Store
	Log        *zap.Logger
	Clock      clock.Clock
	GenID      *snowflake.Node
	Aggregator collectionsdomain.Service
	Cfg        config.Config
	Metrics    *metrics.Engine `optional:"true"`
}

type Service struct {
	store      ledgerdomain.Store
	log        *zap.Logger
	clock      clock.Clock
	genID      *snowflake.Node
	aggregator collectionsdomain.Service
	metrics    *metrics.Engine
	pageSize   int

	mu       sync.RWMutex
	snapshot *domain.RefreshResult
}

func NewService(p Params) domain.Service {
	pageSize := p.Cfg.LedgerPageSize
	if pageSize <= 0 {
		pageSize = 200
	}
	return &Service{
		store:      p.Store,
		log:        p.Log.Named("reconciliation.service"),
		clock:      p.Clock,
		genID:      p.GenID,
		aggregator: p.Aggregator,
		metrics:    p.Metrics,
		pageSize:   pageSize,
	}
}

// Refresh runs one full cycle: drain every title page (plus the one-off
// null-due-date fetch unioned into page 1), fetch the invoices, classify,
// consolidate and aggregate. Pages merge strictly in order; a fetch error or
// cancellation aborts the cycle and leaves the previous snapshot serving.
func (s *Service) Refresh(ctx context.Context, window ledgerdomain.DateWindow) (domain.RefreshResult, error) {
	if window.From.IsZero() || window.To.IsZero() || window.From.After(window.To) {
		return domain.RefreshResult{}, domain.ErrInvalidWindow
	}

	start := s.clock.Now()
	cycleID := s.genID.Generate()
	log := s.log.With(zap.String("cycle_id", cycleID.String()))

	names := newNameCache(s.store)
	acc := titleservice.NewAccumulator()

	fetched := 0
	for page := 1; ; page++ {
		if err := ctx.Err(); err != nil {
			s.countCycle("canceled")
			return domain.RefreshResult{}, err
		}

		pageRaws, total, err := s.store.FetchTitlesPage(ctx, window, page, s.pageSize)
		if err != nil {
			s.countCycle("error")
			return domain.RefreshResult{}, err
		}
		fetched += len(pageRaws)

		raws := pageRaws
		if page == 1 {
			nullDue, err := s.store.FetchTitlesWithNullDueDate(ctx)
			if err != nil {
				s.countCycle("error")
				return domain.RefreshResult{}, err
			}
			raws = append(raws, nullDue...)
		}

		lookup, err := names.resolve(ctx, clientCodesOfTitles(raws))
		if err != nil {
			s.countCycle("error")
			return domain.RefreshResult{}, err
		}

		added := acc.Merge(titleservice.NormalizeAll(raws, lookup))
		if s.metrics != nil {
			s.metrics.PagesFetched.Inc()
			s.metrics.TitlesMerged.Add(float64(added))
			s.metrics.TitlesDiscarded.Add(float64(len(raws) - added))
		}
		log.Debug("page merged",
			zap.Int("page", page),
			zap.Int("received", len(raws)),
			zap.Int("added", added),
		)

		if fetched >= total || len(pageRaws) < s.pageSize {
			break
		}
	}

	rawInvoices, err := s.store.FetchInvoices(ctx, window)
	if err != nil {
		s.countCycle("error")
		return domain.RefreshResult{}, err
	}
	lookup, err := names.resolve(ctx, clientCodesOfInvoices(rawInvoices))
	if err != nil {
		s.countCycle("error")
		return domain.RefreshResult{}, err
	}

	now := s.clock.Now()
	titles := titleservice.ClassifyAll(acc.Titles(), now)
	invoices := invoiceservice.Consolidate(rawInvoices, titles, lookup)

	// The snapshot is complete and immutable from here on; the three
	// aggregation passes only share read access.
	var (
		wg              sync.WaitGroup
		totals          collectionsdomain.SummaryTotals
		clientSummaries []collectionsdomain.ClientDebtSummary
		debtSummaries   []collectionsdomain.ClientDebtEntry
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		totals = s.aggregator.Totals(titles, invoices)
	}()
	go func() {
		defer wg.Done()
		clientSummaries = s.aggregator.ClientSummaries(titles, invoices)
	}()
	go func() {
		defer wg.Done()
		debtSummaries = s.aggregator.DebtSummaries(titles)
	}()
	wg.Wait()

	result := domain.RefreshResult{
		CycleID:         cycleID.String(),
		Window:          window,
		GeneratedAt:     now,
		Titles:          titles,
		Invoices:        invoices,
		Totals:          totals,
		Statuses:        observedStatuses(titles, invoices),
		ClientSummaries: clientSummaries,
		DebtSummaries:   debtSummaries,
	}

	s.mu.Lock()
	s.snapshot = &result
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.RefreshDuration.Observe(s.clock.Now().Sub(start).Seconds())
	}
	s.countCycle("ok")
	log.Info("refresh cycle complete",
		zap.Int("titles", len(titles)),
		zap.Int("invoices", len(invoices)),
		zap.Int("clients", len(clientSummaries)),
	)
	return result, nil
}

// Snapshot returns the last successful cycle's result.
func (s *Service) Snapshot() (domain.RefreshResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snapshot == nil {
		return domain.RefreshResult{}, domain.ErrNoSnapshot
	}
	return *s.snapshot, nil
}

// Filtered applies the filter predicates to the current snapshot.
func (s *Service) Filtered(filter domain.Filter) (domain.FilteredView, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return domain.FilteredView{}, err
	}
	return domain.FilteredView{
		Titles:   FilterTitles(snap.Titles, filter),
		Invoices: FilterInvoices(snap.Invoices, filter),
	}, nil
}

func (s *Service) countCycle(status string) {
	if s.metrics != nil {
		s.metrics.RefreshCycles.WithLabelValues(status).Inc()
	}
}

func clientCodesOfTitles(raws []ledgerdomain.RawTitle) []string {
	return lo.Uniq(lo.Map(raws, func(r ledgerdomain.RawTitle, _ int) string {
		return r.ClientCode
	}))
}

func clientCodesOfInvoices(raws []ledgerdomain.RawInvoice) []string {
	return lo.Uniq(lo.Map(raws, func(r ledgerdomain.RawInvoice, _ int) string {
		return r.ClientCode
	}))
}

// observedStatuses lists the distinct effective statuses in the snapshot.
// The overdue sentinel is always present so status filters can offer it even
// when no title currently carries it.
func observedStatuses(titles []titledomain.Title, invoices []invoicedomain.ConsolidatedInvoice) []string {
	statuses := make([]string, 0, len(titles)+len(invoices)+1)
	for _, t := range titles {
		statuses = append(statuses, t.Status)
	}
	for _, inv := range invoices {
		statuses = append(statuses, inv.Status)
	}
	statuses = append(statuses, titledomain.StatusOverdue)
	statuses = lo.Uniq(statuses)
	sort.Strings(statuses)
	return statuses
}
