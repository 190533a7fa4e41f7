package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Engine exposes instruments for refresh-cycle instrumentation.
type Engine struct {
	RefreshCycles   *prometheus.CounterVec
	PagesFetched    prometheus.Counter
	TitlesMerged    prometheus.Counter
	TitlesDiscarded prometheus.Counter
	RefreshDuration prometheus.Histogram
}

// NewEngine registers the engine instruments on the default registry.
func NewEngine() *Engine {
	return &Engine{
		RefreshCycles: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "ledgerdesk_refresh_cycles_total",
			Help: "Refresh cycles by outcome.",
		}, []string{"status"}),
		PagesFetched: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledgerdesk_pages_fetched_total",
			Help: "Title pages fetched from the ledger store.",
		}),
		TitlesMerged: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledgerdesk_titles_merged_total",
			Help: "Titles accepted into the accumulator.",
		}),
		TitlesDiscarded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledgerdesk_titles_discarded_total",
			Help: "Duplicate titles discarded during merge.",
		}),
		RefreshDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "ledgerdesk_refresh_duration_seconds",
			Help:    "Wall time of a full refresh cycle.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}
