package domain

import (
	"context"
	"errors"
	"time"

	collectionsdomain "github.com/smallbiznis/ledgerdesk/internal/collections/domain"
	invoicedomain "github.com/smallbiznis/ledgerdesk/internal/invoice/domain"
	ledgerdomain "github.com/smallbiznis/ledgerdesk/internal/ledgerstore/domain"
	titledomain "github.com/smallbiznis/ledgerdesk/internal/title/domain"
)

// RefreshResult is the immutable outcome of one refresh cycle.
type RefreshResult struct {
	CycleID     string                  `json:"cycle_id"`
	Window      ledgerdomain.DateWindow `json:"window"`
	GeneratedAt time.Time               `json:"generated_at"`

	Titles   []titledomain.Title                  `json:"titles"`
	Invoices []invoicedomain.ConsolidatedInvoice  `json:"invoices"`
	Totals   collectionsdomain.SummaryTotals      `json:"totals"`
	Statuses []string                             `json:"statuses"`

	ClientSummaries []collectionsdomain.ClientDebtSummary `json:"client_summaries"`
	DebtSummaries   []collectionsdomain.ClientDebtEntry   `json:"debt_summaries"`
}

// Filter holds the optional predicates applied to a snapshot. Empty fields
// match everything; populated fields compose with AND.
type Filter struct {
	Status        string `json:"status" form:"status"`
	Client        string `json:"client" form:"client"`
	InvoiceNumber string `json:"invoice_number" form:"invoice_number"`
}

// FilteredView is the result of running a Filter over a snapshot.
type FilteredView struct {
	Titles   []titledomain.Title                 `json:"titles"`
	Invoices []invoicedomain.ConsolidatedInvoice `json:"invoices"`
}

// Service drives refresh cycles against the ledger store and serves the last
// successful snapshot. A failed cycle leaves the previous snapshot in place.
type Service interface {
	Refresh(ctx context.Context, window ledgerdomain.DateWindow) (RefreshResult, error)
	Snapshot() (RefreshResult, error)
	Filtered(filter Filter) (FilteredView, error)
}

var (
	ErrInvalidWindow = errors.New("invalid_date_window")
	ErrNoSnapshot    = errors.New("no_snapshot")
)
