package service

import "github.com/smallbiznis/ledgerdesk/internal/title/domain"

// Accumulator merges successive pages of titles into one deduplicated set.
// Identity is the composite key; the first occurrence wins because pages are
// fetched in a stable server-side order, so a duplicate reintroduced by the
// null-due-date union or by page overlap is discarded. Merging the same page
// twice is therefore a no-op.
//
// Not safe for concurrent use: first-seen-wins requires a total order over
// page arrivals.
type Accumulator struct {
	titles []domain.Title
	seen   map[domain.Identity]struct{}
}

func NewAccumulator() *Accumulator {
	return &Accumulator{
		seen: make(map[domain.Identity]struct{}),
	}
}

// Merge folds a page into the accumulated set and reports how many incoming
// titles were accepted.
func (a *Accumulator) Merge(incoming []domain.Title) int {
	added := 0
	for _, t := range incoming {
		id := t.Identity()
		if _, dup := a.seen[id]; dup {
			continue
		}
		a.seen[id] = struct{}{}
		a.titles = append(a.titles, t)
		added++
	}
	return added
}

// Titles returns the accumulated set in first-seen order.
func (a *Accumulator) Titles() []domain.Title {
	out := make([]domain.Title, len(a.titles))
	copy(out, a.titles)
	return out
}

func (a *Accumulator) Len() int {
	return len(a.titles)
}
