package domain

import "context"

// Store is the narrow contract with the upstream ledger. Pages are 1-indexed
// and must keep a stable ordering across calls within one refresh cycle.
type Store interface {
	// FetchTitlesPage returns one page of titles inside the window plus the
	// total count reported by the store for that window.
	FetchTitlesPage(ctx context.Context, window DateWindow, page, pageSize int) ([]RawTitle, int, error)

	// FetchTitlesWithNullDueDate returns the titles that fall outside normal
	// pagination because they carry no due date. Called once per cycle.
	FetchTitlesWithNullDueDate(ctx context.Context) ([]RawTitle, error)

	// FetchInvoices returns every billing record inside the window.
	FetchInvoices(ctx context.Context, window DateWindow) ([]RawInvoice, error)

	// FetchClientNames resolves display-name fields for a set of client codes.
	// Codes unknown upstream are simply absent from the result.
	FetchClientNames(ctx context.Context, codes []string) (map[string]ClientName, error)
}
