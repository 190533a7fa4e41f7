package service

import (
	"fmt"
	"strings"

	ledgerdomain "github.com/smallbiznis/ledgerdesk/internal/ledgerstore/domain"
	"github.com/smallbiznis/ledgerdesk/internal/title/domain"
)

// ResolveClientName picks the display name for a client code: nickname first,
// then legal name, then a fallback literal carrying the code. A missing
// lookup entry degrades to the fallback so one unknown client never blocks
// the rest of the page.
func ResolveClientName(code string, names map[string]ledgerdomain.ClientName) string {
	if entry, ok := names[code]; ok {
		if nickname := strings.TrimSpace(entry.Nickname); nickname != "" {
			return nickname
		}
		if legal := strings.TrimSpace(entry.LegalName); legal != "" {
			return legal
		}
	}
	return fmt.Sprintf("Client %s", strings.TrimSpace(code))
}

// Normalize converts one raw title into its canonical shape. It is total:
// malformed records come through with zero amounts and a fallback name.
func Normalize(raw ledgerdomain.RawTitle, names map[string]ledgerdomain.ClientName) domain.Title {
	clientCode := strings.TrimSpace(raw.ClientCode)
	return domain.Title{
		BranchGroup:       strings.TrimSpace(raw.BranchGroup),
		Branch:            strings.TrimSpace(raw.Branch),
		LedgerEntryNumber: strings.TrimSpace(raw.LedgerEntryNumber),
		BaseYear:          raw.BaseYear,

		InvoiceNumber:  strings.TrimSpace(raw.InvoiceNumber),
		DocumentNumber: strings.TrimSpace(raw.DocumentNumber),
		ClientCode:     clientCode,
		ClientName:     ResolveClientName(clientCode, names),

		IssueDate:   raw.IssueDate,
		DueDate:     raw.DueDate,
		PaymentDate: raw.PaymentDate,

		FaceValue: raw.FaceValue,
		Discount:  raw.Discount,
		Balance:   raw.Balance,

		Status: normalizeStatus(raw.StatusCode),
	}
}

// NormalizeAll normalizes a whole page preserving its order.
func NormalizeAll(raws []ledgerdomain.RawTitle, names map[string]ledgerdomain.ClientName) []domain.Title {
	titles := make([]domain.Title, 0, len(raws))
	for _, raw := range raws {
		titles = append(titles, Normalize(raw, names))
	}
	return titles
}

func normalizeStatus(code string) string {
	code = strings.TrimSpace(code)
	switch code {
	case domain.StatusOpen, domain.StatusPartial, domain.StatusPaid, domain.StatusCanceled:
		return code
	case "":
		return domain.StatusOpen
	default:
		// Unknown upstream codes pass through untouched for display.
		return code
	}
}
