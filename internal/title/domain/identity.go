package domain

const (
	// IdentityLedgerEntry keys a title by the four-field ledger business key.
	IdentityLedgerEntry = "ledger_entry"
	// IdentityDocument is the fallback when the ledger key is incomplete.
	IdentityDocument = "document"
)

const identityDateLayout = "2006-01-02"

// Identity is the deduplication key for a title. It is comparable, so the
// accumulator can use it directly as a map key.
type Identity struct {
	Kind string

	BranchGroup       string
	Branch            string
	LedgerEntryNumber string
	BaseYear          int

	InvoiceNumber string
	ClientCode    string
	IssueDate     string
}

// Identity resolves the composite key for this title: the ledger business key
// when all four fields are populated, otherwise the document fallback tuple.
func (t Title) Identity() Identity {
	if t.BranchGroup != "" && t.Branch != "" && t.LedgerEntryNumber != "" && t.BaseYear != 0 {
		return Identity{
			Kind:              IdentityLedgerEntry,
			BranchGroup:       t.BranchGroup,
			Branch:            t.Branch,
			LedgerEntryNumber: t.LedgerEntryNumber,
			BaseYear:          t.BaseYear,
		}
	}
	return Identity{
		Kind:          IdentityDocument,
		InvoiceNumber: t.InvoiceNumber,
		ClientCode:    t.ClientCode,
		IssueDate:     t.IssueDate.Format(identityDateLayout),
	}
}
