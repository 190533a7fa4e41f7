package gormstore

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/ledgerdesk/internal/ledgerstore/domain"
	"gorm.io/gorm"
)

// Store reads titles, invoices and client names from the relational ledger
// replica the dashboard sits on.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

type titleRow struct {
	BranchGroup       string          `gorm:"column:branch_group"`
	Branch            string          `gorm:"column:branch"`
	LedgerEntryNumber string          `gorm:"column:ledger_entry_number"`
	BaseYear          int             `gorm:"column:base_year"`
	InvoiceNumber     string          `gorm:"column:invoice_number"`
	DocumentNumber    string          `gorm:"column:document_number"`
	ClientCode        string          `gorm:"column:client_code"`
	IssueDate         time.Time       `gorm:"column:issue_date"`
	DueDate           *time.Time      `gorm:"column:due_date"`
	PaymentDate       *time.Time      `gorm:"column:payment_date"`
	FaceValue         decimal.Decimal `gorm:"column:face_value"`
	Discount          decimal.Decimal `gorm:"column:discount"`
	Balance           decimal.Decimal `gorm:"column:balance"`
	StatusCode        string          `gorm:"column:status_code"`
}

const titleColumns = `branch_group, branch, ledger_entry_number, base_year,
	invoice_number, document_number, client_code,
	issue_date, due_date, payment_date,
	face_value, discount, balance, status_code`

func (s *Store) FetchTitlesPage(ctx context.Context, window domain.DateWindow, page, pageSize int) ([]domain.RawTitle, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}

	var total int64
	if err := s.db.WithContext(ctx).Raw(
		`SELECT COUNT(1) FROM ledger_titles
		 WHERE due_date IS NOT NULL AND issue_date >= ? AND issue_date <= ?`,
		window.From,
		window.To,
	).Scan(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []titleRow
	if err := s.db.WithContext(ctx).Raw(
		`SELECT `+titleColumns+`
		 FROM ledger_titles
		 WHERE due_date IS NOT NULL AND issue_date >= ? AND issue_date <= ?
		 ORDER BY issue_date ASC, id ASC
		 LIMIT ? OFFSET ?`,
		window.From,
		window.To,
		pageSize,
		(page-1)*pageSize,
	).Scan(&rows).Error; err != nil {
		return nil, 0, err
	}

	return toRawTitles(rows), int(total), nil
}

func (s *Store) FetchTitlesWithNullDueDate(ctx context.Context) ([]domain.RawTitle, error) {
	var rows []titleRow
	if err := s.db.WithContext(ctx).Raw(
		`SELECT `+titleColumns+`
		 FROM ledger_titles
		 WHERE due_date IS NULL
		 ORDER BY issue_date ASC, id ASC`,
	).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return toRawTitles(rows), nil
}

type invoiceRow struct {
	InvoiceNumber string          `gorm:"column:invoice_number"`
	ClientCode    string          `gorm:"column:client_code"`
	IssueDate     time.Time       `gorm:"column:issue_date"`
	GrandTotal    decimal.Decimal `gorm:"column:grand_total"`
	Total         decimal.Decimal `gorm:"column:total"`
	Value         decimal.Decimal `gorm:"column:value"`
	InvoiceValue  decimal.Decimal `gorm:"column:invoice_value"`
}

func (s *Store) FetchInvoices(ctx context.Context, window domain.DateWindow) ([]domain.RawInvoice, error) {
	var rows []invoiceRow
	if err := s.db.WithContext(ctx).Raw(
		`SELECT invoice_number, client_code, issue_date, grand_total, total, value, invoice_value
		 FROM billing_invoices
		 WHERE issue_date >= ? AND issue_date <= ?
		 ORDER BY issue_date ASC, invoice_number ASC`,
		window.From,
		window.To,
	).Scan(&rows).Error; err != nil {
		return nil, err
	}

	invoices := make([]domain.RawInvoice, 0, len(rows))
	for _, row := range rows {
		invoices = append(invoices, domain.RawInvoice{
			InvoiceNumber: row.InvoiceNumber,
			ClientCode:    row.ClientCode,
			IssueDate:     row.IssueDate,
			GrandTotal:    row.GrandTotal,
			Total:         row.Total,
			Value:         row.Value,
			InvoiceValue:  row.InvoiceValue,
		})
	}
	return invoices, nil
}

type clientRow struct {
	Code      string `gorm:"column:code"`
	Nickname  string `gorm:"column:nickname"`
	LegalName string `gorm:"column:legal_name"`
}

func (s *Store) FetchClientNames(ctx context.Context, codes []string) (map[string]domain.ClientName, error) {
	names := make(map[string]domain.ClientName, len(codes))
	if len(codes) == 0 {
		return names, nil
	}

	var rows []clientRow
	if err := s.db.WithContext(ctx).Raw(
		`SELECT code, nickname, legal_name FROM clients WHERE code IN ?`,
		codes,
	).Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		names[row.Code] = domain.ClientName{
			Nickname:  row.Nickname,
			LegalName: row.LegalName,
		}
	}
	return names, nil
}

func toRawTitles(rows []titleRow) []domain.RawTitle {
	titles := make([]domain.RawTitle, 0, len(rows))
	for _, row := range rows {
		titles = append(titles, domain.RawTitle{
			BranchGroup:       row.BranchGroup,
			Branch:            row.Branch,
			LedgerEntryNumber: row.LedgerEntryNumber,
			BaseYear:          row.BaseYear,
			InvoiceNumber:     row.InvoiceNumber,
			DocumentNumber:    row.DocumentNumber,
			ClientCode:        row.ClientCode,
			IssueDate:         row.IssueDate,
			DueDate:           row.DueDate,
			PaymentDate:       row.PaymentDate,
			FaceValue:         row.FaceValue,
			Discount:          row.Discount,
			Balance:           row.Balance,
			StatusCode:        row.StatusCode,
		})
	}
	return titles
}
