package gormstore

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/ledgerdesk/internal/ledgerstore/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	stmts := []string{
		`CREATE TABLE clients (
			code TEXT PRIMARY KEY,
			nickname TEXT NOT NULL DEFAULT '',
			legal_name TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE ledger_titles (
			id INTEGER PRIMARY KEY,
			branch_group TEXT NOT NULL DEFAULT '',
			branch TEXT NOT NULL DEFAULT '',
			ledger_entry_number TEXT NOT NULL DEFAULT '',
			base_year INTEGER NOT NULL DEFAULT 0,
			invoice_number TEXT NOT NULL DEFAULT '',
			document_number TEXT NOT NULL DEFAULT '',
			client_code TEXT NOT NULL DEFAULT '',
			issue_date TIMESTAMP NOT NULL,
			due_date TIMESTAMP NULL,
			payment_date TIMESTAMP NULL,
			face_value DECIMAL NOT NULL DEFAULT 0,
			discount DECIMAL NOT NULL DEFAULT 0,
			balance DECIMAL NOT NULL DEFAULT 0,
			status_code TEXT NOT NULL DEFAULT '1'
		)`,
		`CREATE TABLE billing_invoices (
			invoice_number TEXT PRIMARY KEY,
			client_code TEXT NOT NULL DEFAULT '',
			issue_date TIMESTAMP NOT NULL,
			grand_total DECIMAL NOT NULL DEFAULT 0,
			total DECIMAL NOT NULL DEFAULT 0,
			value DECIMAL NOT NULL DEFAULT 0,
			invoice_value DECIMAL NOT NULL DEFAULT 0
		)`,
	}
	for _, stmt := range stmts {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func insertTitle(t *testing.T, db *gorm.DB, id int64, entry, client string, issued time.Time, due *time.Time, balance int64) {
	t.Helper()
	require.NoError(t, db.Exec(
		`INSERT INTO ledger_titles
		 (id, branch_group, branch, ledger_entry_number, base_year, invoice_number, client_code,
		  issue_date, due_date, face_value, balance, status_code)
		 VALUES (?, '01', '001', ?, 2026, ?, ?, ?, ?, ?, ?, '1')`,
		id, entry, "INV-"+entry, client, issued, due, balance, balance,
	).Error)
}

func TestFetchTitlesPage(t *testing.T) {
	db := newTestDB(t)
	store := New(db)
	ctx := context.Background()

	due := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := int64(1); i <= 5; i++ {
		insertTitle(t, db, i, "LT-"+string(rune('0'+i)), "C1",
			time.Date(2026, 3, int(i), 0, 0, 0, 0, time.UTC), &due, 100*i)
	}
	// Outside the window: must not be counted or returned.
	insertTitle(t, db, 99, "LT-OLD", "C1",
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), &due, 100)
	// Null due date: excluded from the paginated query.
	insertTitle(t, db, 100, "LT-ND", "C1",
		time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), nil, 100)

	window := domain.DateWindow{
		From: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
	}

	page1, total, err := store.FetchTitlesPage(ctx, window, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, page1, 2)
	assert.Equal(t, "LT-1", page1[0].LedgerEntryNumber)

	page3, total, err := store.FetchTitlesPage(ctx, window, 3, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, page3, 1)
	assert.Equal(t, "LT-5", page3[0].LedgerEntryNumber)
	assert.True(t, page3[0].Balance.IntPart() == 500)
}

func TestFetchTitlesWithNullDueDate(t *testing.T) {
	db := newTestDB(t)
	store := New(db)
	ctx := context.Background()

	due := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	insertTitle(t, db, 1, "LT-1", "C1", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), &due, 100)
	insertTitle(t, db, 2, "LT-2", "C1", time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), nil, 200)

	titles, err := store.FetchTitlesWithNullDueDate(ctx)
	require.NoError(t, err)
	require.Len(t, titles, 1)
	assert.Equal(t, "LT-2", titles[0].LedgerEntryNumber)
	assert.Nil(t, titles[0].DueDate)
}

func TestFetchInvoices(t *testing.T) {
	db := newTestDB(t)
	store := New(db)
	ctx := context.Background()

	require.NoError(t, db.Exec(
		`INSERT INTO billing_invoices (invoice_number, client_code, issue_date, grand_total)
		 VALUES ('INV-1', 'C1', ?, 1500)`,
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	).Error)

	window := domain.DateWindow{
		From: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
	}

	invoices, err := store.FetchInvoices(ctx, window)
	require.NoError(t, err)
	require.Len(t, invoices, 1)
	assert.Equal(t, "INV-1", invoices[0].InvoiceNumber)
	assert.True(t, invoices[0].GrandTotal.IntPart() == 1500)
}

func TestFetchClientNames(t *testing.T) {
	db := newTestDB(t)
	store := New(db)
	ctx := context.Background()

	require.NoError(t, db.Exec(
		`INSERT INTO clients (code, nickname, legal_name) VALUES
		 ('C1', 'Acme', 'Acme Industries Ltda'),
		 ('C2', '', 'Borealis Trading SA')`,
	).Error)

	names, err := store.FetchClientNames(ctx, []string{"C1", "C2", "C404"})
	require.NoError(t, err)
	assert.Len(t, names, 2)
	assert.Equal(t, "Acme", names["C1"].Nickname)
	assert.Equal(t, "Borealis Trading SA", names["C2"].LegalName)

	empty, err := store.FetchClientNames(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
