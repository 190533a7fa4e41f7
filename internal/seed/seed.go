package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// EnsureDemoLedger seeds a small set of clients, titles and invoices so the
// dashboard has data to reconcile on a fresh install. Seeding is idempotent:
// it runs only when the clients table is empty.
func EnsureDemoLedger(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.WithContext(ctx).Raw(`SELECT COUNT(1) FROM clients`).Scan(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		if err := seedClients(ctx, tx); err != nil {
			return err
		}
		if err := seedTitles(ctx, tx, node); err != nil {
			return err
		}
		return seedInvoices(ctx, tx)
	})
}

func seedClients(ctx context.Context, tx *gorm.DB) error {
	clients := [][3]string{
		{"C001", "Acme", "Acme Industries Ltda"},
		{"C002", "", "Borealis Trading SA"},
		{"C003", "Cobalt", "Cobalt Services ME"},
	}
	for _, c := range clients {
		if err := tx.WithContext(ctx).Exec(
			`INSERT INTO clients (code, nickname, legal_name) VALUES (?, ?, ?)`,
			c[0], c[1], c[2],
		).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedTitles(ctx context.Context, tx *gorm.DB, node *snowflake.Node) error {
	now := time.Now().UTC()
	type title struct {
		branchGroup, branch, entry string
		baseYear                   int
		invoice, document, client  string
		issued                     time.Time
		due, paid                  *time.Time
		face, balance              float64
		status                     string
	}

	past := func(days int) time.Time { return now.AddDate(0, 0, -days) }
	ptr := func(t time.Time) *time.Time { return &t }

	titles := []title{
		{"01", "001", "LT-1001", now.Year(), "INV-1001", "DOC-1001", "C001", past(60), ptr(past(30)), nil, 1500, 1500, "1"},
		{"01", "001", "LT-1002", now.Year(), "INV-1001", "DOC-1002", "C001", past(60), ptr(past(10)), nil, 800, 400, "1"},
		{"01", "002", "LT-1003", now.Year(), "INV-1002", "DOC-1003", "C002", past(45), ptr(now.AddDate(0, 0, 15)), nil, 2200, 2200, "1"},
		{"02", "001", "LT-1004", now.Year(), "INV-1003", "DOC-1004", "C003", past(90), ptr(past(75)), ptr(past(70)), 950, 0, "2"},
		{"02", "001", "LT-1005", now.Year(), "INV-1004", "DOC-1005", "C003", past(20), nil, nil, 600, 600, "1"},
		{"02", "002", "LT-1006", now.Year(), "INV-1005", "DOC-1006", "C002", past(30), ptr(past(5)), nil, 300, 300, "4"},
	}

	for _, t := range titles {
		if err := tx.WithContext(ctx).Exec(
			`INSERT INTO ledger_titles
			 (id, branch_group, branch, ledger_entry_number, base_year,
			  invoice_number, document_number, client_code,
			  issue_date, due_date, payment_date,
			  face_value, discount, balance, status_code)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, ?, ?)`,
			node.Generate().Int64(),
			t.branchGroup, t.branch, t.entry, t.baseYear,
			t.invoice, t.document, t.client,
			t.issued, t.due, t.paid,
			t.face, t.balance, t.status,
		).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedInvoices(ctx context.Context, tx *gorm.DB) error {
	now := time.Now().UTC()
	type invoice struct {
		number, client string
		issued         time.Time
		grandTotal     float64
	}

	invoices := []invoice{
		{"INV-1001", "C001", now.AddDate(0, 0, -60), 2300},
		{"INV-1002", "C002", now.AddDate(0, 0, -45), 2200},
		{"INV-1003", "C003", now.AddDate(0, 0, -90), 950},
		{"INV-1004", "C003", now.AddDate(0, 0, -20), 600},
	}

	for _, inv := range invoices {
		if err := tx.WithContext(ctx).Exec(
			`INSERT INTO billing_invoices
			 (invoice_number, client_code, issue_date, grand_total, total, value, invoice_value)
			 VALUES (?, ?, ?, ?, 0, 0, 0)`,
			inv.number, inv.client, inv.issued, inv.grandTotal,
		).Error; err != nil {
			return err
		}
	}
	return nil
}
