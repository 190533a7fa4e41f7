package domain

import "github.com/shopspring/decimal"

// SummaryTotals are the engine-wide monetary buckets across every
// non-canceled title plus every consolidated invoice.
type SummaryTotals struct {
	TotalOverdue decimal.Decimal `json:"total_overdue"`
	TotalOpen    decimal.Decimal `json:"total_open"`
	TotalPaid    decimal.Decimal `json:"total_paid"`
}

// ClientDebtSummary rolls the same buckets up per client code.
type ClientDebtSummary struct {
	ClientCode string `json:"client_code"`
	ClientName string `json:"client_name"`

	TotalOverdue decimal.Decimal `json:"total_overdue"`
	TotalOpen    decimal.Decimal `json:"total_open"`
	TotalPaid    decimal.Decimal `json:"total_paid"`

	TitleCount     int `json:"title_count"`
	MaxDaysOverdue int `json:"max_days_overdue"`
	AvgDaysOverdue int `json:"avg_days_overdue"`
}

// ClientDebtEntry is the stricter collections aggregate: only overdue,
// unpaid, non-canceled titles count here.
type ClientDebtEntry struct {
	ClientCode string `json:"client_code"`
	ClientName string `json:"client_name"`

	TitleCount     int             `json:"title_count"`
	TotalDebt      decimal.Decimal `json:"total_debt"`
	MaxDaysOverdue int             `json:"max_days_overdue"`
	AvgDaysOverdue int             `json:"avg_days_overdue"`

	AgingBucket string `json:"aging_bucket"`
	RiskLevel   string `json:"risk_level"`
}
