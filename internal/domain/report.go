// internal/domain/report.go
package domain

import "github.com/shopspring/decimal"

// ProfessionEarnings is a row of the best-profession report: total earnings
// of all contractors sharing a profession within a date range.
type ProfessionEarnings struct {
	Profession string          `db:"profession" json:"profession"`
	Earned     decimal.Decimal `db:"earned" json:"earned"`
}

// ClientSpending is a row of the best-clients report: how much a client paid
// for jobs within a date range.
type ClientSpending struct {
	ID       int64           `db:"id" json:"id"`
	FullName string          `db:"full_name" json:"full_name"`
	Paid     decimal.Decimal `db:"paid" json:"paid"`
}
