// Package report computes read-only reporting views from cache snapshots.
// Every function is pure: deterministic given its inputs, no cached state,
// cheap enough to re-derive from scratch on each call for the low thousands
// of rows a small business carries.
package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerline/books-server/internal/model"
)

// AgingReport sums remaining balances into five day-overdue buckets.
// Boundary days 30, 60 and 90 belong to the lower bucket.
type AgingReport struct {
	Current     decimal.Decimal `json:"current"`
	Days1To30   decimal.Decimal `json:"days1To30"`
	Days31To60  decimal.Decimal `json:"days31To60"`
	Days61To90  decimal.Decimal `json:"days61To90"`
	Over90      decimal.Decimal `json:"over90"`
	Outstanding int             `json:"outstanding"`
}

// DaysPastDue counts whole civil days between the transaction's reference
// date (due date if set, else transaction date) and today. Both dates are
// normalized to midnight before subtracting, so the count never depends on
// the time of day either timestamp carries.
func DaysPastDue(t model.Transaction, today time.Time) int {
	ref := startOfDay(t.ReferenceDate())
	day := startOfDay(today)
	return int(day.Sub(ref).Hours() / 24)
}

// Aging buckets every outstanding transaction by days past due.
func Aging(transactions []model.Transaction, today time.Time) AgingReport {
	report := AgingReport{
		Current:    decimal.Zero,
		Days1To30:  decimal.Zero,
		Days31To60: decimal.Zero,
		Days61To90: decimal.Zero,
		Over90:     decimal.Zero,
	}

	for _, t := range transactions {
		if !t.Outstanding() {
			continue
		}
		report.Outstanding++

		days := DaysPastDue(t, today)
		switch {
		case days <= 0:
			report.Current = report.Current.Add(t.RemainingAmount)
		case days <= 30:
			report.Days1To30 = report.Days1To30.Add(t.RemainingAmount)
		case days <= 60:
			report.Days31To60 = report.Days31To60.Add(t.RemainingAmount)
		case days <= 90:
			report.Days61To90 = report.Days61To90.Add(t.RemainingAmount)
		default:
			report.Over90 = report.Over90.Add(t.RemainingAmount)
		}
	}
	return report
}

// startOfDay maps a timestamp to midnight UTC of its civil date, making day
// subtraction exact across DST transitions.
func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
