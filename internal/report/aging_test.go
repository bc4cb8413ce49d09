package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ledgerline/books-server/internal/model"
)

var today = time.Date(2024, 6, 1, 15, 30, 0, 0, time.UTC)

func outstandingTx(id int64, daysAgo int, remaining string) model.Transaction {
	due := today.AddDate(0, 0, -daysAgo)
	return model.Transaction{
		ID:              id,
		TotalAmount:     decimal.RequireFromString(remaining),
		PaidAmount:      decimal.Zero,
		RemainingAmount: decimal.RequireFromString(remaining),
		Date:            due.AddDate(0, 0, -10),
		DueDate:         &due,
		Status:          model.StatusInvoice,
	}
}

func TestDaysPastDue_NormalizesToMidnight(t *testing.T) {
	// Due late in the evening two days ago still counts as two whole days.
	due := time.Date(2024, 5, 30, 23, 50, 0, 0, time.UTC)
	tx := model.Transaction{DueDate: &due}

	assert.Equal(t, 2, DaysPastDue(tx, today))
}

func TestDaysPastDue_FutureDueDateIsNegative(t *testing.T) {
	due := today.AddDate(0, 0, 5)
	tx := model.Transaction{DueDate: &due}

	assert.Equal(t, -5, DaysPastDue(tx, today))
}

func TestDaysPastDue_FallsBackToTransactionDate(t *testing.T) {
	tx := model.Transaction{Date: today.AddDate(0, 0, -7)}

	assert.Equal(t, 7, DaysPastDue(tx, today))
}

func TestAging_BucketsByDaysPastDue(t *testing.T) {
	report := Aging([]model.Transaction{
		outstandingTx(1, -3, "10.00"), // not yet due
		outstandingTx(2, 0, "20.00"),  // due today
		outstandingTx(3, 15, "30.00"),
		outstandingTx(4, 45, "100.00"),
		outstandingTx(5, 75, "50.00"),
		outstandingTx(6, 120, "60.00"),
	}, today)

	assert.Equal(t, 6, report.Outstanding)
	assert.True(t, report.Current.Equal(decimal.RequireFromString("30.00")))
	assert.True(t, report.Days1To30.Equal(decimal.RequireFromString("30.00")))
	assert.True(t, report.Days31To60.Equal(decimal.RequireFromString("100.00")))
	assert.True(t, report.Days61To90.Equal(decimal.RequireFromString("50.00")))
	assert.True(t, report.Over90.Equal(decimal.RequireFromString("60.00")))
}

func TestAging_BoundaryDaysBelongToLowerBucket(t *testing.T) {
	report := Aging([]model.Transaction{
		outstandingTx(1, 30, "1.00"),
		outstandingTx(2, 60, "2.00"),
		outstandingTx(3, 90, "4.00"),
		outstandingTx(4, 91, "8.00"),
	}, today)

	assert.True(t, report.Days1To30.Equal(decimal.RequireFromString("1.00")))
	assert.True(t, report.Days31To60.Equal(decimal.RequireFromString("2.00")))
	assert.True(t, report.Days61To90.Equal(decimal.RequireFromString("4.00")))
	assert.True(t, report.Over90.Equal(decimal.RequireFromString("8.00")))
}

func TestAging_SkipsSettledTransactions(t *testing.T) {
	settled := outstandingTx(1, 45, "100.00")
	settled.PaidAmount = settled.TotalAmount
	settled.RemainingAmount = decimal.Zero

	report := Aging([]model.Transaction{settled}, today)

	assert.Equal(t, 0, report.Outstanding)
	assert.True(t, report.Days31To60.IsZero())
}

func TestAging_PartiallyPaidUsesRemaining(t *testing.T) {
	tx := outstandingTx(1, 45, "250.00")
	tx.PaidAmount = decimal.RequireFromString("150.00")
	tx.RemainingAmount = decimal.RequireFromString("100.00")

	report := Aging([]model.Transaction{tx}, today)

	assert.Equal(t, 1, report.Outstanding)
	assert.True(t, report.Days31To60.Equal(decimal.RequireFromString("100.00")))
}

func TestAging_EmptyInput(t *testing.T) {
	report := Aging(nil, today)

	assert.Equal(t, 0, report.Outstanding)
	assert.True(t, report.Current.IsZero())
	assert.True(t, report.Over90.IsZero())
}
