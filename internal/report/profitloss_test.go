package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ledgerline/books-server/internal/model"
)

func tx(id int64, date time.Time, total string) model.Transaction {
	return model.Transaction{
		ID:          id,
		TotalAmount: decimal.RequireFromString(total),
		Date:        date,
	}
}

func liability(id int64, dueDate *time.Time, total string) model.Liability {
	return model.Liability{
		ID:          id,
		TotalAmount: decimal.RequireFromString(total),
		DueDate:     dueDate,
	}
}

func TestPeriodKey(t *testing.T) {
	march := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	october := time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "2024-03", PeriodKey(Monthly, march, nil))
	assert.Equal(t, "2024-Q1", PeriodKey(Quarterly, march, nil))
	assert.Equal(t, "2024-Q4", PeriodKey(Quarterly, october, nil))
	assert.Equal(t, "2024", PeriodKey(Yearly, march, nil))

	rng := &PLRange{
		From: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, "2024-01-01..2024-06-30", PeriodKey(Custom, march, rng))
}

func TestProfitLoss_MonthlyRollup(t *testing.T) {
	march := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	marchExpense := time.Date(2024, 3, 25, 0, 0, 0, 0, time.UTC)

	periods := ProfitLoss(
		[]model.Transaction{tx(1, march, "300.00"), tx(2, march, "200.00")},
		[]model.Transaction{tx(1, march, "200.00")},
		[]model.Liability{liability(1, &marchExpense, "50.00")},
		Monthly, nil,
	)

	assert.Len(t, periods, 1)
	p := periods[0]
	assert.Equal(t, "2024-03", p.Period)
	assert.True(t, p.Revenue.Equal(decimal.RequireFromString("500.00")))
	assert.True(t, p.COGS.Equal(decimal.RequireFromString("200.00")))
	assert.True(t, p.GrossProfit.Equal(decimal.RequireFromString("300.00")))
	assert.True(t, p.Margin.Equal(decimal.RequireFromString("60")))
	assert.True(t, p.Expenses.Equal(decimal.RequireFromString("50.00")))
	assert.True(t, p.NetProfit.Equal(decimal.RequireFromString("250.00")))
}

func TestProfitLoss_ZeroRevenueMarginIsZero(t *testing.T) {
	march := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	periods := ProfitLoss(
		nil,
		[]model.Transaction{tx(1, march, "200.00")},
		nil,
		Monthly, nil,
	)

	assert.Len(t, periods, 1)
	assert.True(t, periods[0].Margin.IsZero())
	assert.True(t, periods[0].GrossProfit.Equal(decimal.RequireFromString("-200.00")))
}

func TestProfitLoss_PeriodsSortedAscending(t *testing.T) {
	january := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	march := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	december2023 := time.Date(2023, 12, 5, 0, 0, 0, 0, time.UTC)

	periods := ProfitLoss(
		[]model.Transaction{tx(1, march, "1.00"), tx(2, january, "1.00"), tx(3, december2023, "1.00")},
		nil, nil,
		Monthly, nil,
	)

	assert.Len(t, periods, 3)
	assert.Equal(t, "2023-12", periods[0].Period)
	assert.Equal(t, "2024-01", periods[1].Period)
	assert.Equal(t, "2024-03", periods[2].Period)
}

func TestProfitLoss_LiabilityWithoutDueDateExcluded(t *testing.T) {
	march := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	periods := ProfitLoss(
		[]model.Transaction{tx(1, march, "100.00")},
		nil,
		[]model.Liability{liability(1, nil, "999.00")},
		Monthly, nil,
	)

	assert.Len(t, periods, 1)
	assert.True(t, periods[0].Expenses.IsZero())
}

func TestProfitLoss_CustomRangeFiltersAndCollapses(t *testing.T) {
	inside := time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)
	onBoundary := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	outside := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	rng := &PLRange{
		From: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
	}
	periods := ProfitLoss(
		[]model.Transaction{tx(1, inside, "100.00"), tx(2, onBoundary, "50.00"), tx(3, outside, "999.00")},
		nil, nil,
		Custom, rng,
	)

	assert.Len(t, periods, 1)
	assert.Equal(t, "2024-01-01..2024-03-31", periods[0].Period)
	assert.True(t, periods[0].Revenue.Equal(decimal.RequireFromString("150.00")))
}

func TestGranularity_Valid(t *testing.T) {
	assert.True(t, Monthly.Valid())
	assert.True(t, Quarterly.Valid())
	assert.True(t, Yearly.Valid())
	assert.True(t, Custom.Valid())
	assert.False(t, Granularity("weekly").Valid())
}
