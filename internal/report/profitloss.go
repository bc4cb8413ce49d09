package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerline/books-server/internal/model"
)

// Granularity selects how transactions are grouped into P&L periods.
type Granularity string

const (
	Monthly   Granularity = "monthly"
	Quarterly Granularity = "quarterly"
	Yearly    Granularity = "yearly"
	Custom    Granularity = "custom"
)

func (g Granularity) Valid() bool {
	switch g {
	case Monthly, Quarterly, Yearly, Custom:
		return true
	}
	return false
}

// PLPeriod is one profit-and-loss row: revenue from client transactions,
// cost of goods from supplier transactions, expenses from liabilities dated
// within the period.
type PLPeriod struct {
	Period      string          `json:"period"`
	Revenue     decimal.Decimal `json:"revenue"`
	COGS        decimal.Decimal `json:"cogs"`
	GrossProfit decimal.Decimal `json:"grossProfit"`
	Margin      decimal.Decimal `json:"margin"`
	Expenses    decimal.Decimal `json:"expenses"`
	NetProfit   decimal.Decimal `json:"netProfit"`
}

// PLRange bounds a custom-granularity statement, inclusive on both ends.
type PLRange struct {
	From time.Time
	To   time.Time
}

// PeriodKey maps a date to its period label: 2024-03, 2024-Q1 or 2024.
// Custom granularity collapses everything into a single range label.
func PeriodKey(g Granularity, t time.Time, rng *PLRange) string {
	switch g {
	case Quarterly:
		quarter := (int(t.Month()) + 2) / 3
		return fmt.Sprintf("%04d-Q%d", t.Year(), quarter)
	case Yearly:
		return fmt.Sprintf("%04d", t.Year())
	case Custom:
		if rng != nil {
			return rng.From.Format("2006-01-02") + ".." + rng.To.Format("2006-01-02")
		}
		return "custom"
	default:
		return t.Format("2006-01")
	}
}

// ProfitLoss rolls client transactions, supplier transactions and liabilities
// into per-period P&L rows, sorted by period. With Custom granularity only
// rows dated inside rng count and a single row is returned.
func ProfitLoss(clients, suppliers []model.Transaction, liabilities []model.Liability, g Granularity, rng *PLRange) []PLPeriod {
	periods := make(map[string]*PLPeriod)

	bucket := func(key string) *PLPeriod {
		p, ok := periods[key]
		if !ok {
			p = &PLPeriod{
				Period:      key,
				Revenue:     decimal.Zero,
				COGS:        decimal.Zero,
				GrossProfit: decimal.Zero,
				Margin:      decimal.Zero,
				Expenses:    decimal.Zero,
				NetProfit:   decimal.Zero,
			}
			periods[key] = p
		}
		return p
	}

	for _, t := range clients {
		if !inRange(t.Date, g, rng) {
			continue
		}
		p := bucket(PeriodKey(g, t.Date, rng))
		p.Revenue = p.Revenue.Add(t.TotalAmount)
	}
	for _, t := range suppliers {
		if !inRange(t.Date, g, rng) {
			continue
		}
		p := bucket(PeriodKey(g, t.Date, rng))
		p.COGS = p.COGS.Add(t.TotalAmount)
	}
	for _, l := range liabilities {
		// Liabilities without a due date have no period to land in.
		if l.DueDate == nil || !inRange(*l.DueDate, g, rng) {
			continue
		}
		p := bucket(PeriodKey(g, *l.DueDate, rng))
		p.Expenses = p.Expenses.Add(l.TotalAmount)
	}

	out := make([]PLPeriod, 0, len(periods))
	for _, p := range periods {
		p.GrossProfit = p.Revenue.Sub(p.COGS)
		if p.Revenue.IsZero() {
			p.Margin = decimal.Zero
		} else {
			p.Margin = p.GrossProfit.Div(p.Revenue).Mul(decimal.NewFromInt(100))
		}
		p.NetProfit = p.GrossProfit.Sub(p.Expenses)
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period < out[j].Period })
	return out
}

func inRange(t time.Time, g Granularity, rng *PLRange) bool {
	if g != Custom || rng == nil {
		return true
	}
	day := startOfDay(t)
	return !day.Before(startOfDay(rng.From)) && !day.After(startOfDay(rng.To))
}
