package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/ledgerline/books-server/internal/model"
)

// rankLimit caps ranking views at the top five rows.
const rankLimit = 5

// RankedEntry is one row of a top-N view.
type RankedEntry struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Total     decimal.Decimal `json:"total"`
	Paid      decimal.Decimal `json:"paid"`
	Remaining decimal.Decimal `json:"remaining"`
}

// TopCounterparts ranks counterparts by summed transaction total, descending,
// truncated to five.
func TopCounterparts(transactions []model.Transaction) []RankedEntry {
	return rank(transactions,
		func(t model.Transaction) (int64, string) { return t.CounterpartID, t.CounterpartName })
}

// TopProducts ranks products by summed transaction total, descending,
// truncated to five.
func TopProducts(transactions []model.Transaction) []RankedEntry {
	return rank(transactions,
		func(t model.Transaction) (int64, string) { return t.ProductID, t.ProductName })
}

func rank(transactions []model.Transaction, groupBy func(model.Transaction) (int64, string)) []RankedEntry {
	groups := make(map[int64]*RankedEntry)
	for _, t := range transactions {
		id, name := groupBy(t)
		entry, ok := groups[id]
		if !ok {
			entry = &RankedEntry{
				ID:        id,
				Name:      name,
				Total:     decimal.Zero,
				Paid:      decimal.Zero,
				Remaining: decimal.Zero,
			}
			groups[id] = entry
		}
		entry.Total = entry.Total.Add(t.TotalAmount)
		entry.Paid = entry.Paid.Add(t.PaidAmount)
		entry.Remaining = entry.Remaining.Add(t.RemainingAmount)
	}

	out := make([]RankedEntry, 0, len(groups))
	for _, entry := range groups {
		out = append(out, *entry)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Total.Equal(out[j].Total) {
			return out[i].Total.GreaterThan(out[j].Total)
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > rankLimit {
		out = out[:rankLimit]
	}
	return out
}
