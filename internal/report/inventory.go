package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/ledgerline/books-server/internal/model"
)

// InventoryPosition is the derived stock view for one product. Supplier
// transactions move stock in, client transactions move it out. Margin is only
// meaningful when both weighted averages are positive; MarginAvailable guards
// against reporting a misleading number.
type InventoryPosition struct {
	ProductID       int64           `json:"productID"`
	Name            string          `json:"name"`
	StockIn         int64           `json:"stockIn"`
	StockOut        int64           `json:"stockOut"`
	CurrentStock    int64           `json:"currentStock"`
	AvgBuyPrice     decimal.Decimal `json:"avgBuyPrice"`
	AvgSellPrice    decimal.Decimal `json:"avgSellPrice"`
	Margin          decimal.Decimal `json:"margin"`
	MarginAvailable bool            `json:"marginAvailable"`
}

// Inventory folds both transaction caches into per-product stock positions,
// sorted by product name. Products with no movement still get a row.
func Inventory(products []model.Product, clients, suppliers []model.Transaction) []InventoryPosition {
	positions := make(map[int64]*InventoryPosition, len(products))
	for _, p := range products {
		positions[p.ID] = &InventoryPosition{
			ProductID:    p.ID,
			Name:         p.Name,
			AvgBuyPrice:  decimal.Zero,
			AvgSellPrice: decimal.Zero,
			Margin:       decimal.Zero,
		}
	}

	buyTotals := make(map[int64]decimal.Decimal)
	sellTotals := make(map[int64]decimal.Decimal)

	for _, t := range suppliers {
		p, ok := positions[t.ProductID]
		if !ok {
			continue
		}
		p.StockIn += t.Quantity
		buyTotals[t.ProductID] = buyTotals[t.ProductID].Add(t.TotalAmount)
	}
	for _, t := range clients {
		p, ok := positions[t.ProductID]
		if !ok {
			continue
		}
		p.StockOut += t.Quantity
		sellTotals[t.ProductID] = sellTotals[t.ProductID].Add(t.TotalAmount)
	}

	out := make([]InventoryPosition, 0, len(positions))
	for id, p := range positions {
		p.CurrentStock = p.StockIn - p.StockOut
		if p.StockIn > 0 {
			p.AvgBuyPrice = buyTotals[id].Div(decimal.NewFromInt(p.StockIn))
		}
		if p.StockOut > 0 {
			p.AvgSellPrice = sellTotals[id].Div(decimal.NewFromInt(p.StockOut))
		}
		if p.AvgBuyPrice.IsPositive() && p.AvgSellPrice.IsPositive() {
			p.Margin = p.AvgSellPrice.Sub(p.AvgBuyPrice).Div(p.AvgSellPrice).Mul(decimal.NewFromInt(100))
			p.MarginAvailable = true
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
