package model

import "github.com/shopspring/decimal"

// Product is a catalog entry, created on demand like counterparts.
type Product struct {
	ID        int64           `db:"id" json:"id"`
	Name      string          `db:"name" json:"name"`
	Model     string          `db:"model" json:"model,omitempty"`
	UnitPrice decimal.Decimal `db:"unit_price" json:"unitPrice"`
}

// Key implements cache.Entry.
func (p Product) Key() int64 { return p.ID }
