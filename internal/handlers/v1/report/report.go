package report

import (
	"time"

	"github.com/ledgerline/books-server/internal/model"
	"github.com/ledgerline/books-server/internal/report"
)

const dateLayout = "2006-01-02"

// reportService is the slice of the service layer these handlers use.
type reportService interface {
	Aging(typ model.TransactionType, today time.Time) report.AgingReport
	ProfitLoss(g report.Granularity, rng *report.PLRange) []report.PLPeriod
	TopCounterparts(typ model.TransactionType) []report.RankedEntry
	TopProducts(typ model.TransactionType) []report.RankedEntry
	Inventory() []report.InventoryPosition
}
