package books

import (
	"time"

	"github.com/ledgerline/books-server/internal/cache"
	"github.com/ledgerline/books-server/internal/model"
	"github.com/ledgerline/books-server/internal/report"
)

// ReportService exposes the derived aggregates over the current cache
// snapshots. It holds no state of its own: every call recomputes from
// scratch, which is cheap at the expected data sizes.
type ReportService struct {
	caches *cache.Set
}

// NewReportService creates a new ReportService.
func NewReportService(caches *cache.Set) *ReportService {
	return &ReportService{caches: caches}
}

// Aging buckets outstanding balances for one transaction type: receivables
// for clients, payables for suppliers.
func (s *ReportService) Aging(typ model.TransactionType, today time.Time) report.AgingReport {
	return report.Aging(s.caches.Transactions(typ).Snapshot(), today)
}

// ProfitLoss rolls both ledgers and the liabilities into P&L periods.
func (s *ReportService) ProfitLoss(g report.Granularity, rng *report.PLRange) []report.PLPeriod {
	return report.ProfitLoss(
		s.caches.ClientTransactions.Snapshot(),
		s.caches.SupplierTransactions.Snapshot(),
		s.caches.Liabilities.Snapshot(),
		g, rng,
	)
}

// TopCounterparts ranks clients or suppliers by transaction volume.
func (s *ReportService) TopCounterparts(typ model.TransactionType) []report.RankedEntry {
	return report.TopCounterparts(s.caches.Transactions(typ).Snapshot())
}

// TopProducts ranks products by transaction volume across one ledger.
func (s *ReportService) TopProducts(typ model.TransactionType) []report.RankedEntry {
	return report.TopProducts(s.caches.Transactions(typ).Snapshot())
}

// Inventory derives per-product stock positions from both ledgers.
func (s *ReportService) Inventory() []report.InventoryPosition {
	return report.Inventory(
		s.caches.Products.Snapshot(),
		s.caches.ClientTransactions.Snapshot(),
		s.caches.SupplierTransactions.Snapshot(),
	)
}
