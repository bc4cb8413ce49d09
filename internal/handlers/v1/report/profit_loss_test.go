package report

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ledgerline/books-server/internal/model"
	"github.com/ledgerline/books-server/internal/report"
)

// mockReportService is a mock for reportService.
type mockReportService struct {
	mock.Mock
}

func (m *mockReportService) Aging(typ model.TransactionType, today time.Time) report.AgingReport {
	args := m.Called(typ, today)
	return args.Get(0).(report.AgingReport)
}

func (m *mockReportService) ProfitLoss(g report.Granularity, rng *report.PLRange) []report.PLPeriod {
	args := m.Called(g, rng)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]report.PLPeriod)
}

func (m *mockReportService) TopCounterparts(typ model.TransactionType) []report.RankedEntry {
	args := m.Called(typ)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]report.RankedEntry)
}

func (m *mockReportService) TopProducts(typ model.TransactionType) []report.RankedEntry {
	args := m.Called(typ)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]report.RankedEntry)
}

func (m *mockReportService) Inventory() []report.InventoryPosition {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]report.InventoryPosition)
}

// newTestAPI registers every report handler against a humatest API.
func newTestAPI(t *testing.T, svc reportService) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewAgingHandler(svc).Register(api)
	NewProfitLossHandler(svc).Register(api)
	NewTopCounterpartsHandler(svc).Register(api)
	NewTopProductsHandler(svc).Register(api)
	NewInventoryHandler(svc).Register(api)
	return api
}

func TestHTTP_ProfitLoss_DefaultsToMonthly(t *testing.T) {
	mockSvc := new(mockReportService)
	mockSvc.On("ProfitLoss", report.Monthly, (*report.PLRange)(nil)).
		Return([]report.PLPeriod{{Period: "2024-03", Revenue: decimal.RequireFromString("500.00")}})

	resp := newTestAPI(t, mockSvc).Get("/v1/reports/profit-loss")

	assert.Equal(t, http.StatusOK, resp.Code)
	var body struct {
		Periods []report.PLPeriod `json:"periods"`
	}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Periods, 1)
	assert.Equal(t, "2024-03", body.Periods[0].Period)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_ProfitLoss_CustomRangeParsed(t *testing.T) {
	mockSvc := new(mockReportService)
	mockSvc.On("ProfitLoss", report.Custom, mock.MatchedBy(func(rng *report.PLRange) bool {
		return rng != nil &&
			rng.From.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) &&
			rng.To.Equal(time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC))
	})).Return([]report.PLPeriod{})

	resp := newTestAPI(t, mockSvc).Get("/v1/reports/profit-loss?granularity=custom&from=2024-01-01&to=2024-03-31")

	assert.Equal(t, http.StatusOK, resp.Code)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_ProfitLoss_CustomRequiresRange(t *testing.T) {
	mockSvc := new(mockReportService)

	resp := newTestAPI(t, mockSvc).Get("/v1/reports/profit-loss?granularity=custom")

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockSvc.AssertNotCalled(t, "ProfitLoss")
}

func TestHTTP_ProfitLoss_ReversedRangeRejected(t *testing.T) {
	mockSvc := new(mockReportService)

	resp := newTestAPI(t, mockSvc).Get("/v1/reports/profit-loss?granularity=custom&from=2024-03-31&to=2024-01-01")

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockSvc.AssertNotCalled(t, "ProfitLoss")
}

func TestHTTP_ProfitLoss_UnknownGranularityRejected(t *testing.T) {
	mockSvc := new(mockReportService)

	// enum tag rejects before the handler runs.
	resp := newTestAPI(t, mockSvc).Get("/v1/reports/profit-loss?granularity=weekly")

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	mockSvc.AssertNotCalled(t, "ProfitLoss")
}

func TestHTTP_Aging_RequiresType(t *testing.T) {
	mockSvc := new(mockReportService)

	resp := newTestAPI(t, mockSvc).Get("/v1/reports/aging")

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	mockSvc.AssertNotCalled(t, "Aging")
}

func TestHTTP_Aging_Success(t *testing.T) {
	mockSvc := new(mockReportService)
	mockSvc.On("Aging", model.TransactionTypeClient, mock.Anything).
		Return(report.AgingReport{
			Current:     decimal.RequireFromString("30.00"),
			Days1To30:   decimal.Zero,
			Days31To60:  decimal.RequireFromString("100.00"),
			Days61To90:  decimal.Zero,
			Over90:      decimal.Zero,
			Outstanding: 2,
		})

	resp := newTestAPI(t, mockSvc).Get("/v1/reports/aging?type=client")

	assert.Equal(t, http.StatusOK, resp.Code)
	var body report.AgingReport
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 2, body.Outstanding)
	assert.True(t, body.Days31To60.Equal(decimal.RequireFromString("100.00")))
	mockSvc.AssertExpectations(t)
}

func TestHTTP_TopCounterparts_Success(t *testing.T) {
	mockSvc := new(mockReportService)
	mockSvc.On("TopCounterparts", model.TransactionTypeSupplier).
		Return([]report.RankedEntry{{ID: 1, Name: "Acme", Total: decimal.RequireFromString("150.00")}})

	resp := newTestAPI(t, mockSvc).Get("/v1/reports/top-counterparts?type=supplier")

	assert.Equal(t, http.StatusOK, resp.Code)
	var body struct {
		Entries []report.RankedEntry `json:"entries"`
	}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Entries, 1)
	assert.Equal(t, "Acme", body.Entries[0].Name)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_Inventory_Success(t *testing.T) {
	mockSvc := new(mockReportService)
	mockSvc.On("Inventory").Return([]report.InventoryPosition{
		{ProductID: 1, Name: "Widget", CurrentStock: 6, MarginAvailable: true},
	})

	resp := newTestAPI(t, mockSvc).Get("/v1/reports/inventory")

	assert.Equal(t, http.StatusOK, resp.Code)
	var body struct {
		Positions []report.InventoryPosition `json:"positions"`
	}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Positions, 1)
	assert.Equal(t, int64(6), body.Positions[0].CurrentStock)
	mockSvc.AssertExpectations(t)
}
