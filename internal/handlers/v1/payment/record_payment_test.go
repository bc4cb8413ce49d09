package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ledgerline/books-server/internal/books"
	"github.com/ledgerline/books-server/internal/model"
	"github.com/ledgerline/books-server/internal/store"
)

// mockPaymentService is a mock for paymentService.
type mockPaymentService struct {
	mock.Mock
}

func (m *mockPaymentService) Record(ctx context.Context, input books.RecordPaymentInput) (*model.Payment, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Payment), args.Error(1)
}

func (m *mockPaymentService) Delete(ctx context.Context, paymentID int64) error {
	return m.Called(ctx, paymentID).Error(0)
}

func (m *mockPaymentService) List() []model.Payment {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]model.Payment)
}

// newTestAPI registers the payment handlers against a humatest API.
func newTestAPI(t *testing.T, svc paymentService) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewRecordPaymentHandler(svc).Register(api)
	NewDeletePaymentHandler(svc).Register(api)
	return api
}

func TestHTTP_RecordPayment_Success(t *testing.T) {
	mockSvc := new(mockPaymentService)
	mockSvc.On("Record", mock.Anything, mock.MatchedBy(func(in books.RecordPaymentInput) bool {
		return in.TransactionType == model.TransactionTypeClient &&
			in.TransactionID == 7 &&
			in.Amount.Equal(decimal.RequireFromString("40.00")) &&
			in.Date.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	})).Return(&model.Payment{ID: 5, TransactionID: 7, TransactionType: model.TransactionTypeClient}, nil)

	resp := newTestAPI(t, mockSvc).Post("/v1/payments", RecordPaymentBody{
		TransactionType: "client",
		TransactionID:   7,
		Amount:          "40.00",
		PaymentDate:     "2024-03-01",
	})

	assert.Equal(t, http.StatusCreated, resp.Code)
	var body model.Payment
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, int64(5), body.ID)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_RecordPayment_DateOptional(t *testing.T) {
	mockSvc := new(mockPaymentService)
	mockSvc.On("Record", mock.Anything, mock.MatchedBy(func(in books.RecordPaymentInput) bool {
		return in.Date.IsZero()
	})).Return(&model.Payment{ID: 5}, nil)

	resp := newTestAPI(t, mockSvc).Post("/v1/payments", RecordPaymentBody{
		TransactionType: "supplier",
		TransactionID:   7,
		Amount:          "10.00",
	})

	assert.Equal(t, http.StatusCreated, resp.Code)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_RecordPayment_InvalidAmount(t *testing.T) {
	mockSvc := new(mockPaymentService)

	resp := newTestAPI(t, mockSvc).Post("/v1/payments", RecordPaymentBody{
		TransactionType: "client",
		TransactionID:   7,
		Amount:          "not-a-decimal",
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockSvc.AssertNotCalled(t, "Record")
}

func TestHTTP_RecordPayment_OverpaymentMaps400(t *testing.T) {
	mockSvc := new(mockPaymentService)
	mockSvc.On("Record", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: payment 50 exceeds remaining balance 20", books.ErrValidation))

	resp := newTestAPI(t, mockSvc).Post("/v1/payments", RecordPaymentBody{
		TransactionType: "client",
		TransactionID:   7,
		Amount:          "50.00",
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestHTTP_RecordPayment_UnknownParentMaps404(t *testing.T) {
	mockSvc := new(mockPaymentService)
	mockSvc.On("Record", mock.Anything, mock.Anything).Return(nil, store.ErrNotFound)

	resp := newTestAPI(t, mockSvc).Post("/v1/payments", RecordPaymentBody{
		TransactionType: "client",
		TransactionID:   99,
		Amount:          "10.00",
	})

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestHTTP_DeletePayment_Success(t *testing.T) {
	mockSvc := new(mockPaymentService)
	mockSvc.On("Delete", mock.Anything, int64(5)).Return(nil)

	resp := newTestAPI(t, mockSvc).Delete("/v1/payments/5")

	assert.Equal(t, http.StatusNoContent, resp.Code)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_DeletePayment_ServiceError(t *testing.T) {
	mockSvc := new(mockPaymentService)
	mockSvc.On("Delete", mock.Anything, int64(5)).Return(errors.New("database unavailable"))

	resp := newTestAPI(t, mockSvc).Delete("/v1/payments/5")

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
}
