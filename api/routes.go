package api

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"

	"github.com/ledgerline/books-server/internal/books"
	"github.com/ledgerline/books-server/internal/handlers/v1/liability"
	"github.com/ledgerline/books-server/internal/handlers/v1/payment"
	"github.com/ledgerline/books-server/internal/handlers/v1/report"
	"github.com/ledgerline/books-server/internal/handlers/v1/status"
	"github.com/ledgerline/books-server/internal/handlers/v1/transaction"
	"github.com/ledgerline/books-server/internal/logging"
)

type Rest struct {
	Logger   *logrus.Logger
	Port     string
	Services *books.Services
}

func (r *Rest) Serve() {
	mux := http.NewServeMux()

	statusHandler := status.NewHandler()
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	apiV1 := humago.New(mux, huma.DefaultConfig("books-server", "1.0.0"))

	transaction.NewCreateTransactionHandler(r.Services.Transactions).Register(apiV1)
	transaction.NewListTransactionsHandler(r.Services.Transactions).Register(apiV1)
	transaction.NewUpdateStatusHandler(r.Services.Transactions).Register(apiV1)
	transaction.NewDeleteTransactionHandler(r.Services.Transactions).Register(apiV1)

	payment.NewRecordPaymentHandler(r.Services.Payments).Register(apiV1)
	payment.NewDeletePaymentHandler(r.Services.Payments).Register(apiV1)

	liability.NewCreateLiabilityHandler(r.Services.Liabilities).Register(apiV1)
	liability.NewListLiabilitiesHandler(r.Services.Liabilities).Register(apiV1)
	liability.NewPayLiabilityHandler(r.Services.Liabilities).Register(apiV1)
	liability.NewDeleteLiabilityHandler(r.Services.Liabilities).Register(apiV1)
	liability.NewDeleteLiabilityPaymentHandler(r.Services.Liabilities).Register(apiV1)

	report.NewAgingHandler(r.Services.Reports).Register(apiV1)
	report.NewProfitLossHandler(r.Services.Reports).Register(apiV1)
	report.NewTopCounterpartsHandler(r.Services.Reports).Register(apiV1)
	report.NewTopProductsHandler(r.Services.Reports).Register(apiV1)
	report.NewInventoryHandler(r.Services.Reports).Register(apiV1)

	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           mux,
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	r.Logger.Info("HttpServer.Serve.listening")
	err := server.ListenAndServe()
	if err != nil {
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
	}
	r.Logger.Info("HttpServer.Serve.shutting down")
}
