package main

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/ledgerline/books-server/api"
	"github.com/ledgerline/books-server/internal/apply"
	"github.com/ledgerline/books-server/internal/books"
	"github.com/ledgerline/books-server/internal/cache"
	"github.com/ledgerline/books-server/internal/config"
	"github.com/ledgerline/books-server/internal/logging"
	"github.com/ledgerline/books-server/internal/reconcile"
	"github.com/ledgerline/books-server/internal/store"
	"github.com/ledgerline/books-server/internal/store/postgres"
)

const applyQueueSize = 256

func main() {
	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}

	logger := logging.SetupLogging(envConfig.LogLevel)
	logger.Info("books-server starting")

	st, db, listener, err := postgres.Open(envConfig, logger)
	if err != nil {
		logger.WithError(err).Fatal("postgres.Open")
		return
	}
	defer db.Close()

	caches := cache.NewSet()
	if err := caches.Warm(context.Background(), st); err != nil {
		logger.WithError(err).Fatal("cache.Warm")
		return
	}

	queue := apply.NewQueue(applyQueueSize)
	queue.Start()
	defer queue.Stop()

	rec := reconcile.New(caches, reconcile.NewStoreFetcher(st), queue, logger)
	for _, table := range []store.Table{
		store.TableClients,
		store.TableSuppliers,
		store.TableProducts,
		store.TableClientTransactions,
		store.TableSupplierTransactions,
		store.TablePayments,
		store.TableLiabilities,
		store.TableLiabilityPayments,
	} {
		st.Notifier.Subscribe(table, rec.Handle)
	}
	if err := listener.Start(); err != nil {
		logger.WithError(err).Fatal("listener.Start")
		return
	}
	defer listener.Close()

	svc := books.NewServices(st, caches, queue, logger)

	wg := sync.WaitGroup{}
	wg.Add(1)

	go func() {
		httpRest := api.Rest{
			Logger:   logger,
			Port:     envConfig.HTTPPort,
			Services: svc,
		}
		httpRest.Serve()
	}()

	wg.Wait()
}
