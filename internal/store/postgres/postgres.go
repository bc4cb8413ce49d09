// Package postgres implements the store contract against Postgres: bob/psql
// for query building, lib/pq for the connection and for the LISTEN/NOTIFY
// change stream the migrations install triggers for.
package postgres

import (
	"database/sql"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/stephenafamo/bob"

	"github.com/ledgerline/books-server/internal/config"
	"github.com/ledgerline/books-server/internal/store"
)

// Open connects to Postgres and assembles the table gateways and the change
// listener into a store. Close the returned *sql.DB and Listener on shutdown.
func Open(env *config.Config, logger *logrus.Logger) (*store.Store, *sql.DB, *Listener, error) {
	dsn := env.PostgresDSN()

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, nil, nil, err
	}

	exec := bob.NewDB(db)
	listener := NewListener(dsn, logger)

	st := &store.Store{
		Transactions:      NewTransactionTable(exec),
		Payments:          NewPaymentTable(exec),
		Liabilities:       NewLiabilityTable(exec),
		LiabilityPayments: NewLiabilityPaymentTable(exec),
		Counterparts:      NewCounterpartTable(exec),
		Products:          NewProductTable(exec),
		Notifier:          listener,
	}
	return st, db, listener, nil
}
