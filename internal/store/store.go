package store

import (
	"encoding/json"
	"errors"
)

// Table names the logical tables the application consumes from the remote
// store. The two transaction tables carry independent identifier sequences;
// payment rows disambiguate their parent with a transaction_type column.
type Table string

const (
	TableClients              Table = "clients"
	TableSuppliers            Table = "suppliers"
	TableProducts             Table = "products"
	TableClientTransactions   Table = "client_transactions"
	TableSupplierTransactions Table = "supplier_transactions"
	TablePayments             Table = "payments"
	TableLiabilities          Table = "liabilities"
	TableLiabilityPayments    Table = "liability_payments"
)

type Op string

const (
	OpInsert Op = "INSERT"
	OpUpdate Op = "UPDATE"
	OpDelete Op = "DELETE"
)

// ChangeEvent is one committed change delivered by the store's notification
// stream. Delivery is at-least-once with no ordering guarantee relative to
// the subscriber's own writes. Row payloads stay raw: the reconciler only
// decodes the identifier and discriminator, then re-fetches the joined row.
type ChangeEvent struct {
	Table Table           `json:"table"`
	Op    Op              `json:"op"`
	New   json.RawMessage `json:"new,omitempty"`
	Old   json.RawMessage `json:"old,omitempty"`
}

// Row returns the payload carrying the identifier: the new row for inserts
// and updates, the old row for deletes.
func (e ChangeEvent) Row() json.RawMessage {
	if e.Op == OpDelete {
		return e.Old
	}
	return e.New
}

// ErrNotFound is returned by gateways when no row matches.
var ErrNotFound = errors.New("store: row not found")

// Unsubscribe releases a change-stream subscription.
type Unsubscribe func()

// Notifier is the subscribe-to-table-changes primitive of the remote store.
type Notifier interface {
	Subscribe(table Table, fn func(ChangeEvent)) Unsubscribe
}

// Store aggregates the typed table gateways and the change notifier. It is
// the application's only external dependency.
type Store struct {
	Transactions      TransactionTable
	Payments          PaymentTable
	Liabilities       LiabilityTable
	LiabilityPayments LiabilityPaymentTable
	Counterparts      CounterpartTable
	Products          ProductTable
	Notifier          Notifier
}
