package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"

	"github.com/ledgerline/books-server/internal/model"
	"github.com/ledgerline/books-server/internal/store"
)

var _ store.PaymentTable = (*PaymentTable)(nil)

// PaymentTable is the gateway to the payments table. Rows name their parent
// by (transaction_type, transaction_id); deletes scoped to a parent always
// filter on both.
type PaymentTable struct {
	exec bob.Executor
}

func NewPaymentTable(exec bob.Executor) *PaymentTable {
	return &PaymentTable{exec: exec}
}

const paymentTableName = "payments"

func paymentColumns() []any {
	return []any{"payment_id", "transaction_id", "transaction_type", "payment_amount", "payment_date"}
}

func (t *PaymentTable) FindByID(ctx context.Context, id int64) (*model.Payment, error) {
	q := psql.Select(
		sm.Columns(paymentColumns()...),
		sm.From(paymentTableName),
		sm.Where(psql.Quote("payment_id").EQ(psql.Arg(id))),
	)
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[model.Payment]())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (t *PaymentTable) ListByTransaction(ctx context.Context, typ model.TransactionType, transactionID int64) ([]*model.Payment, error) {
	q := psql.Select(
		sm.Columns(paymentColumns()...),
		sm.From(paymentTableName),
		psql.WhereAnd(
			sm.Where(psql.Quote("transaction_type").EQ(psql.Arg(string(typ)))),
			sm.Where(psql.Quote("transaction_id").EQ(psql.Arg(transactionID))),
		),
		sm.OrderBy("payment_date").Desc(),
		sm.OrderBy("payment_id").Desc(),
	)
	return collect(bob.All(ctx, t.exec, q, scan.StructMapper[model.Payment]()))
}

func (t *PaymentTable) List(ctx context.Context) ([]*model.Payment, error) {
	q := psql.Select(
		sm.Columns(paymentColumns()...),
		sm.From(paymentTableName),
		sm.OrderBy("payment_id").Desc(),
	)
	return collect(bob.All(ctx, t.exec, q, scan.StructMapper[model.Payment]()))
}

func (t *PaymentTable) Insert(ctx context.Context, create *store.PaymentCreate) (*model.Payment, error) {
	q := psql.Insert(
		im.Into(paymentTableName, "transaction_id", "transaction_type", "payment_amount", "payment_date"),
		im.Values(psql.Arg(create.TransactionID, string(create.TransactionType), create.Amount, create.Date)),
		im.Returning("*"),
	)
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[model.Payment]())
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (t *PaymentTable) Delete(ctx context.Context, id int64) error {
	q := psql.Delete(
		dm.From(paymentTableName),
		dm.Where(psql.Quote("payment_id").EQ(psql.Arg(id))),
	)
	result, err := bob.Exec(ctx, t.exec, q)
	if err != nil {
		return err
	}
	return oneRowAffected(result)
}

// DeleteByTransaction removes every payment of one parent. Zero matches is
// fine here: a transaction may have no payments yet.
func (t *PaymentTable) DeleteByTransaction(ctx context.Context, typ model.TransactionType, transactionID int64) error {
	q := psql.Delete(
		dm.From(paymentTableName),
		dm.Where(psql.Quote("transaction_type").EQ(psql.Arg(string(typ)))),
		dm.Where(psql.Quote("transaction_id").EQ(psql.Arg(transactionID))),
	)
	_, err := bob.Exec(ctx, t.exec, q)
	return err
}

// collect converts a scanned value slice into the pointer slice the gateway
// interfaces return.
func collect[T any](rows []T, err error) ([]*T, error) {
	if err != nil {
		return nil, err
	}
	out := make([]*T, len(rows))
	for i := range rows {
		out[i] = &rows[i]
	}
	return out, nil
}
