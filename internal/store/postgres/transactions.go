package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/bob/mods"
	"github.com/stephenafamo/scan"

	"github.com/ledgerline/books-server/internal/model"
	"github.com/ledgerline/books-server/internal/store"
)

var _ store.TransactionTable = (*TransactionTable)(nil)

// TransactionTable is the gateway to client_transactions and
// supplier_transactions. Reads join counterparts and products so cached rows
// carry the denormalized names list views need.
type TransactionTable struct {
	exec bob.Executor
}

func NewTransactionTable(exec bob.Executor) *TransactionTable {
	return &TransactionTable{exec: exec}
}

func transactionColumns() []any {
	return []any{
		psql.Quote("t", "transaction_id"),
		psql.Quote("t", "counterpart_id"),
		psql.Quote("c", "name").As("counterpart_name"),
		psql.Quote("t", "product_id"),
		psql.Quote("p", "name").As("product_name"),
		psql.Quote("t", "quantity"),
		psql.Quote("t", "unit_price"),
		psql.Quote("t", "total_amount"),
		psql.Quote("t", "paid_amount"),
		psql.Quote("t", "remaining_amount"),
		psql.Quote("t", "transaction_date"),
		psql.Quote("t", "due_date"),
		psql.Quote("t", "status"),
	}
}

func (t *TransactionTable) selectJoined(typ model.TransactionType, where ...mods.Where[*dialect.SelectQuery]) bob.BaseQuery[*dialect.SelectQuery] {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(transactionColumns()...),
		sm.From(typ.Table()).As("t"),
		sm.InnerJoin(model.CounterpartTable(typ)).As("c").
			On(psql.Quote("c", "id").EQ(psql.Quote("t", "counterpart_id"))),
		sm.InnerJoin("products").As("p").
			On(psql.Quote("p", "id").EQ(psql.Quote("t", "product_id"))),
	}
	if len(where) == 1 {
		queryMods = append(queryMods, where[0])
	} else if len(where) > 1 {
		queryMods = append(queryMods, psql.WhereAnd(where...))
	}
	queryMods = append(queryMods,
		sm.OrderBy(psql.Quote("t", "transaction_date")).Desc(),
		sm.OrderBy(psql.Quote("t", "transaction_id")).Desc(),
	)
	return psql.Select(queryMods...)
}

// FindByID retrieves the joined representation of a single transaction.
func (t *TransactionTable) FindByID(ctx context.Context, typ model.TransactionType, id int64) (*model.Transaction, error) {
	q := t.selectJoined(typ, sm.Where(psql.Quote("t", "transaction_id").EQ(psql.Arg(id))))
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[model.Transaction]())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	row.Type = typ
	return &row, nil
}

// List returns joined transactions matching the filter. Nil filter returns all.
func (t *TransactionTable) List(ctx context.Context, typ model.TransactionType, filter *store.TransactionFilter) ([]*model.Transaction, error) {
	var whereMods []mods.Where[*dialect.SelectQuery]
	if filter != nil {
		if filter.CounterpartID != nil {
			whereMods = append(whereMods, sm.Where(psql.Quote("t", "counterpart_id").EQ(psql.Arg(*filter.CounterpartID))))
		}
		if filter.ProductID != nil {
			whereMods = append(whereMods, sm.Where(psql.Quote("t", "product_id").EQ(psql.Arg(*filter.ProductID))))
		}
		if filter.Status != nil {
			whereMods = append(whereMods, sm.Where(psql.Quote("t", "status").EQ(psql.Arg(string(*filter.Status)))))
		}
		if filter.From != nil {
			whereMods = append(whereMods, sm.Where(psql.Quote("t", "transaction_date").GTE(psql.Arg(*filter.From))))
		}
		if filter.To != nil {
			whereMods = append(whereMods, sm.Where(psql.Quote("t", "transaction_date").LTE(psql.Arg(*filter.To))))
		}
	}

	rows, err := bob.All(ctx, t.exec, t.selectJoined(typ, whereMods...), scan.StructMapper[model.Transaction]())
	if err != nil {
		return nil, err
	}
	out := make([]*model.Transaction, len(rows))
	for i := range rows {
		rows[i].Type = typ
		out[i] = &rows[i]
	}
	return out, nil
}

// Insert creates a transaction and returns its joined representation.
func (t *TransactionTable) Insert(ctx context.Context, create *store.TransactionCreate) (*model.Transaction, error) {
	q := psql.Insert(
		im.Into(create.Type.Table(),
			"counterpart_id", "product_id", "quantity", "unit_price",
			"total_amount", "paid_amount", "remaining_amount",
			"transaction_date", "due_date", "status",
		),
		im.Values(psql.Arg(
			create.CounterpartID, create.ProductID, create.Quantity, create.UnitPrice,
			create.TotalAmount, create.PaidAmount, create.RemainingAmount,
			create.Date, create.DueDate, string(create.Status),
		)),
		im.Returning("transaction_id"),
	)
	id, err := bob.One(ctx, t.exec, q, scan.SingleColumnMapper[int64])
	if err != nil {
		return nil, err
	}
	return t.FindByID(ctx, create.Type, id)
}

// Update patches a transaction; paid and remaining always travel together.
// Returns ErrNotFound when no row matched.
func (t *TransactionTable) Update(ctx context.Context, typ model.TransactionType, id int64, patch *store.TransactionPatch) error {
	queryMods := []bob.Mod[*dialect.UpdateQuery]{
		um.Table(typ.Table()),
		um.Where(psql.Quote("transaction_id").EQ(psql.Arg(id))),
	}
	if patch.PaidAmount != nil {
		queryMods = append(queryMods, um.SetCol("paid_amount").ToArg(*patch.PaidAmount))
	}
	if patch.RemainingAmount != nil {
		queryMods = append(queryMods, um.SetCol("remaining_amount").ToArg(*patch.RemainingAmount))
	}
	if patch.Status != nil {
		queryMods = append(queryMods, um.SetCol("status").ToArg(string(*patch.Status)))
	}
	if patch.DueDate != nil {
		queryMods = append(queryMods, um.SetCol("due_date").ToArg(*patch.DueDate))
	}

	result, err := bob.Exec(ctx, t.exec, psql.Update(queryMods...))
	if err != nil {
		return err
	}
	return oneRowAffected(result)
}

// Delete removes a transaction row.
func (t *TransactionTable) Delete(ctx context.Context, typ model.TransactionType, id int64) error {
	q := psql.Delete(
		dm.From(typ.Table()),
		dm.Where(psql.Quote("transaction_id").EQ(psql.Arg(id))),
	)
	result, err := bob.Exec(ctx, t.exec, q)
	if err != nil {
		return err
	}
	return oneRowAffected(result)
}

func oneRowAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
