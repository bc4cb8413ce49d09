package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"

	"github.com/ledgerline/books-server/internal/model"
	"github.com/ledgerline/books-server/internal/store"
)

var (
	_ store.CounterpartTable = (*CounterpartTable)(nil)
	_ store.ProductTable     = (*ProductTable)(nil)
)

// CounterpartTable is the gateway to the clients and suppliers tables,
// selected per call by transaction type.
type CounterpartTable struct {
	exec bob.Executor
}

func NewCounterpartTable(exec bob.Executor) *CounterpartTable {
	return &CounterpartTable{exec: exec}
}

func counterpartColumns() []any {
	return []any{"id", "name", "contact_info", "address"}
}

func (t *CounterpartTable) FindByID(ctx context.Context, typ model.TransactionType, id int64) (*model.Counterpart, error) {
	q := psql.Select(
		sm.Columns(counterpartColumns()...),
		sm.From(model.CounterpartTable(typ)),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	return t.one(ctx, typ, q)
}

// FindByName is the lookup half of get-or-create. Names are matched exactly.
func (t *CounterpartTable) FindByName(ctx context.Context, typ model.TransactionType, name string) (*model.Counterpart, error) {
	q := psql.Select(
		sm.Columns(counterpartColumns()...),
		sm.From(model.CounterpartTable(typ)),
		sm.Where(psql.Quote("name").EQ(psql.Arg(name))),
		sm.Limit(1),
	)
	return t.one(ctx, typ, q)
}

func (t *CounterpartTable) List(ctx context.Context, typ model.TransactionType) ([]*model.Counterpart, error) {
	q := psql.Select(
		sm.Columns(counterpartColumns()...),
		sm.From(model.CounterpartTable(typ)),
		sm.OrderBy("name").Asc(),
		sm.OrderBy("id").Asc(),
	)
	rows, err := collect(bob.All(ctx, t.exec, q, scan.StructMapper[model.Counterpart]()))
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		row.Type = typ
	}
	return rows, nil
}

func (t *CounterpartTable) Insert(ctx context.Context, create *store.CounterpartCreate) (*model.Counterpart, error) {
	q := psql.Insert(
		im.Into(model.CounterpartTable(create.Type), "name", "contact_info", "address"),
		im.Values(psql.Arg(create.Name, create.ContactInfo, create.Address)),
		im.Returning("*"),
	)
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[model.Counterpart]())
	if err != nil {
		return nil, err
	}
	row.Type = create.Type
	return &row, nil
}

func (t *CounterpartTable) one(ctx context.Context, typ model.TransactionType, q bob.Query) (*model.Counterpart, error) {
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[model.Counterpart]())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	row.Type = typ
	return &row, nil
}

// ProductTable is the gateway to the products table.
type ProductTable struct {
	exec bob.Executor
}

func NewProductTable(exec bob.Executor) *ProductTable {
	return &ProductTable{exec: exec}
}

const productTableName = "products"

func productColumns() []any {
	return []any{"id", "name", "model", "unit_price"}
}

func (t *ProductTable) FindByID(ctx context.Context, id int64) (*model.Product, error) {
	q := psql.Select(
		sm.Columns(productColumns()...),
		sm.From(productTableName),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	return t.one(ctx, q)
}

func (t *ProductTable) FindByName(ctx context.Context, name string) (*model.Product, error) {
	q := psql.Select(
		sm.Columns(productColumns()...),
		sm.From(productTableName),
		sm.Where(psql.Quote("name").EQ(psql.Arg(name))),
		sm.Limit(1),
	)
	return t.one(ctx, q)
}

func (t *ProductTable) List(ctx context.Context) ([]*model.Product, error) {
	q := psql.Select(
		sm.Columns(productColumns()...),
		sm.From(productTableName),
		sm.OrderBy("name").Asc(),
		sm.OrderBy("id").Asc(),
	)
	return collect(bob.All(ctx, t.exec, q, scan.StructMapper[model.Product]()))
}

func (t *ProductTable) Insert(ctx context.Context, create *store.ProductCreate) (*model.Product, error) {
	q := psql.Insert(
		im.Into(productTableName, "name", "model", "unit_price"),
		im.Values(psql.Arg(create.Name, create.Model, create.UnitPrice)),
		im.Returning("*"),
	)
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[model.Product]())
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (t *ProductTable) one(ctx context.Context, q bob.Query) (*model.Product, error) {
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[model.Product]())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &row, nil
}
