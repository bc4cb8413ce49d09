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
	"github.com/stephenafamo/scan"

	"github.com/ledgerline/books-server/internal/model"
	"github.com/ledgerline/books-server/internal/store"
)

var (
	_ store.LiabilityTable        = (*LiabilityTable)(nil)
	_ store.LiabilityPaymentTable = (*LiabilityPaymentTable)(nil)
)

// LiabilityTable is the gateway to the liabilities table.
type LiabilityTable struct {
	exec bob.Executor
}

func NewLiabilityTable(exec bob.Executor) *LiabilityTable {
	return &LiabilityTable{exec: exec}
}

const liabilityTableName = "liabilities"

func liabilityColumns() []any {
	return []any{
		"id", "category", "custom_category", "description",
		"total_amount", "paid_amount", "remaining_amount", "due_date", "recurring",
	}
}

func (t *LiabilityTable) FindByID(ctx context.Context, id int64) (*model.Liability, error) {
	q := psql.Select(
		sm.Columns(liabilityColumns()...),
		sm.From(liabilityTableName),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[model.Liability]())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (t *LiabilityTable) List(ctx context.Context) ([]*model.Liability, error) {
	q := psql.Select(
		sm.Columns(liabilityColumns()...),
		sm.From(liabilityTableName),
		sm.OrderBy("id").Desc(),
	)
	return collect(bob.All(ctx, t.exec, q, scan.StructMapper[model.Liability]()))
}

func (t *LiabilityTable) Insert(ctx context.Context, create *store.LiabilityCreate) (*model.Liability, error) {
	q := psql.Insert(
		im.Into(liabilityTableName,
			"category", "custom_category", "description",
			"total_amount", "paid_amount", "remaining_amount", "due_date", "recurring",
		),
		im.Values(psql.Arg(
			string(create.Category), create.CustomCategory, create.Description,
			create.TotalAmount, create.PaidAmount, create.RemainingAmount,
			create.DueDate, create.Recurring,
		)),
		im.Returning("*"),
	)
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[model.Liability]())
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (t *LiabilityTable) Update(ctx context.Context, id int64, patch *store.LiabilityPatch) error {
	queryMods := []bob.Mod[*dialect.UpdateQuery]{
		um.Table(liabilityTableName),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	}
	if patch.PaidAmount != nil {
		queryMods = append(queryMods, um.SetCol("paid_amount").ToArg(*patch.PaidAmount))
	}
	if patch.RemainingAmount != nil {
		queryMods = append(queryMods, um.SetCol("remaining_amount").ToArg(*patch.RemainingAmount))
	}
	if patch.Description != nil {
		queryMods = append(queryMods, um.SetCol("description").ToArg(*patch.Description))
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

func (t *LiabilityTable) Delete(ctx context.Context, id int64) error {
	q := psql.Delete(
		dm.From(liabilityTableName),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	result, err := bob.Exec(ctx, t.exec, q)
	if err != nil {
		return err
	}
	return oneRowAffected(result)
}

// LiabilityPaymentTable is the gateway to the liability_payments table.
type LiabilityPaymentTable struct {
	exec bob.Executor
}

func NewLiabilityPaymentTable(exec bob.Executor) *LiabilityPaymentTable {
	return &LiabilityPaymentTable{exec: exec}
}

const liabilityPaymentTableName = "liability_payments"

func liabilityPaymentColumns() []any {
	return []any{"payment_id", "liability_id", "payment_amount", "payment_date"}
}

func (t *LiabilityPaymentTable) FindByID(ctx context.Context, id int64) (*model.LiabilityPayment, error) {
	q := psql.Select(
		sm.Columns(liabilityPaymentColumns()...),
		sm.From(liabilityPaymentTableName),
		sm.Where(psql.Quote("payment_id").EQ(psql.Arg(id))),
	)
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[model.LiabilityPayment]())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (t *LiabilityPaymentTable) ListByLiability(ctx context.Context, liabilityID int64) ([]*model.LiabilityPayment, error) {
	q := psql.Select(
		sm.Columns(liabilityPaymentColumns()...),
		sm.From(liabilityPaymentTableName),
		sm.Where(psql.Quote("liability_id").EQ(psql.Arg(liabilityID))),
		sm.OrderBy("payment_date").Desc(),
		sm.OrderBy("payment_id").Desc(),
	)
	return collect(bob.All(ctx, t.exec, q, scan.StructMapper[model.LiabilityPayment]()))
}

func (t *LiabilityPaymentTable) List(ctx context.Context) ([]*model.LiabilityPayment, error) {
	q := psql.Select(
		sm.Columns(liabilityPaymentColumns()...),
		sm.From(liabilityPaymentTableName),
		sm.OrderBy("payment_id").Desc(),
	)
	return collect(bob.All(ctx, t.exec, q, scan.StructMapper[model.LiabilityPayment]()))
}

func (t *LiabilityPaymentTable) Insert(ctx context.Context, create *store.LiabilityPaymentCreate) (*model.LiabilityPayment, error) {
	q := psql.Insert(
		im.Into(liabilityPaymentTableName, "liability_id", "payment_amount", "payment_date"),
		im.Values(psql.Arg(create.LiabilityID, create.Amount, create.Date)),
		im.Returning("*"),
	)
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[model.LiabilityPayment]())
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (t *LiabilityPaymentTable) Delete(ctx context.Context, id int64) error {
	q := psql.Delete(
		dm.From(liabilityPaymentTableName),
		dm.Where(psql.Quote("payment_id").EQ(psql.Arg(id))),
	)
	result, err := bob.Exec(ctx, t.exec, q)
	if err != nil {
		return err
	}
	return oneRowAffected(result)
}

func (t *LiabilityPaymentTable) DeleteByLiability(ctx context.Context, liabilityID int64) error {
	q := psql.Delete(
		dm.From(liabilityPaymentTableName),
		dm.Where(psql.Quote("liability_id").EQ(psql.Arg(liabilityID))),
	)
	_, err := bob.Exec(ctx, t.exec, q)
	return err
}
