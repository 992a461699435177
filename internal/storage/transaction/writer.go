package transaction

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/um"

	"github.com/carson-networks/finance-server/internal/domain"
	"github.com/carson-networks/finance-server/internal/storage/sqlconfig"
)

var _ IWriter = (*Writer)(nil)

type Writer struct {
	tx bob.Executor
	Reader
}

func NewWriter(tx bob.Executor) *Writer {
	return &Writer{
		tx: tx,
		Reader: Reader{
			exec: tx,
		},
	}
}

func (w *Writer) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	return w.findOne(ctx, id, true)
}

func (w *Writer) Create(ctx context.Context, tx *domain.Transaction) error {
	query := psql.Insert(
		im.Into(sqlconfig.TransactionsTable,
			"id", "user_id", "description", "amount", "type", "category", "category_id",
			"subcategory", "occurred_at", "status", "notes", "account_id", "created_at", "updated_at",
		),
		im.Values(psql.Arg(
			tx.ID, tx.UserID, tx.Description, tx.Amount, string(tx.Type), tx.Category, toNullUUID(tx.CategoryID),
			tx.Subcategory, tx.Date, string(tx.Status), tx.Notes, toNullUUID(tx.AccountID), tx.CreatedAt, tx.UpdatedAt,
		)),
	)
	_, err := bob.Exec(ctx, w.tx, query)
	return sqlconfig.ClassifyError(err)
}

func (w *Writer) Update(ctx context.Context, tx *domain.Transaction) error {
	query := psql.Update(
		um.Table(sqlconfig.TransactionsTable),
		um.SetCol("description").ToArg(tx.Description),
		um.SetCol("amount").ToArg(tx.Amount),
		um.SetCol("type").ToArg(string(tx.Type)),
		um.SetCol("category").ToArg(tx.Category),
		um.SetCol("category_id").ToArg(toNullUUID(tx.CategoryID)),
		um.SetCol("subcategory").ToArg(tx.Subcategory),
		um.SetCol("occurred_at").ToArg(tx.Date),
		um.SetCol("status").ToArg(string(tx.Status)),
		um.SetCol("notes").ToArg(tx.Notes),
		um.SetCol("account_id").ToArg(toNullUUID(tx.AccountID)),
		um.SetCol("updated_at").ToArg(tx.UpdatedAt),
		um.Where(psql.Quote("id").EQ(psql.Arg(tx.ID))),
	)
	_, err := bob.Exec(ctx, w.tx, query)
	return sqlconfig.ClassifyError(err)
}

func (w *Writer) Delete(ctx context.Context, id uuid.UUID) error {
	query := psql.Delete(
		dm.From(sqlconfig.TransactionsTable),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	_, err := bob.Exec(ctx, w.tx, query)
	return sqlconfig.ClassifyError(err)
}
