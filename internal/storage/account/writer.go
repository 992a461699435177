package account

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
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

// FindByUserAndIDForUpdate row-locks the account until the unit of work ends.
func (w *Writer) FindByUserAndIDForUpdate(ctx context.Context, userID, id uuid.UUID) (*domain.FinancialAccount, error) {
	return w.findOne(ctx, userID, id, true)
}

func (w *Writer) Create(ctx context.Context, account *domain.FinancialAccount) error {
	query := psql.Insert(
		im.Into(sqlconfig.AccountsTable,
			"id", "user_id", "name", "type", "initial_balance", "current_balance", "active", "created_at", "updated_at",
		),
		im.Values(psql.Arg(
			account.ID, account.UserID, account.Name, int16(account.Type), account.InitialBalance,
			account.CurrentBalance, account.Active, account.CreatedAt, account.UpdatedAt,
		)),
	)
	_, err := bob.Exec(ctx, w.tx, query)
	return sqlconfig.ClassifyError(err)
}

func (w *Writer) Update(ctx context.Context, account *domain.FinancialAccount) error {
	query := psql.Update(
		um.Table(sqlconfig.AccountsTable),
		um.SetCol("name").ToArg(account.Name),
		um.SetCol("type").ToArg(int16(account.Type)),
		um.SetCol("current_balance").ToArg(account.CurrentBalance),
		um.SetCol("active").ToArg(account.Active),
		um.SetCol("updated_at").ToArg(account.UpdatedAt),
		um.Where(psql.Quote("id").EQ(psql.Arg(account.ID))),
	)
	_, err := bob.Exec(ctx, w.tx, query)
	return sqlconfig.ClassifyError(err)
}
