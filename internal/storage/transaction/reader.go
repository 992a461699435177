package transaction

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/finance-server/internal/domain"
	"github.com/carson-networks/finance-server/internal/storage/sqlconfig"
)

var _ IReader = (*Reader)(nil)

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

// FindByID returns nil, nil when the transaction does not exist.
func (r *Reader) FindByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	return r.findOne(ctx, id, false)
}

func (r *Reader) findOne(ctx context.Context, id uuid.UUID, forUpdate bool) (*domain.Transaction, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(columns...),
		sm.From(sqlconfig.TransactionsTable),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	}
	if forUpdate {
		queryMods = append(queryMods, sm.ForUpdate())
	}

	row, err := bob.One(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[transactionRow]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, sqlconfig.ClassifyError(err)
	}
	return row.toDomain(), nil
}

// FindByUserAndDateRange returns the user's transactions dated in [start, end).
func (r *Reader) FindByUserAndDateRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*domain.Transaction, error) {
	query := psql.Select(
		sm.Columns(columns...),
		sm.From(sqlconfig.TransactionsTable),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		sm.Where(psql.Quote("occurred_at").GTE(psql.Arg(start))),
		sm.Where(psql.Quote("occurred_at").LT(psql.Arg(end))),
		sm.OrderBy(psql.Quote("occurred_at")).Asc(),
	)
	return r.all(ctx, query)
}

func (r *Reader) List(ctx context.Context, filter *TransactionFilter) ([]*domain.Transaction, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(columns...),
		sm.From(sqlconfig.TransactionsTable),
	}
	if filter != nil {
		queryMods = append(queryMods, sm.Where(psql.Quote("user_id").EQ(psql.Arg(filter.UserID))))
		if filter.AccountID != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("account_id").EQ(psql.Arg(*filter.AccountID))))
		}
		if filter.MaxCreationTime != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("created_at").LTE(psql.Arg(*filter.MaxCreationTime))))
		}
		if filter.Limit > 0 {
			queryMods = append(queryMods, sm.Limit(filter.Limit+1))
		}
		if filter.Offset > 0 {
			queryMods = append(queryMods, sm.Offset(filter.Offset))
		}
	}
	queryMods = append(queryMods,
		sm.OrderBy(psql.Quote("created_at")).Desc(),
		sm.OrderBy(psql.Quote("id")).Desc(),
	)
	return r.all(ctx, psql.Select(queryMods...))
}

func (r *Reader) all(ctx context.Context, query bob.Query) ([]*domain.Transaction, error) {
	rows, err := bob.All(ctx, r.exec, query, scan.StructMapper[transactionRow]())
	if err != nil {
		return nil, sqlconfig.ClassifyError(err)
	}
	result := make([]*domain.Transaction, len(rows))
	for i, row := range rows {
		result[i] = row.toDomain()
	}
	return result, nil
}
