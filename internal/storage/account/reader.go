package account

import (
	"context"
	"database/sql"
	"errors"

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

func (r *Reader) List(ctx context.Context, filter *AccountFilter) (*AccountListResult, error) {
	limit := 20
	offset := 0
	var userID uuid.UUID
	if filter != nil {
		if filter.Limit > 0 {
			limit = filter.Limit
		}
		offset = filter.Offset
		userID = filter.UserID
	}

	query := psql.Select(
		sm.Columns(columns...),
		sm.From(sqlconfig.AccountsTable),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		sm.Limit(limit+1),
		sm.Offset(offset),
		sm.OrderBy(psql.Quote("name")).Asc(),
		sm.OrderBy(psql.Quote("id")).Asc(),
	)
	rows, err := bob.All(ctx, r.exec, query, scan.StructMapper[accountRow]())
	if err != nil {
		return nil, sqlconfig.ClassifyError(err)
	}

	if len(rows) == 0 {
		return &AccountListResult{Accounts: nil, NextCursor: nil}, nil
	}

	var nextCursor *AccountCursor
	if len(rows) > limit {
		rows = rows[:limit]
		nextCursor = &AccountCursor{
			Position: offset + limit,
			Limit:    limit,
		}
	}

	result := make([]*domain.FinancialAccount, len(rows))
	for i, row := range rows {
		result[i] = row.toDomain()
	}
	return &AccountListResult{Accounts: result, NextCursor: nextCursor}, nil
}

func (r *Reader) FindByUserAndID(ctx context.Context, userID, id uuid.UUID) (*domain.FinancialAccount, error) {
	return r.findOne(ctx, userID, id, false)
}

func (r *Reader) findOne(ctx context.Context, userID, id uuid.UUID, forUpdate bool) (*domain.FinancialAccount, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(columns...),
		sm.From(sqlconfig.AccountsTable),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
	}
	if forUpdate {
		queryMods = append(queryMods, sm.ForUpdate())
	}

	row, err := bob.One(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[accountRow]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, sqlconfig.ClassifyError(err)
	}
	return row.toDomain(), nil
}
