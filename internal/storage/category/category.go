package category

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/finance-server/internal/domain"
	"github.com/carson-networks/finance-server/internal/storage/sqlconfig"
)

var (
	_ IReader = (*Reader)(nil)
	_ IWriter = (*Writer)(nil)
)

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

func (r *Reader) FindByUser(ctx context.Context, userID uuid.UUID) ([]*domain.FinancialCategory, error) {
	query := psql.Select(
		sm.Columns("id", "user_id", "name", "type", "rule_category", "created_at"),
		sm.From(sqlconfig.CategoriesTable),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		sm.OrderBy(psql.Quote("name")).Asc(),
	)
	rows, err := bob.All(ctx, r.exec, query, scan.StructMapper[categoryRow]())
	if err != nil {
		return nil, sqlconfig.ClassifyError(err)
	}
	result := make([]*domain.FinancialCategory, len(rows))
	for i, row := range rows {
		result[i] = row.toDomain()
	}
	return result, nil
}

type Writer struct {
	tx bob.Executor
	Reader
}

func NewWriter(tx bob.Executor) *Writer {
	return &Writer{tx: tx, Reader: Reader{exec: tx}}
}

func (w *Writer) Create(ctx context.Context, category *domain.FinancialCategory) error {
	query := psql.Insert(
		im.Into(sqlconfig.CategoriesTable, "id", "user_id", "name", "type", "rule_category", "created_at"),
		im.Values(psql.Arg(
			category.ID, category.UserID, category.Name, string(category.Type),
			string(category.RuleCategory), category.CreatedAt,
		)),
	)
	_, err := bob.Exec(ctx, w.tx, query)
	return sqlconfig.ClassifyError(err)
}
