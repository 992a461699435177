package settings

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/finance-server/internal/domain"
	"github.com/carson-networks/finance-server/internal/storage/sqlconfig"
)

type IReader interface {
	// FindByUserID returns nil, nil when the user has not configured settings.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserFinanceSettings, error)
}

type IWriter interface {
	IReader
	Upsert(ctx context.Context, settings *domain.UserFinanceSettings) error
}

var (
	_ IReader = (*Reader)(nil)
	_ IWriter = (*Writer)(nil)
)

type settingsRow struct {
	UserID      uuid.UUID       `db:"user_id"`
	Salary      decimal.Decimal `db:"salary"`
	Fixed       int             `db:"fixed_percent"`
	Variable    int             `db:"variable_percent"`
	Investments int             `db:"investments_percent"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

func (r *Reader) FindByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserFinanceSettings, error) {
	query := psql.Select(
		sm.Columns("user_id", "salary", "fixed_percent", "variable_percent", "investments_percent", "updated_at"),
		sm.From(sqlconfig.SettingsTable),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
	)
	row, err := bob.One(ctx, r.exec, query, scan.StructMapper[settingsRow]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, sqlconfig.ClassifyError(err)
	}
	return &domain.UserFinanceSettings{
		UserID:      row.UserID,
		Salary:      row.Salary,
		Fixed:       row.Fixed,
		Variable:    row.Variable,
		Investments: row.Investments,
		UpdatedAt:   row.UpdatedAt,
	}, nil
}

type Writer struct {
	tx bob.Executor
	Reader
}

func NewWriter(tx bob.Executor) *Writer {
	return &Writer{tx: tx, Reader: Reader{exec: tx}}
}

func (w *Writer) Upsert(ctx context.Context, s *domain.UserFinanceSettings) error {
	query := psql.Insert(
		im.Into(sqlconfig.SettingsTable,
			"user_id", "salary", "fixed_percent", "variable_percent", "investments_percent", "updated_at",
		),
		im.Values(psql.Arg(s.UserID, s.Salary, s.Fixed, s.Variable, s.Investments, s.UpdatedAt)),
		im.OnConflict("user_id").DoUpdate(
			im.SetExcluded("salary", "fixed_percent", "variable_percent", "investments_percent", "updated_at"),
		),
	)
	_, err := bob.Exec(ctx, w.tx, query)
	return sqlconfig.ClassifyError(err)
}
