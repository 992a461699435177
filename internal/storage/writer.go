package storage

import (
	"context"

	"github.com/stephenafamo/bob"

	"github.com/carson-networks/finance-server/internal/storage/account"
	"github.com/carson-networks/finance-server/internal/storage/category"
	"github.com/carson-networks/finance-server/internal/storage/settings"
	"github.com/carson-networks/finance-server/internal/storage/sqlconfig"
	"github.com/carson-networks/finance-server/internal/storage/transaction"
)

// Tx is the transaction a Writer commits or rolls back.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// UnitOfWork opens a Writer whose changes become visible together on Commit or
// not at all.
type UnitOfWork interface {
	Write(ctx context.Context) (*Writer, error)
}

// Writer groups the repositories of one unit of work.
type Writer struct {
	tx           Tx
	Accounts     account.IWriter
	Transactions transaction.IWriter
	Categories   category.IWriter
	Settings     settings.IWriter
}

// NewWriter wires the Postgres repositories onto a bob transaction.
func NewWriter(tx bob.Tx) *Writer {
	return &Writer{
		tx:           bobTx{tx: tx},
		Accounts:     account.NewWriter(tx),
		Transactions: transaction.NewWriter(tx),
		Categories:   category.NewWriter(tx),
		Settings:     settings.NewWriter(tx),
	}
}

// NewWriterFrom builds a Writer from arbitrary repository implementations.
func NewWriterFrom(
	tx Tx,
	accounts account.IWriter,
	transactions transaction.IWriter,
	categories category.IWriter,
	settings settings.IWriter,
) *Writer {
	return &Writer{
		tx:           tx,
		Accounts:     accounts,
		Transactions: transactions,
		Categories:   categories,
		Settings:     settings,
	}
}

func (w *Writer) Commit(ctx context.Context) error {
	return sqlconfig.ClassifyError(w.tx.Commit(ctx))
}

func (w *Writer) Rollback(ctx context.Context) error {
	return w.tx.Rollback(ctx)
}

type bobTx struct {
	tx bob.Tx
}

func (t bobTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t bobTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}
