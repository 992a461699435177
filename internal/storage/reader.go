package storage

import (
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/finance-server/internal/storage/account"
	"github.com/carson-networks/finance-server/internal/storage/category"
	"github.com/carson-networks/finance-server/internal/storage/settings"
	"github.com/carson-networks/finance-server/internal/storage/transaction"
)

// Reader groups the read-only repositories. It sees committed state only.
type Reader struct {
	Accounts     account.IReader
	Transactions transaction.IReader
	Categories   category.IReader
	Settings     settings.IReader
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{
		Accounts:     account.NewReader(exec),
		Transactions: transaction.NewReader(exec),
		Categories:   category.NewReader(exec),
		Settings:     settings.NewReader(exec),
	}
}
