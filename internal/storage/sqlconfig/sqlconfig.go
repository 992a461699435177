package sqlconfig

import (
	"errors"
	"net/url"

	"github.com/lib/pq"

	"github.com/carson-networks/finance-server/internal/config"
	"github.com/carson-networks/finance-server/internal/domain"
)

// Table names.
const (
	AccountsTable     = "financial_accounts"
	TransactionsTable = "transactions"
	CategoriesTable   = "financial_categories"
	SettingsTable     = "user_finance_settings"
)

// ConnectionString builds the lib/pq DSN for the configured Postgres instance.
func ConnectionString(cfg config.Postgres) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.Username, cfg.Password),
		Host:     cfg.Address + ":" + cfg.Port,
		Path:     "/" + cfg.DB,
		RawQuery: "sslmode=" + cfg.SSLMode,
	}
	return u.String()
}

// IsConcurrencyConflict reports whether err is a Postgres transaction rollback
// (SQLSTATE class 40: serialization failure, deadlock).
func IsConcurrencyConflict(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code.Class() == "40"
}

// ClassifyError wraps concurrency conflicts in domain.ConcurrencyConflictError and
// returns every other error unchanged.
func ClassifyError(err error) error {
	if err == nil {
		return nil
	}
	var conflict *domain.ConcurrencyConflictError
	if errors.As(err, &conflict) {
		return err
	}
	if IsConcurrencyConflict(err) {
		return &domain.ConcurrencyConflictError{Err: err}
	}
	return err
}
