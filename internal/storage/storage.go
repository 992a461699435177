package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/finance-server/internal/config"
	"github.com/carson-networks/finance-server/internal/storage/sqlconfig"
)

var _ UnitOfWork = (*Storage)(nil)

// Storage is the Postgres backend.
type Storage struct {
	DB  *sql.DB
	bob bob.DB
}

func NewStorage(cfg config.Postgres) (*Storage, error) {
	db, err := sql.Open("postgres", sqlconfig.ConnectionString(cfg))
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return NewStorageFromDB(db), nil
}

func NewStorageFromDB(db *sql.DB) *Storage {
	return &Storage{
		DB:  db,
		bob: bob.NewDB(db),
	}
}

// Write begins a database transaction. Rows read through the Writer's
// ForUpdate finders stay locked until Commit or Rollback.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	tx, err := s.bob.BeginTx(ctx, nil)
	if err != nil {
		return nil, sqlconfig.ClassifyError(err)
	}
	return NewWriter(tx), nil
}

func (s *Storage) Read() *Reader {
	return NewReader(s.bob)
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

func (s *Storage) Close() error {
	return s.DB.Close()
}
