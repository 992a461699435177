// Package memstore is an in-process storage backend. Units of work run one at a
// time against a private copy of the committed state, which Commit publishes
// in a single swap.
package memstore

import (
	"context"
	"database/sql"
	"sync"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/domain"
	"github.com/carson-networks/finance-server/internal/storage"
)

var _ storage.UnitOfWork = (*Store)(nil)

type Store struct {
	// sem holds a token while a unit of work is open.
	sem chan struct{}

	stateMu sync.RWMutex
	state   *state
}

type state struct {
	accounts     map[uuid.UUID]*domain.FinancialAccount
	transactions map[uuid.UUID]*domain.Transaction
	categories   map[uuid.UUID]*domain.FinancialCategory
	settings     map[uuid.UUID]*domain.UserFinanceSettings
}

func newState() *state {
	return &state{
		accounts:     map[uuid.UUID]*domain.FinancialAccount{},
		transactions: map[uuid.UUID]*domain.Transaction{},
		categories:   map[uuid.UUID]*domain.FinancialCategory{},
		settings:     map[uuid.UUID]*domain.UserFinanceSettings{},
	}
}

func (s *state) clone() *state {
	c := newState()
	for id, a := range s.accounts {
		c.accounts[id] = a.Clone()
	}
	for id, t := range s.transactions {
		c.transactions[id] = t.Clone()
	}
	for id, cat := range s.categories {
		v := *cat
		c.categories[id] = &v
	}
	for id, st := range s.settings {
		v := *st
		c.settings[id] = &v
	}
	return c
}

func New() *Store {
	return &Store{
		sem:   make(chan struct{}, 1),
		state: newState(),
	}
}

// committed returns the last committed state. It is never mutated after
// publication, so callers may read it without holding a lock.
func (s *Store) committed() *state {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.state
}

// Write waits for any open unit of work to finish, then stages a copy of the
// committed state.
func (s *Store) Write(ctx context.Context) (*storage.Writer, error) {
	select {
	case s.sem <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	tx := &memTx{store: s, staged: s.committed().clone()}
	staged := func() *state { return tx.staged }
	return storage.NewWriterFrom(
		tx,
		&accountRepo{src: staged},
		&transactionRepo{src: staged},
		&categoryRepo{src: staged},
		&settingsRepo{src: staged},
	), nil
}

func (s *Store) Read() *storage.Reader {
	return &storage.Reader{
		Accounts:     &accountRepo{src: s.committed},
		Transactions: &transactionRepo{src: s.committed},
		Categories:   &categoryRepo{src: s.committed},
		Settings:     &settingsRepo{src: s.committed},
	}
}

// Ping always succeeds; it lets the store stand in for Postgres in health checks.
func (s *Store) Ping(context.Context) error {
	return nil
}

type memTx struct {
	store  *Store
	staged *state
	done   bool
}

func (t *memTx) Commit(context.Context) error {
	if t.done {
		return sql.ErrTxDone
	}
	t.done = true

	t.store.stateMu.Lock()
	t.store.state = t.staged
	t.store.stateMu.Unlock()

	<-t.store.sem
	return nil
}

func (t *memTx) Rollback(context.Context) error {
	if t.done {
		return sql.ErrTxDone
	}
	t.done = true
	t.staged = nil
	<-t.store.sem
	return nil
}
