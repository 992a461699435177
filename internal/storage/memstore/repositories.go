package memstore

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/domain"
	"github.com/carson-networks/finance-server/internal/storage/account"
	"github.com/carson-networks/finance-server/internal/storage/category"
	"github.com/carson-networks/finance-server/internal/storage/settings"
	"github.com/carson-networks/finance-server/internal/storage/transaction"
)

var (
	_ account.IWriter     = (*accountRepo)(nil)
	_ transaction.IWriter = (*transactionRepo)(nil)
	_ category.IWriter    = (*categoryRepo)(nil)
	_ settings.IWriter    = (*settingsRepo)(nil)
)

type accountRepo struct {
	src func() *state
}

func (r *accountRepo) FindByUserAndID(_ context.Context, userID, id uuid.UUID) (*domain.FinancialAccount, error) {
	a, ok := r.src().accounts[id]
	if !ok || !a.BelongsToUser(userID) {
		return nil, nil
	}
	return a.Clone(), nil
}

func (r *accountRepo) FindByUserAndIDForUpdate(ctx context.Context, userID, id uuid.UUID) (*domain.FinancialAccount, error) {
	return r.FindByUserAndID(ctx, userID, id)
}

func (r *accountRepo) List(_ context.Context, filter *account.AccountFilter) (*account.AccountListResult, error) {
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

	var rows []*domain.FinancialAccount
	for _, a := range r.src().accounts {
		if a.BelongsToUser(userID) {
			rows = append(rows, a.Clone())
		}
	}
	slices.SortFunc(rows, func(a, b *domain.FinancialAccount) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return bytes.Compare(a.ID.Bytes(), b.ID.Bytes())
	})
	rows = page(rows, offset, limit+1)

	if len(rows) == 0 {
		return &account.AccountListResult{}, nil
	}
	var nextCursor *account.AccountCursor
	if len(rows) > limit {
		rows = rows[:limit]
		nextCursor = &account.AccountCursor{Position: offset + limit, Limit: limit}
	}
	return &account.AccountListResult{Accounts: rows, NextCursor: nextCursor}, nil
}

func (r *accountRepo) Create(_ context.Context, a *domain.FinancialAccount) error {
	st := r.src()
	if _, exists := st.accounts[a.ID]; exists {
		return fmt.Errorf("memstore: account %s already exists", a.ID)
	}
	st.accounts[a.ID] = a.Clone()
	return nil
}

func (r *accountRepo) Update(_ context.Context, a *domain.FinancialAccount) error {
	st := r.src()
	if _, exists := st.accounts[a.ID]; exists {
		st.accounts[a.ID] = a.Clone()
	}
	return nil
}

type transactionRepo struct {
	src func() *state
}

func (r *transactionRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Transaction, error) {
	tx, ok := r.src().transactions[id]
	if !ok {
		return nil, nil
	}
	return tx.Clone(), nil
}

func (r *transactionRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	return r.FindByID(ctx, id)
}

func (r *transactionRepo) FindByUserAndDateRange(_ context.Context, userID uuid.UUID, start, end time.Time) ([]*domain.Transaction, error) {
	var result []*domain.Transaction
	for _, tx := range r.src().transactions {
		if tx.BelongsToUser(userID) && !tx.Date.Before(start) && tx.Date.Before(end) {
			result = append(result, tx.Clone())
		}
	}
	slices.SortFunc(result, func(a, b *domain.Transaction) int {
		return a.Date.Compare(b.Date)
	})
	return result, nil
}

func (r *transactionRepo) List(_ context.Context, filter *transaction.TransactionFilter) ([]*domain.Transaction, error) {
	var result []*domain.Transaction
	for _, tx := range r.src().transactions {
		if filter != nil && !matches(tx, filter) {
			continue
		}
		result = append(result, tx.Clone())
	}
	slices.SortFunc(result, func(a, b *domain.Transaction) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return bytes.Compare(b.ID.Bytes(), a.ID.Bytes())
	})
	if filter == nil {
		return result, nil
	}
	limit := -1
	if filter.Limit > 0 {
		limit = filter.Limit + 1
	}
	return page(result, filter.Offset, limit), nil
}

func matches(tx *domain.Transaction, filter *transaction.TransactionFilter) bool {
	if !tx.BelongsToUser(filter.UserID) {
		return false
	}
	if filter.AccountID != nil && (tx.AccountID == nil || *tx.AccountID != *filter.AccountID) {
		return false
	}
	if filter.MaxCreationTime != nil && tx.CreatedAt.After(*filter.MaxCreationTime) {
		return false
	}
	return true
}

func (r *transactionRepo) Create(_ context.Context, tx *domain.Transaction) error {
	st := r.src()
	if _, exists := st.transactions[tx.ID]; exists {
		return fmt.Errorf("memstore: transaction %s already exists", tx.ID)
	}
	st.transactions[tx.ID] = tx.Clone()
	return nil
}

func (r *transactionRepo) Update(_ context.Context, tx *domain.Transaction) error {
	st := r.src()
	if _, exists := st.transactions[tx.ID]; exists {
		st.transactions[tx.ID] = tx.Clone()
	}
	return nil
}

func (r *transactionRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.src().transactions, id)
	return nil
}

type categoryRepo struct {
	src func() *state
}

func (r *categoryRepo) FindByUser(_ context.Context, userID uuid.UUID) ([]*domain.FinancialCategory, error) {
	var result []*domain.FinancialCategory
	for _, c := range r.src().categories {
		if c.UserID == userID {
			v := *c
			result = append(result, &v)
		}
	}
	slices.SortFunc(result, func(a, b *domain.FinancialCategory) int {
		return strings.Compare(a.Name, b.Name)
	})
	return result, nil
}

func (r *categoryRepo) Create(_ context.Context, c *domain.FinancialCategory) error {
	st := r.src()
	if _, exists := st.categories[c.ID]; exists {
		return fmt.Errorf("memstore: category %s already exists", c.ID)
	}
	v := *c
	st.categories[c.ID] = &v
	return nil
}

type settingsRepo struct {
	src func() *state
}

func (r *settingsRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*domain.UserFinanceSettings, error) {
	s, ok := r.src().settings[userID]
	if !ok {
		return nil, nil
	}
	v := *s
	return &v, nil
}

func (r *settingsRepo) Upsert(_ context.Context, s *domain.UserFinanceSettings) error {
	v := *s
	r.src().settings[s.UserID] = &v
	return nil
}

// page applies offset and an optional limit (negative means unlimited).
func page[T any](rows []T, offset, limit int) []T {
	if offset >= len(rows) {
		return nil
	}
	rows = rows[offset:]
	if limit >= 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}
