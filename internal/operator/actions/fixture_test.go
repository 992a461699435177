package actions

import (
	"context"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/finance-server/internal/domain"
	"github.com/carson-networks/finance-server/internal/storage/memstore"
)

var now = time.Date(2025, 7, 15, 12, 0, 0, 0, time.UTC)

type fixture struct {
	t      *testing.T
	ctx    context.Context
	store  *memstore.Store
	userID uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	return &fixture{
		t:      t,
		ctx:    context.Background(),
		store:  memstore.New(),
		userID: uuid.Must(uuid.NewV4()),
	}
}

// run performs action in its own unit of work, committing on success.
func (f *fixture) run(action IAction) error {
	f.t.Helper()
	w, err := f.store.Write(f.ctx)
	require.NoError(f.t, err)
	if err := action.Perform(f.ctx, w); err != nil {
		require.NoError(f.t, w.Rollback(f.ctx))
		return err
	}
	require.NoError(f.t, w.Commit(f.ctx))
	return nil
}

func (f *fixture) account(balance string) *domain.FinancialAccount {
	f.t.Helper()
	action := &CreateAccount{
		UserID:         f.userID,
		Name:           "Conta corrente",
		Type:           domain.AccountTypeChecking,
		InitialBalance: decimal.RequireFromString(balance),
		Now:            now,
	}
	require.NoError(f.t, f.run(action))
	return action.Result
}

func (f *fixture) deactivate(accountID uuid.UUID) {
	f.t.Helper()
	require.NoError(f.t, f.run(&SetAccountActive{UserID: f.userID, ID: accountID, Active: false, Now: now}))
}

func (f *fixture) category(name string, bucket domain.Bucket) *domain.FinancialCategory {
	f.t.Helper()
	action := &CreateCategory{
		UserID:       f.userID,
		CategoryName: name,
		Type:         domain.CategoryTypeExpense,
		RuleCategory: bucket,
		Now:          now,
	}
	require.NoError(f.t, f.run(action))
	return action.Result
}

// settings stores salary 5000 split 50/30/20.
func (f *fixture) settings() {
	f.t.Helper()
	require.NoError(f.t, f.run(&UpsertFinanceSettings{
		UserID:      f.userID,
		Salary:      decimal.NewFromInt(5000),
		Fixed:       50,
		Variable:    30,
		Investments: 20,
		Now:         now,
	}))
}

func (f *fixture) create(fields domain.TransactionFields) (*TransactionResult, error) {
	f.t.Helper()
	action := &CreateTransaction{UserID: f.userID, Fields: fields, Now: now}
	err := f.run(action)
	return action.Result, err
}

func (f *fixture) mustCreate(fields domain.TransactionFields) *domain.Transaction {
	f.t.Helper()
	result, err := f.create(fields)
	require.NoError(f.t, err)
	return result.Transaction
}

func (f *fixture) complete(id uuid.UUID) error {
	f.t.Helper()
	return f.run(&CompleteTransaction{UserID: f.userID, ID: id, Now: now})
}

func (f *fixture) storedAccount(accountID uuid.UUID) *domain.FinancialAccount {
	f.t.Helper()
	account, err := f.store.Read().Accounts.FindByUserAndID(f.ctx, f.userID, accountID)
	require.NoError(f.t, err)
	require.NotNil(f.t, account)
	return account
}

func (f *fixture) transaction(id uuid.UUID) *domain.Transaction {
	f.t.Helper()
	tx, err := f.store.Read().Transactions.FindByID(f.ctx, id)
	require.NoError(f.t, err)
	return tx
}

func (f *fixture) assertBalance(accountID uuid.UUID, want string) {
	f.t.Helper()
	account := f.storedAccount(accountID)
	assert.True(f.t, account.CurrentBalance.Equal(decimal.RequireFromString(want)),
		"balance: want %s, got %s\n%s", want, account.CurrentBalance, spew.Sdump(account))
}

func expenseFields(amount string, accountID *uuid.UUID) domain.TransactionFields {
	return domain.TransactionFields{
		Description: "Mercado",
		Amount:      decimal.RequireFromString(amount),
		Type:        domain.TransactionTypeExpense,
		Date:        now.Add(-time.Hour),
		AccountID:   accountID,
	}
}

func incomeFields(amount string, accountID *uuid.UUID) domain.TransactionFields {
	return domain.TransactionFields{
		Description: "Salário",
		Amount:      decimal.RequireFromString(amount),
		Type:        domain.TransactionTypeIncome,
		Date:        now.Add(-time.Hour),
		AccountID:   accountID,
	}
}

func requireErrorAs[T error](t *testing.T, err error) T {
	t.Helper()
	var target T
	require.ErrorAs(t, err, &target)
	return target
}
