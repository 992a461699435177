//go:build integration

package storage_test

import (
	"context"
	"database/sql"
	"io"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"golang.org/x/sync/errgroup"

	"github.com/carson-networks/finance-server/internal/config"
	"github.com/carson-networks/finance-server/internal/domain"
	"github.com/carson-networks/finance-server/internal/operator"
	"github.com/carson-networks/finance-server/internal/operator/actions"
	"github.com/carson-networks/finance-server/internal/storage"
	"github.com/carson-networks/finance-server/internal/storage/migrations"
	"github.com/carson-networks/finance-server/internal/storage/transaction"
)

func newPostgres(t *testing.T) *storage.Storage {
	t.Helper()
	ctx := context.Background()

	ctr, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("finance"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("testpassword"),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, migrations.Up(db))
	return storage.NewStorageFromDB(db)
}

func newDelegator(t *testing.T, store storage.UnitOfWork) *operator.OperatorDelegator {
	t.Helper()
	logger := logrus.New()
	logger.Out = io.Discard
	d := operator.NewOperatorDelegator(store, config.Operator{Workers: 4, Retries: 5}, logger)
	d.Start()
	t.Cleanup(d.Stop)
	return d
}

func TestPostgres_Lifecycle(t *testing.T) {
	store := newPostgres(t)
	d := newDelegator(t, store)
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV4())
	now := time.Now().UTC().Truncate(time.Microsecond)

	m, err := migrations.New(store.DB)
	require.NoError(t, err)
	version, dirty, err := migrations.Version(m)
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
	assert.False(t, dirty)

	createAccount := &actions.CreateAccount{UserID: userID, Name: "Conta", Type: domain.AccountTypeChecking, InitialBalance: decimal.NewFromInt(1000), Now: now}
	require.NoError(t, d.Process(ctx, createAccount))
	accountID := createAccount.Result.ID

	for _, salary := range []int64{3000, 5000} {
		require.NoError(t, d.Process(ctx, &actions.UpsertFinanceSettings{
			UserID: userID, Salary: decimal.NewFromInt(salary), Fixed: 50, Variable: 30, Investments: 20, Now: now,
		}))
	}
	settings, err := store.Read().Settings.FindByUserID(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, settings)
	assert.True(t, settings.Salary.Equal(decimal.NewFromInt(5000)), "second upsert overwrites")

	createCategory := &actions.CreateCategory{UserID: userID, CategoryName: "Mercado", Type: domain.CategoryTypeExpense, RuleCategory: domain.BucketNeeds, Now: now}
	require.NoError(t, d.Process(ctx, createCategory))

	create := &actions.CreateTransaction{UserID: userID, Now: now, Fields: domain.TransactionFields{
		Description: "Mercado",
		Amount:      decimal.RequireFromString("150.25"),
		Type:        domain.TransactionTypeExpense,
		CategoryID:  &createCategory.Result.ID,
		Date:        now,
		Status:      domain.TransactionStatusCompleted,
		AccountID:   &accountID,
	}}
	require.NoError(t, d.Process(ctx, create))
	assertBalance(t, store, userID, accountID, "849.75")

	stored, err := store.Read().Transactions.FindByID(ctx, create.Result.Transaction.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, domain.TransactionStatusCompleted, stored.Status)
	assert.Equal(t, accountID, *stored.AccountID)

	page, err := store.Read().Transactions.List(ctx, &transaction.TransactionFilter{UserID: userID, AccountID: &accountID, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, page, 1)

	require.NoError(t, d.Process(ctx, &actions.DeleteTransaction{UserID: userID, ID: stored.ID, Now: now}))
	assertBalance(t, store, userID, accountID, "1000.00")
}

func TestPostgres_ConcurrentCompletesSerialize(t *testing.T) {
	store := newPostgres(t)
	d := newDelegator(t, store)
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV4())

	createAccount := &actions.CreateAccount{UserID: userID, Name: "Conta", Type: domain.AccountTypeChecking, InitialBalance: decimal.NewFromInt(100)}
	require.NoError(t, d.Process(ctx, createAccount))
	accountID := createAccount.Result.ID

	const count = 20
	ids := make([]uuid.UUID, count)
	for i := range ids {
		create := &actions.CreateTransaction{UserID: userID, Fields: domain.TransactionFields{
			Description: "Depósito",
			Amount:      decimal.NewFromInt(10),
			Type:        domain.TransactionTypeIncome,
			Date:        time.Now().UTC(),
			AccountID:   &accountID,
		}}
		require.NoError(t, d.Process(ctx, create))
		ids[i] = create.Result.Transaction.ID
	}

	group, gctx := errgroup.WithContext(ctx)
	for _, id := range ids {
		group.Go(func() error {
			return d.Process(gctx, &actions.CompleteTransaction{UserID: userID, ID: id})
		})
	}
	require.NoError(t, group.Wait())

	assertBalance(t, store, userID, accountID, "300.00")
}

func assertBalance(t *testing.T, store *storage.Storage, userID, accountID uuid.UUID, want string) {
	t.Helper()
	acc, err := store.Read().Accounts.FindByUserAndID(context.Background(), userID, accountID)
	require.NoError(t, err)
	require.NotNil(t, acc)
	assert.Equal(t, want, acc.CurrentBalance.StringFixed(2))
}
