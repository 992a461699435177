package actions

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/finance-server/internal/domain"
)

func TestCreateAccount_StartsAtInitialBalance(t *testing.T) {
	f := newFixture(t)

	account := f.account("1234.56")

	assert.True(t, account.IsActive())
	assert.True(t, account.InitialBalance.Equal(account.CurrentBalance))
	f.assertBalance(account.ID, "1234.56")
}

func TestCreateAccount_Invalid(t *testing.T) {
	f := newFixture(t)

	err := f.run(&CreateAccount{UserID: f.userID, Name: " ", Type: domain.AccountTypeChecking})

	validation := requireErrorAs[*domain.ValidationError](t, err)
	assert.Equal(t, "nome", validation.Field)
}

func TestSetAccountActive_DoesNotMoveBalance(t *testing.T) {
	f := newFixture(t)
	account := f.account("10")

	f.deactivate(account.ID)

	stored := f.storedAccount(account.ID)
	assert.False(t, stored.IsActive())
	assert.True(t, stored.CurrentBalance.Equal(decimal.NewFromInt(10)))

	require.NoError(t, f.run(&SetAccountActive{UserID: f.userID, ID: account.ID, Active: true, Now: now}))
	assert.True(t, f.storedAccount(account.ID).IsActive())
}

func TestCreateCategory_RejectsDuplicateName(t *testing.T) {
	f := newFixture(t)
	f.category("Mercado", domain.BucketNeeds)

	err := f.run(&CreateCategory{
		UserID:       f.userID,
		CategoryName: "mercado",
		Type:         domain.CategoryTypeExpense,
		RuleCategory: domain.BucketWants,
	})

	validation := requireErrorAs[*domain.ValidationError](t, err)
	assert.Equal(t, "nome", validation.Field)
}

func TestUpsertFinanceSettings(t *testing.T) {
	f := newFixture(t)
	f.settings()

	err := f.run(&UpsertFinanceSettings{
		UserID:      f.userID,
		Salary:      decimal.NewFromInt(8000),
		Fixed:       60,
		Variable:    30,
		Investments: 10,
	})
	require.NoError(t, err)

	stored, err := f.store.Read().Settings.FindByUserID(f.ctx, f.userID)
	require.NoError(t, err)
	assert.True(t, stored.Salary.Equal(decimal.NewFromInt(8000)))
	assert.Equal(t, 60, stored.Fixed)

	err = f.run(&UpsertFinanceSettings{
		UserID:      f.userID,
		Salary:      decimal.NewFromInt(8000),
		Fixed:       60,
		Variable:    30,
		Investments: 20,
	})
	validation := requireErrorAs[*domain.ValidationError](t, err)
	assert.Equal(t, "percentages", validation.Field)
}
