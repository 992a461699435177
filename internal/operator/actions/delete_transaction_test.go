package actions

import (
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"

	"github.com/carson-networks/finance-server/internal/domain"
)

func TestDeleteTransaction_CompletedExpenseRestoresBalance(t *testing.T) {
	f := newFixture(t)
	account := f.account("500")
	tx := f.mustCreate(expenseFields("120", &account.ID))
	assert.NoError(t, f.complete(tx.ID))
	f.assertBalance(account.ID, "380")

	assert.NoError(t, f.run(&DeleteTransaction{UserID: f.userID, ID: tx.ID, Now: now}))

	f.assertBalance(account.ID, "500")
	assert.Nil(t, f.transaction(tx.ID))
}

func TestDeleteTransaction_CompletedIncomeOnInactiveAccount(t *testing.T) {
	f := newFixture(t)
	account := f.account("500")
	tx := f.mustCreate(incomeFields("100", &account.ID))
	assert.NoError(t, f.complete(tx.ID))
	f.deactivate(account.ID)

	assert.NoError(t, f.run(&DeleteTransaction{UserID: f.userID, ID: tx.ID, Now: now}))

	f.assertBalance(account.ID, "500")
}

func TestDeleteTransaction_PendingHasNoBalanceEffect(t *testing.T) {
	f := newFixture(t)
	account := f.account("500")
	tx := f.mustCreate(expenseFields("120", &account.ID))

	assert.NoError(t, f.run(&DeleteTransaction{UserID: f.userID, ID: tx.ID, Now: now}))

	f.assertBalance(account.ID, "500")
	assert.Nil(t, f.transaction(tx.ID))
}

func TestDeleteTransaction_Ownership(t *testing.T) {
	f := newFixture(t)
	tx := f.mustCreate(expenseFields("120", nil))

	err := f.run(&DeleteTransaction{UserID: uuid.Must(uuid.NewV4()), ID: tx.ID})

	requireErrorAs[*domain.UnauthorizedError](t, err)
	assert.NotNil(t, f.transaction(tx.ID))
}
