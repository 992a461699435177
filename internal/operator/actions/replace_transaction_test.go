package actions

import (
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/finance-server/internal/domain"
)

func (f *fixture) replace(id uuid.UUID, fields domain.TransactionFields) (*TransactionResult, error) {
	f.t.Helper()
	action := &ReplaceTransaction{UserID: f.userID, ID: id, Fields: fields, Now: now}
	err := f.run(action)
	return action.Result, err
}

func TestReplaceTransaction_CompletedKeepsStatusAndReconciles(t *testing.T) {
	f := newFixture(t)
	account := f.account("600")
	tx := f.mustCreate(expenseFields("100", &account.ID))
	require.NoError(t, f.complete(tx.ID))
	f.assertBalance(account.ID, "500")

	fields := expenseFields("150", &account.ID)
	fields.Description = "Mercado do mês"
	result, err := f.replace(tx.ID, fields)
	require.NoError(t, err)

	assert.True(t, result.Transaction.IsCompleted())
	assert.Equal(t, "Mercado do mês", result.Transaction.Description)
	f.assertBalance(account.ID, "450")
}

func TestReplaceTransaction_CompletedToPending(t *testing.T) {
	f := newFixture(t)
	account := f.account("500")
	tx := f.mustCreate(incomeFields("100", &account.ID))
	require.NoError(t, f.complete(tx.ID))

	fields := incomeFields("300", &account.ID)
	fields.Status = domain.TransactionStatusPending
	result, err := f.replace(tx.ID, fields)
	require.NoError(t, err)

	assert.True(t, result.Transaction.IsPending())
	f.assertBalance(account.ID, "500")
}

func TestReplaceTransaction_ChangesTypeOfCompleted(t *testing.T) {
	f := newFixture(t)
	account := f.account("500")
	tx := f.mustCreate(expenseFields("100", &account.ID))
	require.NoError(t, f.complete(tx.ID))

	_, err := f.replace(tx.ID, incomeFields("100", &account.ID))
	require.NoError(t, err)

	f.assertBalance(account.ID, "600")
}

func TestReplaceTransaction_PendingToCompletedOnOtherAccount(t *testing.T) {
	f := newFixture(t)
	first := f.account("500")
	second := f.account("50")
	tx := f.mustCreate(expenseFields("100", &first.ID))

	fields := expenseFields("100", &second.ID)
	fields.Status = domain.TransactionStatusCompleted
	_, err := f.replace(tx.ID, fields)

	requireErrorAs[*domain.InsufficientBalanceError](t, err)
	f.assertBalance(first.ID, "500")
	f.assertBalance(second.ID, "50")
	stored := f.transaction(tx.ID)
	assert.True(t, stored.IsPending())
	assert.Equal(t, first.ID, *stored.AccountID)
}

func TestReplaceTransaction_ValidationLeavesStateUnchanged(t *testing.T) {
	f := newFixture(t)
	account := f.account("500")
	tx := f.mustCreate(expenseFields("100", &account.ID))
	require.NoError(t, f.complete(tx.ID))

	fields := expenseFields("100", &account.ID)
	fields.Date = now.AddDate(0, 0, 1)
	_, err := f.replace(tx.ID, fields)

	validation := requireErrorAs[*domain.ValidationError](t, err)
	assert.Equal(t, "data", validation.Field)
	f.assertBalance(account.ID, "400")
}

func TestReplaceTransaction_Ownership(t *testing.T) {
	f := newFixture(t)
	tx := f.mustCreate(expenseFields("100", nil))

	action := &ReplaceTransaction{UserID: uuid.Must(uuid.NewV4()), ID: tx.ID, Fields: expenseFields("1", nil), Now: now}
	requireErrorAs[*domain.UnauthorizedError](t, f.run(action))
	assert.Nil(t, action.Result)
}
