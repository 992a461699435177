package domain

import (
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFinancialAccount(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	initial := decimal.RequireFromString("500.00")

	account, err := NewFinancialAccount(userID, " Checking ", AccountTypeChecking, initial, testNow)

	require.NoError(t, err)
	assert.Equal(t, "Checking", account.Name)
	assert.True(t, account.CurrentBalance.Equal(initial))
	assert.True(t, account.InitialBalance.Equal(initial))
	assert.True(t, account.IsActive())
	assert.True(t, account.BelongsToUser(userID))
}

func TestNewFinancialAccount_Invalid(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())

	_, err := NewFinancialAccount(userID, "", AccountTypeChecking, decimal.Zero, testNow)
	requireValidationError(t, err, "nome")

	_, err = NewFinancialAccount(userID, "Cash", AccountType(42), decimal.Zero, testNow)
	requireValidationError(t, err, "tipo")

	_, err = NewFinancialAccount(userID, "Cash", AccountTypeWallet, decimal.RequireFromString("100.001"), testNow)
	requireValidationError(t, err, "saldoInicial")
}

func TestFinancialAccount_CreditDebit(t *testing.T) {
	account, err := NewFinancialAccount(uuid.Must(uuid.NewV4()), "Cash", AccountTypeWallet, decimal.RequireFromString("100"), testNow)
	require.NoError(t, err)

	account.Credit(decimal.RequireFromString("25.50"))
	assert.Equal(t, "125.5", account.CurrentBalance.String())

	account.Debit(decimal.RequireFromString("200"))
	assert.Equal(t, "-74.5", account.CurrentBalance.String(), "debit does not guard against overdraft")

	account.UpdateBalance(decimal.RequireFromString("10"), testNow)
	assert.Equal(t, "10", account.CurrentBalance.String())
	assert.Equal(t, "100", account.InitialBalance.String())
}
