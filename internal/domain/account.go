package domain

import (
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

type AccountType int8

const (
	AccountTypeChecking AccountType = iota
	AccountTypeSavings
	AccountTypeInvestment
	AccountTypeWallet
	AccountTypeCreditCard
	AccountTypeOther
)

func (t AccountType) Valid() bool {
	return t >= AccountTypeChecking && t <= AccountTypeOther
}

// FinancialAccount holds a live balance that only moves through Credit and Debit.
type FinancialAccount struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Name           string
	Type           AccountType
	InitialBalance decimal.Decimal
	CurrentBalance decimal.Decimal
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewFinancialAccount returns an active account whose current balance starts at
// the initial balance.
func NewFinancialAccount(userID uuid.UUID, name string, accountType AccountType, initialBalance decimal.Decimal, now time.Time) (*FinancialAccount, error) {
	if userID == uuid.Nil {
		return nil, newValidationError("userId", "is required")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, newValidationError("nome", "must not be blank")
	}
	if !accountType.Valid() {
		return nil, newValidationError("tipo", "unknown account type %d", accountType)
	}
	if !fitsMoneyScale(initialBalance) {
		return nil, newValidationError("saldoInicial", "must have at most %d decimal places, got %s", MoneyScale, initialBalance.String())
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	return &FinancialAccount{
		ID:             id,
		UserID:         userID,
		Name:           name,
		Type:           accountType,
		InitialBalance: initialBalance,
		CurrentBalance: initialBalance,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// Credit adds amount to the current balance.
func (a *FinancialAccount) Credit(amount decimal.Decimal) {
	a.CurrentBalance = a.CurrentBalance.Add(amount)
}

// Debit subtracts amount from the current balance. A negative result is allowed;
// sufficiency checks belong to the caller.
func (a *FinancialAccount) Debit(amount decimal.Decimal) {
	a.CurrentBalance = a.CurrentBalance.Sub(amount)
}

// UpdateBalance overwrites the current balance. Reserved for administrative correction.
func (a *FinancialAccount) UpdateBalance(balance decimal.Decimal, now time.Time) {
	a.CurrentBalance = balance
	a.UpdatedAt = now
}

// SetActive toggles the account. Inactive accounts reject new balance effects.
func (a *FinancialAccount) SetActive(active bool, now time.Time) {
	a.Active = active
	a.UpdatedAt = now
}

func (a *FinancialAccount) IsActive() bool {
	return a.Active
}

func (a *FinancialAccount) BelongsToUser(userID uuid.UUID) bool {
	return a.UserID == userID
}

func (a *FinancialAccount) Clone() *FinancialAccount {
	c := *a
	return &c
}
