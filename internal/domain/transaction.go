package domain

import (
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// TransactionType is the direction of a money movement.
type TransactionType string

const (
	TransactionTypeIncome   TransactionType = "receita"
	TransactionTypeExpense  TransactionType = "despesa"
	TransactionTypeTransfer TransactionType = "transferencia"
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionTypeIncome, TransactionTypeExpense, TransactionTypeTransfer:
		return true
	}
	return false
}

// TransactionStatus tracks whether a transaction has been realized on its account.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
)

// Valid reports whether s is one of the known statuses.
func (s TransactionStatus) Valid() bool {
	return s == TransactionStatusPending || s == TransactionStatusCompleted
}

// Transaction is a single recorded money movement owned by a user.
//
// Status changes here never touch account balances; balance effects are applied
// by the lifecycle actions that move a transaction between states.
type Transaction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Description string
	Amount      decimal.Decimal
	Type        TransactionType
	Category    string     // legacy free-text label
	CategoryID  *uuid.UUID // preferred over Category when set
	Subcategory string
	Date        time.Time
	Status      TransactionStatus
	Notes       string
	AccountID   *uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TransactionFields are the caller-supplied fields of a transaction.
type TransactionFields struct {
	Description string
	Amount      decimal.Decimal
	Type        TransactionType
	Category    string
	CategoryID  *uuid.UUID
	Subcategory string
	Date        time.Time
	Status      TransactionStatus
	Notes       string
	AccountID   *uuid.UUID
}

// NewTransaction validates fields and returns a pending transaction with a fresh id.
// fields.Status is ignored; completing a transaction is a separate step.
func NewTransaction(userID uuid.UUID, fields TransactionFields, now time.Time) (*Transaction, error) {
	if userID == uuid.Nil {
		return nil, newValidationError("userId", "is required")
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}

	tx := &Transaction{
		ID:        id,
		UserID:    userID,
		Status:    TransactionStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := tx.apply(fields, now); err != nil {
		return nil, err
	}
	return tx, nil
}

// Replace overwrites every caller-editable field. Status is left to the caller.
func (t *Transaction) Replace(fields TransactionFields, now time.Time) error {
	return t.apply(fields, now)
}

func (t *Transaction) apply(fields TransactionFields, now time.Time) error {
	if err := t.UpdateDescription(fields.Description, now); err != nil {
		return err
	}
	if err := t.UpdateAmount(fields.Amount, now); err != nil {
		return err
	}
	if err := t.UpdateType(fields.Type, now); err != nil {
		return err
	}
	if err := t.UpdateDate(fields.Date, now); err != nil {
		return err
	}
	t.UpdateCategory(fields.Category, fields.CategoryID, now)
	t.UpdateSubcategory(fields.Subcategory, now)
	t.UpdateNotes(fields.Notes, now)
	t.UpdateAccount(fields.AccountID, now)
	return nil
}

// UpdateDescription sets a non-blank description.
func (t *Transaction) UpdateDescription(description string, now time.Time) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return newValidationError("descricao", "must not be blank")
	}
	t.Description = description
	t.UpdatedAt = now
	return nil
}

// MoneyScale is the number of decimal places stored for every money column.
const MoneyScale = 2

// fitsMoneyScale reports whether d can be stored without losing cents.
// Trailing zeros beyond the scale are fine.
func fitsMoneyScale(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(MoneyScale))
}

// UpdateAmount sets a strictly positive amount with at most MoneyScale decimals.
func (t *Transaction) UpdateAmount(amount decimal.Decimal, now time.Time) error {
	if !amount.IsPositive() {
		return newValidationError("valor", "must be greater than zero, got %s", amount.String())
	}
	if !fitsMoneyScale(amount) {
		return newValidationError("valor", "must have at most %d decimal places, got %s", MoneyScale, amount.String())
	}
	t.Amount = amount
	t.UpdatedAt = now
	return nil
}

// UpdateType sets one of receita, despesa or transferencia.
func (t *Transaction) UpdateType(txType TransactionType, now time.Time) error {
	if !txType.Valid() {
		return newValidationError("tipo", "must be one of receita, despesa, transferencia, got %q", string(txType))
	}
	t.Type = txType
	t.UpdatedAt = now
	return nil
}

// UpdateDate sets an occurrence date that is not after now.
func (t *Transaction) UpdateDate(date time.Time, now time.Time) error {
	if date.IsZero() {
		return newValidationError("data", "is required")
	}
	if date.After(now) {
		return newValidationError("data", "must not be in the future")
	}
	t.Date = date
	t.UpdatedAt = now
	return nil
}

// UpdateCategory sets both category references. Either may be empty.
func (t *Transaction) UpdateCategory(name string, id *uuid.UUID, now time.Time) {
	t.Category = strings.TrimSpace(name)
	t.CategoryID = copyID(id)
	t.UpdatedAt = now
}

func (t *Transaction) UpdateSubcategory(subcategory string, now time.Time) {
	t.Subcategory = strings.TrimSpace(subcategory)
	t.UpdatedAt = now
}

func (t *Transaction) UpdateNotes(notes string, now time.Time) {
	t.Notes = notes
	t.UpdatedAt = now
}

// UpdateAccount attaches the transaction to an account, or detaches it when id is nil.
// Ownership of the account is checked by the caller that loads it.
func (t *Transaction) UpdateAccount(id *uuid.UUID, now time.Time) {
	t.AccountID = copyID(id)
	t.UpdatedAt = now
}

// MarkCompleted flips a pending transaction to completed.
func (t *Transaction) MarkCompleted(now time.Time) error {
	if t.Status != TransactionStatusPending {
		return newValidationError("status", "transaction is already completed")
	}
	t.Status = TransactionStatusCompleted
	t.UpdatedAt = now
	return nil
}

// MarkPending flips a completed transaction back to pending.
func (t *Transaction) MarkPending(now time.Time) error {
	if t.Status != TransactionStatusCompleted {
		return newValidationError("status", "transaction is already pending")
	}
	t.Status = TransactionStatusPending
	t.UpdatedAt = now
	return nil
}

// CategoryRef returns the category reference, preferring the id over the legacy label.
func (t *Transaction) CategoryRef() CategoryRef {
	if t.CategoryID != nil && *t.CategoryID != uuid.Nil {
		return CategoryByID(*t.CategoryID)
	}
	if t.Category != "" {
		return CategoryByName(t.Category)
	}
	return CategoryRef{}
}

func (t *Transaction) IsIncome() bool    { return t.Type == TransactionTypeIncome }
func (t *Transaction) IsExpense() bool   { return t.Type == TransactionTypeExpense }
func (t *Transaction) IsTransfer() bool  { return t.Type == TransactionTypeTransfer }
func (t *Transaction) IsPending() bool   { return t.Status == TransactionStatusPending }
func (t *Transaction) IsCompleted() bool { return t.Status == TransactionStatusCompleted }

func (t *Transaction) BelongsToUser(userID uuid.UUID) bool {
	return t.UserID == userID
}

// Clone returns a deep copy.
func (t *Transaction) Clone() *Transaction {
	c := *t
	c.CategoryID = copyID(t.CategoryID)
	c.AccountID = copyID(t.AccountID)
	return &c
}

func copyID(id *uuid.UUID) *uuid.UUID {
	if id == nil || *id == uuid.Nil {
		return nil
	}
	v := *id
	return &v
}
