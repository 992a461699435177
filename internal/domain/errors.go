package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ValidationError is returned when a field violates an entity invariant.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func newValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// NotFoundError is returned when a referenced entity does not exist for the user.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return e.Entity + " not found"
	}
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// UnauthorizedError is returned when an entity belongs to another user.
type UnauthorizedError struct {
	Entity string
	ID     string
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("%s %s does not belong to the requesting user", e.Entity, e.ID)
}

// InactiveAccountError is returned when a balance-affecting operation targets an
// inactive account.
type InactiveAccountError struct {
	AccountID string
}

func (e *InactiveAccountError) Error() string {
	return fmt.Sprintf("financial account %s is inactive", e.AccountID)
}

// InsufficientBalanceError carries the balance that was available and the amount
// that was requested.
type InsufficientBalanceError struct {
	AccountID string
	Current   decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance on account %s: current %s, requested %s",
		e.AccountID, e.Current.StringFixed(2), e.Requested.StringFixed(2))
}

// BudgetExceededError is returned when an expense would push a bucket past the
// rejection threshold.
type BudgetExceededError struct {
	Bucket     Bucket
	Percentage decimal.Decimal
}

func (e *BudgetExceededError) Error() string {
	return fmt.Sprintf("budget exceeded for %s: %s%% of the monthly cap", e.Bucket, e.Percentage.StringFixed(2))
}

// ConcurrencyConflictError wraps a storage error caused by a concurrent writer.
// Callers may retry the whole operation.
type ConcurrencyConflictError struct {
	Err error
}

func (e *ConcurrencyConflictError) Error() string {
	return fmt.Sprintf("concurrent modification: %v", e.Err)
}

func (e *ConcurrencyConflictError) Unwrap() error {
	return e.Err
}

// Retryable always reports true.
func (e *ConcurrencyConflictError) Retryable() bool {
	return true
}

// BudgetWarning annotates a successful operation whose expense put a bucket
// between the warning and rejection thresholds. It is not an error.
type BudgetWarning struct {
	Bucket     Bucket
	Percentage decimal.Decimal
	Message    string
}
