package domain

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Allowed ranges for the bucket percentages.
const (
	MinFixedPercent       = 40
	MaxFixedPercent       = 60
	MinVariablePercent    = 10
	MaxVariablePercent    = 50
	MinInvestmentsPercent = 10
	MaxInvestmentsPercent = 30
)

var hundred = decimal.NewFromInt(100)

// UserFinanceSettings is a user's salary split into fixed, variable and investment
// percentages.
type UserFinanceSettings struct {
	UserID      uuid.UUID
	Salary      decimal.Decimal
	Fixed       int
	Variable    int
	Investments int
	UpdatedAt   time.Time
}

// BudgetCaps are the monetary ceilings derived from the settings.
type BudgetCaps struct {
	Fixed       decimal.Decimal
	Variable    decimal.Decimal
	Investments decimal.Decimal
}

// Validate checks salary and percentage ranges and that percentages add up to 100.
func (s *UserFinanceSettings) Validate() error {
	if s.UserID == uuid.Nil {
		return newValidationError("userId", "is required")
	}
	if !s.Salary.IsPositive() {
		return newValidationError("salary", "must be greater than zero")
	}
	if !fitsMoneyScale(s.Salary) {
		return newValidationError("salary", "must have at most %d decimal places", MoneyScale)
	}
	if s.Fixed < MinFixedPercent || s.Fixed > MaxFixedPercent {
		return newValidationError("fixed", "must be between %d and %d", MinFixedPercent, MaxFixedPercent)
	}
	if s.Variable < MinVariablePercent || s.Variable > MaxVariablePercent {
		return newValidationError("variable", "must be between %d and %d", MinVariablePercent, MaxVariablePercent)
	}
	if s.Investments < MinInvestmentsPercent || s.Investments > MaxInvestmentsPercent {
		return newValidationError("investments", "must be between %d and %d", MinInvestmentsPercent, MaxInvestmentsPercent)
	}
	if total := s.Fixed + s.Variable + s.Investments; total != 100 {
		return newValidationError("percentages", "must sum to 100, got %d", total)
	}
	return nil
}

// CalculateBudgets returns salary * percentage / 100 for each bucket.
func (s *UserFinanceSettings) CalculateBudgets() BudgetCaps {
	return BudgetCaps{
		Fixed:       percentOf(s.Salary, s.Fixed),
		Variable:    percentOf(s.Salary, s.Variable),
		Investments: percentOf(s.Salary, s.Investments),
	}
}

// Cap returns the monetary cap for bucket; BucketNone has no cap.
func (c BudgetCaps) Cap(bucket Bucket) (decimal.Decimal, bool) {
	switch bucket {
	case BucketNeeds:
		return c.Fixed, true
	case BucketWants:
		return c.Variable, true
	case BucketFuture:
		return c.Investments, true
	}
	return decimal.Zero, false
}

func percentOf(amount decimal.Decimal, percent int) decimal.Decimal {
	return amount.Mul(decimal.NewFromInt(int64(percent))).Div(hundred)
}
