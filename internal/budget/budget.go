// Package budget evaluates a user's monthly spending against the salary split in
// their finance settings. Every function is pure; callers load the inputs.
package budget

import (
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-server/internal/domain"
)

// Policy thresholds, as percentages of a bucket cap.
var (
	WarnThreshold   = decimal.NewFromInt(80)
	RejectThreshold = decimal.NewFromInt(110)
)

var hundred = decimal.NewFromInt(100)

// Period is the half-open interval [Start, End).
type Period struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the period.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

// CurrentMonthPeriod returns the calendar month containing now, in now's location.
func CurrentMonthPeriod(now time.Time) Period {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return Period{Start: start, End: start.AddDate(0, 1, 0)}
}

// HasValidSettings reports whether settings exist and pass validation.
func HasValidSettings(settings *domain.UserFinanceSettings) bool {
	return settings != nil && settings.Validate() == nil
}

// BucketFor returns the bucket a category is policed under.
func BucketFor(category *domain.FinancialCategory) domain.Bucket {
	if category == nil || !category.RuleCategory.Valid() {
		return domain.BucketNone
	}
	return category.RuleCategory
}

// BucketSummary is the state of one bucket for a period.
type BucketSummary struct {
	Bucket     domain.Bucket
	Budget     decimal.Decimal
	Spent      decimal.Decimal
	Remaining  decimal.Decimal
	Percentage decimal.Decimal
}

// Summary holds the per-bucket summaries in domain.Buckets order plus the total.
type Summary struct {
	Period  Period
	Buckets []BucketSummary
	Total   BucketSummary
}

// Bucket returns the summary for b, if present.
func (s Summary) Bucket(b domain.Bucket) (BucketSummary, bool) {
	for _, bs := range s.Buckets {
		if bs.Bucket == b {
			return bs, true
		}
	}
	return BucketSummary{}, false
}

// CalculateBudget sums the period's despesa transactions per bucket. Pending and
// completed transactions both count as spent. settings must satisfy HasValidSettings.
func CalculateBudget(
	settings *domain.UserFinanceSettings,
	transactions []*domain.Transaction,
	categories []*domain.FinancialCategory,
	period Period,
) Summary {
	caps := settings.CalculateBudgets()
	spent := spentByBucket(transactions, categories, period, uuid.Nil)

	summary := Summary{
		Period:  period,
		Buckets: make([]BucketSummary, 0, len(domain.Buckets)),
	}
	totalBudget, totalSpent := decimal.Zero, decimal.Zero
	for _, b := range domain.Buckets {
		budgetCap, _ := caps.Cap(b)
		summary.Buckets = append(summary.Buckets, newBucketSummary(b, budgetCap, spent[b]))
		totalBudget = totalBudget.Add(budgetCap)
		totalSpent = totalSpent.Add(spent[b])
	}
	summary.Total = newBucketSummary(domain.BucketNone, totalBudget, totalSpent)
	return summary
}

func newBucketSummary(b domain.Bucket, budgetCap, spent decimal.Decimal) BucketSummary {
	return BucketSummary{
		Bucket:     b,
		Budget:     budgetCap,
		Spent:      spent,
		Remaining:  budgetCap.Sub(spent),
		Percentage: percentage(spent, budgetCap),
	}
}

// ExpenseCheck is the input to ValidateExpense.
type ExpenseCheck struct {
	Amount       decimal.Decimal
	Category     domain.CategoryRef
	Settings     *domain.UserFinanceSettings
	Transactions []*domain.Transaction
	Categories   []*domain.FinancialCategory
	Period       Period
	// ExcludeID skips a transaction already stored under this id, so an update
	// is not counted twice.
	ExcludeID uuid.UUID
}

// Validation is the outcome of ValidateExpense.
type Validation struct {
	Accepted   bool
	Bucket     domain.Bucket
	Percentage decimal.Decimal
	Message    string
}

// Warning returns the non-fatal annotation for an accepted expense above the
// warning threshold, or nil.
func (v Validation) Warning() *domain.BudgetWarning {
	if !v.Accepted || v.Message == "" {
		return nil
	}
	return &domain.BudgetWarning{Bucket: v.Bucket, Percentage: v.Percentage, Message: v.Message}
}

// Err returns a BudgetExceededError for a rejected expense, or nil.
func (v Validation) Err() error {
	if v.Accepted {
		return nil
	}
	return &domain.BudgetExceededError{Bucket: v.Bucket, Percentage: v.Percentage}
}

// ValidateExpense decides whether adding an expense keeps its bucket within policy.
// Expenses without a bucket are always accepted.
func ValidateExpense(check ExpenseCheck) Validation {
	category := check.Category.Resolve(check.Categories)
	bucket := BucketFor(category)
	if bucket == domain.BucketNone || !HasValidSettings(check.Settings) {
		return Validation{Accepted: true, Bucket: domain.BucketNone, Percentage: decimal.Zero}
	}

	budgetCap, _ := check.Settings.CalculateBudgets().Cap(bucket)
	spent := spentByBucket(check.Transactions, check.Categories, check.Period, check.ExcludeID)[bucket]
	projected := spent.Add(check.Amount)
	exact := ratio(projected, budgetCap)
	pct := exact.Round(2)

	switch {
	case exact.GreaterThan(RejectThreshold):
		return Validation{
			Accepted:   false,
			Bucket:     bucket,
			Percentage: pct,
			Message:    fmt.Sprintf("expense would take %s to %s%% of its monthly cap", bucket, pct.StringFixed(2)),
		}
	case exact.GreaterThan(WarnThreshold):
		return Validation{
			Accepted:   true,
			Bucket:     bucket,
			Percentage: pct,
			Message:    fmt.Sprintf("%s is at %s%% of its monthly cap", bucket, pct.StringFixed(2)),
		}
	}
	return Validation{Accepted: true, Bucket: bucket, Percentage: pct}
}

func spentByBucket(
	transactions []*domain.Transaction,
	categories []*domain.FinancialCategory,
	period Period,
	exclude uuid.UUID,
) map[domain.Bucket]decimal.Decimal {
	spent := map[domain.Bucket]decimal.Decimal{
		domain.BucketNeeds:  decimal.Zero,
		domain.BucketWants:  decimal.Zero,
		domain.BucketFuture: decimal.Zero,
	}
	for _, tx := range transactions {
		if !tx.IsExpense() || !period.Contains(tx.Date) {
			continue
		}
		if exclude != uuid.Nil && tx.ID == exclude {
			continue
		}
		b := BucketFor(tx.CategoryRef().Resolve(categories))
		if b == domain.BucketNone {
			continue
		}
		spent[b] = spent[b].Add(tx.Amount)
	}
	return spent
}

func percentage(part, whole decimal.Decimal) decimal.Decimal {
	return ratio(part, whole).Round(2)
}

// ratio is part/whole in percent, unrounded. Thresholds compare against it.
func ratio(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred)
}
