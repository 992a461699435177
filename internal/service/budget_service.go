package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/budget"
	"github.com/carson-networks/finance-server/internal/domain"
	"github.com/carson-networks/finance-server/internal/storage/category"
	"github.com/carson-networks/finance-server/internal/storage/settings"
	"github.com/carson-networks/finance-server/internal/storage/transaction"
)

// BudgetService reports a user's bucket consumption against their finance settings.
type BudgetService struct {
	settings     settings.IReader
	categories   category.IReader
	transactions transaction.IReader
}

func NewBudgetService(s settings.IReader, c category.IReader, t transaction.IReader) *BudgetService {
	return &BudgetService{settings: s, categories: c, transactions: t}
}

// GetSettings returns NotFoundError until the user has stored settings.
func (s *BudgetService) GetSettings(ctx context.Context, userID uuid.UUID) (*domain.UserFinanceSettings, error) {
	found, err := s.settings.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, &domain.NotFoundError{Entity: "finance settings", ID: userID.String()}
	}
	return found, nil
}

func (s *BudgetService) ListCategories(ctx context.Context, userID uuid.UUID) ([]*domain.FinancialCategory, error) {
	return s.categories.FindByUser(ctx, userID)
}

// Summary computes the bucket breakdown for the calendar month containing now.
func (s *BudgetService) Summary(ctx context.Context, userID uuid.UUID, now time.Time) (*budget.Summary, error) {
	userSettings, err := s.GetSettings(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := userSettings.Validate(); err != nil {
		return nil, err
	}

	categories, err := s.categories.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	period := budget.CurrentMonthPeriod(now)
	txs, err := s.transactions.FindByUserAndDateRange(ctx, userID, period.Start, period.End)
	if err != nil {
		return nil, err
	}

	summary := budget.CalculateBudget(userSettings, txs, categories, period)
	return &summary, nil
}
