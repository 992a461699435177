package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/finance-server/internal/domain"
	"github.com/carson-networks/finance-server/internal/storage/account"
	"github.com/carson-networks/finance-server/internal/storage/transaction"
)

type mockTransactionReader struct {
	mock.Mock
}

func (m *mockTransactionReader) FindByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	args := m.Called(ctx, id)
	tx, _ := args.Get(0).(*domain.Transaction)
	return tx, args.Error(1)
}

func (m *mockTransactionReader) FindByUserAndDateRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*domain.Transaction, error) {
	args := m.Called(ctx, userID, start, end)
	txs, _ := args.Get(0).([]*domain.Transaction)
	return txs, args.Error(1)
}

func (m *mockTransactionReader) List(ctx context.Context, filter *transaction.TransactionFilter) ([]*domain.Transaction, error) {
	args := m.Called(ctx, filter)
	txs, _ := args.Get(0).([]*domain.Transaction)
	return txs, args.Error(1)
}

type mockAccountReader struct {
	mock.Mock
}

func (m *mockAccountReader) FindByUserAndID(ctx context.Context, userID, id uuid.UUID) (*domain.FinancialAccount, error) {
	args := m.Called(ctx, userID, id)
	acc, _ := args.Get(0).(*domain.FinancialAccount)
	return acc, args.Error(1)
}

func (m *mockAccountReader) List(ctx context.Context, filter *account.AccountFilter) (*account.AccountListResult, error) {
	args := m.Called(ctx, filter)
	result, _ := args.Get(0).(*account.AccountListResult)
	return result, args.Error(1)
}

type mockCategoryReader struct {
	mock.Mock
}

func (m *mockCategoryReader) FindByUser(ctx context.Context, userID uuid.UUID) ([]*domain.FinancialCategory, error) {
	args := m.Called(ctx, userID)
	categories, _ := args.Get(0).([]*domain.FinancialCategory)
	return categories, args.Error(1)
}

type mockSettingsReader struct {
	mock.Mock
}

func (m *mockSettingsReader) FindByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserFinanceSettings, error) {
	args := m.Called(ctx, userID)
	s, _ := args.Get(0).(*domain.UserFinanceSettings)
	return s, args.Error(1)
}
