package budget

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	budgetcalc "github.com/carson-networks/finance-server/internal/budget"
	"github.com/carson-networks/finance-server/internal/domain"
	"github.com/carson-networks/finance-server/internal/operator/actions"
)

var (
	testUser = uuid.Must(uuid.NewV4())
	testNow  = time.Date(2025, 7, 15, 12, 0, 0, 0, time.UTC)
)

type mockOperator struct {
	mock.Mock
}

func (m *mockOperator) Process(ctx context.Context, action actions.IAction) error {
	return m.Called(ctx, action).Error(0)
}

type mockBudgetService struct {
	mock.Mock
}

func (m *mockBudgetService) GetSettings(ctx context.Context, userID uuid.UUID) (*domain.UserFinanceSettings, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserFinanceSettings), args.Error(1)
}

func (m *mockBudgetService) ListCategories(ctx context.Context, userID uuid.UUID) ([]*domain.FinancialCategory, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.FinancialCategory), args.Error(1)
}

func (m *mockBudgetService) Summary(ctx context.Context, userID uuid.UUID, now time.Time) (*budgetcalc.Summary, error) {
	args := m.Called(ctx, userID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*budgetcalc.Summary), args.Error(1)
}

func newTestAPI(t *testing.T, op *mockOperator, svc *mockBudgetService) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	summary := NewSummaryHandler(svc)
	summary.now = func() time.Time { return testNow }
	summary.Register(api)
	NewSettingsHandler(svc, op).Register(api)
	NewCategoryHandler(svc, op).Register(api)
	return api
}

func userHeader() string {
	return "X-User-ID: " + testUser.String()
}

func defaultSettings() *domain.UserFinanceSettings {
	return &domain.UserFinanceSettings{
		UserID:      testUser,
		Salary:      decimal.NewFromInt(5000),
		Fixed:       50,
		Variable:    30,
		Investments: 20,
		UpdatedAt:   testNow,
	}
}

func TestHTTP_Summary(t *testing.T) {
	settings := defaultSettings()
	category, err := domain.NewFinancialCategory(testUser, "Mercado", domain.CategoryTypeExpense, domain.BucketNeeds, testNow)
	require.NoError(t, err)
	expense, err := domain.NewTransaction(testUser, domain.TransactionFields{
		Description: "Mercado",
		Amount:      decimal.NewFromInt(500),
		Type:        domain.TransactionTypeExpense,
		CategoryID:  &category.ID,
		Date:        testNow,
	}, testNow)
	require.NoError(t, err)
	period := budgetcalc.CurrentMonthPeriod(testNow)
	summary := budgetcalc.CalculateBudget(settings, []*domain.Transaction{expense}, []*domain.FinancialCategory{category}, period)

	svc := new(mockBudgetService)
	svc.On("Summary", mock.Anything, testUser, testNow).Return(&summary, nil)

	resp := newTestAPI(t, new(mockOperator), svc).Get("/v1/budget/summary", userHeader())

	assert.Equal(t, http.StatusOK, resp.Code)
	var body SummaryResponseBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "2025-07-01T00:00:00Z", body.PeriodStart)
	assert.Equal(t, "2025-08-01T00:00:00Z", body.PeriodEnd)
	require.Len(t, body.Buckets, 3)
	assert.Equal(t, "necessidades", body.Buckets[0].Bucket)
	assert.Equal(t, "2500.00", body.Buckets[0].Budget)
	assert.Equal(t, "500.00", body.Buckets[0].Spent)
	assert.Equal(t, "20.00", body.Buckets[0].Percentage)
	assert.Equal(t, "5000.00", body.Total.Budget)
}

func TestHTTP_Summary_NoSettings(t *testing.T) {
	svc := new(mockBudgetService)
	svc.On("Summary", mock.Anything, testUser, testNow).Return(nil, &domain.NotFoundError{Entity: "finance settings"})

	resp := newTestAPI(t, new(mockOperator), svc).Get("/v1/budget/summary", userHeader())

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestHTTP_GetSettings(t *testing.T) {
	svc := new(mockBudgetService)
	svc.On("GetSettings", mock.Anything, testUser).Return(defaultSettings(), nil)

	resp := newTestAPI(t, new(mockOperator), svc).Get("/v1/budget/settings", userHeader())

	assert.Equal(t, http.StatusOK, resp.Code)
	var body SettingsResponseBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "5000.00", body.Salary)
	assert.Equal(t, 50, body.Fixed)
	assert.Equal(t, 20, body.Investments)
}

func TestHTTP_PutSettings(t *testing.T) {
	op := new(mockOperator)
	op.On("Process", mock.Anything, mock.MatchedBy(func(a *actions.UpsertFinanceSettings) bool {
		return a.UserID == testUser && a.Salary.Equal(decimal.NewFromInt(5000)) && a.Fixed == 50
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*actions.UpsertFinanceSettings).Result = defaultSettings()
	}).Return(nil)

	resp := newTestAPI(t, op, nil).Put("/v1/budget/settings", userHeader(), Settings{
		Salary: "5000", Fixed: 50, Variable: 30, Investments: 20,
	})

	assert.Equal(t, http.StatusOK, resp.Code)
	op.AssertExpectations(t)
}

func TestHTTP_PutSettings_SumNotHundred(t *testing.T) {
	op := new(mockOperator)
	op.On("Process", mock.Anything, mock.Anything).Return(&domain.ValidationError{Field: "percentuais", Message: "must add up to 100"})

	resp := newTestAPI(t, op, nil).Put("/v1/budget/settings", userHeader(), Settings{
		Salary: "5000", Fixed: 50, Variable: 30, Investments: 30,
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestHTTP_PutSettings_PercentOutOfRange(t *testing.T) {
	op := new(mockOperator)

	resp := newTestAPI(t, op, nil).Put("/v1/budget/settings", userHeader(), Settings{
		Salary: "5000", Fixed: 70, Variable: 10, Investments: 20,
	})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	op.AssertNotCalled(t, "Process", mock.Anything, mock.Anything)
}

func TestHTTP_CreateCategory(t *testing.T) {
	created, err := domain.NewFinancialCategory(testUser, "Lazer", domain.CategoryTypeExpense, domain.BucketWants, testNow)
	require.NoError(t, err)

	op := new(mockOperator)
	op.On("Process", mock.Anything, mock.MatchedBy(func(a *actions.CreateCategory) bool {
		return a.CategoryName == "Lazer" && a.RuleCategory == domain.BucketWants && a.Type == domain.CategoryTypeExpense
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*actions.CreateCategory).Result = created
	}).Return(nil)

	resp := newTestAPI(t, op, nil).Post("/v1/category", userHeader(), CreateCategoryBody{
		Nome: "Lazer", Tipo: "despesa", RuleCategory: "desejos",
	})

	assert.Equal(t, http.StatusCreated, resp.Code)
	var body Category
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, created.ID.String(), body.ID)
	assert.Equal(t, "desejos", body.RuleCategory)
}

func TestHTTP_CreateCategory_Duplicate(t *testing.T) {
	op := new(mockOperator)
	op.On("Process", mock.Anything, mock.Anything).Return(&domain.ValidationError{Field: "nome", Message: "already exists"})

	resp := newTestAPI(t, op, nil).Post("/v1/category", userHeader(), CreateCategoryBody{Nome: "lazer", Tipo: "despesa"})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestHTTP_ListCategories(t *testing.T) {
	c, err := domain.NewFinancialCategory(testUser, "Salário", domain.CategoryTypeIncome, domain.BucketNone, testNow)
	require.NoError(t, err)
	svc := new(mockBudgetService)
	svc.On("ListCategories", mock.Anything, testUser).Return([]*domain.FinancialCategory{c}, nil)

	resp := newTestAPI(t, new(mockOperator), svc).Get("/v1/categories", userHeader())

	assert.Equal(t, http.StatusOK, resp.Code)
	var body struct {
		Categories []Category `json:"categories"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Categories, 1)
	assert.Equal(t, "receita", body.Categories[0].Tipo)
}
