package budget

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-server/internal/domain"
	"github.com/carson-networks/finance-server/internal/handlers/httpapi"
	"github.com/carson-networks/finance-server/internal/logging"
	"github.com/carson-networks/finance-server/internal/operator/actions"
)

// Category is the API model for a financial category.
type Category struct {
	ID           string `json:"id" doc:"Category UUID"`
	Nome         string `json:"nome"`
	Tipo         string `json:"tipo" doc:"receita or despesa"`
	RuleCategory string `json:"ruleCategory" doc:"Budget bucket: necessidades, desejos, futuro or none"`
	CreatedAt    string `json:"createdAt"`
}

type CreateCategoryBody struct {
	Nome         string `json:"nome" minLength:"1"`
	Tipo         string `json:"tipo" enum:"receita,despesa"`
	RuleCategory string `json:"ruleCategory,omitempty" enum:"necessidades,desejos,futuro,none" doc:"Defaults to none"`
}

type CreateCategoryInput struct {
	httpapi.UserHeader
	Body CreateCategoryBody
}

type CategoryOutput struct {
	Body Category
}

type ListCategoriesInput struct {
	httpapi.UserHeader
}

type ListCategoriesOutput struct {
	Body struct {
		Categories []Category `json:"categories"`
	}
}

// CategoryHandler handles POST /v1/category and GET /v1/categories.
type CategoryHandler struct {
	BudgetService budgetReader
	Operator      actionProcessor
}

func NewCategoryHandler(svc budgetReader, op actionProcessor) *CategoryHandler {
	return &CategoryHandler{BudgetService: svc, Operator: op}
}

func (h *CategoryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-category",
		Method:        http.MethodPost,
		Path:          "/v1/category",
		Summary:       "Create a category",
		Description:   "Creates a category mapped to a budget bucket. Names are unique per type, ignoring case.",
		Tags:          []string{"Categories"},
		DefaultStatus: http.StatusCreated,
	}, h.create)
	huma.Register(api, huma.Operation{
		OperationID: "list-categories",
		Method:      http.MethodGet,
		Path:        "/v1/categories",
		Summary:     "List categories",
		Tags:        []string{"Categories"},
	}, h.list)
}

func toCategory(c *domain.FinancialCategory) Category {
	return Category{
		ID:           c.ID.String(),
		Nome:         c.Name,
		Tipo:         string(c.Type),
		RuleCategory: string(c.RuleCategory),
		CreatedAt:    c.CreatedAt.Format(time.RFC3339),
	}
}

func (h *CategoryHandler) create(ctx context.Context, input *CreateCategoryInput) (*CategoryOutput, error) {
	userID, err := input.User()
	if err != nil {
		return nil, err
	}

	action := &actions.CreateCategory{
		UserID:       userID,
		CategoryName: input.Body.Nome,
		Type:         domain.CategoryType(input.Body.Tipo),
		RuleCategory: domain.Bucket(input.Body.RuleCategory),
	}
	if err := h.Operator.Process(ctx, action); err != nil {
		return nil, httpapi.Error(err, "failed to create category")
	}
	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("categoryID", action.Result.ID.String())
	}
	return &CategoryOutput{Body: toCategory(action.Result)}, nil
}

func (h *CategoryHandler) list(ctx context.Context, input *ListCategoriesInput) (*ListCategoriesOutput, error) {
	userID, err := input.User()
	if err != nil {
		return nil, err
	}
	categories, err := h.BudgetService.ListCategories(ctx, userID)
	if err != nil {
		return nil, httpapi.Error(err, "failed to list categories")
	}

	out := &ListCategoriesOutput{}
	out.Body.Categories = make([]Category, len(categories))
	for i, c := range categories {
		out.Body.Categories[i] = toCategory(c)
	}
	return out, nil
}
