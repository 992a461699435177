package budget

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-server/internal/domain"
	"github.com/carson-networks/finance-server/internal/handlers/httpapi"
	"github.com/carson-networks/finance-server/internal/operator/actions"
)

// Settings is the API model for a user's salary split.
type Settings struct {
	Salary      string `json:"salario" doc:"Monthly salary"`
	Fixed       int    `json:"percentualFixo" minimum:"40" maximum:"60" doc:"Percent for needs"`
	Variable    int    `json:"percentualVariavel" minimum:"10" maximum:"50" doc:"Percent for wants"`
	Investments int    `json:"percentualInvestimentos" minimum:"10" maximum:"30" doc:"Percent for the future"`
}

// SettingsResponseBody adds read-only fields to Settings.
type SettingsResponseBody struct {
	Settings
	UpdatedAt string `json:"updatedAt" doc:"RFC3339 last update time"`
}

type SettingsOutput struct {
	Body SettingsResponseBody
}

type GetSettingsInput struct {
	httpapi.UserHeader
}

type PutSettingsInput struct {
	httpapi.UserHeader
	Body Settings
}

// SettingsHandler handles GET and PUT /v1/budget/settings.
type SettingsHandler struct {
	BudgetService budgetReader
	Operator      actionProcessor
}

func NewSettingsHandler(svc budgetReader, op actionProcessor) *SettingsHandler {
	return &SettingsHandler{BudgetService: svc, Operator: op}
}

func (h *SettingsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-finance-settings",
		Method:      http.MethodGet,
		Path:        "/v1/budget/settings",
		Summary:     "Get finance settings",
		Tags:        []string{"Budget"},
	}, h.get)
	huma.Register(api, huma.Operation{
		OperationID: "put-finance-settings",
		Method:      http.MethodPut,
		Path:        "/v1/budget/settings",
		Summary:     "Store finance settings",
		Description: "Creates or replaces the salary split. The three percentages must add up to 100.",
		Tags:        []string{"Budget"},
	}, h.put)
}

func toSettingsOutput(s *domain.UserFinanceSettings) *SettingsOutput {
	return &SettingsOutput{Body: SettingsResponseBody{
		Settings: Settings{
			Salary:      s.Salary.StringFixed(2),
			Fixed:       s.Fixed,
			Variable:    s.Variable,
			Investments: s.Investments,
		},
		UpdatedAt: s.UpdatedAt.Format(time.RFC3339),
	}}
}

func (h *SettingsHandler) get(ctx context.Context, input *GetSettingsInput) (*SettingsOutput, error) {
	userID, err := input.User()
	if err != nil {
		return nil, err
	}
	s, err := h.BudgetService.GetSettings(ctx, userID)
	if err != nil {
		return nil, httpapi.Error(err, "failed to get finance settings")
	}
	return toSettingsOutput(s), nil
}

func (h *SettingsHandler) put(ctx context.Context, input *PutSettingsInput) (*SettingsOutput, error) {
	userID, err := input.User()
	if err != nil {
		return nil, err
	}
	salary, err := decimal.NewFromString(input.Body.Salary)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid salario", err)
	}

	action := &actions.UpsertFinanceSettings{
		UserID:      userID,
		Salary:      salary,
		Fixed:       input.Body.Fixed,
		Variable:    input.Body.Variable,
		Investments: input.Body.Investments,
	}
	if err := h.Operator.Process(ctx, action); err != nil {
		return nil, httpapi.Error(err, "failed to store finance settings")
	}
	return toSettingsOutput(action.Result), nil
}
