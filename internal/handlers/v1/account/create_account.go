package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-server/internal/domain"
	"github.com/carson-networks/finance-server/internal/handlers/httpapi"
	"github.com/carson-networks/finance-server/internal/logging"
	"github.com/carson-networks/finance-server/internal/operator/actions"
)

// CreateAccountInput is the Huma input for creating an account.
type CreateAccountInput struct {
	httpapi.UserHeader
	Body CreateAccountBody
}

// CreateAccountBody is the request body fields for creating an account.
type CreateAccountBody struct {
	Name           string `json:"name" minLength:"1" doc:"Account name"`
	Type           int    `json:"type" minimum:"0" maximum:"5" doc:"Account type: 0=Checking, 1=Savings, 2=Investment, 3=Wallet, 4=Credit card, 5=Other"`
	InitialBalance string `json:"initialBalance,omitempty" doc:"Opening balance (e.g. '0' or '1234.56'), defaults to 0"`
}

// AccountOutput is the Huma output for endpoints returning a single account.
type AccountOutput struct {
	Body Account
}

// CreateAccountHandler handles POST /v1/account.
type CreateAccountHandler struct {
	Operator actionProcessor
}

// NewCreateAccountHandler creates a new CreateAccountHandler.
func NewCreateAccountHandler(op actionProcessor) *CreateAccountHandler {
	return &CreateAccountHandler{Operator: op}
}

// Register registers the create account endpoint with the Huma API.
func (h *CreateAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-account",
		Method:        http.MethodPost,
		Path:          "/v1/account",
		Summary:       "Create an account",
		Description:   "Creates an active financial account whose current balance starts at the initial balance.",
		Tags:          []string{"Accounts"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

func parseCreateAccountInput(input *CreateAccountInput) (*actions.CreateAccount, error) {
	userID, err := input.User()
	if err != nil {
		return nil, err
	}

	balanceStr := input.Body.InitialBalance
	if balanceStr == "" {
		balanceStr = "0"
	}
	balance, err := decimal.NewFromString(balanceStr)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid initialBalance", err)
	}

	return &actions.CreateAccount{
		UserID:         userID,
		Name:           input.Body.Name,
		Type:           domain.AccountType(input.Body.Type),
		InitialBalance: balance,
	}, nil
}

func (h *CreateAccountHandler) handle(ctx context.Context, input *CreateAccountInput) (*AccountOutput, error) {
	logData := logging.GetLogData(ctx)

	action, err := parseCreateAccountInput(input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("createAccountMs")
	}
	err = h.Operator.Process(ctx, action)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, httpapi.Error(err, "failed to create account")
	}

	if logData != nil {
		logData.AddData("accountID", action.Result.ID.String())
	}

	return &AccountOutput{Body: toAccount(action.Result)}, nil
}
