package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-server/internal/handlers/httpapi"
	"github.com/carson-networks/finance-server/internal/logging"
	"github.com/carson-networks/finance-server/internal/operator/actions"
)

// SetAccountActiveInput is the Huma input for activating or deactivating an account.
type SetAccountActiveInput struct {
	httpapi.UserHeader
	ID   string `path:"id" format:"uuid" doc:"Account UUID"`
	Body struct {
		Active bool `json:"active" doc:"Whether the account accepts balance-affecting operations"`
	}
}

// SetAccountActiveHandler handles PATCH /v1/account/{id}.
type SetAccountActiveHandler struct {
	Operator actionProcessor
}

func NewSetAccountActiveHandler(op actionProcessor) *SetAccountActiveHandler {
	return &SetAccountActiveHandler{Operator: op}
}

func (h *SetAccountActiveHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "set-account-active",
		Method:      http.MethodPatch,
		Path:        "/v1/account/{id}",
		Summary:     "Activate or deactivate an account",
		Description: "Toggles whether the account accepts balance-affecting operations. The balance is left unchanged.",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func (h *SetAccountActiveHandler) handle(ctx context.Context, input *SetAccountActiveInput) (*AccountOutput, error) {
	userID, err := input.User()
	if err != nil {
		return nil, err
	}
	id, err := httpapi.ParseUUID(input.ID, "id")
	if err != nil {
		return nil, err
	}

	action := &actions.SetAccountActive{UserID: userID, ID: id, Active: input.Body.Active}
	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("accountID", id.String())
		logData.AddData("active", input.Body.Active)
	}
	if err := h.Operator.Process(ctx, action); err != nil {
		return nil, httpapi.Error(err, "failed to update account")
	}
	return &AccountOutput{Body: toAccount(action.Result)}, nil
}
