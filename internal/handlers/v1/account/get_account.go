package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/domain"
	"github.com/carson-networks/finance-server/internal/handlers/httpapi"
)

// AccountIDInput addresses a single account of the calling user.
type AccountIDInput struct {
	httpapi.UserHeader
	ID string `path:"id" format:"uuid" doc:"Account UUID"`
}

type accountGetter interface {
	GetAccount(ctx context.Context, userID, id uuid.UUID) (*domain.FinancialAccount, error)
}

// GetAccountHandler handles GET /v1/account/{id}.
type GetAccountHandler struct {
	AccountService accountGetter
}

func NewGetAccountHandler(svc accountGetter) *GetAccountHandler {
	return &GetAccountHandler{AccountService: svc}
}

func (h *GetAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-account",
		Method:      http.MethodGet,
		Path:        "/v1/account/{id}",
		Summary:     "Get an account",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func (h *GetAccountHandler) handle(ctx context.Context, input *AccountIDInput) (*AccountOutput, error) {
	userID, err := input.User()
	if err != nil {
		return nil, err
	}
	id, err := httpapi.ParseUUID(input.ID, "id")
	if err != nil {
		return nil, err
	}

	acc, err := h.AccountService.GetAccount(ctx, userID, id)
	if err != nil {
		return nil, httpapi.Error(err, "failed to get account")
	}
	return &AccountOutput{Body: toAccount(acc)}, nil
}
