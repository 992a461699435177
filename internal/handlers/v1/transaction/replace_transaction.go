package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-server/internal/handlers/httpapi"
	"github.com/carson-networks/finance-server/internal/logging"
	"github.com/carson-networks/finance-server/internal/operator/actions"
)

// ReplaceTransactionInput is the Huma input for replacing a transaction.
type ReplaceTransactionInput struct {
	httpapi.UserHeader
	ID   string `path:"id" format:"uuid" doc:"Transaction UUID"`
	Body TransactionBody
}

// ReplaceTransactionHandler handles PUT /v1/transaction/{id}.
type ReplaceTransactionHandler struct {
	Operator actionProcessor
}

func NewReplaceTransactionHandler(op actionProcessor) *ReplaceTransactionHandler {
	return &ReplaceTransactionHandler{Operator: op}
}

func (h *ReplaceTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "replace-transaction",
		Method:      http.MethodPut,
		Path:        "/v1/transaction/{id}",
		Summary:     "Replace transaction",
		Description: "Overwrites every field of a transaction and reconciles the affected account balances.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *ReplaceTransactionHandler) handle(ctx context.Context, input *ReplaceTransactionInput) (*TransactionOutput, error) {
	userID, err := input.User()
	if err != nil {
		return nil, err
	}
	id, err := httpapi.ParseUUID(input.ID, "id")
	if err != nil {
		return nil, err
	}
	fields, err := parseTransactionBody(input.Body)
	if err != nil {
		return nil, err
	}

	action := &actions.ReplaceTransaction{UserID: userID, ID: id, Fields: fields}
	if logData := logging.GetLogData(ctx); logData != nil {
		defer logData.AddTiming("replaceTransactionMs")()
		logData.AddData("transactionID", id.String())
	}
	if err := h.Operator.Process(ctx, action); err != nil {
		return nil, httpapi.Error(err, "failed to replace transaction")
	}
	return toOutput(action.Result), nil
}
