package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-server/internal/handlers/httpapi"
	"github.com/carson-networks/finance-server/internal/logging"
	"github.com/carson-networks/finance-server/internal/operator/actions"
)

// CompleteTransactionHandler handles POST /v1/transaction/{id}/complete.
type CompleteTransactionHandler struct {
	Operator actionProcessor
}

func NewCompleteTransactionHandler(op actionProcessor) *CompleteTransactionHandler {
	return &CompleteTransactionHandler{Operator: op}
}

func (h *CompleteTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "complete-transaction",
		Method:      http.MethodPost,
		Path:        "/v1/transaction/{id}/complete",
		Summary:     "Complete transaction",
		Description: "Marks a pending transaction as completed and applies it to its account.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *CompleteTransactionHandler) handle(ctx context.Context, input *TransactionIDInput) (*TransactionOutput, error) {
	userID, err := input.User()
	if err != nil {
		return nil, err
	}
	id, err := httpapi.ParseUUID(input.ID, "id")
	if err != nil {
		return nil, err
	}

	action := &actions.CompleteTransaction{UserID: userID, ID: id}
	if logData := logging.GetLogData(ctx); logData != nil {
		defer logData.AddTiming("completeTransactionMs")()
		logData.AddData("transactionID", id.String())
	}
	if err := h.Operator.Process(ctx, action); err != nil {
		return nil, httpapi.Error(err, "failed to complete transaction")
	}
	return toOutput(action.Result), nil
}
