package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-server/internal/handlers/httpapi"
	"github.com/carson-networks/finance-server/internal/logging"
	"github.com/carson-networks/finance-server/internal/operator/actions"
)

// TransactionIDInput addresses a single transaction of the calling user.
type TransactionIDInput struct {
	httpapi.UserHeader
	ID string `path:"id" format:"uuid" doc:"Transaction UUID"`
}

// DeleteTransactionHandler handles DELETE /v1/transaction/{id}.
type DeleteTransactionHandler struct {
	Operator actionProcessor
}

func NewDeleteTransactionHandler(op actionProcessor) *DeleteTransactionHandler {
	return &DeleteTransactionHandler{Operator: op}
}

func (h *DeleteTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "delete-transaction",
		Method:        http.MethodDelete,
		Path:          "/v1/transaction/{id}",
		Summary:       "Delete transaction",
		Description:   "Deletes a transaction, reverting its balance effect when it was completed.",
		Tags:          []string{"Transactions"},
		DefaultStatus: http.StatusNoContent,
	}, h.handle)
}

func (h *DeleteTransactionHandler) handle(ctx context.Context, input *TransactionIDInput) (*struct{}, error) {
	userID, err := input.User()
	if err != nil {
		return nil, err
	}
	id, err := httpapi.ParseUUID(input.ID, "id")
	if err != nil {
		return nil, err
	}

	if logData := logging.GetLogData(ctx); logData != nil {
		defer logData.AddTiming("deleteTransactionMs")()
		logData.AddData("transactionID", id.String())
	}
	if err := h.Operator.Process(ctx, &actions.DeleteTransaction{UserID: userID, ID: id}); err != nil {
		return nil, httpapi.Error(err, "failed to delete transaction")
	}
	return nil, nil
}
