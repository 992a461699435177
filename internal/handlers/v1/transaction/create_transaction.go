package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-server/internal/handlers/httpapi"
	"github.com/carson-networks/finance-server/internal/logging"
	"github.com/carson-networks/finance-server/internal/operator/actions"
)

// CreateTransactionInput is the Huma input for creating a transaction.
type CreateTransactionInput struct {
	httpapi.UserHeader
	Body TransactionBody
}

// CreateTransactionHandler handles POST /v1/transaction.
type CreateTransactionHandler struct {
	Operator actionProcessor
}

// NewCreateTransactionHandler creates a new CreateTransactionHandler.
func NewCreateTransactionHandler(op actionProcessor) *CreateTransactionHandler {
	return &CreateTransactionHandler{Operator: op}
}

// Register registers the create transaction endpoint with the Huma API.
func (h *CreateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-transaction",
		Method:        http.MethodPost,
		Path:          "/v1/transaction",
		Summary:       "Create transaction",
		Description:   "Creates a transaction. A completed transaction is applied to its account immediately.",
		Tags:          []string{"Transactions"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

// parseCreateTransactionInput parses and validates the API input.
func parseCreateTransactionInput(input *CreateTransactionInput) (*actions.CreateTransaction, error) {
	userID, err := input.User()
	if err != nil {
		return nil, err
	}
	fields, err := parseTransactionBody(input.Body)
	if err != nil {
		return nil, err
	}
	return &actions.CreateTransaction{UserID: userID, Fields: fields}, nil
}

func (h *CreateTransactionHandler) handle(ctx context.Context, input *CreateTransactionInput) (*TransactionOutput, error) {
	logData := logging.GetLogData(ctx)
	action, err := parseCreateTransactionInput(input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("createTransactionMs")
	}
	err = h.Operator.Process(ctx, action)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, httpapi.Error(err, "failed to create transaction")
	}

	if logData != nil {
		logData.AddData("transactionID", action.Result.Transaction.ID.String())
	}
	return toOutput(action.Result), nil
}
