package transaction

import (
	"context"
	"net/http"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/aarondl/opt/omitnull"
	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-server/internal/domain"
	"github.com/carson-networks/finance-server/internal/handlers/httpapi"
	"github.com/carson-networks/finance-server/internal/logging"
	"github.com/carson-networks/finance-server/internal/operator/actions"
)

// PatchTransactionBody lists the fields a partial update may change. Absent
// fields are left alone. For the optional fields an empty string clears the value.
type PatchTransactionBody struct {
	Descricao         *string `json:"descricao,omitempty" minLength:"1"`
	Valor             *string `json:"valor,omitempty" doc:"Decimal amount, greater than zero"`
	Tipo              *string `json:"tipo,omitempty" enum:"receita,despesa,transferencia"`
	Categoria         *string `json:"categoria,omitempty"`
	CategoriaID       *string `json:"categoriaId,omitempty" doc:"Category UUID, empty to clear"`
	Subcategoria      *string `json:"subcategoria,omitempty"`
	Data              *string `json:"data,omitempty" format:"date-time"`
	Status            *string `json:"status,omitempty" enum:"pending,completed"`
	Observacoes       *string `json:"observacoes,omitempty"`
	ContaFinanceiraID *string `json:"contaFinanceiraId,omitempty" doc:"Financial account UUID, empty to detach"`
}

// PatchTransactionInput is the Huma input for patching a transaction.
type PatchTransactionInput struct {
	httpapi.UserHeader
	ID   string `path:"id" format:"uuid" doc:"Transaction UUID"`
	Body PatchTransactionBody
}

// PatchTransactionHandler handles PATCH /v1/transaction/{id}.
type PatchTransactionHandler struct {
	Operator actionProcessor
}

func NewPatchTransactionHandler(op actionProcessor) *PatchTransactionHandler {
	return &PatchTransactionHandler{Operator: op}
}

func (h *PatchTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "patch-transaction",
		Method:      http.MethodPatch,
		Path:        "/v1/transaction/{id}",
		Summary:     "Patch transaction",
		Description: "Updates the supplied fields of a transaction. The type of a completed transaction cannot change.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

// parsePatchTransactionBody converts the body into a patch, keeping absent and
// cleared fields apart.
func parsePatchTransactionBody(body PatchTransactionBody) (actions.TransactionPatch, error) {
	var patch actions.TransactionPatch

	if body.Descricao != nil {
		patch.Description = omit.From(*body.Descricao)
	}
	if body.Valor != nil {
		amount, err := decimal.NewFromString(*body.Valor)
		if err != nil {
			return patch, huma.NewError(http.StatusBadRequest, "invalid valor", err)
		}
		patch.Amount = omit.From(amount)
	}
	if body.Tipo != nil {
		patch.Type = omit.From(domain.TransactionType(*body.Tipo))
	}
	if body.Data != nil {
		date, err := time.Parse(time.RFC3339, *body.Data)
		if err != nil {
			return patch, huma.NewError(http.StatusBadRequest, "invalid data", err)
		}
		patch.Date = omit.From(date)
	}
	if body.Status != nil {
		patch.Status = omit.From(domain.TransactionStatus(*body.Status))
	}

	patch.Category = nullableString(body.Categoria)
	patch.Subcategory = nullableString(body.Subcategoria)
	patch.Notes = nullableString(body.Observacoes)

	var err error
	if patch.CategoryID, err = nullableUUID(body.CategoriaID, "categoriaId"); err != nil {
		return patch, err
	}
	if patch.AccountID, err = nullableUUID(body.ContaFinanceiraID, "contaFinanceiraId"); err != nil {
		return patch, err
	}
	return patch, nil
}

func nullableString(v *string) omitnull.Val[string] {
	switch {
	case v == nil:
		return omitnull.Val[string]{}
	case *v == "":
		return omitnull.FromPtr[string](nil)
	}
	return omitnull.From(*v)
}

func nullableUUID(v *string, field string) (omitnull.Val[uuid.UUID], error) {
	switch {
	case v == nil:
		return omitnull.Val[uuid.UUID]{}, nil
	case *v == "":
		return omitnull.FromPtr[uuid.UUID](nil), nil
	}
	id, err := httpapi.ParseUUID(*v, field)
	if err != nil {
		return omitnull.Val[uuid.UUID]{}, err
	}
	return omitnull.From(id), nil
}

func (h *PatchTransactionHandler) handle(ctx context.Context, input *PatchTransactionInput) (*TransactionOutput, error) {
	userID, err := input.User()
	if err != nil {
		return nil, err
	}
	id, err := httpapi.ParseUUID(input.ID, "id")
	if err != nil {
		return nil, err
	}
	patch, err := parsePatchTransactionBody(input.Body)
	if err != nil {
		return nil, err
	}

	action := &actions.PatchTransaction{UserID: userID, ID: id, Patch: patch}
	if logData := logging.GetLogData(ctx); logData != nil {
		defer logData.AddTiming("patchTransactionMs")()
		logData.AddData("transactionID", id.String())
	}
	if err := h.Operator.Process(ctx, action); err != nil {
		return nil, httpapi.Error(err, "failed to patch transaction")
	}
	return toOutput(action.Result), nil
}
