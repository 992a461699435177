package transaction

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

// actionProcessor runs an action through the operator's unit of work.
type actionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// Transaction is the API response model for a transaction.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID                string `json:"id" doc:"Transaction UUID"`
	Descricao         string `json:"descricao" doc:"Description"`
	Valor             string `json:"valor" doc:"Decimal amount"`
	Tipo              string `json:"tipo" doc:"receita, despesa or transferencia"`
	Categoria         string `json:"categoria,omitempty" doc:"Legacy category name"`
	CategoriaID       string `json:"categoriaId,omitempty" doc:"Category UUID"`
	Subcategoria      string `json:"subcategoria,omitempty"`
	Data              string `json:"data" doc:"RFC3339 transaction date"`
	Status            string `json:"status" doc:"pending or completed"`
	Observacoes       string `json:"observacoes,omitempty"`
	ContaFinanceiraID string `json:"contaFinanceiraId,omitempty" doc:"Financial account UUID"`
	CreatedAt         string `json:"createdAt" doc:"RFC3339 creation time"`
	UpdatedAt         string `json:"updatedAt" doc:"RFC3339 last update time"`
}

// BudgetWarning is attached to a response when an expense was accepted above
// the warning threshold.
type BudgetWarning struct {
	Bucket     string `json:"bucket" doc:"Budget bucket"`
	Percentage string `json:"percentage" doc:"Projected usage of the bucket, in percent"`
	Message    string `json:"message"`
}

// TransactionResponseBody wraps a transaction with its optional budget warning.
type TransactionResponseBody struct {
	Transaction Transaction    `json:"transaction"`
	Warning     *BudgetWarning `json:"warning,omitempty" doc:"Present when the expense is close to its budget"`
}

// TransactionOutput is the Huma output shared by the transaction write endpoints.
type TransactionOutput struct {
	Body TransactionResponseBody
}

// TransactionBody is the full set of editable fields, used to create or replace
// a transaction.
type TransactionBody struct {
	Descricao         string `json:"descricao" minLength:"1" doc:"Description"`
	Valor             string `json:"valor" doc:"Decimal amount, greater than zero"`
	Tipo              string `json:"tipo" enum:"receita,despesa,transferencia" doc:"Transaction type"`
	Categoria         string `json:"categoria,omitempty" doc:"Legacy category name, used when categoriaId is absent"`
	CategoriaID       string `json:"categoriaId,omitempty" doc:"Category UUID"`
	Subcategoria      string `json:"subcategoria,omitempty"`
	Data              string `json:"data" format:"date-time" doc:"RFC3339 transaction date"`
	Status            string `json:"status,omitempty" enum:"pending,completed" doc:"Defaults to pending on create and to the current status on replace"`
	Observacoes       string `json:"observacoes,omitempty"`
	ContaFinanceiraID string `json:"contaFinanceiraId,omitempty" doc:"Financial account UUID"`
}

// parseTransactionBody converts the request body into domain fields. Range
// checks are left to the domain.
func parseTransactionBody(body TransactionBody) (domain.TransactionFields, error) {
	amount, err := decimal.NewFromString(body.Valor)
	if err != nil {
		return domain.TransactionFields{}, huma.NewError(http.StatusBadRequest, "invalid valor", err)
	}
	date, err := time.Parse(time.RFC3339, body.Data)
	if err != nil {
		return domain.TransactionFields{}, huma.NewError(http.StatusBadRequest, "invalid data", err)
	}
	categoryID, err := httpapi.ParseOptionalUUID(body.CategoriaID, "categoriaId")
	if err != nil {
		return domain.TransactionFields{}, err
	}
	accountID, err := httpapi.ParseOptionalUUID(body.ContaFinanceiraID, "contaFinanceiraId")
	if err != nil {
		return domain.TransactionFields{}, err
	}

	return domain.TransactionFields{
		Description: body.Descricao,
		Amount:      amount,
		Type:        domain.TransactionType(body.Tipo),
		Category:    body.Categoria,
		CategoryID:  categoryID,
		Subcategory: body.Subcategoria,
		Date:        date,
		Status:      domain.TransactionStatus(body.Status),
		Notes:       body.Observacoes,
		AccountID:   accountID,
	}, nil
}

func toTransaction(tx *domain.Transaction) Transaction {
	resp := Transaction{
		ID:           tx.ID.String(),
		Descricao:    tx.Description,
		Valor:        tx.Amount.StringFixed(2),
		Tipo:         string(tx.Type),
		Categoria:    tx.Category,
		Subcategoria: tx.Subcategory,
		Data:         tx.Date.Format(time.RFC3339),
		Status:       string(tx.Status),
		Observacoes:  tx.Notes,
		CreatedAt:    tx.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    tx.UpdatedAt.Format(time.RFC3339),
	}
	if tx.CategoryID != nil {
		resp.CategoriaID = tx.CategoryID.String()
	}
	if tx.AccountID != nil {
		resp.ContaFinanceiraID = tx.AccountID.String()
	}
	return resp
}

func toOutput(result *actions.TransactionResult) *TransactionOutput {
	out := &TransactionOutput{Body: TransactionResponseBody{Transaction: toTransaction(result.Transaction)}}
	if w := result.Warning; w != nil {
		out.Body.Warning = &BudgetWarning{
			Bucket:     string(w.Bucket),
			Percentage: w.Percentage.StringFixed(2),
			Message:    w.Message,
		}
	}
	return out
}
