package account

import (
	"context"
	"time"

	"github.com/carson-networks/finance-server/internal/domain"
	"github.com/carson-networks/finance-server/internal/operator/actions"
)

// Account is the API response model for a financial account.
type Account struct {
	ID             string `json:"id" doc:"Account UUID"`
	Name           string `json:"name" doc:"Account name"`
	Type           int    `json:"type" doc:"Account type: 0=Checking, 1=Savings, 2=Investment, 3=Wallet, 4=Credit card, 5=Other"`
	InitialBalance string `json:"initialBalance" doc:"Decimal balance the account was opened with"`
	CurrentBalance string `json:"currentBalance" doc:"Decimal live balance"`
	Active         bool   `json:"active" doc:"Inactive accounts reject balance-affecting operations"`
	CreatedAt      string `json:"createdAt" doc:"RFC3339 creation time"`
	UpdatedAt      string `json:"updatedAt" doc:"RFC3339 last update time"`
}

type actionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

func toAccount(a *domain.FinancialAccount) Account {
	return Account{
		ID:             a.ID.String(),
		Name:           a.Name,
		Type:           int(a.Type),
		InitialBalance: a.InitialBalance.StringFixed(2),
		CurrentBalance: a.CurrentBalance.StringFixed(2),
		Active:         a.Active,
		CreatedAt:      a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      a.UpdatedAt.Format(time.RFC3339),
	}
}
