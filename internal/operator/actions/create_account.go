package actions

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-server/internal/domain"
	"github.com/carson-networks/finance-server/internal/storage"
)

type CreateAccount struct {
	UserID         uuid.UUID
	Name           string
	Type           domain.AccountType
	InitialBalance decimal.Decimal
	Now            time.Time

	Result *domain.FinancialAccount
}

func (c *CreateAccount) Perform(ctx context.Context, writer *storage.Writer) error {
	c.Result = nil
	account, err := domain.NewFinancialAccount(c.UserID, c.Name, c.Type, c.InitialBalance, timestamp(c.Now))
	if err != nil {
		return err
	}

	if err := writer.Accounts.Create(ctx, account); err != nil {
		return err
	}

	c.Result = account
	return nil
}

// SetAccountActive activates or deactivates an account. It never moves the balance.
type SetAccountActive struct {
	UserID uuid.UUID
	ID     uuid.UUID
	Active bool
	Now    time.Time

	Result *domain.FinancialAccount
}

func (s *SetAccountActive) Perform(ctx context.Context, writer *storage.Writer) error {
	s.Result = nil
	account, err := writer.Accounts.FindByUserAndIDForUpdate(ctx, s.UserID, s.ID)
	if err != nil {
		return err
	}
	if account == nil {
		return &domain.NotFoundError{Entity: "financial account", ID: s.ID.String()}
	}

	account.SetActive(s.Active, timestamp(s.Now))
	if err := writer.Accounts.Update(ctx, account); err != nil {
		return err
	}

	s.Result = account
	return nil
}
