package actions

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/domain"
	"github.com/carson-networks/finance-server/internal/storage"
)

// CreateTransaction records a new transaction. It starts pending and has no
// balance effect unless Fields.Status is completed, in which case it is created
// and completed in the same unit of work.
type CreateTransaction struct {
	UserID uuid.UUID
	Fields domain.TransactionFields
	Now    time.Time

	Result *TransactionResult
}

func (c *CreateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	c.Result = nil
	now := timestamp(c.Now)

	if err := validateStatus(c.Fields.Status); err != nil {
		return err
	}
	tx, err := domain.NewTransaction(c.UserID, c.Fields, now)
	if err != nil {
		return err
	}

	accounts := newLedger(writer, c.UserID, now)
	if err := accounts.lock(ctx, tx.AccountID); err != nil {
		return err
	}

	warning, err := checkBudget(ctx, writer, tx, now)
	if err != nil {
		return err
	}

	if c.Fields.Status == domain.TransactionStatusCompleted {
		if err := accounts.apply(tx); err != nil {
			return err
		}
		if err := tx.MarkCompleted(now); err != nil {
			return err
		}
	}

	if err := writer.Transactions.Create(ctx, tx); err != nil {
		return err
	}
	if err := accounts.persist(ctx); err != nil {
		return err
	}

	c.Result = &TransactionResult{Transaction: tx, Warning: warning}
	return nil
}
