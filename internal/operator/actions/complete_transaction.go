package actions

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/domain"
	"github.com/carson-networks/finance-server/internal/storage"
)

// CompleteTransaction moves a pending transaction to completed and applies its
// balance effect. Completing an already completed transaction is rejected.
type CompleteTransaction struct {
	UserID uuid.UUID
	ID     uuid.UUID
	Now    time.Time

	Result *TransactionResult
}

func (c *CompleteTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	c.Result = nil
	now := timestamp(c.Now)

	current, err := loadOwnedTransaction(ctx, writer, c.UserID, c.ID)
	if err != nil {
		return err
	}
	if current.IsCompleted() {
		return &domain.ValidationError{Field: "status", Message: "transaction is already completed"}
	}

	accounts := newLedger(writer, c.UserID, now)
	if err := accounts.lock(ctx, current.AccountID); err != nil {
		return err
	}
	if err := accounts.apply(current); err != nil {
		return err
	}
	if err := current.MarkCompleted(now); err != nil {
		return err
	}

	if err := writer.Transactions.Update(ctx, current); err != nil {
		return err
	}
	if err := accounts.persist(ctx); err != nil {
		return err
	}

	c.Result = &TransactionResult{Transaction: current}
	return nil
}
