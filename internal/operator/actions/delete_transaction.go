package actions

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/storage"
)

// DeleteTransaction removes a transaction, reverting its balance effect first
// when it was completed.
type DeleteTransaction struct {
	UserID uuid.UUID
	ID     uuid.UUID
	Now    time.Time
}

func (d *DeleteTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	now := timestamp(d.Now)

	current, err := loadOwnedTransaction(ctx, writer, d.UserID, d.ID)
	if err != nil {
		return err
	}

	accounts := newLedger(writer, d.UserID, now)
	if current.IsCompleted() {
		if err := accounts.lock(ctx, current.AccountID); err != nil {
			return err
		}
		accounts.revert(current)
	}

	if err := writer.Transactions.Delete(ctx, current.ID); err != nil {
		return err
	}
	return accounts.persist(ctx)
}
