package actions

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/domain"
	"github.com/carson-networks/finance-server/internal/storage"
)

// IAction is a unit of work. Perform may run more than once when the storage
// reports a concurrency conflict, so it must derive all state from the writer.
type IAction interface {
	Perform(ctx context.Context, writer *storage.Writer) error
}

// TransactionResult is what the transaction lifecycle actions return on success.
type TransactionResult struct {
	Transaction *domain.Transaction
	// Warning is set when an expense was accepted above the warning threshold.
	Warning *domain.BudgetWarning
}

func timestamp(now time.Time) time.Time {
	if now.IsZero() {
		return time.Now().UTC()
	}
	return now
}

// loadOwnedTransaction locks the transaction and checks that it belongs to userID.
func loadOwnedTransaction(ctx context.Context, writer *storage.Writer, userID, id uuid.UUID) (*domain.Transaction, error) {
	tx, err := writer.Transactions.FindByIDForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, &domain.NotFoundError{Entity: "transaction", ID: id.String()}
	}
	if !tx.BelongsToUser(userID) {
		return nil, &domain.UnauthorizedError{Entity: "transaction", ID: id.String()}
	}
	return tx, nil
}

func validateStatus(status domain.TransactionStatus) error {
	if status == "" || status.Valid() {
		return nil
	}
	return &domain.ValidationError{Field: "status", Message: "must be pending or completed, got " + string(status)}
}
