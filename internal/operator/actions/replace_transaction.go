package actions

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/domain"
	"github.com/carson-networks/finance-server/internal/storage"
)

// ReplaceTransaction overwrites every editable field of a transaction. An empty
// Fields.Status keeps the current status.
type ReplaceTransaction struct {
	UserID uuid.UUID
	ID     uuid.UUID
	Fields domain.TransactionFields
	Now    time.Time

	Result *TransactionResult
}

func (r *ReplaceTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	r.Result = nil
	now := timestamp(r.Now)

	if err := validateStatus(r.Fields.Status); err != nil {
		return err
	}
	current, err := loadOwnedTransaction(ctx, writer, r.UserID, r.ID)
	if err != nil {
		return err
	}
	previous := current.Clone()

	if err := current.Replace(r.Fields, now); err != nil {
		return err
	}
	status := r.Fields.Status
	if status == "" {
		status = previous.Status
	}

	accounts := newLedger(writer, r.UserID, now)
	if err := accounts.lock(ctx, previous.AccountID, current.AccountID); err != nil {
		return err
	}

	warning, err := checkBudget(ctx, writer, current, now)
	if err != nil {
		return err
	}

	if err := transition(accounts, previous, current, status, now); err != nil {
		return err
	}

	if err := writer.Transactions.Update(ctx, current); err != nil {
		return err
	}
	if err := accounts.persist(ctx); err != nil {
		return err
	}

	r.Result = &TransactionResult{Transaction: current, Warning: warning}
	return nil
}

// transition reconciles balances for a status change from previous.Status to
// status, where current holds the updated fields:
//
//	pending   -> pending:   nothing
//	pending   -> completed: apply current
//	completed -> pending:   revert previous
//	completed -> completed: revert previous, then apply current
func transition(accounts *ledger, previous, current *domain.Transaction, status domain.TransactionStatus, now time.Time) error {
	if previous.IsCompleted() {
		accounts.revert(previous)
	}
	if status == domain.TransactionStatusCompleted {
		if err := accounts.apply(current); err != nil {
			return err
		}
	}

	switch {
	case previous.IsPending() && status == domain.TransactionStatusCompleted:
		return current.MarkCompleted(now)
	case previous.IsCompleted() && status == domain.TransactionStatusPending:
		return current.MarkPending(now)
	}
	return nil
}
