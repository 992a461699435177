package actions

import (
	"context"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/aarondl/opt/omitnull"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-server/internal/domain"
	"github.com/carson-networks/finance-server/internal/storage"
)

// TransactionPatch lists the fields a partial update may change. Unset fields
// are left alone; a null optional field is cleared.
type TransactionPatch struct {
	Description omit.Val[string]
	Amount      omit.Val[decimal.Decimal]
	Type        omit.Val[domain.TransactionType]
	Category    omitnull.Val[string]
	CategoryID  omitnull.Val[uuid.UUID]
	Subcategory omitnull.Val[string]
	Date        omit.Val[time.Time]
	Status      omit.Val[domain.TransactionStatus]
	Notes       omitnull.Val[string]
	AccountID   omitnull.Val[uuid.UUID]
}

func (p TransactionPatch) applyTo(tx *domain.Transaction, now time.Time) error {
	if v, ok := p.Description.Get(); ok {
		if err := tx.UpdateDescription(v, now); err != nil {
			return err
		}
	}
	if v, ok := p.Amount.Get(); ok {
		if err := tx.UpdateAmount(v, now); err != nil {
			return err
		}
	}
	if v, ok := p.Type.Get(); ok {
		if err := tx.UpdateType(v, now); err != nil {
			return err
		}
	}
	if v, ok := p.Date.Get(); ok {
		if err := tx.UpdateDate(v, now); err != nil {
			return err
		}
	}
	if !p.Category.IsUnset() || !p.CategoryID.IsUnset() {
		name, id := tx.Category, tx.CategoryID
		if !p.Category.IsUnset() {
			name = p.Category.GetOrZero()
		}
		if !p.CategoryID.IsUnset() {
			id = p.CategoryID.MustPtr()
		}
		tx.UpdateCategory(name, id, now)
	}
	if !p.Subcategory.IsUnset() {
		tx.UpdateSubcategory(p.Subcategory.GetOrZero(), now)
	}
	if !p.Notes.IsUnset() {
		tx.UpdateNotes(p.Notes.GetOrZero(), now)
	}
	if !p.AccountID.IsUnset() {
		tx.UpdateAccount(p.AccountID.MustPtr(), now)
	}
	return nil
}

// PatchTransaction applies a partial update, reconciling balances according to
// the old and new status. The type of a completed transaction cannot change.
type PatchTransaction struct {
	UserID uuid.UUID
	ID     uuid.UUID
	Patch  TransactionPatch
	Now    time.Time

	Result *TransactionResult
}

func (p *PatchTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	p.Result = nil
	now := timestamp(p.Now)

	current, err := loadOwnedTransaction(ctx, writer, p.UserID, p.ID)
	if err != nil {
		return err
	}
	previous := current.Clone()

	status := previous.Status
	if v, ok := p.Patch.Status.Get(); ok {
		if !v.Valid() {
			return &domain.ValidationError{Field: "status", Message: "must be pending or completed, got " + string(v)}
		}
		status = v
	}
	if v, ok := p.Patch.Type.Get(); ok && previous.IsCompleted() && v != previous.Type {
		return &domain.ValidationError{Field: "tipo", Message: "cannot change the type of a completed transaction"}
	}

	if err := p.Patch.applyTo(current, now); err != nil {
		return err
	}

	accounts := newLedger(writer, p.UserID, now)
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

	p.Result = &TransactionResult{Transaction: current, Warning: warning}
	return nil
}
