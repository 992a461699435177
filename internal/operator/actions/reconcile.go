package actions

import (
	"bytes"
	"context"
	"slices"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/budget"
	"github.com/carson-networks/finance-server/internal/domain"
	"github.com/carson-networks/finance-server/internal/storage"
)

// ledger holds the accounts one unit of work touches. Each account is loaded and
// locked once, so a revert followed by an apply on the same account compose.
type ledger struct {
	writer   *storage.Writer
	userID   uuid.UUID
	now      time.Time
	accounts map[uuid.UUID]*domain.FinancialAccount
	touched  []uuid.UUID
}

func newLedger(writer *storage.Writer, userID uuid.UUID, now time.Time) *ledger {
	return &ledger{
		writer:   writer,
		userID:   userID,
		now:      now,
		accounts: map[uuid.UUID]*domain.FinancialAccount{},
	}
}

// lock loads the referenced accounts for update. Ids are locked in ascending
// order so concurrent units of work cannot deadlock on the same pair.
func (l *ledger) lock(ctx context.Context, refs ...*uuid.UUID) error {
	var ids []uuid.UUID
	for _, ref := range refs {
		if ref == nil || *ref == uuid.Nil {
			continue
		}
		if _, loaded := l.accounts[*ref]; loaded || slices.Contains(ids, *ref) {
			continue
		}
		ids = append(ids, *ref)
	}
	slices.SortFunc(ids, func(a, b uuid.UUID) int {
		return bytes.Compare(a.Bytes(), b.Bytes())
	})

	for _, id := range ids {
		account, err := l.writer.Accounts.FindByUserAndIDForUpdate(ctx, l.userID, id)
		if err != nil {
			return err
		}
		if account == nil {
			return &domain.NotFoundError{Entity: "financial account", ID: id.String()}
		}
		l.accounts[id] = account
	}
	return nil
}

func (l *ledger) account(id *uuid.UUID) *domain.FinancialAccount {
	if id == nil {
		return nil
	}
	return l.accounts[*id]
}

// apply realizes tx's effect on its account: receita credits, despesa debits.
// The account must be active and, for despesa, hold at least the amount.
func (l *ledger) apply(tx *domain.Transaction) error {
	account := l.account(tx.AccountID)
	if account == nil {
		return nil
	}
	if err := checkApplicable(account, tx); err != nil {
		return err
	}
	switch tx.Type {
	case domain.TransactionTypeIncome:
		account.Credit(tx.Amount)
	case domain.TransactionTypeExpense:
		account.Debit(tx.Amount)
	default:
		return nil
	}
	l.touch(account)
	return nil
}

// revert undoes a previously applied effect. It is allowed on inactive accounts.
func (l *ledger) revert(tx *domain.Transaction) {
	account := l.account(tx.AccountID)
	if account == nil {
		return
	}
	switch tx.Type {
	case domain.TransactionTypeIncome:
		account.Debit(tx.Amount)
	case domain.TransactionTypeExpense:
		account.Credit(tx.Amount)
	default:
		return
	}
	l.touch(account)
}

func checkApplicable(account *domain.FinancialAccount, tx *domain.Transaction) error {
	if tx.IsTransfer() {
		return nil
	}
	if !account.IsActive() {
		return &domain.InactiveAccountError{AccountID: account.ID.String()}
	}
	if tx.IsExpense() && account.CurrentBalance.LessThan(tx.Amount) {
		return &domain.InsufficientBalanceError{
			AccountID: account.ID.String(),
			Current:   account.CurrentBalance,
			Requested: tx.Amount,
		}
	}
	return nil
}

func (l *ledger) touch(account *domain.FinancialAccount) {
	account.UpdatedAt = l.now
	if !slices.Contains(l.touched, account.ID) {
		l.touched = append(l.touched, account.ID)
	}
}

// persist writes every account whose balance moved.
func (l *ledger) persist(ctx context.Context) error {
	for _, id := range l.touched {
		if err := l.writer.Accounts.Update(ctx, l.accounts[id]); err != nil {
			return err
		}
	}
	return nil
}

// checkBudget runs the expense policy for tx against the current month. It
// returns nil, nil whenever the policy does not apply.
func checkBudget(ctx context.Context, writer *storage.Writer, tx *domain.Transaction, now time.Time) (*domain.BudgetWarning, error) {
	if !tx.IsExpense() {
		return nil, nil
	}
	ref := tx.CategoryRef()
	if ref.IsZero() {
		return nil, nil
	}

	settings, err := writer.Settings.FindByUserID(ctx, tx.UserID)
	if err != nil {
		return nil, err
	}
	if !budget.HasValidSettings(settings) {
		return nil, nil
	}

	categories, err := writer.Categories.FindByUser(ctx, tx.UserID)
	if err != nil {
		return nil, err
	}
	if ref.Resolve(categories) == nil {
		return nil, nil
	}

	period := budget.CurrentMonthPeriod(now)
	txs, err := writer.Transactions.FindByUserAndDateRange(ctx, tx.UserID, period.Start, period.End)
	if err != nil {
		return nil, err
	}

	result := budget.ValidateExpense(budget.ExpenseCheck{
		Amount:       tx.Amount,
		Category:     ref,
		Settings:     settings,
		Transactions: txs,
		Categories:   categories,
		Period:       period,
		ExcludeID:    tx.ID,
	})
	if err := result.Err(); err != nil {
		return nil, err
	}
	return result.Warning(), nil
}
