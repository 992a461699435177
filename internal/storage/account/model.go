package account

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-server/internal/domain"
)

// AccountFilter specifies pagination for listing a user's accounts.
type AccountFilter struct {
	UserID uuid.UUID
	Limit  int
	Offset int
}

// AccountCursor is the position of the next page.
type AccountCursor struct {
	Position int
	Limit    int
}

type AccountListResult struct {
	Accounts   []*domain.FinancialAccount
	NextCursor *AccountCursor
}

type IReader interface {
	// FindByUserAndID returns nil, nil when no account with that id belongs to the user.
	FindByUserAndID(ctx context.Context, userID, id uuid.UUID) (*domain.FinancialAccount, error)
	List(ctx context.Context, filter *AccountFilter) (*AccountListResult, error)
}

type IWriter interface {
	IReader
	FindByUserAndIDForUpdate(ctx context.Context, userID, id uuid.UUID) (*domain.FinancialAccount, error)
	Create(ctx context.Context, account *domain.FinancialAccount) error
	Update(ctx context.Context, account *domain.FinancialAccount) error
}

var columns = []any{
	"id", "user_id", "name", "type", "initial_balance", "current_balance", "active", "created_at", "updated_at",
}

type accountRow struct {
	ID             uuid.UUID       `db:"id"`
	UserID         uuid.UUID       `db:"user_id"`
	Name           string          `db:"name"`
	Type           int16           `db:"type"`
	InitialBalance decimal.Decimal `db:"initial_balance"`
	CurrentBalance decimal.Decimal `db:"current_balance"`
	Active         bool            `db:"active"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}

func (r accountRow) toDomain() *domain.FinancialAccount {
	return &domain.FinancialAccount{
		ID:             r.ID,
		UserID:         r.UserID,
		Name:           r.Name,
		Type:           domain.AccountType(r.Type),
		InitialBalance: r.InitialBalance,
		CurrentBalance: r.CurrentBalance,
		Active:         r.Active,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}
