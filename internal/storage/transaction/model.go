package transaction

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-server/internal/domain"
)

// TransactionFilter specifies filters for listing a user's transactions.
type TransactionFilter struct {
	UserID          uuid.UUID
	AccountID       *uuid.UUID
	Limit           int
	Offset          int
	MaxCreationTime *time.Time
}

// IReader is the read side of transaction storage.
type IReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)
	FindByUserAndDateRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*domain.Transaction, error)
	// List returns up to filter.Limit+1 rows so callers can detect a next page.
	List(ctx context.Context, filter *TransactionFilter) ([]*domain.Transaction, error)
}

// IWriter is transaction storage inside a unit of work.
type IWriter interface {
	IReader
	// FindByIDForUpdate locks the row until the unit of work ends.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)
	Create(ctx context.Context, tx *domain.Transaction) error
	Update(ctx context.Context, tx *domain.Transaction) error
	Delete(ctx context.Context, id uuid.UUID) error
}

var columns = []any{
	"id", "user_id", "description", "amount", "type", "category", "category_id",
	"subcategory", "occurred_at", "status", "notes", "account_id", "created_at", "updated_at",
}

type transactionRow struct {
	ID          uuid.UUID       `db:"id"`
	UserID      uuid.UUID       `db:"user_id"`
	Description string          `db:"description"`
	Amount      decimal.Decimal `db:"amount"`
	Type        string          `db:"type"`
	Category    string          `db:"category"`
	CategoryID  uuid.NullUUID   `db:"category_id"`
	Subcategory string          `db:"subcategory"`
	OccurredAt  time.Time       `db:"occurred_at"`
	Status      string          `db:"status"`
	Notes       string          `db:"notes"`
	AccountID   uuid.NullUUID   `db:"account_id"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

func (r transactionRow) toDomain() *domain.Transaction {
	return &domain.Transaction{
		ID:          r.ID,
		UserID:      r.UserID,
		Description: r.Description,
		Amount:      r.Amount,
		Type:        domain.TransactionType(r.Type),
		Category:    r.Category,
		CategoryID:  fromNullUUID(r.CategoryID),
		Subcategory: r.Subcategory,
		Date:        r.OccurredAt,
		Status:      domain.TransactionStatus(r.Status),
		Notes:       r.Notes,
		AccountID:   fromNullUUID(r.AccountID),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func toNullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}

func fromNullUUID(id uuid.NullUUID) *uuid.UUID {
	if !id.Valid {
		return nil
	}
	v := id.UUID
	return &v
}
