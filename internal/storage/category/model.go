package category

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/domain"
)

type IReader interface {
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*domain.FinancialCategory, error)
}

type IWriter interface {
	IReader
	Create(ctx context.Context, category *domain.FinancialCategory) error
}

type categoryRow struct {
	ID           uuid.UUID `db:"id"`
	UserID       uuid.UUID `db:"user_id"`
	Name         string    `db:"name"`
	Type         string    `db:"type"`
	RuleCategory string    `db:"rule_category"`
	CreatedAt    time.Time `db:"created_at"`
}

func (r categoryRow) toDomain() *domain.FinancialCategory {
	return &domain.FinancialCategory{
		ID:           r.ID,
		UserID:       r.UserID,
		Name:         r.Name,
		Type:         domain.CategoryType(r.Type),
		RuleCategory: domain.Bucket(r.RuleCategory),
		CreatedAt:    r.CreatedAt,
	}
}
