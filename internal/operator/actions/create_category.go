package actions

import (
	"context"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/domain"
	"github.com/carson-networks/finance-server/internal/storage"
)

// CreateCategory adds a category. Names are unique per user and type, ignoring case.
type CreateCategory struct {
	UserID       uuid.UUID
	CategoryName string
	Type         domain.CategoryType
	RuleCategory domain.Bucket
	Now          time.Time

	Result *domain.FinancialCategory
}

func (c *CreateCategory) Perform(ctx context.Context, writer *storage.Writer) error {
	c.Result = nil
	category, err := domain.NewFinancialCategory(c.UserID, c.CategoryName, c.Type, c.RuleCategory, timestamp(c.Now))
	if err != nil {
		return err
	}

	existing, err := writer.Categories.FindByUser(ctx, c.UserID)
	if err != nil {
		return err
	}
	for _, e := range existing {
		if e.Type == category.Type && strings.EqualFold(e.Name, category.Name) {
			return &domain.ValidationError{Field: "nome", Message: "a category named " + category.Name + " already exists"}
		}
	}

	if err := writer.Categories.Create(ctx, category); err != nil {
		return err
	}

	c.Result = category
	return nil
}
