package actions

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-server/internal/domain"
	"github.com/carson-networks/finance-server/internal/storage"
)

// UpsertFinanceSettings validates and stores the user's salary split.
type UpsertFinanceSettings struct {
	UserID      uuid.UUID
	Salary      decimal.Decimal
	Fixed       int
	Variable    int
	Investments int
	Now         time.Time

	Result *domain.UserFinanceSettings
}

func (u *UpsertFinanceSettings) Perform(ctx context.Context, writer *storage.Writer) error {
	u.Result = nil
	settings := &domain.UserFinanceSettings{
		UserID:      u.UserID,
		Salary:      u.Salary,
		Fixed:       u.Fixed,
		Variable:    u.Variable,
		Investments: u.Investments,
		UpdatedAt:   timestamp(u.Now),
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	if err := writer.Settings.Upsert(ctx, settings); err != nil {
		return err
	}

	u.Result = settings
	return nil
}
