package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/domain"
	"github.com/carson-networks/finance-server/internal/storage/account"
)

const defaultAccountLimit = 20

// AccountCursor identifies a position in a paginated result set.
type AccountCursor struct {
	Position int
	Limit    int
}

// AccountService reads a user's financial accounts.
type AccountService struct {
	accounts account.IReader
}

func NewAccountService(accounts account.IReader) *AccountService {
	return &AccountService{accounts: accounts}
}

// GetAccount retrieves one of the user's accounts by ID.
func (s *AccountService) GetAccount(ctx context.Context, userID, id uuid.UUID) (*domain.FinancialAccount, error) {
	acc, err := s.accounts.FindByUserAndID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if acc == nil {
		return nil, &domain.NotFoundError{Entity: "financial account", ID: id.String()}
	}
	return acc, nil
}

// ListAccounts returns a page of the user's accounts using cursor pagination.
func (s *AccountService) ListAccounts(ctx context.Context, userID uuid.UUID, cursor *AccountCursor) ([]*domain.FinancialAccount, *AccountCursor, error) {
	limit := defaultAccountLimit
	offset := 0
	if cursor != nil {
		limit = cursor.Limit
		offset = cursor.Position
	}

	result, err := s.accounts.List(ctx, &account.AccountFilter{
		UserID: userID,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, nil, err
	}

	if len(result.Accounts) == 0 {
		return nil, nil, nil
	}

	var nextCursor *AccountCursor
	if result.NextCursor != nil {
		nextCursor = &AccountCursor{
			Position: result.NextCursor.Position,
			Limit:    result.NextCursor.Limit,
		}
	}
	return result.Accounts, nextCursor, nil
}
