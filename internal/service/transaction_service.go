package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/domain"
	"github.com/carson-networks/finance-server/internal/storage/transaction"
)

const defaultLimit = 20

// TransactionService reads transactions on behalf of a user.
type TransactionService struct {
	transactions transaction.IReader
}

func NewTransactionService(transactions transaction.IReader) *TransactionService {
	return &TransactionService{transactions: transactions}
}

// GetTransaction returns the user's transaction, NotFoundError if it does not
// exist, or UnauthorizedError if it belongs to someone else.
func (s *TransactionService) GetTransaction(ctx context.Context, userID, id uuid.UUID) (*domain.Transaction, error) {
	tx, err := s.transactions.FindByID(ctx, id)
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

// ListTransactions returns a page of the user's transactions using cursor-based pagination.
func (s *TransactionService) ListTransactions(
	ctx context.Context,
	userID uuid.UUID,
	listFilter TransactionListFilter,
	cursor *TransactionCursor,
) ([]*domain.Transaction, *TransactionCursor, error) {
	limit := defaultLimit
	offset := 0
	var maxCreationTime *time.Time
	if cursor != nil {
		limit = cursor.Limit
		offset = cursor.Position
		maxCreationTime = &cursor.MaxCreationTime
	}

	filter := &transaction.TransactionFilter{
		UserID:          userID,
		AccountID:       listFilter.AccountID,
		Limit:           limit,
		Offset:          offset,
		MaxCreationTime: maxCreationTime,
	}

	rows, err := s.transactions.List(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	if len(rows) == 0 {
		return nil, nil, nil
	}

	var nextCursor *TransactionCursor
	if len(rows) > limit {
		rows = rows[:limit]

		cursorMaxCreationTime := rows[0].CreatedAt
		if maxCreationTime != nil {
			cursorMaxCreationTime = *maxCreationTime
		}

		nextCursor = &TransactionCursor{
			Position:        offset + limit,
			Limit:           limit,
			MaxCreationTime: cursorMaxCreationTime,
		}
	}

	return rows, nextCursor, nil
}
