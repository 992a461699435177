package transaction

import (
	"context"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/finance-server/internal/domain"
	"github.com/carson-networks/finance-server/internal/operator/actions"
	"github.com/carson-networks/finance-server/internal/service"
)

type mockOperator struct {
	mock.Mock
}

func (m *mockOperator) Process(ctx context.Context, action actions.IAction) error {
	args := m.Called(ctx, action)
	return args.Error(0)
}

type mockTransactionService struct {
	mock.Mock
}

func (m *mockTransactionService) GetTransaction(ctx context.Context, userID, id uuid.UUID) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *mockTransactionService) ListTransactions(
	ctx context.Context,
	userID uuid.UUID,
	filter service.TransactionListFilter,
	cursor *service.TransactionCursor,
) ([]*domain.Transaction, *service.TransactionCursor, error) {
	args := m.Called(ctx, userID, filter, cursor)
	var txs []*domain.Transaction
	if args.Get(0) != nil {
		txs = args.Get(0).([]*domain.Transaction)
	}
	var next *service.TransactionCursor
	if args.Get(1) != nil {
		next = args.Get(1).(*service.TransactionCursor)
	}
	return txs, next, args.Error(2)
}

// newTestAPI registers every transaction handler against a humatest API.
func newTestAPI(t *testing.T, op actionProcessor, svc *mockTransactionService) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewCreateTransactionHandler(op).Register(api)
	NewReplaceTransactionHandler(op).Register(api)
	NewPatchTransactionHandler(op).Register(api)
	NewDeleteTransactionHandler(op).Register(api)
	NewCompleteTransactionHandler(op).Register(api)
	NewGetTransactionHandler(svc).Register(api)
	NewListTransactionsHandler(svc).Register(api)
	return api
}

func userHeader(id uuid.UUID) string {
	return "X-User-ID: " + id.String()
}
