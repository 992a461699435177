package service

import (
	"github.com/carson-networks/finance-server/internal/storage"
)

// Service holds the read-side services. Writes go through the operator.
type Service struct {
	Transaction *TransactionService
	Account     *AccountService
	Budget      *BudgetService
}

// NewService creates a new Service reading committed state through reader.
func NewService(reader *storage.Reader) *Service {
	return &Service{
		Transaction: NewTransactionService(reader.Transactions),
		Account:     NewAccountService(reader.Accounts),
		Budget:      NewBudgetService(reader.Settings, reader.Categories, reader.Transactions),
	}
}
