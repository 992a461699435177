package service

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// TransactionCursor identifies a position in a paginated result set
// and carries the limit and maxCreationTime so subsequent pages are consistent.
type TransactionCursor struct {
	Position        int
	Limit           int
	MaxCreationTime time.Time
}

// TransactionListFilter narrows a listing to one account.
type TransactionListFilter struct {
	AccountID *uuid.UUID
}
