package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/finance-server/internal/domain"
)

func TestError_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "validation", err: &domain.ValidationError{Field: "valor", Message: "must be greater than zero"}, status: http.StatusBadRequest},
		{name: "not found", err: &domain.NotFoundError{Entity: "transaction", ID: "x"}, status: http.StatusNotFound},
		{name: "unauthorized", err: &domain.UnauthorizedError{Entity: "transaction", ID: "x"}, status: http.StatusForbidden},
		{name: "inactive", err: &domain.InactiveAccountError{AccountID: "a"}, status: http.StatusUnprocessableEntity},
		{name: "insufficient", err: &domain.InsufficientBalanceError{Current: decimal.NewFromInt(1), Requested: decimal.NewFromInt(2)}, status: http.StatusUnprocessableEntity},
		{name: "budget", err: &domain.BudgetExceededError{Bucket: domain.BucketFuture, Percentage: decimal.NewFromInt(115)}, status: http.StatusUnprocessableEntity},
		{name: "conflict", err: &domain.ConcurrencyConflictError{Err: errors.New("40001")}, status: http.StatusConflict},
		{name: "wrapped", err: fmt.Errorf("perform: %w", &domain.NotFoundError{Entity: "transaction"}), status: http.StatusNotFound},
		{name: "cancelled", err: context.Canceled, status: http.StatusServiceUnavailable},
		{name: "unknown", err: errors.New("boom"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var statusErr huma.StatusError
			require.ErrorAs(t, Error(tt.err, "failed"), &statusErr)
			assert.Equal(t, tt.status, statusErr.GetStatus())
		})
	}
}

func TestError_BudgetExceededCarriesPercentage(t *testing.T) {
	err := Error(&domain.BudgetExceededError{Bucket: domain.BucketFuture, Percentage: decimal.NewFromInt(115)}, "failed")

	var model *huma.ErrorModel
	require.ErrorAs(t, err, &model)
	require.Len(t, model.Errors, 1)
	assert.Equal(t, "115.00", model.Errors[0].Value)
	assert.Equal(t, "futuro", model.Errors[0].Message)
}

func TestUserHeader(t *testing.T) {
	_, err := UserHeader{UserID: "00000000-0000-0000-0000-000000000000"}.User()
	assert.Error(t, err)

	id, err := UserHeader{UserID: "6ba7b810-9dad-11d1-80b4-00c04fd430c8"}.User()
	assert.NoError(t, err)
	assert.Equal(t, "6ba7b810-9dad-11d1-80b4-00c04fd430c8", id.String())
}
