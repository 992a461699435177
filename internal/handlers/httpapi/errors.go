package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-server/internal/domain"
)

// Error converts a domain error into a huma status error. Anything unrecognised
// becomes a 500 with summary as its message.
func Error(err error, summary string) error {
	var (
		validation   *domain.ValidationError
		notFound     *domain.NotFoundError
		unauthorized *domain.UnauthorizedError
		inactive     *domain.InactiveAccountError
		insufficient *domain.InsufficientBalanceError
		exceeded     *domain.BudgetExceededError
		conflict     *domain.ConcurrencyConflictError
	)

	switch {
	case errors.As(err, &validation):
		return huma.NewError(http.StatusBadRequest, validation.Error(), &huma.ErrorDetail{
			Message:  validation.Message,
			Location: "body." + validation.Field,
		})
	case errors.As(err, &notFound):
		return huma.NewError(http.StatusNotFound, notFound.Error())
	case errors.As(err, &unauthorized):
		return huma.NewError(http.StatusForbidden, unauthorized.Error())
	case errors.As(err, &inactive):
		return huma.NewError(http.StatusUnprocessableEntity, inactive.Error(), &huma.ErrorDetail{
			Message:  "account is inactive",
			Location: "body.contaFinanceiraId",
			Value:    inactive.AccountID,
		})
	case errors.As(err, &insufficient):
		return huma.NewError(http.StatusUnprocessableEntity, insufficient.Error(), &huma.ErrorDetail{
			Message:  "current balance " + insufficient.Current.StringFixed(2),
			Location: "body.valor",
			Value:    insufficient.Requested.StringFixed(2),
		})
	case errors.As(err, &exceeded):
		return huma.NewError(http.StatusUnprocessableEntity, exceeded.Error(), &huma.ErrorDetail{
			Message:  string(exceeded.Bucket),
			Location: "body.valor",
			Value:    exceeded.Percentage.StringFixed(2),
		})
	case errors.As(err, &conflict):
		return huma.NewError(http.StatusConflict, "concurrent update, retry the request", err)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return huma.NewError(http.StatusServiceUnavailable, summary, err)
	}
	return huma.NewError(http.StatusInternalServerError, summary, err)
}
