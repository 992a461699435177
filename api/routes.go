package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/finance-server/internal/handlers/v1/account"
	"github.com/carson-networks/finance-server/internal/handlers/v1/budget"
	"github.com/carson-networks/finance-server/internal/handlers/v1/status"
	"github.com/carson-networks/finance-server/internal/handlers/v1/transaction"
	"github.com/carson-networks/finance-server/internal/logging"
	"github.com/carson-networks/finance-server/internal/operator"
	"github.com/carson-networks/finance-server/internal/service"
)

const shutdownTimeout = 10 * time.Second

type Rest struct {
	Logger   *logrus.Logger
	Port     string
	Service  *service.Service
	Operator *operator.OperatorDelegator
	Health   []status.Pinger
}

// Handler builds the mux serving /status and every versioned API route.
func (r *Rest) Handler() http.Handler {
	mux := http.NewServeMux()

	statusHandler := status.NewHandler(r.Health...)
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	api := humago.New(mux, huma.DefaultConfig("Finance Server", "1.0.0"))
	api.UseMiddleware(logging.Middleware(r.Logger))

	transaction.NewCreateTransactionHandler(r.Operator).Register(api)
	transaction.NewReplaceTransactionHandler(r.Operator).Register(api)
	transaction.NewPatchTransactionHandler(r.Operator).Register(api)
	transaction.NewDeleteTransactionHandler(r.Operator).Register(api)
	transaction.NewCompleteTransactionHandler(r.Operator).Register(api)
	transaction.NewGetTransactionHandler(r.Service.Transaction).Register(api)
	transaction.NewListTransactionsHandler(r.Service.Transaction).Register(api)

	account.NewCreateAccountHandler(r.Operator).Register(api)
	account.NewSetAccountActiveHandler(r.Operator).Register(api)
	account.NewGetAccountHandler(r.Service.Account).Register(api)
	account.NewListAccountsHandler(r.Service.Account).Register(api)

	budget.NewSummaryHandler(r.Service.Budget).Register(api)
	budget.NewSettingsHandler(r.Service.Budget, r.Operator).Register(api)
	budget.NewCategoryHandler(r.Service.Budget, r.Operator).Register(api)

	return mux
}

// Serve listens until ctx is cancelled, then drains in-flight requests.
func (r *Rest) Serve(ctx context.Context) error {
	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           r.Handler(),
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	shutdownDone := make(chan error, 1)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		shutdownDone <- server.Shutdown(shutdownCtx)
	}()

	r.Logger.WithField("port", r.Port).Info("HttpServer.Serve.listening")
	err := server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
		return err
	}

	err = <-shutdownDone
	r.Logger.Info("HttpServer.Serve.shutting down")
	return err
}
