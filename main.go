package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/carson-networks/finance-server/api"
	"github.com/carson-networks/finance-server/internal/config"
	"github.com/carson-networks/finance-server/internal/handlers/v1/status"
	"github.com/carson-networks/finance-server/internal/logging"
	"github.com/carson-networks/finance-server/internal/operator"
	"github.com/carson-networks/finance-server/internal/service"
	"github.com/carson-networks/finance-server/internal/storage"
	"github.com/carson-networks/finance-server/internal/storage/memstore"
	"github.com/carson-networks/finance-server/internal/storage/migrations"
)

// backend is what the server needs from a storage driver.
type backend interface {
	storage.UnitOfWork
	status.Pinger
	Read() *storage.Reader
}

func main() {
	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
	}

	logger := logging.SetupLogging(envConfig.Log.Level)
	logger.WithField("storage", envConfig.Storage.Driver).Info("finance-server starting")

	store, closeStore, err := openBackend(envConfig, logger)
	if err != nil {
		logger.WithError(err).Fatal("openBackend")
	}
	defer closeStore()

	delegator := operator.NewOperatorDelegator(store, envConfig.Operator, logger)
	delegator.Start()
	defer delegator.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		httpRest := api.Rest{
			Logger:   logger,
			Port:     envConfig.HTTP.Port,
			Service:  service.NewService(store.Read()),
			Operator: delegator,
			Health:   []status.Pinger{store},
		}
		return httpRest.Serve(ctx)
	})

	if err := group.Wait(); err != nil {
		logger.WithError(err).Error("finance-server stopped")
		return
	}
	logger.Info("finance-server stopped")
}

func openBackend(cfg *config.Config, logger *logrus.Logger) (backend, func(), error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		logger.Warn("using in-memory storage, data is lost on exit")
		return memstore.New(), func() {}, nil
	case config.StorageDriverPostgres:
		db, err := storage.NewStorage(cfg.Postgres)
		if err != nil {
			return nil, nil, err
		}
		if err := migrations.Up(db.DB); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
		closeFn := func() {
			if err := db.Close(); err != nil {
				logger.WithError(err).Warn("storage.Close")
			}
		}
		return db, closeFn, nil
	}
	return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}
