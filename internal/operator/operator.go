package operator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/finance-server/internal/domain"
	"github.com/carson-networks/finance-server/internal/logging"
	"github.com/carson-networks/finance-server/internal/operator/actions"
	"github.com/carson-networks/finance-server/internal/storage"
)

// Operator is the worker that processes items from the queue.
type Operator struct {
	storage storage.UnitOfWork
	queue   chan ActionItem
	retries int
	log     *logrus.Logger
}

func NewOperator(s storage.UnitOfWork, queue chan ActionItem, retries int, log *logrus.Logger) *Operator {
	return &Operator{
		storage: s,
		queue:   queue,
		retries: retries,
		log:     log,
	}
}

// Run listens to the queue and processes items. Exits when the queue is closed.
func (o *Operator) Run() {
	for item := range o.queue {
		o.processItem(item)
	}
}

// processItem runs the action in its own unit of work, retrying the whole unit
// when the storage reports a concurrency conflict.
func (o *Operator) processItem(item ActionItem) {
	start := time.Now()
	attempts := 0
	logData := logging.GetLogData(item.ctx)

	err := backoff.Retry(func() error {
		attempts++
		if logData != nil {
			// performMs sums every attempt, excluding backoff waits.
			defer logData.AddToExistingTiming("performMs")()
		}
		err := o.perform(item.ctx, item.action)
		if err == nil {
			return nil
		}
		var conflict *domain.ConcurrencyConflictError
		if errors.As(err, &conflict) && conflict.Retryable() {
			return err
		}
		return backoff.Permanent(err)
	}, o.backOff(item.ctx))

	fields := logrus.Fields{
		"action":     actionName(item.action),
		"attempts":   attempts,
		"durationMs": time.Since(start).Milliseconds(),
	}
	if logData != nil {
		logData.AddData("action", fields["action"])
		logData.AddData("attempts", attempts)
	}
	entry := o.log.WithFields(fields)
	if err != nil {
		entry.WithError(err).Info("Operator.ActionFailed")
	} else {
		entry.Debug("Operator.ActionCommitted")
	}

	item.response <- ActionItemResponse{err: err}
}

func (o *Operator) perform(ctx context.Context, action actions.IAction) error {
	writer, err := o.storage.Write(ctx)
	if err != nil {
		return err
	}

	err = action.Perform(ctx, writer)
	if err != nil {
		if rbErr := writer.Rollback(ctx); rbErr != nil {
			o.log.WithError(rbErr).Warn("Operator.Rollback")
		}
		return err
	}

	return writer.Commit(ctx)
}

func (o *Operator) backOff(ctx context.Context) backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = 10 * time.Millisecond
	exp.MaxInterval = 250 * time.Millisecond
	exp.MaxElapsedTime = 0

	retries := o.retries
	if retries < 0 {
		retries = 0
	}
	return backoff.WithContext(backoff.WithMaxRetries(exp, uint64(retries)), ctx)
}

// actionName turns *actions.CompleteTransaction into CompleteTransaction.
func actionName(action actions.IAction) string {
	name := fmt.Sprintf("%T", action)
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}

type ActionItem struct {
	ctx      context.Context
	action   actions.IAction
	response chan ActionItemResponse
}

type ActionItemResponse struct {
	err error
}
