package logging

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/sirupsen/logrus"
)

type logDataKey struct{}

// WithLogData returns a copy of ctx carrying logData.
func WithLogData(ctx context.Context, logData *LogData) context.Context {
	return context.WithValue(ctx, logDataKey{}, logData)
}

// GetLogData returns the request's LogData, or nil outside a logged request.
func GetLogData(ctx context.Context) *LogData {
	logData, _ := ctx.Value(logDataKey{}).(*LogData)
	return logData
}

// Middleware attaches a fresh LogData to every huma request and emits one line
// when the request finishes.
func Middleware(log *logrus.Logger) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		logData := NewLogData(log)
		logData.AddData("method", ctx.Method())
		logData.AddData("path", ctx.URL().Path)
		if op := ctx.Operation(); op != nil {
			logData.AddData("operation", op.OperationID)
		}

		endTimer := logData.AddTiming("durationMs")
		next(huma.WithValue(ctx, logDataKey{}, logData))
		endTimer()

		logData.AddData("status", ctx.Status())
		entry := logData.Log()
		if ctx.Status() >= 500 {
			entry.Error("Handler.Complete")
			return
		}
		entry.Info("Handler.Complete")
	}
}
