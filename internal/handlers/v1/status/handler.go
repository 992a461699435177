package status

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/carson-networks/finance-server/internal/logging"
)

const pingTimeout = 2 * time.Second

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	Checks []Pinger
}

func NewHandler(checks ...Pinger) Handler {
	return Handler{Checks: checks}
}

func (h *Handler) Handler(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	if req.Method != "GET" {
		w.WriteHeader(http.StatusBadRequest)
		return errors.New("status: method not GET")
	}

	ctx, cancel := context.WithTimeout(req.Context(), pingTimeout)
	defer cancel()
	for _, check := range h.Checks {
		if err := check.Ping(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return err
		}
	}

	logData.AddData("checks", len(h.Checks))
	w.WriteHeader(http.StatusOK)
	return nil
}
