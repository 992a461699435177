package budget

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	budgetcalc "github.com/carson-networks/finance-server/internal/budget"
	"github.com/carson-networks/finance-server/internal/domain"
	"github.com/carson-networks/finance-server/internal/handlers/httpapi"
	"github.com/carson-networks/finance-server/internal/logging"
	"github.com/carson-networks/finance-server/internal/operator/actions"
)

type actionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// budgetReader is the read side used by every budget endpoint.
type budgetReader interface {
	GetSettings(ctx context.Context, userID uuid.UUID) (*domain.UserFinanceSettings, error)
	ListCategories(ctx context.Context, userID uuid.UUID) ([]*domain.FinancialCategory, error)
	Summary(ctx context.Context, userID uuid.UUID, now time.Time) (*budgetcalc.Summary, error)
}

// BucketSummary is one bucket of the monthly summary.
type BucketSummary struct {
	Bucket     string `json:"bucket" doc:"necessidades, desejos, futuro or total"`
	Budget     string `json:"budget" doc:"Monthly cap"`
	Spent      string `json:"spent" doc:"Sum of the month's expenses in the bucket"`
	Remaining  string `json:"remaining"`
	Percentage string `json:"percentage" doc:"Spent as a percentage of the cap"`
}

// SummaryResponseBody is the monthly budget breakdown.
type SummaryResponseBody struct {
	PeriodStart string          `json:"periodStart" doc:"RFC3339 start of the month, inclusive"`
	PeriodEnd   string          `json:"periodEnd" doc:"RFC3339 end of the month, exclusive"`
	Buckets     []BucketSummary `json:"buckets"`
	Total       BucketSummary   `json:"total"`
}

// SummaryOutput is the Huma output for the budget summary.
type SummaryOutput struct {
	Body SummaryResponseBody
}

// SummaryInput is the Huma input for the budget summary.
type SummaryInput struct {
	httpapi.UserHeader
}

// SummaryHandler handles GET /v1/budget/summary.
type SummaryHandler struct {
	BudgetService budgetReader
	now           func() time.Time
}

func NewSummaryHandler(svc budgetReader) *SummaryHandler {
	return &SummaryHandler{BudgetService: svc, now: time.Now}
}

func (h *SummaryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "budget-summary",
		Method:      http.MethodGet,
		Path:        "/v1/budget/summary",
		Summary:     "Monthly budget summary",
		Description: "Returns the current month's spending per budget bucket against the caps derived from the finance settings.",
		Tags:        []string{"Budget"},
	}, h.handle)
}

func toBucketSummary(s budgetcalc.BucketSummary) BucketSummary {
	return BucketSummary{
		Bucket:     string(s.Bucket),
		Budget:     s.Budget.StringFixed(2),
		Spent:      s.Spent.StringFixed(2),
		Remaining:  s.Remaining.StringFixed(2),
		Percentage: s.Percentage.StringFixed(2),
	}
}

func (h *SummaryHandler) handle(ctx context.Context, input *SummaryInput) (*SummaryOutput, error) {
	userID, err := input.User()
	if err != nil {
		return nil, err
	}

	if logData := logging.GetLogData(ctx); logData != nil {
		defer logData.AddTiming("budgetSummaryMs")()
	}
	summary, err := h.BudgetService.Summary(ctx, userID, h.now().UTC())
	if err != nil {
		return nil, httpapi.Error(err, "failed to compute budget summary")
	}

	resp := SummaryResponseBody{
		PeriodStart: summary.Period.Start.Format(time.RFC3339),
		PeriodEnd:   summary.Period.End.Format(time.RFC3339),
		Buckets:     make([]BucketSummary, len(summary.Buckets)),
		Total:       toBucketSummary(summary.Total),
	}
	for i, b := range summary.Buckets {
		resp.Buckets[i] = toBucketSummary(b)
	}
	return &SummaryOutput{Body: resp}, nil
}
