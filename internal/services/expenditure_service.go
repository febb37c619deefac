package services

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"futurebank/internal/bank"
	"futurebank/internal/core"
)

// fallbackForecastInput is used when no transactions exist in the
// trailing window.
var fallbackForecastInput = decimal.NewFromInt(1000)

// Forecaster is the external forecasting collaborator: it accepts a
// number and returns a number. Its failures never propagate past the
// aggregation boundary.
type Forecaster interface {
	Predict(ctx context.Context, value decimal.Decimal) (decimal.Decimal, error)
}

// MonthlyExpenditure is one (month, category) aggregation bucket.
type MonthlyExpenditure struct {
	Year     int
	Month    time.Month
	Category core.Category
	Total    decimal.Decimal
}

// ForecastResult carries the aggregated input and the collaborator's
// prediction. Degraded is set when the collaborator was unavailable and
// the forecast value is a zero placeholder.
type ForecastResult struct {
	Input    decimal.Decimal
	Forecast decimal.Decimal
	Degraded bool
}

// ExpenditureService aggregates ledger activity per calendar month and
// category, and feeds the external forecasting collaborator.
type ExpenditureService struct {
	ledger     bank.TransactionLedger
	forecaster Forecaster
	now        func() time.Time
}

func NewExpenditureService(ledger bank.TransactionLedger, forecaster Forecaster) *ExpenditureService {
	return &ExpenditureService{
		ledger:     ledger,
		forecaster: forecaster,
		now:        time.Now,
	}
}

// MonthlyTotals sums transaction amounts per (month, category) for the
// current year, January 1 through now. Buckets with no transactions are
// absent, not zero-filled.
func (s *ExpenditureService) MonthlyTotals(ctx context.Context) ([]MonthlyExpenditure, error) {
	now := s.now().UTC()
	startOfYear := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)

	txs, err := s.ledger.FindByDateRange(ctx, startOfYear, now)
	if err != nil {
		return nil, err
	}

	type bucket struct {
		year     int
		month    time.Month
		category core.Category
	}
	totals := make(map[bucket]decimal.Decimal)
	for _, tx := range txs {
		b := bucket{tx.CreatedAt.Year(), tx.CreatedAt.Month(), tx.Category}
		totals[b] = totals[b].Add(tx.Amount)
	}

	out := make([]MonthlyExpenditure, 0, len(totals))
	for b, total := range totals {
		out = append(out, MonthlyExpenditure{
			Year:     b.year,
			Month:    b.month,
			Category: b.category,
			Total:    total,
		})
	}
	// Deterministic order for consumers and tests; the ledger itself is
	// unordered.
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		if out[i].Month != out[j].Month {
			return out[i].Month < out[j].Month
		}
		return out[i].Category < out[j].Category
	})
	return out, nil
}

// ForecastInput averages the per-month total expenditure (summed across
// categories) over the trailing 3 full months plus the current partial
// month. With no transactions in the window it returns a fixed
// fallback.
func (s *ExpenditureService) ForecastInput(ctx context.Context) (decimal.Decimal, error) {
	now := s.now().UTC()
	windowStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -3, 0)

	txs, err := s.ledger.FindByDateRange(ctx, windowStart, now)
	if err != nil {
		return decimal.Zero, err
	}
	if len(txs) == 0 {
		return fallbackForecastInput, nil
	}

	type month struct {
		year  int
		month time.Month
	}
	perMonth := make(map[month]decimal.Decimal)
	for _, tx := range txs {
		m := month{tx.CreatedAt.Year(), tx.CreatedAt.Month()}
		perMonth[m] = perMonth[m].Add(tx.Amount)
	}

	sum := decimal.Zero
	for _, total := range perMonth {
		sum = sum.Add(total)
	}
	return sum.Div(decimal.NewFromInt(int64(len(perMonth)))).Round(core.AmountPrecision), nil
}

// Forecast hands the aggregated input to the external collaborator. A
// collaborator failure degrades to an empty result instead of
// propagating.
func (s *ExpenditureService) Forecast(ctx context.Context) (ForecastResult, error) {
	input, err := s.ForecastInput(ctx)
	if err != nil {
		return ForecastResult{}, err
	}

	if s.forecaster == nil {
		slog.WarnContext(ctx, "Forecast collaborator not configured, returning degraded result")
		return ForecastResult{Input: input, Degraded: true}, nil
	}

	prediction, err := s.forecaster.Predict(ctx, input)
	if err != nil {
		slog.ErrorContext(ctx, "Forecast collaborator unavailable, returning degraded result",
			"input", input.String(), "error", err)
		return ForecastResult{Input: input, Degraded: true}, nil
	}

	return ForecastResult{Input: input, Forecast: prediction}, nil
}
