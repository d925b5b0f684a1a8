// Package report drives the fetch-then-print cycle over a list of cities.
package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kjstillabower/forecast-summary/internal/client"
	"github.com/kjstillabower/forecast-summary/internal/models"
	"github.com/kjstillabower/forecast-summary/internal/observability"
)

// Fetcher is implemented by service.ForecastService.
type Fetcher interface {
	Fetch(ctx context.Context, city string) (models.ForecastPayload, error)
}

// SummaryPrinter is implemented by summary.Printer.
type SummaryPrinter interface {
	PrintDailySummary(city string, payload models.ForecastPayload) (int, error)
}

// Outcome labels for the forecastCitiesTotal metric.
const (
	OutcomePrinted        = "printed"
	OutcomeRejected       = "rejected"
	OutcomeEmpty          = "empty"
	OutcomeTransportError = "transport_error"
	OutcomeMalformed      = "malformed"
	OutcomeCanceled       = "canceled"
)

// Runner processes cities one at a time, in order.
type Runner struct {
	fetcher Fetcher
	printer SummaryPrinter
	logger  *zap.Logger
}

func NewRunner(fetcher Fetcher, printer SummaryPrinter, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{fetcher: fetcher, printer: printer, logger: logger}
}

// Run fetches and prints each city. Rejected and unreachable cities, and
// cities whose forecast body is empty, are skipped. A malformed payload or a canceled context stops the run and is
// returned; otherwise Run returns nil even if every city was skipped.
func (r *Runner) Run(ctx context.Context, cities []string) error {
	runID := uuid.New().String()
	logger := r.logger.With(zap.String("run_id", runID))
	ctx = observability.WithCorrelationID(ctx, runID)
	ctx = observability.WithLogger(ctx, logger)

	start := time.Now()
	logger.Info("forecast run starting", zap.Strings("cities", cities))

	printed, skipped := 0, 0
	for _, city := range cities {
		if err := ctx.Err(); err != nil {
			logger.Warn("forecast run interrupted", zap.Error(err))
			return err
		}
		outcome, err := r.runCity(ctx, logger, city)
		observability.CitiesTotal.WithLabelValues(outcome).Inc()
		if err != nil {
			logger.Error("forecast run aborted", zap.String("city", city), zap.Error(err))
			return err
		}
		if outcome == OutcomePrinted {
			printed++
		} else {
			skipped++
		}
	}

	observability.LastSuccessfulRunTimestamp.SetToCurrentTime()
	logger.Info("forecast run complete",
		zap.Int("printed", printed),
		zap.Int("skipped", skipped),
		zap.Duration("duration", time.Since(start)))
	return nil
}

func (r *Runner) runCity(ctx context.Context, logger *zap.Logger, city string) (string, error) {
	payload, err := r.fetcher.Fetch(ctx, city)
	if err != nil {
		switch {
		case ctx.Err() != nil:
			return OutcomeCanceled, ctx.Err()
		case errors.Is(err, client.ErrUpstreamRejected):
			return OutcomeRejected, nil
		case errors.Is(err, client.ErrEmptyPayload):
			logger.Debug("empty forecast, skipping city", zap.String("city", city))
			return OutcomeEmpty, nil
		case errors.Is(err, client.ErrTransport):
			logger.Warn("forecast unavailable, skipping city", zap.String("city", city), zap.Error(err))
			return OutcomeTransportError, nil
		default:
			return OutcomeMalformed, err
		}
	}

	lines, err := r.printer.PrintDailySummary(city, payload)
	observability.SummaryLinesTotal.Add(float64(lines))
	if err != nil {
		return OutcomeMalformed, fmt.Errorf("summary for %s: %w", city, err)
	}
	logger.Debug("summary printed", zap.String("city", city), zap.Int("lines", lines))
	return OutcomePrinted, nil
}
