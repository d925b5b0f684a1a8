package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/kjstillabower/forecast-summary/internal/client"
	"github.com/kjstillabower/forecast-summary/internal/models"
	"github.com/kjstillabower/forecast-summary/internal/observability"
)

// ForecastService fetches forecasts for the driver. Upstream rejections are
// reported on out as "Failed to fetch data for {city}: {status}" and returned
// as errors matching client.ErrUpstreamRejected, so callers can skip the city.
type ForecastService struct {
	client client.ForecastClient
	out    io.Writer
}

// NewForecastService creates a ForecastService writing diagnostics to out.
func NewForecastService(c client.ForecastClient, out io.Writer) *ForecastService {
	return &ForecastService{client: c, out: out}
}

// Fetch returns the payload for city. A nil error means the payload is present.
func (s *ForecastService) Fetch(ctx context.Context, city string) (models.ForecastPayload, error) {
	start := time.Now()
	logger := observability.LoggerFromContext(ctx)

	payload, err := s.client.GetForecast(ctx, city)
	if err == nil {
		fields := []zap.Field{
			zap.String("city", city),
			zap.Int("entries", len(payload.List)),
			zap.Duration("duration", time.Since(start)),
		}
		if payload.City != nil {
			fields = append(fields,
				zap.String("resolved_city", payload.City.Name),
				zap.String("country", payload.City.Country))
		}
		logger.Debug("forecast fetched", fields...)
		return payload, nil
	}

	category := client.CategorizeError(err)
	observability.ForecastAPIErrorsTotal.WithLabelValues(string(category)).Inc()

	var statusErr *client.StatusError
	if errors.As(err, &statusErr) {
		if _, werr := fmt.Fprintf(s.out, "Failed to fetch data for %s: %d\n", city, statusErr.Code); werr != nil {
			logger.Warn("write diagnostic", zap.Error(werr))
		}
		logger.Info("forecast rejected",
			zap.String("city", city),
			zap.Int("status", statusErr.Code),
			zap.String("category", string(category)))
		return models.ForecastPayload{}, fmt.Errorf("fetch %s: %w", city, err)
	}

	logger.Debug("forecast fetch failed",
		zap.String("city", city),
		zap.String("category", string(category)),
		zap.Error(err))
	return models.ForecastPayload{}, fmt.Errorf("fetch %s: %w", city, err)
}
