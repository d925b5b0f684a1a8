package observability

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	registry *prometheus.Registry

	// Forecast API call rate by status label. Watch for: client_error share (bad key or city).
	ForecastAPICallsTotal *prometheus.CounterVec

	// Forecast API latency per call.
	ForecastAPIDuration *prometheus.HistogramVec

	// Failed fetches by error category (see client.CategorizeError).
	ForecastAPIErrorsTotal *prometheus.CounterVec

	// Cities processed per run, by outcome: printed, rejected, transport_error, malformed.
	CitiesTotal *prometheus.CounterVec

	// Daily summary lines written to stdout.
	SummaryLinesTotal prometheus.Counter

	// Unix time of the last run that finished without a fatal error.
	LastSuccessfulRunTimestamp prometheus.Gauge
)

func init() {
	registry = prometheus.NewRegistry()

	registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)

	ForecastAPICallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forecastApiCallsTotal",
			Help: "Total number of OpenWeatherMap forecast API calls",
		},
		[]string{"status"},
	)
	ForecastAPIDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "forecastApiDurationSeconds",
			Help:    "OpenWeatherMap forecast API latency in seconds (per call)",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"status"},
	)
	ForecastAPIErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forecastApiErrorsTotal",
			Help: "Failed forecast fetches by error category",
		},
		[]string{"category"},
	)
	CitiesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forecastCitiesTotal",
			Help: "Cities processed by outcome",
		},
		[]string{"outcome"},
	)
	SummaryLinesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "forecastSummaryLinesTotal",
			Help: "Total number of daily summary lines printed",
		},
	)
	LastSuccessfulRunTimestamp = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "forecastLastSuccessfulRunTimestampSeconds",
			Help: "Unix time of the last run that completed without a fatal error",
		},
	)

	registry.MustRegister(
		ForecastAPICallsTotal, ForecastAPIDuration, ForecastAPIErrorsTotal,
		CitiesTotal, SummaryLinesTotal, LastSuccessfulRunTimestamp,
	)
}

// WriteTextfile writes all registered metrics to path in the Prometheus text
// format, for pickup by the node_exporter textfile collector.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
