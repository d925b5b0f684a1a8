package observability

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestMetrics_Usable verifies that label dimensions match usage in the client,
// service, and report packages.
func TestMetrics_Usable(t *testing.T) {
	ForecastAPICallsTotal.WithLabelValues("success").Inc()
	ForecastAPICallsTotal.WithLabelValues("client_error").Inc()
	ForecastAPIDuration.WithLabelValues("success").Observe(0.1)
	ForecastAPIErrorsTotal.WithLabelValues("city_not_found").Inc()
	CitiesTotal.WithLabelValues("printed").Inc()
	CitiesTotal.WithLabelValues("rejected").Inc()
	SummaryLinesTotal.Inc()
	LastSuccessfulRunTimestamp.SetToCurrentTime()
}

// TestWriteTextfile_WritesPrometheusFormat verifies that the textfile export
// contains registered metric families.
func TestWriteTextfile_WritesPrometheusFormat(t *testing.T) {
	SummaryLinesTotal.Inc()
	path := filepath.Join(t.TempDir(), "forecast.prom")

	if err := WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "forecastSummaryLinesTotal") {
		t.Errorf("textfile should contain forecastSummaryLinesTotal, got:\n%s", data)
	}
}

func TestWriteTextfile_BadDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "forecast.prom")
	if err := WriteTextfile(path); err == nil {
		t.Fatal("WriteTextfile() expected error for missing directory, got nil")
	}
}
