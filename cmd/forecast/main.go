package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/kjstillabower/forecast-summary/internal/client"
	"github.com/kjstillabower/forecast-summary/internal/config"
	"github.com/kjstillabower/forecast-summary/internal/observability"
	"github.com/kjstillabower/forecast-summary/internal/report"
	"github.com/kjstillabower/forecast-summary/internal/service"
	"github.com/kjstillabower/forecast-summary/internal/summary"
)

func main() {
	logger, err := observability.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config", zap.Error(err))
	}
	if cfg.WeatherAPIKey == "" {
		logger.Warn("APPID is not set; the forecast API will reject requests")
	}

	forecastClient, err := client.NewOpenWeatherClient(cfg.WeatherAPIKey, cfg.WeatherAPIURL, cfg.WeatherAPITimeout)
	if err != nil {
		logger.Fatal("forecast client", zap.Error(err))
	}
	forecastService := service.NewForecastService(forecastClient, os.Stdout)
	runner := report.NewRunner(forecastService, summary.NewPrinter(os.Stdout), logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	runErr := runner.Run(ctx, cfg.Cities)
	stop()

	if err := observability.FlushTelemetry(context.Background(), nil, cfg.MetricsTextfile); err != nil {
		logger.Error("telemetry flush", zap.Error(err))
	}
	if runErr != nil {
		logger.Fatal("forecast run", zap.Error(runErr))
	}
}
