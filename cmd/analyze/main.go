// Command analyze runs the weather analysis pipeline over one delimited
// data file: load, clean, aggregate, report. It writes four chart PNGs, the
// cleaned dataset, and a markdown summary report.
//
// Usage:
//
//	go run ./cmd/analyze -input weather_data.csv -out-dir results
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/weather-data-analysis/internal/adapter/csvfile"
	"github.com/couchcryptid/weather-data-analysis/internal/adapter/report"
	"github.com/couchcryptid/weather-data-analysis/internal/config"
	"github.com/couchcryptid/weather-data-analysis/internal/observability"
	"github.com/couchcryptid/weather-data-analysis/internal/pipeline"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger, err := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	loader := csvfile.NewLoader(cfg, logger)
	reporter := report.NewReporter(cfg, logger, metrics)
	p := pipeline.New(loader, pipeline.NewCleaner(), pipeline.NewAggregator(), reporter, logger, metrics)

	result, runErr := p.Run(ctx)
	if runErr != nil {
		logger.Error("analysis failed", "error", runErr)
	} else {
		logger.Info("artifacts written",
			"report", cfg.ReportPath(),
			"dataset", cfg.CleanedPath(),
			"plots", cfg.PlotsPath(),
			"records", result.Summary.Records,
		)
	}

	// The textfile is written regardless of run outcome.
	if cfg.MetricsOut != "" {
		if err := observability.WriteTextfile(cfg.MetricsOut); err != nil {
			logger.Error("metrics textfile write failed", "error", err)
		} else {
			logger.Info("metrics written", "path", cfg.MetricsOut)
		}
	}

	if runErr != nil {
		os.Exit(1)
	}
}
