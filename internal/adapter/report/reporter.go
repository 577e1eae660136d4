package report

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/couchcryptid/weather-data-analysis/internal/config"
	"github.com/couchcryptid/weather-data-analysis/internal/domain"
	"github.com/couchcryptid/weather-data-analysis/internal/observability"
)

// Artifact kinds for the written-artifacts metric.
const (
	kindChart   = "chart"
	kindReport  = "report"
	kindDataset = "dataset"
)

// FileReporter renders the charts, the cleaned dataset, and the markdown
// summary into the configured output directories.
// It implements pipeline.Reporter.
type FileReporter struct {
	cfg     *config.Config
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewReporter creates a FileReporter writing under cfg.OutDir.
func NewReporter(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) *FileReporter {
	return &FileReporter{cfg: cfg, logger: logger, metrics: metrics}
}

// Report writes all artifacts. Directories are created as needed; any write
// failure aborts the run.
func (r *FileReporter) Report(ctx context.Context, result domain.Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(r.cfg.OutDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.MkdirAll(r.cfg.PlotsPath(), 0o755); err != nil {
		return fmt.Errorf("create plots dir: %w", err)
	}

	written, err := renderCharts(r.cfg.PlotsPath(), result)
	for _, path := range written {
		r.metrics.ArtifactsWritten.WithLabelValues(kindChart).Inc()
		r.logger.Info("chart written", "path", path)
	}
	if err != nil {
		return fmt.Errorf("render charts: %w", err)
	}

	cleanedPath := r.cfg.CleanedPath()
	if err := writeCleanedCSV(cleanedPath, result.Observations); err != nil {
		return fmt.Errorf("write cleaned dataset: %w", err)
	}
	r.metrics.ArtifactsWritten.WithLabelValues(kindDataset).Inc()
	r.logger.Info("cleaned dataset written", "path", cleanedPath, "rows", len(result.Observations))

	reportPath := r.cfg.ReportPath()
	content := buildMarkdown(result, r.cfg.InputPath, r.cfg.PlotsDir, clock.Now())
	if err := os.WriteFile(reportPath, content, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	r.metrics.ArtifactsWritten.WithLabelValues(kindReport).Inc()
	r.logger.Info("report written", "path", reportPath)

	return nil
}
