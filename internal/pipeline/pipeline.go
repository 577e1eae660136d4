package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/weather-data-analysis/internal/domain"
	"github.com/couchcryptid/weather-data-analysis/internal/observability"
)

// Stage labels for duration metrics.
const (
	stageLoad      = "load"
	stageClean     = "clean"
	stageAggregate = "aggregate"
	stageReport    = "report"
)

// Loader reads the raw table from the input source.
type Loader interface {
	Load(ctx context.Context) (domain.RawTable, error)
}

// Cleaner turns a raw table into analysis-ready observations.
type Cleaner interface {
	Clean(ctx context.Context, table domain.RawTable) ([]domain.Observation, domain.CleanReport, error)
}

// Aggregator computes summary and monthly statistics over cleaned observations.
type Aggregator interface {
	Aggregate(ctx context.Context, obs []domain.Observation) (domain.Summary, []domain.MonthlyAggregate, error)
}

// Reporter renders and persists the analysis artifacts.
type Reporter interface {
	Report(ctx context.Context, result domain.Result) error
}

// Pipeline orchestrates the load-clean-aggregate-report sequence.
type Pipeline struct {
	loader     Loader
	cleaner    Cleaner
	aggregator Aggregator
	reporter   Reporter
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// New creates a Pipeline with the given stages and observability.
func New(l Loader, c Cleaner, a Aggregator, r Reporter, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		loader:     l,
		cleaner:    c,
		aggregator: a,
		reporter:   r,
		logger:     logger,
		metrics:    metrics,
	}
}

// Run executes one analysis pass. Any stage error aborts the run: this is a
// one-shot batch job over a single file, so a failed stage has nothing to
// retry against.
func (p *Pipeline) Run(ctx context.Context) (domain.Result, error) {
	if err := ctx.Err(); err != nil {
		return domain.Result{}, err
	}

	table, err := p.runLoad(ctx)
	if err != nil {
		return domain.Result{}, fmt.Errorf("load: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return domain.Result{}, err
	}

	obs, cleanReport, err := p.runClean(ctx, table)
	if err != nil {
		return domain.Result{}, fmt.Errorf("clean: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return domain.Result{}, err
	}

	summary, monthly, err := p.runAggregate(ctx, obs)
	if err != nil {
		return domain.Result{}, fmt.Errorf("aggregate: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return domain.Result{}, err
	}

	result := domain.Result{
		Observations: obs,
		Summary:      summary,
		Monthly:      monthly,
		Clean:        cleanReport,
	}

	if err := p.runReport(ctx, result); err != nil {
		return domain.Result{}, fmt.Errorf("report: %w", err)
	}

	p.metrics.LastRun.SetToCurrentTime()
	p.logger.Info("analysis complete",
		"records", result.Summary.Records,
		"months", len(result.Monthly),
	)
	return result, nil
}

func (p *Pipeline) runLoad(ctx context.Context) (domain.RawTable, error) {
	start := time.Now()
	table, err := p.loader.Load(ctx)
	p.metrics.StageDuration.WithLabelValues(stageLoad).Observe(time.Since(start).Seconds())
	if err != nil {
		return domain.RawTable{}, err
	}

	p.metrics.RowsLoaded.Add(float64(len(table.Records)))
	p.logger.Info("table loaded", "rows", len(table.Records), "columns", len(table.Columns))
	return table, nil
}

func (p *Pipeline) runClean(ctx context.Context, table domain.RawTable) ([]domain.Observation, domain.CleanReport, error) {
	start := time.Now()
	obs, report, err := p.cleaner.Clean(ctx, table)
	p.metrics.StageDuration.WithLabelValues(stageClean).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, domain.CleanReport{}, err
	}

	p.metrics.RowsDropped.Add(float64(report.RowsDropped))
	if report.RowsDropped > 0 {
		p.logger.Warn("rows dropped by date filter", "count", report.RowsDropped)
	}
	for _, imp := range report.Imputations {
		p.metrics.ValuesImputed.WithLabelValues(imp.Column).Add(float64(imp.Count))
		p.logger.Info("missing values imputed",
			"column", imp.Column,
			"count", imp.Count,
			"fill_value", imp.FillValue,
		)
	}
	p.logger.Info("table cleaned", "kept", report.RowsKept, "dropped", report.RowsDropped)
	return obs, report, nil
}

func (p *Pipeline) runAggregate(ctx context.Context, obs []domain.Observation) (domain.Summary, []domain.MonthlyAggregate, error) {
	start := time.Now()
	summary, monthly, err := p.aggregator.Aggregate(ctx, obs)
	p.metrics.StageDuration.WithLabelValues(stageAggregate).Observe(time.Since(start).Seconds())
	if err != nil {
		return domain.Summary{}, nil, err
	}

	p.logger.Info("statistics computed", "records", summary.Records, "months", len(monthly))
	return summary, monthly, nil
}

func (p *Pipeline) runReport(ctx context.Context, result domain.Result) error {
	start := time.Now()
	err := p.reporter.Report(ctx, result)
	p.metrics.StageDuration.WithLabelValues(stageReport).Observe(time.Since(start).Seconds())
	return err
}
