package pipeline_test

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"testing"

	"github.com/couchcryptid/weather-data-analysis/internal/domain"
	"github.com/couchcryptid/weather-data-analysis/internal/observability"
	"github.com/couchcryptid/weather-data-analysis/internal/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockLoader struct {
	table domain.RawTable
	err   error
	calls int
}

func (m *mockLoader) Load(_ context.Context) (domain.RawTable, error) {
	m.calls++
	if m.err != nil {
		return domain.RawTable{}, m.err
	}
	return m.table, nil
}

type mockAggregator struct {
	err error
}

func (m *mockAggregator) Aggregate(_ context.Context, _ []domain.Observation) (domain.Summary, []domain.MonthlyAggregate, error) {
	return domain.Summary{}, nil, m.err
}

type mockReporter struct {
	result domain.Result
	called bool
	err    error
}

func (m *mockReporter) Report(_ context.Context, result domain.Result) error {
	m.called = true
	m.result = result
	return m.err
}

func newTestMetrics() *observability.Metrics {
	// Use a fresh registry to avoid "already registered" panics in tests.
	return observability.NewMetricsForTesting()
}

// --- tests ---

func TestPipeline_Run_HappyPath(t *testing.T) {
	ldr := &mockLoader{table: makeTable()}
	rep := &mockReporter{}

	p := pipeline.New(ldr, pipeline.NewCleaner(), pipeline.NewAggregator(), rep, slog.Default(), newTestMetrics())

	result, err := p.Run(context.Background())

	require.NoError(t, err)
	assert.True(t, rep.called)
	assert.Equal(t, rep.result, result)

	require.Len(t, result.Observations, 3)
	assert.Equal(t, 22.5, result.Observations[1].Temperature)
	assert.Equal(t, 3, result.Summary.Records)
	require.Len(t, result.Monthly, 2)
	assert.Equal(t, "2024-01", result.Monthly[0].Label())
	assert.Equal(t, "2024-02", result.Monthly[1].Label())
	require.Len(t, result.Clean.Imputations, 1)
	assert.Equal(t, domain.ColumnTemperature, result.Clean.Imputations[0].Column)
}

func TestPipeline_Run_LoadError(t *testing.T) {
	ldr := &mockLoader{err: errors.New("read input: no such file")}
	rep := &mockReporter{}

	p := pipeline.New(ldr, pipeline.NewCleaner(), pipeline.NewAggregator(), rep, slog.Default(), newTestMetrics())

	_, err := p.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "load:")
	assert.False(t, rep.called)
}

func TestPipeline_Run_CleanErrorEmptyDataset(t *testing.T) {
	table := domain.RawTable{
		Columns: domain.RequiredColumns,
		Records: []domain.RawRecord{
			{Line: 2, Date: "not-a-date", Temperature: 20, Rainfall: 0, Humidity: 60},
		},
	}
	ldr := &mockLoader{table: table}
	rep := &mockReporter{}

	p := pipeline.New(ldr, pipeline.NewCleaner(), pipeline.NewAggregator(), rep, slog.Default(), newTestMetrics())

	_, err := p.Run(context.Background())

	require.ErrorIs(t, err, domain.ErrEmptyDataset)
	assert.Contains(t, err.Error(), "clean:")
	assert.False(t, rep.called)
}

func TestPipeline_Run_CleanErrorInsufficientData(t *testing.T) {
	table := makeTable()
	for i := range table.Records {
		table.Records[i].Rainfall = math.NaN()
	}
	ldr := &mockLoader{table: table}

	p := pipeline.New(ldr, pipeline.NewCleaner(), pipeline.NewAggregator(), &mockReporter{}, slog.Default(), newTestMetrics())

	_, err := p.Run(context.Background())

	var insufficient *domain.InsufficientDataError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, domain.ColumnRainfall, insufficient.Column)
}

func TestPipeline_Run_AggregateError(t *testing.T) {
	ldr := &mockLoader{table: makeTable()}
	agg := &mockAggregator{err: errors.New("boom")}
	rep := &mockReporter{}

	p := pipeline.New(ldr, pipeline.NewCleaner(), agg, rep, slog.Default(), newTestMetrics())

	_, err := p.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "aggregate:")
	assert.False(t, rep.called)
}

func TestPipeline_Run_ReportError(t *testing.T) {
	ldr := &mockLoader{table: makeTable()}
	rep := &mockReporter{err: errors.New("disk full")}

	p := pipeline.New(ldr, pipeline.NewCleaner(), pipeline.NewAggregator(), rep, slog.Default(), newTestMetrics())

	_, err := p.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "report:")
}

func TestPipeline_Run_ContextCancelled(t *testing.T) {
	ldr := &mockLoader{table: makeTable()}

	p := pipeline.New(ldr, pipeline.NewCleaner(), pipeline.NewAggregator(), &mockReporter{}, slog.Default(), newTestMetrics())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Run(ctx)

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, ldr.calls)
}

func TestTableCleaner_Clean(t *testing.T) {
	obs, report, err := pipeline.NewCleaner().Clean(context.Background(), makeTable())

	require.NoError(t, err)
	assert.Len(t, obs, 3)
	assert.Equal(t, 3, report.RowsKept)
}

func TestStatsAggregator_Aggregate(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		obs, _, err := pipeline.NewCleaner().Clean(context.Background(), makeTable())
		require.NoError(t, err)

		summary, monthly, err := pipeline.NewAggregator().Aggregate(context.Background(), obs)

		require.NoError(t, err)
		assert.Equal(t, 3, summary.Records)
		assert.Len(t, monthly, 2)
	})

	t.Run("empty input", func(t *testing.T) {
		_, _, err := pipeline.NewAggregator().Aggregate(context.Background(), nil)
		assert.ErrorIs(t, err, domain.ErrEmptyDataset)
	})
}

// --- helpers ---

func makeTable() domain.RawTable {
	return domain.RawTable{
		Columns: domain.RequiredColumns,
		Records: []domain.RawRecord{
			{Line: 2, Date: "2024-01-05", Temperature: 20, Rainfall: 0, Humidity: 60},
			{Line: 3, Date: "2024-01-15", Temperature: math.NaN(), Rainfall: 5, Humidity: 65},
			{Line: 4, Date: "2024-02-01", Temperature: 25, Rainfall: 10, Humidity: 70},
		},
	}
}
