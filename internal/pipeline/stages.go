package pipeline

import (
	"context"

	"github.com/couchcryptid/weather-data-analysis/internal/domain"
)

// TableCleaner implements Cleaner using the domain cleaning rules.
type TableCleaner struct{}

// NewCleaner creates a TableCleaner.
func NewCleaner() *TableCleaner {
	return &TableCleaner{}
}

func (c *TableCleaner) Clean(_ context.Context, table domain.RawTable) ([]domain.Observation, domain.CleanReport, error) {
	return domain.CleanTable(table)
}

// StatsAggregator implements Aggregator using the domain statistics functions.
type StatsAggregator struct{}

// NewAggregator creates a StatsAggregator.
func NewAggregator() *StatsAggregator {
	return &StatsAggregator{}
}

func (a *StatsAggregator) Aggregate(_ context.Context, obs []domain.Observation) (domain.Summary, []domain.MonthlyAggregate, error) {
	summary, err := domain.Summarize(obs)
	if err != nil {
		return domain.Summary{}, nil, err
	}
	return summary, domain.AggregateMonthly(obs), nil
}
