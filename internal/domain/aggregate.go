package domain

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summarize computes per-column summary statistics over cleaned observations.
// Returns ErrEmptyDataset when obs is empty.
func Summarize(obs []Observation) (Summary, error) {
	if len(obs) == 0 {
		return Summary{}, ErrEmptyDataset
	}

	temps := make([]float64, len(obs))
	rain := make([]float64, len(obs))
	hum := make([]float64, len(obs))
	for i, o := range obs {
		temps[i] = o.Temperature
		rain[i] = o.Rainfall
		hum[i] = o.Humidity
	}

	return Summary{
		Temperature: columnStats(temps),
		Rainfall:    columnStats(rain),
		Humidity:    columnStats(hum),
		Records:     len(obs),
	}, nil
}

// columnStats computes mean, min, max, and population standard deviation.
// gonum's stat.StdDev divides by N-1; the reported figures use divisor N,
// so this must stay stat.PopStdDev.
func columnStats(values []float64) ColumnStats {
	return ColumnStats{
		Mean:   stat.Mean(values, nil),
		Min:    floats.Min(values),
		Max:    floats.Max(values),
		StdDev: stat.PopStdDev(values, nil),
	}
}

type monthKey struct {
	year  int
	month int
}

// AggregateMonthly groups observations by calendar month and computes the
// per-month figures. Months with no observations are omitted. The result is
// sorted ascending by (year, month). An empty input yields an empty slice.
func AggregateMonthly(obs []Observation) []MonthlyAggregate {
	groups := make(map[monthKey][]Observation)
	for _, o := range obs {
		k := monthKey{year: o.Date.Year(), month: int(o.Date.Month())}
		groups[k] = append(groups[k], o)
	}

	out := make([]MonthlyAggregate, 0, len(groups))
	for k, members := range groups {
		temps := make([]float64, len(members))
		rain := make([]float64, len(members))
		hum := make([]float64, len(members))
		for i, o := range members {
			temps[i] = o.Temperature
			rain[i] = o.Rainfall
			hum[i] = o.Humidity
		}
		out = append(out, MonthlyAggregate{
			Year:           k.year,
			Month:          time.Month(k.month),
			AvgTemperature: stat.Mean(temps, nil),
			MinTemperature: floats.Min(temps),
			MaxTemperature: floats.Max(temps),
			TotalRainfall:  floats.Sum(rain),
			AvgHumidity:    stat.Mean(hum, nil),
			Records:        len(members),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})
	return out
}
