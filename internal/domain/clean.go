package domain

import (
	"math"
	"strings"
	"time"

	"gonum.org/v1/gonum/stat"
)

// dateLayouts are tried in order when parsing the date column. Unpadded Go
// layouts accept padded digits too, so "2024-01-05" and "2024-1-5" both
// match the first entry.
var dateLayouts = []string{
	"2006-1-2",
	"2006/1/2",
	"1/2/2006",
	"2006-1-2 15:4:5",
	time.RFC3339,
}

// numericColumns orders the imputed columns. Iteration must be stable so
// error reporting and CleanReport output are deterministic.
var numericColumns = []string{ColumnTemperature, ColumnRainfall, ColumnHumidity}

// ParseDate parses a raw date cell against the accepted layouts.
// Returns false when no layout matches.
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// CleanTable produces cleaned observations from a raw table. Rows whose date
// fails to parse are dropped, not errors. Missing numeric values are then
// replaced with the column mean computed over the rows that survived the
// date filter; filtering first changes the means, so the order is fixed.
// The projection to the four analyzed columns falls out of the Observation
// type, which has no field for anything else.
func CleanTable(table RawTable) ([]Observation, CleanReport, error) {
	report := CleanReport{RowsIn: len(table.Records)}

	kept := make([]Observation, 0, len(table.Records))
	for _, rec := range table.Records {
		date, ok := ParseDate(rec.Date)
		if !ok {
			report.RowsDropped++
			continue
		}
		kept = append(kept, Observation{
			Date:        date,
			Temperature: rec.Temperature,
			Rainfall:    rec.Rainfall,
			Humidity:    rec.Humidity,
		})
	}
	if len(kept) == 0 {
		return nil, report, ErrEmptyDataset
	}
	report.RowsKept = len(kept)

	for _, column := range numericColumns {
		imp, err := imputeColumn(kept, column)
		if err != nil {
			return nil, report, err
		}
		if imp.Count > 0 {
			report.Imputations = append(report.Imputations, imp)
		}
	}

	return kept, report, nil
}

// imputeColumn replaces NaNs in one column with the mean of its valid values.
func imputeColumn(obs []Observation, column string) (Imputation, error) {
	valid := make([]float64, 0, len(obs))
	missing := 0
	for i := range obs {
		v := *fieldPtr(&obs[i], column)
		if math.IsNaN(v) {
			missing++
			continue
		}
		valid = append(valid, v)
	}
	if len(valid) == 0 {
		return Imputation{}, &InsufficientDataError{Column: column}
	}

	imp := Imputation{Column: column, Count: missing}
	if missing == 0 {
		return imp, nil
	}

	imp.FillValue = stat.Mean(valid, nil)
	for i := range obs {
		if p := fieldPtr(&obs[i], column); math.IsNaN(*p) {
			*p = imp.FillValue
		}
	}
	return imp, nil
}

func fieldPtr(o *Observation, column string) *float64 {
	switch column {
	case ColumnTemperature:
		return &o.Temperature
	case ColumnRainfall:
		return &o.Rainfall
	default:
		return &o.Humidity
	}
}
