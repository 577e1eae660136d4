package domain

import (
	"fmt"
	"time"
)

// Canonical column names for the analyzed dataset. Header matching is
// case-insensitive; these are the normalized forms used everywhere else.
const (
	ColumnDate        = "date"
	ColumnTemperature = "temperature"
	ColumnRainfall    = "rainfall"
	ColumnHumidity    = "humidity"
)

// RequiredColumns lists the columns the input header must contain.
var RequiredColumns = []string{ColumnDate, ColumnTemperature, ColumnRainfall, ColumnHumidity}

// RawRecord is one input row before cleaning. Numeric fields hold NaN when
// the source cell was empty or a missing-value token. Date stays raw text
// because unparsable dates are a cleaning concern, not a loading error.
type RawRecord struct {
	Line        int // 1-based input line, header is line 1
	Date        string
	Temperature float64
	Rainfall    float64
	Humidity    float64
	Extra       map[string]string // columns outside the analyzed set
}

// RawTable is the loaded dataset in input order.
type RawTable struct {
	Columns []string
	Records []RawRecord
}

// Observation is one cleaned row: parsed date, no missing values, projected
// down to the analyzed columns.
type Observation struct {
	Date        time.Time
	Temperature float64
	Rainfall    float64
	Humidity    float64
}

// ColumnStats holds the descriptive statistics for one numeric column.
// StdDev is the population standard deviation (divisor N).
type ColumnStats struct {
	Mean   float64
	Min    float64
	Max    float64
	StdDev float64
}

// Summary holds per-column statistics over the whole cleaned table.
type Summary struct {
	Temperature ColumnStats
	Rainfall    ColumnStats
	Humidity    ColumnStats
	Records     int // observations the statistics describe
}

// MonthlyAggregate summarizes one calendar month present in the data.
// Months with no records are absent rather than zero-filled.
type MonthlyAggregate struct {
	Year           int
	Month          time.Month
	AvgTemperature float64
	MinTemperature float64
	MaxTemperature float64
	TotalRainfall  float64
	AvgHumidity    float64
	Records        int
}

// Label formats the month as YYYY-MM for chart axes and report tables.
func (m MonthlyAggregate) Label() string {
	return fmt.Sprintf("%04d-%02d", m.Year, m.Month)
}

// Imputation records one column's missing-value fill.
type Imputation struct {
	Column    string
	Count     int
	FillValue float64
}

// CleanReport counts what the cleaning pass did to the table.
type CleanReport struct {
	RowsIn      int
	RowsKept    int
	RowsDropped int
	Imputations []Imputation
}

// Result is the complete pipeline output handed to the reporter.
type Result struct {
	Observations []Observation
	Summary      Summary
	Monthly      []MonthlyAggregate
	Clean        CleanReport
}
