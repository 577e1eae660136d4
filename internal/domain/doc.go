// Package domain models daily weather observations and the rules for
// cleaning and summarizing them.
//
// # Input Conventions
//
// Source files are delimited text with a header row. Four columns are
// required (matched case-insensitively, after trimming whitespace):
//
//	date, temperature, rainfall, humidity
//
// Extra columns are tolerated on load and carried in [RawRecord.Extra],
// but cleaning projects them away: an [Observation] has fields only for
// the four analyzed columns.
//
// # Date Formats
//
// The date column accepts these layouts, tried in order:
//
//	2006-1-2           ISO-style, padded or not: "2024-01-05", "2024-1-5"
//	2006/1/2           slash-separated year first
//	1/2/2006           US month/day/year
//	2006-1-2 15:4:5    date with time of day
//	RFC 3339           "2024-01-05T00:00:00Z"
//
// Parsed dates are normalized to UTC. A row whose date matches no layout
// is malformed and is dropped during cleaning, not reported as an error;
// half-written or corrupt rows in field-collected files are routine.
//
// # Missing Values
//
// A numeric cell is missing when, after trimming and lowercasing, it is
// one of:
//
//	"" (empty), "na", "n/a", "nan", "null", "missing"
//
// Missing cells load as NaN. Any other unparsable numeric text is a
// format error at load time: a value that is present but garbled means
// the file does not match its declared schema, unlike a value that was
// simply never recorded.
//
// # Cleaning Rules
//
// [CleanTable] applies three steps in a fixed order:
//
//  1. Filter: drop rows with unparsable dates.
//  2. Fill: replace each NaN with the mean of its column, computed over
//     the rows that survived step 1.
//  3. Project: keep only the four analyzed columns.
//
// Filtering before filling matters: dropped rows must not contribute to
// the means used as fill values. A column with no valid values at all
// has no mean to fill from, which surfaces as [InsufficientDataError].
// If no rows survive the date filter the dataset is effectively empty
// and cleaning returns [ErrEmptyDataset].
//
// Cleaning is idempotent. A second pass over cleaned output parses every
// date and finds no NaNs, so it changes nothing.
//
// # Statistics Conventions
//
// [Summarize] reports mean, min, max, and standard deviation per column.
// Standard deviation uses the population convention (divisor N), treating
// the dataset as the complete population of interest rather than a sample.
//
// [AggregateMonthly] groups by calendar month of the parsed date: average
// temperature, minimum and maximum temperature, total rainfall, average
// humidity, and the record count per (year, month). Months with no
// observations are omitted rather than zero-filled, and the result is
// sorted ascending so January 2024 precedes February 2024.
package domain
