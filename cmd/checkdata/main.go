// Command checkdata runs data-quality checks on a weather observation CSV
// before it is handed to the analysis pipeline. It verifies header structure,
// date parseability, numeric field syntax, and physical value ranges, and
// reports PASS/FAIL per phase. Unparsable dates are flagged because the
// pipeline drops those rows silently; garbage numerics are flagged because
// they abort the load.
//
// Usage:
//
//	go run ./cmd/checkdata -input weather_data.csv
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/couchcryptid/weather-data-analysis/internal/domain"
)

// rangeSpec bounds a numeric column to physically plausible values.
type rangeSpec struct {
	column string
	min    float64
	max    float64
	unit   string
}

var ranges = []rangeSpec{
	{column: domain.ColumnTemperature, min: -90, max: 60, unit: "°C"},
	{column: domain.ColumnRainfall, min: 0, max: 2000, unit: "mm"},
	{column: domain.ColumnHumidity, min: 0, max: 100, unit: "%"},
}

// missingTokens are cell values treated as absent rather than malformed.
var missingTokens = map[string]bool{
	"":        true,
	"na":      true,
	"n/a":     true,
	"nan":     true,
	"null":    true,
	"missing": true,
}

// phase tracks pass/fail for a check phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	input := flag.String("input", "", "path to the weather observation CSV")
	delimiter := flag.String("delimiter", ",", `field delimiter (single character, or \t for tabs)`)
	flag.Parse()

	if *input == "" {
		flag.Usage()
		os.Exit(1)
	}

	sep, err := parseDelimiter(*delimiter)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		os.Exit(1)
	}

	if code := run(*input, sep); code != 0 {
		os.Exit(code)
	}
}

func run(path string, sep rune) int {
	fmt.Println("=== Weather Data Quality Check ===")
	fmt.Println()
	fmt.Printf("Input: %s\n", path)

	header, rows, err := loadCSV(path, sep)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load input: %v\n", err)
		return 1
	}

	index := columnIndex(header)

	// ── Run check phases ──
	phases := []*phase{
		checkStructure(header, rows, index),
		checkDates(rows, index),
		checkNumerics(rows, index),
		checkRanges(rows, index),
	}

	// ── Report results ──
	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-44s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Rows: %d data rows, %d columns\n", len(rows), len(header))

	// Print detailed errors.
	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll checks passed.")
		return 0
	}
	fmt.Println("\nData quality check FAILED.")
	return 1
}

// ── Data loading ──

// csvRow is a raw CSV row with its 1-based line number.
type csvRow struct {
	lineNum int
	fields  []string
}

func loadCSV(path string, sep rune) ([]string, []csvRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = sep
	r.FieldsPerRecord = -1 // ragged rows are reported by the structure phase
	all, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(all) == 0 {
		return nil, nil, fmt.Errorf("no header row in %s", path)
	}

	var rows []csvRow
	for i, fields := range all[1:] {
		rows = append(rows, csvRow{lineNum: i + 2, fields: fields})
	}
	return all[0], rows, nil
}

// columnIndex maps normalized header names to their positions. Header
// matching is case-insensitive, and a leading byte order mark is ignored.
func columnIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimPrefix(name, "\ufeff")
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return index
}

// cell returns the trimmed value of a named column, or ok=false when the
// column is absent or the row is too short to contain it.
func cell(row csvRow, index map[string]int, column string) (string, bool) {
	i, ok := index[column]
	if !ok || i >= len(row.fields) {
		return "", false
	}
	return strings.TrimSpace(row.fields[i]), true
}

// ── Phase 1: Structure ──
// Validates the header against the required columns and each row's shape.

func checkStructure(header []string, rows []csvRow, index map[string]int) *phase {
	p := &phase{name: "Phase 1: Structure (header and row shape)"}

	for _, col := range domain.RequiredColumns {
		if _, ok := index[col]; !ok {
			p.errorf("required column %q missing from header", col)
		}
	}

	for _, row := range rows {
		if len(row.fields) != len(header) {
			p.errorf("line %d: %d fields, header has %d", row.lineNum, len(row.fields), len(header))
		}
	}

	if len(rows) == 0 {
		p.errorf("no data rows")
	}
	return p
}

// ── Phase 2: Dates ──
// Validates that every date cell parses under one of the accepted layouts.

func checkDates(rows []csvRow, index map[string]int) *phase {
	p := &phase{name: "Phase 2: Dates (parseability)"}

	for _, row := range rows {
		raw, ok := cell(row, index, domain.ColumnDate)
		if !ok {
			continue // reported by the structure phase
		}
		if _, parsed := domain.ParseDate(raw); !parsed {
			p.errorf("line %d: unparsable date %q, row would be dropped", row.lineNum, raw)
		}
	}
	return p
}

// ── Phase 3: Numerics ──
// Validates numeric cell syntax and that each column has values to impute
// from. Fill means are computed from rows whose dates parse, so coverage is
// counted on those rows alone.

func checkNumerics(rows []csvRow, index map[string]int) *phase {
	p := &phase{name: "Phase 3: Numerics (syntax and coverage)"}

	valid := map[string]int{}
	missing := 0
	dated := 0
	for _, row := range rows {
		date, _ := cell(row, index, domain.ColumnDate)
		_, dateOK := domain.ParseDate(date)
		if dateOK {
			dated++
		}
		for _, spec := range ranges {
			raw, ok := cell(row, index, spec.column)
			if !ok {
				continue
			}
			if missingTokens[strings.ToLower(raw)] {
				missing++
				continue
			}
			if _, err := strconv.ParseFloat(raw, 64); err != nil {
				p.errorf("line %d: column %q: cannot parse %q as a number", row.lineNum, spec.column, raw)
				continue
			}
			if dateOK {
				valid[spec.column]++
			}
		}
	}

	if missing > 0 {
		fmt.Printf("  Note: %d missing cell(s) will be imputed with column means\n", missing)
	}

	// With no dated rows the run fails before imputation; phase 2 already
	// shows why.
	if dated == 0 {
		return p
	}
	for _, spec := range ranges {
		if valid[spec.column] == 0 {
			p.errorf("column %q has no valid values in dated rows", spec.column)
		}
	}
	return p
}

// ── Phase 4: Ranges ──
// Validates values against physically plausible bounds.

func checkRanges(rows []csvRow, index map[string]int) *phase {
	p := &phase{name: "Phase 4: Ranges (physical plausibility)"}

	for _, row := range rows {
		for _, spec := range ranges {
			raw, ok := cell(row, index, spec.column)
			if !ok || missingTokens[strings.ToLower(raw)] {
				continue
			}
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				continue // reported by the numerics phase
			}
			if v < spec.min || v > spec.max {
				p.errorf("line %d: %s %g%s outside [%g, %g]", row.lineNum, spec.column, v, spec.unit, spec.min, spec.max)
			}
		}
	}
	return p
}

// ── Helpers ──

func parseDelimiter(s string) (rune, error) {
	if s == `\t` {
		return '\t', nil
	}
	runes := []rune(s)
	if len(runes) != 1 {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", s)
	}
	return runes[0], nil
}
