package csvfile

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/couchcryptid/weather-data-analysis/internal/config"
	"github.com/couchcryptid/weather-data-analysis/internal/domain"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Rows echoed at debug level so a misread delimiter shows up immediately.
const previewRows = 5

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Missing-value tokens accepted in numeric cells, matched lowercase after
// trimming.
var missingTokens = map[string]struct{}{
	"":        {},
	"na":      {},
	"n/a":     {},
	"nan":     {},
	"null":    {},
	"missing": {},
}

// FileLoader reads one delimited text file into a raw table.
// It implements pipeline.Loader.
type FileLoader struct {
	cfg    *config.Config
	logger *slog.Logger
}

// NewLoader creates a FileLoader for the configured input file.
func NewLoader(cfg *config.Config, logger *slog.Logger) *FileLoader {
	return &FileLoader{cfg: cfg, logger: logger}
}

// Load reads and parses the input file. Numeric cells holding a
// missing-value token come back as NaN; any other unparsable numeric cell
// is a format error. Date cells stay raw text for the cleaning stage.
func (l *FileLoader) Load(ctx context.Context) (domain.RawTable, error) {
	if err := ctx.Err(); err != nil {
		return domain.RawTable{}, err
	}

	data, err := os.ReadFile(l.cfg.InputPath)
	if err != nil {
		return domain.RawTable{}, fmt.Errorf("read input: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	if len(bytes.TrimSpace(data)) == 0 {
		return domain.RawTable{}, &domain.FormatError{Reason: "input file is empty"}
	}

	df := dataframe.ReadCSV(bytes.NewReader(data),
		dataframe.HasHeader(true),
		dataframe.WithDelimiter(l.cfg.Delimiter),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		// gota refuses a header with no data rows. That is an empty
		// dataset, not a malformed file, so hand back the bare header
		// and let the cleaning stage report it.
		if strings.Contains(df.Err.Error(), "empty DataFrame") {
			return l.headerOnlyTable(data)
		}
		return domain.RawTable{}, &domain.FormatError{Reason: df.Err.Error()}
	}

	names := df.Names()
	index, err := requireColumns(names)
	if err != nil {
		return domain.RawTable{}, err
	}

	table := domain.RawTable{Columns: names}
	records := df.Records()
	for i, row := range records[1:] {
		rec, err := parseRow(row, names, index, i+2)
		if err != nil {
			return domain.RawTable{}, err
		}
		if i < previewRows {
			l.logger.Debug("row preview", "line", rec.Line, "date", rec.Date,
				"temperature", rec.Temperature, "rainfall", rec.Rainfall, "humidity", rec.Humidity)
		}
		table.Records = append(table.Records, rec)
	}

	return table, nil
}

// headerOnlyTable parses just the header line so a missing required column
// still surfaces as a format error rather than an empty-dataset one.
func (l *FileLoader) headerOnlyTable(data []byte) (domain.RawTable, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = l.cfg.Delimiter
	header, err := r.Read()
	if err != nil {
		return domain.RawTable{}, &domain.FormatError{Reason: fmt.Sprintf("read header: %v", err)}
	}
	if _, err := requireColumns(header); err != nil {
		return domain.RawTable{}, err
	}
	return domain.RawTable{Columns: header}, nil
}

// requireColumns maps canonical column names to their positions,
// case-insensitively, and rejects headers missing a required column.
func requireColumns(names []string) (map[string]int, error) {
	index := make(map[string]int, len(names))
	for i, name := range names {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, col := range domain.RequiredColumns {
		if _, ok := index[col]; !ok {
			return nil, &domain.FormatError{Column: col, Reason: "required column missing from header"}
		}
	}
	return index, nil
}

func parseRow(row, names []string, index map[string]int, line int) (domain.RawRecord, error) {
	rec := domain.RawRecord{
		Line: line,
		Date: strings.TrimSpace(row[index[domain.ColumnDate]]),
	}

	for _, col := range []struct {
		name string
		dst  *float64
	}{
		{domain.ColumnTemperature, &rec.Temperature},
		{domain.ColumnRainfall, &rec.Rainfall},
		{domain.ColumnHumidity, &rec.Humidity},
	} {
		raw := row[index[col.name]]
		v, ok := parseNumeric(raw)
		if !ok {
			return domain.RawRecord{}, &domain.FormatError{
				Line:   line,
				Column: col.name,
				Reason: fmt.Sprintf("cannot parse %q as a number", strings.TrimSpace(raw)),
			}
		}
		*col.dst = v
	}

	for i, name := range names {
		canonical := strings.ToLower(strings.TrimSpace(name))
		if canonical == domain.ColumnDate || canonical == domain.ColumnTemperature ||
			canonical == domain.ColumnRainfall || canonical == domain.ColumnHumidity {
			continue
		}
		if rec.Extra == nil {
			rec.Extra = make(map[string]string)
		}
		rec.Extra[canonical] = row[i]
	}

	return rec, nil
}

// parseNumeric returns NaN for missing-value tokens. ok is false when the
// cell is neither missing nor a valid number.
func parseNumeric(raw string) (float64, bool) {
	trimmed := strings.TrimSpace(raw)
	if _, missing := missingTokens[strings.ToLower(trimmed)]; missing {
		return math.NaN(), true
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
