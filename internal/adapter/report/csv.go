package report

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/couchcryptid/weather-data-analysis/internal/domain"
)

// writeCleanedCSV persists the cleaned dataset with canonical column names.
// Floats use the shortest round-trip representation so imputed values stay
// exact when the file is re-analyzed.
func writeCleanedCSV(path string, obs []domain.Observation) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if err := w.Write(domain.RequiredColumns); err != nil {
		f.Close()
		return err
	}
	for _, o := range obs {
		row := []string{
			o.Date.Format("2006-01-02"),
			formatValue(o.Temperature),
			formatValue(o.Rainfall),
			formatValue(o.Humidity),
		}
		if err := w.Write(row); err != nil {
			f.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
