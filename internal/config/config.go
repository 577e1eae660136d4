package config

import (
	"errors"
	"flag"
	"fmt"
	"path/filepath"
)

// Artifact file names, fixed relative to the output directory.
const (
	reportFile  = "summary_report.md"
	cleanedFile = "cleaned_weather_data.csv"
)

// Config holds all analyzer settings, populated from command-line flags.
type Config struct {
	InputPath  string
	Delimiter  rune
	OutDir     string
	PlotsDir   string
	LogLevel   string
	LogFormat  string
	MetricsOut string
}

// Load parses command-line flags, applying defaults where unset. args is
// the command line without the program name, e.g. os.Args[1:].
func Load(args []string) (*Config, error) {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)

	input := fs.String("input", "", "path to the delimited weather data file (required)")
	delimiter := fs.String("delimiter", ",", `field delimiter: a single character, or \t for tab`)
	outDir := fs.String("out-dir", ".", "directory for the report and the cleaned dataset")
	plotsDir := fs.String("plots-dir", "plots", "directory for chart images, resolved against -out-dir unless absolute")
	logLevel := fs.String("log-level", "info", "log level: debug, info, warn, or error")
	logFormat := fs.String("log-format", "text", "log format: text or json")
	metricsOut := fs.String("metrics-out", "", "optional path for a Prometheus textfile metrics dump")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	delim, err := parseDelimiter(*delimiter)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		InputPath:  *input,
		Delimiter:  delim,
		OutDir:     *outDir,
		PlotsDir:   *plotsDir,
		LogLevel:   *logLevel,
		LogFormat:  *logFormat,
		MetricsOut: *metricsOut,
	}

	if cfg.InputPath == "" {
		return nil, errors.New("-input is required")
	}
	if cfg.OutDir == "" {
		return nil, errors.New("-out-dir must not be empty")
	}

	return cfg, nil
}

// parseDelimiter accepts a single character, or the two-character escape
// `\t` so tabs survive shells that eat literal tab arguments.
func parseDelimiter(s string) (rune, error) {
	if s == `\t` {
		return '\t', nil
	}
	runes := []rune(s)
	if len(runes) != 1 {
		return 0, fmt.Errorf("invalid delimiter %q: want a single character or \\t", s)
	}
	return runes[0], nil
}

// ReportPath is where the markdown summary report is written.
func (c *Config) ReportPath() string {
	return filepath.Join(c.OutDir, reportFile)
}

// CleanedPath is where the cleaned dataset is written.
func (c *Config) CleanedPath() string {
	return filepath.Join(c.OutDir, cleanedFile)
}

// PlotsPath resolves the chart directory against OutDir unless absolute.
func (c *Config) PlotsPath() string {
	if filepath.IsAbs(c.PlotsDir) {
		return c.PlotsDir
	}
	return filepath.Join(c.OutDir, c.PlotsDir)
}
