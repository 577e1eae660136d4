package config

import (
	"flag"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testInputPath = "testdata/weather.csv"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load([]string{"-input", testInputPath})
	require.NoError(t, err)

	assert.Equal(t, testInputPath, cfg.InputPath)
	assert.Equal(t, ',', cfg.Delimiter)
	assert.Equal(t, ".", cfg.OutDir)
	assert.Equal(t, "plots", cfg.PlotsDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Empty(t, cfg.MetricsOut)
}

func TestLoad_AllFlags(t *testing.T) {
	cfg, err := Load([]string{
		"-input", "data.tsv",
		"-delimiter", `\t`,
		"-out-dir", "out",
		"-plots-dir", "figures",
		"-log-level", "debug",
		"-log-format", "json",
		"-metrics-out", "out/metrics.prom",
	})
	require.NoError(t, err)

	assert.Equal(t, "data.tsv", cfg.InputPath)
	assert.Equal(t, '\t', cfg.Delimiter)
	assert.Equal(t, "out", cfg.OutDir)
	assert.Equal(t, "figures", cfg.PlotsDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "out/metrics.prom", cfg.MetricsOut)
}

func TestLoad_LiteralTabDelimiter(t *testing.T) {
	cfg, err := Load([]string{"-input", testInputPath, "-delimiter", "\t"})
	require.NoError(t, err)
	assert.Equal(t, '\t', cfg.Delimiter)
}

func TestLoad_MissingInput(t *testing.T) {
	_, err := Load(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "-input is required")
}

func TestLoad_InvalidDelimiter(t *testing.T) {
	_, err := Load([]string{"-input", testInputPath, "-delimiter", ";;"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid delimiter")
}

func TestLoad_EmptyDelimiter(t *testing.T) {
	_, err := Load([]string{"-input", testInputPath, "-delimiter", ""})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid delimiter")
}

func TestLoad_UnknownFlag(t *testing.T) {
	_, err := Load([]string{"-input", testInputPath, "-bogus"})
	require.Error(t, err)
}

func TestLoad_Help(t *testing.T) {
	_, err := Load([]string{"-h"})
	assert.ErrorIs(t, err, flag.ErrHelp)
}

func TestConfig_ArtifactPaths(t *testing.T) {
	cfg := &Config{OutDir: filepath.Join("tmp", "out"), PlotsDir: "plots"}

	assert.Equal(t, filepath.Join("tmp", "out", "summary_report.md"), cfg.ReportPath())
	assert.Equal(t, filepath.Join("tmp", "out", "cleaned_weather_data.csv"), cfg.CleanedPath())
	assert.Equal(t, filepath.Join("tmp", "out", "plots"), cfg.PlotsPath())
}

func TestConfig_AbsolutePlotsDir(t *testing.T) {
	abs, err := filepath.Abs("figures")
	require.NoError(t, err)

	cfg := &Config{OutDir: "out", PlotsDir: abs}
	assert.Equal(t, abs, cfg.PlotsPath())
}
