package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, 20, cfg.Fetch.TimeoutSec)
	require.Equal(t, 3, cfg.Fetch.MaxAttempts)
	require.Equal(t, 2, cfg.Fetch.RetryDelaySec)
	require.Equal(t, 2, cfg.Fetch.PacingSec)
	require.Equal(t, 1, cfg.Run.Concurrency)
	require.Equal(t, "stock-analysis-data.json", cfg.Run.Output)
	require.Len(t, cfg.Symbols, 45)
}

func TestLoad_File(t *testing.T) {
	path := writeFile(t, "config.yaml", `
fetch:
  timeout_sec: 5
  max_attempts: 2
run:
  concurrency: 4
  output: out.json
symbols:
  - AAPL
  - MSFT
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, 5, cfg.Fetch.TimeoutSec)
	require.Equal(t, 2, cfg.Fetch.MaxAttempts)
	// untouched keys keep defaults
	require.Equal(t, 2, cfg.Fetch.RetryDelaySec)
	require.Equal(t, 4, cfg.Run.Concurrency)
	require.Equal(t, "out.json", cfg.Run.Output)
	require.Equal(t, []string{"AAPL", "MSFT"}, cfg.Symbols)
}

func TestLoad_BadFile(t *testing.T) {
	path := writeFile(t, "config.yaml", "fetch: [not a map")
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadSymbols_PlainList(t *testing.T) {
	path := writeFile(t, "symbols.yaml", `
- AAPL
- MSFT
- " GOOGL "
`)
	syms, err := LoadSymbols(path)
	require.NoError(t, err)
	require.Equal(t, []string{"AAPL", "MSFT", "GOOGL"}, syms)
}

func TestLoadSymbols_ItemsForm(t *testing.T) {
	path := writeFile(t, "symbols.yaml", `
items:
  - sym: AAPL
    note: core holding
  - sym: MSFT
  - note: missing sym, skipped
`)
	syms, err := LoadSymbols(path)
	require.NoError(t, err)
	require.Equal(t, []string{"AAPL", "MSFT"}, syms)
}

func TestLoadSymbols_Empty(t *testing.T) {
	path := writeFile(t, "symbols.yaml", "[]\n")
	_, err := LoadSymbols(path)
	require.Error(t, err)
}
