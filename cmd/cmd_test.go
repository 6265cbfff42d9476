package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Version: ")
	assert.Contains(t, out, "OS/Arch: ")
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "indikatoren.csv")
	require.NoError(t, os.WriteFile(source, []byte("Jahr;Monat;Umsatz;Index_Exporte\n2023;Q1;5.000.000;-43\n2023;Q2;5.500.000;-20\n"), 0644))

	t.Setenv("INDICATOR_SOURCE", source)
	t.Setenv("TRADE_SOURCE", "")
	t.Setenv("GCS_BUCKET", "")

	exportDir := filepath.Join(dir, "exports")
	out, err := execute(t, "render", "--log-level", "error", "--export-dir", exportDir, "--gcs-bucket", "", "--query", "konjunktur=Umsatz,Index_Exporte")
	require.NoError(t, err)

	index := strings.TrimSpace(out)
	require.True(t, strings.HasSuffix(index, "/index.html"), out)

	page, err := os.ReadFile(filepath.Join(exportDir, index))
	require.NoError(t, err)
	assert.Contains(t, string(page), "chart-konjunktur")

	folder := filepath.Dir(filepath.Join(exportDir, index))
	assert.FileExists(t, filepath.Join(folder, "konjunktur.png"))
	assert.FileExists(t, filepath.Join(folder, "charts.json"))
	assert.NoFileExists(t, filepath.Join(folder, "trade.png"))
}

func TestRenderCommandLoadFailure(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("INDICATOR_SOURCE", filepath.Join(dir, "missing.xlsx"))
	t.Setenv("TRADE_SOURCE", "")

	_, err := execute(t, "render", "--log-level", "error", "--export-dir", filepath.Join(dir, "exports"), "--query", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Fehler beim Laden der Daten")
}
