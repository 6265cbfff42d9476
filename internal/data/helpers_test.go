package data

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// buildXLSX writes rows into the first sheet of a new workbook.
func buildXLSX(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	var buf bytes.Buffer
	_, err := f.WriteTo(&buf)
	require.NoError(t, err)
	return buf.Bytes()
}

// buildFormattedXLSX is buildXLSX with a built-in number format applied
// to each listed cell.
func buildFormattedXLSX(t *testing.T, rows [][]interface{}, numFmts map[string]int) []byte {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(buildXLSX(t, rows)))
	require.NoError(t, err)
	defer f.Close()

	sheet := f.GetSheetName(0)
	for cell, numFmt := range numFmts {
		style, err := f.NewStyle(&excelize.Style{NumFmt: numFmt})
		require.NoError(t, err)
		require.NoError(t, f.SetCellStyle(sheet, cell, cell, style))
	}

	var buf bytes.Buffer
	_, err = f.WriteTo(&buf)
	require.NoError(t, err)
	return buf.Bytes()
}

func writeFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, content, 0644))
	return p
}

func indicatorRows() [][]interface{} {
	return [][]interface{}{
		{"Jahr", "Monat", "Umsatz", "Index_Exporte"},
		{2023, "Q2", 5500000, -12},
		{2023, "Q1", 5000000, ""},
		{2022, "Q4", "k.A.", -43},
	}
}

const tradeCSV = `Zeitraum;Einheit;Handelsrichtung;Kategorie;Wert;Veraenderung_Vorjahr
2022-Q2;thousand EUR equivalent;Export;Gesamt_Polymere;48000;-7,25
2022-Q1;thousand EUR equivalent;Export;Gesamt_Polymere;12345;3,5
2022-Q1;thousand EUR equivalent;Import;Gesamt_Polymere;9000;1,0
2022-Q1;tonnes;Export;Gesamt_Polymere;777;0
2022;thousand EUR equivalent;Export;Gesamt_Polymere;60000;2
2015-Q4;thousand EUR equivalent;Export;Gesamt_Polymere;1;1
2022-Q3;thousand EUR equivalent;Export;PET;3000;
`
