package data

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// ReadCSV parses a CSV extract. Semicolon separated files, as written by
// German spreadsheet exports, are detected from the header line.
func ReadCSV(content []byte) (*Table, error) {
	reader := csv.NewReader(bytes.NewReader(content))
	reader.Comma = sniffDelimiter(content)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(allRows) < 1 {
		return nil, fmt.Errorf("file must contain a header row")
	}

	return &Table{Headers: allRows[0], Rows: allRows[1:]}, nil
}

func sniffDelimiter(content []byte) rune {
	header := content
	if i := bytes.IndexByte(content, '\n'); i >= 0 {
		header = content[:i]
	}
	if bytes.Count(header, []byte(";")) > bytes.Count(header, []byte(",")) {
		return ';'
	}
	return ','
}
