package data

import (
	"fmt"
	"strings"
)

// Table is a raw tabular extract: one header row and string cells.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Column returns the index of the named header. Matching ignores
// surrounding whitespace and a UTF-8 byte order mark.
func (t *Table) Column(name string) (int, bool) {
	for i, h := range t.Headers {
		if normalizeHeader(h) == name {
			return i, true
		}
	}
	return -1, false
}

// RequireColumns resolves all names or reports every missing one.
func (t *Table) RequireColumns(names ...string) ([]int, error) {
	idx := make([]int, len(names))
	var missing []string
	for i, name := range names {
		col, ok := t.Column(name)
		if !ok {
			missing = append(missing, name)
			continue
		}
		idx[i] = col
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing column(s): %s", strings.Join(missing, ", "))
	}
	return idx, nil
}

// Cell returns the cell at row/col, or "" for short rows.
func (t *Table) Cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

func normalizeHeader(h string) string {
	return strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
}
