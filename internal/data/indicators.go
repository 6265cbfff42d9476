package data

import (
	"fmt"

	"ikdashboard/internal/models"
)

// Column names of the indicator table.
const (
	ColumnYear    = "Jahr"
	ColumnQuarter = "Monat"
)

// ParseIndicatorTable converts the indicator table into observations. Every
// column besides year and quarter is an indicator. Rows without a year are
// trailing blanks and are skipped; quarter labels are validated later when
// the dataset is placed on the time axis.
func ParseIndicatorTable(t *Table) ([]models.Observation, []string, error) {
	cols, err := t.RequireColumns(ColumnYear, ColumnQuarter)
	if err != nil {
		return nil, nil, err
	}
	yearCol, quarterCol := cols[0], cols[1]

	var names []string
	var nameCols []int
	for i, h := range t.Headers {
		name := normalizeHeader(h)
		if i == yearCol || i == quarterCol || name == "" {
			continue
		}
		names = append(names, name)
		nameCols = append(nameCols, i)
	}

	observations := make([]models.Observation, 0, len(t.Rows))
	for rowIdx, row := range t.Rows {
		yearCell := t.Cell(row, yearCol)
		if yearCell == "" {
			continue
		}
		year, ok := ParseYear(yearCell)
		if !ok {
			return nil, nil, fmt.Errorf("row %d: invalid year %q", rowIdx+2, yearCell)
		}

		obs := models.Observation{
			Year:    year,
			Quarter: models.Quarter(t.Cell(row, quarterCol)),
			Values:  make(map[string]float64, len(names)),
		}
		for i, name := range names {
			if v, ok := ParseNumber(t.Cell(row, nameCols[i])); ok {
				obs.Values[name] = v
			}
		}
		observations = append(observations, obs)
	}
	return observations, names, nil
}
