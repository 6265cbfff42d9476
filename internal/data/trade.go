package data

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"ikdashboard/internal/models"
	"ikdashboard/internal/timeaxis"
)

var periodPattern = regexp.MustCompile(`^(\d{4})-(Q[1-4])$`)

// TradeColumns names the columns of the trade table.
type TradeColumns struct {
	Period    string
	Unit      string
	Direction string
	Category  string
	Value     string
	YoY       string
}

// DefaultTradeColumns returns the column names of the Destatis extract.
func DefaultTradeColumns() TradeColumns {
	return TradeColumns{
		Period:    "Zeitraum",
		Unit:      "Einheit",
		Direction: "Handelsrichtung",
		Category:  "Kategorie",
		Value:     "Wert",
		YoY:       "Veraenderung_Vorjahr",
	}
}

// TradeOptions controls which trade rows are kept.
type TradeOptions struct {
	Columns TradeColumns
	Unit    string // rows with another unit are dropped; empty keeps all
	MinYear int    // inclusive; 0 = unbounded
	MaxYear int    // inclusive; 0 = unbounded
}

// ParseTradeTable converts the trade table into records. Rows outside the
// unit, with a period not of the form YYYY-Qn or outside the year bounds are
// dropped. An unknown trade direction fails the parse.
func ParseTradeTable(t *Table, opts TradeOptions) ([]models.TradeRecord, error) {
	c := opts.Columns
	cols, err := t.RequireColumns(c.Period, c.Direction, c.Category, c.Value)
	if err != nil {
		return nil, err
	}
	periodCol, dirCol, catCol, valueCol := cols[0], cols[1], cols[2], cols[3]
	unitCol, hasUnit := t.Column(c.Unit)
	yoyCol, hasYoY := t.Column(c.YoY)
	if opts.Unit != "" && !hasUnit {
		return nil, fmt.Errorf("missing column(s): %s", c.Unit)
	}

	var records []models.TradeRecord
	for rowIdx, row := range t.Rows {
		unit := ""
		if hasUnit {
			unit = t.Cell(row, unitCol)
		}
		if opts.Unit != "" && !strings.EqualFold(unit, opts.Unit) {
			continue
		}

		period := t.Cell(row, periodCol)
		m := periodPattern.FindStringSubmatch(period)
		if m == nil {
			continue
		}
		year, _ := ParseYear(m[1])
		if (opts.MinYear > 0 && year < opts.MinYear) || (opts.MaxYear > 0 && year > opts.MaxYear) {
			continue
		}

		dir, err := models.ParseDirection(t.Cell(row, dirCol))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowIdx+2, err)
		}

		rec := models.TradeRecord{
			Period:    period,
			Year:      year,
			Quarter:   models.Quarter(m[2]),
			Direction: dir,
			Category:  t.Cell(row, catCol),
			Unit:      unit,
		}
		if v, ok := ParseNumber(t.Cell(row, valueCol)); ok {
			rec.Value = &v
		}
		if hasYoY {
			if v, ok := ParseNumber(t.Cell(row, yoyCol)); ok {
				rec.YoYPercent = &v
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

// TradeFilter selects one direction and category over a set of periods.
type TradeFilter struct {
	Direction models.Direction
	Category  string
	Periods   []string // empty selects every period
}

// FilterTrade returns the records matching f, ordered by period.
func FilterTrade(records []models.TradeRecord, f TradeFilter) []models.TradeRecord {
	var periods map[string]bool
	if len(f.Periods) > 0 {
		periods = make(map[string]bool, len(f.Periods))
		for _, p := range f.Periods {
			periods[p] = true
		}
	}

	var out []models.TradeRecord
	for _, r := range records {
		if r.Direction != f.Direction || r.Category != f.Category {
			continue
		}
		if periods != nil && !periods[r.Period] {
			continue
		}
		out = append(out, r)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return periodKey(out[i]).Less(periodKey(out[j]))
	})
	return out
}

func periodKey(r models.TradeRecord) timeaxis.Key {
	q, _ := timeaxis.QuarterIndex(string(r.Quarter))
	return timeaxis.Key{Year: r.Year, Quarter: q}
}
