package models

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"ikdashboard/internal/timeaxis"
)

// Quarter is a calendar-quarter label as it appears in the source data
type Quarter string

const (
	Q1 Quarter = "Q1"
	Q2 Quarter = "Q2"
	Q3 Quarter = "Q3"
	Q4 Quarter = "Q4"
)

// AllQuarters lists the quarters in calendar order
var AllQuarters = []Quarter{Q1, Q2, Q3, Q4}

// Valid reports whether q is one of Q1..Q4
func (q Quarter) Valid() bool {
	_, ok := timeaxis.QuarterIndex(string(q))
	return ok
}

// Observation is one (year, quarter) row of the indicator table
type Observation struct {
	Year    int                `json:"year"`
	Quarter Quarter            `json:"quarter"`
	Values  map[string]float64 `json:"values"` // absent key = missing value
}

// YearQuarter implements timeaxis.Row
func (o Observation) YearQuarter() (int, string) {
	return o.Year, string(o.Quarter)
}

// Label returns the time axis label, e.g. "2023-Q4"
func (o Observation) Label() string {
	return timeaxis.Label(o.Year, string(o.Quarter))
}

// Value returns the indicator value and whether it is present
func (o Observation) Value(indicator string) (float64, bool) {
	v, ok := o.Values[indicator]
	return v, ok
}

// Direction is the trade direction of a trade record
type Direction string

const (
	DirectionImport Direction = "Import"
	DirectionExport Direction = "Export"
)

// ParseDirection accepts the English and German spellings used by trade extracts
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "import", "imports", "einfuhr":
		return DirectionImport, nil
	case "export", "exports", "ausfuhr":
		return DirectionExport, nil
	default:
		return "", fmt.Errorf("unknown trade direction %q", s)
	}
}

// TradeMeasure selects which trade figure a chart shows
type TradeMeasure string

const (
	MeasureAbsolute TradeMeasure = "absolute" // thousand EUR
	MeasureYoY      TradeMeasure = "yoy"      // percent change against previous year
)

// ParseTradeMeasure validates a measure name
func ParseTradeMeasure(s string) (TradeMeasure, error) {
	switch TradeMeasure(strings.ToLower(strings.TrimSpace(s))) {
	case MeasureAbsolute:
		return MeasureAbsolute, nil
	case MeasureYoY:
		return MeasureYoY, nil
	default:
		return "", fmt.Errorf("unknown trade measure %q", s)
	}
}

// TradeRecord is one quarterly foreign-trade figure for a product category
type TradeRecord struct {
	Period     string    `json:"period"` // YYYY-Qn
	Year       int       `json:"year"`
	Quarter    Quarter   `json:"quarter"`
	Direction  Direction `json:"direction"`
	Category   string    `json:"category"`
	Unit       string    `json:"unit"`
	Value      *float64  `json:"value"`       // thousand EUR
	YoYPercent *float64  `json:"yoy_percent"` // change against same quarter of previous year
}

// YearQuarter implements timeaxis.Row
func (r TradeRecord) YearQuarter() (int, string) {
	return r.Year, string(r.Quarter)
}

// Dataset is the read-only data context of one loaded snapshot.
// It is built once per load and never mutated afterwards.
type Dataset struct {
	Observations []Observation `json:"observations"` // sorted by (year, quarter)
	Indicators   []string      `json:"indicators"`   // indicator columns in source order
	Trade        []TradeRecord `json:"trade"`        // sorted by period
	LoadedAt     time.Time     `json:"loaded_at"`
}

// NewDataset sorts both tables onto the quarterly time axis. An unknown
// quarter label in either table is returned as an error.
func NewDataset(observations []Observation, indicators []string, trade []TradeRecord, loadedAt time.Time) (*Dataset, error) {
	sortedObs, err := timeaxis.Sort(observations)
	if err != nil {
		return nil, fmt.Errorf("indicator table: %w", err)
	}
	sortedTrade, err := timeaxis.Sort(trade)
	if err != nil {
		return nil, fmt.Errorf("trade table: %w", err)
	}
	return &Dataset{
		Observations: sortedObs,
		Indicators:   append([]string(nil), indicators...),
		Trade:        sortedTrade,
		LoadedAt:     loadedAt,
	}, nil
}

// HasIndicator reports whether the indicator table carries a column of that name
func (d *Dataset) HasIndicator(name string) bool {
	for _, ind := range d.Indicators {
		if ind == name {
			return true
		}
	}
	return false
}

// Years returns the distinct observation years in ascending order
func (d *Dataset) Years() []int {
	seen := make(map[int]bool)
	var years []int
	for _, o := range d.Observations {
		if !seen[o.Year] {
			seen[o.Year] = true
			years = append(years, o.Year)
		}
	}
	sort.Ints(years)
	return years
}

// TradeCategories returns the distinct trade categories in ascending order
func (d *Dataset) TradeCategories() []string {
	return distinctSorted(d.Trade, func(r TradeRecord) string { return r.Category })
}

// TradePeriods returns the distinct trade periods in chronological order
func (d *Dataset) TradePeriods() []string {
	// Trade is already sorted, so first occurrence order is chronological.
	seen := make(map[string]bool)
	var periods []string
	for _, r := range d.Trade {
		if !seen[r.Period] {
			seen[r.Period] = true
			periods = append(periods, r.Period)
		}
	}
	return periods
}

// TradeDirections returns the directions present in the trade table
func (d *Dataset) TradeDirections() []Direction {
	var out []Direction
	for _, dir := range []Direction{DirectionImport, DirectionExport} {
		for _, r := range d.Trade {
			if r.Direction == dir {
				out = append(out, dir)
				break
			}
		}
	}
	return out
}

func distinctSorted(records []TradeRecord, key func(TradeRecord) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range records {
		k := key(r)
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
