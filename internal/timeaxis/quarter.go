// Package timeaxis derives the quarterly time axis shared by all dashboards.
package timeaxis

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// quarterOrder maps the fixed quarter labels to their position in the year.
var quarterOrder = map[string]int{
	"Q1": 1,
	"Q2": 2,
	"Q3": 3,
	"Q4": 4,
}

// QuarterError reports a quarter label outside Q1..Q4.
type QuarterError struct {
	Year  int
	Label string
	Row   int
}

func (e *QuarterError) Error() string {
	return fmt.Sprintf("row %d: unknown quarter label %q for year %d", e.Row, e.Label, e.Year)
}

// Key is the sort key of a time axis value.
type Key struct {
	Year    int `json:"year"`
	Quarter int `json:"quarter"`
}

// Less orders keys by year, then quarter.
func (k Key) Less(other Key) bool {
	if k.Year != other.Year {
		return k.Year < other.Year
	}
	return k.Quarter < other.Quarter
}

// Row is anything carrying a year and a quarter label.
type Row interface {
	YearQuarter() (int, string)
}

// Point is a row placed on the time axis.
type Point[T Row] struct {
	Row   T
	Key   Key
	Label string
}

// QuarterIndex returns 1..4 for Q1..Q4.
func QuarterIndex(label string) (int, bool) {
	idx, ok := quarterOrder[label]
	return idx, ok
}

// Label formats the display value "{year}-{quarter}".
func Label(year int, quarter string) string {
	return strconv.Itoa(year) + "-" + quarter
}

// ParseLabel splits "2022-Q3" into its sort key. It accepts exactly the
// format produced by Label.
func ParseLabel(label string) (Key, error) {
	yearPart, quarterPart, ok := strings.Cut(label, "-")
	if !ok || len(yearPart) != 4 {
		return Key{}, fmt.Errorf("malformed period %q", label)
	}
	year, err := strconv.Atoi(yearPart)
	if err != nil {
		return Key{}, fmt.Errorf("malformed period %q: %w", label, err)
	}
	idx, ok := QuarterIndex(quarterPart)
	if !ok {
		return Key{}, &QuarterError{Year: year, Label: quarterPart, Row: -1}
	}
	return Key{Year: year, Quarter: idx}, nil
}

// Build computes key and label for every row and returns the points
// stable-sorted ascending by (year, quarter). Any unmapped quarter label
// aborts the build.
func Build[T Row](rows []T) ([]Point[T], error) {
	points := make([]Point[T], 0, len(rows))
	for i, row := range rows {
		year, quarter := row.YearQuarter()
		idx, ok := QuarterIndex(quarter)
		if !ok {
			return nil, &QuarterError{Year: year, Label: quarter, Row: i}
		}
		points = append(points, Point[T]{
			Row:   row,
			Key:   Key{Year: year, Quarter: idx},
			Label: Label(year, quarter),
		})
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Key.Less(points[j].Key)
	})
	return points, nil
}

// Sort is Build without the axis metadata.
func Sort[T Row](rows []T) ([]T, error) {
	points, err := Build(rows)
	if err != nil {
		return nil, err
	}
	sorted := make([]T, len(points))
	for i, p := range points {
		sorted[i] = p.Row
	}
	return sorted, nil
}

// Labels returns the display labels of points in order.
func Labels[T Row](points []Point[T]) []string {
	labels := make([]string, len(points))
	for i, p := range points {
		labels[i] = p.Label
	}
	return labels
}
