package data

import (
	"math"
	"strings"

	"github.com/spf13/cast"
)

// ParseNumber coerces a cell to a float. Empty cells, placeholders and
// anything non-numeric are reported as missing. German decimal commas
// ("5.500.000,5") are accepted alongside plain and English notation.
func ParseNumber(cell string) (float64, bool) {
	s := strings.TrimSpace(cell)
	switch s {
	case "", "-", "–", ".", "NaN", "nan", "n/a", "NA":
		return 0, false
	}
	s = strings.ReplaceAll(s, " ", "")
	v, err := cast.ToFloat64E(normalizeSeparators(s))
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// normalizeSeparators rewrites grouping and decimal separators into plain
// notation. With both separators present the last one is the decimal mark.
// A lone comma followed by exactly three digits groups thousands ("1,000").
func normalizeSeparators(s string) string {
	commas, dots := strings.Count(s, ","), strings.Count(s, ".")
	lastComma, lastDot := strings.LastIndex(s, ","), strings.LastIndex(s, ".")
	switch {
	case commas > 0 && dots > 0 && lastDot > lastComma:
		return strings.ReplaceAll(s, ",", "")
	case commas > 0 && dots > 0:
		return strings.ReplaceAll(strings.ReplaceAll(s, ".", ""), ",", ".")
	case commas > 1:
		return strings.ReplaceAll(s, ",", "")
	case commas == 1 && len(s)-lastComma-1 == 3 && isDigits(s[lastComma+1:]):
		return strings.ReplaceAll(s, ",", "")
	case commas == 1:
		return strings.ReplaceAll(s, ",", ".")
	case dots > 1:
		return strings.ReplaceAll(s, ".", "")
	}
	return s
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// ParseYear coerces a year cell. Spreadsheet exports sometimes store years
// as floats ("2023.0"), which are accepted when integral.
func ParseYear(cell string) (int, bool) {
	v, ok := ParseNumber(cell)
	if !ok || v != math.Trunc(v) {
		return 0, false
	}
	return cast.ToInt(v), true
}
