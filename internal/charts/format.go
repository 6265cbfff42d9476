package charts

import (
	"math"

	"github.com/dustin/go-humanize"
)

// FormatValue renders v with German separators: "5.500.000" or "-32,6".
func FormatValue(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "–"
	}
	if v == math.Trunc(v) {
		return humanize.FormatFloat("#.###,", v)
	}
	return humanize.FormatFloat("#.###,#", v)
}

// formatTick is a go-chart value formatter built on FormatValue.
func formatTick(v interface{}) string {
	if f, ok := v.(float64); ok {
		return FormatValue(f)
	}
	return ""
}
