package charts

import (
	"fmt"

	"ikdashboard/internal/models"
)

var directionColors = map[models.Direction]string{
	models.DirectionImport: "#1f77b4",
	models.DirectionExport: "#ff7f0e",
}

// YoYRange is the fixed display range of the year-over-year view.
var YoYRange = Range{Min: -100, Max: 100}

// BuildTradeChart assembles the bar chart for an already filtered set of
// trade records. Bars are grouped by direction over the record periods. The
// absolute view scales its axis to the maximum of the records passed in.
func BuildTradeChart(title string, records []models.TradeRecord, measure models.TradeMeasure) *Spec {
	spec := &Spec{
		ID:         "chart-trade",
		Title:      title,
		Height:     chartHeight,
		ShowLegend: true,
	}

	var periods []string
	periodIdx := make(map[string]int)
	for _, r := range records {
		if _, ok := periodIdx[r.Period]; !ok {
			periodIdx[r.Period] = len(periods)
			periods = append(periods, r.Period)
		}
	}
	spec.XAxis = XAxis{Title: "Zeitraum", TickAngle: 45, Categories: periods}

	axis := newValueAxis(AxisLeft, "", directionColors[models.DirectionImport])
	var all []*float64
	switch measure {
	case models.MeasureYoY:
		axis.Title = "Veränderung zum Vorjahresquartal (%)"
		r := YoYRange
		axis.Range = &r
	default:
		axis.Title = "Wert (Tsd. EUR)"
	}

	byDirection := make(map[models.Direction][]*float64)
	var order []models.Direction
	for _, r := range records {
		ys, ok := byDirection[r.Direction]
		if !ok {
			ys = make([]*float64, len(periods))
			order = append(order, r.Direction)
		}
		v := measureValue(r, measure)
		ys[periodIdx[r.Period]] = v
		byDirection[r.Direction] = ys
		all = append(all, v)
	}

	if measure != models.MeasureYoY {
		axis.Range = &Range{Min: 0, Max: AxisCeilingOf(all)}
	}
	axis.RangeMode = ""
	spec.YAxes = []YAxis{axis}

	for i, dir := range order {
		color, ok := directionColors[dir]
		if !ok {
			color = PaletteColor(i)
		}
		spec.Traces = append(spec.Traces, Trace{
			Name:  string(dir),
			Type:  TraceBar,
			YAxis: AxisLeft,
			Color: color,
			X:     periods,
			Y:     byDirection[dir],
		})
	}
	return spec
}

// TradeTitle formats the chart title for a direction and category.
func TradeTitle(dashboardName string, direction models.Direction, category string) string {
	return fmt.Sprintf("%s: %s (%s)", dashboardName, category, direction)
}

func measureValue(r models.TradeRecord, measure models.TradeMeasure) *float64 {
	if measure == models.MeasureYoY {
		return r.YoYPercent
	}
	return r.Value
}
