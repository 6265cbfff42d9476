package charts

import (
	"fmt"

	"ikdashboard/internal/indicators"
	"ikdashboard/internal/models"
	"ikdashboard/internal/timeaxis"
)

const (
	levelAxisTitle = "Wert (Nicht-Index Indikatoren)"
	indexAxisTitle = "Index-Wert"
	levelAxisColor = "#1f77b4"
	indexAxisColor = "#ff7f0e"
	chartHeight    = 400
)

// PlaceholderText is shown instead of a chart when no indicator is selected.
func PlaceholderText(dashboardName string) string {
	return fmt.Sprintf("Bitte Indikatoren für %s auswählen", dashboardName)
}

// BuildIndicatorChart assembles the line chart for one indicator dashboard.
// Selection limits are enforced by the caller; any number of indicators is
// accepted here. Rows are placed on the quarterly time axis, so an unknown
// quarter label is returned as an error.
func BuildIndicatorChart(dash *indicators.Dashboard, reg *indicators.Registry, selected []string, rows []models.Observation) (*Spec, error) {
	spec := &Spec{
		ID:         "chart-" + dash.ID,
		Title:      fmt.Sprintf("Entwicklung (%s)", dash.Name),
		Height:     chartHeight,
		ShowLegend: true,
	}

	levels, indices := reg.Partition(selected)
	if dash.Policy == indicators.PolicySingleAxis {
		levels = nil
	}
	if len(levels)+len(indices) == 0 {
		spec.Placeholder = PlaceholderText(dash.Name)
		return spec, nil
	}

	points, err := timeaxis.Build(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to build time axis for %s: %w", dash.Name, err)
	}
	labels := timeaxis.Labels(points)
	spec.XAxis = XAxis{Title: "Zeitraum", TickAngle: 45, Categories: labels}

	levelAxis, indexAxis := axisAssignment(dash.Policy)

	switch dash.Policy {
	case indicators.PolicyOverlay:
		hidden := newValueAxis(AxisLeft, "", "")
		hidden.Visible = false
		right := newValueAxis(AxisRight, indexAxisTitle, indexAxisColor)
		right.Overlaying = AxisLeft
		spec.YAxes = append(spec.YAxes, hidden, right)
	case indicators.PolicySingleAxis:
		spec.YAxes = append(spec.YAxes, newValueAxis(AxisLeft, indexAxisTitle, levelAxisColor))
	default:
		if len(levels) > 0 {
			spec.YAxes = append(spec.YAxes, newValueAxis(AxisLeft, levelAxisTitle, levelAxisColor))
		}
		if len(indices) > 0 {
			right := newValueAxis(AxisRight, indexAxisTitle, indexAxisColor)
			if len(levels) > 0 {
				right.Overlaying = AxisLeft
			}
			spec.YAxes = append(spec.YAxes, right)
		}
	}

	for i, name := range levels {
		spec.Traces = append(spec.Traces, lineTrace(name, levelAxis, PaletteColor(i), labels, points))
	}
	for i, name := range indices {
		spec.Traces = append(spec.Traces, lineTrace(name, indexAxis, PaletteColor(len(levels)+i), labels, points))
	}
	return spec, nil
}

// axisAssignment returns the axis ids for level and index series under a policy.
func axisAssignment(policy indicators.AxisPolicy) (level, index string) {
	switch policy {
	case indicators.PolicyOverlay:
		return AxisRight, AxisRight
	case indicators.PolicySingleAxis:
		return AxisLeft, AxisLeft
	default:
		return AxisLeft, AxisRight
	}
}

func lineTrace(name, axis, color string, labels []string, points []timeaxis.Point[models.Observation]) Trace {
	ys := make([]*float64, len(points))
	for i, p := range points {
		if v, ok := p.Row.Value(name); ok {
			v := v
			ys[i] = &v
		}
	}
	return Trace{
		Name:  name,
		Type:  TraceLine,
		Mode:  "lines+markers",
		YAxis: axis,
		Color: color,
		X:     labels,
		Y:     ys,
	}
}
