package charts

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNothingToRender is returned when a spec has no plottable values.
var ErrNothingToRender = errors.New("no data to render")

const (
	pngWidth  = 1000
	pngHeight = 450
)

// RenderPNG draws the spec as a static PNG image.
func RenderPNG(spec *Spec, w io.Writer) error {
	if spec.IsPlaceholder() || len(spec.Traces) == 0 {
		return fmt.Errorf("%s: %w", spec.Title, ErrNothingToRender)
	}
	if spec.Traces[0].Type == TraceBar {
		return renderBarPNG(spec, w)
	}
	return renderLinePNG(spec, w)
}

func renderLinePNG(spec *Spec, w io.Writer) error {
	categories := spec.XAxis.Categories

	ticks := make([]chart.Tick, len(categories))
	for i, label := range categories {
		ticks[i] = chart.Tick{Value: float64(i), Label: label}
	}

	var series []chart.Series
	primary := make([]*float64, 0)
	secondary := make([]*float64, 0)
	for _, tr := range spec.Traces {
		var xs, ys []float64
		for i, v := range tr.Y {
			if v == nil {
				continue
			}
			xs = append(xs, float64(i))
			ys = append(ys, *v)
		}
		if len(xs) == 0 {
			continue
		}

		color := drawing.ColorFromHex(strings.TrimPrefix(tr.Color, "#"))
		s := chart.ContinuousSeries{
			Name: tr.Name,
			Style: chart.Style{
				StrokeColor: color,
				StrokeWidth: 2,
				DotColor:    color,
				DotWidth:    4,
			},
			XValues: xs,
			YValues: ys,
		}
		if onSecondary(spec, tr.YAxis) {
			s.YAxis = chart.YAxisSecondary
			secondary = append(secondary, tr.Y...)
		} else {
			primary = append(primary, tr.Y...)
		}
		series = append(series, s)
	}
	if len(series) == 0 {
		return fmt.Errorf("%s: %w", spec.Title, ErrNothingToRender)
	}

	graph := chart.Chart{
		Title:  spec.Title,
		Width:  pngWidth,
		Height: pngHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 40},
		},
		XAxis: chart.XAxis{
			Name:  spec.XAxis.Title,
			Range: &chart.ContinuousRange{Min: -0.5, Max: float64(len(categories)) - 0.5},
			Ticks: ticks,
			Style: chart.Style{TextRotationDegrees: float64(spec.XAxis.TickAngle)},
		},
		Series: series,
	}
	if len(primary) > 0 {
		graph.YAxis = pngYAxis(spec, AxisLeft, primary)
	}
	if len(secondary) > 0 {
		graph.YAxisSecondary = pngYAxis(spec, AxisRight, secondary)
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render %s: %w", spec.Title, err)
	}
	return nil
}

// onSecondary reports whether a trace bound to axisID is drawn on go-chart's
// secondary axis. The right axis is secondary unless it is the only axis.
func onSecondary(spec *Spec, axisID string) bool {
	if axisID != AxisRight {
		return false
	}
	_, hasLeft := spec.Axis(AxisLeft)
	return hasLeft
}

func pngYAxis(spec *Spec, axisID string, values []*float64) chart.YAxis {
	y := chart.YAxis{
		ValueFormatter: formatTick,
		Range:          zeroBasedRange(values),
	}
	if axis, ok := spec.Axis(axisID); ok {
		y.Name = axis.Title
		if axis.Range != nil {
			y.Range = &chart.ContinuousRange{Min: axis.Range.Min, Max: axis.Range.Max}
		}
	}
	return y
}

// zeroBasedRange spans the values and always includes zero.
func zeroBasedRange(values []*float64) *chart.ContinuousRange {
	lo, hi := 0.0, 0.0
	for _, v := range values {
		if v == nil || math.IsNaN(*v) {
			continue
		}
		lo = math.Min(lo, *v)
		hi = math.Max(hi, *v)
	}
	if hi == lo {
		hi = lo + 1
	}
	return &chart.ContinuousRange{Min: lo, Max: hi}
}

func renderBarPNG(spec *Spec, w io.Writer) error {
	multi := len(spec.Traces) > 1

	var bars []chart.Value
	for _, tr := range spec.Traces {
		color := drawing.ColorFromHex(strings.TrimPrefix(tr.Color, "#"))
		for i, v := range tr.Y {
			if v == nil {
				continue
			}
			label := tr.X[i]
			if multi {
				label = fmt.Sprintf("%s %s", label, tr.Name)
			}
			bars = append(bars, chart.Value{
				Value: *v,
				Label: label,
				Style: chart.Style{FillColor: color, StrokeColor: color},
			})
		}
	}
	if len(bars) == 0 {
		return fmt.Errorf("%s: %w", spec.Title, ErrNothingToRender)
	}

	yAxis := chart.YAxis{ValueFormatter: formatTick}
	if len(spec.YAxes) > 0 && spec.YAxes[0].Range != nil {
		r := spec.YAxes[0].Range
		yAxis.Range = &chart.ContinuousRange{Min: r.Min, Max: r.Max}
	}

	graph := chart.BarChart{
		Title:  spec.Title,
		Width:  pngWidth,
		Height: pngHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20},
		},
		BarWidth:     30,
		UseBaseValue: true,
		BaseValue:    0,
		XAxis:        chart.Style{TextRotationDegrees: float64(spec.XAxis.TickAngle)},
		YAxis:        yAxis,
		Bars:         bars,
	}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render %s: %w", spec.Title, err)
	}
	return nil
}
