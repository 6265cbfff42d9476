package charts

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// RenderPage writes a standalone go-echarts HTML page for the spec.
func RenderPage(spec *Spec, w io.Writer) error {
	if spec.IsPlaceholder() {
		return fmt.Errorf("%s: %w", spec.Title, ErrNothingToRender)
	}

	global := []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: spec.Title,
			Theme:     types.ThemeWesteros,
			Width:     "1000px",
			Height:    fmt.Sprintf("%dpx", spec.Height),
		}),
		charts.WithTitleOpts(opts.Title{Title: spec.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true, Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: spec.ShowLegend, Bottom: "0"}),
		charts.WithXAxisOpts(opts.XAxis{
			Name:      spec.XAxis.Title,
			Type:      "category",
			AxisLabel: &opts.AxisLabel{Rotate: float64(spec.XAxis.TickAngle)},
		}),
	}
	if len(spec.YAxes) > 0 {
		global = append(global, charts.WithYAxisOpts(echartsYAxis(spec.YAxes[0])))
	}

	if len(spec.Traces) > 0 && spec.Traces[0].Type == TraceBar {
		return renderBarPage(spec, global, w)
	}
	return renderLinePage(spec, global, w)
}

func renderLinePage(spec *Spec, global []charts.GlobalOpts, w io.Writer) error {
	line := charts.NewLine()
	line.SetGlobalOptions(global...)
	if len(spec.YAxes) > 1 {
		for _, axis := range spec.YAxes[1:] {
			line.ExtendYAxis(echartsYAxis(axis))
		}
	}

	line.SetXAxis(spec.XAxis.Categories)
	for _, tr := range spec.Traces {
		data := make([]opts.LineData, len(tr.Y))
		for i, v := range tr.Y {
			data[i] = opts.LineData{Value: seriesValue(v)}
		}
		line.AddSeries(tr.Name, data,
			charts.WithLineChartOpts(opts.LineChart{YAxisIndex: max(spec.AxisIndex(tr.YAxis), 0)}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: tr.Color}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: tr.Color}),
		)
	}

	if err := line.Render(w); err != nil {
		return fmt.Errorf("failed to render line chart: %w", err)
	}
	return nil
}

func renderBarPage(spec *Spec, global []charts.GlobalOpts, w io.Writer) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(global...)

	bar.SetXAxis(spec.XAxis.Categories)
	for _, tr := range spec.Traces {
		data := make([]opts.BarData, len(tr.Y))
		for i, v := range tr.Y {
			data[i] = opts.BarData{Value: seriesValue(v)}
		}
		bar.AddSeries(tr.Name, data, charts.WithItemStyleOpts(opts.ItemStyle{Color: tr.Color}))
	}

	if err := bar.Render(w); err != nil {
		return fmt.Errorf("failed to render bar chart: %w", err)
	}
	return nil
}

// echartsYAxis maps an axis onto go-echarts. The second axis of a line chart
// is placed on the right by ECharts itself. Show is omitted from the JSON
// when false, so a hidden axis also switches off its line, labels and grid.
func echartsYAxis(axis YAxis) opts.YAxis {
	y := opts.YAxis{
		Name: axis.Title,
		Type: "value",
		Show: axis.Visible,
	}
	if !axis.Visible {
		y.Name = ""
		y.AxisLine = &opts.AxisLine{Show: false}
		y.AxisLabel = &opts.AxisLabel{Show: false}
		y.SplitLine = &opts.SplitLine{Show: false}
	}
	if axis.Range != nil {
		y.Min = axis.Range.Min
		y.Max = axis.Range.Max
	}
	return y
}

// seriesValue maps a missing point to ECharts' gap marker.
func seriesValue(v *float64) interface{} {
	if v == nil {
		return "-"
	}
	return *v
}
