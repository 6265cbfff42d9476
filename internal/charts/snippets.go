package charts

import (
	"encoding/json"
	"fmt"
	"html"
)

// ChartSnippet represents an embeddable ECharts fragment.
// Div contains a single root <div id="..." style="..."></div>,
// Script the <script>...</script> block that initializes the chart in that div.
// HTML combines both for template substitution.
type ChartSnippet struct {
	ID     string
	Title  string
	Div    string
	Script string
	HTML   string
}

// EChartsOption converts a spec into an ECharts option object.
func EChartsOption(spec *Spec) map[string]interface{} {
	yAxes := make([]interface{}, 0, len(spec.YAxes))
	for _, axis := range spec.YAxes {
		y := map[string]interface{}{
			"type":     "value",
			"position": axis.Side,
			"show":     axis.Visible,
			"axisLabel": map[string]interface{}{
				"color": axis.Color,
			},
		}
		if axis.Title != "" {
			y["name"] = axis.Title
			y["nameTextStyle"] = map[string]interface{}{"color": axis.Color}
		}
		if axis.Range != nil {
			y["min"] = axis.Range.Min
			y["max"] = axis.Range.Max
		} else {
			// "tozero": ECharts keeps zero in range unless scale is set
			y["scale"] = false
		}
		if axis.Overlaying != "" {
			y["splitLine"] = map[string]interface{}{"show": false}
		}
		yAxes = append(yAxes, y)
	}

	series := make([]interface{}, 0, len(spec.Traces))
	legend := make([]string, 0, len(spec.Traces))
	for _, tr := range spec.Traces {
		data := make([]interface{}, len(tr.Y))
		for i, v := range tr.Y {
			if v == nil {
				data[i] = "-"
			} else {
				data[i] = *v
			}
		}
		s := map[string]interface{}{
			"name":       tr.Name,
			"type":       string(tr.Type),
			"yAxisIndex": max(spec.AxisIndex(tr.YAxis), 0),
			"itemStyle":  map[string]interface{}{"color": tr.Color},
			"data":       data,
		}
		if tr.Type == TraceLine {
			s["showSymbol"] = true
			s["symbolSize"] = 7
			s["lineStyle"] = map[string]interface{}{"width": 2, "color": tr.Color}
		}
		series = append(series, s)
		legend = append(legend, tr.Name)
	}

	return map[string]interface{}{
		"title":   map[string]interface{}{"text": spec.Title, "left": "center"},
		"tooltip": map[string]interface{}{"trigger": "axis", "axisPointer": map[string]interface{}{"type": "cross"}},
		"legend":  map[string]interface{}{"show": spec.ShowLegend, "data": legend, "bottom": 0},
		"grid":    map[string]interface{}{"left": "4%", "right": "4%", "bottom": "18%", "containLabel": true},
		"xAxis": map[string]interface{}{
			"type":      "category",
			"name":      spec.XAxis.Title,
			"data":      spec.XAxis.Categories,
			"axisLabel": map[string]interface{}{"rotate": spec.XAxis.TickAngle},
		},
		"yAxis":  yAxes,
		"series": series,
	}
}

// Snippet renders a spec as an embeddable ECharts fragment. Placeholder
// specs render the prompt text instead of a chart.
func Snippet(spec *Spec) (ChartSnippet, error) {
	if spec.IsPlaceholder() {
		div := fmt.Sprintf(`<div id="%s" class="chart-placeholder">%s</div>`, spec.ID, html.EscapeString(spec.Placeholder))
		return ChartSnippet{ID: spec.ID, Title: spec.Title, Div: div, HTML: div}, nil
	}

	optJSON, err := json.Marshal(EChartsOption(spec))
	if err != nil {
		return ChartSnippet{}, fmt.Errorf("failed to encode chart option: %w", err)
	}

	div := fmt.Sprintf("<div id=\"%s\" style=\"width:100%%;height:%dpx;\"></div>", spec.ID, spec.Height)
	script := fmt.Sprintf(`<script>(function(){var el=document.getElementById('%s');if(!el)return;var c=echarts.init(el);var option=%s;c.setOption(option);window.addEventListener('resize',function(){c.resize();});})();</script>`, spec.ID, string(optJSON))

	completeHTML := fmt.Sprintf(`<div class="chart-container">
	%s
</div>
%s`, div, script)

	return ChartSnippet{ID: spec.ID, Title: spec.Title, Div: div, Script: script, HTML: completeHTML}, nil
}
