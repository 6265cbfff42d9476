package charts

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ikdashboard/internal/models"
)

func TestEChartsOption(t *testing.T) {
	spec := konjunkturSpec(t, []string{"Umsatz", "Index_Exporte"})
	option := EChartsOption(spec)

	yAxes, ok := option["yAxis"].([]interface{})
	require.True(t, ok)
	require.Len(t, yAxes, 2)

	left := yAxes[0].(map[string]interface{})
	assert.Equal(t, "left", left["position"])
	assert.Equal(t, false, left["scale"])
	assert.Equal(t, "Wert (Nicht-Index Indikatoren)", left["name"])

	right := yAxes[1].(map[string]interface{})
	assert.Equal(t, "right", right["position"])
	assert.Contains(t, right, "splitLine")

	series, ok := option["series"].([]interface{})
	require.True(t, ok)
	require.Len(t, series, 2)
	umsatz := series[0].(map[string]interface{})
	assert.Equal(t, 0, umsatz["yAxisIndex"])
	assert.Equal(t, "-", umsatz["data"].([]interface{})[0], "missing points become gaps")
	index := series[1].(map[string]interface{})
	assert.Equal(t, 1, index["yAxisIndex"])
}

func TestEChartsOptionTradeRange(t *testing.T) {
	spec := BuildTradeChart("t", nil, models.MeasureYoY)
	option := EChartsOption(spec)

	axis := option["yAxis"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, -100.0, axis["min"])
	assert.Equal(t, 100.0, axis["max"])
	assert.NotContains(t, axis, "scale")
}

func TestSnippet(t *testing.T) {
	spec := konjunkturSpec(t, []string{"Umsatz"})

	snippet, err := Snippet(spec)
	require.NoError(t, err)

	assert.Equal(t, spec.ID, snippet.ID)
	assert.Equal(t, spec.Title, snippet.Title)
	assert.Contains(t, snippet.Div, `id="chart-konjunktur"`)
	assert.Contains(t, snippet.Div, "height:400px")
	assert.Contains(t, snippet.Script, "echarts.init")
	assert.Contains(t, snippet.HTML, snippet.Div)
	assert.Contains(t, snippet.HTML, snippet.Script)

	start := strings.Index(snippet.Script, "var option=") + len("var option=")
	end := strings.Index(snippet.Script, ";c.setOption")
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(snippet.Script[start:end]), &decoded))
	assert.Contains(t, decoded, "series")
}

func TestSnippetPlaceholderEscapes(t *testing.T) {
	spec := &Spec{ID: "chart-x", Placeholder: "Bitte <Indikatoren> auswählen"}

	snippet, err := Snippet(spec)
	require.NoError(t, err)

	assert.Empty(t, snippet.Script)
	assert.Contains(t, snippet.HTML, "chart-placeholder")
	assert.Contains(t, snippet.HTML, "&lt;Indikatoren&gt;")
}
