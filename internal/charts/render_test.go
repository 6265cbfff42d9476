package charts

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ikdashboard/internal/models"
)

func TestRenderPNGLineChart(t *testing.T) {
	spec := konjunkturSpec(t, []string{"Umsatz", "Index_Exporte"})

	var buf bytes.Buffer
	require.NoError(t, RenderPNG(spec, &buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))
}

func TestRenderPNGBarChart(t *testing.T) {
	spec := BuildTradeChart("Außenhandel", []models.TradeRecord{
		tradeRecord("2022-Q1", 2022, models.Q1, models.DirectionImport, 800, -2),
		tradeRecord("2022-Q1", 2022, models.Q1, models.DirectionExport, 950, 4),
	}, models.MeasureAbsolute)

	var buf bytes.Buffer
	require.NoError(t, RenderPNG(spec, &buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))
}

func TestRenderPNGNothingToRender(t *testing.T) {
	var buf bytes.Buffer

	err := RenderPNG(konjunkturSpec(t, nil), &buf)
	assert.True(t, errors.Is(err, ErrNothingToRender))

	err = RenderPNG(BuildTradeChart("t", nil, models.MeasureAbsolute), &buf)
	assert.True(t, errors.Is(err, ErrNothingToRender))
}

func TestRenderPage(t *testing.T) {
	spec := konjunkturSpec(t, []string{"Umsatz", "Index_Exporte"})

	var buf bytes.Buffer
	require.NoError(t, RenderPage(spec, &buf))
	assert.Contains(t, buf.String(), "Entwicklung (Konjunktur)")
	assert.Contains(t, buf.String(), "echarts")

	err := RenderPage(konjunkturSpec(t, nil), &buf)
	assert.True(t, errors.Is(err, ErrNothingToRender))
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "5.500.000", FormatValue(5_500_000))
	assert.Equal(t, "-32,6", FormatValue(-32.6))
	assert.Equal(t, "0", FormatValue(0))
}

func TestEChartsYAxisVisibility(t *testing.T) {
	visible := echartsYAxis(YAxis{Title: "EUR", Side: "left", Visible: true, Range: &Range{Min: 0, Max: 1e6}})
	assert.True(t, visible.Show)
	assert.Equal(t, "EUR", visible.Name)
	assert.Nil(t, visible.AxisLabel)
	assert.Equal(t, float64(1e6), visible.Max)

	hidden := echartsYAxis(YAxis{Side: "left", Visible: false})
	assert.False(t, hidden.Show)
	require.NotNil(t, hidden.AxisLine)
	assert.False(t, hidden.AxisLine.Show)
	require.NotNil(t, hidden.AxisLabel)
	assert.False(t, hidden.AxisLabel.Show)
	require.NotNil(t, hidden.SplitLine)
	assert.False(t, hidden.SplitLine.Show)
}
