package charts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ikdashboard/internal/indicators"
	"ikdashboard/internal/models"
)

func testCatalog(t *testing.T) *indicators.Catalog {
	t.Helper()
	catalog, err := indicators.LoadCatalog("")
	require.NoError(t, err)
	return catalog
}

func testObservations() []models.Observation {
	return []models.Observation{
		{Year: 2023, Quarter: models.Q2, Values: map[string]float64{"Umsatz": 5.5e6, "Index_Exporte": -12}},
		{Year: 2023, Quarter: models.Q1, Values: map[string]float64{"Umsatz": 5.0e6, "Index_Exporte": -20, "Auslandsumsatz": 2.4e6}},
		{Year: 2022, Quarter: models.Q4, Values: map[string]float64{"Auslandsumsatz": 2.7e6}},
	}
}

func konjunkturSpec(t *testing.T, selected []string) *Spec {
	t.Helper()
	catalog := testCatalog(t)
	dash, ok := catalog.Dashboard("konjunktur")
	require.True(t, ok)
	spec, err := BuildIndicatorChart(dash, catalog.Registry, selected, testObservations())
	require.NoError(t, err)
	return spec
}

func TestBuildIndicatorChartCombined(t *testing.T) {
	spec := konjunkturSpec(t, []string{"Umsatz", "Index_Exporte", "Auslandsumsatz"})

	assert.Equal(t, "chart-konjunktur", spec.ID)
	assert.Equal(t, "Entwicklung (Konjunktur)", spec.Title)
	assert.Equal(t, []string{"2022-Q4", "2023-Q1", "2023-Q2"}, spec.XAxis.Categories)
	assert.Equal(t, "Zeitraum", spec.XAxis.Title)
	assert.Equal(t, 45, spec.XAxis.TickAngle)

	require.Len(t, spec.YAxes, 2)
	left, right := spec.YAxes[0], spec.YAxes[1]
	assert.Equal(t, AxisLeft, left.ID)
	assert.Equal(t, "Wert (Nicht-Index Indikatoren)", left.Title)
	assert.Equal(t, "left", left.Side)
	assert.Equal(t, AxisRight, right.ID)
	assert.Equal(t, "Index-Wert", right.Title)
	assert.Equal(t, "right", right.Side)
	assert.Equal(t, AxisLeft, right.Overlaying)
	for _, axis := range spec.YAxes {
		assert.Equal(t, "linear", axis.Scale)
		assert.Equal(t, "tozero", axis.RangeMode)
		assert.Equal(t, ",", axis.TickFormat)
	}

	// levels first, then indices, each keeping selection order
	require.Len(t, spec.Traces, 3)
	assert.Equal(t, "Umsatz", spec.Traces[0].Name)
	assert.Equal(t, "Auslandsumsatz", spec.Traces[1].Name)
	assert.Equal(t, "Index_Exporte", spec.Traces[2].Name)
	assert.Equal(t, AxisLeft, spec.Traces[0].YAxis)
	assert.Equal(t, AxisLeft, spec.Traces[1].YAxis)
	assert.Equal(t, AxisRight, spec.Traces[2].YAxis)

	assert.Equal(t, Palette[0], spec.Traces[0].Color)
	assert.Equal(t, Palette[1], spec.Traces[1].Color)
	assert.Equal(t, Palette[2], spec.Traces[2].Color)

	umsatz := spec.Traces[0]
	assert.Equal(t, "lines+markers", umsatz.Mode)
	assert.Nil(t, umsatz.Y[0])
	assert.Equal(t, 5.0e6, *umsatz.Y[1])
	assert.Equal(t, 5.5e6, *umsatz.Y[2])
}

func TestBuildIndicatorChartLevelsOnly(t *testing.T) {
	spec := konjunkturSpec(t, []string{"Umsatz"})

	require.Len(t, spec.YAxes, 1)
	assert.Equal(t, AxisLeft, spec.YAxes[0].ID)
	_, ok := spec.Axis(AxisRight)
	assert.False(t, ok)
}

func TestBuildIndicatorChartIndicesOnly(t *testing.T) {
	spec := konjunkturSpec(t, []string{"Index_Exporte"})

	require.Len(t, spec.YAxes, 1)
	right := spec.YAxes[0]
	assert.Equal(t, AxisRight, right.ID)
	assert.Empty(t, right.Overlaying)
	assert.Equal(t, Palette[0], spec.Traces[0].Color)
}

func TestBuildIndicatorChartPlaceholder(t *testing.T) {
	spec := konjunkturSpec(t, nil)

	assert.True(t, spec.IsPlaceholder())
	assert.Equal(t, "Bitte Indikatoren für Konjunktur auswählen", spec.Placeholder)
	assert.Empty(t, spec.Traces)
	assert.Empty(t, spec.YAxes)
}

func TestBuildIndicatorChartSingleAxis(t *testing.T) {
	catalog := testCatalog(t)
	dash, ok := catalog.Dashboard("rohstoffe")
	require.True(t, ok)

	rows := []models.Observation{
		{Year: 2024, Quarter: models.Q1, Values: map[string]float64{"Index_Preisentwicklung Rohöl": 130.2}},
	}
	spec, err := BuildIndicatorChart(dash, catalog.Registry, []string{"Index_Preisentwicklung Rohöl", "Umsatz"}, rows)
	require.NoError(t, err)

	require.Len(t, spec.YAxes, 1)
	assert.Equal(t, AxisLeft, spec.YAxes[0].ID)
	assert.Equal(t, "Index-Wert", spec.YAxes[0].Title)
	require.Len(t, spec.Traces, 1, "level series are dropped on single axis dashboards")
	assert.Equal(t, AxisLeft, spec.Traces[0].YAxis)

	spec, err = BuildIndicatorChart(dash, catalog.Registry, []string{"Umsatz"}, rows)
	require.NoError(t, err)
	assert.True(t, spec.IsPlaceholder())
}

func TestBuildIndicatorChartOverlay(t *testing.T) {
	dash := &indicators.Dashboard{ID: "overlay", Name: "Overlay", Policy: indicators.PolicyOverlay}
	reg := indicators.NewRegistry(nil)

	spec, err := BuildIndicatorChart(dash, reg, []string{"Index_Ertrag"}, []models.Observation{
		{Year: 2021, Quarter: models.Q3, Values: map[string]float64{"Index_Ertrag": 4}},
	})
	require.NoError(t, err)

	require.Len(t, spec.YAxes, 2)
	hidden := spec.YAxes[0]
	assert.Equal(t, AxisLeft, hidden.ID)
	assert.Empty(t, hidden.Title)
	assert.False(t, hidden.Visible)
	assert.Equal(t, AxisLeft, spec.YAxes[1].Overlaying)
	assert.Equal(t, AxisRight, spec.Traces[0].YAxis)
}

func TestBuildIndicatorChartUnknownQuarter(t *testing.T) {
	catalog := testCatalog(t)
	dash, _ := catalog.Dashboard("konjunktur")

	_, err := BuildIndicatorChart(dash, catalog.Registry, []string{"Umsatz"}, []models.Observation{
		{Year: 2023, Quarter: "Q5", Values: map[string]float64{"Umsatz": 1}},
	})
	assert.Error(t, err)
}

func TestBuildIndicatorChartTwoQuarters(t *testing.T) {
	catalog := testCatalog(t)
	dash, _ := catalog.Dashboard("konjunktur")

	rows := []models.Observation{
		{Year: 2023, Quarter: models.Q2, Values: map[string]float64{"Umsatz": 5.5e6}},
		{Year: 2023, Quarter: models.Q1, Values: map[string]float64{"Umsatz": 5.0e6}},
	}
	spec, err := BuildIndicatorChart(dash, catalog.Registry, []string{"Umsatz"}, rows)
	require.NoError(t, err)

	require.Len(t, spec.Traces, 1)
	tr := spec.Traces[0]
	assert.Equal(t, AxisLeft, tr.YAxis)
	assert.Equal(t, []string{"2023-Q1", "2023-Q2"}, tr.X)
	assert.Equal(t, 5.0e6, *tr.Y[0])
	assert.Equal(t, 5.5e6, *tr.Y[1])
	assert.Equal(t, "tozero", spec.YAxes[0].RangeMode)
}
