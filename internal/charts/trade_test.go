package charts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ikdashboard/internal/models"
)

func tradeRecord(period string, year int, q models.Quarter, dir models.Direction, value, yoy float64) models.TradeRecord {
	return models.TradeRecord{
		Period:     period,
		Year:       year,
		Quarter:    q,
		Direction:  dir,
		Category:   "Gesamt_Polymere",
		Value:      ptr(value),
		YoYPercent: ptr(yoy),
	}
}

func TestBuildTradeChartAbsolute(t *testing.T) {
	records := []models.TradeRecord{
		tradeRecord("2022-Q1", 2022, models.Q1, models.DirectionExport, 12_345, 3.5),
		tradeRecord("2022-Q2", 2022, models.Q2, models.DirectionExport, 48_000, -7.25),
	}

	spec := BuildTradeChart(TradeTitle("Außenhandel", models.DirectionExport, "Gesamt_Polymere"), records, models.MeasureAbsolute)

	assert.Equal(t, "chart-trade", spec.ID)
	assert.Equal(t, "Außenhandel: Gesamt_Polymere (Export)", spec.Title)
	assert.Equal(t, []string{"2022-Q1", "2022-Q2"}, spec.XAxis.Categories)

	require.Len(t, spec.YAxes, 1)
	axis := spec.YAxes[0]
	assert.Equal(t, "Wert (Tsd. EUR)", axis.Title)
	require.NotNil(t, axis.Range)
	assert.Equal(t, Range{Min: 0, Max: 50_000}, *axis.Range)

	require.Len(t, spec.Traces, 1)
	tr := spec.Traces[0]
	assert.Equal(t, TraceBar, tr.Type)
	assert.Equal(t, "Export", tr.Name)
	assert.Equal(t, "#ff7f0e", tr.Color)
	assert.Equal(t, 12_345.0, *tr.Y[0])
}

func TestBuildTradeChartYoY(t *testing.T) {
	records := []models.TradeRecord{
		tradeRecord("2022-Q1", 2022, models.Q1, models.DirectionImport, 900_000, 140),
	}

	spec := BuildTradeChart("t", records, models.MeasureYoY)

	axis := spec.YAxes[0]
	assert.Equal(t, "Veränderung zum Vorjahresquartal (%)", axis.Title)
	assert.Equal(t, YoYRange, *axis.Range)
	assert.Equal(t, 140.0, *spec.Traces[0].Y[0], "values outside the range are kept")
	assert.Equal(t, "#1f77b4", spec.Traces[0].Color)
}

func TestBuildTradeChartEmpty(t *testing.T) {
	spec := BuildTradeChart("t", nil, models.MeasureAbsolute)

	assert.Empty(t, spec.Traces)
	assert.Equal(t, MinAxisCeiling, spec.YAxes[0].Range.Max)
}

func TestBuildTradeChartMissingValues(t *testing.T) {
	rec := tradeRecord("2023-Q4", 2023, models.Q4, models.DirectionExport, 0, 0)
	rec.Value = nil

	spec := BuildTradeChart("t", []models.TradeRecord{rec}, models.MeasureAbsolute)

	assert.Nil(t, spec.Traces[0].Y[0])
	assert.Equal(t, MinAxisCeiling, spec.YAxes[0].Range.Max)
}
