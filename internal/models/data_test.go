package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func TestNewDatasetSortsTables(t *testing.T) {
	obs := []Observation{
		{Year: 2023, Quarter: Q2, Values: map[string]float64{"Umsatz": 5.5e6}},
		{Year: 2023, Quarter: Q1, Values: map[string]float64{"Umsatz": 5.0e6}},
	}
	trade := []TradeRecord{
		{Period: "2022-Q2", Year: 2022, Quarter: Q2, Direction: DirectionExport, Category: "Gesamt_Polymere", Value: f(2)},
		{Period: "2022-Q1", Year: 2022, Quarter: Q1, Direction: DirectionImport, Category: "PE", Value: f(1)},
	}

	ds, err := NewDataset(obs, []string{"Umsatz"}, trade, time.Unix(0, 0))
	require.NoError(t, err)

	assert.Equal(t, "2023-Q1", ds.Observations[0].Label())
	assert.Equal(t, "2023-Q2", ds.Observations[1].Label())
	assert.Equal(t, []string{"2022-Q1", "2022-Q2"}, ds.TradePeriods())
	assert.Equal(t, []string{"Gesamt_Polymere", "PE"}, ds.TradeCategories())
	assert.Equal(t, []Direction{DirectionImport, DirectionExport}, ds.TradeDirections())
	assert.Equal(t, []int{2023}, ds.Years())
	assert.True(t, ds.HasIndicator("Umsatz"))
	assert.False(t, ds.HasIndicator("Betriebe"))
}

func TestNewDatasetFailsOnUnknownQuarter(t *testing.T) {
	obs := []Observation{{Year: 2023, Quarter: "Q7"}}

	_, err := NewDataset(obs, nil, nil, time.Now())
	assert.ErrorContains(t, err, "indicator table")
}

func TestObservationValue(t *testing.T) {
	o := Observation{Year: 2020, Quarter: Q3, Values: map[string]float64{"Betriebe": 310}}

	v, ok := o.Value("Betriebe")
	assert.True(t, ok)
	assert.Equal(t, 310.0, v)

	_, ok = o.Value("Beschäftigte")
	assert.False(t, ok)
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in      string
		want    Direction
		wantErr bool
	}{
		{"Export", DirectionExport, false},
		{"export", DirectionExport, false},
		{" Ausfuhr ", DirectionExport, false},
		{"IMPORT", DirectionImport, false},
		{"Einfuhr", DirectionImport, false},
		{"Transit", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDirection(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQuarterValid(t *testing.T) {
	for _, q := range AllQuarters {
		assert.True(t, q.Valid())
	}
	assert.False(t, Quarter("Q0").Valid())
}
