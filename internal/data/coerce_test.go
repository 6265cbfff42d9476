package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		cell string
		want float64
		ok   bool
	}{
		{"5500000", 5500000, true},
		{" -12 ", -12, true},
		{"-32,6", -32.6, true},
		{"5.500.000", 5500000, true},
		{"5.500.000,5", 5500000.5, true},
		{"2023.0", 2023, true},
		{"1e3", 1000, true},
		{"1,000", 1000, true},
		{"1,000,000", 1000000, true},
		{"1,234.5", 1234.5, true},
		{"-7,25", -7.25, true},
		{"12,5000", 12.5, true},
		{"", 0, false},
		{"-", 0, false},
		{"NaN", 0, false},
		{"k.A.", 0, false},
		{"abc", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.cell, func(t *testing.T) {
			got, ok := ParseNumber(tt.cell)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestParseYear(t *testing.T) {
	year, ok := ParseYear("2023")
	assert.True(t, ok)
	assert.Equal(t, 2023, year)

	year, ok = ParseYear("2023.0")
	assert.True(t, ok)
	assert.Equal(t, 2023, year)

	_, ok = ParseYear("2023.5")
	assert.False(t, ok)

	_, ok = ParseYear("Jahr")
	assert.False(t, ok)
}
