package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{}))
	require.NoError(t, err)

	assert.Equal(t, "8981", cfg.Port)
	assert.Equal(t, "data/IK_Konj+Destatis_HWWI.xlsx", cfg.IndicatorSource)
	assert.Equal(t, "thousand EUR equivalent", cfg.TradeUnit)
	assert.Equal(t, 2016, cfg.TradeMinYear)
	assert.Equal(t, 2024, cfg.TradeMaxYear)
	assert.Equal(t, 2019, cfg.DefaultMinYear)
	assert.Equal(t, 30*time.Second, cfg.FetchTimeout)
	assert.Equal(t, "./exports", cfg.ExportDir)
	assert.Empty(t, cfg.ReloadSchedule)
	assert.Empty(t, cfg.GCSBucket)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.False(t, cfg.IsProduction())
}

func TestLoadCustomValues(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"PORT":             "9000",
		"INDICATOR_SOURCE": "https://example.org/ik.xlsx",
		"TRADE_SOURCE":     "data/trade.csv",
		"TRADE_UNIT":       "tonnes",
		"TRADE_MIN_YEAR":   "2018",
		"DEFAULT_MIN_YEAR": "2021",
		"RELOAD_SCHEDULE":  "@every 1h",
		"FETCH_TIMEOUT":    "5s",
		"GCS_BUCKET":       "ik-exports",
		"ENVIRONMENT":      "production",
	}))
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "https://example.org/ik.xlsx", cfg.IndicatorSource)
	assert.Equal(t, "data/trade.csv", cfg.TradeSource)
	assert.Equal(t, "tonnes", cfg.TradeUnit)
	assert.Equal(t, 2018, cfg.TradeMinYear)
	assert.Equal(t, 2021, cfg.DefaultMinYear)
	assert.Equal(t, "@every 1h", cfg.ReloadSchedule)
	assert.Equal(t, 5*time.Second, cfg.FetchTimeout)
	assert.Equal(t, "ik-exports", cfg.GCSBucket)
	assert.True(t, cfg.IsProduction())
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"non-numeric year", map[string]string{"TRADE_MIN_YEAR": "soon"}},
		{"inverted trade years", map[string]string{"TRADE_MIN_YEAR": "2025", "TRADE_MAX_YEAR": "2020"}},
		{"bad timeout", map[string]string{"FETCH_TIMEOUT": "fast"}},
		{"zero timeout", map[string]string{"FETCH_TIMEOUT": "0s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadWith(context.Background(), envconfig.MapLookuper(tt.env))
			assert.Error(t, err)
		})
	}
}
