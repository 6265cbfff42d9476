package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds all configuration for the dashboard service
type Config struct {
	// Server configuration
	Port string `env:"PORT,default=8981"`

	// Data sources: local paths or http(s) URLs of .xlsx/.csv extracts
	IndicatorSource string `env:"INDICATOR_SOURCE,default=data/IK_Konj+Destatis_HWWI.xlsx"`
	IndicatorSheet  string `env:"INDICATOR_SHEET"`
	TradeSource     string `env:"TRADE_SOURCE"`
	TradeSheet      string `env:"TRADE_SHEET"`

	// Trade table filters
	TradeUnit    string `env:"TRADE_UNIT,default=thousand EUR equivalent"`
	TradeMinYear int    `env:"TRADE_MIN_YEAR,default=2016"`
	TradeMaxYear int    `env:"TRADE_MAX_YEAR,default=2024"`

	// Default sidebar time filter: years from this one onwards
	DefaultMinYear int `env:"DEFAULT_MIN_YEAR,default=2019"`

	// Optional YAML file replacing the built-in dashboard definitions
	DashboardsFile string `env:"DASHBOARDS_FILE"`

	// Dataset refresh
	ReloadSchedule string        `env:"RELOAD_SCHEDULE"`
	FetchTimeout   time.Duration `env:"FETCH_TIMEOUT,default=30s"`

	// Static export (render command)
	ExportDir string `env:"EXPORT_DIR,default=./exports"`
	GCSBucket string `env:"GCS_BUCKET"`

	// Service configuration
	Environment string `env:"ENVIRONMENT,default=development"`
	LogLevel    string `env:"LOG_LEVEL,default=info"`
	LogFormat   string `env:"LOG_FORMAT,default=json"`
}

// Load loads configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith loads configuration from the given lookuper
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value combinations envconfig cannot express
func (c *Config) Validate() error {
	if c.TradeMinYear > 0 && c.TradeMaxYear > 0 && c.TradeMinYear > c.TradeMaxYear {
		return fmt.Errorf("TRADE_MIN_YEAR %d is after TRADE_MAX_YEAR %d", c.TradeMinYear, c.TradeMaxYear)
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("FETCH_TIMEOUT must be positive, got %s", c.FetchTimeout)
	}
	return nil
}

// IsProduction reports whether the service runs in production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
