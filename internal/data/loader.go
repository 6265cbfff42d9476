package data

import (
	"context"
	"fmt"
	"time"

	"ikdashboard/internal/logger"
	"ikdashboard/internal/models"
)

// Sources locates the input tables of a dataset.
type Sources struct {
	Indicators     string // path or URL, required
	IndicatorSheet string // XLSX sheet, empty = first sheet
	Trade          string // path or URL, empty = no trade section
	TradeSheet     string
	TradeOptions   TradeOptions
}

// DatasetLoader produces complete dataset snapshots.
type DatasetLoader interface {
	Load(ctx context.Context) (*models.Dataset, error)
}

// Loader reads both tables from their sources and builds a dataset.
type Loader struct {
	sources Sources
	fetcher *Fetcher
	now     func() time.Time
	log     *logger.Logger
}

// NewLoader creates a loader for sources.
func NewLoader(sources Sources, fetcher *Fetcher) *Loader {
	return &Loader{
		sources: sources,
		fetcher: fetcher,
		now:     time.Now,
		log:     logger.GetGlobalLogger().WithComponent("data"),
	}
}

// Load builds a new dataset. Any failure is returned as a *LoadError naming
// the source; no partial dataset is returned.
func (l *Loader) Load(ctx context.Context) (*models.Dataset, error) {
	if l.sources.Indicators == "" {
		return nil, &LoadError{Source: "indicators", Err: fmt.Errorf("no indicator source configured")}
	}

	table, err := l.readTable(ctx, l.sources.Indicators, l.sources.IndicatorSheet)
	if err != nil {
		return nil, &LoadError{Source: l.sources.Indicators, Err: err}
	}
	observations, names, err := ParseIndicatorTable(table)
	if err != nil {
		return nil, &LoadError{Source: l.sources.Indicators, Err: err}
	}

	var trade []models.TradeRecord
	if l.sources.Trade != "" {
		table, err := l.readTable(ctx, l.sources.Trade, l.sources.TradeSheet)
		if err != nil {
			return nil, &LoadError{Source: l.sources.Trade, Err: err}
		}
		trade, err = ParseTradeTable(table, l.sources.TradeOptions)
		if err != nil {
			return nil, &LoadError{Source: l.sources.Trade, Err: err}
		}
	}

	dataset, err := models.NewDataset(observations, names, trade, l.now())
	if err != nil {
		return nil, &LoadError{Source: "dataset", Err: err}
	}

	l.log.Info("Dataset loaded", map[string]interface{}{
		"observations": len(dataset.Observations),
		"indicators":   len(dataset.Indicators),
		"trade_rows":   len(dataset.Trade),
	})
	return dataset, nil
}

func (l *Loader) readTable(ctx context.Context, source, sheet string) (*Table, error) {
	format, err := FormatOf(source)
	if err != nil {
		return nil, err
	}
	content, err := l.fetcher.Fetch(ctx, source)
	if err != nil {
		return nil, err
	}
	return ReadTable(content, format, sheet)
}
