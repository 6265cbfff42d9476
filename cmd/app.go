package cmd

import (
	"fmt"

	"ikdashboard/internal/charts"
	"ikdashboard/internal/config"
	"ikdashboard/internal/dashboard"
	"ikdashboard/internal/data"
	"ikdashboard/internal/indicators"
	"ikdashboard/internal/reports"
)

// app holds the components shared by serve and render
type app struct {
	catalog *indicators.Catalog
	store   *data.Store
	service *dashboard.Service
	pages   *reports.PageBuilder
}

func newApp(cfg *config.Config) (*app, error) {
	catalog, err := indicators.LoadCatalog(cfg.DashboardsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load dashboard definitions: %w", err)
	}

	loader := data.NewLoader(data.Sources{
		Indicators:     cfg.IndicatorSource,
		IndicatorSheet: cfg.IndicatorSheet,
		Trade:          cfg.TradeSource,
		TradeSheet:     cfg.TradeSheet,
		TradeOptions: data.TradeOptions{
			Columns: data.DefaultTradeColumns(),
			Unit:    cfg.TradeUnit,
			MinYear: cfg.TradeMinYear,
			MaxYear: cfg.TradeMaxYear,
		},
	}, data.NewFetcher(cfg.FetchTimeout))
	store := data.NewStore(loader, cfg.FetchTimeout)

	htmlBuilder, err := reports.NewHTMLBuilder()
	if err != nil {
		return nil, err
	}

	return &app{
		catalog: catalog,
		store:   store,
		service: dashboard.NewService(catalog, store, cfg.DefaultMinYear),
		pages:   reports.NewPageBuilder(catalog, htmlBuilder, charts.NewChartGenerator(cfg.ExportDir), cfg.TradeUnit),
	}, nil
}
