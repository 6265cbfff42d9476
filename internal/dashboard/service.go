package dashboard

import (
	"fmt"
	"net/url"
	"time"

	"ikdashboard/internal/charts"
	"ikdashboard/internal/data"
	"ikdashboard/internal/indicators"
	"ikdashboard/internal/metrics"
	"ikdashboard/internal/models"
)

// TradeChartID is the chart key of the trade section.
const TradeChartID = "trade"

// Snapshotter provides the dataset currently in service.
type Snapshotter interface {
	Snapshot() (*models.Dataset, error)
}

// Service assembles chart specs for a request. It holds no per-request
// state; every call works on the dataset snapshot it is given.
type Service struct {
	catalog        *indicators.Catalog
	store          Snapshotter
	defaultMinYear int
}

// NewService creates a dashboard service.
func NewService(catalog *indicators.Catalog, store Snapshotter, defaultMinYear int) *Service {
	return &Service{
		catalog:        catalog,
		store:          store,
		defaultMinYear: defaultMinYear,
	}
}

// Catalog returns the dashboard definitions.
func (s *Service) Catalog() *indicators.Catalog {
	return s.catalog
}

// Request resolves the dataset snapshot and parses the selection against
// it. A dataset error is returned unchanged; a bad parameter is returned as
// a *SelectionError.
func (s *Service) Request(q url.Values) (*models.Dataset, Selection, error) {
	ds, err := s.store.Snapshot()
	if err != nil {
		return nil, Selection{}, err
	}
	sel, err := ParseSelection(q, s.catalog, ds, s.defaultMinYear)
	if err != nil {
		return nil, Selection{}, err
	}
	return ds, sel, nil
}

// IndicatorChart builds the chart of one indicator dashboard.
func (s *Service) IndicatorChart(ds *models.Dataset, sel Selection, dashboardID string) (*charts.Spec, error) {
	dash, ok := s.catalog.Dashboard(dashboardID)
	if !ok {
		return nil, &SelectionError{Param: "dashboard", Value: dashboardID, Reason: "unknown dashboard"}
	}

	start := time.Now()
	rows := FilterObservations(ds.Observations, sel.Years, sel.Quarters)
	spec, err := charts.BuildIndicatorChart(dash, s.catalog.Registry, sel.Selected(dash.ID), rows)
	if err != nil {
		metrics.RecordRender(dash.ID, "spec", "failed", time.Since(start))
		return nil, fmt.Errorf("dashboard %s: %w", dash.ID, err)
	}
	status := "success"
	if spec.IsPlaceholder() {
		status = "placeholder"
	}
	metrics.RecordRender(dash.ID, "spec", status, time.Since(start))
	return spec, nil
}

// TradeChart builds the trade chart for the selected direction, category
// and periods. The absolute axis ceiling follows only the displayed subset.
func (s *Service) TradeChart(ds *models.Dataset, sel Selection) *charts.Spec {
	start := time.Now()

	var records []models.TradeRecord
	if len(sel.Trade.Periods) > 0 {
		records = data.FilterTrade(ds.Trade, data.TradeFilter{
			Direction: sel.Trade.Direction,
			Category:  sel.Trade.Category,
			Periods:   sel.Trade.Periods,
		})
	}

	title := charts.TradeTitle(s.catalog.Trade.Name, sel.Trade.Direction, sel.Trade.Category)
	spec := charts.BuildTradeChart(title, records, sel.Trade.Measure)
	metrics.RecordRender(TradeChartID, "spec", "success", time.Since(start))
	return spec
}

// AllCharts builds every indicator dashboard followed by the trade chart.
// The trade chart is omitted when the dataset has no trade table.
func (s *Service) AllCharts(ds *models.Dataset, sel Selection) ([]*charts.Spec, error) {
	specs := make([]*charts.Spec, 0, len(s.catalog.Dashboards)+1)
	for _, dash := range s.catalog.Dashboards {
		spec, err := s.IndicatorChart(ds, sel, dash.ID)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	if len(ds.Trade) > 0 {
		specs = append(specs, s.TradeChart(ds, sel))
	}
	return specs, nil
}

// FilterObservations keeps the rows whose year and quarter are selected.
// An empty year or quarter list selects nothing.
func FilterObservations(rows []models.Observation, years []int, quarters []models.Quarter) []models.Observation {
	yearSet := make(map[int]bool, len(years))
	for _, y := range years {
		yearSet[y] = true
	}
	quarterSet := make(map[models.Quarter]bool, len(quarters))
	for _, q := range quarters {
		quarterSet[q] = true
	}

	var out []models.Observation
	for _, row := range rows {
		if yearSet[row.Year] && quarterSet[row.Quarter] {
			out = append(out, row)
		}
	}
	return out
}
