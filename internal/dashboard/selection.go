// Package dashboard turns request parameters into chart specs over the
// current dataset.
package dashboard

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"ikdashboard/internal/indicators"
	"ikdashboard/internal/models"
)

// Query parameter names shared by all dashboards. Indicator selections use
// the dashboard id as parameter name.
const (
	ParamYear      = "year"
	ParamQuarter   = "quarter"
	ParamDirection = "direction"
	ParamCategory  = "category"
	ParamPeriod    = "period"
	ParamMeasure   = "measure"
)

// SelectionError reports a request parameter that cannot be honored.
type SelectionError struct {
	Param  string
	Value  string
	Reason string
}

func (e *SelectionError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Param, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Param, e.Value, e.Reason)
}

// TradeSelection is the state of the trade section.
type TradeSelection struct {
	Direction models.Direction
	Category  string
	Periods   []string
	Measure   models.TradeMeasure
}

// Selection is the complete filter state of one page render.
type Selection struct {
	Years      []int
	Quarters   []models.Quarter
	Indicators map[string][]string // dashboard id -> selected indicators
	Trade      TradeSelection
}

// Selected returns the indicators chosen for a dashboard.
func (s Selection) Selected(dashboardID string) []string {
	return s.Indicators[dashboardID]
}

// Query encodes the selection as query parameters that parse back to it.
func (s Selection) Query() url.Values {
	q := url.Values{}
	for _, y := range s.Years {
		q.Add(ParamYear, strconv.Itoa(y))
	}
	for _, quarter := range s.Quarters {
		q.Add(ParamQuarter, string(quarter))
	}
	for id, names := range s.Indicators {
		if len(names) == 0 {
			q.Set(id, "")
			continue
		}
		for _, name := range names {
			q.Add(id, name)
		}
	}
	if s.Trade.Direction != "" {
		q.Set(ParamDirection, string(s.Trade.Direction))
	}
	if s.Trade.Category != "" {
		q.Set(ParamCategory, s.Trade.Category)
	}
	for _, p := range s.Trade.Periods {
		q.Add(ParamPeriod, p)
	}
	if s.Trade.Measure != "" {
		q.Set(ParamMeasure, string(s.Trade.Measure))
	}
	return q
}

// ParseSelection reads the filter state from query parameters. Absent
// parameters take their defaults: years from defaultMinYear on, all
// quarters, each dashboard's preselection and the trade defaults of the
// catalog. A parameter present with an empty value selects nothing.
func ParseSelection(q url.Values, catalog *indicators.Catalog, ds *models.Dataset, defaultMinYear int) (Selection, error) {
	sel := Selection{Indicators: make(map[string][]string, len(catalog.Dashboards))}

	years, err := parseYears(q, ds, defaultMinYear)
	if err != nil {
		return Selection{}, err
	}
	sel.Years = years

	quarters, err := parseQuarters(q)
	if err != nil {
		return Selection{}, err
	}
	sel.Quarters = quarters

	for i := range catalog.Dashboards {
		dash := &catalog.Dashboards[i]
		names, err := parseIndicators(q, dash)
		if err != nil {
			return Selection{}, err
		}
		sel.Indicators[dash.ID] = names
	}

	trade, err := parseTrade(q, catalog.Trade, ds)
	if err != nil {
		return Selection{}, err
	}
	sel.Trade = trade

	return sel, nil
}

// values collects a parameter given repeatedly or comma separated. The
// second result reports whether the parameter was present at all.
func values(q url.Values, key string) ([]string, bool) {
	raw, ok := q[key]
	if !ok {
		return nil, false
	}
	var out []string
	for _, v := range raw {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out, true
}

func parseYears(q url.Values, ds *models.Dataset, defaultMinYear int) ([]int, error) {
	raw, ok := values(q, ParamYear)
	if !ok {
		var years []int
		for _, y := range ds.Years() {
			if y >= defaultMinYear {
				years = append(years, y)
			}
		}
		if len(years) == 0 {
			years = ds.Years()
		}
		return years, nil
	}

	years := make([]int, 0, len(raw))
	seen := make(map[int]bool)
	for _, v := range raw {
		y, err := strconv.Atoi(v)
		if err != nil || y < 1900 || y > 2999 {
			return nil, &SelectionError{Param: ParamYear, Value: v, Reason: "not a year"}
		}
		if !seen[y] {
			seen[y] = true
			years = append(years, y)
		}
	}
	return years, nil
}

func parseQuarters(q url.Values) ([]models.Quarter, error) {
	raw, ok := values(q, ParamQuarter)
	if !ok {
		return append([]models.Quarter(nil), models.AllQuarters...), nil
	}

	picked := make(map[models.Quarter]bool)
	for _, v := range raw {
		quarter := models.Quarter(strings.ToUpper(v))
		if !quarter.Valid() {
			return nil, &SelectionError{Param: ParamQuarter, Value: v, Reason: "must be one of Q1, Q2, Q3, Q4"}
		}
		picked[quarter] = true
	}

	// calendar order regardless of request order
	var quarters []models.Quarter
	for _, quarter := range models.AllQuarters {
		if picked[quarter] {
			quarters = append(quarters, quarter)
		}
	}
	return quarters, nil
}

func parseIndicators(q url.Values, dash *indicators.Dashboard) ([]string, error) {
	raw, ok := values(q, dash.ID)
	if !ok {
		return append([]string(nil), dash.Defaults...), nil
	}

	var names []string
	seen := make(map[string]bool)
	for _, name := range raw {
		if !dash.Allows(name) {
			return nil, &SelectionError{Param: dash.ID, Value: name, Reason: fmt.Sprintf("not available on %s", dash.Name)}
		}
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	if len(names) > dash.MaxSelections {
		return nil, &SelectionError{
			Param:  dash.ID,
			Reason: fmt.Sprintf("at most %d indicators can be selected, got %d", dash.MaxSelections, len(names)),
		}
	}
	return names, nil
}

func parseTrade(q url.Values, def indicators.TradeDashboard, ds *models.Dataset) (TradeSelection, error) {
	var sel TradeSelection

	direction := q.Get(ParamDirection)
	if direction == "" {
		direction = def.DefaultDirection
	}
	dir, err := models.ParseDirection(direction)
	if err != nil {
		return sel, &SelectionError{Param: ParamDirection, Value: direction, Reason: "must be Import or Export"}
	}
	sel.Direction = dir

	measure := q.Get(ParamMeasure)
	if measure == "" {
		measure = def.DefaultMeasure
	}
	m, err := models.ParseTradeMeasure(measure)
	if err != nil {
		return sel, &SelectionError{Param: ParamMeasure, Value: measure, Reason: "must be absolute or yoy"}
	}
	sel.Measure = m

	categories := ds.TradeCategories()
	category := strings.TrimSpace(q.Get(ParamCategory))
	switch {
	case category != "":
		if len(categories) > 0 && !contains(categories, category) {
			return sel, &SelectionError{Param: ParamCategory, Value: category, Reason: "unknown trade category"}
		}
	case contains(categories, def.DefaultCategory):
		category = def.DefaultCategory
	case len(categories) > 0:
		category = categories[0]
	}
	sel.Category = category

	periods, ok := values(q, ParamPeriod)
	if !ok {
		sel.Periods = ds.TradePeriods()
		return sel, nil
	}
	known := ds.TradePeriods()
	for _, p := range periods {
		if !contains(known, p) {
			return sel, &SelectionError{Param: ParamPeriod, Value: p, Reason: "unknown trade period"}
		}
	}
	sel.Periods = periods
	return sel, nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
