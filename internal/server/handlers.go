package server

import (
	"bytes"
	"errors"
	"net/http"
	"path"
	"strings"
	"time"

	"ikdashboard/internal/charts"
	"ikdashboard/internal/config"
	"ikdashboard/internal/dashboard"
	"ikdashboard/internal/indicators"
	"ikdashboard/internal/logger"
	"ikdashboard/internal/metrics"
	"ikdashboard/internal/reports"
	"ikdashboard/internal/storage"
)

// HandleRoot serves the dashboard page for the selection in the query string
func (s *Server) HandleRoot(w http.ResponseWriter, r *http.Request) {
	ds, sel, err := s.Service.Request(r.URL.Query())
	if err != nil {
		s.writePageError(w, r, err)
		return
	}

	specs, err := s.Service.AllCharts(ds, sel)
	if err != nil {
		s.writePageError(w, r, err)
		return
	}

	query := ""
	if r.URL.RawQuery != "" {
		query = "?" + r.URL.RawQuery
	}
	opts := reports.PageOptions{
		ImageURL: func(spec *charts.Spec) string { return "/charts/" + charts.PNGFileName(spec) + query },
		PageURL:  func(id string) string { return "/charts/" + id + ".html" + query },
	}
	if reloadErr := s.Data.LastError(); reloadErr != nil {
		opts.Notice = "Aktualisierung fehlgeschlagen, es werden die zuletzt geladenen Daten angezeigt: " + reloadErr.Error()
	}

	page, err := s.Pages.Build(ds, sel, specs, opts)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to build page", err)
		http.Error(w, "Failed to build page", http.StatusInternalServerError)
		return
	}
	writeHTML(w, http.StatusOK, page)
}

// writePageError renders the error page with the status that fits err
func (s *Server) writePageError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	switch status {
	case http.StatusBadRequest:
		http.Error(w, "Ungültige Auswahl: "+err.Error(), status)
		return
	case http.StatusServiceUnavailable:
		logger.FromContext(r.Context()).Error("Dataset unavailable", err)
		page, buildErr := s.Pages.BuildLoadError(err)
		if buildErr == nil {
			writeHTML(w, status, page)
			return
		}
		http.Error(w, reports.LoadErrorPrefix+err.Error(), status)
	default:
		logger.FromContext(r.Context()).Error("Failed to build charts", err)
		http.Error(w, "Failed to build charts", status)
	}
}

// HandleHealth provides health check endpoint
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	dataset := "ok"
	status := "healthy"
	ds, err := s.Data.Snapshot()
	switch {
	case err != nil:
		dataset = err.Error()
		status = "degraded"
	case s.Data.LastError() != nil:
		dataset = "stale: " + s.Data.LastError().Error()
	}

	health := map[string]interface{}{
		"status":    status,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   config.GetVersion(),
		"checks": map[string]string{
			"dataset": dataset,
			"config":  "ok",
		},
	}
	if ds != nil {
		health["data_loaded_at"] = ds.LoadedAt.UTC().Format(time.RFC3339)
	}
	writeJSON(w, http.StatusOK, health)
}

type dashboardInfo struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Policy        string   `json:"policy"`
	MaxSelections int      `json:"max_selections"`
	Indicators    []string `json:"indicators"`
	Defaults      []string `json:"defaults"`
}

type tradeInfo struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	DefaultDirection string `json:"default_direction"`
	DefaultCategory  string `json:"default_category"`
	DefaultMeasure   string `json:"default_measure"`
}

// HandleDashboards lists the dashboard definitions
func (s *Server) HandleDashboards(w http.ResponseWriter, r *http.Request) {
	catalog := s.Service.Catalog()
	list := make([]dashboardInfo, 0, len(catalog.Dashboards))
	for _, d := range catalog.Dashboards {
		list = append(list, dashboardInfo{
			ID:            d.ID,
			Name:          d.Name,
			Policy:        string(d.Policy),
			MaxSelections: d.MaxSelections,
			Indicators:    d.Indicators,
			Defaults:      d.Defaults,
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"dashboards": list,
		"trade":      tradeView(catalog.Trade),
	})
}

func tradeView(t indicators.TradeDashboard) tradeInfo {
	return tradeInfo{
		ID:               t.ID,
		Name:             t.Name,
		DefaultDirection: t.DefaultDirection,
		DefaultCategory:  t.DefaultCategory,
		DefaultMeasure:   t.DefaultMeasure,
	}
}

// HandleChartSpec returns the chart spec of one indicator dashboard
func (s *Server) HandleChartSpec(w http.ResponseWriter, r *http.Request) {
	ds, sel, err := s.Service.Request(r.URL.Query())
	if err != nil {
		writeJSONError(w, r, err)
		return
	}
	spec, err := s.Service.IndicatorChart(ds, sel, r.PathValue("dashboard"))
	if err != nil {
		writeJSONError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, spec)
}

// HandleTradeSpec returns the trade chart spec
func (s *Server) HandleTradeSpec(w http.ResponseWriter, r *http.Request) {
	ds, sel, err := s.Service.Request(r.URL.Query())
	if err != nil {
		writeJSONError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.Service.TradeChart(ds, sel))
}

// HandleChartFile serves /charts/<id>.png and /charts/<id>.html
func (s *Server) HandleChartFile(w http.ResponseWriter, r *http.Request) {
	file := r.PathValue("file")
	ext := path.Ext(file)
	id := strings.TrimSuffix(file, ext)
	if ext != ".png" && ext != ".html" {
		http.NotFound(w, r)
		return
	}

	ds, sel, err := s.Service.Request(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	var spec *charts.Spec
	if id == dashboard.TradeChartID {
		spec = s.Service.TradeChart(ds, sel)
	} else if spec, err = s.Service.IndicatorChart(ds, sel, id); err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	format := strings.TrimPrefix(ext, ".")
	start := time.Now()
	var buf bytes.Buffer
	if ext == ".png" {
		err = charts.RenderPNG(spec, &buf)
	} else {
		err = charts.RenderPage(spec, &buf)
	}
	if err != nil {
		if errors.Is(err, charts.ErrNothingToRender) {
			metrics.RecordRender(id, format, "empty", time.Since(start))
			http.Error(w, "Keine Daten für die aktuelle Auswahl", http.StatusNotFound)
			return
		}
		metrics.RecordRender(id, format, "failed", time.Since(start))
		logger.FromContext(r.Context()).Error("Failed to render chart", err, map[string]interface{}{"chart": id, "format": format})
		http.Error(w, "Failed to render chart", http.StatusInternalServerError)
		return
	}
	metrics.RecordRender(id, format, "success", time.Since(start))

	w.Header().Set("Content-Type", storage.GetContentType(file))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
