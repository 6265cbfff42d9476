package reports

import (
	"fmt"
	"html/template"
	"strconv"
	"time"

	"ikdashboard/internal/charts"
	"ikdashboard/internal/config"
	"ikdashboard/internal/dashboard"
	"ikdashboard/internal/indicators"
	"ikdashboard/internal/logger"
	"ikdashboard/internal/models"
)

// Page chrome
const (
	PageTitle = "IK Wirtschaftsstatistik Kunststoffverpackungen und -folienindustrie"
	Banner    = "Ein Dashboard ist ein interaktives Visualisierungstool, das komplexe Daten übersichtlich darstellt " +
		"und wichtige Entwicklungen der Branche auf einen Blick erfassbar macht. Die IK stellt diese Informationen " +
		"transparent zur Verfügung, um Mitgliedsunternehmen, Medienvertreter und die Öffentlichkeit über die " +
		"wirtschaftliche Entwicklung der Kunststoffverpackungs- und folienindustrie zu informieren. Erkunden Sie " +
		"die Daten und gewinnen Sie spannende Einblicke in unsere Branche!"
	LoadErrorPrefix = "Fehler beim Laden der Daten: "
)

const dateLayout = "02.01.2006 15:04"

var measureLabels = map[models.TradeMeasure]string{
	models.MeasureAbsolute: "Absolutwerte (Tsd. EUR)",
	models.MeasureYoY:      "Veränderung zum Vorjahresquartal (%)",
}

// Option is one entry of a select box or checkbox group
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// DashboardView is the rendered state of one indicator dashboard
type DashboardView struct {
	ID             string
	Name           string
	MaxSelections  int
	Info           template.HTML
	ReadingExample template.HTML
	Chart          template.HTML
	Options        []Option
	ImageURL       string
	PageURL        string
}

// TradeView is the rendered state of the trade section
type TradeView struct {
	ID         string
	Name       string
	Unit       string
	Info       template.HTML
	Chart      template.HTML
	Directions []Option
	Categories []Option
	Periods    []Option
	Measures   []Option
	ImageURL   string
}

// PageData fills the page template
type PageData struct {
	Title       string
	Banner      string
	Notice      string
	Static      bool
	Version     string
	GeneratedAt string
	LoadedAt    string
	Years       []Option
	Quarters    []Option
	Dashboards  []DashboardView
	Trade       *TradeView
	Sources     template.HTML
	CSS         template.CSS
	EChartsURL  string
}

// PageOptions controls how a page links to its assets
type PageOptions struct {
	// Static disables the filter form, for exported snapshots
	Static bool
	// ImageURL maps a chart spec to the URL of its PNG. A nil func or an
	// empty result omits the link.
	ImageURL func(spec *charts.Spec) string
	// PageURL maps a dashboard id to its standalone chart page; nil omits the links
	PageURL func(dashboardID string) string
	Notice  string
	Now     time.Time
}

// PageBuilder assembles the dashboard page from chart specs
type PageBuilder struct {
	catalog   *indicators.Catalog
	html      *HTMLBuilder
	charts    *charts.ChartGenerator
	tradeUnit string
	log       *logger.Logger
}

// NewPageBuilder creates a page builder
func NewPageBuilder(catalog *indicators.Catalog, htmlBuilder *HTMLBuilder, chartGen *charts.ChartGenerator, tradeUnit string) *PageBuilder {
	return &PageBuilder{
		catalog:   catalog,
		html:      htmlBuilder,
		charts:    chartGen,
		tradeUnit: tradeUnit,
		log:       logger.GetGlobalLogger().WithComponent("reports"),
	}
}

// Build renders the complete page. specs are matched to their sections by
// chart id, so a dashboard without a spec renders without a chart.
func (pb *PageBuilder) Build(ds *models.Dataset, sel dashboard.Selection, specs []*charts.Spec, opts PageOptions) (string, error) {
	snippets, err := pb.charts.GenerateSnippets(specs)
	if err != nil {
		return "", err
	}
	byID := make(map[string]charts.ChartSnippet, len(snippets))
	for _, s := range snippets {
		byID[s.ID] = s
	}
	specByID := make(map[string]*charts.Spec, len(specs))
	for _, spec := range specs {
		if spec != nil {
			specByID[spec.ID] = spec
		}
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	data := PageData{
		Title:       PageTitle,
		Banner:      Banner,
		Notice:      opts.Notice,
		Static:      opts.Static,
		Version:     config.GetVersion(),
		GeneratedAt: now.Format(dateLayout),
		LoadedAt:    ds.LoadedAt.Format(dateLayout),
		Years:       yearOptions(ds.Years(), sel.Years),
		Quarters:    quarterOptions(sel.Quarters),
	}

	if data.Sources, err = pb.html.ConvertMarkdownToHTML(pb.catalog.Sources); err != nil {
		return "", err
	}

	for i := range pb.catalog.Dashboards {
		dash := &pb.catalog.Dashboards[i]
		view, err := pb.dashboardView(dash, ds, sel)
		if err != nil {
			return "", err
		}
		chartID := "chart-" + dash.ID
		if s, ok := byID[chartID]; ok {
			view.Chart = template.HTML(s.HTML) //nolint:gosec // generated snippet
		}
		if spec, ok := specByID[chartID]; ok && !spec.IsPlaceholder() && opts.ImageURL != nil {
			view.ImageURL = opts.ImageURL(spec)
		}
		if opts.PageURL != nil && view.ImageURL != "" {
			view.PageURL = opts.PageURL(dash.ID)
		}
		data.Dashboards = append(data.Dashboards, view)
	}

	if len(ds.Trade) > 0 {
		view, err := pb.tradeView(ds, sel.Trade)
		if err != nil {
			return "", err
		}
		if s, ok := byID["chart-trade"]; ok {
			view.Chart = template.HTML(s.HTML) //nolint:gosec // generated snippet
		}
		if spec, ok := specByID["chart-trade"]; ok && len(spec.Traces) > 0 && opts.ImageURL != nil {
			view.ImageURL = opts.ImageURL(spec)
		}
		data.Trade = view
	}

	page, err := pb.html.BuildPage(data)
	if err != nil {
		return "", fmt.Errorf("failed to build page: %w", err)
	}
	pb.log.Debug("Page built", map[string]interface{}{
		"dashboards": len(data.Dashboards),
		"bytes":      len(page),
		"static":     opts.Static,
	})
	return page, nil
}

// BuildLoadError renders the page shown while no dataset is available
func (pb *PageBuilder) BuildLoadError(loadErr error) (string, error) {
	return pb.html.BuildErrorPage(PageTitle, LoadErrorPrefix+loadErr.Error(), config.GetVersion())
}

func (pb *PageBuilder) dashboardView(dash *indicators.Dashboard, ds *models.Dataset, sel dashboard.Selection) (DashboardView, error) {
	info, err := pb.html.ConvertMarkdownToHTML(dash.Info)
	if err != nil {
		return DashboardView{}, err
	}
	example, err := pb.html.ConvertMarkdownToHTML(dash.ReadingExample)
	if err != nil {
		return DashboardView{}, err
	}

	selected := make(map[string]bool)
	for _, name := range sel.Selected(dash.ID) {
		selected[name] = true
	}
	var options []Option
	for _, name := range dash.Indicators {
		if !ds.HasIndicator(name) {
			continue
		}
		options = append(options, Option{Value: name, Label: name, Selected: selected[name]})
	}

	return DashboardView{
		ID:             dash.ID,
		Name:           dash.Name,
		MaxSelections:  dash.MaxSelections,
		Info:           info,
		ReadingExample: example,
		Options:        options,
	}, nil
}

func (pb *PageBuilder) tradeView(ds *models.Dataset, sel dashboard.TradeSelection) (*TradeView, error) {
	def := pb.catalog.Trade
	info, err := pb.html.ConvertMarkdownToHTML(def.Info)
	if err != nil {
		return nil, err
	}

	view := &TradeView{ID: def.ID, Name: def.Name, Unit: pb.tradeUnit, Info: info}
	for _, d := range ds.TradeDirections() {
		view.Directions = append(view.Directions, Option{Value: string(d), Label: string(d), Selected: d == sel.Direction})
	}
	for _, c := range ds.TradeCategories() {
		view.Categories = append(view.Categories, Option{Value: c, Label: c, Selected: c == sel.Category})
	}
	periods := make(map[string]bool, len(sel.Periods))
	for _, p := range sel.Periods {
		periods[p] = true
	}
	for _, p := range ds.TradePeriods() {
		view.Periods = append(view.Periods, Option{Value: p, Label: p, Selected: periods[p]})
	}
	for _, m := range []models.TradeMeasure{models.MeasureAbsolute, models.MeasureYoY} {
		view.Measures = append(view.Measures, Option{Value: string(m), Label: measureLabels[m], Selected: m == sel.Measure})
	}
	return view, nil
}

func yearOptions(all, selected []int) []Option {
	set := make(map[int]bool, len(selected))
	for _, y := range selected {
		set[y] = true
	}
	options := make([]Option, len(all))
	for i, y := range all {
		v := strconv.Itoa(y)
		options[i] = Option{Value: v, Label: v, Selected: set[y]}
	}
	return options
}

func quarterOptions(selected []models.Quarter) []Option {
	set := make(map[models.Quarter]bool, len(selected))
	for _, q := range selected {
		set[q] = true
	}
	options := make([]Option, len(models.AllQuarters))
	for i, q := range models.AllQuarters {
		options[i] = Option{Value: string(q), Label: string(q), Selected: set[q]}
	}
	return options
}
