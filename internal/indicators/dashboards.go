package indicators

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"

	"ikdashboard/internal/models"
)

//go:embed dashboards.yaml
var embeddedDefinitions []byte

// AxisPolicy selects how the chart assembler lays out y-axes for a dashboard.
type AxisPolicy string

const (
	// PolicyCombined puts level series on the left axis and index series on
	// an independent right axis.
	PolicyCombined AxisPolicy = "combined"
	// PolicySingleAxis shows only index series, all on one axis.
	PolicySingleAxis AxisPolicy = "single_axis"
	// PolicyOverlay keeps an untitled left axis and renders every series on
	// the right axis.
	PolicyOverlay AxisPolicy = "overlay"
)

// Valid reports whether p is one of the known policies.
func (p AxisPolicy) Valid() bool {
	switch p {
	case PolicyCombined, PolicySingleAxis, PolicyOverlay:
		return true
	}
	return false
}

// Dashboard is a named group of selectable indicators.
type Dashboard struct {
	ID             string     `yaml:"id"`
	Name           string     `yaml:"name"`
	Policy         AxisPolicy `yaml:"policy" default:"combined"`
	MaxSelections  int        `yaml:"max_selections" default:"3"`
	Indicators     []string   `yaml:"indicators"`
	Defaults       []string   `yaml:"defaults"`
	Info           string     `yaml:"info"`
	ReadingExample string     `yaml:"reading_example"`
}

// Allows reports whether name is on the dashboard's allowlist.
func (d *Dashboard) Allows(name string) bool {
	for _, ind := range d.Indicators {
		if ind == name {
			return true
		}
	}
	return false
}

// TradeDashboard configures the foreign trade section.
type TradeDashboard struct {
	ID               string `yaml:"id" default:"aussenhandel"`
	Name             string `yaml:"name" default:"Außenhandel"`
	DefaultDirection string `yaml:"default_direction" default:"Export"`
	DefaultCategory  string `yaml:"default_category"`
	DefaultMeasure   string `yaml:"default_measure" default:"absolute"`
	Info             string `yaml:"info"`
}

type definitionsFile struct {
	Indicators map[string]string `yaml:"indicators"`
	Dashboards []Dashboard       `yaml:"dashboards"`
	Trade      TradeDashboard    `yaml:"trade"`
	Sources    string            `yaml:"sources"`
}

// Catalog is the immutable set of dashboard definitions.
type Catalog struct {
	Registry   *Registry
	Dashboards []Dashboard
	Trade      TradeDashboard
	Sources    string

	byID map[string]int
}

// LoadCatalog reads definitions from path, or the embedded defaults when
// path is empty.
func LoadCatalog(path string) (*Catalog, error) {
	raw := embeddedDefinitions
	if path != "" {
		content, err := os.ReadFile(path) //nolint:gosec // operator-provided definitions file
		if err != nil {
			return nil, fmt.Errorf("failed to read dashboard definitions: %w", err)
		}
		raw = content
	}
	return ParseCatalog(raw)
}

// ParseCatalog parses and validates YAML definitions.
func ParseCatalog(raw []byte) (*Catalog, error) {
	var file definitionsFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to parse dashboard definitions: %w", err)
	}

	if err := defaults.Set(&file.Trade); err != nil {
		return nil, fmt.Errorf("failed to apply trade defaults: %w", err)
	}
	for i := range file.Dashboards {
		if err := defaults.Set(&file.Dashboards[i]); err != nil {
			return nil, fmt.Errorf("failed to apply defaults for dashboard %d: %w", i, err)
		}
	}

	entries := make(map[string]Kind, len(file.Indicators))
	for name, kindStr := range file.Indicators {
		kind, err := ParseKind(kindStr)
		if err != nil {
			return nil, fmt.Errorf("indicator %q: %w", name, err)
		}
		entries[name] = kind
	}

	catalog := &Catalog{
		Registry:   NewRegistry(entries),
		Dashboards: file.Dashboards,
		Trade:      file.Trade,
		Sources:    file.Sources,
		byID:       make(map[string]int, len(file.Dashboards)),
	}
	if err := catalog.validate(); err != nil {
		return nil, err
	}
	return catalog, nil
}

func (c *Catalog) validate() error {
	if len(c.Dashboards) == 0 {
		return fmt.Errorf("no dashboards defined")
	}
	if _, err := models.ParseDirection(c.Trade.DefaultDirection); err != nil {
		return fmt.Errorf("trade dashboard: %w", err)
	}
	if _, err := models.ParseTradeMeasure(c.Trade.DefaultMeasure); err != nil {
		return fmt.Errorf("trade dashboard: %w", err)
	}

	for i, d := range c.Dashboards {
		if d.ID == "" || d.Name == "" {
			return fmt.Errorf("dashboard %d: id and name are required", i)
		}
		if d.ID == c.Trade.ID {
			return fmt.Errorf("dashboard %q: id collides with the trade dashboard", d.ID)
		}
		if _, dup := c.byID[d.ID]; dup {
			return fmt.Errorf("dashboard %q defined twice", d.ID)
		}
		c.byID[d.ID] = i

		if !d.Policy.Valid() {
			return fmt.Errorf("dashboard %q: unknown axis policy %q", d.ID, d.Policy)
		}
		if d.MaxSelections < 1 {
			return fmt.Errorf("dashboard %q: max_selections must be positive", d.ID)
		}
		if len(d.Defaults) > d.MaxSelections {
			return fmt.Errorf("dashboard %q: %d defaults exceed max_selections %d", d.ID, len(d.Defaults), d.MaxSelections)
		}
		for _, def := range d.Defaults {
			if !d.Allows(def) {
				return fmt.Errorf("dashboard %q: default %q is not an allowed indicator", d.ID, def)
			}
		}
		if d.Policy == PolicySingleAxis {
			for _, ind := range d.Indicators {
				if c.Registry.Kind(ind) != Index {
					return fmt.Errorf("dashboard %q: single_axis policy requires index indicators, %q is a level series", d.ID, ind)
				}
			}
		}
	}
	return nil
}

// Dashboard returns the dashboard with the given id.
func (c *Catalog) Dashboard(id string) (*Dashboard, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return nil, false
	}
	return &c.Dashboards[idx], true
}
