package charts

// Axis ids used by traces to bind to a y-axis.
const (
	AxisLeft  = "y"
	AxisRight = "y2"
)

// Palette is the ordered trace color palette.
var Palette = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// PaletteColor returns the palette color at position i, wrapping around.
func PaletteColor(i int) string {
	if i < 0 {
		i = 0
	}
	return Palette[i%len(Palette)]
}

// TraceType is the geometry of a trace.
type TraceType string

const (
	TraceLine TraceType = "line"
	TraceBar  TraceType = "bar"
)

// Range is an explicit numeric axis range.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// XAxis is the shared categorical time axis.
type XAxis struct {
	Title      string   `json:"title"`
	TickAngle  int      `json:"tick_angle"`
	Categories []string `json:"categories"`
}

// YAxis is one numeric value axis.
type YAxis struct {
	ID         string `json:"id"`
	Title      string `json:"title,omitempty"`
	Side       string `json:"side"`                 // left | right
	Overlaying string `json:"overlaying,omitempty"` // id of the axis this one is drawn over
	Visible    bool   `json:"visible"`
	Color      string `json:"color,omitempty"`
	Scale      string `json:"scale"`      // always "linear"
	RangeMode  string `json:"range_mode"` // "tozero" unless Range is set
	Range      *Range `json:"range,omitempty"`
	TickFormat string `json:"tick_format"` // "," = thousands separated
}

// Trace is one series on the chart.
type Trace struct {
	Name  string     `json:"name"`
	Type  TraceType  `json:"type"`
	Mode  string     `json:"mode,omitempty"` // "lines+markers" for line traces
	YAxis string     `json:"yaxis"`
	Color string     `json:"color"`
	X     []string   `json:"x"`
	Y     []*float64 `json:"y"` // nil = no point at that x
}

// Spec is a renderable chart specification independent of the renderer.
type Spec struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	XAxis       XAxis   `json:"xaxis"`
	YAxes       []YAxis `json:"yaxes"`
	Traces      []Trace `json:"traces"`
	Height      int     `json:"height"`
	ShowLegend  bool    `json:"show_legend"`
	Placeholder string  `json:"placeholder,omitempty"` // set instead of traces when nothing is selected
}

// IsPlaceholder reports whether the spec asks the user to select indicators
// instead of describing a chart.
func (s *Spec) IsPlaceholder() bool {
	return s.Placeholder != ""
}

// Axis returns the y-axis with the given id.
func (s *Spec) Axis(id string) (*YAxis, bool) {
	for i := range s.YAxes {
		if s.YAxes[i].ID == id {
			return &s.YAxes[i], true
		}
	}
	return nil, false
}

// AxisIndex returns the position of the axis with the given id in YAxes, or -1.
func (s *Spec) AxisIndex(id string) int {
	for i := range s.YAxes {
		if s.YAxes[i].ID == id {
			return i
		}
	}
	return -1
}

func newValueAxis(id, title, color string) YAxis {
	axis := YAxis{
		ID:         id,
		Title:      title,
		Side:       "left",
		Visible:    true,
		Color:      color,
		Scale:      "linear",
		RangeMode:  "tozero",
		TickFormat: ",",
	}
	if id == AxisRight {
		axis.Side = "right"
	}
	return axis
}
