package models

// ChartKind names how a chart is drawn.
type ChartKind string

const (
	KindRing ChartKind = "ring"
	KindPie  ChartKind = "pie"
	KindBar  ChartKind = "bar"
	KindLine ChartKind = "line"
)

// ChartDefinition is one renderable chart. Builders return a fresh value on
// every recomputation; callers never mutate one after it is published.
type ChartDefinition struct {
	Kind      ChartKind     `json:"kind"`
	Title     string        `json:"title,omitempty"`
	XAxis     string        `json:"x_axis,omitempty"`
	YAxis     string        `json:"y_axis,omitempty"`
	Series    []ChartSeries `json:"series"`
	Hole      float64       `json:"hole,omitempty"`
	TextInfo  string        `json:"text_info,omitempty"`
	HoverMode string        `json:"hover_mode,omitempty"`
	Outline   *Outline      `json:"outline,omitempty"`
}

type ChartSeries struct {
	Name    string       `json:"name"`
	Points  []ChartPoint `json:"points"`
	Markers bool         `json:"markers,omitempty"`
}

// ChartPoint is a slice, a bar or a line vertex. X is set for line charts only.
type ChartPoint struct {
	Label string  `json:"label"`
	X     float64 `json:"x,omitempty"`
	Value float64 `json:"value"`
	Color string  `json:"color,omitempty"`
}

// Outline is the border drawn around pie and ring slices.
type Outline struct {
	Color string  `json:"color"`
	Width float64 `json:"width"`
}

// Values returns the values of the first series in order.
func (c *ChartDefinition) Values() []float64 {
	if c == nil || len(c.Series) == 0 {
		return nil
	}
	out := make([]float64, len(c.Series[0].Points))
	for i, p := range c.Series[0].Points {
		out[i] = p.Value
	}
	return out
}

// Control describes one selection input shown next to its chart.
type Control struct {
	ID      string   `json:"id"`
	Label   string   `json:"label"`
	Value   string   `json:"value"`
	Options []Option `json:"options"`
}

type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// DashboardData is the full view: every control and every current chart.
type DashboardData struct {
	Title    string                      `json:"title"`
	Controls []Control                   `json:"controls"`
	Charts   map[string]*ChartDefinition `json:"charts"`
}

// Envelope is the response shape of the auxiliary /data endpoints.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type CropYield struct {
	Crop  string `json:"crop"`
	Yield int    `json:"yield"`
}
