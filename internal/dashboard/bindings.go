package dashboard

import (
	"cropsync/internal/charts"
	"cropsync/internal/engine"
	"cropsync/internal/models"

	"github.com/labstack/gommon/log"
)

// InputID names a selection control.
type InputID string

const (
	InputFarmland InputID = "farmland-dropdown"
	InputYear     InputID = "year-dropdown"
	InputRainfall InputID = "rainfall-dropdown"
)

// Inputs lists every control in display order.
var Inputs = []InputID{InputFarmland, InputYear, InputRainfall}

// OutputID names a chart slot.
type OutputID string

const (
	OutputLandArea OutputID = "land-area-ring"
	OutputCropPie  OutputID = "pie-chart"
	OutputCropBar  OutputID = "bar-chart"
	OutputRainfall OutputID = "rainfall-chart"
)

// Outputs lists every chart slot in display order.
var Outputs = []OutputID{OutputLandArea, OutputCropPie, OutputCropBar, OutputRainfall}

// InputState is the current value of every control.
type InputState struct {
	Farmland string        `json:"farmland"`
	Year     int           `json:"year"`
	Period   engine.Period `json:"period"`
}

// ComputeFunc rebuilds one output from scratch.
type ComputeFunc func(store *engine.Store, palette charts.Palette, state InputState) *models.ChartDefinition

// Binding ties an output to the inputs that trigger it and the chain that
// computes it.
type Binding struct {
	Output  OutputID
	Inputs  []InputID
	Compute ComputeFunc
}

// DependsOn reports whether a change to id recomputes b.
func (b Binding) DependsOn(id InputID) bool {
	for _, in := range b.Inputs {
		if in == id {
			return true
		}
	}
	return false
}

// Bindings returns the dashboard's binding table.
func Bindings() []Binding {
	return []Binding{
		{Output: OutputLandArea, Inputs: []InputID{InputFarmland}, Compute: landAreaRing},
		{Output: OutputCropPie, Inputs: []InputID{InputYear}, Compute: cropPie},
		{Output: OutputCropBar, Inputs: []InputID{InputYear}, Compute: cropBar},
		{Output: OutputRainfall, Inputs: []InputID{InputRainfall}, Compute: rainfallLine},
	}
}

func landAreaRing(store *engine.Store, palette charts.Palette, state InputState) *models.ChartDefinition {
	cultivated, unused := engine.LandAreaForScope(store.Crops, state.Farmland)
	return charts.BuildRingChart(cultivated, unused, palette.Ring)
}

func cropPie(store *engine.Store, palette charts.Palette, state InputState) *models.ChartDefinition {
	summary := engine.CategoryTotalsForYear(store.Crops, state.Year)
	if summary.Total() == 0 {
		log.Debugf("dashboard: no crop area recorded for %d", state.Year)
	}
	return charts.BuildCategoryPieChart(summary, palette.Crops)
}

func cropBar(store *engine.Store, palette charts.Palette, state InputState) *models.ChartDefinition {
	unit := ""
	if store.Crops != nil {
		unit = store.Crops.Unit
	}
	return charts.BuildCategoryBarChart(engine.CategoryTotalsForYear(store.Crops, state.Year), palette.Crops, unit)
}

func rainfallLine(store *engine.Store, _ charts.Palette, state InputState) *models.ChartDefinition {
	return charts.BuildRainfallLineChart(engine.SeriesForPeriod(store.Rainfall, state.Period), charts.RainfallLabel)
}
