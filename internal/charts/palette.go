package charts

import "cropsync/internal/engine"

// DefaultColor is used for categories missing from a ColorMap.
const DefaultColor = "#cccccc"

// ColorMap assigns a display color to each category. It is configuration,
// never derived from data.
type ColorMap map[engine.Category]string

// Color returns the color for cat, falling back to DefaultColor.
func (m ColorMap) Color(cat engine.Category) string {
	if c, ok := m[cat]; ok {
		return c
	}
	return DefaultColor
}

// CropColors keeps every crop the same color across pie and bar charts.
var CropColors = ColorMap{
	engine.Rice:       "#ff6666",
	engine.Wheat:      "#66b3ff",
	engine.Cotton:     "#ffcc99",
	engine.Sugarcane:  "#66ff66",
	engine.Fruits:     "#ff99ff",
	engine.Vegetables: "#c2f0f0",
}

// RingColors is the cultivated/unused palette of the land-area ring.
var RingColors = [2]string{"#66c2a5", "#fc8d62"}

// Palette bundles the fixed colors a dashboard is drawn with.
type Palette struct {
	Crops ColorMap
	Ring  [2]string
}

func DefaultPalette() Palette {
	return Palette{Crops: CropColors, Ring: RingColors}
}
