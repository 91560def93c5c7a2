// Package charts turns aggregated figures into chart definitions. Every
// builder is pure and total: empty input produces a zero-valued chart.
package charts

import (
	"strconv"

	"cropsync/internal/engine"
	"cropsync/internal/models"
)

const (
	donutHole    = 0.4
	percentLabel = "percent"
	unifiedHover = "x unified"

	CropBarTitle  = "Crop Area by Year"
	RainfallTitle = "Rainfall Over the Years"
	RainfallLabel = "Rainfall (mm)"
)

var sliceOutline = models.Outline{Color: "#000000", Width: 2}

// BuildRingChart draws cultivated against unused land as a two-slice ring.
func BuildRingChart(cultivated, unused float64, ring [2]string) *models.ChartDefinition {
	outline := sliceOutline
	return &models.ChartDefinition{
		Kind: models.KindRing,
		Series: []models.ChartSeries{{
			Name: "Land Area",
			Points: []models.ChartPoint{
				{Label: "Cultivated Area", Value: cultivated, Color: ring[0]},
				{Label: "Unused Area", Value: unused, Color: ring[1]},
			},
		}},
		Hole:     donutHole,
		TextInfo: percentLabel,
		Outline:  &outline,
	}
}

// BuildCategoryPieChart draws one slice per crop in the fixed category order.
func BuildCategoryPieChart(summary engine.SummaryRecord, colors ColorMap) *models.ChartDefinition {
	outline := sliceOutline
	return &models.ChartDefinition{
		Kind: models.KindPie,
		Series: []models.ChartSeries{{
			Name:   "Crops",
			Points: categoryPoints(summary, colors),
		}},
		Hole:     donutHole,
		TextInfo: percentLabel,
		Outline:  &outline,
	}
}

// BuildCategoryBarChart draws one bar per crop, ordered and colored like the
// pie chart.
func BuildCategoryBarChart(summary engine.SummaryRecord, colors ColorMap, unit string) *models.ChartDefinition {
	yAxis := "Area"
	if unit != "" {
		yAxis = "Area in " + unit
	}
	return &models.ChartDefinition{
		Kind:  models.KindBar,
		Title: CropBarTitle,
		XAxis: "Product",
		YAxis: yAxis,
		Series: []models.ChartSeries{{
			Name:   "Area",
			Points: categoryPoints(summary, colors),
		}},
	}
}

// BuildRainfallLineChart draws one marked point per year, ascending. Hovering
// any year shows every series at that year.
func BuildRainfallLineChart(series []engine.YearValue, label string) *models.ChartDefinition {
	points := make([]models.ChartPoint, len(series))
	for i, yv := range series {
		points[i] = models.ChartPoint{
			Label: strconv.Itoa(yv.Year),
			X:     float64(yv.Year),
			Value: yv.Value,
		}
	}
	return &models.ChartDefinition{
		Kind:      models.KindLine,
		Title:     RainfallTitle,
		XAxis:     "Year",
		YAxis:     label,
		HoverMode: unifiedHover,
		Series: []models.ChartSeries{{
			Name:    label,
			Points:  points,
			Markers: true,
		}},
	}
}

func categoryPoints(summary engine.SummaryRecord, colors ColorMap) []models.ChartPoint {
	points := make([]models.ChartPoint, len(engine.Categories))
	for i, cat := range engine.Categories {
		points[i] = models.ChartPoint{
			Label: string(cat),
			Value: summary[cat],
			Color: colors.Color(cat),
		}
	}
	return points
}
