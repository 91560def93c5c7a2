package render

import (
	"fmt"
	"io"

	"cropsync/internal/models"

	chart "github.com/wcharczuk/go-chart/v2"
)

func proportion(w io.Writer, def *models.ChartDefinition, format Format) error {
	if len(def.Series) == 0 {
		return ErrEmptyChart
	}
	points := def.Series[0].Points

	var total float64
	for _, p := range points {
		total += p.Value
	}
	if total <= 0 {
		return ErrEmptyChart
	}

	values := make([]chart.Value, 0, len(points))
	for _, p := range points {
		if p.Value <= 0 {
			continue
		}
		label := p.Label
		if def.TextInfo == "percent" {
			label = fmt.Sprintf("%s %.1f%%", p.Label, p.Value/total*100)
		}
		style := chart.Style{FillColor: hexColor(p.Color)}
		if def.Outline != nil {
			style.StrokeColor = hexColor(def.Outline.Color)
			style.StrokeWidth = def.Outline.Width
		}
		values = append(values, chart.Value{Label: label, Value: p.Value, Style: style})
	}

	provider := chart.PNG
	if format == SVG {
		provider = chart.SVG
	}

	if def.Hole > 0 {
		donut := chart.DonutChart{
			Title:  def.Title,
			Width:  widthPx,
			Height: heightPx,
			Values: values,
		}
		return donut.Render(provider, w)
	}
	pie := chart.PieChart{
		Title:  def.Title,
		Width:  widthPx,
		Height: heightPx,
		Values: values,
	}
	return pie.Render(provider, w)
}
