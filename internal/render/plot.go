package render

import (
	"io"

	"cropsync/internal/models"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	plotWidth  = 8 * vg.Inch
	plotHeight = 4.5 * vg.Inch
)

func newPlot(def *models.ChartDefinition) *plot.Plot {
	p := plot.New()
	p.Title.Text = def.Title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = def.XAxis
	p.Y.Label.Text = def.YAxis
	p.Y.Min = 0
	return p
}

// bars draws one colored bar per point so each category keeps its color.
func bars(w io.Writer, def *models.ChartDefinition, format Format) error {
	p := newPlot(def)

	var points []models.ChartPoint
	if len(def.Series) > 0 {
		points = def.Series[0].Points
	}
	labels := make([]string, len(points))
	for i, pt := range points {
		b, err := plotter.NewBarChart(plotter.Values{pt.Value}, vg.Points(40))
		if err != nil {
			return err
		}
		b.Color = hexColor(pt.Color)
		b.LineStyle.Width = vg.Length(0)
		b.XMin = float64(i)
		p.Add(b)
		labels[i] = pt.Label
	}
	if len(labels) > 0 {
		p.NominalX(labels...)
	}
	p.Add(plotter.NewGrid())

	return save(w, p, format)
}

// lines draws every series as a line with point glyphs.
func lines(w io.Writer, def *models.ChartDefinition, format Format) error {
	p := newPlot(def)
	p.Add(plotter.NewGrid())

	for _, s := range def.Series {
		if len(s.Points) == 0 {
			continue
		}
		xys := make(plotter.XYs, len(s.Points))
		for i, pt := range s.Points {
			xys[i].X = pt.X
			xys[i].Y = pt.Value
		}

		line, err := plotter.NewLine(xys)
		if err != nil {
			return err
		}
		line.Color = hexColor("#1f77b4")
		line.Width = vg.Points(2)
		p.Add(line)

		if s.Markers {
			scatter, err := plotter.NewScatter(xys)
			if err != nil {
				return err
			}
			scatter.GlyphStyle.Shape = draw.CircleGlyph{}
			scatter.GlyphStyle.Radius = vg.Points(3)
			scatter.GlyphStyle.Color = line.Color
			p.Add(scatter)
		}
	}

	return save(w, p, format)
}

func save(w io.Writer, p *plot.Plot, format Format) error {
	wt, err := p.WriterTo(plotWidth, plotHeight, string(format))
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}
