package render

import (
	"bytes"
	"testing"

	"cropsync/internal/charts"
	"cropsync/internal/engine"
	"cropsync/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("SVG")
	require.NoError(t, err)
	assert.Equal(t, SVG, f)

	f, err = ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, PNG, f)

	_, err = ParseFormat("gif")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	assert.Equal(t, "image/svg+xml", SVG.ContentType())
	assert.Equal(t, "image/png", PNG.ContentType())
}

func TestRenderEveryKind(t *testing.T) {
	summary := engine.SummaryRecord{engine.Rice: 100, engine.Wheat: 50, engine.Fruits: 5}
	defs := map[string]*models.ChartDefinition{
		"ring": charts.BuildRingChart(150, 30, charts.RingColors),
		"pie":  charts.BuildCategoryPieChart(summary, charts.CropColors),
		"bar":  charts.BuildCategoryBarChart(summary, charts.CropColors, "1000 ha"),
		"line": charts.BuildRainfallLineChart([]engine.YearValue{{Year: 2019, Value: 800}, {Year: 2020, Value: 950}}, charts.RainfallLabel),
	}

	for name, def := range defs {
		t.Run(name, func(t *testing.T) {
			var png bytes.Buffer
			require.NoError(t, Chart(&png, def, PNG))
			assert.True(t, bytes.HasPrefix(png.Bytes(), pngMagic), "png signature")

			var svg bytes.Buffer
			require.NoError(t, Chart(&svg, def, SVG))
			assert.Contains(t, svg.String(), "<svg")
		})
	}
}

func TestRenderZeroValuedCharts(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, Chart(&buf, charts.BuildRingChart(0, 0, charts.RingColors), PNG), ErrEmptyChart)
	assert.ErrorIs(t, Chart(&buf, charts.BuildCategoryPieChart(nil, charts.CropColors), PNG), ErrEmptyChart)

	buf.Reset()
	require.NoError(t, Chart(&buf, charts.BuildCategoryBarChart(nil, charts.CropColors, ""), PNG))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))

	buf.Reset()
	require.NoError(t, Chart(&buf, charts.BuildRainfallLineChart(nil, charts.RainfallLabel), PNG))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

func TestRenderRejectsUnknown(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, Chart(&buf, &models.ChartDefinition{Kind: "radar"}, PNG), ErrUnsupportedKind)
	assert.ErrorIs(t, Chart(&buf, nil, PNG), ErrUnsupportedKind)
	assert.ErrorIs(t, Chart(&buf, charts.BuildRingChart(1, 1, charts.RingColors), Format("gif")), ErrUnsupportedFormat)
}
