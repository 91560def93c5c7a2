// Package export writes the current dashboard to an Excel workbook: one
// sheet of selections, then one sheet per chart with its data and a native
// Excel chart.
package export

import (
	"fmt"
	"io"

	"cropsync/internal/models"

	"github.com/xuri/excelize/v2"
)

const summarySheet = "Dashboard"

var excelKinds = map[models.ChartKind]excelize.ChartType{
	models.KindRing: excelize.Doughnut,
	models.KindPie:  excelize.Pie,
	models.KindBar:  excelize.Col,
	models.KindLine: excelize.Line,
}

// Workbook builds the workbook. Charts are written in the given order;
// names missing from view are skipped.
func Workbook(view *models.DashboardData, order []string) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		f.Close()
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, err
	}

	if err := writeSummary(f, view, bold); err != nil {
		f.Close()
		return nil, err
	}
	for _, name := range order {
		def, ok := view.Charts[name]
		if !ok || def == nil {
			continue
		}
		if err := writeChart(f, name, def, bold); err != nil {
			f.Close()
			return nil, fmt.Errorf("sheet %s: %w", name, err)
		}
	}
	return f, nil
}

// Write streams the workbook to w.
func Write(w io.Writer, view *models.DashboardData, order []string) error {
	f, err := Workbook(view, order)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}

func writeSummary(f *excelize.File, view *models.DashboardData, style int) error {
	if err := f.SetCellValue(summarySheet, "A1", view.Title); err != nil {
		return err
	}
	header := []interface{}{"Control", "Label", "Selected"}
	if err := f.SetSheetRow(summarySheet, "A3", &header); err != nil {
		return err
	}
	if err := f.SetCellStyle(summarySheet, "A1", "C3", style); err != nil {
		return err
	}
	for i, c := range view.Controls {
		row := []interface{}{c.ID, c.Label, c.Value}
		cell, _ := excelize.CoordinatesToCellName(1, i+4)
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return err
		}
	}
	return f.SetColWidth(summarySheet, "A", "C", 24)
}

func writeChart(f *excelize.File, sheet string, def *models.ChartDefinition, style int) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	header := []interface{}{"Label", "Value", "Color"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", "C1", style); err != nil {
		return err
	}

	var points []models.ChartPoint
	name := sheet
	if len(def.Series) > 0 {
		points = def.Series[0].Points
		name = def.Series[0].Name
	}
	for i, p := range points {
		row := []interface{}{p.Label, p.Value, p.Color}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(sheet, "A", "C", 18); err != nil {
		return err
	}

	kind, ok := excelKinds[def.Kind]
	if !ok || len(points) == 0 {
		return nil
	}
	last := len(points) + 1
	title := def.Title
	if title == "" {
		title = name
	}
	return f.AddChart(sheet, "E2", &excelize.Chart{
		Type: kind,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("'%s'!$B$1", sheet),
			Categories: fmt.Sprintf("'%s'!$A$2:$A$%d", sheet, last),
			Values:     fmt.Sprintf("'%s'!$B$2:$B$%d", sheet, last),
		}},
		Title: []excelize.RichTextRun{{Text: title}},
	})
}
