package engine

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/memory"
	"github.com/labstack/gommon/log"
	"github.com/xuri/excelize/v2"
)

const (
	cropYearColumn     = "Year"
	rainfallYearColumn = "YEAR"
)

// Load reads both datasets. Any failure is a *DataLoadError.
func Load(cropPath, rainfallPath string) (*Store, error) {
	return LoadWithAllocator(memory.DefaultAllocator, cropPath, rainfallPath)
}

// LoadWithAllocator is Load with an explicit arrow allocator.
func LoadWithAllocator(mem memory.Allocator, cropPath, rainfallPath string) (*Store, error) {
	start := time.Now()

	crops, err := loadCrops(mem, cropPath)
	if err != nil {
		return nil, err
	}
	rainfall, err := loadRainfall(mem, rainfallPath)
	if err != nil {
		crops.release()
		return nil, err
	}

	log.Infof("Load Complete. Crop rows: %d. Rainfall rows: %d. Time: %v", crops.Rows(), rainfall.Rows(), time.Since(start))
	return &Store{Crops: crops, Rainfall: rainfall}, nil
}

// LoadCrops reads a crop dataset: a Year column plus one
// "<CATEGORY> AREA (<unit>)" column per category.
func LoadCrops(path string) (*CropTable, error) {
	return loadCrops(memory.DefaultAllocator, path)
}

// LoadRainfall reads a rainfall dataset: a YEAR column plus one column per
// period code.
func LoadRainfall(path string) (*RainfallTable, error) {
	return loadRainfall(memory.DefaultAllocator, path)
}

func loadCrops(mem memory.Allocator, path string) (*CropTable, error) {
	fail := func(row int, col string, err error) error {
		return &DataLoadError{Dataset: "crop", Path: path, Row: row, Column: col, Err: err}
	}

	rows, err := readRows(path)
	if err != nil {
		return nil, fail(0, "", err)
	}
	if len(rows) == 0 {
		return nil, fail(0, "", ErrNoHeader)
	}
	header := rows[0]

	yearIdx := findIndex(header, cropYearColumn)
	if yearIdx < 0 {
		return nil, fail(0, cropYearColumn, ErrMissingColumn)
	}

	areaIdx := make(map[Category]int, len(Categories))
	unit := ""
	for _, cat := range Categories {
		idx := findPrefix(header, strings.ToUpper(string(cat))+" AREA")
		if idx < 0 {
			return nil, fail(0, strings.ToUpper(string(cat))+" AREA", ErrMissingColumn)
		}
		areaIdx[cat] = idx
		if unit == "" {
			unit = headerUnit(header[idx])
		}
	}

	years := array.NewInt32Builder(mem)
	defer years.Release()
	builders := make(map[Category]*array.Float64Builder, len(Categories))
	for _, cat := range Categories {
		b := array.NewFloat64Builder(mem)
		defer b.Release()
		builders[cat] = b
	}

	for i, rec := range rows[1:] {
		line := i + 2
		if blank(rec) {
			continue
		}
		y, err := parseYear(cell(rec, yearIdx))
		if err != nil {
			return nil, fail(line, header[yearIdx], err)
		}
		years.Append(y)
		for _, cat := range Categories {
			idx := areaIdx[cat]
			if err := appendNumber(builders[cat], cell(rec, idx)); err != nil {
				return nil, fail(line, header[idx], err)
			}
		}
	}

	t := &CropTable{
		Unit:  unit,
		Years: years.NewInt32Array(),
		Areas: make(map[Category]*array.Float64, len(Categories)),
	}
	for _, cat := range Categories {
		t.Areas[cat] = builders[cat].NewFloat64Array()
	}
	return t, nil
}

func loadRainfall(mem memory.Allocator, path string) (*RainfallTable, error) {
	fail := func(row int, col string, err error) error {
		return &DataLoadError{Dataset: "rainfall", Path: path, Row: row, Column: col, Err: err}
	}

	rows, err := readRows(path)
	if err != nil {
		return nil, fail(0, "", err)
	}
	if len(rows) == 0 {
		return nil, fail(0, "", ErrNoHeader)
	}
	header := rows[0]

	yearIdx := findIndex(header, rainfallYearColumn)
	if yearIdx < 0 {
		return nil, fail(0, rainfallYearColumn, ErrMissingColumn)
	}
	periodIdx := make(map[Period]int, len(Periods))
	for _, p := range Periods {
		idx := findIndex(header, string(p))
		if idx < 0 {
			return nil, fail(0, string(p), ErrMissingColumn)
		}
		periodIdx[p] = idx
	}

	years := array.NewInt32Builder(mem)
	defer years.Release()
	builders := make(map[Period]*array.Float64Builder, len(Periods))
	for _, p := range Periods {
		b := array.NewFloat64Builder(mem)
		defer b.Release()
		builders[p] = b
	}

	for i, rec := range rows[1:] {
		line := i + 2
		if blank(rec) {
			continue
		}
		y, err := parseYear(cell(rec, yearIdx))
		if err != nil {
			return nil, fail(line, header[yearIdx], err)
		}
		years.Append(y)
		for _, p := range Periods {
			idx := periodIdx[p]
			if err := appendNumber(builders[p], cell(rec, idx)); err != nil {
				return nil, fail(line, header[idx], err)
			}
		}
	}

	t := &RainfallTable{
		Years:   years.NewInt32Array(),
		Periods: make(map[Period]*array.Float64, len(Periods)),
	}
	for _, p := range Periods {
		t.Periods[p] = builders[p].NewFloat64Array()
	}
	return t, nil
}

// readRows returns every row of the source, header first. Workbooks are read
// from their first sheet.
func readRows(path string) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return readWorkbook(path)
	default:
		return readCSV(path)
	}
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	return r.ReadAll()
}

func readWorkbook(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	return f.GetRows(sheets[0])
}

// findIndex returns the column whose header equals name, ignoring case and
// surrounding space.
func findIndex(header []string, name string) int {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i
		}
	}
	return -1
}

func findPrefix(header []string, prefix string) int {
	for i, h := range header {
		if strings.HasPrefix(strings.ToUpper(strings.TrimSpace(h)), prefix) {
			return i
		}
	}
	return -1
}

// headerUnit extracts "1000 ha" from "RICE AREA (1000 ha)".
func headerUnit(h string) string {
	open := strings.Index(h, "(")
	end := strings.LastIndex(h, ")")
	if open < 0 || end <= open {
		return ""
	}
	return strings.TrimSpace(h[open+1 : end])
}

func cell(rec []string, idx int) string {
	if idx < 0 || idx >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[idx])
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// parseYear accepts "2020" and the "2020.0" spreadsheets sometimes produce.
func parseYear(s string) (int32, error) {
	if y, err := strconv.ParseInt(s, 10, 32); err == nil {
		return int32(y), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int32(f)) {
		return 0, fmt.Errorf("%w: year %q", ErrBadNumber, s)
	}
	return int32(f), nil
}

func appendNumber(b *array.Float64Builder, s string) error {
	if s == "" {
		b.AppendNull()
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrBadNumber, s)
	}
	b.Append(v)
	return nil
}
