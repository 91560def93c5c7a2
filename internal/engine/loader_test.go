package engine

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/apache/arrow/go/v18/arrow/memory"
	"github.com/xuri/excelize/v2"
)

const cropCSV = `State Name,Dist Name,Year,RICE AREA (1000 ha),WHEAT AREA (1000 ha),COTTON AREA (1000 ha),SUGARCANE AREA (1000 ha),FRUITS AREA (1000 ha),VEGETABLES AREA (1000 ha)
Punjab,Ludhiana,1966,10.5,200,3,1,,2
Punjab,Amritsar,1966,20,150.25,0,4,1,3
Bihar,Patna,1967,300,80,0,12,5,9
`

const rainfallCSV = `SUBDIVISION,YEAR,ANN,Jan-Feb,Mar-May,Jun-Sep,Oct-Dec
Bihar,1966,1200,20,60,1000,120
Punjab,1966,600,40,30,480,50
Bihar,1965,1100,,55,900,100
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadCrops(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	table, err := loadCrops(mem, writeFile(t, "crops.csv", cropCSV))
	if err != nil {
		t.Fatalf("loadCrops: %v", err)
	}
	defer table.release()

	if table.Rows() != 3 {
		t.Fatalf("Expected 3 rows, got %d", table.Rows())
	}
	if table.Unit != "1000 ha" {
		t.Errorf("Expected unit '1000 ha', got %q", table.Unit)
	}
	if got := table.Areas[Rice].Value(0); got != 10.5 {
		t.Errorf("Row 0 Rice: Expected 10.5, got %f", got)
	}
	if got := table.Areas[Wheat].Value(1); got != 150.25 {
		t.Errorf("Row 1 Wheat: Expected 150.25, got %f", got)
	}
	if table.Areas[Fruits].IsValid(0) {
		t.Error("Row 0 Fruits: expected null for empty cell")
	}

	years := table.DistinctYears()
	if len(years) != 2 || years[0] != 1966 || years[1] != 1967 {
		t.Errorf("Expected distinct years [1966 1967], got %v", years)
	}
}

func TestLoadRainfall(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	table, err := loadRainfall(mem, writeFile(t, "rain.csv", rainfallCSV))
	if err != nil {
		t.Fatalf("loadRainfall: %v", err)
	}
	defer table.release()

	if table.Rows() != 3 {
		t.Fatalf("Expected 3 rows, got %d", table.Rows())
	}
	if len(table.Periods) != len(Periods) {
		t.Errorf("Expected %d period columns, got %d", len(Periods), len(table.Periods))
	}
	if table.Periods[PeriodJanFeb].IsValid(2) {
		t.Error("Row 2 Jan-Feb: expected null for empty cell")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"), filepath.Join(t.TempDir(), "nope2.csv"))
	var dle *DataLoadError
	if !errors.As(err, &dle) {
		t.Fatalf("Expected DataLoadError, got %v", err)
	}
	if dle.Dataset != "crop" {
		t.Errorf("Expected crop dataset to fail first, got %q", dle.Dataset)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected wrapped os.ErrNotExist, got %v", err)
	}
}

func TestLoadMissingColumn(t *testing.T) {
	csv := "Year,RICE AREA (1000 ha),WHEAT AREA (1000 ha)\n2020,1,2\n"
	_, err := LoadCrops(writeFile(t, "crops.csv", csv))
	if !errors.Is(err, ErrMissingColumn) {
		t.Fatalf("Expected ErrMissingColumn, got %v", err)
	}
	var dle *DataLoadError
	if errors.As(err, &dle) && dle.Column != "COTTON AREA" {
		t.Errorf("Expected missing column COTTON AREA, got %q", dle.Column)
	}

	_, err = LoadRainfall(writeFile(t, "rain.csv", "YEAR,ANN\n2020,900\n"))
	if !errors.Is(err, ErrMissingColumn) {
		t.Fatalf("Expected ErrMissingColumn for rainfall, got %v", err)
	}
}

func TestLoadBadNumber(t *testing.T) {
	csv := "YEAR,ANN,Jan-Feb,Mar-May,Jun-Sep,Oct-Dec\n2020,lots,1,2,3,4\n"
	_, err := LoadRainfall(writeFile(t, "rain.csv", csv))
	if !errors.Is(err, ErrBadNumber) {
		t.Fatalf("Expected ErrBadNumber, got %v", err)
	}
	var dle *DataLoadError
	if !errors.As(err, &dle) || dle.Row != 2 || dle.Column != "ANN" {
		t.Errorf("Expected row 2 column ANN, got %+v", dle)
	}
}

func TestLoadEmptySource(t *testing.T) {
	_, err := LoadCrops(writeFile(t, "crops.csv", ""))
	if !errors.Is(err, ErrNoHeader) {
		t.Fatalf("Expected ErrNoHeader, got %v", err)
	}
}

func TestLoadWorkbook(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Sheet1"
	header := []interface{}{"Year", "RICE AREA (ha)", "WHEAT AREA (ha)", "COTTON AREA (ha)", "SUGARCANE AREA (ha)", "FRUITS AREA (ha)", "VEGETABLES AREA (ha)"}
	row := []interface{}{2021, 7.5, 2, 0, 0, 1, 0}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		t.Fatal(err)
	}
	if err := f.SetSheetRow(sheet, "A2", &row); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "crops.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}

	table, err := LoadCrops(path)
	if err != nil {
		t.Fatalf("LoadCrops: %v", err)
	}
	defer table.release()

	if table.Rows() != 1 {
		t.Fatalf("Expected 1 row, got %d", table.Rows())
	}
	if table.Unit != "ha" {
		t.Errorf("Expected unit 'ha', got %q", table.Unit)
	}
	if got := table.Areas[Rice].Value(0); got != 7.5 {
		t.Errorf("Expected Rice 7.5, got %f", got)
	}
}

func TestParseHelpers(t *testing.T) {
	if y, err := parseYear("2020.0"); err != nil || y != 2020 {
		t.Errorf("parseYear(2020.0) = %d, %v", y, err)
	}
	if _, err := parseYear("20.5"); !errors.Is(err, ErrBadNumber) {
		t.Errorf("parseYear(20.5) expected ErrBadNumber, got %v", err)
	}
	if u := headerUnit("RICE AREA (1000 ha)"); u != "1000 ha" {
		t.Errorf("headerUnit failed: %q", u)
	}
	if u := headerUnit("RICE AREA"); u != "" {
		t.Errorf("headerUnit without unit: %q", u)
	}
	if i := findIndex([]string{" year ", "ANN"}, "Year"); i != 0 {
		t.Errorf("findIndex failed: %d", i)
	}
}

func TestDistinctYears(t *testing.T) {
	var nilCrops *CropTable
	if got := nilCrops.DistinctYears(); got != nil {
		t.Errorf("Expected nil years for nil table, got %v", got)
	}

	rain, err := LoadRainfall(writeFile(t, "rainfall.csv", rainfallCSV))
	if err != nil {
		t.Fatalf("LoadRainfall: %v", err)
	}
	defer rain.release()

	years := rain.DistinctYears()
	if len(years) != 2 || years[0] != 1965 || years[1] != 1966 {
		t.Errorf("Expected [1965 1966], got %v", years)
	}
	if rain.Years.Len() != 3 {
		t.Errorf("Expected 3 rows in year column, got %d", rain.Years.Len())
	}
}
