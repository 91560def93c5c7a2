package engine

import (
	"sort"

	"github.com/apache/arrow/go/v18/arrow/array"
)

// Category is one of the fixed crop groups shown on the dashboard.
type Category string

const (
	Rice       Category = "Rice"
	Wheat      Category = "Wheat"
	Cotton     Category = "Cotton"
	Sugarcane  Category = "Sugarcane"
	Fruits     Category = "Fruits"
	Vegetables Category = "Vegetables"
)

// Categories is the fixed display order for pie and bar charts.
var Categories = []Category{Rice, Wheat, Cotton, Sugarcane, Fruits, Vegetables}

// Period is a rainfall column code.
type Period string

const (
	PeriodAnnual Period = "ANN"
	PeriodJanFeb Period = "Jan-Feb"
	PeriodMarMay Period = "Mar-May"
	PeriodJunSep Period = "Jun-Sep"
	PeriodOctDec Period = "Oct-Dec"
)

var Periods = []Period{PeriodAnnual, PeriodJanFeb, PeriodMarMay, PeriodJunSep, PeriodOctDec}

var periodLabels = map[Period]string{
	PeriodAnnual: "Annual Rainfall",
	PeriodJanFeb: "Jan-Feb Rainfall",
	PeriodMarMay: "Mar-May Rainfall",
	PeriodJunSep: "Jun-Sep Rainfall",
	PeriodOctDec: "Oct-Dec Rainfall",
}

// Label returns the dropdown text for p, or the raw code when p is unknown.
func (p Period) Label() string {
	if l, ok := periodLabels[p]; ok {
		return l
	}
	return string(p)
}

// Valid reports whether p is one of the five known codes.
func (p Period) Valid() bool {
	_, ok := periodLabels[p]
	return ok
}

// CropTable holds the crop dataset column-wise. Missing cells are nulls.
type CropTable struct {
	Unit  string
	Years *array.Int32
	Areas map[Category]*array.Float64
}

// RainfallTable holds the rainfall dataset column-wise. Missing cells are nulls.
type RainfallTable struct {
	Years   *array.Int32
	Periods map[Period]*array.Float64
}

// Store owns both datasets for the lifetime of the process. It is never
// mutated after Load returns, so it is shared across goroutines as is.
type Store struct {
	Crops    *CropTable
	Rainfall *RainfallTable
}

// Rows returns the number of loaded crop rows.
func (t *CropTable) Rows() int {
	if t == nil || t.Years == nil {
		return 0
	}
	return t.Years.Len()
}

// DistinctYears returns the distinct years present, ascending.
func (t *CropTable) DistinctYears() []int {
	if t == nil {
		return nil
	}
	return distinctYears(t.Years)
}

func (t *RainfallTable) Rows() int {
	if t == nil || t.Years == nil {
		return 0
	}
	return t.Years.Len()
}

func (t *RainfallTable) DistinctYears() []int {
	if t == nil {
		return nil
	}
	return distinctYears(t.Years)
}

func distinctYears(col *array.Int32) []int {
	if col == nil {
		return nil
	}
	seen := make(map[int32]struct{})
	years := make([]int, 0)
	for _, y := range col.Int32Values() {
		if _, ok := seen[y]; ok {
			continue
		}
		seen[y] = struct{}{}
		years = append(years, int(y))
	}
	sort.Ints(years)
	return years
}

func (t *CropTable) release() {
	if t == nil {
		return
	}
	if t.Years != nil {
		t.Years.Release()
	}
	for _, col := range t.Areas {
		col.Release()
	}
}

func (t *RainfallTable) release() {
	if t == nil {
		return
	}
	if t.Years != nil {
		t.Years.Release()
	}
	for _, col := range t.Periods {
		col.Release()
	}
}

// Release frees the column buffers. The store must not be used afterwards.
func (s *Store) Release() {
	if s == nil {
		return
	}
	s.Crops.release()
	s.Rainfall.release()
}
