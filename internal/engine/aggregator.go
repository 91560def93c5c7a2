package engine

import (
	"sort"
)

// UnusedLandRatio is the share of cultivated land assumed to lie unused.
// The datasets carry no unused-land figures; this is a fixed approximation.
const UnusedLandRatio = 0.2

// ScopeOverall is the only farmland scope: every year, every district.
const ScopeOverall = "Overall"

var FarmlandScopes = []string{ScopeOverall}

// SummaryRecord maps a category to its total area.
type SummaryRecord map[Category]float64

// Total sums every category.
func (s SummaryRecord) Total() float64 {
	var sum float64
	for _, v := range s {
		sum += v
	}
	return sum
}

func zeroSummary() SummaryRecord {
	s := make(SummaryRecord, len(Categories))
	for _, cat := range Categories {
		s[cat] = 0
	}
	return s
}

// YearTotal is the per-category sum of one year.
type YearTotal struct {
	Year   int
	Totals SummaryRecord
}

// YearValue is one point of a rainfall series.
type YearValue struct {
	Year  int
	Value float64
}

// TotalByYear sums every area column across all rows, grouped by year,
// ascending by year.
func TotalByYear(t *CropTable) []YearTotal {
	if t.Rows() == 0 {
		return []YearTotal{}
	}

	byYear := make(map[int]SummaryRecord)
	years := t.Years.Int32Values()
	for i, y := range years {
		s, ok := byYear[int(y)]
		if !ok {
			s = zeroSummary()
			byYear[int(y)] = s
		}
		for cat, col := range t.Areas {
			if col.IsValid(i) {
				s[cat] += col.Value(i)
			}
		}
	}

	out := make([]YearTotal, 0, len(byYear))
	for y, s := range byYear {
		out = append(out, YearTotal{Year: y, Totals: s})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// CategoryTotalsForYear sums each fixed category over the rows of year.
// A year with no rows yields zero for every category.
func CategoryTotalsForYear(t *CropTable, year int) SummaryRecord {
	s := zeroSummary()
	if t.Rows() == 0 {
		return s
	}
	for i, y := range t.Years.Int32Values() {
		if int(y) != year {
			continue
		}
		for _, cat := range Categories {
			col := t.Areas[cat]
			if col != nil && col.IsValid(i) {
				s[cat] += col.Value(i)
			}
		}
	}
	return s
}

// SeriesForPeriod returns one point per distinct year, ascending. Years with
// several rows report the mean of their non-missing cells. An unknown period
// yields an empty series.
func SeriesForPeriod(t *RainfallTable, p Period) []YearValue {
	if t.Rows() == 0 {
		return []YearValue{}
	}
	col, ok := t.Periods[p]
	if !ok {
		return []YearValue{}
	}

	type acc struct {
		sum float64
		n   int
	}
	byYear := make(map[int]*acc)
	for i, y := range t.Years.Int32Values() {
		a, ok := byYear[int(y)]
		if !ok {
			a = &acc{}
			byYear[int(y)] = a
		}
		if col.IsValid(i) {
			a.sum += col.Value(i)
			a.n++
		}
	}

	out := make([]YearValue, 0, len(byYear))
	for y, a := range byYear {
		v := 0.0
		if a.n > 0 {
			v = a.sum / float64(a.n)
		}
		out = append(out, YearValue{Year: y, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// LandArea derives the cultivated area (rice plus wheat over all years) and
// the assumed unused area.
func LandArea(totals []YearTotal) (cultivated, unused float64) {
	var rice, wheat float64
	for _, yt := range totals {
		rice += yt.Totals[Rice]
		wheat += yt.Totals[Wheat]
	}
	cultivated = rice + wheat
	unused = cultivated * UnusedLandRatio
	return cultivated, unused
}

// LandAreaForScope is LandArea over TotalByYear for a farmland scope. Scopes
// other than ScopeOverall have no rows and yield zero.
func LandAreaForScope(t *CropTable, scope string) (cultivated, unused float64) {
	if scope != ScopeOverall {
		return 0, 0
	}
	return LandArea(TotalByYear(t))
}
