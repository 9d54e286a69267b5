// Package aggregate prepares chart series from a table: category rollups,
// histogram bins and ordered rows.
//
// Unlike the profiler, which excludes values that do not parse as numbers,
// these helpers read them as 0.
package aggregate

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strconv"

	"github.com/KaramelBytes/vizprofile-cli/internal/profile"
	"github.com/KaramelBytes/vizprofile-cli/internal/table"
)

const (
	// DefaultBins is used when Histogram is asked for zero or fewer bins.
	DefaultBins = 10
	// MaxBins bounds the bin count callers accept from users.
	MaxBins = 1000
	// Uncategorized labels rows whose category cell is missing.
	Uncategorized = "uncategorized"
)

// ParseValue cleans a raw cell like the profiler does but maps anything
// unparseable, missing included, to 0.
// Non-finite values count as 0 as well.
func ParseValue(v any) float64 {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	default:
		var err error
		f, err = strconv.ParseFloat(profile.CleanNumeric(table.String(v)), 64)
		if err != nil {
			return 0
		}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// Bucket is one category with its summed value and row count.
type Bucket struct {
	Category string  `json:"category" yaml:"category"`
	Sum      float64 `json:"sum" yaml:"sum"`
	Count    int     `json:"count" yaml:"count"`
}

// Rollup sums valueCol per distinct categoryCol value, in first-seen order.
func Rollup(t table.Table, categoryCol, valueCol string) []Bucket {
	out := []Bucket{}
	idx := map[string]int{}
	for _, r := range t {
		cat := categoryOf(r, categoryCol)
		i, ok := idx[cat]
		if !ok {
			i = len(out)
			idx[cat] = i
			out = append(out, Bucket{Category: cat})
		}
		v, _ := r.Get(valueCol)
		out[i].Sum += ParseValue(v)
		out[i].Count++
	}
	return out
}

// Group is the rows sharing one category value.
type Group struct {
	Category string
	Rows     table.Table
}

// GroupBy partitions rows by column, in first-seen order.
func GroupBy(t table.Table, column string) []Group {
	var out []Group
	idx := map[string]int{}
	for _, r := range t {
		cat := categoryOf(r, column)
		i, ok := idx[cat]
		if !ok {
			i = len(out)
			idx[cat] = i
			out = append(out, Group{Category: cat})
		}
		out[i].Rows = append(out[i].Rows, r)
	}
	return out
}

func categoryOf(r table.Record, col string) string {
	v, _ := r.Get(col)
	if table.IsMissing(v) {
		return Uncategorized
	}
	return table.String(v)
}

// HistogramResult holds equal-width bins over one column.
type HistogramResult struct {
	Column string    `json:"column" yaml:"column"`
	Min    float64   `json:"min" yaml:"min"`
	Max    float64   `json:"max" yaml:"max"`
	Width  float64   `json:"width" yaml:"width"`
	Labels []string  `json:"labels" yaml:"labels"`
	Counts []int     `json:"counts" yaml:"counts"`
	Edges  []float64 `json:"edges" yaml:"edges"`
}

// Histogram bins every row's value of column into equal-width buckets
// labeled "lo-hi" with one decimal. A constant column puts every value in
// the first bin.
func Histogram(t table.Table, column string, bins int) HistogramResult {
	if bins <= 0 {
		bins = DefaultBins
	}
	res := HistogramResult{Column: column, Labels: []string{}, Counts: []int{}, Edges: []float64{}}
	if len(t) == 0 {
		return res
	}
	values := make([]float64, len(t))
	for i, raw := range t.Values(column) {
		values[i] = ParseValue(raw)
	}
	lo, hi := slices.Min(values), slices.Max(values)
	width := (hi - lo) / float64(bins)
	res.Min, res.Max, res.Width = lo, hi, width
	res.Counts = make([]int, bins)
	res.Labels = make([]string, bins)
	res.Edges = make([]float64, bins+1)
	for i := 0; i < bins; i++ {
		start := lo + float64(i)*width
		end := lo + float64(i+1)*width
		res.Labels[i] = fmt.Sprintf("%.1f-%.1f", start, end)
		res.Edges[i] = start
	}
	res.Edges[bins] = lo + float64(bins)*width
	for _, v := range values {
		i := 0
		if width > 0 && !math.IsInf(width, 0) {
			if f := math.Floor((v - lo) / width); f > 0 {
				i = min(int(min(f, float64(bins-1))), bins-1)
			}
		}
		res.Counts[i]++
	}
	return res
}

// SortByColumn returns a copy of t ordered by column. A pair of cells is
// compared as dates when both parse as dates, else as numbers when both
// parse, else as strings. The sort is stable.
func SortByColumn(t table.Table, column string) table.Table {
	out := slices.Clone(t)
	slices.SortStableFunc(out, func(a, b table.Record) int {
		av, _ := a.Get(column)
		bv, _ := b.Get(column)
		return compareCells(av, bv)
	})
	return out
}

func compareCells(a, b any) int {
	if ad, ok := profile.ParseDate(a); ok {
		if bd, ok := profile.ParseDate(b); ok {
			return ad.Compare(bd)
		}
	}
	if an, ok := profile.ParseNumeric(a); ok {
		if bn, ok := profile.ParseNumeric(b); ok {
			return cmp.Compare(an, bn)
		}
	}
	return cmp.Compare(table.String(a), table.String(b))
}
