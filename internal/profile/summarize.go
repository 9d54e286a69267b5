package profile

import (
	"math"
	"sort"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/KaramelBytes/vizprofile-cli/internal/table"
)

const topCategories = 10

// Summarize computes type-specific statistics over a column's non-missing
// values; missing cells in values are skipped. It returns nil when the type
// carries no statistics or when no value survives parsing. An all-missing
// categorical column gets empty counts and a nil mode.
func Summarize(values []any, t ColumnType) *Statistics {
	values = dropMissing(values)
	switch t {
	case TypeNumeric:
		if s := numericStats(values); s != nil {
			return &Statistics{Kind: t, Numeric: s}
		}
	case TypeCategorical:
		return &Statistics{Kind: t, Categorical: categoricalStats(values)}
	case TypeDate, TypeDateTime:
		if s := dateStats(values); s != nil {
			return &Statistics{Kind: t, Date: s}
		}
	case TypeText:
		if s := textStats(values); s != nil {
			return &Statistics{Kind: t, Text: s}
		}
	case TypeMixedNumeric, TypeEmpty:
	}
	return nil
}

func dropMissing(values []any) []any {
	out := make([]any, 0, len(values))
	for _, v := range values {
		if !table.IsMissing(v) {
			out = append(out, v)
		}
	}
	return out
}

func numericStats(values []any) *NumericStats {
	nums := make([]float64, 0, len(values))
	for _, v := range values {
		if f, ok := ParseNumeric(v); ok {
			nums = append(nums, f)
		}
	}
	if len(nums) == 0 {
		return nil
	}
	sort.Float64s(nums)
	var sum float64
	for _, x := range nums {
		sum += x
	}
	n := float64(len(nums))
	mean := sum / n
	var sq float64
	for _, x := range nums {
		d := x - mean
		sq += d * d
	}
	lo, hi := nums[0], nums[len(nums)-1]
	return &NumericStats{
		Count:  len(nums),
		Min:    lo,
		Max:    hi,
		Mean:   round2(mean),
		Median: median(nums),
		StdDev: round2(math.Sqrt(sq / n)),
		Range:  hi - lo,
		Q1:     percentile(nums, 25),
		Q3:     percentile(nums, 75),
	}
}

func median(sorted []float64) float64 {
	mid := len(sorted) / 2
	if len(sorted)%2 != 0 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// percentile uses the ceiling-index method: index = ceil(p/100*n) - 1,
// clamped at zero, with no interpolation.
func percentile(sorted []float64, p float64) float64 {
	idx := int(math.Ceil(p/100*float64(len(sorted)))) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

func categoricalStats(values []any) *CategoricalStats {
	counts := map[string]int{}
	var order []string
	for _, v := range values {
		k := table.String(v)
		if _, ok := counts[k]; !ok {
			order = append(order, k)
		}
		counts[k]++
	}
	tops := make([]CategoryCount, len(order))
	for i, k := range order {
		tops[i] = CategoryCount{Value: k, Count: counts[k]}
	}
	sort.SliceStable(tops, func(i, j int) bool { return tops[i].Count > tops[j].Count })
	if len(tops) > topCategories {
		tops = tops[:topCategories]
	}
	s := &CategoricalStats{Top: tops, Distinct: len(counts)}
	if len(tops) > 0 {
		mode := tops[0].Value
		s.Mode = &mode
		s.ModeCount = tops[0].Count
	}
	return s
}

func dateStats(values []any) *DateStats {
	var dates []time.Time
	for _, v := range values {
		if t, ok := ParseDate(v); ok {
			dates = append(dates, t)
		}
	}
	if len(dates) == 0 {
		return nil
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	first, last := dates[0], dates[len(dates)-1]
	ms := last.Sub(first).Milliseconds()
	return &DateStats{
		Earliest: first.Format("2006-01-02"),
		Latest:   last.Format("2006-01-02"),
		SpanDays: int(math.Ceil(float64(ms) / float64(24*time.Hour/time.Millisecond))),
		Count:    len(dates),
	}
}

func textStats(values []any) *TextStats {
	if len(values) == 0 {
		return nil
	}
	s := &TextStats{MinLength: math.MaxInt}
	total := 0
	for _, v := range values {
		str := table.String(v)
		n := utf8.RuneCountInString(str)
		total += n
		if n < s.MinLength {
			s.MinLength = n
		}
		if n > s.MaxLength {
			s.MaxLength = n
		}
		digit, special := false, false
		for _, r := range str {
			if r >= '0' && r <= '9' {
				digit = true
			} else if !isASCIIAlnum(r) && !unicode.IsSpace(r) {
				special = true
			}
		}
		if digit {
			s.WithDigits++
		}
		if special {
			s.WithSpecial++
		}
	}
	s.MeanLength = int(roundHalfUp(float64(total) / float64(len(values))))
	return s
}

func isASCIIAlnum(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9'
}
