package profile

import (
	"math"
	"strings"

	"github.com/KaramelBytes/vizprofile-cli/internal/table"
)

// PairSeparator joins two column names into a correlation key.
const PairSeparator = "|"

// CorrelationMatrix maps "colA|colB" to a Pearson coefficient. Pairs with
// fewer than two valid observations are absent.
type CorrelationMatrix map[string]float64

// PairKey builds the matrix key for an ordered column pair.
func PairKey(a, b string) string { return a + PairSeparator + b }

// PairCorr is one matrix entry with its columns split out.
type PairCorr struct {
	A, B string
	R    float64
}

// Pairs lists entries following the order of cols (a before b). Only pairs
// present in the matrix are returned.
func (m CorrelationMatrix) Pairs(cols []string) []PairCorr {
	var out []PairCorr
	for i := 0; i < len(cols); i++ {
		for j := i + 1; j < len(cols); j++ {
			if r, ok := m[PairKey(cols[i], cols[j])]; ok {
				out = append(out, PairCorr{A: cols[i], B: cols[j], R: r})
			}
		}
	}
	return out
}

// SplitPairKey reverses PairKey. Column names containing the separator make
// the split ambiguous; the first separator wins.
func SplitPairKey(key string) (string, string, bool) {
	a, b, ok := strings.Cut(key, PairSeparator)
	return a, b, ok
}

type pairAcc struct {
	n     float64
	sumX  float64
	sumY  float64
	sumXX float64
	sumYY float64
	sumXY float64
}

func (pa *pairAcc) add(x, y float64) {
	pa.n++
	pa.sumX += x
	pa.sumY += y
	pa.sumXX += x * x
	pa.sumYY += y * y
	pa.sumXY += x * y
}

// r returns the Pearson coefficient; a zero denominator yields 0.
func (pa *pairAcc) r() float64 {
	denom := math.Sqrt((pa.n*pa.sumXX - pa.sumX*pa.sumX) * (pa.n*pa.sumYY - pa.sumY*pa.sumY))
	if denom == 0 || math.IsNaN(denom) {
		return 0
	}
	r := (pa.n*pa.sumXY - pa.sumX*pa.sumY) / denom
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	return r
}

// Correlate computes Pearson r for every unordered pair of the given columns,
// zipping rows and dropping those where either side is not a finite number.
// Repeated names in numericCols are ignored after their first occurrence.
func Correlate(t table.Table, numericCols []string) CorrelationMatrix {
	out := CorrelationMatrix{}
	numericCols = uniqueNames(numericCols)
	if len(numericCols) < 2 {
		return out
	}
	parsed := make([][]float64, len(numericCols))
	valid := make([][]bool, len(numericCols))
	for i, c := range numericCols {
		parsed[i] = make([]float64, len(t))
		valid[i] = make([]bool, len(t))
		for row, v := range t.Values(c) {
			parsed[i][row], valid[i][row] = ParseNumeric(v)
		}
	}
	for i := 0; i < len(numericCols); i++ {
		for j := i + 1; j < len(numericCols); j++ {
			var pa pairAcc
			for row := range t {
				if valid[i][row] && valid[j][row] {
					pa.add(parsed[i][row], parsed[j][row])
				}
			}
			if pa.n < 2 {
				continue
			}
			out[PairKey(numericCols[i], numericCols[j])] = pa.r()
		}
	}
	return out
}

func uniqueNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
