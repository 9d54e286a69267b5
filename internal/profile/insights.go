package profile

import (
	"fmt"
	"math"
	"strings"
)

const (
	largeDatasetRows   = 10000
	smallDatasetRows   = 100
	lowCompleteness    = 80
	strongCorrelationR = 0.7
)

// EmptyInsight is the single insight carried by the empty profile.
const EmptyInsight = "no data to analyze; supply a non-empty table to begin profiling"

func insights(p *Profile) []string {
	var out []string
	switch {
	case p.RowCount > largeDatasetRows:
		out = append(out, "large dataset with more than 10,000 records, suitable for in-depth analysis")
	case p.RowCount < smallDatasetRows:
		out = append(out, "small dataset; results may be limited, consider collecting more data")
	}
	if p.Quality.Completeness < lowCompleteness {
		out = append(out, fmt.Sprintf("data completeness is %d%%; handle missing values to improve accuracy", p.Quality.Completeness))
	}
	if len(p.DateColumns) > 0 {
		out = append(out, "time columns detected; time-series and trend analysis are possible")
	}
	switch {
	case len(p.NumericColumns) > len(p.CategoricalColumns):
		out = append(out, "numeric columns dominate; suitable for statistical analysis")
	case len(p.CategoricalColumns) > len(p.NumericColumns):
		out = append(out, "categorical columns dominate; suitable for grouping and cross-tab analysis")
	}
	var strong []string
	for _, pc := range p.Correlations.Pairs(p.NumericColumns) {
		if math.Abs(pc.R) <= strongCorrelationR {
			continue
		}
		sign := "positive"
		if pc.R < 0 {
			sign = "negative"
		}
		strong = append(strong, fmt.Sprintf("%s (%s %.2f)", PairKey(pc.A, pc.B), sign, math.Abs(pc.R)))
	}
	if len(strong) > 0 {
		out = append(out, "strong correlations found: "+strings.Join(strong, ", "))
	}
	if col := largestMaximum(p); col != "" {
		out = append(out, fmt.Sprintf("%s holds the largest maximum value", col))
	}
	return out
}

// largestMaximum names the numeric column with the highest max; the first
// column wins ties.
func largestMaximum(p *Profile) string {
	best := ""
	bestMax := 0.0
	for _, name := range p.NumericColumns {
		st := p.Columns[name].Statistics
		m := 0.0
		if st != nil && st.Numeric != nil {
			m = st.Numeric.Max
		}
		if best == "" || m > bestMax {
			best, bestMax = name, m
		}
	}
	return best
}
