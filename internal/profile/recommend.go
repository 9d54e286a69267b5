package profile

import (
	"iter"
	"slices"

	"github.com/KaramelBytes/vizprofile-cli/internal/charts"
)

const (
	pieMaxCategories = 10
	heatmapMinRows   = 1000
)

// RecommendInput carries the derived facts the chart heuristic reads.
type RecommendInput struct {
	RowCount     int
	Order        []string
	Columns      map[string]ColumnProfile
	Quality      QualityReport
	Correlations CorrelationMatrix
}

// Recommender turns column profiles into chart suggestions. The catalog is
// used only to label recommendations.
type Recommender struct {
	Catalog charts.Catalog
}

// Recommend yields suggestions rule by rule. Rules are independent: the same
// chart type may appear more than once and is never collapsed.
func (rc Recommender) Recommend(in RecommendInput) iter.Seq[ChartRecommendation] {
	return func(yield func(ChartRecommendation) bool) {
		var numeric, categorical, temporal []string
		for _, name := range in.Order {
			switch in.Columns[name].Type {
			case TypeNumeric:
				numeric = append(numeric, name)
			case TypeCategorical:
				categorical = append(categorical, name)
			case TypeDate, TypeDateTime:
				temporal = append(temporal, name)
			}
		}
		emit := func(t charts.ChartType, p charts.Priority, why string) bool {
			rec := ChartRecommendation{ChartType: t, Rationale: why, Priority: p}
			if info, ok := rc.Catalog.Lookup(t); ok {
				rec.Title = info.Name
			}
			return yield(rec)
		}

		if len(temporal) > 0 && len(numeric) > 0 {
			if !emit(charts.Line, charts.High, "time series present, suitable for trend display") {
				return
			}
		}
		if len(categorical) > 0 && len(numeric) > 0 {
			if !emit(charts.Bar, charts.High, "categorical and numeric data present, suitable for comparison") {
				return
			}
			if len(categorical) == 1 && in.Columns[categorical[0]].UniqueCount <= pieMaxCategories {
				if !emit(charts.Pie, charts.Medium, "few categories, suitable for showing proportions") {
					return
				}
			}
		}
		if len(numeric) >= 2 {
			if !emit(charts.Scatter, charts.Medium, "multiple numeric columns, suitable for correlation analysis") {
				return
			}
			if len(numeric) >= 3 {
				if !emit(charts.Bubble, charts.Medium, "three or more numeric columns, suitable for multi-dimensional analysis") {
					return
				}
			}
		}
		if len(numeric) >= 3 && len(numeric) <= 8 {
			if !emit(charts.Radar, charts.Low, "several numeric metrics, suitable for side-by-side comparison") {
				return
			}
		}
		if in.RowCount > heatmapMinRows {
			emit(charts.Heatmap, charts.Medium, "large dataset, suitable for density display")
		}
	}
}

// RecommendAll materializes Recommend.
func (rc Recommender) RecommendAll(in RecommendInput) []ChartRecommendation {
	out := slices.Collect(rc.Recommend(in))
	if out == nil {
		out = []ChartRecommendation{}
	}
	return out
}
