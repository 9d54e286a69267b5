// Package profile infers column types, summarizes columns, scores data
// quality, correlates numeric columns and recommends charts for one
// in-memory table.
package profile

import (
	"encoding/json"

	"github.com/dustin/go-humanize"

	"github.com/KaramelBytes/vizprofile-cli/internal/charts"
	"github.com/KaramelBytes/vizprofile-cli/internal/table"
)

const sampleValueCount = 5

// Profiler is the entry point. It holds only read-only configuration, so
// one value may be shared by concurrent callers.
type Profiler struct {
	Catalog charts.Catalog
	// EstimateSize fills Profile.EstimatedSize from the table's JSON form.
	EstimateSize bool
}

// New returns a Profiler with the default chart catalog.
func New() *Profiler {
	return &Profiler{Catalog: charts.DefaultCatalog(), EstimateSize: true}
}

// EmptyProfile is returned for a nil or zero-length table.
func EmptyProfile() *Profile {
	return &Profile{
		ColumnNames:        []string{},
		Columns:            map[string]ColumnProfile{},
		NumericColumns:     []string{},
		CategoricalColumns: []string{},
		DateColumns:        []string{},
		TextColumns:        []string{},
		Quality:            QualityReport{Recommendations: []string{}},
		Correlations:       CorrelationMatrix{},
		Recommendations:    []ChartRecommendation{},
		Insights:           []string{EmptyInsight},
	}
}

// Profile analyzes t. It never fails: unparseable cells and columns without
// enough data degrade to smaller or nil results.
func (pr *Profiler) Profile(t table.Table) *Profile {
	if len(t) == 0 {
		return EmptyProfile()
	}
	cols := t.Columns()
	p := &Profile{
		RowCount:           len(t),
		ColumnCount:        len(cols),
		ColumnNames:        cols,
		Columns:            make(map[string]ColumnProfile, len(cols)),
		NumericColumns:     []string{},
		CategoricalColumns: []string{},
		DateColumns:        []string{},
		TextColumns:        []string{},
	}
	if pr.EstimateSize {
		if b, err := json.Marshal(t); err == nil {
			p.EstimatedSize = humanize.IBytes(uint64(len(b)))
		}
	}
	for _, name := range cols {
		cp := ProfileColumn(t.Values(name))
		p.Columns[name] = cp
		switch cp.Type {
		case TypeNumeric:
			p.NumericColumns = append(p.NumericColumns, name)
		case TypeCategorical:
			p.CategoricalColumns = append(p.CategoricalColumns, name)
		case TypeDate, TypeDateTime:
			p.DateColumns = append(p.DateColumns, name)
		case TypeText:
			p.TextColumns = append(p.TextColumns, name)
		case TypeMixedNumeric, TypeEmpty:
		}
	}
	p.Quality = Assess(t)
	p.Correlations = Correlate(t, p.NumericColumns)
	p.Recommendations = Recommender{Catalog: pr.Catalog}.RecommendAll(RecommendInput{
		RowCount:     p.RowCount,
		Order:        cols,
		Columns:      p.Columns,
		Quality:      p.Quality,
		Correlations: p.Correlations,
	})
	p.Insights = insights(p)
	if p.Insights == nil {
		p.Insights = []string{}
	}
	return p
}

// ProfileColumn classifies and summarizes one column's raw values (one per
// row, missing included).
func ProfileColumn(raw []any) ColumnProfile {
	valid := make([]any, 0, len(raw))
	for _, v := range raw {
		if !table.IsMissing(v) {
			valid = append(valid, v)
		}
	}
	if len(valid) == 0 {
		return ColumnProfile{Type: TypeEmpty, MissingRate: 100, ValidRate: 0, SampleValues: []any{}}
	}
	seen := map[string]struct{}{}
	samples := []any{}
	for _, v := range valid {
		k := table.Key(v)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		if len(samples) < sampleValueCount {
			samples = append(samples, v)
		}
	}
	missing := len(raw) - len(valid)
	missingRate := int(roundHalfUp(100 * float64(missing) / float64(len(raw))))
	t := Classify(valid)
	return ColumnProfile{
		Type:          t,
		MissingRate:   missingRate,
		ValidRate:     100 - missingRate,
		UniqueCount:   len(seen),
		DuplicateRate: int(roundHalfUp(100 * float64(len(valid)-len(seen)) / float64(len(valid)))),
		SampleValues:  samples,
		Statistics:    Summarize(valid, t),
	}
}

// ColumnSets adapts a profile to the chart helpers' column lists.
func (p *Profile) ColumnSets() charts.ColumnSets {
	return charts.ColumnSets{
		All:         p.ColumnNames,
		Numeric:     p.NumericColumns,
		Categorical: p.CategoricalColumns,
		Date:        p.DateColumns,
	}
}
