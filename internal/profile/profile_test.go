package profile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/KaramelBytes/vizprofile-cli/internal/parser"
	"github.com/KaramelBytes/vizprofile-cli/internal/table"
)

func sampleTable() table.Table {
	cols := []string{"date", "region", "sales", "units", "note"}
	regions := []string{"north", "south", "east"}
	var vals [][]any
	for i := 0; i < 30; i++ {
		vals = append(vals, []any{
			fmt.Sprintf("2024-01-%02d", i+1),
			regions[i%3],
			fmt.Sprintf("$%d", 100+i*10),
			float64(i * 2),
			fmt.Sprintf("order number %d shipped", i),
		})
	}
	vals[4][2] = nil
	return rows(cols, vals...)
}

func TestProfileEmptyTable(t *testing.T) {
	for _, in := range []table.Table{nil, {}} {
		p := New().Profile(in)
		if p.RowCount != 0 || p.ColumnCount != 0 {
			t.Fatalf("counts = %d/%d", p.RowCount, p.ColumnCount)
		}
		if len(p.Insights) != 1 || p.Insights[0] != EmptyInsight {
			t.Fatalf("insights = %v", p.Insights)
		}
		if p.Columns == nil || p.Correlations == nil || p.Recommendations == nil || p.NumericColumns == nil {
			t.Fatalf("empty profile should carry empty, non-nil collections")
		}
		if p.Quality.Completeness != 0 || p.Quality.QualityScore != 0 {
			t.Fatalf("quality = %#v", p.Quality)
		}
	}
}

func TestProfileSampleTable(t *testing.T) {
	p := New().Profile(sampleTable())
	if p.RowCount != 30 || p.ColumnCount != 5 {
		t.Fatalf("counts = %d/%d", p.RowCount, p.ColumnCount)
	}
	if !reflect.DeepEqual(p.ColumnNames, []string{"date", "region", "sales", "units", "note"}) {
		t.Fatalf("column order = %v", p.ColumnNames)
	}
	want := map[string]ColumnType{
		"date": TypeDate, "region": TypeCategorical, "sales": TypeNumeric, "units": TypeNumeric, "note": TypeText,
	}
	for name, ty := range want {
		if got := p.Columns[name].Type; got != ty {
			t.Fatalf("%s type = %s, want %s", name, got, ty)
		}
	}
	if !reflect.DeepEqual(p.NumericColumns, []string{"sales", "units"}) {
		t.Fatalf("numeric = %v", p.NumericColumns)
	}
	sales := p.Columns["sales"]
	if sales.MissingRate != 3 || sales.ValidRate != 97 {
		t.Fatalf("sales missing/valid = %d/%d, want 3/97", sales.MissingRate, sales.ValidRate)
	}
	if len(sales.SampleValues) != sampleValueCount {
		t.Fatalf("samples = %v", sales.SampleValues)
	}
	if r := p.Correlations[PairKey("sales", "units")]; !almostEqual(r, 1, 1e-9) {
		t.Fatalf("sales|units = %v, want 1", r)
	}
	if p.Columns["date"].Statistics.Date.SpanDays != 29 {
		t.Fatalf("date span = %d", p.Columns["date"].Statistics.Date.SpanDays)
	}
	got := chartTypes(p.Recommendations)
	if len(got) < 3 || got[0] != "line" || got[1] != "bar" || got[2] != "pie" {
		t.Fatalf("charts = %v", got)
	}
	joined := strings.Join(p.Insights, "\n")
	for _, frag := range []string{"small dataset", "time columns detected", "strong correlations found: sales|units (positive 1.00)", "sales holds the largest maximum value"} {
		if !strings.Contains(joined, frag) {
			t.Fatalf("insights missing %q:\n%s", frag, joined)
		}
	}
	if p.EstimatedSize == "" {
		t.Fatalf("estimated size should be set")
	}
}

func TestProfileInvariants(t *testing.T) {
	p := New().Profile(sampleTable())
	for name, c := range p.Columns {
		if c.MissingRate+c.ValidRate != 100 {
			t.Fatalf("%s: rates do not sum to 100", name)
		}
		if c.UniqueCount > p.RowCount {
			t.Fatalf("%s: unique %d > rows", name, c.UniqueCount)
		}
		if len(c.SampleValues) > sampleValueCount {
			t.Fatalf("%s: too many samples", name)
		}
	}
	for k, r := range p.Correlations {
		if r < -1 || r > 1 {
			t.Fatalf("%s out of range: %v", k, r)
		}
		a, b, _ := SplitPairKey(k)
		if a == b {
			t.Fatalf("self pair %s", k)
		}
		if _, ok := p.Correlations[PairKey(b, a)]; ok {
			t.Fatalf("both orders stored for %s", k)
		}
	}
	q := p.Quality
	if q.Completeness < 0 || q.Completeness > 100 || q.QualityScore < 0 || q.QualityScore > 100 {
		t.Fatalf("quality out of range: %#v", q)
	}
}

func TestProfileDeterministic(t *testing.T) {
	pr := New()
	a, err := json.Marshal(pr.Profile(sampleTable()))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		b, err := json.Marshal(pr.Profile(sampleTable()))
		if err != nil {
			t.Fatal(err)
		}
		if string(a) != string(b) {
			t.Fatalf("run %d differs", i)
		}
	}
}

func TestQualityAndCorrelationSurviveReload(t *testing.T) {
	orig := sampleTable()
	p := New().Profile(orig)

	b, err := json.Marshal(orig)
	if err != nil {
		t.Fatal(err)
	}
	res, err := parser.DecodeJSON(bytes.NewReader(b), parser.Options{})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(res.Table.Columns(), p.ColumnNames) {
		t.Fatalf("columns = %v, want %v", res.Table.Columns(), p.ColumnNames)
	}
	if q := Assess(res.Table); !reflect.DeepEqual(q, p.Quality) {
		t.Fatalf("quality after reload = %#v, want %#v", q, p.Quality)
	}
	if m := Correlate(res.Table, p.NumericColumns); !reflect.DeepEqual(m, p.Correlations) {
		t.Fatalf("correlations after reload = %v, want %v", m, p.Correlations)
	}
	again := New().Profile(res.Table)
	for _, name := range p.ColumnNames {
		if again.Columns[name].Type != p.Columns[name].Type {
			t.Fatalf("%s type = %s, want %s", name, again.Columns[name].Type, p.Columns[name].Type)
		}
	}
}

func TestProfileJSONRoundTrip(t *testing.T) {
	p := New().Profile(sampleTable())
	b, err := json.Marshal(p)
	if err != nil {
		t.Fatal(err)
	}
	var back Profile
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Columns["sales"].Statistics.Numeric == nil {
		t.Fatalf("numeric statistics lost in round trip")
	}
	if back.Columns["region"].Statistics.Categorical.Top[0].Value == "" {
		t.Fatalf("categorical statistics lost in round trip")
	}
	if back.Quality.QualityScore != p.Quality.QualityScore {
		t.Fatalf("quality changed")
	}
}

func TestProfileRecordsAreNotMutated(t *testing.T) {
	in := sampleTable()
	before, _ := json.Marshal(in)
	New().Profile(in)
	after, _ := json.Marshal(in)
	if string(before) != string(after) {
		t.Fatalf("input table was modified")
	}
}

func TestMarkdownSections(t *testing.T) {
	md := New().Profile(sampleTable()).Markdown("sales.csv")
	for _, s := range []string{"[DATASET SUMMARY]", "File: sales.csv", "[SCHEMA]", "[DATA QUALITY]", "[CORRELATIONS]", "[RECOMMENDED CHARTS]", "[INSIGHTS]", "- sales: numeric"} {
		if !strings.Contains(md, s) {
			t.Fatalf("markdown missing %q:\n%s", s, md)
		}
	}
	empty := EmptyProfile().Markdown("")
	if strings.Contains(empty, "[SCHEMA]") || !strings.Contains(empty, EmptyInsight) {
		t.Fatalf("empty markdown = %s", empty)
	}
}
