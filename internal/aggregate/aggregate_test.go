package aggregate

import (
	"testing"

	"github.com/KaramelBytes/vizprofile-cli/internal/table"
)

func tbl(cols []string, vals ...[]any) table.Table {
	t := make(table.Table, len(vals))
	for i, v := range vals {
		t[i] = table.NewRecord(cols, v)
	}
	return t
}

func TestParseValue(t *testing.T) {
	cases := map[any]float64{
		"$1,200": 1200,
		" 15% ":  15,
		"abc":    0,
		"":       0,
		nil:      0,
		2.5:      2.5,
		int64(3): 3,
		"€4":     4,
	}
	for in, want := range cases {
		if got := ParseValue(in); got != want {
			t.Fatalf("ParseValue(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestParseValueNonFinite(t *testing.T) {
	for _, in := range []any{"Infinity", "-Infinity", "inf", "NaN"} {
		if got := ParseValue(in); got != 0 {
			t.Fatalf("ParseValue(%v) = %v, want 0", in, got)
		}
	}
}

func TestHistogramInfinityCell(t *testing.T) {
	h := Histogram(tbl([]string{"v"}, []any{"1"}, []any{"2"}, []any{"Infinity"}), "v", 3)
	if h.Min != 0 || h.Max != 2 {
		t.Fatalf("min/max = %v/%v, want 0/2", h.Min, h.Max)
	}
	if len(h.Counts) != 3 || h.Counts[0] != 1 || h.Counts[1] != 1 || h.Counts[2] != 1 {
		t.Fatalf("counts = %v, want [1 1 1]", h.Counts)
	}
}

func TestRollup(t *testing.T) {
	cols := []string{"region", "sales"}
	got := Rollup(tbl(cols,
		[]any{"north", "10"},
		[]any{"south", 5.0},
		[]any{"north", "oops"},
		[]any{nil, "7"},
		[]any{"north", "$3"},
	), "region", "sales")
	want := []Bucket{
		{Category: "north", Sum: 13, Count: 3},
		{Category: "south", Sum: 5, Count: 1},
		{Category: Uncategorized, Sum: 7, Count: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("buckets = %#v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("bucket %d = %#v, want %#v", i, got[i], want[i])
		}
	}
	if out := Rollup(nil, "a", "b"); out == nil || len(out) != 0 {
		t.Fatalf("empty rollup = %#v", out)
	}
}

func TestGroupBy(t *testing.T) {
	groups := GroupBy(tbl([]string{"k"}, []any{"b"}, []any{"a"}, []any{"b"}, []any{""}), "k")
	if len(groups) != 3 || groups[0].Category != "b" || len(groups[0].Rows) != 2 || groups[2].Category != Uncategorized {
		t.Fatalf("groups = %#v", groups)
	}
}

func TestHistogram(t *testing.T) {
	var vals [][]any
	for i := 0; i <= 10; i++ {
		vals = append(vals, []any{float64(i)})
	}
	h := Histogram(tbl([]string{"v"}, vals...), "v", 5)
	if len(h.Counts) != 5 || len(h.Labels) != 5 || len(h.Edges) != 6 {
		t.Fatalf("shape = %#v", h)
	}
	if h.Labels[0] != "0.0-2.0" || h.Labels[4] != "8.0-10.0" {
		t.Fatalf("labels = %v", h.Labels)
	}
	want := []int{2, 2, 2, 2, 3}
	for i := range want {
		if h.Counts[i] != want[i] {
			t.Fatalf("counts = %v, want %v", h.Counts, want)
		}
	}
}

func TestHistogramDefaultsAndConstant(t *testing.T) {
	h := Histogram(tbl([]string{"v"}, []any{4.0}, []any{"4"}, []any{4.0}), "v", 0)
	if len(h.Counts) != DefaultBins {
		t.Fatalf("bins = %d, want %d", len(h.Counts), DefaultBins)
	}
	if h.Counts[0] != 3 || h.Width != 0 {
		t.Fatalf("constant column counts = %v width = %v", h.Counts, h.Width)
	}
	if h.Labels[0] != "4.0-4.0" {
		t.Fatalf("label = %s", h.Labels[0])
	}
	empty := Histogram(nil, "v", 3)
	if len(empty.Counts) != 0 || empty.Labels == nil {
		t.Fatalf("empty histogram = %#v", empty)
	}
}

func TestHistogramReadsUnparsedAsZero(t *testing.T) {
	h := Histogram(tbl([]string{"v"}, []any{"x"}, []any{nil}, []any{10.0}), "v", 2)
	if h.Min != 0 || h.Counts[0] != 2 || h.Counts[1] != 1 {
		t.Fatalf("histogram = %#v", h)
	}
}

func TestSortByColumn(t *testing.T) {
	in := tbl([]string{"k"}, []any{"2024-03-01"}, []any{"2024-01-15"}, []any{"2024-02-01"})
	out := SortByColumn(in, "k")
	if v, _ := out[0].Get("k"); v != "2024-01-15" {
		t.Fatalf("first = %v", v)
	}
	if v, _ := in[0].Get("k"); v != "2024-03-01" {
		t.Fatalf("input was reordered")
	}

	nums := SortByColumn(tbl([]string{"k"}, []any{"$10"}, []any{9.0}, []any{"100"}), "k")
	got := []string{}
	for _, r := range nums {
		v, _ := r.Get("k")
		got = append(got, table.String(v))
	}
	if got[0] != "9" || got[1] != "$10" || got[2] != "100" {
		t.Fatalf("numeric order = %v", got)
	}

	words := SortByColumn(tbl([]string{"k"}, []any{"pear"}, []any{"apple"}), "k")
	if v, _ := words[0].Get("k"); v != "apple" {
		t.Fatalf("string order = %v", v)
	}
}
