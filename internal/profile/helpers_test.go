package profile

import (
	"math"
	"testing"

	"github.com/KaramelBytes/vizprofile-cli/internal/table"
)

// rows builds a table whose records all share cols.
func rows(cols []string, vals ...[]any) table.Table {
	t := make(table.Table, len(vals))
	for i, v := range vals {
		t[i] = table.NewRecord(cols, v)
	}
	return t
}

func strs(vs ...string) []any {
	out := make([]any, len(vs))
	for i, v := range vs {
		out[i] = v
	}
	return out
}

func floats(vs ...float64) []any {
	out := make([]any, len(vs))
	for i, v := range vs {
		out[i] = v
	}
	return out
}

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func mustNumeric(t *testing.T, st *Statistics) *NumericStats {
	t.Helper()
	if st == nil || st.Numeric == nil {
		t.Fatalf("expected numeric statistics, got %#v", st)
	}
	return st.Numeric
}
