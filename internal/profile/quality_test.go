package profile

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/KaramelBytes/vizprofile-cli/internal/table"
)

func TestAssessMissingAndDuplicates(t *testing.T) {
	cols := []string{"a", "b"}
	var vals [][]any
	for i := 0; i < 9; i++ {
		vals = append(vals, []any{float64(i), "x"})
	}
	// duplicate of row 0
	vals = append(vals, []any{0.0, "x"})
	vals[3][1] = nil
	vals[5][1] = ""
	q := Assess(rows(cols, vals...))
	if q.Completeness != 90 || q.MissingCells != 2 {
		t.Fatalf("completeness/missing = %d/%d, want 90/2", q.Completeness, q.MissingCells)
	}
	if q.DuplicateRowCount != 1 {
		t.Fatalf("duplicates = %d, want 1", q.DuplicateRowCount)
	}
	if q.QualityScore != 90 {
		t.Fatalf("score = %d, want 90", q.QualityScore)
	}
	if want := []string{AdviceDuplicateRows}; !reflect.DeepEqual(q.Recommendations, want) {
		t.Fatalf("advice = %v, want %v", q.Recommendations, want)
	}
}

func TestAssessDuplicateNumbersByValue(t *testing.T) {
	cols := []string{"a"}
	q := Assess(rows(cols, []any{json.Number("1.0")}, []any{json.Number("1")}, []any{int64(2)}, []any{2.0}))
	if q.DuplicateRowCount != 2 {
		t.Fatalf("duplicates = %d, want 2", q.DuplicateRowCount)
	}
}

func TestAssessCleanTable(t *testing.T) {
	q := Assess(rows([]string{"a"}, []any{"x"}, []any{"y"}))
	if q.Completeness != 100 || q.QualityScore != 100 || q.DuplicateRowCount != 0 {
		t.Fatalf("report = %#v", q)
	}
	if len(q.Recommendations) != 1 || q.Recommendations[0] != AdviceGood {
		t.Fatalf("advice = %v", q.Recommendations)
	}
}

func TestAssessDuplicateIgnoresKeyOrder(t *testing.T) {
	a := table.NewRecord([]string{"x", "y"}, []any{1.0, "k"})
	b := table.NewRecord([]string{"y", "x"}, []any{"k", 1.0})
	q := Assess(table.Table{a, b})
	if q.DuplicateRowCount != 1 {
		t.Fatalf("duplicates = %d, want 1", q.DuplicateRowCount)
	}
}

func TestAssessLowCompleteness(t *testing.T) {
	q := Assess(rows([]string{"a", "b"}, []any{"x", nil}, []any{"y", nil}))
	if q.Completeness != 50 {
		t.Fatalf("completeness = %d, want 50", q.Completeness)
	}
	if q.Recommendations[0] != AdviceMissingValues {
		t.Fatalf("advice = %v", q.Recommendations)
	}
	if q.QualityScore != 75 {
		t.Fatalf("score = %d, want 75", q.QualityScore)
	}
}

func TestAssessEmpty(t *testing.T) {
	q := Assess(nil)
	if q.Completeness != 0 || q.QualityScore != 0 {
		t.Fatalf("report = %#v", q)
	}
	if len(q.Recommendations) != 1 || q.Recommendations[0] != AdviceMissingValues {
		t.Fatalf("advice = %v", q.Recommendations)
	}
}
