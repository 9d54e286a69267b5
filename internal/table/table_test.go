package table

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestRecordKeepsKeyOrder(t *testing.T) {
	r := NewRecord([]string{"z", "a", "m"}, []any{1.0, "x", nil})
	r.Set("a", "y")
	r.Set("b", true)
	if got := r.Keys(); len(got) != 4 || got[0] != "z" || got[1] != "a" || got[3] != "b" {
		t.Fatalf("keys = %v", got)
	}
	b, err := json.Marshal(r)
	if err != nil {
		t.Fatal(err)
	}
	if want := `{"z":1,"a":"y","m":null,"b":true}`; string(b) != want {
		t.Fatalf("json = %s, want %s", b, want)
	}
	if r.Canonical() != `{"a":"y","b":true,"m":null,"z":1}` {
		t.Fatalf("canonical = %s", r.Canonical())
	}
}

func TestTableColumnsAndValues(t *testing.T) {
	tb := Table{
		NewRecord([]string{"a", "b"}, []any{1.0, "x"}),
		NewRecord([]string{"a", "c"}, []any{2.0, "y"}),
	}
	if cols := tb.Columns(); len(cols) != 2 || cols[1] != "b" {
		t.Fatalf("columns = %v", cols)
	}
	vals := tb.Values("b")
	if vals[0] != "x" || vals[1] != nil {
		t.Fatalf("values = %v", vals)
	}
	if Table(nil).Columns() != nil {
		t.Fatalf("empty table has columns")
	}
}

func TestCanonicalComparesNumbersByValue(t *testing.T) {
	a := NewRecord([]string{"a", "b"}, []any{json.Number("1.0"), "x"})
	b := NewRecord([]string{"b", "a"}, []any{"x", json.Number("1")})
	c := NewRecord([]string{"a", "b"}, []any{int64(1), "x"})
	if a.Canonical() != b.Canonical() || a.Canonical() != c.Canonical() {
		t.Fatalf("canonical forms differ: %s / %s / %s", a.Canonical(), b.Canonical(), c.Canonical())
	}
	d := NewRecord([]string{"a", "b"}, []any{"1", "x"})
	if a.Canonical() == d.Canonical() {
		t.Fatalf("number and string should stay distinct")
	}
	if Key(json.Number("2.50")) != Key(2.5) {
		t.Fatalf("json.Number key = %s, want %s", Key(json.Number("2.50")), Key(2.5))
	}
}

func TestMissingAndKeys(t *testing.T) {
	if !IsMissing(nil) || !IsMissing("") || IsMissing(" ") || IsMissing(0.0) || IsMissing(false) {
		t.Fatalf("IsMissing misclassifies")
	}
	if Key(1.0) == Key("1") || Key(true) == Key("true") {
		t.Fatalf("keys should separate value kinds")
	}
	if Key(1.0) != Key(int64(1)) {
		t.Fatalf("numeric keys should agree across widths")
	}
	if String(2.50) != "2.5" || String(json.Number("7")) != "7" || String(nil) != "" {
		t.Fatalf("String casts wrong")
	}
}

func TestFromMaps(t *testing.T) {
	var in any
	if err := json.Unmarshal([]byte(`[{"b":1,"a":"x"},{"a":"y"}]`), &in); err != nil {
		t.Fatal(err)
	}
	tb, err := FromMaps(in)
	if err != nil {
		t.Fatalf("FromMaps: %v", err)
	}
	if len(tb) != 2 || tb.Columns()[0] != "a" {
		t.Fatalf("table = %v", tb)
	}
	for _, bad := range []any{"text", 3.0, []any{1.0}} {
		if _, err := FromMaps(bad); !errors.Is(err, ErrMalformedInput) {
			t.Fatalf("FromMaps(%v) err = %v, want ErrMalformedInput", bad, err)
		}
	}
	if tb, err := FromMaps(nil); err != nil || tb != nil {
		t.Fatalf("nil input = %v, %v", tb, err)
	}
}

func TestRecordYAMLKeepsKeyOrder(t *testing.T) {
	r := NewRecord([]string{"zeta", "alpha", "n"}, []any{"x", nil, json.Number("12")})
	b, err := yaml.Marshal(Table{r})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got := string(b)
	if !strings.Contains(got, "n: 12") {
		t.Fatalf("number not emitted plain:\n%s", got)
	}
	if strings.Index(got, "zeta") > strings.Index(got, "alpha") {
		t.Fatalf("key order lost:\n%s", got)
	}
}
