package utils

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestSafeWriteFileAndPrettyJSON(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	if err := EnsureDir(dir); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	b, err := PrettyJSON(map[string]int{"a": 1})
	if err != nil {
		t.Fatalf("pretty: %v", err)
	}
	p := filepath.Join(dir, "x.json")
	if err := SafeWriteFile(p, b); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := os.ReadFile(p)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "{\n  \"a\": 1\n}" {
		t.Fatalf("content = %q", got)
	}
	if _, err := os.Stat(p + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind")
	}
	if _, err := PrettyJSON(make(chan int)); err == nil {
		t.Fatalf("expected marshal error")
	}
	var back map[string]int
	if err := json.Unmarshal(got, &back); err != nil || back["a"] != 1 {
		t.Fatalf("round trip = %v, %v", back, err)
	}
}

func TestExpandInputs(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"a.csv", "b.csv", "c.json"} {
		if err := os.WriteFile(filepath.Join(dir, n), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.csv"), 0o755); err != nil {
		t.Fatal(err)
	}
	got, err := ExpandInputs([]string{filepath.Join(dir, "*.csv"), filepath.Join(dir, "a.csv"), filepath.Join(dir, "missing.csv")})
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if len(got) != 3 || filepath.Base(got[0]) != "a.csv" || filepath.Base(got[1]) != "b.csv" || filepath.Base(got[2]) != "missing.csv" {
		t.Fatalf("inputs = %v", got)
	}
	if _, err := ExpandInputs([]string{"[bad"}); err == nil {
		t.Fatalf("expected pattern error")
	}
}
