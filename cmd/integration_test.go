package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/KaramelBytes/vizprofile-cli/internal/aggregate"
	"github.com/KaramelBytes/vizprofile-cli/internal/profile"
	"github.com/KaramelBytes/vizprofile-cli/internal/snapshot"
)

// runCmd is a helper to execute the root command with args.
func runCmd(t *testing.T, args ...string) {
	t.Helper()
	if err := execCmd(args...); err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
}

// execCmd resets sticky flag state left by earlier invocations, then runs
// the root command.
func execCmd(args ...string) error {
	resetFlags(rootCmd)
	cfg = nil
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func resetFlags(c *cobra.Command) {
	c.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		}
	})
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// withHome points HOME at a temp dir for the duration of the test.
func withHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	oldHome := os.Getenv("HOME")
	t.Cleanup(func() { os.Setenv("HOME", oldHome) })
	os.Setenv("HOME", home)
	return home
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

const salesCSV = "date,region,sales\n2024-01-01,north,$100\n2024-01-02,south,$200\n2024-01-03,north,$300\n2024-01-04,south,$400\n"

func TestCLI_ProfileWritesJSON(t *testing.T) {
	home := withHome(t)
	src := filepath.Join(home, "sales.csv")
	writeFile(t, src, salesCSV)
	out := filepath.Join(home, "sales.json")

	runCmd(t, "profile", src, "-f", "json", "-o", out)

	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	var p profile.Profile
	if err := json.Unmarshal(b, &p); err != nil {
		t.Fatalf("decode profile: %v", err)
	}
	if p.RowCount != 4 || p.ColumnCount != 3 {
		t.Fatalf("rows/cols = %d/%d", p.RowCount, p.ColumnCount)
	}
	if p.Columns["sales"].Type != profile.TypeNumeric {
		t.Fatalf("sales type = %s", p.Columns["sales"].Type)
	}
	if p.Columns["date"].Type != profile.TypeDate {
		t.Fatalf("date type = %s", p.Columns["date"].Type)
	}
}

func TestCLI_ProfileMarkdownAndSave(t *testing.T) {
	home := withHome(t)
	src := filepath.Join(home, "sales.csv")
	writeFile(t, src, salesCSV)
	out := filepath.Join(home, "sales.md")

	runCmd(t, "profile", src, "-o", out, "--save")

	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	for _, want := range []string{"[DATASET SUMMARY]", "File: sales.csv", "[SCHEMA]", "[RECOMMENDED CHARTS]"} {
		if !strings.Contains(string(b), want) {
			t.Fatalf("markdown missing %q:\n%s", want, b)
		}
	}

	store := snapshot.NewStore(filepath.Join(home, ".vizprofile", "snapshots"))
	list, err := store.List()
	if err != nil {
		t.Fatalf("list snapshots: %v", err)
	}
	if len(list) != 1 || list[0].Rows != 4 || list[0].Source != src {
		t.Fatalf("snapshots = %+v", list)
	}

	runCmd(t, "snapshots", "list")
	runCmd(t, "snapshots", "delete", list[0].ID[:8])
	if list, _ := store.List(); len(list) != 0 {
		t.Fatalf("snapshot not deleted: %+v", list)
	}
	if err := execCmd("snapshots", "show", "deadbeef"); err == nil {
		t.Fatalf("expected error for unknown snapshot")
	}
}

func TestCLI_ProfileRejectsBadFlags(t *testing.T) {
	home := withHome(t)
	src := filepath.Join(home, "sales.csv")
	writeFile(t, src, salesCSV)

	if err := execCmd("profile", src, "--delimiter", "#"); err == nil {
		t.Fatalf("expected error for unsupported delimiter")
	}
	if err := execCmd("profile", src, "-f", "xml"); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
	if err := execCmd("profile", filepath.Join(home, "notes.pdf")); err == nil {
		t.Fatalf("expected error for unsupported file type")
	}
}

func TestCLI_ProfileBatchWritesReports(t *testing.T) {
	home := withHome(t)
	d1 := filepath.Join(home, "d1")
	d2 := filepath.Join(home, "d2")
	for _, d := range []string{d1, d2} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		writeFile(t, filepath.Join(d, "metrics.csv"), "col1,col2\nA,1\nB,2\nC,3\n")
	}
	outDir := filepath.Join(home, "reports")

	runCmd(t, "profile-batch", filepath.Join(home, "d*", "metrics.csv"), "--out-dir", outDir, "--quiet")

	// same basename in two directories: the second report gets a suffix
	for _, name := range []string{"metrics.profile.md", "metrics__2.profile.md"} {
		b, err := os.ReadFile(filepath.Join(outDir, name))
		if err != nil {
			t.Fatalf("missing report %s: %v", name, err)
		}
		if !strings.Contains(string(b), "Rows: 3") {
			t.Fatalf("%s content:\n%s", name, b)
		}
	}
}

func TestCLI_ProfileBatchNoMatches(t *testing.T) {
	home := withHome(t)
	if err := execCmd("profile-batch", filepath.Join(home, "*.csv"), "--quiet"); err == nil {
		t.Fatalf("expected error when nothing matches")
	}
}

func TestCLI_ConfigSetPersists(t *testing.T) {
	home := withHome(t)
	runCmd(t, "config", "set", "histogram_bins", "7")
	runCmd(t, "config", "set", "output_format", "yml")

	b, err := os.ReadFile(filepath.Join(home, ".vizprofile", "config.yaml"))
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if !strings.Contains(string(b), "histogram_bins: 7") || !strings.Contains(string(b), "output_format: yaml") {
		t.Fatalf("config file:\n%s", b)
	}
	if err := execCmd("config", "set", "nope", "1"); err == nil {
		t.Fatalf("expected error for unknown key")
	}
}

func TestCLI_AggregateAndCharts(t *testing.T) {
	home := withHome(t)
	src := filepath.Join(home, "sales.csv")
	writeFile(t, src, salesCSV)

	runCmd(t, "aggregate", "histogram", src, "--column", "sales", "--bins", "3")
	runCmd(t, "aggregate", "rollup", src, "--category", "region", "--value", "sales", "-f", "json")
	runCmd(t, "aggregate", "groups", src, "--column", "region")
	runCmd(t, "aggregate", "sort", src, "--column", "date", "--limit", "2", "-f", "yaml")
	runCmd(t, "charts", "--palette", "green")

	if err := execCmd("aggregate", "histogram", src); err == nil {
		t.Fatalf("expected error without --column")
	}
	if err := execCmd("aggregate", "histogram", src, "--column", "sales", "--bins", "5000"); err == nil {
		t.Fatalf("expected error for too many bins")
	}
}

func TestReportPathAvoidsOverwrite(t *testing.T) {
	dir := t.TempDir()
	first := reportPath(dir, "/data/x.csv", "json")
	if filepath.Base(first) != "x.profile.json" {
		t.Fatalf("first = %s", first)
	}
	writeFile(t, first, "{}")
	if second := reportPath(dir, "/other/x.csv", "json"); filepath.Base(second) != "x__2.profile.json" {
		t.Fatalf("second = %s", second)
	}
}

func TestRenderFallsBackToJSON(t *testing.T) {
	out, err := render([]aggregate.Bucket{{Category: "a", Sum: 1, Count: 1}}, "", "markdown")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"category": "a"`) {
		t.Fatalf("render = %s", out)
	}
}
