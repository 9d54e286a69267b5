package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	cfgpkg "github.com/KaramelBytes/vizprofile-cli/internal/config"
	"github.com/KaramelBytes/vizprofile-cli/internal/profile"
	"github.com/KaramelBytes/vizprofile-cli/internal/snapshot"
	"github.com/KaramelBytes/vizprofile-cli/internal/utils"
)

var (
	// Global flags (wired to config/viper)
	cfgFile string
	debug   bool

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "vizprofile",
	Short: "vizprofile: profile tabular data and recommend charts",
	Long: `vizprofile loads CSV/TSV, JSON, XLSX or SQLite data, infers column types,
summarizes each column, scores data quality, correlates numeric columns and
recommends chart types. Profiles can be saved as snapshots or served over HTTP.`,
	SilenceUsage: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	// Initialize configuration before executing commands
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.vizprofile/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: commands fall back to defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c
	if debug {
		fmt.Fprintf(os.Stderr, "debug: output_format=%s max_rows=%d snapshots_dir=%s\n", cfg.OutputFormat, cfg.MaxRows, cfg.SnapshotsDir)
	}
}

// settings returns the loaded config, or built-in defaults when loading
// failed or never ran.
func settings() *cfgpkg.Global {
	if cfg != nil {
		return cfg
	}
	return &cfgpkg.Global{
		OutputFormat:  cfgpkg.FormatMarkdown,
		MaxRows:       100000,
		Palette:       "default",
		HistogramBins: 10,
		ServerAddr:    ":8001",
		CORSOrigins:   []string{"*"},
		MaxBodyBytes:  32 << 20,
	}
}

func snapshotStore() (*snapshot.Store, error) {
	dir := settings().SnapshotsDir
	if dir == "" {
		d, err := cfgpkg.Dir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(d, "snapshots")
	}
	return snapshot.NewStore(dir), nil
}

// resolveFormat picks the flag value when given, else the configured default.
func resolveFormat(flag string) (string, error) {
	if strings.TrimSpace(flag) != "" {
		return cfgpkg.ParseFormat(flag)
	}
	return cfgpkg.ParseFormat(settings().OutputFormat)
}

// render serializes v in the given format. Markdown is only meaningful for
// profiles; other values fall back to JSON.
func render(v any, name, format string) (string, error) {
	switch format {
	case cfgpkg.FormatJSON:
		b, err := utils.PrettyJSON(v)
		if err != nil {
			return "", err
		}
		return string(b), nil
	case cfgpkg.FormatYAML:
		b, err := yaml.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("marshal yaml: %w", err)
		}
		return string(b), nil
	}
	if p, ok := v.(*profile.Profile); ok {
		return p.Markdown(name), nil
	}
	return render(v, name, cfgpkg.FormatJSON)
}

// parseDelimiter maps the --delimiter flag to a rune; empty means sniff.
func parseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case ",":
		return ',', nil
	case "\t", "tab":
		return '\t', nil
	case ";":
		return ';', nil
	case "|", "pipe":
		return '|', nil
	}
	return 0, fmt.Errorf("unsupported --delimiter: %s", s)
}
