package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by output_format.
const (
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
	FormatYAML     = "yaml"
)

// Global configuration structure.
type Global struct {
	OutputFormat  string   `mapstructure:"output_format" yaml:"output_format"`
	MaxRows       int      `mapstructure:"max_rows" yaml:"max_rows"`
	Palette       string   `mapstructure:"palette" yaml:"palette"`
	HistogramBins int      `mapstructure:"histogram_bins" yaml:"histogram_bins"`
	SnapshotsDir  string   `mapstructure:"snapshots_dir" yaml:"snapshots_dir"`
	ServerAddr    string   `mapstructure:"server_addr" yaml:"server_addr"`
	CORSOrigins   []string `mapstructure:"cors_origins" yaml:"cors_origins"`
	// MaxBodyBytes caps HTTP request bodies.
	MaxBodyBytes int64 `mapstructure:"max_body_bytes" yaml:"max_body_bytes"`
}

// Keys lists the settable keys in display order.
var Keys = []string{
	"output_format", "max_rows", "palette", "histogram_bins",
	"snapshots_dir", "server_addr", "cors_origins", "max_body_bytes",
}

// Dir is the per-user configuration directory, ~/.vizprofile.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".vizprofile"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.vizprofile/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := Dir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from .env, file, env, and defaults.
// Precedence: flags (applied by callers) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	v := viper.New()
	v.SetEnvPrefix("VIZPROFILE")
	v.AutomaticEnv()

	v.SetDefault("output_format", FormatMarkdown)
	v.SetDefault("max_rows", 100000)
	v.SetDefault("palette", "default")
	v.SetDefault("histogram_bins", 10)
	v.SetDefault("server_addr", ":8001")
	v.SetDefault("cors_origins", []string{"*"})
	v.SetDefault("max_body_bytes", 32<<20)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.SnapshotsDir == "" {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		c.SnapshotsDir = filepath.Join(dir, "snapshots")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks enumerated and numeric settings.
func (c *Global) Validate() error {
	if _, err := ParseFormat(c.OutputFormat); err != nil {
		return err
	}
	if c.MaxRows < 0 {
		return fmt.Errorf("invalid max_rows: %d", c.MaxRows)
	}
	if c.HistogramBins < 0 {
		return fmt.Errorf("invalid histogram_bins: %d", c.HistogramBins)
	}
	return nil
}

// ParseFormat normalizes an output format name.
func ParseFormat(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "md", FormatMarkdown:
		return FormatMarkdown, nil
	case FormatJSON:
		return FormatJSON, nil
	case "yml", FormatYAML:
		return FormatYAML, nil
	}
	return "", fmt.Errorf("invalid output_format: %s (use markdown, json or yaml)", s)
}

// Set assigns one key from its string form.
func (c *Global) Set(key, val string) error {
	switch key {
	case "output_format":
		f, err := ParseFormat(val)
		if err != nil {
			return err
		}
		c.OutputFormat = f
	case "max_rows":
		i, err := strconv.Atoi(val)
		if err != nil || i < 0 {
			return fmt.Errorf("invalid int for max_rows: %v", val)
		}
		c.MaxRows = i
	case "palette":
		c.Palette = val
	case "histogram_bins":
		i, err := strconv.Atoi(val)
		if err != nil || i < 0 {
			return fmt.Errorf("invalid int for histogram_bins: %v", val)
		}
		c.HistogramBins = i
	case "snapshots_dir":
		c.SnapshotsDir = val
	case "server_addr":
		c.ServerAddr = val
	case "cors_origins":
		var origins []string
		for _, o := range strings.Split(val, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.CORSOrigins = origins
	case "max_body_bytes":
		n, err := strconv.ParseInt(val, 10, 64)
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid int for max_body_bytes: %v", val)
		}
		c.MaxBodyBytes = n
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return nil
}
