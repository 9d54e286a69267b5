// Package parser loads tabular files into a table.Table.
package parser

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/KaramelBytes/vizprofile-cli/internal/table"
)

// Options controls how a source is read.
type Options struct {
	// MaxRows limits rows loaded; 0 means unlimited.
	MaxRows int
	// Delimiter for CSV. If 0, sniffed from the header line.
	Delimiter rune
	// SheetName selects an XLSX sheet by name (case-insensitive).
	SheetName string
	// SheetIndex selects an XLSX sheet by 1-based index when SheetName is empty.
	SheetIndex int
	// Table names the SQLite table to read; empty means the first one.
	Table string
	// Query overrides Table with an arbitrary SQLite SELECT.
	Query string
}

// Result is a loaded table plus what the loader had to skip.
type Result struct {
	Name      string
	Table     table.Table
	TotalRows int
	Warnings  []string
}

// Loader reads one family of file formats.
type Loader interface {
	CanLoad(filename string) bool
	Load(ctx context.Context, path string, opt Options) (*Result, error)
}

var registry []Loader

// Register adds a loader implementation to the registry.
func Register(l Loader) {
	registry = append(registry, l)
}

// ErrUnsupported indicates a format no loader accepts.
var ErrUnsupported = errors.New("unsupported data format")

// LoadFile selects a loader based on filename and reads the file.
func LoadFile(ctx context.Context, path string, opt Options) (*Result, error) {
	for _, l := range registry {
		if l.CanLoad(path) {
			res, err := l.Load(ctx, path, opt)
			if err != nil {
				return nil, err
			}
			res.Name = filepath.Base(path)
			if opt.MaxRows > 0 && res.TotalRows > opt.MaxRows {
				res.Warnings = append(res.Warnings, fmt.Sprintf("processed only %d/%d rows due to MaxRows", opt.MaxRows, res.TotalRows))
			}
			res.Table = dropBlankRows(res.Table)
			return res, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, filepath.Ext(path))
}

// SupportedExtensions lists extensions accepted by the registered loaders.
func SupportedExtensions() []string {
	var out []string
	for _, l := range registry {
		if e, ok := l.(interface{ Extensions() []string }); ok {
			out = append(out, e.Extensions()...)
		}
	}
	return out
}

func init() {
	Register(csvLoader{})
	Register(jsonLoader{})
	Register(xlsxLoader{})
	Register(sqliteLoader{})
}

func hasExt(filename string, exts ...string) bool {
	name := strings.ToLower(filename)
	for _, e := range exts {
		if strings.HasSuffix(name, e) {
			return true
		}
	}
	return false
}

var spaceRun = regexp.MustCompile(`\s+`)

// cleanHeaders trims a column name and collapses inner whitespace. Blank or
// repeated names get a positional or numeric suffix so every key is unique.
func cleanHeaders(raw []string) []string {
	out := make([]string, len(raw))
	seen := map[string]int{}
	for i, h := range raw {
		h = spaceRun.ReplaceAllString(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")), " ")
		if h == "" {
			h = fmt.Sprintf("column_%d", i+1)
		}
		if n := seen[h]; n > 0 {
			seen[h]++
			h = fmt.Sprintf("%s_%d", h, n+1)
		}
		seen[h]++
		out[i] = h
	}
	return out
}

// dropBlankRows removes records whose every value is missing.
func dropBlankRows(t table.Table) table.Table {
	out := t[:0:0]
	for _, r := range t {
		blank := true
		for _, k := range r.Keys() {
			if v, _ := r.Get(k); !table.IsMissing(v) {
				blank = false
				break
			}
		}
		if !blank {
			out = append(out, r)
		}
	}
	return out
}

// rowsFromStrings zips header and string rows into records; short rows are
// padded with empty cells and extra fields are dropped.
func rowsFromStrings(header []string, rows [][]string) table.Table {
	out := make(table.Table, 0, len(rows))
	for _, row := range rows {
		vals := make([]any, len(header))
		for i := range header {
			if i < len(row) {
				vals[i] = row[i]
			} else {
				vals[i] = ""
			}
		}
		out = append(out, table.NewRecord(header, vals))
	}
	return out
}
