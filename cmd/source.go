package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/vizprofile-cli/internal/parser"
)

// sourceFlags are the loader flags shared by every command that reads a file.
type sourceFlags struct {
	maxRows    int
	delimiter  string
	sheetName  string
	sheetIndex int
	table      string
	query      string
}

func (f *sourceFlags) bind(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.maxRows, "max-rows", 0, "maximum rows to load (0 = use config max_rows)")
	cmd.Flags().StringVar(&f.delimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab' | 'pipe' (sniffed if omitted)")
	cmd.Flags().StringVar(&f.sheetName, "sheet-name", "", "XLSX: sheet name to load")
	cmd.Flags().IntVar(&f.sheetIndex, "sheet-index", 1, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
	cmd.Flags().StringVar(&f.table, "table", "", "SQLite: table to load (default: first table)")
	cmd.Flags().StringVar(&f.query, "query", "", "SQLite: SELECT statement to load instead of a table")
}

func (f *sourceFlags) options() (parser.Options, error) {
	delim, err := parseDelimiter(f.delimiter)
	if err != nil {
		return parser.Options{}, err
	}
	maxRows := f.maxRows
	if maxRows <= 0 {
		maxRows = settings().MaxRows
	}
	return parser.Options{
		MaxRows:    maxRows,
		Delimiter:  delim,
		SheetName:  f.sheetName,
		SheetIndex: f.sheetIndex,
		Table:      f.table,
		Query:      f.query,
	}, nil
}

// load reads path and prints loader warnings to stderr unless quiet.
func (f *sourceFlags) load(ctx context.Context, path string, quiet bool) (*parser.Result, error) {
	opt, err := f.options()
	if err != nil {
		return nil, err
	}
	res, err := parser.LoadFile(ctx, path, opt)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	if !quiet {
		for _, w := range res.Warnings {
			fmt.Fprintf(os.Stderr, "⚠ Warning: %s: %s\n", res.Name, w)
		}
	}
	return res, nil
}
