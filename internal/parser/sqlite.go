package parser

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/KaramelBytes/vizprofile-cli/internal/table"

	_ "modernc.org/sqlite"
)

type sqliteLoader struct{}

func (sqliteLoader) CanLoad(filename string) bool {
	return hasExt(filename, ".sqlite", ".sqlite3", ".db")
}

func (sqliteLoader) Extensions() []string { return []string{".sqlite", ".sqlite3", ".db"} }

func (sqliteLoader) Load(ctx context.Context, path string, opt Options) (*Result, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	defer db.Close()
	return ReadSQL(ctx, db, opt)
}

// ErrNoTables is returned when a database has no user table to read.
var ErrNoTables = errors.New("database has no tables")

// ReadSQL runs opt.Query, or selects every row of opt.Table (default: the
// first user table in creation order), and returns one record per row with
// columns in result order.
func ReadSQL(ctx context.Context, db *sql.DB, opt Options) (*Result, error) {
	query := opt.Query
	if query == "" {
		name := opt.Table
		if name == "" {
			err := db.QueryRowContext(ctx,
				`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY rowid LIMIT 1`).Scan(&name)
			if errors.Is(err, sql.ErrNoRows) {
				return nil, ErrNoTables
			}
			if err != nil {
				return nil, fmt.Errorf("list tables: %w", err)
			}
		}
		query = fmt.Sprintf(`SELECT * FROM "%s"`, strings.ReplaceAll(name, `"`, `""`))
	}
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()
	names, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns: %w", err)
	}
	cols := cleanHeaders(names)
	res := &Result{Table: table.Table{}}
	for rows.Next() {
		res.TotalRows++
		if opt.MaxRows > 0 && len(res.Table) >= opt.MaxRows {
			continue
		}
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan row %d: %w", res.TotalRows, err)
		}
		for i, v := range vals {
			vals[i] = sqlValue(v)
		}
		res.Table = append(res.Table, table.NewRecord(cols, vals))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return res, nil
}

// sqlValue maps driver values onto the kinds a table.Record holds.
func sqlValue(v any) any {
	switch x := v.(type) {
	case []byte:
		return string(x)
	case time.Time:
		return x.UTC().Format(time.RFC3339)
	case int:
		return int64(x)
	case float32:
		return float64(x)
	}
	return v
}
