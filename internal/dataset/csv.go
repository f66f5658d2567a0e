package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/marcboeker/go-duckdb/v2"
)

// Row is one record of a tabular dataset, keyed by normalized column name
// (trimmed, lowercased).
type Row map[string]any

// ReadCSV loads a CSV file through DuckDB's read_csv_auto and returns all
// rows keyed by normalized column name. The caller owns interpretation of
// the values; use String and Float to coerce.
func ReadCSV(ctx context.Context, path string) ([]Row, error) {
	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("failed to open duckdb: %w", err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT * FROM read_csv_auto(?, header=true)`, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read csv %s: %w", path, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}
	normalized := make([]string, len(cols))
	for i, c := range cols {
		normalized[i] = strings.ToLower(strings.TrimSpace(c))
	}

	var out []Row
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		row := make(Row, len(cols))
		for i, name := range normalized {
			row[name] = values[i]
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return out, nil
}

// String returns the first non-empty string value among the given keys.
func String(r Row, keys ...string) string {
	for _, key := range keys {
		v, ok := r[key]
		if !ok || v == nil {
			continue
		}
		s := strings.TrimSpace(fmt.Sprintf("%v", v))
		if s != "" {
			return s
		}
	}
	return ""
}

// Float returns the first parseable numeric value among the given keys,
// or 0 when none parses. Missing macro columns default to zero.
func Float(r Row, keys ...string) float64 {
	for _, key := range keys {
		v, ok := r[key]
		if !ok || v == nil {
			continue
		}
		switch n := v.(type) {
		case float64:
			return n
		case float32:
			return float64(n)
		case int64:
			return float64(n)
		case int32:
			return float64(n)
		case int:
			return float64(n)
		default:
			if f, err := strconv.ParseFloat(strings.TrimSpace(fmt.Sprintf("%v", v)), 64); err == nil {
				return f
			}
		}
	}
	return 0
}
