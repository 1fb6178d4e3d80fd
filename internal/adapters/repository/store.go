// Package repository loads the movie and track catalog from CSV files or SQL
// databases and serves read-only lookups over it.
package repository

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// Table names read from SQL sources.
const (
	TableMovies = "movies"
	TableTracks = "tracks"
)

// Row is one source record keyed by lowercased column name.
type Row map[string]string

// Source yields the raw rows of a catalog table.
type Source interface {
	// Rows returns every row of table in source order. File-backed
	// sources hold a single table and ignore the name.
	Rows(ctx context.Context, table string) ([]Row, error)
	Close() error
}

// OpenSource picks a Source implementation from dsn:
//   - postgres:// or postgresql://: PostgreSQL
//   - sqlite://path, or a path ending in .db, .sqlite or .sqlite3: SQLite
//   - anything else: a CSV file
func OpenSource(ctx context.Context, dsn string) (Source, error) {
	switch {
	case dsn == "":
		return nil, fmt.Errorf("%w: empty source", ErrLoad)
	case strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://"):
		return openPostgres(ctx, dsn)
	case strings.HasPrefix(dsn, "sqlite://"):
		return openSQLite(ctx, strings.TrimPrefix(dsn, "sqlite://"))
	case hasSQLiteExt(dsn):
		return openSQLite(ctx, dsn)
	}

	if _, err := os.Stat(dsn); err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	return &csvSource{path: dsn}, nil
}

func hasSQLiteExt(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasSuffix(lower, ".db") ||
		strings.HasSuffix(lower, ".sqlite") ||
		strings.HasSuffix(lower, ".sqlite3")
}
