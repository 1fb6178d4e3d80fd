package repository

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	_ "modernc.org/sqlite"             // registers the "sqlite" driver
)

const pingTimeout = 10 * time.Second

// sqlSource reads catalog tables from a database/sql connection.
type sqlSource struct {
	db *sql.DB
}

func openSQLite(ctx context.Context, path string) (Source, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	return ping(ctx, db, "sqlite")
}

func openPostgres(ctx context.Context, dsn string) (Source, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetConnMaxLifetime(5 * time.Minute)
	return ping(ctx, db, "postgres")
}

func ping(ctx context.Context, db *sql.DB, driver string) (Source, error) {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	return &sqlSource{db: db}, nil
}

func (s *sqlSource) Rows(ctx context.Context, table string) ([]Row, error) {
	if table != TableMovies && table != TableTracks {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedTable, table)
	}

	rs, err := s.db.QueryContext(ctx, "SELECT * FROM "+table)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer func() { _ = rs.Close() }()

	names, err := rs.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns %s: %w", table, err)
	}
	cols := make([]string, len(names))
	for i, n := range names {
		cols[i] = strings.ToLower(n)
	}

	vals := make([]sql.NullString, len(cols))
	dest := make([]any, len(cols))
	for i := range vals {
		dest[i] = &vals[i]
	}

	var rows []Row
	for rs.Next() {
		if err := rs.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		row := make(Row, len(cols))
		for i, c := range cols {
			row[c] = vals[i].String
		}
		rows = append(rows, row)
	}
	if err := rs.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", table, err)
	}
	return rows, nil
}

func (s *sqlSource) Close() error {
	return s.db.Close()
}
