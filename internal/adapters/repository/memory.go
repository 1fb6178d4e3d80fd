package repository

import (
	"context"
	"fmt"
)

// StaticSource serves rows held in memory, keyed by table name.
type StaticSource map[string][]Row

func (s StaticSource) Rows(ctx context.Context, table string) ([]Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, ok := s[table]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedTable, table)
	}
	return rows, nil
}

func (s StaticSource) Close() error { return nil }
