package sqltable

import (
	"context"
	"database/sql"
	"slices"

	"github.com/domonda/go-regrid/grid"
	"github.com/domonda/go-regrid/gridcore"
	"github.com/domonda/go-regrid/internal/ctxlog"
)

var _ Rows = &sql.Rows{}

// Rows is the subset of *sql.Rows used by ScanRows.
type Rows interface {
	Columns() ([]string, error)
	Scan(dest ...any) error
	Close() error
	Next() bool
	Err() error
}

// Queryer is implemented by *sql.DB, *sql.Conn and *sql.Tx.
type Queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Query executes query and returns the result rows as grid.
func Query(ctx context.Context, db Queryer, query string, args ...any) (*grid.Grid, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return ScanRows(ctx, rows)
}

// ScanRows reads all rows and closes them.
// The returned grid has one column per result column
// and []any rows with the scanned values.
// []byte values are copied.
func ScanRows(ctx context.Context, rows Rows) (*grid.Grid, error) {
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	columns := make([]gridcore.Column, len(names))
	index := make(map[string]int, len(names))
	for i, name := range names {
		columns[i] = gridcore.Column{Name: name}
		index[name] = i
	}

	var values [][]any
	for rows.Next() {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		scannedValues := make([]any, len(names))
		valueScanners := make([]any, len(names))
		for i := range valueScanners {
			valueScanners[i] = valueScanner{&scannedValues[i]}
		}
		if err = rows.Scan(valueScanners...); err != nil {
			return nil, err
		}
		values = append(values, scannedValues)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Debug("Scanned SQL rows", "columns", len(names), "rows", len(values))

	return grid.New(values, columns...).
		WithCellValue(func(row any, columnName string) any {
			cells, _ := row.([]any)
			i, ok := index[columnName]
			if !ok || i >= len(cells) {
				return nil
			}
			return cells[i]
		}), nil
}

var _ sql.Scanner = new(valueScanner)

type valueScanner struct {
	dest *any
}

func (s valueScanner) Scan(src any) error {
	if b, ok := src.([]byte); ok {
		src = slices.Clone(b)
	}
	*s.dest = src
	return nil
}
