package sqltable

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/domonda/go-regrid/grid"
	"github.com/domonda/go-regrid/gridcore"
)

var _ driver.Stmt = new(stmt)

type stmt struct {
	columns      []string
	rows         []any
	getCellValue gridcore.GetCellValueFunc
}

func newStmt(grids map[string]*grid.Grid, query string) (*stmt, error) {
	q, err := parseQuery(query)
	if err != nil {
		return nil, err
	}
	g := grids[q.table]
	if g == nil {
		return nil, fmt.Errorf("table %q not found", q.table)
	}
	gridColumns := g.Columns()
	var (
		names   = make([]string, len(gridColumns))
		isName  = make(map[string]bool, len(gridColumns))
		columns = q.columns
	)
	for i, column := range gridColumns {
		names[i] = column.Name
		isName[column.Name] = true
	}
	if len(columns) == 1 && columns[0] == "*" {
		columns = names
	} else {
		for _, column := range columns {
			if !isName[column] {
				return nil, fmt.Errorf("column %q not found in table %q", column, q.table)
			}
		}
	}

	rows := g.Rows()
	rows = rows[min(q.offset, len(rows)):]
	if q.limit > 0 {
		rows = rows[:min(q.limit, len(rows))]
	}
	return &stmt{
		columns:      columns,
		rows:         rows,
		getCellValue: g.CellValueFunc(gridColumns),
	}, nil
}

func (s *stmt) Close() error {
	return nil
}

func (s *stmt) NumInput() int {
	return 0
}

func (s *stmt) Exec(args []driver.Value) (driver.Result, error) {
	return nil, errors.New("Exec not implemented")
}

func (s *stmt) Query(args []driver.Value) (driver.Rows, error) {
	return &driverRows{stmt: s}, nil
}

var _ driver.Rows = new(driverRows)

type driverRows struct {
	stmt     *stmt
	rowIndex int
}

func (r *driverRows) Columns() []string {
	return r.stmt.columns
}

func (r *driverRows) Close() error {
	r.rowIndex = -1
	return nil
}

func (r *driverRows) Next(dest []driver.Value) (err error) {
	if r.rowIndex < 0 || r.rowIndex >= len(r.stmt.rows) {
		return io.EOF
	}
	row := r.stmt.rows[r.rowIndex]
	for col := range dest {
		val := r.stmt.getCellValue(row, r.stmt.columns[col])
		dest[col], err = driver.DefaultParameterConverter.ConvertValue(val)
		if err != nil {
			return fmt.Errorf("column %q: %w", r.stmt.columns[col], err)
		}
	}
	r.rowIndex++
	return nil
}

var queryRegexp = regexp.MustCompile(`^(?i:SELECT)\s+(\*|(?:[a-zA-Z]\w*|"[a-zA-Z][^"]*")(?:\s*,\s*[a-zA-Z]\w*|\s*,\s*"[a-zA-Z][^"]*")*)\s+(?i:FROM)\s+([a-zA-Z][\w.]*|"[a-zA-Z][\w.]*")(?:\s+(?i:LIMIT)\s+(\d+))?(?:\s+(?i:OFFSET)\s+(\d+))?(?:\s*;)*$`)

type query struct {
	columns []string
	table   string
	offset  int
	limit   int
}

func parseQuery(str string) (q query, err error) {
	str = strings.TrimSpace(str)
	m := queryRegexp.FindStringSubmatch(str)
	if m == nil {
		return query{}, fmt.Errorf("invalid query %q", str)
	}
	q.columns = strings.Split(m[1], ",")
	for i := range q.columns {
		q.columns[i] = unquote(strings.TrimSpace(q.columns[i]))
	}
	q.table = unquote(m[2])
	if m[3] != "" {
		q.limit, err = strconv.Atoi(m[3])
		if err != nil {
			return query{}, fmt.Errorf("invalid LIMIT in query %q: %w", str, err)
		}
	}
	if m[4] != "" {
		q.offset, err = strconv.Atoi(m[4])
		if err != nil {
			return query{}, fmt.Errorf("invalid OFFSET in query %q: %w", str, err)
		}
	}
	return q, nil
}

func unquote(str string) string {
	if len(str) >= 2 && str[0] == '"' && str[len(str)-1] == '"' {
		return str[1 : len(str)-1]
	}
	return str
}
