// Package sqltable connects grids with database/sql.
//
// ScanRows and Query read the result of any SQL query as a grid.
// NewGridsDB serves grids as read only tables of an in-process
// database that understands simple SELECT statements.
package sqltable

import (
	"context"
	"database/sql"
	"database/sql/driver"

	"github.com/domonda/go-regrid/grid"
)

// NewGridsDB returns a *sql.DB serving grids as tables
// named by the map keys.
//
// Supported queries have the form
//
//	SELECT * | column[, ...] FROM table [LIMIT n] [OFFSET m]
func NewGridsDB(grids map[string]*grid.Grid) *sql.DB {
	return sql.OpenDB(database{grids: grids})
}

// NewGridDB returns a *sql.DB serving a single grid as table.
func NewGridDB(tableName string, g *grid.Grid) *sql.DB {
	return NewGridsDB(map[string]*grid.Grid{
		tableName: g,
	})
}

var (
	_ driver.Connector = database{}
	_ driver.Conn      = database{}
)

type database struct {
	grids map[string]*grid.Grid
}

func (c database) Connect(context.Context) (driver.Conn, error) {
	return c, nil
}

func (c database) Driver() driver.Driver {
	return c
}

func (c database) Open(string) (driver.Conn, error) {
	return c, nil
}

func (c database) Prepare(query string) (driver.Stmt, error) {
	return newStmt(c.grids, query)
}

func (database) Close() error {
	return nil
}

func (c database) Begin() (driver.Tx, error) {
	return c, nil
}

func (database) Commit() error {
	return nil
}

func (database) Rollback() error {
	return nil
}
