package table

import (
	"github.com/domonda/go-regrid"
	"github.com/domonda/go-regrid/gridcore"
)

// Render param keys of the tableRow and tableCell templates.
const (
	ParamTableRow    = "tableRow"
	ParamTableColumn = "tableColumn"
	ParamColSpan     = "colSpan"
	ParamChildren    = "children"
	ParamHeaderRows  = "tableHeaderRows"
)

// Render param keys of the valueFormatter template.
const (
	ParamRow    = "row"
	ParamColumn = "column"
	ParamValue  = "value"
)

// CellParams returns the params of a tableCell placeholder.
func CellParams(tableRow gridcore.TableRow, tableColumn gridcore.TableColumn, colSpan int, headerRows []gridcore.TableRow) regrid.Params {
	return regrid.NewParams(map[string]any{
		ParamTableRow:    tableRow,
		ParamTableColumn: tableColumn,
		ParamColSpan:     colSpan,
		ParamHeaderRows:  headerRows,
	})
}

// RowParams returns the params of a tableRow placeholder.
func RowParams(tableRow gridcore.TableRow, children []*regrid.Node) regrid.Params {
	return regrid.NewParams(map[string]any{
		ParamTableRow: tableRow,
		ParamChildren: children,
	})
}

// ValueFormatterParams returns the params of a valueFormatter placeholder.
func ValueFormatterParams(row any, column *gridcore.Column, value any) regrid.Params {
	return regrid.NewParams(map[string]any{
		ParamRow:    row,
		ParamColumn: column,
		ParamValue:  value,
	})
}

// TableRowParam returns the table row of params
// or a zero TableRow if there is none.
func TableRowParam(params regrid.Params) gridcore.TableRow {
	tableRow, _ := regrid.ParamAs[gridcore.TableRow](params, ParamTableRow)
	return tableRow
}

// TableColumnParam returns the table column of params
// or a zero TableColumn if there is none.
func TableColumnParam(params regrid.Params) gridcore.TableColumn {
	tableColumn, _ := regrid.ParamAs[gridcore.TableColumn](params, ParamTableColumn)
	return tableColumn
}

// ColSpanParam returns the column span of params, at least 1.
func ColSpanParam(params regrid.Params) int {
	colSpan, _ := regrid.ParamAs[int](params, ParamColSpan)
	return max(colSpan, 1)
}

// ChildrenParam returns the rendered children of params.
func ChildrenParam(params regrid.Params) []*regrid.Node {
	children, _ := regrid.ParamAs[[]*regrid.Node](params, ParamChildren)
	return children
}

// HeaderRowsParam returns the header rows of params.
func HeaderRowsParam(params regrid.Params) []gridcore.TableRow {
	headerRows, _ := regrid.ParamAs[[]gridcore.TableRow](params, ParamHeaderRows)
	return headerRows
}

// ColumnParam returns the column of valueFormatter params.
func ColumnParam(params regrid.Params) *gridcore.Column {
	column, _ := regrid.ParamAs[*gridcore.Column](params, ParamColumn)
	return column
}

// Predicates of the tableCell and tableRow templates.
func isDataTableCell(params regrid.Params) bool {
	return gridcore.IsDataTableCell(TableRowParam(params), TableColumnParam(params))
}

func isStubTableCell(params regrid.Params) bool {
	return gridcore.IsStubTableCell(TableRowParam(params), TableColumnParam(params))
}

func isHeaderStubTableCell(params regrid.Params) bool {
	return isStubTableCell(params) && gridcore.IsHeaderStubTableCell(TableRowParam(params), HeaderRowsParam(params))
}

func isNoDataTableRow(params regrid.Params) bool {
	return gridcore.IsNoDataTableRow(TableRowParam(params))
}

func isDataTableRow(params regrid.Params) bool {
	return gridcore.IsDataTableRow(TableRowParam(params))
}
