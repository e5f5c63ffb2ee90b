package gridcore

import "slices"

// IsDataTableRow returns true for rows wrapping a data row.
func IsDataTableRow(tableRow TableRow) bool {
	return tableRow.Type == TableDataType
}

// IsNoDataTableRow returns true for the synthetic row shown for empty data.
func IsNoDataTableRow(tableRow TableRow) bool {
	return tableRow.Type == TableNoDataType
}

// IsDataTableCell returns true for cells of a data row in a data column.
func IsDataTableCell(tableRow TableRow, tableColumn TableColumn) bool {
	return tableRow.Type == TableDataType && tableColumn.Type == TableDataType
}

// IsHeaderStubTableCell returns true for cells of header rows
// that no other plugin renders a header cell for.
func IsHeaderStubTableCell(tableRow TableRow, headerRows []TableRow) bool {
	return slices.ContainsFunc(headerRows, func(r TableRow) bool { return r.Key == tableRow.Key })
}

// IsStubTableCell returns true for cells
// that are neither data cells nor part of a no-data row.
func IsStubTableCell(tableRow TableRow, tableColumn TableColumn) bool {
	return !IsDataTableCell(tableRow, tableColumn) && !IsNoDataTableRow(tableRow)
}
