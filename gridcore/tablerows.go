package gridcore

import "fmt"

const (
	// TableDataType is the type of table rows and columns wrapping data.
	TableDataType = "data"
	// TableNoDataType is the type of the synthetic row shown for empty data.
	TableNoDataType = "nodata"

	// NoColSpan is the ColSpanStart of rows without column span.
	NoColSpan = -1
)

// Column describes a data column.
type Column struct {
	Name  string
	Title string
	// GetCellValue overrides the cell value accessor
	// of the grid for this column if not nil.
	GetCellValue func(row any) any
}

// DisplayTitle returns Title or Name if Title is empty.
func (c *Column) DisplayTitle() string {
	if c.Title != "" {
		return c.Title
	}
	return c.Name
}

// TableRow is a row of the rendered table.
// Row is the wrapped data row for rows of TableDataType.
type TableRow struct {
	Key   string
	Type  string
	RowID any
	Row   any
	// ColSpanStart is the index of the first column
	// that spans to the end of the row, or NoColSpan.
	ColSpanStart int
}

// TableColumn is a column of the rendered table.
// Column is the wrapped data column for columns of TableDataType.
type TableColumn struct {
	Key    string
	Type   string
	Column *Column
}

// GetRowIDFunc returns the ID of a data row.
type GetRowIDFunc func(row any) any

// GetCellValueFunc returns the value of a data row for a column name.
type GetCellValueFunc func(row any, columnName string) any

// TableRowsWithDataRows wraps every data row in a TableRow of TableDataType.
// If there are no rows, the result is a single TableRow of TableNoDataType
// spanning all columns.
func TableRowsWithDataRows(rows []any, getRowID GetRowIDFunc) []TableRow {
	if len(rows) == 0 {
		return []TableRow{{
			Key:          TableNoDataType,
			Type:         TableNoDataType,
			ColSpanStart: 0,
		}}
	}
	tableRows := make([]TableRow, len(rows))
	for i, row := range rows {
		rowID := getRowID(row)
		tableRows[i] = TableRow{
			Key:          fmt.Sprintf("%s_%v", TableDataType, rowID),
			Type:         TableDataType,
			RowID:        rowID,
			Row:          row,
			ColSpanStart: NoColSpan,
		}
	}
	return tableRows
}

// TableColumnsWithDataRows wraps every column in a TableColumn of TableDataType.
func TableColumnsWithDataRows(columns []Column) []TableColumn {
	tableColumns := make([]TableColumn, len(columns))
	for i := range columns {
		tableColumns[i] = TableColumn{
			Key:    TableDataType + "_" + columns[i].Name,
			Type:   TableDataType,
			Column: &columns[i],
		}
	}
	return tableColumns
}

// ColumnSpan is a TableColumn with the number
// of columns its cell spans.
type ColumnSpan struct {
	TableColumn
	ColSpan int
}

// TableRowColumnsWithColSpan returns the cells of a row.
// If colSpanStart is a valid column index, the cell at that
// column spans all remaining columns and no further cells follow.
func TableRowColumnsWithColSpan(columns []TableColumn, colSpanStart int) []ColumnSpan {
	spans := make([]ColumnSpan, 0, len(columns))
	for i, column := range columns {
		if i == colSpanStart {
			return append(spans, ColumnSpan{TableColumn: column, ColSpan: len(columns) - i})
		}
		spans = append(spans, ColumnSpan{TableColumn: column, ColSpan: 1})
	}
	return spans
}
