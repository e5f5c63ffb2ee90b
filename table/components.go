package table

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/domonda/go-regrid"
	"github.com/domonda/go-regrid/grid"
	"github.com/domonda/go-regrid/gridcore"
)

// RowPlaceholder renders the tableRow placeholder for a row
// with its already rendered cells as children.
type RowPlaceholder func(tableRow gridcore.TableRow, children []*regrid.Node) (*regrid.Node, error)

// CellPlaceholder renders the tableCell placeholder for a cell.
type CellPlaceholder func(tableRow gridcore.TableRow, tableColumn gridcore.TableColumn, colSpan int) (*regrid.Node, error)

// LayoutProps are passed to the Layout component.
type LayoutProps struct {
	HeaderRows []gridcore.TableRow
	BodyRows   []gridcore.TableRow
	Columns    []gridcore.TableColumn

	Row  RowPlaceholder
	Cell CellPlaceholder
}

// RowProps are passed to row components.
type RowProps struct {
	TableRow gridcore.TableRow
	// Row is the data row of data table rows
	Row      any
	Children []*regrid.Node
}

// CellProps are passed to the Cell component of data cells.
type CellProps struct {
	TableRow    gridcore.TableRow
	TableColumn gridcore.TableColumn
	ColSpan     int

	Row    any
	Column *gridcore.Column
	Value  any
	// Content is the value rendered by a valueFormatter template
	// or nil if no valueFormatter applies.
	Content *regrid.Node
}

// NoDataCellProps are passed to the NoDataCell component.
type NoDataCellProps struct {
	TableRow    gridcore.TableRow
	TableColumn gridcore.TableColumn
	ColSpan     int
	GetMessage  gridcore.MessageFormatter
}

// StubCellProps are passed to the StubCell and StubHeaderCell components.
type StubCellProps struct {
	TableRow    gridcore.TableRow
	TableColumn gridcore.TableColumn
	ColSpan     int
}

type (
	LayoutComponent     func(props LayoutProps) (*regrid.Node, error)
	RowComponent        func(props RowProps) (*regrid.Node, error)
	CellComponent       func(props CellProps) (*regrid.Node, error)
	NoDataCellComponent func(props NoDataCellProps) (*regrid.Node, error)
	StubCellComponent   func(props StubCellProps) (*regrid.Node, error)
)

// Components render the parts of a table.
// nil components are replaced by the DefaultComponents.
type Components struct {
	Layout         LayoutComponent
	Row            RowComponent
	Cell           CellComponent
	NoDataRow      RowComponent
	NoDataCell     NoDataCellComponent
	StubCell       StubCellComponent
	StubHeaderCell StubCellComponent
}

// DefaultComponents render a plain table of
// "table", "thead", "tbody", "tr", "th" and "td" nodes.
var DefaultComponents = Components{
	Layout:         Layout,
	Row:            Row,
	Cell:           Cell,
	NoDataRow:      Row,
	NoDataCell:     NoDataCell,
	StubCell:       StubCell,
	StubHeaderCell: StubHeaderCell,
}

// orDefaults returns c with nil components replaced by defaults.
func (c Components) orDefaults(defaults Components) Components {
	if c.Layout == nil {
		c.Layout = defaults.Layout
	}
	if c.Row == nil {
		c.Row = defaults.Row
	}
	if c.Cell == nil {
		c.Cell = defaults.Cell
	}
	if c.NoDataRow == nil {
		c.NoDataRow = defaults.NoDataRow
	}
	if c.NoDataCell == nil {
		c.NoDataCell = defaults.NoDataCell
	}
	if c.StubCell == nil {
		c.StubCell = defaults.StubCell
	}
	if c.StubHeaderCell == nil {
		c.StubHeaderCell = defaults.StubHeaderCell
	}
	return c
}

// Layout renders header rows into a "thead"
// and body rows into a "tbody" node.
func Layout(props LayoutProps) (*regrid.Node, error) {
	head, err := LayoutRows("thead", props.HeaderRows, props)
	if err != nil {
		return nil, err
	}
	body, err := LayoutRows("tbody", props.BodyRows, props)
	if err != nil {
		return nil, err
	}
	return regrid.Element("table", nil, head, body), nil
}

// LayoutRows renders rows with their cells into a section node
// of type section. The result is nil if there are no rows.
func LayoutRows(section string, rows []gridcore.TableRow, props LayoutProps) (*regrid.Node, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	nodes := make([]*regrid.Node, 0, len(rows))
	for _, tableRow := range rows {
		var cells []*regrid.Node
		for _, span := range gridcore.TableRowColumnsWithColSpan(props.Columns, tableRow.ColSpanStart) {
			cell, err := props.Cell(tableRow, span.TableColumn, span.ColSpan)
			if err != nil {
				return nil, err
			}
			if cell != nil {
				cells = append(cells, cell)
			}
		}
		row, err := props.Row(tableRow, cells)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, row)
	}
	return regrid.Element(section, nil, nodes...), nil
}

// Row renders a "tr" node with the cells as children.
func Row(props RowProps) (*regrid.Node, error) {
	return regrid.Element("tr", nil, props.Children...), nil
}

// Cell renders a "td" node with the formatted content
// or the value formatted with fmt.Sprint.
func Cell(props CellProps) (*regrid.Node, error) {
	content := props.Content
	if content == nil {
		content = regrid.Text(FormatValue(props.Value))
	}
	return regrid.Element("td", ColSpanAttrs(props.ColSpan), content), nil
}

// NoDataCell renders a "td" node with the "noData" message.
func NoDataCell(props NoDataCellProps) (*regrid.Node, error) {
	return regrid.Element("td", ColSpanAttrs(props.ColSpan), regrid.Text(props.GetMessage(NoDataMessage))), nil
}

// StubCell renders an empty "td" node.
func StubCell(props StubCellProps) (*regrid.Node, error) {
	return regrid.Element("td", ColSpanAttrs(props.ColSpan)), nil
}

// StubHeaderCell renders an empty "th" node.
func StubHeaderCell(props StubCellProps) (*regrid.Node, error) {
	return regrid.Element("th", ColSpanAttrs(props.ColSpan)), nil
}

// ColSpanAttrs returns a "colspan" attribute for column spans above 1.
func ColSpanAttrs(colSpan int) map[string]string {
	if colSpan <= 1 {
		return nil
	}
	return map[string]string{"colspan": strconv.Itoa(colSpan)}
}

// FormatValue formats a cell value without valueFormatter.
// nil values and nil pointers result in an empty string.
func FormatValue(value any) string {
	if grid.ValueIsNil(reflect.ValueOf(value)) {
		return ""
	}
	return fmt.Sprint(value)
}
