// Package table provides the Table plugin rendering the
// "body" of a grid as a table of rows and cells.
//
// The layout and every kind of cell are rendered by injectable
// Components, the DefaultComponents render plain element nodes.
// Other plugins can extend the table by contributing to the getters
// "tableHeaderRows", "tableBodyRows" and "tableColumns"
// or by overriding the templates "tableRow" and "tableCell".
package table

import (
	"fmt"

	"github.com/domonda/go-regrid"
	"github.com/domonda/go-regrid/grid"
	"github.com/domonda/go-regrid/gridcore"
)

// PluginName is the name of the plugin returned by Table.Plugin.
const PluginName = "Table"

// DataTypeProviderName is the name of the optional
// plugin providing the "valueFormatter" template.
const DataTypeProviderName = "DataTypeProvider"

// Getter names of the Table plugin.
const (
	HeaderRowsGetter = "tableHeaderRows"
	BodyRowsGetter   = "tableBodyRows"
	ColumnsGetter    = "tableColumns"
)

// Template names of the Table plugin.
const (
	TableTemplate          = "table"
	CellTemplate           = "tableCell"
	RowTemplate            = "tableRow"
	ValueFormatterTemplate = "valueFormatter"
)

// NoDataMessage is the message key of the text
// shown in the no-data row.
const NoDataMessage = "noData"

// DefaultMessages of the Table plugin.
var DefaultMessages = gridcore.Messages{
	NoDataMessage: "No data",
}

// Table configures the Table plugin.
// The With* methods return modified copies.
type Table struct {
	components Components
	messages   gridcore.Messages
}

// New returns a Table with the DefaultComponents and DefaultMessages.
func New() *Table {
	return &Table{
		components: DefaultComponents,
		messages:   DefaultMessages,
	}
}

func (t *Table) clone() *Table {
	c := new(Table)
	*c = *t
	return c
}

// WithComponents returns a copy of the table using the non nil
// components of c instead of the current ones.
func (t *Table) WithComponents(c Components) *Table {
	mod := t.clone()
	mod.components = c.orDefaults(t.components)
	return mod
}

// WithMessages returns a copy of the table with messages
// overriding the current messages.
func (t *Table) WithMessages(messages gridcore.Messages) *Table {
	mod := t.clone()
	mod.messages = t.messages.Merge(messages)
	return mod
}

// WithCatalog returns a copy of the table with the
// messages of the catalog for the Table plugin.
func (t *Table) WithCatalog(catalog gridcore.Catalog) *Table {
	return t.WithMessages(catalog.For(PluginName))
}

// Messages returns the messages of the table.
func (t *Table) Messages() gridcore.Messages {
	return t.messages.Merge(nil)
}

// Components returns the components of the table.
func (t *Table) Components() Components {
	return t.components
}

// Plugin returns the Table plugin.
// It reads the getters of the Grid plugin.
func (t *Table) Plugin() *regrid.Plugin {
	r := &renderer{
		components: t.components,
		getMessage: gridcore.MessagesFormatter(t.messages),
	}
	return regrid.NewPlugin(PluginName, regrid.Optional(DataTypeProviderName)).
		WithValue(HeaderRowsGetter, []gridcore.TableRow{}).
		WithComputed(BodyRowsGetter, tableBodyRows).
		WithComputed(ColumnsGetter, tableColumns).
		WithTemplate(grid.BodyTemplate, renderBody).
		WithTemplate(TableTemplate, r.renderTable).
		WithPredicateTemplate(CellTemplate, isHeaderStubTableCell, r.renderStubHeaderCell).
		WithPredicateTemplate(CellTemplate, isStubTableCell, r.renderStubCell).
		WithPredicateTemplate(CellTemplate, isDataTableCell, r.renderDataCell).
		WithPredicateTemplate(CellTemplate, isNoDataTableRow, r.renderNoDataCell).
		WithPredicateTemplate(RowTemplate, isDataTableRow, r.renderDataRow).
		WithPredicateTemplate(RowTemplate, isNoDataTableRow, r.renderNoDataRow)
}

func tableBodyRows(getters regrid.Getters) (any, error) {
	rows, err := regrid.GetAs[[]any](getters, grid.RowsGetter)
	if err != nil {
		return nil, err
	}
	getRowID, err := regrid.GetAs[gridcore.GetRowIDFunc](getters, grid.GetRowIDGetter)
	if err != nil {
		return nil, err
	}
	return gridcore.TableRowsWithDataRows(rows, getRowID), nil
}

func tableColumns(getters regrid.Getters) (any, error) {
	columns, err := regrid.GetAs[[]gridcore.Column](getters, grid.ColumnsGetter)
	if err != nil {
		return nil, err
	}
	return gridcore.TableColumnsWithDataRows(columns), nil
}

func renderBody(rc *regrid.RenderContext, params regrid.Params) (*regrid.Node, error) {
	return rc.Placeholder(TableTemplate, params)
}

type renderer struct {
	components Components
	getMessage gridcore.MessageFormatter
}

func (r *renderer) renderTable(rc *regrid.RenderContext, params regrid.Params) (*regrid.Node, error) {
	values, err := rc.Connect(HeaderRowsGetter, BodyRowsGetter, ColumnsGetter)
	if err != nil {
		return nil, err
	}
	headerRows, err := regrid.ValueAs[[]gridcore.TableRow](values, HeaderRowsGetter)
	if err != nil {
		return nil, err
	}
	bodyRows, err := regrid.ValueAs[[]gridcore.TableRow](values, BodyRowsGetter)
	if err != nil {
		return nil, err
	}
	columns, err := regrid.ValueAs[[]gridcore.TableColumn](values, ColumnsGetter)
	if err != nil {
		return nil, err
	}
	return r.components.Layout(LayoutProps{
		HeaderRows: headerRows,
		BodyRows:   bodyRows,
		Columns:    columns,
		Row: func(tableRow gridcore.TableRow, children []*regrid.Node) (*regrid.Node, error) {
			return rc.Placeholder(RowTemplate, RowParams(tableRow, children))
		},
		Cell: func(tableRow gridcore.TableRow, tableColumn gridcore.TableColumn, colSpan int) (*regrid.Node, error) {
			return rc.Placeholder(CellTemplate, CellParams(tableRow, tableColumn, colSpan, headerRows))
		},
	})
}

func (r *renderer) renderStubHeaderCell(rc *regrid.RenderContext, params regrid.Params) (*regrid.Node, error) {
	return r.components.StubHeaderCell(stubCellProps(params))
}

func (r *renderer) renderStubCell(rc *regrid.RenderContext, params regrid.Params) (*regrid.Node, error) {
	return r.components.StubCell(stubCellProps(params))
}

func stubCellProps(params regrid.Params) StubCellProps {
	return StubCellProps{
		TableRow:    TableRowParam(params),
		TableColumn: TableColumnParam(params),
		ColSpan:     ColSpanParam(params),
	}
}

func (r *renderer) renderDataCell(rc *regrid.RenderContext, params regrid.Params) (*regrid.Node, error) {
	values, err := rc.Connect(grid.GetCellValueGetter)
	if err != nil {
		return nil, err
	}
	getCellValue, err := regrid.ValueAs[gridcore.GetCellValueFunc](values, grid.GetCellValueGetter)
	if err != nil {
		return nil, err
	}
	props := CellProps{
		TableRow:    TableRowParam(params),
		TableColumn: TableColumnParam(params),
		ColSpan:     ColSpanParam(params),
	}
	props.Row = props.TableRow.Row
	props.Column = props.TableColumn.Column
	if props.Column == nil {
		return nil, fmt.Errorf("data column %q without Column", props.TableColumn.Key)
	}
	props.Value = getCellValue(props.Row, props.Column.Name)

	formatterParams := ValueFormatterParams(props.Row, props.Column, props.Value)
	return rc.PlaceholderWith(ValueFormatterTemplate, formatterParams, func(content *regrid.Node) (*regrid.Node, error) {
		props.Content = content
		return r.components.Cell(props)
	})
}

func (r *renderer) renderNoDataCell(rc *regrid.RenderContext, params regrid.Params) (*regrid.Node, error) {
	return r.components.NoDataCell(NoDataCellProps{
		TableRow:    TableRowParam(params),
		TableColumn: TableColumnParam(params),
		ColSpan:     ColSpanParam(params),
		GetMessage:  r.getMessage,
	})
}

func (r *renderer) renderDataRow(rc *regrid.RenderContext, params regrid.Params) (*regrid.Node, error) {
	tableRow := TableRowParam(params)
	return r.components.Row(RowProps{
		TableRow: tableRow,
		Row:      tableRow.Row,
		Children: ChildrenParam(params),
	})
}

func (r *renderer) renderNoDataRow(rc *regrid.RenderContext, params regrid.Params) (*regrid.Node, error) {
	return r.components.NoDataRow(RowProps{
		TableRow: TableRowParam(params),
		Children: ChildrenParam(params),
	})
}
