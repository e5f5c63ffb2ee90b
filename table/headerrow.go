package table

import (
	"slices"

	"github.com/domonda/go-regrid"
	"github.com/domonda/go-regrid/gridcore"
)

// HeaderRowPluginName is the name of the plugin returned by HeaderRowPlugin.
const HeaderRowPluginName = "TableHeaderRow"

// HeadingType is the TableRow.Type of the heading row.
const HeadingType = "heading"

// HeadingRow is the table row added by the HeaderRowPlugin.
var HeadingRow = gridcore.TableRow{
	Key:          HeadingType,
	Type:         HeadingType,
	ColSpanStart: gridcore.NoColSpan,
}

// HeadingCellComponent renders the heading cell of a data column.
type HeadingCellComponent func(props StubCellProps) (*regrid.Node, error)

// HeadingCell renders a "th" node with the title of the column.
func HeadingCell(props StubCellProps) (*regrid.Node, error) {
	var title string
	if props.TableColumn.Column != nil {
		title = props.TableColumn.Column.DisplayTitle()
	}
	return regrid.Element("th", ColSpanAttrs(props.ColSpan), regrid.Text(title)), nil
}

// HeaderRowPlugin returns a plugin adding a heading row with the
// column titles to the header rows of the Table plugin.
// Cells of other header columns are rendered as stub header cells.
// A nil headingCell renders with HeadingCell.
func HeaderRowPlugin(headingCell HeadingCellComponent) *regrid.Plugin {
	if headingCell == nil {
		headingCell = HeadingCell
	}
	return regrid.NewPlugin(HeaderRowPluginName, regrid.Requires(PluginName)).
		WithComputed(HeaderRowsGetter, func(getters regrid.Getters) (any, error) {
			headerRows, err := regrid.GetAs[[]gridcore.TableRow](getters, HeaderRowsGetter)
			if err != nil {
				return nil, err
			}
			return append(slices.Clip(headerRows), HeadingRow), nil
		}).
		WithPredicateTemplate(CellTemplate, isHeadingDataCell, func(rc *regrid.RenderContext, params regrid.Params) (*regrid.Node, error) {
			return headingCell(stubCellProps(params))
		}).
		WithPredicateTemplate(RowTemplate, isHeadingRow, func(rc *regrid.RenderContext, params regrid.Params) (*regrid.Node, error) {
			return regrid.Element("tr", nil, ChildrenParam(params)...), nil
		})
}

func isHeadingRow(params regrid.Params) bool {
	return TableRowParam(params).Type == HeadingType
}

func isHeadingDataCell(params regrid.Params) bool {
	return isHeadingRow(params) && TableColumnParam(params).Type == gridcore.TableDataType
}
