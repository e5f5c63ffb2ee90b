// Package grid provides the root plugin of a grid.
//
// The Grid plugin supplies the data every other plugin works on
// through the getters "rows", "columns", "getRowId" and "getCellValue",
// and the "root" template rendering the "header", "body"
// and "footer" placeholders that other plugins fill.
package grid

import (
	"context"
	"reflect"
	"slices"

	"github.com/domonda/go-regrid"
	"github.com/domonda/go-regrid/gridcore"
)

// PluginName is the name of the plugin returned by Grid.Plugin.
const PluginName = "Grid"

// Getter names of the Grid plugin.
const (
	RowsGetter         = "rows"
	ColumnsGetter      = "columns"
	GetRowIDGetter     = "getRowId"
	GetCellValueGetter = "getCellValue"
)

// Template names of the Grid plugin.
const (
	RootTemplate   = "root"
	HeaderTemplate = "header"
	BodyTemplate   = "body"
	FooterTemplate = "footer"
)

// Grid configures the root plugin of a grid.
// The With* methods return modified copies.
type Grid struct {
	rows         []any
	rowType      reflect.Type
	columns      []gridcore.Column
	getRowID     gridcore.GetRowIDFunc
	getCellValue gridcore.GetCellValueFunc
	naming       *StructFieldNaming
}

// New returns a Grid for rows.
// Without columns, the columns are derived from the row type.
func New[R any](rows []R, columns ...gridcore.Column) *Grid {
	return &Grid{
		rows:    rowsToAny(rows),
		rowType: reflect.TypeFor[R](),
		columns: slices.Clone(columns),
		naming:  &DefaultStructFieldNaming,
	}
}

func (g *Grid) clone() *Grid {
	c := new(Grid)
	*c = *g
	return c
}

// WithColumns returns a copy of the grid with the passed columns.
func (g *Grid) WithColumns(columns ...gridcore.Column) *Grid {
	mod := g.clone()
	mod.columns = slices.Clone(columns)
	return mod
}

// WithRowID returns a copy of the grid using getRowID for row IDs
// instead of the row index.
func (g *Grid) WithRowID(getRowID gridcore.GetRowIDFunc) *Grid {
	mod := g.clone()
	mod.getRowID = getRowID
	return mod
}

// WithCellValue returns a copy of the grid using getCellValue
// instead of CellValue for columns without own GetCellValue.
func (g *Grid) WithCellValue(getCellValue gridcore.GetCellValueFunc) *Grid {
	mod := g.clone()
	mod.getCellValue = getCellValue
	return mod
}

// WithStructFieldNaming returns a copy of the grid
// deriving column titles of struct rows with naming.
func (g *Grid) WithStructFieldNaming(naming *StructFieldNaming) *Grid {
	mod := g.clone()
	mod.naming = naming
	return mod
}

// Rows returns the data rows.
func (g *Grid) Rows() []any {
	return g.rows
}

// Columns returns the configured or derived columns.
func (g *Grid) Columns() []gridcore.Column {
	if g.columns != nil {
		return slices.Clone(g.columns)
	}
	return ColumnsOf(g.rowType, g.rows, g.naming)
}

// CellValueFunc returns the function used to get cell values.
// The GetCellValue functions of columns take precedence
// over the grid wide function set with WithCellValue,
// which defaults to CellValue.
func (g *Grid) CellValueFunc(columns []gridcore.Column) gridcore.GetCellValueFunc {
	getCellValue := g.getCellValue
	if getCellValue == nil {
		getCellValue = CellValue
	}
	columnGetters := make(map[string]func(row any) any)
	for _, column := range columns {
		if column.GetCellValue != nil {
			columnGetters[column.Name] = column.GetCellValue
		}
	}
	if len(columnGetters) == 0 {
		return getCellValue
	}
	return func(row any, columnName string) any {
		if get, ok := columnGetters[columnName]; ok {
			return get(row)
		}
		return getCellValue(row, columnName)
	}
}

// Plugin returns the Grid plugin.
func (g *Grid) Plugin() *regrid.Plugin {
	columns := g.Columns()

	getRowID := g.getRowID
	if getRowID == nil {
		getRowID = IndexRowID(g.rows)
	}

	return regrid.NewPlugin(PluginName).
		WithValue(RowsGetter, g.rows).
		WithValue(ColumnsGetter, columns).
		WithValue(GetRowIDGetter, getRowID).
		WithValue(GetCellValueGetter, g.CellValueFunc(columns)).
		WithTemplate(RootTemplate, renderRoot).
		WithTemplate(HeaderTemplate, renderEmpty).
		WithTemplate(BodyTemplate, renderEmpty).
		WithTemplate(FooterTemplate, renderEmpty)
}

func renderRoot(rc *regrid.RenderContext, params regrid.Params) (*regrid.Node, error) {
	var sections []*regrid.Node
	for _, name := range []string{HeaderTemplate, BodyTemplate, FooterTemplate} {
		section, err := rc.Placeholder(name, params)
		if err != nil {
			return nil, err
		}
		sections = append(sections, section)
	}
	return regrid.Fragment(sections...), nil
}

func renderEmpty(*regrid.RenderContext, regrid.Params) (*regrid.Node, error) {
	return nil, nil
}

// Render renders the root template of stack in a new render pass.
func Render(ctx context.Context, stack *regrid.Stack) (*regrid.Node, error) {
	return stack.Render(ctx, RootTemplate, regrid.Params{})
}
