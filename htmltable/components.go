package htmltable

import (
	"maps"

	"github.com/domonda/go-regrid"
	"github.com/domonda/go-regrid/table"
)

// Classes are the CSS classes set by Components.
// Empty classes are not set.
type Classes struct {
	Table          string
	Row            string
	Cell           string
	NoDataRow      string
	NoDataCell     string
	StubCell       string
	StubHeaderCell string
}

// DefaultClasses used by Components.
var DefaultClasses = Classes{
	Table:          "grid-table",
	Row:            "grid-row",
	Cell:           "grid-cell",
	NoDataRow:      "grid-nodata-row",
	NoDataCell:     "grid-nodata",
	StubCell:       "grid-stub",
	StubHeaderCell: "grid-stub-header",
}

// Components returns the table.DefaultComponents
// with the passed CSS classes set on the rendered nodes.
func Components(classes Classes) table.Components {
	d := table.DefaultComponents
	return table.Components{
		Layout: func(props table.LayoutProps) (*regrid.Node, error) {
			return withClass(classes.Table)(d.Layout(props))
		},
		Row: func(props table.RowProps) (*regrid.Node, error) {
			return withClass(classes.Row)(d.Row(props))
		},
		Cell: func(props table.CellProps) (*regrid.Node, error) {
			return withClass(classes.Cell)(d.Cell(props))
		},
		NoDataRow: func(props table.RowProps) (*regrid.Node, error) {
			return withClass(classes.NoDataRow)(d.NoDataRow(props))
		},
		NoDataCell: func(props table.NoDataCellProps) (*regrid.Node, error) {
			return withClass(classes.NoDataCell)(d.NoDataCell(props))
		},
		StubCell: func(props table.StubCellProps) (*regrid.Node, error) {
			return withClass(classes.StubCell)(d.StubCell(props))
		},
		StubHeaderCell: func(props table.StubCellProps) (*regrid.Node, error) {
			return withClass(classes.StubHeaderCell)(d.StubHeaderCell(props))
		},
	}
}

func withClass(class string) func(*regrid.Node, error) (*regrid.Node, error) {
	return func(node *regrid.Node, err error) (*regrid.Node, error) {
		if err != nil || node == nil || class == "" {
			return node, err
		}
		attrs := maps.Clone(node.Attrs)
		if attrs == nil {
			attrs = make(map[string]string, 1)
		}
		attrs["class"] = class
		mod := *node
		mod.Attrs = attrs
		return &mod, nil
	}
}
