package grid

import (
	"context"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/domonda/go-regrid"
	"github.com/domonda/go-regrid/gridcore"
)

type Base struct {
	ID int
}

type person struct {
	Base
	FirstName string
	Age       int    `col:"Years"`
	Secret    string `col:"-"`
	internal  string
}

func TestColumnsOf(t *testing.T) {
	tests := []struct {
		name    string
		rowType reflect.Type
		rows    []any
		naming  *StructFieldNaming
		want    []gridcore.Column
	}{
		{
			name:    "struct default naming",
			rowType: reflect.TypeFor[person](),
			naming:  &DefaultStructFieldNaming,
			want: []gridcore.Column{
				{Name: "ID", Title: "ID"},
				{Name: "FirstName", Title: "First Name"},
				{Name: "Age", Title: "Years"},
			},
		},
		{
			name:    "struct pointer nil naming",
			rowType: reflect.TypeFor[*person](),
			want: []gridcore.Column{
				{Name: "ID", Title: "ID"},
				{Name: "FirstName", Title: "FirstName"},
				{Name: "Age", Title: "Age"},
				{Name: "Secret", Title: "Secret"},
			},
		},
		{
			name:    "map",
			rowType: reflect.TypeFor[map[string]any](),
			rows:    []any{map[string]any{"name": "a", "id": 1}},
			want:    []gridcore.Column{{Name: "id"}, {Name: "name"}},
		},
		{
			name:    "map without rows",
			rowType: reflect.TypeFor[map[string]any](),
			want:    nil,
		},
		{
			name:    "scalar",
			rowType: reflect.TypeFor[string](),
			want:    []gridcore.Column{{Name: "value"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ColumnsOf(tt.rowType, tt.rows, tt.naming))
		})
	}
}

func TestCellValue(t *testing.T) {
	p := person{Base: Base{ID: 3}, FirstName: "Ann", Age: 41}
	tests := []struct {
		name   string
		row    any
		column string
		want   any
	}{
		{name: "struct field", row: p, column: "FirstName", want: "Ann"},
		{name: "embedded field", row: p, column: "ID", want: 3},
		{name: "struct pointer", row: &p, column: "Age", want: 41},
		{name: "unexported", row: p, column: "internal", want: nil},
		{name: "nil pointer", row: (*person)(nil), column: "Age", want: nil},
		{name: "map", row: map[string]any{"name": "a"}, column: "name", want: "a"},
		{name: "map missing", row: map[string]any{"name": "a"}, column: "id", want: nil},
		{name: "scalar", row: 5, column: "value", want: 5},
		{name: "nil", row: nil, column: "value", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, CellValue(tt.row, tt.column))
		})
	}
}

func TestIndexRowID(t *testing.T) {
	a, b := &person{FirstName: "a"}, &person{FirstName: "b"}
	getRowID := IndexRowID([]any{a, b})
	require.Equal(t, 1, getRowID(b))
	require.Equal(t, 0, getRowID(a))
	require.Equal(t, -1, getRowID(&person{FirstName: "a"}), "pointer identity")

	maps := []any{map[string]any{"name": "a"}, map[string]any{"name": "a"}}
	getRowID = IndexRowID(maps)
	require.Equal(t, 0, getRowID(maps[0]))
	require.Equal(t, 1, getRowID(maps[1]), "map identity")
	require.Equal(t, -1, getRowID(map[string]any{"name": "a"}))

	sliceRows := []any{[]any{1}, []any{1}}
	getRowID = IndexRowID(sliceRows)
	require.Equal(t, 1, getRowID(sliceRows[1]), "slice identity")

	getRowID = IndexRowID([]any{"x", "x", "y"})
	require.Equal(t, 0, getRowID("x"), "equal values share the first index")
	require.Equal(t, 2, getRowID("y"))

	type tagged struct{ Tags []string }
	getRowID = IndexRowID([]any{tagged{Tags: []string{"a"}}, tagged{Tags: []string{"b"}}})
	require.Equal(t, 1, getRowID(tagged{Tags: []string{"b"}}), "deep equality")
}

func TestGrid_EqualMapRowsGetDistinctKeys(t *testing.T) {
	g := New([]map[string]any{{"name": "a"}, {"name": "a"}})
	tableRows := gridcore.TableRowsWithDataRows(g.Rows(), IndexRowID(g.Rows()))
	require.Len(t, tableRows, 2)
	require.NotEqual(t, tableRows[0].Key, tableRows[1].Key)
}

func TestGrid_Plugin(t *testing.T) {
	ctx := context.Background()
	rows := []person{{Base: Base{ID: 1}, FirstName: "Ann"}, {Base: Base{ID: 2}, FirstName: "Bob"}}
	g := New(rows).
		WithRowID(func(row any) any { return row.(person).ID }).
		WithColumns(
			gridcore.Column{Name: "FirstName"},
			gridcore.Column{Name: "Initial", GetCellValue: func(row any) any { return row.(person).FirstName[:1] }},
		)

	stack, err := regrid.NewStack(ctx, g.Plugin())
	require.NoError(t, err)
	pass := stack.NewPass(ctx)

	columns, err := regrid.GetAs[[]gridcore.Column](pass, ColumnsGetter)
	require.NoError(t, err)
	require.Len(t, columns, 2)

	getRowID, err := regrid.GetAs[gridcore.GetRowIDFunc](pass, GetRowIDGetter)
	require.NoError(t, err)
	require.Equal(t, 2, getRowID(rows[1]))

	getCellValue, err := regrid.GetAs[gridcore.GetCellValueFunc](pass, GetCellValueGetter)
	require.NoError(t, err)
	require.Equal(t, "Bob", getCellValue(rows[1], "FirstName"))
	require.Equal(t, "B", getCellValue(rows[1], "Initial"))

	allRows, err := regrid.GetAs[[]any](pass, RowsGetter)
	require.NoError(t, err)
	require.Len(t, allRows, 2)

	// Without other plugins the root renders nothing visible
	node, err := Render(ctx, stack)
	require.NoError(t, err)
	require.Equal(t, regrid.FragmentNodeType, node.Type)
	require.Empty(t, node.Children)
}

func TestGrid_DerivedColumnsForEmptyRows(t *testing.T) {
	g := New([]person{})
	require.Len(t, g.Columns(), 3)
	require.Empty(t, g.Rows())
}

func TestSpacePascalCase(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{name: "", want: ""},
		{name: "HelloWorld", want: "Hello World"},
		{name: "_Hello_World", want: "Hello World"},
		{name: "helloWorld", want: "hello World"},
		{name: "helloWorld_", want: "hello World"},
		{name: "ThisHasMore_Spaces__ForSure", want: "This Has More Spaces For Sure"},
		{name: "ID", want: "ID"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, SpacePascalCase(tt.name))
		})
	}
}
