package texttable

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/domonda/go-regrid"
	"github.com/domonda/go-regrid/grid"
	"github.com/domonda/go-regrid/gridcore"
	"github.com/domonda/go-regrid/table"
)

type person struct {
	Name string
	Age  int
}

func newStack(g *grid.Grid) (*regrid.Stack, error) {
	return regrid.NewStack(context.Background(), g.Plugin(), table.New().Plugin(), table.HeaderRowPlugin(nil))
}

func ExampleWriter() {
	stack, err := newStack(grid.New([]person{{Name: "Alice", Age: 30}}))
	if err != nil {
		panic(err)
	}

	err = NewWriter().
		WithBorder(BorderASCII).
		WithAlignments(AlignLeft, AlignRight).
		WithTitle("People").
		Render(context.Background(), os.Stdout, stack)
	if err != nil {
		panic(err)
	}

	// Output:
	// +-------------+
	// |   People    |
	// +-------+-----+
	// | Name  | Age |
	// +-------+-----+
	// | Alice |  30 |
	// +-------+-----+
}

func TestWriter_RuneWidth(t *testing.T) {
	stack, err := newStack(grid.New([]person{{Name: "Alice", Age: 30}, {Name: "李明", Age: 5}}))
	require.NoError(t, err)

	var b strings.Builder
	err = NewWriter().WithAlignments(AlignLeft, AlignRight).Render(context.Background(), &b, stack)
	require.NoError(t, err)
	require.Equal(t, ""+
		"╭───────┬─────╮\n"+
		"│ Name  │ Age │\n"+
		"├───────┼─────┤\n"+
		"│ Alice │  30 │\n"+
		"│ 李明  │   5 │\n"+
		"╰───────┴─────╯\n",
		b.String(),
	)
}

func TestWriter_WideTitle(t *testing.T) {
	stack, err := newStack(grid.New([]person{{Name: "Al", Age: 3}}))
	require.NoError(t, err)

	var b strings.Builder
	err = NewWriter().WithBorder(BorderASCII).WithTitle("Team members").Render(context.Background(), &b, stack)
	require.NoError(t, err)
	require.Equal(t, ""+
		"+--------------+\n"+
		"| Team members |\n"+
		"+------+-------+\n"+
		"| Name | Age   |\n"+
		"+------+-------+\n"+
		"| Al   | 3     |\n"+
		"+------+-------+\n",
		b.String(),
	)
	lines := strings.Split(strings.TrimSuffix(b.String(), "\n"), "\n")
	for _, line := range lines {
		require.Len(t, line, len(lines[0]))
	}
}

func TestWriter_NoDataColSpan(t *testing.T) {
	stack, err := newStack(grid.New([]person{}, gridcore.Column{Name: "a"}, gridcore.Column{Name: "bb"}))
	require.NoError(t, err)

	var b strings.Builder
	err = NewWriter().WithBorder(BorderNone).Render(context.Background(), &b, stack)
	require.NoError(t, err)
	require.Equal(t, ""+
		"a  bb\n"+
		"-  ----\n"+
		"No data\n",
		b.String(),
	)
}

func TestWriter_MaxWidths(t *testing.T) {
	node := regrid.Element("table", nil,
		regrid.Element("tr", nil,
			regrid.Element("td", nil, regrid.Text("truncated text")),
			regrid.Element("td", nil, regrid.Text("ok")),
		),
	)
	var b strings.Builder
	err := NewWriter().WithBorder(BorderASCII).WithMaxWidths(8).Write(context.Background(), &b, node)
	require.NoError(t, err)
	require.Equal(t, ""+
		"+----------+----+\n"+
		"| trunc... | ok |\n"+
		"+----------+----+\n",
		b.String(),
	)
}

func TestWriter_Errors(t *testing.T) {
	ctx := context.Background()
	var b strings.Builder

	require.ErrorIs(t, NewWriter().Write(ctx, &b, regrid.Text("x")), ErrNoTable)

	badSpan := regrid.Element("table", nil, regrid.Element("tr", nil, regrid.Element("td", map[string]string{"colspan": "x"})))
	require.ErrorContains(t, NewWriter().Write(ctx, &b, badSpan), "invalid colspan")

	require.Error(t, NewWriter().WithBorder(BorderStyle(99)).Write(ctx, &b, regrid.Element("table", nil)))

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	require.ErrorIs(t, NewWriter().Write(canceled, &b, regrid.Element("table", nil)), context.Canceled)
}
