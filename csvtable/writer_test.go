package csvtable

import (
	"bytes"
	"context"
	"os"
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

func newStack(t *testing.T, g *grid.Grid) *regrid.Stack {
	t.Helper()
	stack, err := regrid.NewStack(context.Background(), g.Plugin(), table.New().Plugin(), table.HeaderRowPlugin(nil))
	require.NoError(t, err)
	return stack
}

func ExampleWriter() {
	stack, err := regrid.NewStack(context.Background(),
		grid.New([]person{{Name: "Alice", Age: 30}, {Name: "Bob; Jr.", Age: 5}}).Plugin(),
		table.New().Plugin(),
		table.HeaderRowPlugin(nil),
	)
	if err != nil {
		panic(err)
	}

	err = NewWriter().WithNewLine("\n").Render(context.Background(), os.Stdout, stack)
	if err != nil {
		panic(err)
	}

	// Output:
	// Name;Age
	// Alice;30
	// "Bob; Jr.";5
}

func TestWriter_HeaderRowAndNoData(t *testing.T) {
	ctx := context.Background()
	stack := newStack(t, grid.New([]person{}, gridcore.Column{Name: "a"}, gridcore.Column{Name: "bb"}))

	var buf bytes.Buffer
	require.NoError(t, NewWriter().Render(ctx, &buf, stack))
	require.Equal(t, "a;bb\r\nNo data;\r\n", buf.String())

	buf.Reset()
	require.NoError(t, NewWriter().WithHeaderRow(false).WithQuoteEmptyFields(true).Render(ctx, &buf, stack))
	require.Equal(t, "No data;\"\"\r\n", buf.String())
}

func TestWriter_Quoting(t *testing.T) {
	ctx := context.Background()
	stack := newStack(t, grid.New([]person{{Name: `He said "hi"`, Age: 1}}))

	var buf bytes.Buffer
	require.NoError(t, NewWriter().WithHeaderRow(false).Render(ctx, &buf, stack))
	require.Equal(t, "\"He said \"\"hi\"\"\";1\r\n", buf.String())

	buf.Reset()
	require.NoError(t, NewWriter().WithHeaderRow(false).WithQuoteAllFields(true).WithEscapeQuotes(`\"`).Render(ctx, &buf, stack))
	require.Equal(t, "\"He said \\\"hi\\\"\";\"1\"\r\n", buf.String())
}

func TestWriter_Padding(t *testing.T) {
	stack := newStack(t, grid.New([]person{{Name: "Alice", Age: 30}, {Name: "Bo", Age: 5}}))

	var buf bytes.Buffer
	err := NewWriter().
		WithDelimiter(',').
		WithNewLine("\n").
		WithPadding(AlignLeft).
		Render(context.Background(), &buf, stack)
	require.NoError(t, err)
	require.Equal(t, ""+
		"Name ,Age\n"+
		"Alice,30 \n"+
		"Bo   ,5  \n",
		buf.String(),
	)
}

func TestWriter_WithFormat(t *testing.T) {
	stack := newStack(t, grid.New([]person{{Name: "Jörg", Age: 1}}))

	w, err := NewWriter().WithFormat(&Format{Encoding: "ISO 8859-1", Separator: ",", Newline: "\n"})
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, w.Render(context.Background(), &buf, stack))
	require.Equal(t, []byte("Name,Age\nJ\xf6rg,1\n"), buf.Bytes())

	_, err = NewWriter().WithFormat(&Format{Encoding: "UTF-8", Separator: ",;", Newline: "\n"})
	require.Error(t, err)
}

func TestWriter_RoundTrip(t *testing.T) {
	stack := newStack(t, grid.New([]person{{Name: "Alice\nSmith", Age: 30}, {Name: "Bob", Age: 5}}))

	var buf bytes.Buffer
	require.NoError(t, NewWriter().Render(context.Background(), &buf, stack))

	sheet, format, err := ReadDetectFormat("people", buf.Bytes(), nil)
	require.NoError(t, err)
	require.Equal(t, ";", format.Separator)
	require.Equal(t, "\r\n", format.Newline)
	require.Equal(t, []gridcore.Column{{Name: "Name", Title: "Name"}, {Name: "Age", Title: "Age"}}, sheet.Columns)
	require.Equal(t, [][]string{{"Alice\nSmith", "30"}, {"Bob", "5"}}, sheet.Rows)
}

func TestWriter_Errors(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	require.ErrorIs(t, NewWriter().Write(ctx, &buf, regrid.Text("x")), ErrNoTable)
	require.Error(t, NewWriter().Write(ctx, &buf, regrid.Element("table", nil, regrid.Element("div", nil))))
	require.Error(t, NewWriter().Write(ctx, &buf, regrid.Element("table", nil,
		regrid.Element("tr", nil, regrid.Element("td", map[string]string{"colspan": "x"})),
	)))

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	require.ErrorIs(t, NewWriter().Write(canceled, &buf, regrid.Element("table", nil)), context.Canceled)
}
