package datatype

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/domonda/go-regrid"
	"github.com/domonda/go-regrid/grid"
	"github.com/domonda/go-regrid/gridcore"
	"github.com/domonda/go-regrid/table"
)

type invoice struct {
	Number  string     `col:"number"`
	Paid    bool       `col:"paid"`
	DueDate *time.Time `col:"due"`
}

func render(t *testing.T, plugins ...*regrid.Plugin) *regrid.Node {
	t.Helper()
	ctx := context.Background()
	stack, err := regrid.NewStack(ctx, plugins...)
	require.NoError(t, err)
	node, err := grid.Render(ctx, stack)
	require.NoError(t, err)
	return node
}

func TestProvider(t *testing.T) {
	due := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	rows := []invoice{
		{Number: "A-1", Paid: true, DueDate: &due},
		{Number: "A-2"},
	}
	gridPlugin := grid.New(rows,
		gridcore.Column{Name: "Number"},
		gridcore.Column{Name: "Paid"},
		gridcore.Column{Name: "DueDate"},
	).Plugin()

	t.Run("without provider", func(t *testing.T) {
		node := render(t, gridPlugin, table.New().Plugin())
		require.Equal(t,
			`#fragment(table(tbody(tr(td("A-1"), td("true"), td("`+(&due).String()+`")), tr(td("A-2"), td("false"), td("")))))`,
			node.String(),
		)
	})

	t.Run("for selected columns", func(t *testing.T) {
		provider := New("Paid", "DueDate").
			WithFormatter(DefaultTypeFormatter.WithKindFormatter(reflect.Bool, BoolFormatter{True: "yes", False: "no"})).
			WithNilText("-")
		node := render(t, gridPlugin, provider.Plugin(), table.New().Plugin())
		require.Equal(t,
			`#fragment(table(tbody(tr(td("A-1"), td("yes"), td("2024-03-01T00:00:00Z")), tr(td("A-2"), td("no"), td("-")))))`,
			node.String(),
		)
	})

	t.Run("unsupported falls through", func(t *testing.T) {
		lower := New("Number").WithName("NumberProvider").WithFormatter(PrintfFormatter("#%s"))
		upper := New("Number", "Paid").WithFormatter(NewTypeFormatter().
			WithKindFormatter(reflect.Bool, PrintfRawFormatter("<i>%t</i>")))
		node := render(t, gridPlugin, lower.Plugin(), upper.Plugin(), table.New().Plugin())

		cells := node.Find("td")
		require.Equal(t, `td("#A-1")`, cells[0].String(), "lower provider")
		require.Equal(t, `td(#raw("<i>true</i>"))`, cells[1].String(), "raw text")
		require.Equal(t, `td("2024-03-01 00:00:00 +0000 UTC")`, cells[2].String(), "no provider")
	})
}

func TestProvider_FormatError(t *testing.T) {
	boom := errors.New("boom")
	failing := ValueFormatterFunc(func(ctx context.Context, val reflect.Value) (string, bool, error) {
		return "", false, boom
	})
	ctx := context.Background()
	stack, err := regrid.NewStack(ctx,
		grid.New([]invoice{{Number: "A-1"}}, gridcore.Column{Name: "Number"}).Plugin(),
		New("Number").WithFormatter(failing).Plugin(),
		table.New().Plugin(),
	)
	require.NoError(t, err)
	_, err = grid.Render(ctx, stack)
	require.ErrorIs(t, err, boom)
}

func TestProvider_Builders(t *testing.T) {
	p := New("a")
	mod := p.WithFor("b", "c").WithName("Other")
	require.Equal(t, []string{"a"}, p.For())
	require.True(t, mod.IsFor("c"))
	require.False(t, mod.IsFor("a"))
	require.Equal(t, "Other", mod.Plugin().Name)
	require.Equal(t, PluginName, p.Plugin().Name)
}
