package regrid

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func textTemplate(text string) RenderFunc {
	return func(rc *RenderContext, params Params) (*Node, error) {
		return Text(text), nil
	}
}

func paramIs(key string) Predicate {
	return func(params Params) bool {
		v, _ := ParamAs[bool](params, key)
		return v
	}
}

func TestPass_Render_SamePluginDeclarationOrder(t *testing.T) {
	stack, err := NewStack(context.Background(), NewPlugin("Table").
		WithPredicateTemplate("tableCell", paramIs("headerStub"), textTemplate("stubHeader")).
		WithTemplate("tableCell", textTemplate("stub")),
	)
	require.NoError(t, err)
	pass := stack.NewPass(context.Background())

	node, err := pass.Render("tableCell", Params{}.With("headerStub", true))
	require.NoError(t, err)
	require.Equal(t, "stubHeader", node.TextContent())

	node, err = pass.Render("tableCell", Params{}.With("headerStub", false))
	require.NoError(t, err)
	require.Equal(t, "stub", node.TextContent())
}

func TestPass_Render_LaterPluginsFirst(t *testing.T) {
	stack, err := NewStack(context.Background(),
		NewPlugin("Lower").WithTemplate("cell", textTemplate("lower")),
		NewPlugin("Upper").WithPredicateTemplate("cell", paramIs("upper"), textTemplate("upper")),
	)
	require.NoError(t, err)
	require.Equal(t, []string{"Upper", "Lower"}, stack.Snapshot().TemplateCandidates("cell"))

	res := stack.NewPass(context.Background()).Resolve("cell", Params{}.With("upper", true))
	require.NoError(t, res.Err)
	require.Equal(t, "Upper", res.Plugin)
	require.Equal(t, []ResolutionState{Unresolved, Scanning, Matched, Rendered}, res.States)

	res = stack.NewPass(context.Background()).Resolve("cell", Params{})
	require.NoError(t, res.Err)
	require.Equal(t, "Lower", res.Plugin)
	require.Equal(t, "lower", res.Node.TextContent())
}

func TestPass_Render_NoMatch(t *testing.T) {
	stack, err := NewStack(context.Background(),
		NewPlugin("A").WithPredicateTemplate("cell", paramIs("never"), textTemplate("x")),
	)
	require.NoError(t, err)

	res := stack.NewPass(context.Background()).Resolve("cell", Params{})
	require.True(t, IsNoTemplateMatch(res.Err))
	require.Equal(t, []ResolutionState{Unresolved, Scanning, NoMatch, FallbackOrError}, res.States)
	require.Equal(t, FallbackOrError, res.State())

	_, err = stack.Render(context.Background(), "unknown", Params{})
	var noMatch *NoTemplateMatchError
	require.ErrorAs(t, err, &noMatch)
	require.Equal(t, "unknown", noMatch.Name)
}

func TestRenderContext_DecoratorChain(t *testing.T) {
	wrap := func(tag string) RenderFunc {
		return func(rc *RenderContext, params Params) (*Node, error) {
			inner, err := rc.Placeholder(rc.TemplateName(), params)
			if err != nil {
				return nil, err
			}
			return Element(tag, nil, inner), nil
		}
	}
	stack, err := NewStack(context.Background(),
		NewPlugin("Base").WithTemplate("cell", func(rc *RenderContext, params Params) (*Node, error) {
			return Text(params.Get("value").(string)), nil
		}),
		NewPlugin("Bold").WithTemplate("cell", wrap("b")),
		NewPlugin("Italic").WithTemplate("cell", func(rc *RenderContext, params Params) (*Node, error) {
			inner, err := rc.Next(params)
			if err != nil {
				return nil, err
			}
			return Element("i", nil, inner), nil
		}),
	)
	require.NoError(t, err)

	node, err := stack.Render(context.Background(), "cell", Params{}.With("value", "x"))
	require.NoError(t, err)
	require.Equal(t, `i(b("x"))`, node.String())
}

func TestRenderContext_NextBelowLowest(t *testing.T) {
	stack, err := NewStack(context.Background(),
		NewPlugin("Only").WithTemplate("cell", func(rc *RenderContext, params Params) (*Node, error) {
			return rc.Next(params)
		}),
	)
	require.NoError(t, err)

	_, err = stack.Render(context.Background(), "cell", Params{})
	require.True(t, IsNoTemplateMatch(err))
}

func TestRenderContext_PlaceholderWith(t *testing.T) {
	cell := func(rc *RenderContext, params Params) (*Node, error) {
		return rc.PlaceholderWith("valueFormatter", params, func(content *Node) (*Node, error) {
			if content == nil {
				content = Text(params.Get("value").(string))
			}
			return Element("td", nil, content), nil
		})
	}

	t.Run("without formatter", func(t *testing.T) {
		stack, err := NewStack(context.Background(), NewPlugin("Table").WithTemplate("tableCell", cell))
		require.NoError(t, err)
		node, err := stack.Render(context.Background(), "tableCell", Params{}.With("value", "raw"))
		require.NoError(t, err)
		require.Equal(t, `td("raw")`, node.String())
	})

	t.Run("with formatter", func(t *testing.T) {
		stack, err := NewStack(context.Background(),
			NewPlugin("DataTypeProvider").WithTemplate("valueFormatter", func(rc *RenderContext, params Params) (*Node, error) {
				return Text("<" + params.Get("value").(string) + ">"), nil
			}),
			NewPlugin("Table", Optional("DataTypeProvider")).WithTemplate("tableCell", cell),
		)
		require.NoError(t, err)
		node, err := stack.Render(context.Background(), "tableCell", Params{}.With("value", "raw"))
		require.NoError(t, err)
		require.Equal(t, `td("<raw>")`, node.String())
	})
}

func TestPass_Render_Cycle(t *testing.T) {
	stack, err := NewStack(context.Background(), NewPlugin("Loop").
		WithTemplate("a", func(rc *RenderContext, params Params) (*Node, error) { return rc.Placeholder("b", params) }).
		WithTemplate("b", func(rc *RenderContext, params Params) (*Node, error) { return rc.Placeholder("a", params) }),
	)
	require.NoError(t, err)

	_, err = stack.Render(context.Background(), "a", Params{})
	var cyclic *CyclicResolutionError
	require.ErrorAs(t, err, &cyclic)
	require.Equal(t, []string{"a", "b", "a"}, cyclic.Chain)
}

func TestPass_Render_PredicatePanic(t *testing.T) {
	stack, err := NewStack(context.Background(), NewPlugin("A").
		WithPredicateTemplate("cell", func(params Params) bool {
			return params.Get("row").(string) == "x"
		}, textTemplate("x")),
	)
	require.NoError(t, err)

	res := stack.NewPass(context.Background()).Resolve("cell", Params{})
	require.Error(t, res.Err)
	require.False(t, IsNoTemplateMatch(res.Err))
	require.Equal(t, FallbackOrError, res.State())
}

func TestRenderContext_ConnectInTemplate(t *testing.T) {
	stack, err := NewStack(context.Background(), NewPlugin("A").
		WithValue("title", "Report").
		WithTemplate("caption", func(rc *RenderContext, params Params) (*Node, error) {
			values, err := rc.Connect("title")
			if err != nil {
				return nil, err
			}
			title, err := ValueAs[string](values, "title")
			if err != nil {
				return nil, err
			}
			return Element("caption", nil, Text(title)), nil
		}),
	)
	require.NoError(t, err)

	node, err := stack.Render(context.Background(), "caption", Params{})
	require.NoError(t, err)
	require.Equal(t, "Report", node.TextContent())
}
