package regrid

import (
	"context"
	"errors"
	"slices"

	"github.com/domonda/go-regrid/internal/ctxlog"
)

// ResolutionState is a state of a placeholder resolution.
type ResolutionState int

const (
	Unresolved ResolutionState = iota
	Scanning
	Matched
	Rendered
	NoMatch
	FallbackOrError
)

func (s ResolutionState) String() string {
	switch s {
	case Unresolved:
		return "Unresolved"
	case Scanning:
		return "Scanning"
	case Matched:
		return "Matched"
	case Rendered:
		return "Rendered"
	case NoMatch:
		return "NoMatch"
	case FallbackOrError:
		return "FallbackOrError"
	default:
		return "Unknown"
	}
}

// Resolution is the outcome of resolving a placeholder.
//
// A resolution either goes through
// Unresolved, Scanning, Matched, Rendered or through
// Unresolved, Scanning, NoMatch, FallbackOrError.
// Errors of predicates or render functions
// move directly to FallbackOrError.
type Resolution struct {
	Name string
	// Plugin that contributed the matched template
	Plugin string
	// States passed through, the last one is the current state
	States []ResolutionState
	Node   *Node
	Err    error
}

// State returns the current state.
func (r *Resolution) State() ResolutionState {
	if len(r.States) == 0 {
		return Unresolved
	}
	return r.States[len(r.States)-1]
}

func (r *Resolution) to(state ResolutionState) {
	r.States = append(r.States, state)
}

func (r *Resolution) fail(err error) *Resolution {
	r.Err = err
	r.to(FallbackOrError)
	return r
}

// Render resolves the placeholder name with params
// to the topmost applicable template and renders it.
func (p *Pass) Render(name string, params Params) (*Node, error) {
	res := p.Resolve(name, params)
	return res.Node, res.Err
}

// Resolve is like Render but returns the full Resolution.
func (p *Pass) Resolve(name string, params Params) *Resolution {
	return p.resolveTemplate(name, 0, params)
}

func (p *Pass) resolveTemplate(name string, start int, params Params) *Resolution {
	res := &Resolution{Name: name, States: []ResolutionState{Unresolved}}
	if err := p.ctx.Err(); err != nil {
		return res.fail(err)
	}

	res.to(Scanning)
	index, err := p.snapshot.matchTemplate(name, start, params)
	if err != nil {
		if IsNoTemplateMatch(err) {
			res.to(NoMatch)
			ctxlog.FromContext(p.ctx).Debug("No template matched", "template", name, "params", params.Keys())
		}
		return res.fail(err)
	}
	entry := &p.snapshot.templates[name][index]
	res.Plugin = entry.plugin
	res.to(Matched)

	key := renderKey{name: name, index: index}
	if slices.Contains(p.renderPath, key) {
		chain := make([]string, 0, len(p.renderPath)+1)
		for _, k := range p.renderPath[slices.Index(p.renderPath, key):] {
			chain = append(chain, k.name)
		}
		return res.fail(&CyclicResolutionError{Chain: append(chain, name)})
	}
	p.renderPath = append(p.renderPath, key)
	defer func() { p.renderPath = p.renderPath[:len(p.renderPath)-1] }()

	rc := &RenderContext{pass: p, name: name, index: index, plugin: entry.plugin, params: params}
	node, err := entry.template.Render(rc, params)
	if err != nil {
		return res.fail(err)
	}
	res.Node = node
	res.to(Rendered)
	return res
}

// RenderContext is passed to a template's render function.
// It gives access to getters via Connect
// and renders nested placeholders.
type RenderContext struct {
	pass   *Pass
	name   string
	index  int
	plugin string
	params Params
}

// Context returns the context of the render pass.
func (rc *RenderContext) Context() context.Context {
	return rc.pass.ctx
}

// Pass returns the render pass.
func (rc *RenderContext) Pass() *Pass {
	return rc.pass
}

// TemplateName returns the name of the rendered template.
func (rc *RenderContext) TemplateName() string {
	return rc.name
}

// Plugin returns the name of the plugin
// that contributed the rendered template.
func (rc *RenderContext) Plugin() string {
	return rc.plugin
}

// Params returns the params the template was rendered with.
func (rc *RenderContext) Params() Params {
	return rc.params
}

// Get returns the value of the getter name.
func (rc *RenderContext) Get(name string) (any, error) {
	return rc.pass.Get(name)
}

// Connect returns the requested getter values
// of the current render pass.
func (rc *RenderContext) Connect(names ...string) (Values, error) {
	return rc.pass.Connect(names...)
}

// Placeholder renders the topmost applicable template for name.
//
// If name is the name of the template currently rendering,
// resolution continues with the next template of lower precedence
// so that a template can decorate what other plugins render.
func (rc *RenderContext) Placeholder(name string, params Params) (*Node, error) {
	start := 0
	if name == rc.name {
		start = rc.index + 1
	}
	res := rc.pass.resolveTemplate(name, start, params)
	return res.Node, res.Err
}

// Next renders the next template of lower precedence
// for the name of the template currently rendering.
func (rc *RenderContext) Next(params Params) (*Node, error) {
	return rc.Placeholder(rc.name, params)
}

// PlaceholderWith renders the placeholder name and passes
// the result as content to children.
// If no template matches, children is called with nil content.
func (rc *RenderContext) PlaceholderWith(name string, params Params, children func(content *Node) (*Node, error)) (*Node, error) {
	content, err := rc.Placeholder(name, params)
	if err != nil {
		var noMatch *NoTemplateMatchError
		if !errors.As(err, &noMatch) || noMatch.Name != name {
			return nil, err
		}
		content = nil
	}
	return children(content)
}
