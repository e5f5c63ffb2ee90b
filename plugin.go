package regrid

import (
	"errors"
	"fmt"
	"slices"
)

// Dependency declares that a plugin needs
// another plugin mounted below it in the stack.
type Dependency struct {
	PluginName string
	Optional   bool
}

// Requires returns a required Dependency on pluginName.
func Requires(pluginName string) Dependency {
	return Dependency{PluginName: pluginName}
}

// Optional returns an optional Dependency on pluginName.
func Optional(pluginName string) Dependency {
	return Dependency{PluginName: pluginName, Optional: true}
}

// Getters gives computed getters access to other values.
type Getters interface {
	// Get returns the resolved value for name.
	Get(name string) (any, error)
}

// ComputedFunc computes the value of a getter.
//
// Calling getters.Get with the getter's own name returns
// the value of the next older contribution for that name,
// any other name resolves to its fully chained value.
type ComputedFunc func(getters Getters) (any, error)

// Getter is a named value contribution of a plugin.
// If Computed is not nil it is used instead of Value.
type Getter struct {
	Name     string
	Value    any
	Computed ComputedFunc
}

// Predicate decides if a template applies to the render params.
// Predicates must not have side effects.
type Predicate func(params Params) bool

// RenderFunc renders a template for the passed params.
type RenderFunc func(rc *RenderContext, params Params) (*Node, error)

// Template is a named, optionally predicated render fragment.
type Template struct {
	Name      string
	Predicate Predicate
	Render    RenderFunc
}

// Plugin is a named unit contributing getters and templates.
//
// Plugins are composed into a Stack.
// The With* methods return modified copies.
type Plugin struct {
	Name         string
	Dependencies []Dependency
	Getters      []Getter
	Templates    []Template
}

// NewPlugin returns an empty plugin with the passed dependencies.
func NewPlugin(name string, dependencies ...Dependency) *Plugin {
	return &Plugin{
		Name:         name,
		Dependencies: slices.Clone(dependencies),
	}
}

func (p *Plugin) clone() *Plugin {
	return &Plugin{
		Name:         p.Name,
		Dependencies: slices.Clone(p.Dependencies),
		Getters:      slices.Clone(p.Getters),
		Templates:    slices.Clone(p.Templates),
	}
}

// DisplayName returns the name of the plugin
// or "<anonymous>" for plugins without a name.
func (p *Plugin) DisplayName() string {
	if p.Name == "" {
		return "<anonymous>"
	}
	return p.Name
}

// WithDependency returns a copy of the plugin with dep added.
func (p *Plugin) WithDependency(dep Dependency) *Plugin {
	mod := p.clone()
	mod.Dependencies = append(mod.Dependencies, dep)
	return mod
}

// WithValue returns a copy of the plugin with a static getter added.
func (p *Plugin) WithValue(name string, value any) *Plugin {
	mod := p.clone()
	mod.Getters = append(mod.Getters, Getter{Name: name, Value: value})
	return mod
}

// WithComputed returns a copy of the plugin with a computed getter added.
func (p *Plugin) WithComputed(name string, computed ComputedFunc) *Plugin {
	mod := p.clone()
	mod.Getters = append(mod.Getters, Getter{Name: name, Computed: computed})
	return mod
}

// WithTemplate returns a copy of the plugin with
// a template without predicate added.
func (p *Plugin) WithTemplate(name string, render RenderFunc) *Plugin {
	return p.WithPredicateTemplate(name, nil, render)
}

// WithPredicateTemplate returns a copy of the plugin with
// a template guarded by predicate added.
// Templates of one plugin are tried in the order they were added.
func (p *Plugin) WithPredicateTemplate(name string, predicate Predicate, render RenderFunc) *Plugin {
	mod := p.clone()
	mod.Templates = append(mod.Templates, Template{Name: name, Predicate: predicate, Render: render})
	return mod
}

// DependsOn returns true if the plugin
// declares a required dependency on pluginName.
func (p *Plugin) DependsOn(pluginName string) bool {
	for _, dep := range p.Dependencies {
		if dep.PluginName == pluginName && !dep.Optional {
			return true
		}
	}
	return false
}

// Validate checks that all contributions are well formed.
func (p *Plugin) Validate() error {
	if p == nil {
		return errors.New("plugin is nil")
	}
	for _, dep := range p.Dependencies {
		if dep.PluginName == "" {
			return fmt.Errorf("plugin %s: dependency without plugin name", p.DisplayName())
		}
		if dep.PluginName == p.Name {
			return fmt.Errorf("plugin %s: depends on itself", p.DisplayName())
		}
	}
	for _, g := range p.Getters {
		if g.Name == "" {
			return fmt.Errorf("plugin %s: getter without name", p.DisplayName())
		}
	}
	for _, t := range p.Templates {
		if t.Name == "" {
			return fmt.Errorf("plugin %s: template without name", p.DisplayName())
		}
		if t.Render == nil {
			return fmt.Errorf("plugin %s: template %q: %w", p.DisplayName(), t.Name, ErrNilRender)
		}
	}
	return nil
}
