package regrid

import (
	"context"
	"fmt"
	"slices"
)

type getterEntry struct {
	plugin string
	getter Getter
}

type templateEntry struct {
	plugin   string
	template Template
}

func (e *templateEntry) matches(params Params) (ok bool, err error) {
	if e.template.Predicate == nil {
		return true, nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("predicate of template %q from plugin %s panicked: %v", e.template.Name, e.plugin, r)
		}
	}()
	return e.template.Predicate(params), nil
}

// Snapshot is an immutable view of the composed plugins
// with their getter and template registries.
//
// Every Mount and Unmount of a Stack publishes a new Snapshot,
// a render pass works on exactly one Snapshot.
type Snapshot struct {
	version uint64
	plugins []*Plugin
	// getters per name, oldest contribution first
	getters map[string][]getterEntry
	// templates per name, highest precedence first
	templates map[string][]templateEntry
}

func newSnapshot(version uint64, plugins []*Plugin) *Snapshot {
	s := &Snapshot{
		version:   version,
		plugins:   plugins,
		getters:   make(map[string][]getterEntry),
		templates: make(map[string][]templateEntry),
	}
	for _, p := range plugins {
		for _, g := range p.Getters {
			s.getters[g.Name] = append(s.getters[g.Name], getterEntry{plugin: p.DisplayName(), getter: g})
		}
	}
	// Later plugins take precedence, but templates
	// of one plugin keep their declaration order
	for _, p := range slices.Backward(plugins) {
		for _, t := range p.Templates {
			s.templates[t.Name] = append(s.templates[t.Name], templateEntry{plugin: p.DisplayName(), template: t})
		}
	}
	return s
}

// Version increases with every published Snapshot of a Stack.
func (s *Snapshot) Version() uint64 {
	return s.version
}

// Plugins returns the names of the composed plugins
// in composition order.
func (s *Snapshot) Plugins() []string {
	names := make([]string, len(s.plugins))
	for i, p := range s.plugins {
		names[i] = p.DisplayName()
	}
	return names
}

// Has returns true if a plugin named pluginName is composed.
func (s *Snapshot) Has(pluginName string) bool {
	return s.indexOf(pluginName) >= 0
}

func (s *Snapshot) indexOf(pluginName string) int {
	if pluginName == "" {
		return -1
	}
	return slices.IndexFunc(s.plugins, func(p *Plugin) bool { return p.Name == pluginName })
}

// GetterChain returns the names of the plugins contributing
// the getter name, oldest contribution first.
func (s *Snapshot) GetterChain(name string) []string {
	chain := s.getters[name]
	plugins := make([]string, len(chain))
	for i, e := range chain {
		plugins[i] = e.plugin
	}
	return plugins
}

// TemplateCandidates returns the names of the plugins contributing
// templates for name in the order they are tried.
func (s *Snapshot) TemplateCandidates(name string) []string {
	candidates := s.templates[name]
	plugins := make([]string, len(candidates))
	for i, e := range candidates {
		plugins[i] = e.plugin
	}
	return plugins
}

// ResolveTemplate returns the first template for name
// whose predicate accepts params, or a *NoTemplateMatchError.
func (s *Snapshot) ResolveTemplate(name string, params Params) (*Template, error) {
	index, err := s.matchTemplate(name, 0, params)
	if err != nil {
		return nil, err
	}
	return &s.templates[name][index].template, nil
}

// matchTemplate scans the candidates for name starting at index start.
func (s *Snapshot) matchTemplate(name string, start int, params Params) (int, error) {
	candidates := s.templates[name]
	for i := start; i < len(candidates); i++ {
		ok, err := candidates[i].matches(params)
		if err != nil {
			return -1, err
		}
		if ok {
			return i, nil
		}
	}
	err := &NoTemplateMatchError{Name: name}
	if len(candidates) == 0 {
		err.Suggestion = closestName(name, s.templates)
	}
	return -1, err
}

// NewPass starts a render pass on the snapshot.
func (s *Snapshot) NewPass(ctx context.Context) *Pass {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Pass{
		ctx:       ctx,
		snapshot:  s,
		memo:      make(map[chainKey]any),
		resolving: make(map[chainKey]bool),
	}
}
