package regrid

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/domonda/go-regrid/internal/ctxlog"
)

// Stack is the ordered composition of mounted plugins.
//
// Plugins mounted later take precedence over earlier ones.
// Mount and Unmount are serialized and publish a new immutable
// Snapshot, render passes started before keep their Snapshot.
// Stack is safe for concurrent use.
type Stack struct {
	mu       sync.Mutex
	plugins  []*Plugin
	snapshot atomic.Pointer[Snapshot]
}

// NewStack composes plugins in the passed order.
// The whole composition fails if any plugin is invalid
// or misses a required dependency.
func NewStack(ctx context.Context, plugins ...*Plugin) (*Stack, error) {
	var (
		composed []*Plugin
		err      error
	)
	for _, p := range plugins {
		composed, err = compose(ctx, composed, p)
		if err != nil {
			return nil, err
		}
	}
	s := &Stack{plugins: composed}
	s.snapshot.Store(newSnapshot(1, composed))
	ctxlog.FromContext(ctx).Debug("Composed plugin stack", "plugins", len(composed))
	return s, nil
}

// compose validates p against the already mounted plugins
// and returns a new slice with a copy of p appended.
func compose(ctx context.Context, mounted []*Plugin, p *Plugin) ([]*Plugin, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if p.Name != "" && slices.ContainsFunc(mounted, func(m *Plugin) bool { return m.Name == p.Name }) {
		return nil, fmt.Errorf("plugin %s: %w", p.Name, ErrAlreadyMounted)
	}
	for _, dep := range p.Dependencies {
		if slices.ContainsFunc(mounted, func(m *Plugin) bool { return m.Name == dep.PluginName }) {
			continue
		}
		if dep.Optional {
			ctxlog.FromContext(ctx).Debug("Optional plugin dependency not mounted",
				"plugin", p.DisplayName(),
				"dependency", dep.PluginName,
			)
			continue
		}
		return nil, &MissingDependencyError{Plugin: p.DisplayName(), Dependency: dep.PluginName}
	}
	composed := make([]*Plugin, len(mounted), len(mounted)+1)
	copy(composed, mounted)
	return append(composed, p.clone()), nil
}

// Snapshot returns the current snapshot.
func (s *Stack) Snapshot() *Snapshot {
	return s.snapshot.Load()
}

// Plugins returns the names of the mounted plugins in composition order.
func (s *Stack) Plugins() []string {
	return s.Snapshot().Plugins()
}

// Has returns true if a plugin named pluginName is mounted.
func (s *Stack) Has(pluginName string) bool {
	return s.Snapshot().Has(pluginName)
}

// Mount adds p on top of the stack.
func (s *Stack) Mount(ctx context.Context, p *Plugin) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	composed, err := compose(ctx, s.plugins, p)
	if err != nil {
		return err
	}
	s.publish(composed)
	ctxlog.FromContext(ctx).Debug("Mounted plugin", "plugin", p.DisplayName(), "version", s.Snapshot().Version())
	return nil
}

// Unmount removes the plugin named pluginName with exactly
// its own contributions, restoring prior resolution results.
// It fails if a mounted plugin requires pluginName.
func (s *Stack) Unmount(ctx context.Context, pluginName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := slices.IndexFunc(s.plugins, func(p *Plugin) bool { return p.Name == pluginName })
	if pluginName == "" || index < 0 {
		return fmt.Errorf("plugin %q: %w", pluginName, ErrNotMounted)
	}
	for _, p := range s.plugins[index+1:] {
		if p.DependsOn(pluginName) {
			return &MissingDependencyError{Plugin: p.DisplayName(), Dependency: pluginName}
		}
	}
	s.publish(slices.Delete(slices.Clone(s.plugins), index, index+1))
	ctxlog.FromContext(ctx).Debug("Unmounted plugin", "plugin", pluginName, "version", s.Snapshot().Version())
	return nil
}

// publish must be called with s.mu locked.
func (s *Stack) publish(plugins []*Plugin) {
	s.plugins = plugins
	s.snapshot.Store(newSnapshot(s.Snapshot().Version()+1, plugins))
}

// NewPass starts a render pass on the current snapshot.
func (s *Stack) NewPass(ctx context.Context) *Pass {
	return s.Snapshot().NewPass(ctx)
}

// Render renders the template name with params
// in a new render pass on the current snapshot.
func (s *Stack) Render(ctx context.Context, name string, params Params) (*Node, error) {
	return s.NewPass(ctx).Render(name, params)
}
