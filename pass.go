package regrid

import (
	"context"
	"maps"
	"reflect"
	"slices"
)

type chainKey struct {
	name  string
	level int
}

type renderKey struct {
	name  string
	index int
}

// Pass is a single render pass over one Snapshot.
//
// Getter values are memoized for the lifetime of the pass,
// so every access within the pass observes the same values.
// A Pass must only be used by one goroutine.
// Abandoning a pass leaves no trace in the Stack.
type Pass struct {
	ctx      context.Context
	snapshot *Snapshot

	memo      map[chainKey]any
	resolving map[chainKey]bool
	getPath   []chainKey

	renderPath []renderKey
}

var _ Getters = new(Pass)

// Context returns the context of the pass.
func (p *Pass) Context() context.Context {
	return p.ctx
}

// Snapshot returns the snapshot the pass renders.
func (p *Pass) Snapshot() *Snapshot {
	return p.snapshot
}

// Get returns the value of the getter name,
// evaluated through the full chain of contributions.
func (p *Pass) Get(name string) (any, error) {
	return p.resolve(name, len(p.snapshot.getters[name])-1)
}

func (p *Pass) resolve(name string, level int) (any, error) {
	if err := p.ctx.Err(); err != nil {
		return nil, err
	}
	if level < 0 {
		err := &MissingValueError{Name: name}
		if len(p.snapshot.getters[name]) == 0 {
			err.Suggestion = closestName(name, p.snapshot.getters)
		}
		return nil, err
	}
	key := chainKey{name: name, level: level}
	if value, ok := p.memo[key]; ok {
		return value, nil
	}
	if p.resolving[key] {
		start := slices.Index(p.getPath, key)
		chain := make([]string, 0, len(p.getPath)-start+1)
		for _, k := range p.getPath[start:] {
			chain = append(chain, k.name)
		}
		return nil, &CyclicResolutionError{Chain: append(chain, name)}
	}

	getter := p.snapshot.getters[name][level].getter
	if getter.Computed == nil {
		p.memo[key] = getter.Value
		return getter.Value, nil
	}

	p.resolving[key] = true
	p.getPath = append(p.getPath, key)
	value, err := getter.Computed(chainGetters{pass: p, name: name, level: level})
	p.getPath = p.getPath[:len(p.getPath)-1]
	delete(p.resolving, key)
	if err != nil {
		return nil, err
	}
	p.memo[key] = value
	return value, nil
}

// chainGetters is passed to a computed getter
// to access older contributions of its own name.
type chainGetters struct {
	pass  *Pass
	name  string
	level int
}

func (g chainGetters) Get(name string) (any, error) {
	if name == g.name {
		return g.pass.resolve(name, g.level-1)
	}
	return g.pass.Get(name)
}

// Values is an immutable snapshot of requested getter values
// as returned by a template connector.
type Values struct {
	m map[string]any
}

// Get returns the value for name or nil.
func (v Values) Get(name string) any {
	return v.m[name]
}

// Lookup returns the value for name and if it was requested.
func (v Values) Lookup(name string) (value any, ok bool) {
	value, ok = v.m[name]
	return value, ok
}

// Names returns the sorted names of the values.
func (v Values) Names() []string {
	return slices.Sorted(maps.Keys(v.m))
}

// Connect resolves all requested getter names
// and returns them as one consistent set of Values.
func (p *Pass) Connect(names ...string) (Values, error) {
	m := make(map[string]any, len(names))
	for _, name := range names {
		value, err := p.Get(name)
		if err != nil {
			return Values{}, err
		}
		m[name] = value
	}
	return Values{m: m}, nil
}

// ValueAs returns the connected value name as type T.
// A nil value results in the zero value of T.
func ValueAs[T any](values Values, name string) (T, error) {
	return castValue[T](name, values.m[name])
}

// GetAs resolves the getter name and returns it as type T.
// A nil value results in the zero value of T.
func GetAs[T any](getters Getters, name string) (T, error) {
	value, err := getters.Get(name)
	if err != nil {
		var zero T
		return zero, err
	}
	return castValue[T](name, value)
}

func castValue[T any](name string, value any) (T, error) {
	if value == nil {
		var zero T
		return zero, nil
	}
	t, ok := value.(T)
	if !ok {
		return t, &ValueTypeError{Name: name, Value: value, Want: reflect.TypeFor[T]()}
	}
	return t, nil
}
