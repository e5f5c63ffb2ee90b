package regrid

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Params are the immutable render parameters
// passed from a placeholder down to a template.
//
// The zero value is an empty Params.
// With and Merge return modified copies,
// a Params value never changes after creation.
type Params struct {
	m map[string]any
}

// NewParams returns Params with a copy of the passed map.
func NewParams(values map[string]any) Params {
	if len(values) == 0 {
		return Params{}
	}
	return Params{m: maps.Clone(values)}
}

// Len returns the number of parameters.
func (p Params) Len() int {
	return len(p.m)
}

// Get returns the value for key or nil.
func (p Params) Get(key string) any {
	return p.m[key]
}

// Lookup returns the value for key and if it exists.
func (p Params) Lookup(key string) (value any, ok bool) {
	value, ok = p.m[key]
	return value, ok
}

// Keys returns the sorted parameter keys.
func (p Params) Keys() []string {
	return slices.Sorted(maps.Keys(p.m))
}

// With returns a copy of p with key set to value.
func (p Params) With(key string, value any) Params {
	m := make(map[string]any, len(p.m)+1)
	maps.Copy(m, p.m)
	m[key] = value
	return Params{m: m}
}

// Merge returns a copy of p with all values of other set,
// values of other take precedence.
func (p Params) Merge(other Params) Params {
	if other.Len() == 0 {
		return p
	}
	if p.Len() == 0 {
		return other
	}
	m := make(map[string]any, len(p.m)+len(other.m))
	maps.Copy(m, p.m)
	maps.Copy(m, other.m)
	return Params{m: m}
}

// String implements the fmt.Stringer interface.
func (p Params) String() string {
	var b strings.Builder
	b.WriteString("Params{")
	for i, key := range p.Keys() {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %v", key, p.m[key])
	}
	b.WriteByte('}')
	return b.String()
}

// ParamAs returns the parameter key as type T.
// The result is false if the parameter does not exist
// or has a different type.
func ParamAs[T any](p Params, key string) (T, bool) {
	value, ok := p.m[key].(T)
	return value, ok
}
