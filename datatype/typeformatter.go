package datatype

import (
	"context"
	"errors"
	"maps"
	"reflect"
	"slices"
	"strings"
)

var _ ValueFormatter = new(TypeFormatter)

// TypeFormatter selects a ValueFormatter by the type of the value.
//
// The formatters are tried in the order:
//  1. Types for the exact type
//  2. Types for the dereferenced type of non nil pointers
//  3. InterfaceTypes for interfaces implemented by the type,
//     sorted by the string of the interface type
//  4. Kinds for the reflect.Kind of the type
//  5. 3 and 4 for the dereferenced type of non nil pointers
//  6. Default
//
// A formatter returning errors.ErrUnsupported continues with the next one.
// If no formatter succeeds, errors.ErrUnsupported is returned.
type TypeFormatter struct {
	Types          map[reflect.Type]ValueFormatter
	InterfaceTypes map[reflect.Type]ValueFormatter
	Kinds          map[reflect.Kind]ValueFormatter
	Default        ValueFormatter
}

// NewTypeFormatter returns an empty TypeFormatter.
func NewTypeFormatter() *TypeFormatter {
	return new(TypeFormatter)
}

func (f *TypeFormatter) FormatValue(ctx context.Context, val reflect.Value) (text string, raw bool, err error) {
	if f == nil || !val.IsValid() {
		return "", false, errors.ErrUnsupported
	}
	if err = ctx.Err(); err != nil {
		return "", false, err
	}
	vals := []reflect.Value{val}
	if val.Kind() == reflect.Pointer && !val.IsNil() {
		vals = append(vals, val.Elem())
	}
	for _, v := range vals {
		if typeFmt, ok := f.Types[v.Type()]; ok {
			text, raw, err = typeFmt.FormatValue(ctx, v)
			if !errors.Is(err, errors.ErrUnsupported) {
				return text, raw, err
			}
		}
	}
	for _, v := range vals {
		text, raw, err = f.formatInterfacesAndKind(ctx, v)
		if !errors.Is(err, errors.ErrUnsupported) {
			return text, raw, err
		}
	}
	if f.Default != nil {
		return f.Default.FormatValue(ctx, val)
	}
	return "", false, errors.ErrUnsupported
}

func (f *TypeFormatter) formatInterfacesAndKind(ctx context.Context, val reflect.Value) (text string, raw bool, err error) {
	typ := val.Type()
	for _, interfaceType := range f.sortedInterfaceTypes() {
		if typ.Implements(interfaceType) {
			text, raw, err := f.InterfaceTypes[interfaceType].FormatValue(ctx, val)
			if !errors.Is(err, errors.ErrUnsupported) {
				return text, raw, err
			}
		}
	}
	if kindFmt, ok := f.Kinds[typ.Kind()]; ok {
		text, raw, err := kindFmt.FormatValue(ctx, val)
		if !errors.Is(err, errors.ErrUnsupported) {
			return text, raw, err
		}
	}
	return "", false, errors.ErrUnsupported
}

func (f *TypeFormatter) sortedInterfaceTypes() []reflect.Type {
	return slices.SortedFunc(maps.Keys(f.InterfaceTypes), func(a, b reflect.Type) int {
		return strings.Compare(a.String(), b.String())
	})
}

// WithTypeFormatter returns a copy of f formatting values
// of the exact type typ with fmt.
func (f *TypeFormatter) WithTypeFormatter(typ reflect.Type, fmt ValueFormatter) *TypeFormatter {
	mod := f.cloneOrNew()
	if mod.Types == nil {
		mod.Types = make(map[reflect.Type]ValueFormatter)
	}
	mod.Types[typ] = fmt
	return mod
}

// WithInterfaceTypeFormatter returns a copy of f formatting values
// of types implementing the interface type typ with fmt.
func (f *TypeFormatter) WithInterfaceTypeFormatter(typ reflect.Type, fmt ValueFormatter) *TypeFormatter {
	mod := f.cloneOrNew()
	if mod.InterfaceTypes == nil {
		mod.InterfaceTypes = make(map[reflect.Type]ValueFormatter)
	}
	mod.InterfaceTypes[typ] = fmt
	return mod
}

// WithKindFormatter returns a copy of f formatting values
// of the passed kind with fmt.
func (f *TypeFormatter) WithKindFormatter(kind reflect.Kind, fmt ValueFormatter) *TypeFormatter {
	mod := f.cloneOrNew()
	if mod.Kinds == nil {
		mod.Kinds = make(map[reflect.Kind]ValueFormatter)
	}
	mod.Kinds[kind] = fmt
	return mod
}

// WithDefaultFormatter returns a copy of f
// using fmt for values no other formatter supports.
func (f *TypeFormatter) WithDefaultFormatter(fmt ValueFormatter) *TypeFormatter {
	mod := f.cloneOrNew()
	mod.Default = fmt
	return mod
}

func (f *TypeFormatter) cloneOrNew() *TypeFormatter {
	if f == nil {
		return new(TypeFormatter)
	}
	return &TypeFormatter{
		Types:          maps.Clone(f.Types),
		InterfaceTypes: maps.Clone(f.InterfaceTypes),
		Kinds:          maps.Clone(f.Kinds),
		Default:        f.Default,
	}
}
