package regrid

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

var (
	// ErrAlreadyMounted is returned when a plugin with the same
	// non-empty name is already part of the stack.
	ErrAlreadyMounted = errors.New("plugin is already mounted")

	// ErrNotMounted is returned when unmounting a plugin
	// that is not part of the stack.
	ErrNotMounted = errors.New("plugin is not mounted")

	// ErrNilRender is returned when a template has no render function.
	ErrNilRender = errors.New("template has no render function")
)

// MissingDependencyError is returned when a plugin requires
// another plugin that is not mounted below it.
//
// Composition aborts as a whole when this error occurs,
// no rendering is attempted.
type MissingDependencyError struct {
	Plugin     string
	Dependency string
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("plugin %q requires plugin %q which is not mounted", e.Plugin, e.Dependency)
}

// MissingValueError is returned when a getter name
// has no contribution in the stack.
// Suggestion is a similar registered getter name, if any.
type MissingValueError struct {
	Name       string
	Suggestion string
}

func (e *MissingValueError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("no getter registered for %q, did you mean %q?", e.Name, e.Suggestion)
	}
	return fmt.Sprintf("no getter registered for %q", e.Name)
}

// CyclicResolutionError is returned when a computed getter
// or a template depends on itself.
// Chain lists the names along the cycle,
// the first and last element are the same.
type CyclicResolutionError struct {
	Chain []string
}

func (e *CyclicResolutionError) Error() string {
	return "cyclic resolution: " + strings.Join(e.Chain, " -> ")
}

// NoTemplateMatchError is returned when no template
// contribution for Name accepts the render params.
// Suggestion is only set if no template named Name is registered
// and a similar template name is.
type NoTemplateMatchError struct {
	Name       string
	Suggestion string
}

func (e *NoTemplateMatchError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("no template registered for %q, did you mean %q?", e.Name, e.Suggestion)
	}
	return fmt.Sprintf("no template matched for %q", e.Name)
}

// ValueTypeError is returned by the typed accessors
// when a resolved value does not have the requested type.
type ValueTypeError struct {
	Name  string
	Value any
	Want  reflect.Type
}

func (e *ValueTypeError) Error() string {
	return fmt.Sprintf("value %q is of type %T, expected %s", e.Name, e.Value, e.Want)
}

// IsNoTemplateMatch returns true if err is or wraps a *NoTemplateMatchError.
func IsNoTemplateMatch(err error) bool {
	var noMatch *NoTemplateMatchError
	return errors.As(err, &noMatch)
}
