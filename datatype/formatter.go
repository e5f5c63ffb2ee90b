package datatype

import (
	"context"
	"errors"
	"fmt"
	"reflect"
)

// ValueFormatter formats a cell value as text.
type ValueFormatter interface {
	// FormatValue formats val as text or returns a wrapped
	// errors.ErrUnsupported error if it doesn't support
	// formatting the value.
	// The raw result indicates if the text is already in the
	// output format of the backend and must not be escaped.
	FormatValue(ctx context.Context, val reflect.Value) (text string, raw bool, err error)
}

// ValueFormatterFunc implements ValueFormatter with a function.
type ValueFormatterFunc func(ctx context.Context, val reflect.Value) (text string, raw bool, err error)

func (f ValueFormatterFunc) FormatValue(ctx context.Context, val reflect.Value) (text string, raw bool, err error) {
	return f(ctx, val)
}

// PrintfFormatter formats values with fmt.Sprintf using itself as format.
type PrintfFormatter string

func (format PrintfFormatter) FormatValue(ctx context.Context, val reflect.Value) (text string, raw bool, err error) {
	return fmt.Sprintf(string(format), val.Interface()), false, nil
}

// PrintfRawFormatter formats values with fmt.Sprintf using itself as format
// and returns the result as raw text.
type PrintfRawFormatter string

func (format PrintfRawFormatter) FormatValue(ctx context.Context, val reflect.Value) (text string, raw bool, err error) {
	return fmt.Sprintf(string(format), val.Interface()), true, nil
}

// SprintFormatter formats any value with fmt.Sprint.
type SprintFormatter struct{}

func (SprintFormatter) FormatValue(ctx context.Context, val reflect.Value) (text string, raw bool, err error) {
	return fmt.Sprint(val.Interface()), false, nil
}

// LayoutFormatter formats values implementing
// interface{ Format(string) string } like time.Time
// with itself as layout.
type LayoutFormatter string

func (layout LayoutFormatter) FormatValue(ctx context.Context, val reflect.Value) (text string, raw bool, err error) {
	formatter, ok := val.Interface().(interface{ Format(string) string })
	if !ok {
		return "", false, fmt.Errorf("%s does not implement Format(string) string: %w", val.Type(), errors.ErrUnsupported)
	}
	return formatter.Format(string(layout)), false, nil
}

// StringerFormatter formats values implementing fmt.Stringer.
type StringerFormatter struct{}

func (StringerFormatter) FormatValue(ctx context.Context, val reflect.Value) (text string, raw bool, err error) {
	stringer, ok := val.Interface().(fmt.Stringer)
	if !ok {
		return "", false, fmt.Errorf("%s does not implement fmt.Stringer: %w", val.Type(), errors.ErrUnsupported)
	}
	return stringer.String(), false, nil
}

// RawText is a ValueFormatter returning itself as raw text for every value.
type RawText string

func (rawText RawText) FormatValue(ctx context.Context, val reflect.Value) (text string, raw bool, err error) {
	return string(rawText), true, nil
}

// UnsupportedFormatter returns errors.ErrUnsupported for every value.
type UnsupportedFormatter struct{}

func (UnsupportedFormatter) FormatValue(ctx context.Context, val reflect.Value) (text string, raw bool, err error) {
	return "", false, errors.ErrUnsupported
}

// BoolFormatter formats bool values with
// the True or False text.
type BoolFormatter struct {
	True  string
	False string
}

func (f BoolFormatter) FormatValue(ctx context.Context, val reflect.Value) (text string, raw bool, err error) {
	if val.Kind() != reflect.Bool {
		return "", false, fmt.Errorf("%s is not a bool: %w", val.Type(), errors.ErrUnsupported)
	}
	if val.Bool() {
		return f.True, false, nil
	}
	return f.False, false, nil
}
