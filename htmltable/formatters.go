package htmltable

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"reflect"

	"github.com/domonda/go-regrid/datatype"
)

var (
	// PreFormatter formats the value using fmt.Sprint
	// escaped within an HTML pre element.
	PreFormatter datatype.ValueFormatterFunc = func(ctx context.Context, val reflect.Value) (text string, raw bool, err error) {
		value := template.HTMLEscapeString(fmt.Sprint(val.Interface()))
		return "<pre>" + value + "</pre>", true, nil
	}

	CodeFormatter datatype.ValueFormatterFunc = func(ctx context.Context, val reflect.Value) (text string, raw bool, err error) {
		value := template.HTMLEscapeString(fmt.Sprint(val.Interface()))
		return "<code>" + value + "</code>", true, nil
	}

	// AnchorFormatter formats the value using fmt.Sprint,
	// escapes it for HTML and returns an HTML anchor element with the
	// value as id and inner text.
	AnchorFormatter datatype.ValueFormatterFunc = func(ctx context.Context, val reflect.Value) (text string, raw bool, err error) {
		value := template.HTMLEscapeString(fmt.Sprint(val.Interface()))
		return fmt.Sprintf("<a id='%[1]s'>%[1]s</a>", value), true, nil
	}

	_ datatype.ValueFormatter = JSONFormatter("")
	_ datatype.ValueFormatter = SpanClassFormatter("")
)

// JSONFormatter formats JSON strings, byte slices and json.RawMessage values
// indented with itself within an HTML pre element.
// An empty JSONFormatter formats compact JSON.
type JSONFormatter string

func (indent JSONFormatter) FormatValue(ctx context.Context, val reflect.Value) (text string, raw bool, err error) {
	var src bytes.Buffer
	switch val.Kind() {
	case reflect.String:
		src.WriteString(val.String())
	case reflect.Slice:
		if val.Type().Elem().Kind() != reflect.Uint8 {
			return "", false, fmt.Errorf("%s is not JSON: %w", val.Type(), errors.ErrUnsupported)
		}
		src.Write(val.Bytes())
	default:
		return "", false, fmt.Errorf("%s is not JSON: %w", val.Type(), errors.ErrUnsupported)
	}
	if src.Len() == 0 {
		return "", false, nil
	}
	var buf bytes.Buffer
	if indent == "" {
		err = json.Compact(&buf, src.Bytes())
	} else {
		err = json.Indent(&buf, src.Bytes(), "", string(indent))
	}
	if err != nil {
		return "", false, err
	}
	return "<pre>" + template.HTMLEscapeString(buf.String()) + "</pre>", true, nil
}

// SpanClassFormatter formats the value within an HTML span element
// with the class of the underlying string value.
type SpanClassFormatter string

func (class SpanClassFormatter) FormatValue(ctx context.Context, val reflect.Value) (text string, raw bool, err error) {
	value := template.HTMLEscapeString(fmt.Sprint(val.Interface()))
	return fmt.Sprintf("<span class='%s'>%s</span>", template.HTMLEscapeString(string(class)), value), true, nil
}
