// Package datatype provides the DataTypeProvider plugin
// formatting the cell values of selected columns of a table.
package datatype

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"time"

	"github.com/domonda/go-regrid"
	"github.com/domonda/go-regrid/grid"
	"github.com/domonda/go-regrid/internal/ctxlog"
	"github.com/domonda/go-regrid/table"
)

// PluginName is the default name of the plugin returned by Provider.Plugin.
const PluginName = table.DataTypeProviderName

// DefaultTypeFormatter formats time.Time values as RFC 3339,
// bool values as "true" or "false"
// and everything else using fmt.Sprint.
var DefaultTypeFormatter = NewTypeFormatter().
	WithTypeFormatter(reflect.TypeFor[time.Time](), LayoutFormatter(time.RFC3339)).
	WithKindFormatter(reflect.Bool, BoolFormatter{True: "true", False: "false"}).
	WithDefaultFormatter(SprintFormatter{})

// Provider configures a DataTypeProvider plugin
// formatting the values of the columns it is for.
// The With* methods return modified copies.
type Provider struct {
	name      string
	columns   []string
	formatter ValueFormatter
	nilText   string
}

// New returns a Provider for the named columns
// using the DefaultTypeFormatter.
func New(columns ...string) *Provider {
	return &Provider{
		name:      PluginName,
		columns:   slices.Clone(columns),
		formatter: DefaultTypeFormatter,
	}
}

func (p *Provider) clone() *Provider {
	c := new(Provider)
	*c = *p
	return c
}

// WithName returns a copy of the provider with another plugin name.
// Use it to mount multiple providers for different columns.
func (p *Provider) WithName(name string) *Provider {
	mod := p.clone()
	mod.name = name
	return mod
}

// WithFor returns a copy of the provider for the named columns.
func (p *Provider) WithFor(columns ...string) *Provider {
	mod := p.clone()
	mod.columns = slices.Clone(columns)
	return mod
}

// WithFormatter returns a copy of the provider using formatter.
func (p *Provider) WithFormatter(formatter ValueFormatter) *Provider {
	mod := p.clone()
	mod.formatter = formatter
	return mod
}

// WithNilText returns a copy of the provider rendering
// nil values as nilText.
func (p *Provider) WithNilText(nilText string) *Provider {
	mod := p.clone()
	mod.nilText = nilText
	return mod
}

// For returns the names of the columns the provider formats.
func (p *Provider) For() []string {
	return slices.Clone(p.columns)
}

// IsFor returns true if the provider formats the named column.
func (p *Provider) IsFor(columnName string) bool {
	return slices.Contains(p.columns, columnName)
}

// Plugin returns the DataTypeProvider plugin contributing
// the "valueFormatter" template for the columns of the provider.
//
// If the formatter does not support a value,
// the next valueFormatter of lower precedence is rendered.
func (p *Provider) Plugin() *regrid.Plugin {
	return regrid.NewPlugin(p.name).
		WithPredicateTemplate(table.ValueFormatterTemplate, p.matches, p.render)
}

func (p *Provider) matches(params regrid.Params) bool {
	column := table.ColumnParam(params)
	return column != nil && p.IsFor(column.Name)
}

func (p *Provider) render(rc *regrid.RenderContext, params regrid.Params) (*regrid.Node, error) {
	val := reflect.ValueOf(params.Get(table.ParamValue))
	if grid.ValueIsNil(val) {
		return regrid.Text(p.nilText), nil
	}
	text, raw, err := p.formatter.FormatValue(rc.Context(), val)
	if err != nil {
		if errors.Is(err, errors.ErrUnsupported) {
			ctxlog.FromContext(rc.Context()).Debug("value not supported by formatter",
				"plugin", p.name,
				"column", table.ColumnParam(params).Name,
				"type", val.Type().String(),
			)
			return rc.Next(params)
		}
		return nil, fmt.Errorf("formatting column %q: %w", table.ColumnParam(params).Name, err)
	}
	if raw {
		return regrid.RawText(text), nil
	}
	return regrid.Text(text), nil
}
