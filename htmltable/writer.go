// Package htmltable writes rendered tables as HTML.
//
// The Writer serializes the "table" node rendered by the Table plugin
// using the HeaderTemplate, RowTemplate and FooterTemplate.
// Text is HTML-escaped, raw text nodes are written as is.
//
// Example usage:
//
//	stack, err := regrid.NewStack(ctx,
//	    grid.New(people).Plugin(),
//	    table.New().WithComponents(htmltable.Components(htmltable.DefaultClasses)).Plugin(),
//	)
//	err = htmltable.NewWriter().WithCaption("People").Render(ctx, os.Stdout, stack)
package htmltable

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"maps"
	"regexp"
	"slices"
	"strings"

	"github.com/domonda/go-regrid"
	"github.com/domonda/go-regrid/grid"
)

// ErrNoTable is returned when a rendered node contains no "table" node.
var ErrNoTable = errors.New("rendered node contains no table")

// Writer writes a rendered table node as HTML.
//
// Writer is immutable after creation, all With* methods
// return a new Writer with the modified configuration.
type Writer struct {
	tableClass     string
	caption        string
	headerTemplate *template.Template
	rowTemplate    *template.Template
	footerTemplate *template.Template
}

// NewWriter returns a Writer using the default templates.
func NewWriter() *Writer {
	return &Writer{
		headerTemplate: HeaderTemplate,
		rowTemplate:    RowTemplate,
		footerTemplate: FooterTemplate,
	}
}

// Render renders the root template of stack in a new render pass
// and writes the resulting table as HTML to dest.
func (w *Writer) Render(ctx context.Context, dest io.Writer, stack *regrid.Stack) error {
	node, err := grid.Render(ctx, stack)
	if err != nil {
		return err
	}
	return w.Write(ctx, dest, node)
}

// Write writes the first "table" node found in node as HTML to dest.
//
// The class attribute of the table node is used
// if the writer has no table class configured.
// Rows are expected as "tr" children of the table
// or of its "thead", "tbody" and "tfoot" sections,
// cells as "th" or "td" children of the rows.
func (w *Writer) Write(ctx context.Context, dest io.Writer, node *regrid.Node) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	tables := node.Find("table")
	if len(tables) == 0 {
		return ErrNoTable
	}
	tableNode := tables[0]

	templData := &RowTemplateContext{
		TemplateContext: TemplateContext{
			TableClass: w.tableClass,
			Caption:    w.caption,
		},
	}
	if templData.TableClass == "" {
		templData.TableClass = tableNode.Attr("class")
	}

	err := w.headerTemplate.Execute(dest, templData.TemplateContext)
	if err != nil {
		return err
	}
	for _, child := range tableNode.ElementChildren() {
		switch child.Type {
		case "thead", "tbody", "tfoot":
			if _, err = fmt.Fprintf(dest, "  <%s>\n", child.Type); err != nil {
				return err
			}
			templData.Section = child.Type
			for _, row := range child.ElementChildren() {
				if err = w.writeRow(ctx, dest, row, templData); err != nil {
					return err
				}
			}
			if _, err = fmt.Fprintf(dest, "  </%s>\n", child.Type); err != nil {
				return err
			}
		case "tr":
			templData.Section = ""
			if err = w.writeRow(ctx, dest, child, templData); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unexpected %q node in table", child.Type)
		}
	}
	return w.footerTemplate.Execute(dest, templData.TemplateContext)
}

func (w *Writer) writeRow(ctx context.Context, dest io.Writer, row *regrid.Node, templData *RowTemplateContext) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if row.Type != "tr" {
		return fmt.Errorf("unexpected %q node in %s", row.Type, templData.Section)
	}
	templData.Attrs = HTMLAttrs(row.Attrs)
	templData.Cells = templData.Cells[:0]
	for _, cell := range row.ElementChildren() {
		if cell.Type != "th" && cell.Type != "td" {
			return fmt.Errorf("unexpected %q node in table row", cell.Type)
		}
		var content strings.Builder
		for _, child := range cell.Children {
			if err := writeHTML(&content, child); err != nil {
				return err
			}
		}
		templData.Cells = append(templData.Cells, CellTemplateContext{
			Header:  cell.Type == "th",
			Attrs:   HTMLAttrs(cell.Attrs),
			Content: template.HTML(content.String()), //#nosec G203
		})
	}
	err := w.rowTemplate.Execute(dest, templData)
	if err != nil {
		return err
	}
	templData.RowIndex++
	return nil
}

// HTMLAttrs returns the escaped attributes sorted by name.
func HTMLAttrs(attrs map[string]string) template.HTMLAttr {
	var b strings.Builder
	for i, name := range slices.Sorted(maps.Keys(attrs)) {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, `%s="%s"`, template.HTMLEscapeString(name), template.HTMLEscapeString(attrs[name]))
	}
	return template.HTMLAttr(b.String()) //#nosec G203
}

var tagNameRegexp = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9-]*$`)

// voidElements are written without closing tag.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// writeHTML writes node as HTML to b.
// Text is escaped, raw text written as is.
func writeHTML(b *strings.Builder, node *regrid.Node) error {
	switch node.Type {
	case regrid.TextNodeType:
		b.WriteString(template.HTMLEscapeString(node.Text))
	case regrid.RawTextNodeType:
		b.WriteString(node.Text)
	case regrid.FragmentNodeType:
		for _, child := range node.Children {
			if err := writeHTML(b, child); err != nil {
				return err
			}
		}
	default:
		if !tagNameRegexp.MatchString(node.Type) {
			return fmt.Errorf("invalid HTML tag name %q", node.Type)
		}
		b.WriteByte('<')
		b.WriteString(node.Type)
		if len(node.Attrs) > 0 {
			b.WriteByte(' ')
			b.WriteString(string(HTMLAttrs(node.Attrs)))
		}
		b.WriteByte('>')
		if voidElements[strings.ToLower(node.Type)] {
			if node.Text != "" || len(node.Children) > 0 {
				return fmt.Errorf("void HTML element %q with content", node.Type)
			}
			return nil
		}
		b.WriteString(template.HTMLEscapeString(node.Text))
		for _, child := range node.Children {
			if err := writeHTML(b, child); err != nil {
				return err
			}
		}
		b.WriteString("</")
		b.WriteString(node.Type)
		b.WriteByte('>')
	}
	return nil
}

func (w *Writer) clone() *Writer {
	c := new(Writer)
	*c = *w
	return c
}

// WithTableClass returns a new writer with the specified CSS class for the table element.
// The class will be rendered as: <table class='tableClass'>
func (w *Writer) WithTableClass(tableClass string) *Writer {
	mod := w.clone()
	mod.tableClass = tableClass
	return mod
}

// WithCaption returns a new writer writing a caption element.
func (w *Writer) WithCaption(caption string) *Writer {
	mod := w.clone()
	mod.caption = caption
	return mod
}

// WithTemplate returns a new writer with the specified templates.
// The tableTemplate and footerTemplate are executed with a TemplateContext,
// the rowTemplate with a RowTemplateContext.
func (w *Writer) WithTemplate(tableTemplate, rowTemplate, footerTemplate *template.Template) *Writer {
	mod := w.clone()
	mod.headerTemplate = tableTemplate
	mod.rowTemplate = rowTemplate
	mod.footerTemplate = footerTemplate
	return mod
}

// TableClass returns the configured CSS class for the table element.
func (w *Writer) TableClass() string {
	return w.tableClass
}

// Caption returns the configured caption.
func (w *Writer) Caption() string {
	return w.caption
}
