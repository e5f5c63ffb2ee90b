// Package csvtable writes rendered tables as CSV
// and reads CSV data as grid sheets,
// with support for charset encodings via github.com/domonda/go-types/charset.
package csvtable

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/domonda/go-types/charset"

	"github.com/domonda/go-regrid"
	"github.com/domonda/go-regrid/grid"
)

// ErrNoTable is returned when a rendered node contains no "table" node.
var ErrNoTable = errors.New("rendered node contains no table")

// Encoder is an interface to encode byte strings.
type Encoder interface {
	Bytes([]byte) ([]byte, error)
}

// EncoderFunc implements the Encoder interface for a function.
type EncoderFunc func([]byte) ([]byte, error)

func (f EncoderFunc) Bytes(data []byte) ([]byte, error) {
	return f(data)
}

// PassthroughEncoder returns an Encoder that returns the passed data unchanged.
func PassthroughEncoder() Encoder {
	return EncoderFunc(func(data []byte) ([]byte, error) {
		return data, nil
	})
}

// CharsetEncoder returns an Encoder encoding UTF-8
// to the charset with the passed name.
func CharsetEncoder(name string) (Encoder, error) {
	enc, err := charset.GetEncoding(name)
	if err != nil {
		return nil, err
	}
	return EncoderFunc(enc.Encode), nil
}

type Padding int

const (
	NoPadding Padding = iota
	AlignLeft
	AlignRight
	AlignCenter
)

// Writer writes a rendered table node as CSV.
// The With* methods return modified copies.
type Writer struct {
	headerRow        bool
	padding          Padding
	quoteAllFields   bool
	quoteEmptyFields bool
	escapeQuotes     string
	delimiter        rune
	newLine          string
	encoder          Encoder
}

// NewWriter returns a Writer including header rows,
// using ';' as delimiter and "\r\n" as line ending.
func NewWriter() *Writer {
	return &Writer{
		headerRow:    true,
		padding:      NoPadding,
		escapeQuotes: `""`,
		delimiter:    ';',
		newLine:      "\r\n",
	}
}

func (w *Writer) clone() *Writer {
	c := new(Writer)
	*c = *w
	return c
}

// Render renders the root template of stack in a new render pass
// and writes the resulting table as CSV to dest.
func (w *Writer) Render(ctx context.Context, dest io.Writer, stack *regrid.Stack) error {
	node, err := grid.Render(ctx, stack)
	if err != nil {
		return err
	}
	return w.Write(ctx, dest, node)
}

// Write writes the first "table" node found in node as CSV to dest.
// Cells spanning multiple columns are followed by empty fields.
func (w *Writer) Write(ctx context.Context, dest io.Writer, node *regrid.Node) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	tables := node.Find("table")
	if len(tables) == 0 {
		return ErrNoTable
	}
	rows, err := w.TableStrings(ctx, tables[0])
	if err != nil {
		return err
	}
	var colRuneCount []int
	if w.padding != NoPadding {
		colRuneCount = columnWidths(rows)
	}

	rowBuf := bytes.NewBuffer(make([]byte, 0, 1024))
	for _, row := range rows {
		for col, str := range row {
			if col > 0 {
				rowBuf.WriteRune(w.delimiter)
			}
			if colRuneCount == nil {
				rowBuf.WriteString(str)
				continue
			}
			var (
				padTotal = colRuneCount[col] - utf8.RuneCountInString(str)
				padLeft  = 0
				padRight = 0
			)
			switch w.padding {
			case AlignLeft:
				padRight = padTotal
			case AlignRight:
				padLeft = padTotal
			case AlignCenter:
				padLeft = padTotal / 2
				padRight = (padTotal + 1) / 2
			}
			rowBuf.WriteString(strings.Repeat(" ", padLeft))
			rowBuf.WriteString(str)
			rowBuf.WriteString(strings.Repeat(" ", padRight))
		}
		rowBuf.WriteString(w.newLine)

		if w.encoder != nil {
			encoded, err := w.encoder.Bytes(rowBuf.Bytes())
			if err != nil {
				return err
			}
			rowBuf.Reset()
			rowBuf.Write(encoded)
		}
		if _, err := dest.Write(rowBuf.Bytes()); err != nil {
			return err
		}
		rowBuf.Reset()
	}
	return nil
}

// TableStrings returns the escaped CSV fields of the rows of table.
// Rows of a "thead" section are only included if the writer
// has header rows enabled.
func (w *Writer) TableStrings(ctx context.Context, table *regrid.Node) ([][]string, error) {
	var rows [][]string
	addRow := func(tr *regrid.Node) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if tr.Type != "tr" {
			return fmt.Errorf("unexpected %q node in table", tr.Type)
		}
		var fields []string
		for _, cell := range tr.ElementChildren() {
			if cell.Type != "th" && cell.Type != "td" {
				return fmt.Errorf("unexpected %q node in table row", cell.Type)
			}
			fields = append(fields, w.escapeString(cell.TextContent()))
			if colspan := cell.Attr("colspan"); colspan != "" {
				span, err := strconv.Atoi(colspan)
				if err != nil || span < 1 {
					return fmt.Errorf("invalid colspan %q", colspan)
				}
				for range span - 1 {
					fields = append(fields, w.escapeString(""))
				}
			}
		}
		rows = append(rows, fields)
		return nil
	}

	for _, child := range table.ElementChildren() {
		switch child.Type {
		case "thead", "tbody", "tfoot":
			if child.Type == "thead" && !w.headerRow {
				continue
			}
			for _, tr := range child.ElementChildren() {
				if err := addRow(tr); err != nil {
					return nil, err
				}
			}
		case "tr":
			if err := addRow(child); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("unexpected %q node in table", child.Type)
		}
	}

	numCols := 0
	for _, row := range rows {
		numCols = max(numCols, len(row))
	}
	for i, row := range rows {
		for len(row) < numCols {
			row = append(row, w.escapeString(""))
		}
		rows[i] = row
	}
	return rows, nil
}

func (w *Writer) escapeString(str string) string {
	str = strings.ReplaceAll(str, "\r", "")
	switch {
	case w.quoteAllFields || strings.ContainsRune(str, w.delimiter) || strings.ContainsAny(str, "\"\n"):
		return `"` + strings.ReplaceAll(str, `"`, w.escapeQuotes) + `"`
	case w.quoteEmptyFields && str == "":
		return `""`
	}
	return strings.ReplaceAll(str, `"`, w.escapeQuotes)
}

func columnWidths(rows [][]string) []int {
	var widths []int
	for _, row := range rows {
		for col, str := range row {
			if col >= len(widths) {
				widths = append(widths, 0)
			}
			widths[col] = max(widths[col], utf8.RuneCountInString(str))
		}
	}
	return widths
}

// WithHeaderRow returns a copy of the writer
// including the header rows of the table or not.
func (w *Writer) WithHeaderRow(headerRow bool) *Writer {
	mod := w.clone()
	mod.headerRow = headerRow
	return mod
}

func (w *Writer) WithPadding(padding Padding) *Writer {
	mod := w.clone()
	mod.padding = padding
	return mod
}

func (w *Writer) WithQuoteAllFields(quoteAllFields bool) *Writer {
	mod := w.clone()
	mod.quoteAllFields = quoteAllFields
	return mod
}

func (w *Writer) WithQuoteEmptyFields(quoteEmptyFields bool) *Writer {
	mod := w.clone()
	mod.quoteEmptyFields = quoteEmptyFields
	return mod
}

// WithEscapeQuotes returns a copy of the writer
// replacing double quotes in fields with escapeQuotes.
func (w *Writer) WithEscapeQuotes(escapeQuotes string) *Writer {
	mod := w.clone()
	mod.escapeQuotes = escapeQuotes
	return mod
}

func (w *Writer) WithDelimiter(delimiter rune) *Writer {
	mod := w.clone()
	mod.delimiter = delimiter
	return mod
}

func (w *Writer) WithNewLine(newLine string) *Writer {
	mod := w.clone()
	mod.newLine = newLine
	return mod
}

// WithEncoder returns a copy of the writer encoding every
// written row with encoder. A nil encoder writes UTF-8.
func (w *Writer) WithEncoder(encoder Encoder) *Writer {
	mod := w.clone()
	mod.encoder = encoder
	return mod
}

// WithFormat returns a copy of the writer using
// the separator, line ending and encoding of format.
func (w *Writer) WithFormat(format *Format) (*Writer, error) {
	if err := format.Validate(); err != nil {
		return nil, err
	}
	mod := w.clone()
	mod.delimiter = format.separatorRune()
	mod.newLine = format.Newline
	mod.encoder = nil
	if format.Encoding != "UTF-8" {
		enc, err := CharsetEncoder(format.Encoding)
		if err != nil {
			return nil, err
		}
		mod.encoder = enc
	}
	return mod, nil
}
