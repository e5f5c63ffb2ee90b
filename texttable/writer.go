// Package texttable writes rendered tables as aligned text
// with optional borders.
//
// Column widths are measured with github.com/mattn/go-runewidth
// so that wide characters like CJK or emoji stay aligned.
package texttable

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/domonda/go-regrid"
	"github.com/domonda/go-regrid/grid"
)

// ErrNoTable is returned when a rendered node contains no "table" node.
var ErrNoTable = errors.New("rendered node contains no table")

// Writer writes a rendered table node as text.
// The With* methods return modified copies.
type Writer struct {
	border    BorderStyle
	aligns    []Alignment
	maxWidths []int
	title     string
}

// NewWriter returns a Writer with BorderRounded
// and left aligned columns.
func NewWriter() *Writer {
	return &Writer{border: BorderRounded}
}

func (w *Writer) clone() *Writer {
	c := new(Writer)
	*c = *w
	return c
}

// WithBorder returns a copy of the writer using the border style.
func (w *Writer) WithBorder(border BorderStyle) *Writer {
	mod := w.clone()
	mod.border = border
	return mod
}

// WithAlignments returns a copy of the writer aligning
// the columns in the order of aligns.
// Columns without alignment are left aligned.
func (w *Writer) WithAlignments(aligns ...Alignment) *Writer {
	mod := w.clone()
	mod.aligns = slices.Clone(aligns)
	return mod
}

// WithMaxWidths returns a copy of the writer truncating the
// columns in the order of maxWidths to the passed widths.
// Zero means no maximum.
func (w *Writer) WithMaxWidths(maxWidths ...int) *Writer {
	mod := w.clone()
	mod.maxWidths = slices.Clone(maxWidths)
	return mod
}

// WithTitle returns a copy of the writer writing
// a centered title above the table.
func (w *Writer) WithTitle(title string) *Writer {
	mod := w.clone()
	mod.title = title
	return mod
}

// Render renders the root template of stack in a new render pass
// and writes the resulting table as text to dest.
func (w *Writer) Render(ctx context.Context, dest io.Writer, stack *regrid.Stack) error {
	node, err := grid.Render(ctx, stack)
	if err != nil {
		return err
	}
	return w.Write(ctx, dest, node)
}

// Write writes the first "table" node found in node as text to dest.
// Rows of a "thead" section or consisting only of "th" cells
// are written as header rows.
func (w *Writer) Write(ctx context.Context, dest io.Writer, node *regrid.Node) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	tables := node.Find("table")
	if len(tables) == 0 {
		return ErrNoTable
	}
	header, body, err := tableRows(tables[0])
	if err != nil {
		return err
	}

	sep := 2
	if w.border != BorderNone {
		sep = 3
	}
	numCols := colCount(header, body)
	widths := computeWidths(numCols, header, body, sep)
	for i, maxWidth := range w.maxWidths {
		if i < numCols && maxWidth > 0 && widths[i] > maxWidth {
			widths[i] = maxWidth
		}
	}
	if w.border != BorderNone && w.title != "" && numCols > 0 {
		if missing := runewidth.StringWidth(w.title) - spanWidth(widths, 0, numCols, sep); missing > 0 {
			widths[numCols-1] += missing
		}
	}
	aligns := make([]Alignment, numCols)
	copy(aligns, w.aligns)

	t := &textTable{dest: dest, widths: widths, aligns: aligns, sep: sep}
	if w.border == BorderNone {
		return t.renderPlain(ctx, w.title, header, body)
	}
	chars, ok := borderSets[w.border]
	if !ok {
		return fmt.Errorf("invalid border style %d", w.border)
	}
	return t.renderBordered(ctx, chars, w.title, header, body)
}

type textCell struct {
	text string
	span int
}

type textRow []textCell

func tableRows(table *regrid.Node) (header, body []textRow, err error) {
	for _, child := range table.ElementChildren() {
		switch child.Type {
		case "thead", "tbody", "tfoot":
			for _, tr := range child.ElementChildren() {
				row, isHeader, err := textRowOf(tr)
				if err != nil {
					return nil, nil, err
				}
				if child.Type == "thead" || isHeader {
					header = append(header, row)
				} else {
					body = append(body, row)
				}
			}
		case "tr":
			row, isHeader, err := textRowOf(child)
			if err != nil {
				return nil, nil, err
			}
			if isHeader && len(body) == 0 {
				header = append(header, row)
			} else {
				body = append(body, row)
			}
		default:
			return nil, nil, fmt.Errorf("unexpected %q node in table", child.Type)
		}
	}
	return header, body, nil
}

func textRowOf(tr *regrid.Node) (row textRow, isHeader bool, err error) {
	if tr.Type != "tr" {
		return nil, false, fmt.Errorf("unexpected %q node in table section", tr.Type)
	}
	cells := tr.ElementChildren()
	isHeader = len(cells) > 0
	for _, cell := range cells {
		if cell.Type != "th" && cell.Type != "td" {
			return nil, false, fmt.Errorf("unexpected %q node in table row", cell.Type)
		}
		isHeader = isHeader && cell.Type == "th"
		span := 1
		if colspan := cell.Attr("colspan"); colspan != "" {
			span, err = strconv.Atoi(colspan)
			if err != nil || span < 1 {
				return nil, false, fmt.Errorf("invalid colspan %q", colspan)
			}
		}
		text := strings.Join(strings.Fields(cell.TextContent()), " ")
		row = append(row, textCell{text: text, span: span})
	}
	return row, isHeader, nil
}

func colCount(rowSets ...[]textRow) int {
	n := 0
	for _, rows := range rowSets {
		for _, row := range rows {
			cols := 0
			for _, cell := range row {
				cols += cell.span
			}
			n = max(n, cols)
		}
	}
	return n
}

// computeWidths measures cells spanning a single column first,
// then widens the last column of spanning cells that don't fit.
func computeWidths(numCols int, header, body []textRow, sep int) []int {
	widths := make([]int, numCols)
	for _, rows := range [][]textRow{header, body} {
		for _, row := range rows {
			col := 0
			for _, cell := range row {
				if cell.span == 1 && col < numCols {
					widths[col] = max(widths[col], runewidth.StringWidth(cell.text))
				}
				col += cell.span
			}
		}
	}
	for _, rows := range [][]textRow{header, body} {
		for _, row := range rows {
			col := 0
			for _, cell := range row {
				if cell.span > 1 {
					last := min(col+cell.span, numCols) - 1
					if missing := runewidth.StringWidth(cell.text) - spanWidth(widths, col, cell.span, sep); missing > 0 {
						widths[last] += missing
					}
				}
				col += cell.span
			}
		}
	}
	return widths
}

// spanWidth returns the width available to a cell
// starting at column col spanning span columns.
func spanWidth(widths []int, col, span, sep int) int {
	end := min(col+span, len(widths))
	n := 0
	for i := col; i < end; i++ {
		n += widths[i]
	}
	if end-col > 1 {
		n += (end - col - 1) * sep
	}
	return n
}

type textTable struct {
	dest   io.Writer
	widths []int
	aligns []Alignment
	sep    int
}

// cells returns the formatted cells of row
// padded with empty cells to all columns.
func (t *textTable) cells(row textRow) []string {
	var cells []string
	col := 0
	for _, cell := range row {
		if col >= len(t.widths) {
			break
		}
		cells = append(cells, formatTableCell(cell.text, spanWidth(t.widths, col, cell.span, t.sep), t.aligns[col]))
		col += cell.span
	}
	for ; col < len(t.widths); col++ {
		cells = append(cells, strings.Repeat(" ", t.widths[col]))
	}
	return cells
}

func (t *textTable) renderPlain(ctx context.Context, title string, header, body []textRow) error {
	if title != "" {
		if _, err := fmt.Fprintln(t.dest, title); err != nil {
			return err
		}
	}
	for _, row := range header {
		if err := t.writePlainRow(row); err != nil {
			return err
		}
	}
	if len(header) > 0 {
		sep := make([]string, len(t.widths))
		for i, width := range t.widths {
			sep[i] = strings.Repeat("-", width)
		}
		if _, err := fmt.Fprintln(t.dest, strings.Join(sep, "  ")); err != nil {
			return err
		}
	}
	for _, row := range body {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := t.writePlainRow(row); err != nil {
			return err
		}
	}
	return nil
}

func (t *textTable) writePlainRow(row textRow) error {
	line := strings.TrimRight(strings.Join(t.cells(row), "  "), " ")
	_, err := fmt.Fprintln(t.dest, line)
	return err
}

func (t *textTable) renderBordered(ctx context.Context, bc borderChars, title string, header, body []textRow) error {
	if title != "" {
		// Full-width top border without column separators
		if err := t.drawHLine(bc.topLeft, bc.horizontal, bc.horizontal, bc.topRight); err != nil {
			return err
		}
		inner := spanWidth(t.widths, 0, len(t.widths), t.sep)
		padded := alignCell(title, inner, AlignCenter)
		if _, err := fmt.Fprintf(t.dest, "%s %s %s\n", bc.vertical, padded, bc.vertical); err != nil {
			return err
		}
		if err := t.drawHLine(bc.leftTee, bc.horizontal, bc.topTee, bc.rightTee); err != nil {
			return err
		}
	} else {
		if err := t.drawHLine(bc.topLeft, bc.horizontal, bc.topTee, bc.topRight); err != nil {
			return err
		}
	}

	for _, row := range header {
		if err := t.drawBorderedRow(row, bc.vertical); err != nil {
			return err
		}
	}
	if len(header) > 0 && len(body) > 0 {
		if err := t.drawHLine(bc.leftTee, bc.horizontal, bc.cross, bc.rightTee); err != nil {
			return err
		}
	}
	for _, row := range body {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := t.drawBorderedRow(row, bc.vertical); err != nil {
			return err
		}
	}
	return t.drawHLine(bc.bottomLeft, bc.horizontal, bc.bottomTee, bc.bottomRight)
}

func (t *textTable) drawHLine(left, fill, mid, right string) error {
	var sb strings.Builder
	sb.WriteString(left)
	for i, width := range t.widths {
		sb.WriteString(strings.Repeat(fill, width+2))
		if i < len(t.widths)-1 {
			sb.WriteString(mid)
		}
	}
	sb.WriteString(right)
	_, err := fmt.Fprintln(t.dest, sb.String())
	return err
}

func (t *textTable) drawBorderedRow(row textRow, vert string) error {
	var sb strings.Builder
	sb.WriteString(vert)
	for _, cell := range t.cells(row) {
		sb.WriteString(" ")
		sb.WriteString(cell)
		sb.WriteString(" ")
		sb.WriteString(vert)
	}
	_, err := fmt.Fprintln(t.dest, sb.String())
	return err
}

func formatTableCell(s string, width int, align Alignment) string {
	if width > 0 && runewidth.StringWidth(s) > width {
		if width <= 3 {
			s = runewidth.Truncate(s, width, "")
		} else {
			s = runewidth.Truncate(s, width, "...")
		}
	}
	return alignCell(s, width, align)
}

func alignCell(s string, width int, align Alignment) string {
	pad := width - runewidth.StringWidth(s)
	if pad <= 0 {
		return s
	}
	switch align {
	case AlignRight:
		return strings.Repeat(" ", pad) + s
	case AlignCenter:
		left := pad / 2
		right := pad - left
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
	default:
		return s + strings.Repeat(" ", pad)
	}
}
