// Package exceltable writes rendered tables to Excel sheets
// and reads Excel sheets as grid data,
// using github.com/xuri/excelize/v2.
package exceltable

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/domonda/go-regrid"
	"github.com/domonda/go-regrid/grid"
	"github.com/domonda/go-regrid/internal/ctxlog"
)

// DefaultSheetName is the sheet name used by NewWriter.
const DefaultSheetName = "Sheet1"

// Writer writes a rendered table node to an Excel sheet.
// The With* methods return modified copies.
type Writer struct {
	sheet      string
	boldHeader bool
	freeze     bool
}

// NewWriter returns a Writer writing to the DefaultSheetName
// with bold header rows.
func NewWriter() *Writer {
	return &Writer{
		sheet:      DefaultSheetName,
		boldHeader: true,
	}
}

func (w *Writer) clone() *Writer {
	c := new(Writer)
	*c = *w
	return c
}

// WithSheetName returns a copy of the writer using the passed sheet name.
func (w *Writer) WithSheetName(sheet string) *Writer {
	mod := w.clone()
	mod.sheet = sheet
	return mod
}

// WithBoldHeader returns a copy of the writer
// writing header rows with bold font or not.
func (w *Writer) WithBoldHeader(boldHeader bool) *Writer {
	mod := w.clone()
	mod.boldHeader = boldHeader
	return mod
}

// WithFreezeHeader returns a copy of the writer
// freezing the header rows when scrolling.
func (w *Writer) WithFreezeHeader(freeze bool) *Writer {
	mod := w.clone()
	mod.freeze = freeze
	return mod
}

// SheetName returns the sheet name of the writer.
func (w *Writer) SheetName() string {
	return w.sheet
}

// Render renders the root template of stack in a new render pass
// and writes the resulting table as .xlsx file to dest.
func (w *Writer) Render(ctx context.Context, dest io.Writer, stack *regrid.Stack) error {
	node, err := grid.Render(ctx, stack)
	if err != nil {
		return err
	}
	return w.Write(ctx, dest, node)
}

// Write writes the first "table" node found in node
// as .xlsx file to dest.
func (w *Writer) Write(ctx context.Context, dest io.Writer, node *regrid.Node) (err error) {
	f, err := w.NewFile(ctx, node)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	_, err = f.WriteTo(dest)
	return err
}

// NewFile returns a new excelize.File with the first "table" node
// found in node written to the sheet of the writer.
// Cells spanning multiple columns are merged.
func (w *Writer) NewFile(ctx context.Context, node *regrid.Node) (*excelize.File, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	tables := node.Find("table")
	if len(tables) == 0 {
		return nil, ErrNoTable
	}

	f := excelize.NewFile()
	if err := w.writeSheet(ctx, f, tables[0]); err != nil {
		return nil, errors.Join(err, f.Close())
	}
	return f, nil
}

func (w *Writer) writeSheet(ctx context.Context, f *excelize.File, table *regrid.Node) error {
	if w.sheet != DefaultSheetName {
		if err := f.SetSheetName(DefaultSheetName, w.sheet); err != nil {
			return err
		}
	}
	headerStyle := 0
	if w.boldHeader {
		var err error
		headerStyle, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return err
		}
	}

	var (
		rowIndex   = 0
		headerRows = 0
	)
	writeRow := func(tr *regrid.Node, isHeader bool) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if tr.Type != "tr" {
			return fmt.Errorf("unexpected %q node in table", tr.Type)
		}
		rowIndex++
		col := 1
		for _, cell := range tr.ElementChildren() {
			span := 1
			if colspan := cell.Attr("colspan"); colspan != "" {
				s, err := strconv.Atoi(colspan)
				if err != nil || s < 1 {
					return fmt.Errorf("invalid colspan %q", colspan)
				}
				span = s
			}
			start, err := excelize.CoordinatesToCellName(col, rowIndex)
			if err != nil {
				return err
			}
			err = f.SetCellValue(w.sheet, start, cell.TextContent())
			if err != nil {
				return err
			}
			end := start
			if span > 1 {
				end, err = excelize.CoordinatesToCellName(col+span-1, rowIndex)
				if err != nil {
					return err
				}
				if err = f.MergeCell(w.sheet, start, end); err != nil {
					return err
				}
			}
			if (isHeader || cell.Type == "th") && headerStyle != 0 {
				if err = f.SetCellStyle(w.sheet, start, end, headerStyle); err != nil {
					return err
				}
			}
			col += span
		}
		if isHeader {
			headerRows = rowIndex
		}
		return nil
	}

	for _, child := range table.ElementChildren() {
		switch child.Type {
		case "thead", "tbody", "tfoot":
			for _, tr := range child.ElementChildren() {
				if err := writeRow(tr, child.Type == "thead"); err != nil {
					return err
				}
			}
		case "tr":
			if err := writeRow(child, false); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unexpected %q node in table", child.Type)
		}
	}

	if w.freeze && headerRows > 0 {
		topLeft, err := excelize.CoordinatesToCellName(1, headerRows+1)
		if err != nil {
			return err
		}
		err = f.SetPanes(w.sheet, &excelize.Panes{
			Freeze:      true,
			YSplit:      headerRows,
			TopLeftCell: topLeft,
			ActivePane:  "bottomLeft",
		})
		if err != nil {
			return err
		}
	}
	ctxlog.FromContext(ctx).Debug("wrote excel sheet", "sheet", w.sheet, "rows", rowIndex, "headerRows", headerRows)
	return nil
}
