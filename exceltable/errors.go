package exceltable

import (
	"errors"

	"github.com/xuri/excelize/v2"

	"github.com/domonda/go-regrid/grid"
)

var (
	// ErrEmptySheet indicates that an Excel sheet contains no data after
	// removing empty rows and columns.
	//
	// Empty sheets are skipped when reading all sheets of a file.
	ErrEmptySheet = grid.ErrEmptySheet

	// ErrNoTable is returned when a rendered node contains no "table" node.
	ErrNoTable = errors.New("rendered node contains no table")
)

// ErrSheetNotExist is re-exported from excelize and indicates that a requested
// sheet name does not exist in the Excel file.
//
// Example:
//
//	var sheetErr exceltable.ErrSheetNotExist
//	if errors.As(err, &sheetErr) {
//	    fmt.Printf("Sheet not found: %s\n", sheetErr.SheetName)
//	}
type ErrSheetNotExist = excelize.ErrSheetNotExist
