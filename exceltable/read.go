package exceltable

import (
	"errors"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/domonda/go-regrid/grid"
)

// ReadFirstSheet reads the first sheet from an Excel file provided via io.Reader.
//
// If rawCellStrings is true, cell values are returned without
// the number format of the cell applied.
func ReadFirstSheet(reader io.Reader, rawCellStrings bool) (sheet *grid.Sheet, err error) {
	f, e := excelize.OpenReader(reader)
	if e != nil {
		return nil, e
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	name := f.GetSheetName(0)
	if name == "" {
		return nil, ErrSheetNotExist{SheetName: "<FirstSheet>"}
	}
	return readSheet(f, name, rawCellStrings)
}

// Read reads all non empty sheets from an Excel file provided via io.Reader.
func Read(reader io.Reader, rawCellStrings bool) (sheets []*grid.Sheet, err error) {
	f, e := excelize.OpenReader(reader)
	if e != nil {
		return nil, e
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	for _, name := range f.GetSheetList() {
		sheet, err := readSheet(f, name, rawCellStrings)
		if err != nil {
			if errors.Is(err, ErrEmptySheet) {
				continue
			}
			return nil, err
		}
		sheets = append(sheets, sheet)
	}
	return sheets, nil
}

func readSheet(f *excelize.File, name string, rawCellStrings bool) (*grid.Sheet, error) {
	rows, err := f.GetRows(name, excelize.Options{RawCellValue: rawCellStrings})
	if err != nil {
		return nil, err
	}
	return grid.NewSheet(name, rows)
}
