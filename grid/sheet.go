package grid

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/domonda/go-regrid/gridcore"
)

// ErrEmptySheet indicates that a sheet contains no data
// after removing empty rows and columns.
var ErrEmptySheet = errors.New("empty sheet")

// Sheet holds string cells read from a spreadsheet or CSV file.
// The first non empty row of the source is used as header.
type Sheet struct {
	Name    string
	Columns []gridcore.Column
	Rows    [][]string
}

// NewSheet returns a Sheet named name from rows
// after removing empty rows and trailing empty columns.
// The first remaining row is used for the column titles.
//
// Empty and duplicate titles result in columns
// named "Column" plus the 1 based column index.
func NewSheet(name string, rows [][]string) (*Sheet, error) {
	rows = RemoveEmptyRows(rows)
	numCols := RemoveEmptyColumns(rows)
	if len(rows) == 0 || numCols == 0 {
		return nil, fmt.Errorf("sheet %q: %w", name, ErrEmptySheet)
	}
	titles := rows[0]
	if len(titles) < numCols {
		titles = append(titles, make([]string, numCols-len(titles))...)
	}
	return &Sheet{
		Name:    name,
		Columns: sheetColumns(titles),
		Rows:    rows[1:],
	}, nil
}

// Grid returns a Grid with the rows and columns of the sheet.
func (s *Sheet) Grid() *Grid {
	index := make(map[string]int, len(s.Columns))
	for i, column := range s.Columns {
		index[column.Name] = i
	}
	return New(s.Rows, s.Columns...).
		WithCellValue(func(row any, columnName string) any {
			cells, _ := row.([]string)
			i, ok := index[columnName]
			if !ok || i >= len(cells) {
				return nil
			}
			return cells[i]
		})
}

const sheetColumnPrefix = "Column"

func sheetColumns(titles []string) []gridcore.Column {
	columns := make([]gridcore.Column, len(titles))
	used := make(map[string]bool, len(titles))
	for i, title := range titles {
		name := strings.TrimSpace(title)
		if name == "" || used[name] {
			name = fmt.Sprintf("%s%d", sheetColumnPrefix, i+1)
		}
		used[name] = true
		columns[i] = gridcore.Column{Name: name, Title: title}
	}
	return columns
}

// RemoveEmptyRows removes rows where all cells are empty or whitespace.
func RemoveEmptyRows(rows [][]string) [][]string {
	return slices.DeleteFunc(rows, func(row []string) bool {
		return !slices.ContainsFunc(row, isNotEmpty)
	})
}

// RemoveEmptyColumns trims trailing empty cells of all rows
// and returns the number of remaining columns.
func RemoveEmptyColumns(rows [][]string) (numCols int) {
	for i, row := range rows {
		for len(row) > 0 && !isNotEmpty(row[len(row)-1]) {
			row = row[:len(row)-1]
		}
		rows[i] = row
		numCols = max(numCols, len(row))
	}
	return numCols
}

func isNotEmpty(s string) bool {
	return strings.TrimSpace(s) != ""
}
