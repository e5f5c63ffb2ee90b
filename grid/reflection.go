package grid

import (
	"reflect"
	"slices"

	"github.com/domonda/go-regrid/gridcore"
)

// ColumnsOf derives the columns of a row type.
//
// Structs and pointers to structs result in one column per exported
// field, named after the field and titled by naming.
// Maps with string keys result in one column per key of the first row.
// Any other type results in a single column named "value".
func ColumnsOf(rowType reflect.Type, rows []any, naming *StructFieldNaming) []gridcore.Column {
	if rowType == nil {
		return nil
	}
	switch derefType(rowType).Kind() {
	case reflect.Struct:
		var columns []gridcore.Column
		for _, field := range StructFieldTypes(rowType) {
			if naming.IsIgnored(field) {
				continue
			}
			columns = append(columns, gridcore.Column{
				Name:  field.Name,
				Title: naming.StructFieldTitle(field),
			})
		}
		return columns

	case reflect.Map:
		if rowType.Key().Kind() != reflect.String || len(rows) == 0 {
			return nil
		}
		first := reflect.ValueOf(rows[0])
		if !first.IsValid() || first.Kind() != reflect.Map {
			return nil
		}
		var names []string
		for _, key := range first.MapKeys() {
			names = append(names, key.String())
		}
		slices.Sort(names)
		columns := make([]gridcore.Column, len(names))
		for i, name := range names {
			columns[i] = gridcore.Column{Name: name}
		}
		return columns

	default:
		return []gridcore.Column{{Name: "value"}}
	}
}

// CellValue returns the value of row for columnName.
//
// Map rows are looked up by key, struct rows by field name.
// Rows of other types are returned as is for the column "value".
// nil is returned for missing keys or fields and nil rows.
func CellValue(row any, columnName string) any {
	v := reflect.ValueOf(row)
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.Invalid:
		return nil

	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return nil
		}
		value := v.MapIndex(reflect.ValueOf(columnName).Convert(v.Type().Key()))
		if !value.IsValid() {
			return nil
		}
		return value.Interface()

	case reflect.Struct:
		types := StructFieldTypes(v.Type())
		values := StructFieldValues(v)
		for i, field := range types {
			if field.Name == columnName {
				if !values[i].IsValid() {
					return nil
				}
				return values[i].Interface()
			}
		}
		return nil

	default:
		if columnName == "value" {
			return row
		}
		return nil
	}
}

// IndexRowID returns a gridcore.GetRowIDFunc
// that uses the index of a row within rows as ID.
//
// Rows of reference kinds (map, pointer, slice, chan, func)
// are found by identity, so distinct rows with equal content
// get distinct IDs.
// Rows of other comparable types are found by equality,
// equal values share the index of the first one.
// Remaining rows, like structs with slice fields, are found by reflect.DeepEqual.
// Rows not found in rows result in -1.
func IndexRowID(rows []any) gridcore.GetRowIDFunc {
	indices := make(map[any]int, len(rows))
	for i, row := range rows {
		if key, ok := rowKey(row); ok {
			if _, exists := indices[key]; !exists {
				indices[key] = i
			}
		}
	}
	return func(row any) any {
		if key, ok := rowKey(row); ok {
			if i, ok := indices[key]; ok {
				return i
			}
			return -1
		}
		for i, r := range rows {
			if reflect.DeepEqual(r, row) {
				return i
			}
		}
		return -1
	}
}

type identityKey struct {
	typ reflect.Type
	ptr uintptr
	len int
}

// rowKey returns a map key identifying row
// or false if row can only be found by reflect.DeepEqual.
func rowKey(row any) (key any, ok bool) {
	if row == nil {
		return nil, true
	}
	v := reflect.ValueOf(row)
	switch v.Kind() {
	case reflect.Map, reflect.Pointer, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return identityKey{typ: v.Type(), ptr: v.Pointer()}, true
	case reflect.Slice:
		return identityKey{typ: v.Type(), ptr: v.Pointer(), len: v.Len()}, true
	}
	if v.Comparable() {
		return row, true
	}
	return nil, false
}

func rowsToAny[R any](rows []R) []any {
	result := make([]any, len(rows))
	for i, row := range rows {
		result[i] = row
	}
	return result
}
