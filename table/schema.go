package table

import (
	"strconv"
)

// ColumnType identifies the inferred type of a column
type ColumnType string

const (
	Int    ColumnType = "int"
	Float  ColumnType = "float"
	String ColumnType = "string"
	// Unknown marks columns with no data rows to infer from. Unknown
	// columns pass numeric validation so a header-only input still
	// yields a header-only output.
	Unknown ColumnType = "unknown"
)

// Column represents a single column in a dataset
type Column struct {
	Name string
	Type ColumnType
}

// Schema represents the ordered column structure of a dataset
type Schema struct {
	Columns []Column
}

// Index returns the position of the named column, or -1 if absent
func (s *Schema) Index(name string) int {
	for i, col := range s.Columns {
		if col.Name == name {
			return i
		}
	}
	return -1
}

// Has reports whether the named column exists
func (s *Schema) Has(name string) bool {
	return s.Index(name) >= 0
}

// Column returns the named column, or false if absent
func (s *Schema) Column(name string) (Column, bool) {
	i := s.Index(name)
	if i < 0 {
		return Column{}, false
	}
	return s.Columns[i], true
}

// Names returns the column names in schema order
func (s *Schema) Names() []string {
	names := make([]string, len(s.Columns))
	for i, col := range s.Columns {
		names[i] = col.Name
	}
	return names
}

// Clone returns a deep copy of the schema
func (s *Schema) Clone() *Schema {
	cols := make([]Column, len(s.Columns))
	copy(cols, s.Columns)
	return &Schema{Columns: cols}
}

// InferSchema determines column types from raw string records.
// A column is Int if every value parses as an integer, Float if every
// value parses as a number, otherwise String. Columns with no rows
// to inspect are Unknown.
func InferSchema(header []string, records [][]string) *Schema {
	schema := &Schema{Columns: make([]Column, len(header))}
	for i, name := range header {
		colType := Unknown
		if len(records) > 0 {
			isInt, isFloat := true, true
			for _, rec := range records {
				if isInt {
					if _, err := strconv.ParseInt(rec[i], 10, 64); err != nil {
						isInt = false
					}
				}
				if !isInt && isFloat {
					if _, err := strconv.ParseFloat(rec[i], 64); err != nil {
						isFloat = false
						break
					}
				}
			}
			switch {
			case isInt:
				colType = Int
			case isFloat:
				colType = Float
			default:
				colType = String
			}
		}
		schema.Columns[i] = Column{Name: name, Type: colType}
	}
	return schema
}

// Coerce converts a raw string value to the Go representation of the
// column type: int64, float64 or string.
func Coerce(raw string, colType ColumnType) (interface{}, error) {
	switch colType {
	case Int:
		return strconv.ParseInt(raw, 10, 64)
	case Float:
		return strconv.ParseFloat(raw, 64)
	default:
		return raw, nil
	}
}

// Format renders a typed value back to its CSV text form
func Format(value interface{}) string {
	switch v := value.(type) {
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case string:
		return v
	case nil:
		return ""
	default:
		return ""
	}
}
