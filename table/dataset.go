package table

// Dataset holds an in-memory table: an ordered schema plus one data map
// per row, keyed by column name.
type Dataset struct {
	Schema *Schema
	Rows   []map[string]interface{}
}

// NumRows returns the number of data rows
func (d *Dataset) NumRows() int {
	return len(d.Rows)
}

// Head returns up to n rows rendered as CSV text fields, for log previews
func (d *Dataset) Head(n int) [][]string {
	if n > len(d.Rows) {
		n = len(d.Rows)
	}
	head := make([][]string, 0, n)
	for _, row := range d.Rows[:n] {
		fields := make([]string, len(d.Schema.Columns))
		for i, col := range d.Schema.Columns {
			fields[i] = Format(row[col.Name])
		}
		head = append(head, fields)
	}
	return head
}
