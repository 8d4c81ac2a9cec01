package table

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// ReadFile loads a CSV file into a Dataset. Column types are inferred
// from the data and every value is coerced to its typed representation.
func ReadFile(path string) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("input file %s is empty: missing header row", path)
	}

	header := records[0]
	body := records[1:]
	schema := InferSchema(header, body)

	ds := &Dataset{
		Schema: schema,
		Rows:   make([]map[string]interface{}, 0, len(body)),
	}
	for rowNum, rec := range body {
		row := make(map[string]interface{}, len(header))
		for i, col := range schema.Columns {
			val, err := Coerce(rec[i], col.Type)
			if err != nil {
				return nil, fmt.Errorf("failed to coerce row %d column %s: %w", rowNum+2, col.Name, err)
			}
			row[col.Name] = val
		}
		ds.Rows = append(ds.Rows, row)
	}

	return ds, nil
}

// WriteFile serializes a Dataset to a CSV file, creating the parent
// directory if needed. The header is always written, so an empty
// dataset produces a header-only file.
func WriteFile(ds *Dataset, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(ds.Schema.Names()); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	fields := make([]string, len(ds.Schema.Columns))
	for _, row := range ds.Rows {
		for i, col := range ds.Schema.Columns {
			fields[i] = Format(row[col.Name])
		}
		if err := writer.Write(fields); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush output file: %w", err)
	}
	return file.Close()
}
