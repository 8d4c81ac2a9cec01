package db

import (
	"fmt"
	"strings"

	"github.com/andys/csvforge/table"
)

// TableSchema represents the structure of a destination table
type TableSchema struct {
	Name    string
	Columns []ColumnSchema
	HasID   bool // Indicates if table has an ID field for upsert logic
}

// ColumnSchema represents the structure of a table column
type ColumnSchema struct {
	Name string
	Type table.ColumnType
	IsID bool // True if this is an ID column
}

// SchemaFor maps a dataset schema onto a destination table schema. A
// leading integer column named "id" becomes the primary key and enables
// upserts; without one, rows are plain inserts.
func SchemaFor(tableName string, schema *table.Schema) *TableSchema {
	ts := &TableSchema{
		Name:    tableName,
		Columns: make([]ColumnSchema, 0, len(schema.Columns)),
	}
	for _, col := range schema.Columns {
		column := ColumnSchema{
			Name: col.Name,
			Type: col.Type,
			IsID: col.Name == "id" && col.Type == table.Int,
		}
		if column.IsID {
			ts.HasID = true
		}
		ts.Columns = append(ts.Columns, column)
	}
	return ts
}

func sqlType(colType table.ColumnType, dbType DBType) string {
	switch colType {
	case table.Int:
		return "BIGINT"
	case table.Float:
		if dbType == PostgreSQL {
			return "DOUBLE PRECISION"
		}
		return "DOUBLE"
	default:
		return "TEXT"
	}
}

// EnsureTable creates the destination table if it does not exist
func (c *Connection) EnsureTable(schema *TableSchema) error {
	defs := make([]string, 0, len(schema.Columns))
	for _, col := range schema.Columns {
		def := fmt.Sprintf("%s %s", escapeIdentifier(col.Name, c.Type), sqlType(col.Type, c.Type))
		if col.IsID {
			def += " PRIMARY KEY"
		}
		defs = append(defs, def)
	}

	query := fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (%s)",
		escapeIdentifier(schema.Name, c.Type),
		strings.Join(defs, ", "),
	)

	if c.cfg.Verbose {
		fmt.Printf("Executing SQL: %s\n", query)
	}
	if _, err := c.db.Exec(query); err != nil {
		return fmt.Errorf("failed to create table %s: %w", schema.Name, err)
	}
	return nil
}

// PrepareLoad readies the destination table for a load: the table is
// created if missing and, when it has no ID column, truncated so a
// rerun does not duplicate plain-inserted rows.
func (c *Connection) PrepareLoad(schema *TableSchema) error {
	if err := c.EnsureTable(schema); err != nil {
		return err
	}
	if !schema.HasID {
		return c.TruncateTable(schema)
	}
	return nil
}

// TruncateTable empties the destination table before a full reload
func (c *Connection) TruncateTable(schema *TableSchema) error {
	query := fmt.Sprintf("TRUNCATE TABLE %s", escapeIdentifier(schema.Name, c.Type))
	if c.cfg.Verbose {
		fmt.Printf("Executing SQL: %s\n", query)
	}
	if _, err := c.db.Exec(query); err != nil {
		return fmt.Errorf("failed to truncate table %s: %w", schema.Name, err)
	}
	return nil
}
