package db

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/andys/csvforge/config"
	"github.com/andys/csvforge/table"
	"github.com/frankban/quicktest"
)

func datasetSchema() *table.Schema {
	return &table.Schema{Columns: []table.Column{
		{Name: "id", Type: table.Int},
		{Name: "category", Type: table.String},
		{Name: "value2", Type: table.Float},
	}}
}

func TestSchemaFor_DetectsIDColumn(t *testing.T) {
	c := quicktest.New(t)
	schema := SchemaFor("processed_output", datasetSchema())

	c.Assert(schema.Name, quicktest.Equals, "processed_output")
	c.Assert(schema.HasID, quicktest.Equals, true)
	c.Assert(schema.Columns, quicktest.DeepEquals, []ColumnSchema{
		{Name: "id", Type: table.Int, IsID: true},
		{Name: "category", Type: table.String},
		{Name: "value2", Type: table.Float},
	})
}

func TestSchemaFor_StringIDIsNotKey(t *testing.T) {
	c := quicktest.New(t)
	schema := SchemaFor("t", &table.Schema{Columns: []table.Column{
		{Name: "id", Type: table.String},
	}})

	c.Assert(schema.HasID, quicktest.Equals, false)
	c.Assert(schema.Columns[0].IsID, quicktest.Equals, false)
}

func TestEnsureTable_MySQL(t *testing.T) {
	c := quicktest.New(t)
	dbMock, mock, err := sqlmock.New()
	c.Assert(err, quicktest.IsNil)
	defer dbMock.Close()

	conn := &Connection{db: dbMock, Type: MySQL, cfg: &config.Config{}}
	schema := SchemaFor("processed_output", datasetSchema())

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS `processed_output` \\(`id` BIGINT PRIMARY KEY, `category` TEXT, `value2` DOUBLE\\)").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = conn.EnsureTable(schema)
	c.Assert(err, quicktest.IsNil)
	c.Assert(mock.ExpectationsWereMet(), quicktest.IsNil)
}

func TestEnsureTable_PostgreSQL(t *testing.T) {
	c := quicktest.New(t)
	dbMock, mock, err := sqlmock.New()
	c.Assert(err, quicktest.IsNil)
	defer dbMock.Close()

	conn := &Connection{db: dbMock, Type: PostgreSQL, cfg: &config.Config{}}
	schema := SchemaFor("processed_output", datasetSchema())

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS "processed_output" \("id" BIGINT PRIMARY KEY, "category" TEXT, "value2" DOUBLE PRECISION\)`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = conn.EnsureTable(schema)
	c.Assert(err, quicktest.IsNil)
	c.Assert(mock.ExpectationsWereMet(), quicktest.IsNil)
}

func TestEnsureTable_ExecError(t *testing.T) {
	c := quicktest.New(t)
	dbMock, mock, err := sqlmock.New()
	c.Assert(err, quicktest.IsNil)
	defer dbMock.Close()

	conn := &Connection{db: dbMock, Type: MySQL, cfg: &config.Config{}}
	schema := SchemaFor("t", datasetSchema())

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS").WillReturnError(errBoom)

	err = conn.EnsureTable(schema)
	c.Assert(err, quicktest.ErrorMatches, "failed to create table t: .*boom")
}

func TestPrepareLoad_NoIDTruncatesBeforeInserts(t *testing.T) {
	c := quicktest.New(t)
	dbMock, mock, err := sqlmock.New()
	c.Assert(err, quicktest.IsNil)
	defer dbMock.Close()

	conn := &Connection{db: dbMock, Type: MySQL, cfg: &config.Config{}}
	schema := SchemaFor("t", &table.Schema{Columns: []table.Column{
		{Name: "category", Type: table.String},
		{Name: "value2", Type: table.Float},
	}})
	c.Assert(schema.HasID, quicktest.Equals, false)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS `t`").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("TRUNCATE TABLE `t`").WillReturnResult(sqlmock.NewResult(0, 0))

	err = conn.PrepareLoad(schema)
	c.Assert(err, quicktest.IsNil)
	c.Assert(mock.ExpectationsWereMet(), quicktest.IsNil)
}

func TestPrepareLoad_WithIDSkipsTruncate(t *testing.T) {
	c := quicktest.New(t)
	dbMock, mock, err := sqlmock.New()
	c.Assert(err, quicktest.IsNil)
	defer dbMock.Close()

	conn := &Connection{db: dbMock, Type: MySQL, cfg: &config.Config{}}
	schema := SchemaFor("t", datasetSchema())
	c.Assert(schema.HasID, quicktest.Equals, true)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS `t`").WillReturnResult(sqlmock.NewResult(0, 0))

	err = conn.PrepareLoad(schema)
	c.Assert(err, quicktest.IsNil)
	c.Assert(mock.ExpectationsWereMet(), quicktest.IsNil)
}

func TestTruncateTable(t *testing.T) {
	c := quicktest.New(t)
	dbMock, mock, err := sqlmock.New()
	c.Assert(err, quicktest.IsNil)
	defer dbMock.Close()

	conn := &Connection{db: dbMock, Type: MySQL, cfg: &config.Config{}}
	schema := SchemaFor("t", datasetSchema())

	mock.ExpectExec("TRUNCATE TABLE `t`").WillReturnResult(sqlmock.NewResult(0, 0))

	err = conn.TruncateTable(schema)
	c.Assert(err, quicktest.IsNil)
	c.Assert(mock.ExpectationsWereMet(), quicktest.IsNil)
}
