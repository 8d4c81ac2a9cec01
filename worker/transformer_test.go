package worker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/andys/csvforge/config"
	"github.com/andys/csvforge/table"
	"github.com/andys/csvforge/transform"
	"github.com/frankban/quicktest"
)

func testDataset(n int) *table.Dataset {
	ds := &table.Dataset{
		Schema: &table.Schema{Columns: []table.Column{
			{Name: "id", Type: table.Int},
			{Name: "value1", Type: table.Int},
		}},
	}
	for i := 0; i < n; i++ {
		ds.Rows = append(ds.Rows, map[string]interface{}{
			"id":     int64(i + 1),
			"value1": int64(i),
		})
	}
	return ds
}

func TestTransformer_PreservesRowOrder(t *testing.T) {
	c := quicktest.New(t)
	ds := testDataset(200)
	rules := []config.Rule{
		{Op: config.OpDerive, Name: "doubled", Column: "value1", Operator: "mul", Operand: 2},
	}
	pipeline, err := transform.NewPipeline(rules, ds.Schema)
	c.Assert(err, quicktest.IsNil)

	transformer := NewTransformer(pipeline, 8, &config.Config{})
	defer transformer.Stop()

	out, err := transformer.Run(ds)
	c.Assert(err, quicktest.IsNil)
	c.Assert(out.NumRows(), quicktest.Equals, 200)
	for i, row := range out.Rows {
		c.Assert(row["id"], quicktest.Equals, int64(i+1))
		c.Assert(row["doubled"], quicktest.Equals, int64(2*i))
	}
}

func TestTransformer_FilterCountsAndOrder(t *testing.T) {
	c := quicktest.New(t)
	ds := testDataset(100)
	rules := []config.Rule{
		{Op: config.OpFilter, Column: "value1", Operator: "ge", Operand: 50},
	}
	pipeline, err := transform.NewPipeline(rules, ds.Schema)
	c.Assert(err, quicktest.IsNil)

	transformer := NewTransformer(pipeline, 4, &config.Config{})
	defer transformer.Stop()

	out, err := transformer.Run(ds)
	c.Assert(err, quicktest.IsNil)
	c.Assert(out.NumRows(), quicktest.Equals, 50)
	c.Assert(out.Rows[0]["value1"], quicktest.Equals, int64(50))

	progress := transformer.GetProgress()
	c.Assert(progress.ProcessedRows.Load(), quicktest.Equals, int64(100))
	c.Assert(progress.FilteredRows.Load(), quicktest.Equals, int64(50))
}

func TestTransformer_EmptyDataset(t *testing.T) {
	c := quicktest.New(t)
	ds := testDataset(0)
	pipeline, err := transform.NewPipeline(config.DefaultRules(), ds.Schema)
	c.Assert(err, quicktest.Not(quicktest.IsNil)) // default rules need value2

	rules := []config.Rule{
		{Op: config.OpDerive, Name: "doubled", Column: "value1", Operator: "mul", Operand: 2},
	}
	pipeline, err = transform.NewPipeline(rules, ds.Schema)
	c.Assert(err, quicktest.IsNil)

	transformer := NewTransformer(pipeline, 2, &config.Config{})
	defer transformer.Stop()

	out, err := transformer.Run(ds)
	c.Assert(err, quicktest.IsNil)
	c.Assert(out.NumRows(), quicktest.Equals, 0)
	c.Assert(out.Schema.Names(), quicktest.DeepEquals, []string{"id", "value1", "doubled"})
}

func TestTransformer_HeaderOnlyInputWritesHeaderOnlyOutput(t *testing.T) {
	c := quicktest.New(t)
	input := filepath.Join(t.TempDir(), "input.csv")
	err := os.WriteFile(input, []byte("id,category,value1,value2\n"), 0o644)
	c.Assert(err, quicktest.IsNil)

	ds, err := table.ReadFile(input)
	c.Assert(err, quicktest.IsNil)
	c.Assert(ds.NumRows(), quicktest.Equals, 0)

	pipeline, err := transform.NewPipeline(config.DefaultRules(), ds.Schema)
	c.Assert(err, quicktest.IsNil)

	transformer := NewTransformer(pipeline, 2, &config.Config{})
	defer transformer.Stop()

	out, err := transformer.Run(ds)
	c.Assert(err, quicktest.IsNil)
	c.Assert(out.NumRows(), quicktest.Equals, 0)

	output := filepath.Join(t.TempDir(), "output.csv")
	c.Assert(table.WriteFile(out, output), quicktest.IsNil)

	content, err := os.ReadFile(output)
	c.Assert(err, quicktest.IsNil)
	c.Assert(string(content), quicktest.Equals,
		"id,category,value1,value2,value1_plus_10,value2_div_value1,value1_type\n")
}

func TestTransformer_RowErrorAborts(t *testing.T) {
	c := quicktest.New(t)
	ds := testDataset(3)
	// A column present in the schema but absent from one row surfaces
	// as a row-level error at transform time.
	delete(ds.Rows[1], "value1")

	rules := []config.Rule{
		{Op: config.OpFilter, Column: "value1", Operator: "ge", Operand: 0},
	}
	pipeline, err := transform.NewPipeline(rules, ds.Schema)
	c.Assert(err, quicktest.IsNil)

	transformer := NewTransformer(pipeline, 2, &config.Config{})
	defer transformer.Stop()

	_, err = transformer.Run(ds)
	c.Assert(err, quicktest.ErrorMatches, "column value1 not found in row")
}
